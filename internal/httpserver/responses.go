// Package httpserver exposes the review service over HTTP.
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/spigell/cv-analyzer/internal/review"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, detail string) {
	writeJSON(w, status, errorBody{Error: msg, Message: detail})
}

// writeUploadError maps review errors to the upload endpoint's responses.
func writeUploadError(w http.ResponseWriter, err error, maxMB int64) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]any{"error": "File too large.", "maxMB": maxMB})
	case errors.Is(err, review.ErrUnsupportedMedia):
		writeError(w, http.StatusUnsupportedMediaType, "Only PDF files are supported.", err.Error())
	case errors.Is(err, review.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, "No PDF file uploaded.", "")
	default:
		writeError(w, http.StatusInternalServerError, "Error parsing PDF", err.Error())
	}
}
