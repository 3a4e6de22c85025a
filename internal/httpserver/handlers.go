package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spigell/cv-analyzer/internal/ai"
	"github.com/spigell/cv-analyzer/internal/extract"
	"github.com/spigell/cv-analyzer/internal/review"
	"go.uber.org/zap"
)

const (
	formFieldPDF      = "pdf"
	multipartOverhead = 1 << 20
	modelCheckTimeout = 15 * time.Second
)

// Server aggregates handler dependencies.
type Server struct {
	Reviews     *review.Service
	Models      ai.ModelChecker
	MaxUploadMB int64
	Logger      *zap.Logger
}

func NewServer(reviews *review.Service, models ai.ModelChecker, maxUploadMB int64, logger *zap.Logger) *Server {
	if maxUploadMB <= 0 {
		maxUploadMB = 10
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{Reviews: reviews, Models: models, MaxUploadMB: maxUploadMB, Logger: logger}
}

func (s *Server) maxUploadBytes() int64 {
	return s.MaxUploadMB << 20
}

type uploadResponse struct {
	ParsedData *extract.ParsedCV `json:"parsedData"`
}

// UploadPDFHandler extracts fields from the PDF in the "pdf" form field.
func (s *Server) UploadPDFHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := s.maxUploadBytes()
		r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)

		file, header, err := r.FormFile(formFieldPDF)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeUploadError(w, err, s.MaxUploadMB)
				return
			}
			LoggerFrom(r).Info("no pdf in upload", zap.Error(err))
			writeError(w, http.StatusBadRequest, "No PDF file uploaded.", "")
			return
		}
		defer func() { _ = file.Close() }()

		if header.Size > limit {
			writeUploadError(w, &http.MaxBytesError{Limit: limit}, s.MaxUploadMB)
			return
		}

		data, err := io.ReadAll(io.LimitReader(file, limit+1))
		if err != nil {
			writeUploadError(w, fmt.Errorf("read upload: %w", err), s.MaxUploadMB)
			return
		}
		if int64(len(data)) > limit {
			writeUploadError(w, &http.MaxBytesError{Limit: limit}, s.MaxUploadMB)
			return
		}

		LoggerFrom(r).Info("pdf received",
			zap.String("filename", header.Filename),
			zap.Int("size", len(data)),
		)

		cv, err := s.Reviews.ParsePDF(data)
		if err != nil {
			LoggerFrom(r).Warn("parsing upload", zap.Error(err))
			writeUploadError(w, err, s.MaxUploadMB)
			return
		}

		writeJSON(w, http.StatusOK, uploadResponse{ParsedData: cv})
	}
}

type analyzeRequest struct {
	ParsedData *extract.ParsedCV `json:"parsedData"`
}

type analyzeResponse struct {
	Analysis *ai.Analysis `json:"analysis"`
	Source   ai.Source    `json:"source"`
}

const errRawTextRequired = "parsedData with rawText is required"

// AnalyzeHandler reviews a previously extracted document.
func (s *Server) AnalyzeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes())

		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, errRawTextRequired, "")
			return
		}

		analysis, source, err := s.Reviews.Analyze(r.Context(), req.ParsedData)
		if err != nil {
			if errors.Is(err, review.ErrInvalidArgument) {
				writeError(w, http.StatusBadRequest, errRawTextRequired, "")
				return
			}
			writeError(w, http.StatusInternalServerError, "Error during AI analysis", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, analyzeResponse{Analysis: analysis, Source: source})
	}
}

// TestModelsHandler reports whether the configured model is reachable.
func (s *Server) TestModelsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Models == nil {
			writeJSON(w, http.StatusOK, errorBody{Error: "GEMINI_API_KEY not set"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), modelCheckTimeout)
		defer cancel()

		model, err := s.Models.CheckModel(ctx)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to initialize API", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"message": "API initialized successfully",
			"model":   model,
		})
	}
}
