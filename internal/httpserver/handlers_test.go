package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spigell/cv-analyzer/internal/ai"
	"github.com/spigell/cv-analyzer/internal/extract"
	"github.com/spigell/cv-analyzer/internal/httpserver"
	"github.com/spigell/cv-analyzer/internal/pdftext"
	"github.com/spigell/cv-analyzer/internal/review"
)

const resumeText = "JANE DOE\njane@example.com\n+1 (555) 123-4567\nSKILLS\nGo, Docker\nWORK EXPERIENCE\nAcme Corp\nbuilt billing\nEDUCATION\nMIT\n"

type stubAnalyzer struct {
	analysis *ai.Analysis
	err      error
}

func (s stubAnalyzer) Analyze(context.Context, *extract.ParsedCV) (*ai.Analysis, error) {
	return s.analysis, s.err
}

type stubChecker struct {
	model string
	err   error
}

func (s stubChecker) CheckModel(context.Context) (string, error) { return s.model, s.err }

type options struct {
	decoder   review.PDFDecoder
	analyzer  ai.Analyzer
	checker   ai.ModelChecker
	maxMB     int64
	rateLimit int
}

func newRouter(t *testing.T, opts options) http.Handler {
	t.Helper()

	extractor, err := extract.NewExtractor(extract.DefaultTables())
	require.NoError(t, err)

	if opts.decoder == nil {
		opts.decoder = func([]byte) (*pdftext.Document, error) {
			return &pdftext.Document{Text: resumeText, Pages: 1}, nil
		}
	}

	metrics := httpserver.NewMetrics()
	assistant := ai.NewAssistant(opts.analyzer, ai.SourceGemini, nil)
	svc := review.NewService(extractor, assistant, nil,
		review.WithPDFDecoder(opts.decoder),
		review.WithRecorder(metrics),
	)
	srv := httpserver.NewServer(svc, opts.checker, opts.maxMB, nil)

	return httpserver.BuildRouter(httpserver.RouterConfig{RateLimitPerMin: opts.rateLimit}, srv, metrics, nil)
}

func uploadRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r := httptest.NewRequest(http.MethodPost, "/upload-pdf", bytes.NewReader(buf.Bytes()))
	r.Header.Set("Content-Type", w.FormDataContentType())
	return r
}

func serve(h http.Handler, r *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

var fakePDF = []byte("%PDF-1.4\n%stub\n")

func TestUploadPDF_Success(t *testing.T) {
	h := newRouter(t, options{})

	rec, body := serve(h, uploadRequest(t, "pdf", "cv.pdf", fakePDF))
	require.Equal(t, http.StatusOK, rec.Code)

	parsed, ok := body["parsedData"].(map[string]any)
	require.True(t, ok, "parsedData missing: %s", rec.Body.String())
	require.Len(t, parsed, 7)
	require.Equal(t, "JANE DOE", parsed["name"])
	require.Equal(t, "jane@example.com", parsed["email"])
	require.Equal(t, "+1 (555) 123-4567", parsed["phone"])
	require.Equal(t, []any{"Docker", "Go"}, parsed["skills"])
	require.Equal(t, "Acme Corp\nbuilt billing", parsed["experience"])
	require.Equal(t, "MIT", parsed["education"])
	require.Equal(t, resumeText, parsed["rawText"])
}

func TestUploadPDF_MissingFile(t *testing.T) {
	h := newRouter(t, options{})

	rec, body := serve(h, uploadRequest(t, "document", "cv.pdf", fakePDF))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "No PDF file uploaded.", body["error"])
}

func TestUploadPDF_NotAPDF(t *testing.T) {
	h := newRouter(t, options{})

	rec, body := serve(h, uploadRequest(t, "pdf", "cv.pdf", []byte(resumeText)))
	require.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	require.Equal(t, "Only PDF files are supported.", body["error"])
}

func TestUploadPDF_TooLarge(t *testing.T) {
	h := newRouter(t, options{maxMB: 1})

	content := append(append([]byte{}, fakePDF...), bytes.Repeat([]byte("a"), 1<<20)...)
	rec, body := serve(h, uploadRequest(t, "pdf", "cv.pdf", content))
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	require.Equal(t, "File too large.", body["error"])
}

func TestUploadPDF_DecodeFailure(t *testing.T) {
	h := newRouter(t, options{decoder: func([]byte) (*pdftext.Document, error) {
		return nil, errors.New("malformed xref table")
	}})

	rec, body := serve(h, uploadRequest(t, "pdf", "cv.pdf", fakePDF))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "Error parsing PDF", body["error"])
	require.Contains(t, body["message"], "malformed xref table")
}

func analyzeRequest(t *testing.T, payload string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/analyze-cv", strings.NewReader(payload))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestAnalyzeCV_Validation(t *testing.T) {
	h := newRouter(t, options{})

	for _, payload := range []string{
		`{}`,
		`{"parsedData": {"name": "Jane"}}`,
		`{"parsedData": {"rawText": "   "}}`,
		`not json`,
	} {
		rec, body := serve(h, analyzeRequest(t, payload))
		require.Equal(t, http.StatusBadRequest, rec.Code, payload)
		require.Equal(t, "parsedData with rawText is required", body["error"], payload)
	}
}

func TestAnalyzeCV_MockWithoutModel(t *testing.T) {
	h := newRouter(t, options{})

	rec, body := serve(h, analyzeRequest(t, `{"parsedData": {"rawText": "JANE DOE\nGo developer"}}`))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "mock", body["source"])

	analysis := body["analysis"].(map[string]any)
	scoring := analysis["scoring"].(map[string]any)
	structure := scoring["structure"].(map[string]any)
	require.EqualValues(t, 72, structure["score"])
}

func TestAnalyzeCV_Sources(t *testing.T) {
	tests := []struct {
		name     string
		analyzer ai.Analyzer
		want     string
	}{
		{name: "gemini", analyzer: stubAnalyzer{analysis: &ai.Analysis{Summary: "ok"}}, want: "gemini"},
		{name: "all models failed", analyzer: stubAnalyzer{err: ai.ErrGeneration}, want: "fallback-mock"},
		{name: "unparseable", analyzer: stubAnalyzer{err: ai.ErrResponseParse}, want: "fallback-parse"},
		{name: "other", analyzer: stubAnalyzer{err: errors.New("boom")}, want: "error-fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newRouter(t, options{analyzer: tt.analyzer})

			rec, body := serve(h, analyzeRequest(t, `{"parsedData": {"rawText": "cv text", "skills": ["Go"]}}`))
			require.Equal(t, http.StatusOK, rec.Code)
			require.Equal(t, tt.want, body["source"])
			require.NotNil(t, body["analysis"])
		})
	}
}

func TestTestModels(t *testing.T) {
	t.Run("no key", func(t *testing.T) {
		rec, body := serve(newRouter(t, options{}), httptest.NewRequest(http.MethodGet, "/test-models", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "GEMINI_API_KEY not set", body["error"])
	})

	t.Run("reachable", func(t *testing.T) {
		h := newRouter(t, options{checker: stubChecker{model: "models/gemini-2.5-flash"}})
		rec, body := serve(h, httptest.NewRequest(http.MethodGet, "/test-models", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "API initialized successfully", body["message"])
		require.Equal(t, "models/gemini-2.5-flash", body["model"])
	})

	t.Run("failing", func(t *testing.T) {
		h := newRouter(t, options{checker: stubChecker{err: errors.New("permission denied")}})
		rec, body := serve(h, httptest.NewRequest(http.MethodGet, "/test-models", nil))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Equal(t, "Failed to initialize API", body["error"])
		require.Equal(t, "permission denied", body["message"])
	})
}

func TestRequestIDAndMetrics(t *testing.T) {
	h := newRouter(t, options{})

	rec, _ := serve(h, analyzeRequest(t, `{"parsedData": {"rawText": "cv text"}}`))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, rec.Header().Get("X-Request-Id"), 26)

	r := analyzeRequest(t, `{"parsedData": {"rawText": "cv text"}}`)
	r.Header.Set("X-Request-Id", "client-supplied")
	rec, _ = serve(h, r)
	require.Equal(t, "client-supplied", rec.Header().Get("X-Request-Id"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `cv_analyses_total{source="mock"} 2`)
	require.Contains(t, rec.Body.String(), `http_requests_total{method="POST",route="/analyze-cv",status="200"} 2`)
}

func TestHealthz(t *testing.T) {
	rec, body := serve(newRouter(t, options{}), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", body["status"])
	require.Equal(t, false, body["ai"])
}

func TestRateLimit(t *testing.T) {
	h := newRouter(t, options{rateLimit: 1})

	rec, _ := serve(h, analyzeRequest(t, `{"parsedData": {"rawText": "cv text"}}`))
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = serve(h, analyzeRequest(t, `{"parsedData": {"rawText": "cv text"}}`))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestParseOrigins(t *testing.T) {
	require.Equal(t, []string{"*"}, httpserver.ParseOrigins(""))
	require.Equal(t, []string{"*"}, httpserver.ParseOrigins(" , "))
	require.Equal(t, []string{"http://localhost:3000", "https://cv.example.com"},
		httpserver.ParseOrigins(" http://localhost:3000, https://cv.example.com "))
}
