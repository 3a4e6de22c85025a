// Package review runs documents through text decoding, field extraction and
// the AI assistant. Transports (HTTP, CLI) call it and map its errors.
package review

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spigell/cv-analyzer/internal/ai"
	"github.com/spigell/cv-analyzer/internal/extract"
	"github.com/spigell/cv-analyzer/internal/logger"
	"github.com/spigell/cv-analyzer/internal/pdftext"
	"go.uber.org/zap"
)

const mimePDF = "application/pdf"

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrExtraction       = errors.New("text extraction failed")
)

// Recorder receives per-document outcomes, typically to feed metrics.
type Recorder interface {
	ObserveExtraction(media string, cv *extract.ParsedCV)
	ObserveAnalysis(source ai.Source)
}

type PDFDecoder func(data []byte) (*pdftext.Document, error)

// Service is safe for concurrent use.
type Service struct {
	extractor *extract.Extractor
	assistant *ai.Assistant
	decodePDF PDFDecoder
	recorder  Recorder
	logger    *zap.Logger
}

type Option func(*Service)

func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

func WithPDFDecoder(d PDFDecoder) Option {
	return func(s *Service) {
		if d != nil {
			s.decodePDF = d
		}
	}
}

// NewService wires the pipeline. A nil assistant serves mock analyses.
func NewService(extractor *extract.Extractor, assistant *ai.Assistant, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if assistant == nil {
		assistant = ai.NewAssistant(nil, "", logger)
	}

	s := &Service{
		extractor: extractor,
		assistant: assistant,
		decodePDF: pdftext.Extract,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ParsePDF extracts fields from a PDF document. Anything that is not a PDF
// is rejected with ErrUnsupportedMedia.
func (s *Service) ParsePDF(data []byte) (*extract.ParsedCV, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidArgument)
	}

	mt := mimetype.Detect(data)
	if !mt.Is(mimePDF) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMedia, mt.String())
	}
	return s.parsePDF(data)
}

// ParseDocument accepts a PDF or any textual document.
func (s *Service) ParseDocument(data []byte) (*extract.ParsedCV, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidArgument)
	}

	mt := mimetype.Detect(data)
	switch {
	case mt.Is(mimePDF):
		return s.parsePDF(data)
	case isText(mt):
		return s.ParseText(string(data), mt.String()), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMedia, mt.String())
	}
}

func isText(mt *mimetype.MIME) bool {
	for m := mt; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

func (s *Service) parsePDF(data []byte) (*extract.ParsedCV, error) {
	doc, err := s.decodePDF(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtraction, err)
	}

	s.logger.Debug("pdf decoded", zap.Int("pages", doc.Pages), zap.Int("text_length", len(doc.Text)))

	return s.ParseText(doc.Text, mimePDF), nil
}

// ParseText extracts fields from already decoded text. media labels the
// source in logs and metrics.
func (s *Service) ParseText(text, media string) *extract.ParsedCV {
	cv := s.extractor.Extract(pdftext.Sanitize(text))

	fields := append([]zap.Field{zap.String("media", media)}, logger.CVFields(cv)...)
	s.logger.Info("document extracted", fields...)

	if s.recorder != nil {
		s.recorder.ObserveExtraction(media, cv)
	}
	return cv
}

// Analyze reviews cv. Model failures never surface as errors: the assistant
// substitutes the sample analysis and reports why through the source tag.
func (s *Service) Analyze(ctx context.Context, cv *extract.ParsedCV) (*ai.Analysis, ai.Source, error) {
	if cv == nil || strings.TrimSpace(cv.RawText) == "" {
		return nil, "", fmt.Errorf("%w: parsedData with rawText is required", ErrInvalidArgument)
	}

	analysis, source := s.assistant.Review(ctx, cv)

	s.logger.Info("document analyzed",
		logger.SourceField(string(source)),
		zap.Int("suggestions", len(analysis.Suggestions)),
	)

	if s.recorder != nil {
		s.recorder.ObserveAnalysis(source)
	}
	return analysis, source, nil
}

// AIEnabled reports whether analyses come from a model.
func (s *Service) AIEnabled() bool {
	return s.assistant.Enabled()
}
