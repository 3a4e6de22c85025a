// Package ai produces reviews of extracted résumés through a language model,
// degrading to a built-in sample whenever the model cannot deliver.
package ai

import (
	"context"
	"errors"

	"github.com/spigell/cv-analyzer/internal/extract"
	"github.com/spigell/cv-analyzer/internal/logger"
	"go.uber.org/zap"
)

// Source tells clients where an Analysis came from.
type Source string

const (
	// SourceMock means no model is configured.
	SourceMock Source = "mock"
	// SourceFallbackMock means every configured model failed to answer.
	SourceFallbackMock Source = "fallback-mock"
	// SourceFallbackParse means the model answered with something that is not an analysis.
	SourceFallbackParse Source = "fallback-parse"
	// SourceGemini means the analysis came from Gemini.
	SourceGemini Source = "gemini"
	// SourceErrorFallback covers any other failure.
	SourceErrorFallback Source = "error-fallback"
)

var (
	// ErrGeneration is wrapped by analyzers when no model produced a response.
	ErrGeneration = errors.New("content generation failed")
	// ErrResponseParse is wrapped by analyzers when the response cannot be decoded.
	ErrResponseParse = errors.New("model response is not a valid analysis")
)

type Analyzer interface {
	Analyze(ctx context.Context, cv *extract.ParsedCV) (*Analysis, error)
}

// ModelChecker reports whether the configured model is reachable.
type ModelChecker interface {
	CheckModel(ctx context.Context) (string, error)
}

// Assistant always returns an analysis. Analyzer failures are logged and
// mapped to a fallback source.
type Assistant struct {
	analyzer Analyzer
	source   Source
	logger   *zap.Logger
}

// NewAssistant wraps analyzer. A nil analyzer serves the sample analysis with
// SourceMock.
func NewAssistant(analyzer Analyzer, source Source, logger *zap.Logger) *Assistant {
	if logger == nil {
		logger = zap.NewNop()
	}
	if source == "" {
		source = SourceGemini
	}
	return &Assistant{analyzer: analyzer, source: source, logger: logger}
}

// Enabled reports whether a model backs the assistant.
func (a *Assistant) Enabled() bool {
	return a != nil && a.analyzer != nil
}

func (a *Assistant) Review(ctx context.Context, cv *extract.ParsedCV) (*Analysis, Source) {
	if !a.Enabled() {
		a.logger.Warn("no ai analyzer configured, returning mock analysis")
		return MockAnalysis(), SourceMock
	}

	analysis, err := a.analyzer.Analyze(ctx, cv)
	if err == nil && analysis == nil {
		err = ErrResponseParse
	}
	if err != nil {
		source := fallbackSource(err)
		a.logger.Warn("ai analysis failed, returning mock analysis",
			logger.SourceField(string(source)),
			zap.Error(err),
		)
		return MockAnalysis(), source
	}

	analysis.Normalize()
	return analysis, a.source
}

func fallbackSource(err error) Source {
	switch {
	case errors.Is(err, ErrGeneration):
		return SourceFallbackMock
	case errors.Is(err, ErrResponseParse):
		return SourceFallbackParse
	default:
		return SourceErrorFallback
	}
}
