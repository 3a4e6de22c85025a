package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spigell/cv-analyzer/internal/ai"
	"github.com/spigell/cv-analyzer/internal/ai/gemini"
	"github.com/spigell/cv-analyzer/internal/extract"
	"github.com/spigell/cv-analyzer/internal/nlp"
	"github.com/spigell/cv-analyzer/internal/review"
	"github.com/spigell/cv-analyzer/internal/secrets"
	"go.uber.org/zap"
)

// newExtractor builds the extractor from configuration. Sections listed in
// the config replace the built-in aliases of that section only.
func newExtractor(cfg *ExtractionConfig, logger *zap.Logger) (*extract.Extractor, error) {
	tables := extract.DefaultTables()

	for name, aliases := range cfg.Sections {
		section, err := extract.ParseSection(name)
		if err != nil {
			return nil, fmt.Errorf("extraction.sections: %w", err)
		}
		if len(aliases) > 0 {
			tables.Aliases[section] = aliases
		}
	}
	if len(cfg.Skills) > 0 {
		tables.Skills = cfg.Skills
	}
	if cfg.NameDenylist != nil {
		tables.NameDenylist = cfg.NameDenylist
	}

	opts := []extract.Option{
		extract.WithNameWindow(cfg.NameWindow),
		extract.WithPhoneRegions(cfg.PhoneRegions...),
	}
	if cfg.NLP {
		opts = append(opts, extract.WithPeopleFinder(nlp.NewProseFinder(logger.Named("nlp"))))
	}

	return extract.NewExtractor(tables, opts...)
}

// newAssistant returns the assistant and, when a model is configured, the
// checker behind /test-models. A missing API key is not an error: the
// assistant then serves mock analyses.
func newAssistant(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (*ai.Assistant, ai.ModelChecker, error) {
	if !cfg.Enabled {
		logger.Info("ai analysis disabled, serving mock analyses")
		return ai.NewAssistant(nil, "", logger), nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		File:  cfg.Gemini.APIKeyFile,
		Value: cfg.Gemini.APIKey,
	})
	if errors.Is(err, secrets.ErrNotConfigured) {
		logger.Warn("gemini api key is not set, serving mock analyses",
			zap.String("hint", "set GEMINI_API_KEY, GEMINI_API_KEY_FILE or ai.gemini.api-key-file"),
		)
		return ai.NewAssistant(nil, "", logger), nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	genLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.Strings("models", cfg.Gemini.Models),
		zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries),
	)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Models, cfg.Gemini.MaxRetries, cfg.Gemini.RetryDelay, genLogger)
	if err != nil {
		return nil, nil, err
	}

	analyzer := gemini.NewAnalyzer(generator, cfg.Gemini.MaxLogLength, logger.With(zap.String("provider", "gemini")))

	return ai.NewAssistant(analyzer, ai.SourceGemini, logger), generator, nil
}

func newReviewService(ctx context.Context, config *Config, logger *zap.Logger, opts ...review.Option) (*review.Service, ai.ModelChecker, error) {
	extractor, err := newExtractor(config.Extraction, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("building extractor: %w", err)
	}

	assistant, checker, err := newAssistant(ctx, config.AI, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("building ai assistant: %w", err)
	}

	return review.NewService(extractor, assistant, logger, opts...), checker, nil
}
