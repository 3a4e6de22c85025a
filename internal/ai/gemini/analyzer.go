package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/mitchellh/mapstructure"
	"github.com/spigell/cv-analyzer/internal/ai"
	"github.com/spigell/cv-analyzer/internal/extract"
	"github.com/spigell/cv-analyzer/internal/utils"
	"go.uber.org/zap"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Analyzer turns a ParsedCV into an ai.Analysis with a single prompt.
type Analyzer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200
	notFound            = "Not found"
)

func NewAnalyzer(generator contentGenerator, maxLogLength int, logger *zap.Logger) *Analyzer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Analyzer{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (a *Analyzer) Analyze(ctx context.Context, cv *extract.ParsedCV) (*ai.Analysis, error) {
	if cv == nil || strings.TrimSpace(cv.RawText) == "" {
		return nil, errors.New("parsed cv with raw text is required")
	}

	prompt := buildPrompt(cv)

	a.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, a.maxLogLen)),
	)

	return parseResponse(raw)
}

func buildPrompt(cv *extract.ParsedCV) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Name: {{NAME}}\nEmail: {{EMAIL}}\nPhone: {{PHONE}}\nSkills: {{SKILLS}}\nExperience: {{EXPERIENCE}}\nEducation: {{EDUCATION}}\n\n{{RAW_TEXT}}\n\nJSON Response:"
	}

	skills := notFound
	if len(cv.Skills) > 0 {
		skills = strings.Join(cv.Skills, ", ")
	}

	// raw text goes last so placeholders inside the document stay untouched
	replacer := strings.NewReplacer(
		"{{NAME}}", orNotFound(cv.Name),
		"{{EMAIL}}", orNotFound(cv.Email),
		"{{PHONE}}", orNotFound(cv.Phone),
		"{{SKILLS}}", skills,
		"{{EXPERIENCE}}", orNotFound(cv.Experience),
		"{{EDUCATION}}", orNotFound(cv.Education),
	)
	prompt := replacer.Replace(template)
	return strings.Replace(prompt, "{{RAW_TEXT}}", cv.RawText, 1)
}

func orNotFound(field *string) string {
	if v := strings.TrimSpace(extract.Value(field, "")); v != "" {
		return v
	}
	return notFound
}

func parseResponse(raw string) (*ai.Analysis, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("%w: %w", ai.ErrResponseParse, err)
	}

	var analysis ai.Analysis
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		TagName:          "json",
		Result:           &analysis,
	})
	if err != nil {
		return nil, fmt.Errorf("build analysis decoder: %w", err)
	}
	if err := decoder.Decode(data); err != nil {
		return nil, fmt.Errorf("%w: %w", ai.ErrResponseParse, err)
	}

	analysis.Summary = strings.TrimSpace(analysis.Summary)
	if analysis.Summary == "" {
		return nil, fmt.Errorf("%w: summary is missing", ai.ErrResponseParse)
	}

	analysis.Normalize()
	return &analysis, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	raw = strings.TrimSpace(raw)

	// some models wrap the object in prose
	if !strings.HasPrefix(raw, "{") {
		start := strings.Index(raw, "{")
		end := strings.LastIndex(raw, "}")
		if start != -1 && end > start {
			raw = raw[start : end+1]
		}
	}
	return raw
}
