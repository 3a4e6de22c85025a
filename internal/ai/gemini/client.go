package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spigell/cv-analyzer/internal/ai"
	"github.com/spigell/cv-analyzer/internal/logger"
	"github.com/spigell/cv-analyzer/internal/utils"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	providerName      = "gemini"
	defaultRetryDelay = 2 * time.Second
	// quota errors asking to wait longer than this are not retried
	maxQuotaDelay = 30 * time.Second
)

// DefaultModels are tried in order when no models are configured.
var DefaultModels = []string{"gemini-2.5-flash", "gemini-2.5-pro"}

var waitFor = utils.WaitFor

type modelsAPI interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	Get(ctx context.Context, model string, config *genai.GetModelConfig) (*genai.Model, error)
}

// Generator sends prompts to Gemini, walking the model list until one of them
// answers. Each model gets its own retry budget for transient errors.
type Generator struct {
	models     modelsAPI
	modelNames []string
	maxRetries int
	retryDelay time.Duration
	logger     *zap.Logger
}

// NewGenerator creates a new Generator configured for the Gemini API backend.
func NewGenerator(ctx context.Context, apiKey string, models []string, maxRetries int, retryDelay time.Duration, logger *zap.Logger) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newGenerator(client.Models, models, maxRetries, retryDelay, logger), nil
}

func newGenerator(api modelsAPI, models []string, maxRetries int, retryDelay time.Duration, log *zap.Logger) *Generator {
	var names []string
	for _, m := range models {
		if m = strings.TrimSpace(m); m != "" {
			names = append(names, m)
		}
	}
	if len(names) == 0 {
		names = append(names, DefaultModels...)
	}
	if maxRetries < 1 {
		maxRetries = 1
	}
	if retryDelay <= 0 {
		retryDelay = defaultRetryDelay
	}

	return &Generator{
		models:     api,
		modelNames: names,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		logger:     logger.WithFields(log),
	}
}

// Models returns the model list in the order it is tried.
func (g *Generator) Models() []string {
	if g == nil {
		return nil
	}
	return append([]string(nil), g.modelNames...)
}

// GenerateContent returns the text of the first model that answers. When all
// models fail the error wraps ai.ErrGeneration and the last model error.
func (g *Generator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.models == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	var lastErr error
	for _, model := range g.modelNames {
		log := logger.WithModel(g.logger, providerName, model)

		text, err := g.generateWithRetries(ctx, model, prompt, log)
		if err == nil {
			log.Debug("model answered")
			return text, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}

		log.Warn("model failed, trying next", zap.Error(err))
		lastErr = err
	}

	return "", fmt.Errorf("%w: %w", ai.ErrGeneration, lastErr)
}

func (g *Generator) generateWithRetries(ctx context.Context, model, prompt string, log *zap.Logger) (string, error) {
	var err error
	for attempt := 1; attempt <= g.maxRetries; attempt++ {
		var text string
		text, err = g.generate(ctx, model, prompt)
		if err == nil {
			return text, nil
		}

		delay, retry := g.retryable(err)
		if !retry || attempt == g.maxRetries {
			break
		}

		fields := append(logger.AttemptFields(attempt, g.maxRetries), zap.Duration("delay", delay), zap.Error(err))
		log.Debug("retrying transient gemini error", fields...)
		if waitErr := waitFor(ctx, delay); waitErr != nil {
			return "", waitErr
		}
	}
	return "", err
}

func (g *Generator) generate(ctx context.Context, model, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}

	resp, err := g.models.GenerateContent(ctx, model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("generate content with %s: %w", model, err)
	}
	if resp == nil {
		return "", fmt.Errorf("gemini model %s returned no response", model)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", fmt.Errorf("gemini model %s returned empty response", model)
	}

	return output, nil
}

// CheckModel resolves the first configured model and returns its name.
func (g *Generator) CheckModel(ctx context.Context) (string, error) {
	if g == nil || g.models == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	model := g.modelNames[0]
	info, err := g.models.Get(ctx, model, nil)
	if err != nil {
		return "", fmt.Errorf("get model %s: %w", model, err)
	}
	if info != nil && strings.TrimSpace(info.Name) != "" {
		return info.Name, nil
	}
	return model, nil
}

var retryAfterRe = regexp.MustCompile(`(?i)retry(?:\s+after|\s+in)?\s+(\d+(?:\.\d+)?)\s*(s|sec|secs|seconds?)\b`)

func (g *Generator) retryable(err error) (time.Duration, bool) {
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
	case errors.As(err, &apiErrPtr) && apiErrPtr != nil:
		apiErr = *apiErrPtr
	default:
		return 0, false
	}

	switch apiErr.Code {
	case http.StatusTooManyRequests:
		delay := g.retryDelay
		if m := retryAfterRe.FindStringSubmatch(apiErr.Message); m != nil {
			if secs, parseErr := strconv.ParseFloat(m[1], 64); parseErr == nil {
				delay = time.Duration(secs * float64(time.Second))
			}
		}
		if delay > maxQuotaDelay {
			return 0, false
		}
		return delay, true
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return g.retryDelay, true
	default:
		return 0, false
	}
}
