package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	FieldProvider = "ai_provider"
	FieldModel    = "ai_model"
	FieldSource   = "ai_source"
	FieldAttempt  = "ai_attempt"
)

// StringField is a key/value pair that is dropped when either side is blank.
type StringField struct {
	Key   string
	Value string
}

// StringFields trims the pairs and converts the non-blank ones to zap fields.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key, value := strings.TrimSpace(field.Key), strings.TrimSpace(field.Value)
		if key == "" || value == "" {
			continue
		}
		result = append(result, zap.String(key, value))
	}
	return result
}

// WithFields attaches fields to logger. A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// ModelFields describes which model served a call.
func ModelFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

// WithModel scopes logger to one provider/model pair.
func WithModel(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, ModelFields(provider, model)...)
}

// AttemptFields describes one try of a retried model call.
func AttemptFields(attempt, maxAttempts int) []zap.Field {
	if attempt < 1 {
		return nil
	}
	return []zap.Field{zap.Int(FieldAttempt, attempt), zap.Int("ai_max_attempts", maxAttempts)}
}

// SourceField tags an analysis with where it came from.
func SourceField(source string) zap.Field {
	return zap.String(FieldSource, source)
}
