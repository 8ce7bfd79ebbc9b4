package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the editor's logger at the given level ("debug", "info",
// "warn" or "error"). Console output in development, JSON otherwise.
func NewLogger(level string, development bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.InitialFields = map[string]interface{}{"app": "ai-editor"}
	return cfg.Build()
}

// WithOperation scopes logger to one operation of one submission.
func WithOperation(logger *zap.Logger, operation, submissionID string) *zap.Logger {
	return logger.With(operationFields(operation, submissionID)...)
}

func operationFields(operation, submissionID string) []zap.Field {
	fields := []zap.Field{zap.String("operation", operation)}
	if submissionID != "" {
		fields = append(fields, zap.String("submission_id", submissionID))
	}
	return fields
}
