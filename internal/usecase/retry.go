package usecase

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/example/ai-editor/internal/logging"
)

// withRetry runs a flight guard operation, retrying transient failures with
// exponential backoff. The image service call never goes through here.
func (s *Session) withRetry(ctx context.Context, submissionID, operation string, fn func() error) error {
	if s.retryAttempts <= 1 {
		return logging.NewOperationError(operation, submissionID, fn())
	}

	backoff := s.initialBackoff
	opLogger := logging.WithOperation(s.logger, operation, submissionID)
	var err error
	for attempt := 0; attempt < s.retryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return logging.NewOperationError(operation, submissionID, ctx.Err())
			case <-time.After(backoff):
			}
			if next := backoff * 2; next <= s.maxBackoff {
				backoff = next
			}
		}

		err = fn()
		if err == nil {
			if attempt > 0 {
				opLogger.Info("flight guard operation succeeded after retry", zap.Int("attempt", attempt+1))
			}
			return nil
		}

		if !isTransientError(err) || attempt == s.retryAttempts-1 {
			opLogger.Error("flight guard operation failed", zap.Error(err), zap.Int("attempt", attempt+1))
			return logging.NewOperationError(operation, submissionID, err)
		}

		opLogger.Warn("transient flight guard error", zap.Error(err), zap.Int("attempt", attempt+1))
	}
	return logging.NewOperationError(operation, submissionID, err)
}

func isTransientError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var temporary interface{ Temporary() bool }
	if errors.As(err, &temporary) && temporary.Temporary() {
		return true
	}

	return false
}
