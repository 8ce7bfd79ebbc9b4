package logging

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// OperationError annotates an infrastructure failure with the operation and
// submission it happened in.
type OperationError struct {
	Operation    string
	SubmissionID string
	Err          error
}

// Error implements the error interface.
func (e *OperationError) Error() string {
	if e == nil || e.Err == nil {
		return ""
	}
	if e.SubmissionID != "" {
		return fmt.Sprintf("%s (submission_id=%s): %v", e.Operation, e.SubmissionID, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewOperationError wraps err with the operation metadata. A nil err stays nil.
func NewOperationError(operation, submissionID string, err error) error {
	if err == nil {
		return nil
	}
	return &OperationError{Operation: operation, SubmissionID: submissionID, Err: err}
}

// Fields returns err as zap fields. An OperationError anywhere in the chain
// contributes its operation and submission id next to the cause.
func Fields(err error) []zap.Field {
	var opErr *OperationError
	if !errors.As(err, &opErr) {
		return []zap.Field{zap.Error(err)}
	}
	return append(operationFields(opErr.Operation, opErr.SubmissionID), zap.Error(opErr.Err))
}
