package logging

import (
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewOperationErrorNilStaysNil(t *testing.T) {
	if err := NewOperationError("gemini.generate", "sub-1", nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestOperationErrorFormatsAndUnwraps(t *testing.T) {
	cause := errors.New("quota exceeded")
	err := NewOperationError("gemini.generate", "sub-1", cause)

	if got := err.Error(); got != "gemini.generate (submission_id=sub-1): quota exceeded" {
		t.Fatalf("unexpected message: %s", got)
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected errors.Is to reach the cause")
	}

	bare := NewOperationError("flight.release", "", cause)
	if got := bare.Error(); got != "flight.release: quota exceeded" {
		t.Fatalf("unexpected message without submission: %s", got)
	}
}

func TestFieldsSplitsOperationMetadata(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("process: %w", NewOperationError("flight.acquire", "sub-7", cause))

	enc := zapcore.NewMapObjectEncoder()
	for _, f := range Fields(err) {
		f.AddTo(enc)
	}

	if enc.Fields["operation"] != "flight.acquire" {
		t.Fatalf("operation missing: %+v", enc.Fields)
	}
	if enc.Fields["submission_id"] != "sub-7" {
		t.Fatalf("submission id missing: %+v", enc.Fields)
	}
	if enc.Fields["error"] != "connection reset" {
		t.Fatalf("error should carry only the cause, got %v", enc.Fields["error"])
	}
}

func TestFieldsPassesPlainErrorsThrough(t *testing.T) {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range Fields(errors.New("boom")) {
		f.AddTo(enc)
	}
	if len(enc.Fields) != 1 || enc.Fields["error"] != "boom" {
		t.Fatalf("unexpected fields: %+v", enc.Fields)
	}
}
