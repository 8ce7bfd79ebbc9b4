package imageprocessor

import (
	"errors"
	"testing"

	"github.com/example/ai-editor/internal/editor"
)

func TestNewRequestDropsFieldsUnusedByMode(t *testing.T) {
	cfg := editor.DefaultConfiguration().
		WithMode(editor.ModeCameraAngle).
		WithBaseImage("data:img1").
		WithReferenceImage("data:stale").
		WithCameraAngle(editor.AngleHighAngle)

	req := NewRequest(cfg)
	if req.ReferenceImage != "" {
		t.Fatalf("camera angle request carried a reference image: %q", req.ReferenceImage)
	}
	if req.CameraAngle != editor.AngleHighAngle || req.BaseImage != "data:img1" {
		t.Fatalf("unexpected request %+v", req)
	}

	tryOn := NewRequest(editor.DefaultConfiguration().WithBaseImage("b").WithReferenceImage("r"))
	if tryOn.CameraAngle != "" || tryOn.ReferenceImage != "r" {
		t.Fatalf("unexpected try-on request %+v", tryOn)
	}
}

func TestServiceErrorMessage(t *testing.T) {
	cause := errors.New("rpc error: code = ResourceExhausted")
	err := &ServiceError{Message: "Quota exceeded.", Err: cause}
	if err.Error() != "Quota exceeded." {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected unwrap to reach the cause")
	}
	if (&ServiceError{Err: cause}).Error() != cause.Error() {
		t.Fatal("empty message should fall back to the cause")
	}
}
