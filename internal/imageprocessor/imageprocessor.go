package imageprocessor

import (
	"context"

	"github.com/example/ai-editor/internal/editor"
)

// Request is the payload handed to the external image service. Reference
// image and angle are only set for the modes that use them.
type Request struct {
	Mode           editor.Mode
	BaseImage      string
	ReferenceImage string
	CameraAngle    editor.CameraAngle
}

// NewRequest snapshots cfg into a service request.
func NewRequest(cfg editor.Configuration) *Request {
	return &Request{
		Mode:           cfg.Mode,
		BaseImage:      cfg.BaseImage,
		ReferenceImage: cfg.EffectiveReference(),
		CameraAngle:    cfg.EffectiveAngle(),
	}
}

// Client exposes the single operation of the external image service. It
// returns the handle (data URL) of the edited image.
type Client interface {
	SubmitEdit(ctx context.Context, req *Request) (string, error)
}

// ServiceError is a failure reported by the service with a message that can be
// shown to the user as is.
type ServiceError struct {
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
