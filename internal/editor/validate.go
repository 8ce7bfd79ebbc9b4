package editor

import "errors"

var (
	ErrBaseImageRequired      = errors.New("base image required")
	ErrReferenceImageRequired = errors.New("reference image required")
)

// Validate decides whether cfg can be submitted. The returned error's message
// is meant for the user.
func Validate(cfg Configuration) error {
	if !cfg.HasBaseImage() {
		return ErrBaseImageRequired
	}
	if cfg.Mode.RequiresReference() && cfg.ReferenceImage == "" {
		return ErrReferenceImageRequired
	}
	return nil
}
