package geminiclient

import (
	"fmt"

	"github.com/example/ai-editor/internal/editor"
	"github.com/example/ai-editor/internal/imageprocessor"
)

var anglePrompts = map[editor.CameraAngle]string{
	editor.AngleFront:     "a straight-on front view at eye level",
	editor.AngleSide:      "a side profile view",
	editor.AngleLowAngle:  "a low-angle shot looking up at the subject",
	editor.AngleHighAngle: "a high-angle shot looking down at the subject",
	editor.AngleCloseUp:   "a tight close-up framing",
	editor.AngleFullBody:  "a full-body shot showing the subject head to toe",
}

func buildPrompt(req *imageprocessor.Request) (string, error) {
	switch req.Mode {
	case editor.ModeVirtualTryOn:
		return `The first image is a person, the second image is a garment.
Dress the person in the garment. Keep the person's face, body shape, pose and background unchanged.
Fit the garment naturally with realistic folds, lighting and shadows. Return only the edited image.`, nil
	case editor.ModeFaceSwap:
		return `The first image is the target photo, the second image shows a reference face.
Replace the face in the target photo with the reference face. Keep hair, pose, lighting, skin tone blending and background of the target photo.
Return only the edited image.`, nil
	case editor.ModeRemoveText:
		return `Remove all text, captions, watermarks and logos from this image.
Reconstruct the covered areas so they blend seamlessly with their surroundings. Change nothing else. Return only the edited image.`, nil
	case editor.ModeCameraAngle:
		angle := req.CameraAngle
		if angle == "" {
			angle = editor.DefaultAngle
		}
		view, ok := anglePrompts[angle]
		if !ok {
			return "", fmt.Errorf("%w: %q", editor.ErrUnknownAngle, angle)
		}
		return fmt.Sprintf(`Re-render this exact scene and subject from %s.
Keep identity, clothing, colors and lighting consistent with the original. Return only the edited image.`, view), nil
	default:
		return "", fmt.Errorf("%w: %q", editor.ErrUnknownMode, req.Mode)
	}
}
