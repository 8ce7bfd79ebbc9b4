package editor

import (
	"errors"
	"fmt"
)

// Mode selects which edit the image service performs.
type Mode string

const (
	ModeVirtualTryOn Mode = "VIRTUAL_TRY_ON"
	ModeFaceSwap     Mode = "FACE_SWAP"
	ModeRemoveText   Mode = "REMOVE_TEXT"
	ModeCameraAngle  Mode = "CAMERA_ANGLE"
)

// Modes lists every mode in display order.
var Modes = []Mode{ModeVirtualTryOn, ModeFaceSwap, ModeRemoveText, ModeCameraAngle}

// RequiresReference reports whether the mode needs a second (reference) image.
func (m Mode) RequiresReference() bool {
	return m == ModeVirtualTryOn || m == ModeFaceSwap
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	for _, known := range Modes {
		if m == known {
			return true
		}
	}
	return false
}

// CameraAngle is the target viewpoint for ModeCameraAngle.
type CameraAngle string

const (
	AngleFront     CameraAngle = "FRONT"
	AngleSide      CameraAngle = "SIDE"
	AngleLowAngle  CameraAngle = "LOW_ANGLE"
	AngleHighAngle CameraAngle = "HIGH_ANGLE"
	AngleCloseUp   CameraAngle = "CLOSE_UP"
	AngleFullBody  CameraAngle = "FULL_BODY"
)

// DefaultAngle is used whenever no angle has been chosen.
const DefaultAngle = AngleFront

// CameraAngles lists every angle in display order.
var CameraAngles = []CameraAngle{AngleFront, AngleSide, AngleLowAngle, AngleHighAngle, AngleCloseUp, AngleFullBody}

// Valid reports whether a is one of the known angles.
func (a CameraAngle) Valid() bool {
	for _, known := range CameraAngles {
		if a == known {
			return true
		}
	}
	return false
}

var (
	ErrUnknownMode  = errors.New("unknown editing mode")
	ErrUnknownAngle = errors.New("unknown camera angle")
)

// ParseMode converts a wire value into a Mode.
func ParseMode(value string) (Mode, error) {
	mode := Mode(value)
	if !mode.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, value)
	}
	return mode, nil
}

// ParseCameraAngle converts a wire value into a CameraAngle. An empty value
// yields DefaultAngle.
func ParseCameraAngle(value string) (CameraAngle, error) {
	if value == "" {
		return DefaultAngle, nil
	}
	angle := CameraAngle(value)
	if !angle.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownAngle, value)
	}
	return angle, nil
}
