package editor

// Configuration is everything a submission needs. Image handles are opaque
// strings (data URLs); an empty handle means the slot is not filled.
type Configuration struct {
	Mode           Mode        `json:"mode"`
	BaseImage      string      `json:"base_image,omitempty"`
	ReferenceImage string      `json:"reference_image,omitempty"`
	CameraAngle    CameraAngle `json:"camera_angle"`
}

// DefaultConfiguration is the state of a fresh session.
func DefaultConfiguration() Configuration {
	return Configuration{
		Mode:        ModeVirtualTryOn,
		CameraAngle: DefaultAngle,
	}
}

// WithMode switches mode. The reference image is always dropped because its
// meaning depends on the mode (garment vs. face).
func (c Configuration) WithMode(mode Mode) Configuration {
	c.Mode = mode
	c.ReferenceImage = ""
	return c
}

func (c Configuration) WithBaseImage(handle string) Configuration {
	c.BaseImage = handle
	return c
}

func (c Configuration) WithReferenceImage(handle string) Configuration {
	c.ReferenceImage = handle
	return c
}

func (c Configuration) WithCameraAngle(angle CameraAngle) Configuration {
	if angle == "" {
		angle = DefaultAngle
	}
	c.CameraAngle = angle
	return c
}

// ClearImages empties both upload slots and keeps mode and angle.
func (c Configuration) ClearImages() Configuration {
	c.BaseImage = ""
	c.ReferenceImage = ""
	return c
}

// HasBaseImage reports whether the base slot is filled.
func (c Configuration) HasBaseImage() bool {
	return c.BaseImage != ""
}

// EffectiveAngle returns the angle to send to the service, or "" when the
// mode does not use one.
func (c Configuration) EffectiveAngle() CameraAngle {
	if c.Mode != ModeCameraAngle {
		return ""
	}
	if c.CameraAngle == "" {
		return DefaultAngle
	}
	return c.CameraAngle
}

// EffectiveReference returns the reference image only when the mode uses it.
func (c Configuration) EffectiveReference() string {
	if !c.Mode.RequiresReference() {
		return ""
	}
	return c.ReferenceImage
}
