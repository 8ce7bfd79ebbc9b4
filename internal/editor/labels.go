package editor

// Display strings for a single fixed locale. Domain values never double as
// labels; the presentation layer goes through these lookups.

const (
	StatusAnalyzingText      = "Analyzing request..."
	StatusCallingServiceText = "Processing with AI..."
	StatusCompleteText       = "Done"

	// GenericFailureText replaces service failures that carry no message.
	GenericFailureText = "An error occurred while processing the image."

	SubmitIdleLabel       = "Process now"
	SubmitProcessingLabel = "Processing..."
)

var modeLabels = map[Mode]string{
	ModeVirtualTryOn: "Virtual try-on",
	ModeFaceSwap:     "Face swap",
	ModeRemoveText:   "Remove text",
	ModeCameraAngle:  "Change camera angle",
}

var angleLabels = map[CameraAngle]string{
	AngleFront:     "Front",
	AngleSide:      "Side",
	AngleLowAngle:  "Low angle",
	AngleHighAngle: "High angle",
	AngleCloseUp:   "Close-up",
	AngleFullBody:  "Full body",
}

// ModeLabel returns the display name of m, or the raw value if unknown.
func ModeLabel(m Mode) string {
	if label, ok := modeLabels[m]; ok {
		return label
	}
	return string(m)
}

// AngleLabel returns the display name of a, or the raw value if unknown.
func AngleLabel(a CameraAngle) string {
	if label, ok := angleLabels[a]; ok {
		return label
	}
	return string(a)
}

// BaseSlotLabel names the first upload slot for the mode.
func BaseSlotLabel(m Mode) string {
	if m == ModeRemoveText || m == ModeCameraAngle {
		return "Image to edit"
	}
	return "Original model photo"
}

// ReferenceSlotLabel names the second upload slot, or "" when the mode has none.
func ReferenceSlotLabel(m Mode) string {
	switch m {
	case ModeVirtualTryOn:
		return "Garment photo"
	case ModeFaceSwap:
		return "Reference face photo"
	default:
		return ""
	}
}

// SubmitLabel is the submit button text for the given status.
func SubmitLabel(s ProcessingStatus) string {
	if s.IsProcessing {
		return SubmitProcessingLabel
	}
	return SubmitIdleLabel
}
