package editor

// ProcessingStatus tracks one submission from idle to done.
type ProcessingStatus struct {
	IsProcessing bool   `json:"is_processing"`
	StatusText   string `json:"status"`
	Progress     int    `json:"progress"`
}

const (
	progressAnalyzing      = 20
	progressCallingService = 60
	progressComplete       = 100
)

// Idle is the resting state, also used after a failure.
func Idle() ProcessingStatus {
	return ProcessingStatus{}
}

// Analyzing is the first in-flight state.
func Analyzing() ProcessingStatus {
	return ProcessingStatus{IsProcessing: true, StatusText: StatusAnalyzingText, Progress: progressAnalyzing}
}

// CallingService marks that the external call is underway.
func CallingService() ProcessingStatus {
	return ProcessingStatus{IsProcessing: true, StatusText: StatusCallingServiceText, Progress: progressCallingService}
}

// Complete is the terminal success state.
func Complete() ProcessingStatus {
	return ProcessingStatus{IsProcessing: false, StatusText: StatusCompleteText, Progress: progressComplete}
}
