package editor

import (
	"time"

	"github.com/google/uuid"
)

// ImageResult is one successful edit. It is never modified after creation.
type ImageResult struct {
	ID           string `json:"id"`
	OriginalURL  string `json:"original_url"`
	ProcessedURL string `json:"processed_url"`
	Mode         Mode   `json:"mode"`
	Timestamp    int64  `json:"timestamp"`
}

// NewImageResult builds the result of a successful submission of cfg.
func NewImageResult(cfg Configuration, processedURL string, now time.Time) ImageResult {
	return ImageResult{
		ID:           uuid.NewString(),
		OriginalURL:  cfg.BaseImage,
		ProcessedURL: processedURL,
		Mode:         cfg.Mode,
		Timestamp:    now.UnixMilli(),
	}
}

// History holds past results, newest first.
type History []ImageResult

// Prepend returns a new history with r in front. The receiver is untouched.
func (h History) Prepend(r ImageResult) History {
	next := make(History, 0, len(h)+1)
	next = append(next, r)
	return append(next, h...)
}

// Find looks up a result by id.
func (h History) Find(id string) (ImageResult, bool) {
	for _, r := range h {
		if r.ID == id {
			return r, true
		}
	}
	return ImageResult{}, false
}

func (h History) Len() int {
	return len(h)
}
