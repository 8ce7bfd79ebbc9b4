package handlers

import (
	"html/template"
	"strings"
	"time"

	"github.com/example/ai-editor/internal/editor"
	"github.com/example/ai-editor/internal/usecase"
)

type optionView struct {
	Value    string
	Label    string
	Selected bool
}

type slotView struct {
	Name   string
	Label  string
	Action string
	Image  template.URL
}

type historyView struct {
	ID           string
	ModeLabel    string
	OriginalURL  template.URL
	ProcessedURL template.URL
	CreatedAt    string
	DownloadURL  string
}

type pageView struct {
	Modes          []optionView
	Angles         []optionView
	ShowAngles     bool
	Slots          []slotView
	Error          string
	Status         editor.ProcessingStatus
	SubmitDisabled bool
	SubmitLabel    string
	History        []historyView

	// SubmitProcessingLabel is swapped in client-side while the request runs.
	SubmitProcessingLabel string
}

// buildPage maps a session snapshot onto what the template renders.
func buildPage(state usecase.State) pageView {
	cfg := state.Config
	page := pageView{
		ShowAngles:     cfg.Mode == editor.ModeCameraAngle,
		Error:          state.Error,
		Status:         state.Status,
		SubmitDisabled: state.Status.IsProcessing || !cfg.HasBaseImage(),
		SubmitLabel:    editor.SubmitLabel(state.Status),

		SubmitProcessingLabel: editor.SubmitProcessingLabel,
	}

	for _, m := range editor.Modes {
		page.Modes = append(page.Modes, optionView{Value: string(m), Label: editor.ModeLabel(m), Selected: m == cfg.Mode})
	}
	if page.ShowAngles {
		selected := cfg.EffectiveAngle()
		for _, a := range editor.CameraAngles {
			page.Angles = append(page.Angles, optionView{Value: string(a), Label: editor.AngleLabel(a), Selected: a == selected})
		}
	}

	page.Slots = append(page.Slots, slotView{
		Name:   "base",
		Label:  editor.BaseSlotLabel(cfg.Mode),
		Action: "/images/base",
		Image:  imageURL(cfg.BaseImage),
	})
	if cfg.Mode.RequiresReference() {
		page.Slots = append(page.Slots, slotView{
			Name:   "reference",
			Label:  editor.ReferenceSlotLabel(cfg.Mode),
			Action: "/images/reference",
			Image:  imageURL(cfg.ReferenceImage),
		})
	}

	for _, r := range state.History {
		page.History = append(page.History, historyView{
			ID:           r.ID,
			ModeLabel:    editor.ModeLabel(r.Mode),
			OriginalURL:  imageURL(r.OriginalURL),
			ProcessedURL: imageURL(r.ProcessedURL),
			CreatedAt:    time.UnixMilli(r.Timestamp).Format("2006-01-02 15:04:05"),
			DownloadURL:  "/download/" + r.ID,
		})
	}
	return page
}

// imageURL lets image data URLs through html/template, which would otherwise
// replace them. Anything else renders as empty.
func imageURL(handle string) template.URL {
	if !strings.HasPrefix(handle, "data:image/") {
		return ""
	}
	return template.URL(handle)
}
