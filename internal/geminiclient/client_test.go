package geminiclient

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"

	"github.com/example/ai-editor/internal/editor"
	"github.com/example/ai-editor/internal/imagedata"
	"github.com/example/ai-editor/internal/imageprocessor"
	"github.com/example/ai-editor/internal/logging"
	"github.com/example/ai-editor/internal/usecase"
)

type stubModel struct {
	parts []genai.Part
	resp  *genai.GenerateContentResponse
	err   error
	calls int
}

func (s *stubModel) GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	s.calls++
	s.parts = parts
	return s.resp, s.err
}

func responseWith(parts ...genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}},
	}
}

func newTestClient(model generator) *Client {
	return &Client{model: model, logger: zap.NewNop()}
}

func TestSubmitEditSendsPromptAndImages(t *testing.T) {
	model := &stubModel{resp: responseWith(genai.Text("here you go"), genai.Blob{MIMEType: "image/png", Data: []byte("png-bytes")})}
	client := newTestClient(model)

	req := &imageprocessor.Request{
		Mode:           editor.ModeVirtualTryOn,
		BaseImage:      imagedata.EncodeAs("image/jpeg", []byte("person")),
		ReferenceImage: imagedata.EncodeAs("image/png", []byte("garment")),
	}
	handle, err := client.SubmitEdit(context.Background(), req)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if handle != imagedata.EncodeAs("image/png", []byte("png-bytes")) {
		t.Fatalf("unexpected handle %q", handle)
	}

	if len(model.parts) != 3 {
		t.Fatalf("expected prompt + 2 images, got %d parts", len(model.parts))
	}
	if _, ok := model.parts[0].(genai.Text); !ok {
		t.Fatalf("first part should be the prompt, got %T", model.parts[0])
	}
	base, ok := model.parts[1].(genai.Blob)
	if !ok || base.MIMEType != "image/jpeg" || string(base.Data) != "person" {
		t.Fatalf("unexpected base part %+v", model.parts[1])
	}
}

func TestSubmitEditSingleImageModeSendsOneImage(t *testing.T) {
	model := &stubModel{resp: responseWith(genai.Blob{MIMEType: "image/png", Data: []byte("out")})}
	client := newTestClient(model)

	_, err := client.SubmitEdit(context.Background(), &imageprocessor.Request{
		Mode:        editor.ModeCameraAngle,
		BaseImage:   imagedata.EncodeAs("image/png", []byte("in")),
		CameraAngle: editor.AngleLowAngle,
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(model.parts) != 2 {
		t.Fatalf("expected prompt + 1 image, got %d parts", len(model.parts))
	}
	prompt := string(model.parts[0].(genai.Text))
	if !strings.Contains(prompt, "low-angle") {
		t.Fatalf("prompt does not mention the angle: %s", prompt)
	}
}

func TestSubmitEditMapsQuotaErrors(t *testing.T) {
	client := newTestClient(&stubModel{err: errors.New("googleapi: Error 429: quota exhausted")})

	_, err := client.SubmitEdit(context.Background(), &imageprocessor.Request{
		Mode:      editor.ModeRemoveText,
		BaseImage: imagedata.EncodeAs("image/png", []byte("in")),
	})
	var svcErr *imageprocessor.ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ServiceError, got %T %v", err, err)
	}
	if svcErr.Message != quotaMessage {
		t.Fatalf("unexpected message %q", svcErr.Message)
	}
}

func TestSubmitEditWithoutImageInResponse(t *testing.T) {
	client := newTestClient(&stubModel{resp: responseWith(genai.Text("I cannot edit this photo."))})

	_, err := client.SubmitEdit(context.Background(), &imageprocessor.Request{
		Mode:      editor.ModeRemoveText,
		BaseImage: imagedata.EncodeAs("image/png", []byte("in")),
	})
	var svcErr *imageprocessor.ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ServiceError, got %T %v", err, err)
	}
	if !strings.Contains(svcErr.Message, "I cannot edit this photo.") {
		t.Fatalf("model commentary missing from message: %q", svcErr.Message)
	}
}

func TestSubmitEditRejectsMalformedHandle(t *testing.T) {
	model := &stubModel{}
	client := newTestClient(model)

	_, err := client.SubmitEdit(context.Background(), &imageprocessor.Request{
		Mode:      editor.ModeRemoveText,
		BaseImage: "blob:not-a-data-url",
	})
	if !errors.Is(err, imagedata.ErrNotDataURL) {
		t.Fatalf("expected ErrNotDataURL, got %v", err)
	}
	var svcErr *imageprocessor.ServiceError
	if !errors.As(err, &svcErr) || strings.Contains(svcErr.Message, "data URL") {
		t.Fatalf("expected a user facing ServiceError, got %T %v", err, err)
	}
	if model.calls != 0 {
		t.Fatal("service must not be called with an undecodable image")
	}
}

func TestBuildPromptUnknownMode(t *testing.T) {
	if _, err := buildPrompt(&imageprocessor.Request{Mode: "BLUR"}); !errors.Is(err, editor.ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
}

func TestSubmitEditKeepsOperationErrorForLogs(t *testing.T) {
	client := newTestClient(&stubModel{err: errors.New("googleapi: Error 500: internal error")})

	_, err := client.SubmitEdit(context.Background(), &imageprocessor.Request{
		Mode:      editor.ModeRemoveText,
		BaseImage: imagedata.EncodeAs("image/png", []byte("in")),
	})
	var opErr *logging.OperationError
	if !errors.As(err, &opErr) || opErr.Operation != "geminiclient.generate_content" {
		t.Fatalf("expected wrapped OperationError, got %T %v", err, err)
	}
	if err.Error() != "googleapi: Error 500: internal error" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestSessionShowsGeminiMessageWithoutLogMetadata(t *testing.T) {
	client := newTestClient(&stubModel{err: errors.New("googleapi: Error 500: internal error")})
	session := usecase.NewSession("test", client, usecase.NewMemoryFlightGuard(), zap.NewNop(), time.Minute, time.Minute)
	session.SetMode(editor.ModeRemoveText)
	session.SetBaseImage(imagedata.EncodeAs("image/png", []byte("in")))

	if _, err := session.Process(context.Background()); err == nil {
		t.Fatal("expected the submission to fail")
	}

	state := session.Snapshot()
	if state.Error != "googleapi: Error 500: internal error" {
		t.Fatalf("unexpected display error %q", state.Error)
	}
	if state.Status.IsProcessing || state.History.Len() != 0 {
		t.Fatalf("unexpected state after failure %+v", state)
	}
}
