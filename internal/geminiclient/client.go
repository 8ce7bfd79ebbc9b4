package geminiclient

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/example/ai-editor/internal/imagedata"
	"github.com/example/ai-editor/internal/imageprocessor"
	"github.com/example/ai-editor/internal/logging"
)

const (
	quotaMessage   = "Quota exceeded. Please try again later."
	noImageMessage = "The AI service did not return an image."
)

// generator is the subset of *genai.GenerativeModel used here.
type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Client implements imageprocessor.Client on top of a Gemini image model.
type Client struct {
	model  generator
	closer func() error
	logger *zap.Logger
}

var _ imageprocessor.Client = (*Client)(nil)

// New connects to Gemini with an API key and selects modelName.
func New(ctx context.Context, apiKey, modelName string, logger *zap.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is not set")
	}
	gc, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		wrapped := logging.NewOperationError("geminiclient.new_client", "", err)
		logger.Error("failed to create gemini client", logging.Fields(wrapped)...)
		return nil, wrapped
	}
	return &Client{
		model:  gc.GenerativeModel(modelName),
		closer: gc.Close,
		logger: logger.Named("gemini_client").With(zap.String("model", modelName)),
	}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer()
}

// SubmitEdit sends the images and a mode specific instruction to Gemini and
// returns the first image part of the answer as a data URL.
func (c *Client) SubmitEdit(ctx context.Context, req *imageprocessor.Request) (string, error) {
	prompt, err := buildPrompt(req)
	if err != nil {
		return "", err
	}

	parts := []genai.Part{genai.Text(prompt)}
	for _, handle := range []string{req.BaseImage, req.ReferenceImage} {
		if handle == "" {
			continue
		}
		mimeType, data, err := imagedata.Decode(handle)
		if err != nil {
			return "", &imageprocessor.ServiceError{
				Message: "The uploaded image could not be read.",
				Err:     fmt.Errorf("decode input image: %w", err),
			}
		}
		parts = append(parts, genai.Blob{MIMEType: mimeType, Data: data})
	}

	resp, err := c.model.GenerateContent(ctx, parts...)
	if err != nil {
		wrapped := logging.NewOperationError("geminiclient.generate_content", "", err)
		c.logger.Error("gemini call failed", append(logging.Fields(wrapped), zap.String("mode", string(req.Mode)))...)
		message := err.Error()
		if isQuotaError(err) {
			message = quotaMessage
		}
		return "", &imageprocessor.ServiceError{Message: message, Err: wrapped}
	}

	return c.extractImage(resp)
}

func (c *Client) extractImage(resp *genai.GenerateContentResponse) (string, error) {
	var commentary []string
	if resp != nil {
		for _, cand := range resp.Candidates {
			if cand == nil || cand.Content == nil {
				continue
			}
			for _, part := range cand.Content.Parts {
				switch p := part.(type) {
				case genai.Blob:
					if len(p.Data) == 0 {
						continue
					}
					mimeType := p.MIMEType
					if mimeType == "" {
						mimeType, _ = imagedata.Sniff(p.Data)
					}
					return imagedata.EncodeAs(mimeType, p.Data), nil
				case genai.Text:
					commentary = append(commentary, strings.TrimSpace(string(p)))
				default:
					c.logger.Debug("ignoring response part", zap.String("type", fmt.Sprintf("%T", p)))
				}
			}
		}
	}

	message := noImageMessage
	if text := strings.TrimSpace(strings.Join(commentary, " ")); text != "" {
		message = noImageMessage + " " + text
	}
	c.logger.Warn("gemini response without image", zap.Strings("commentary", commentary))
	return "", &imageprocessor.ServiceError{Message: message}
}

func isQuotaError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "resourceexhausted")
}
