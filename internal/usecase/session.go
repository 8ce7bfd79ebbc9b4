package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/ai-editor/internal/editor"
	"github.com/example/ai-editor/internal/imageprocessor"
	"github.com/example/ai-editor/internal/logging"
)

// ErrSubmissionInProgress is returned when a submit arrives while another one
// for the same session has not resolved yet.
var ErrSubmissionInProgress = errors.New("a submission is already in progress")

// ValidationError reports a configuration that cannot be submitted. The
// service is never contacted when it is returned.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }

// State is a point-in-time copy of everything the page renders.
type State struct {
	Config  editor.Configuration    `json:"config"`
	Status  editor.ProcessingStatus `json:"status"`
	Error   string                  `json:"error,omitempty"`
	History editor.History          `json:"history"`
}

// Session owns the editor state of one user and runs submissions against the
// image service.
type Session struct {
	mu    sync.Mutex
	state State

	key            string
	processor      imageprocessor.Client
	guard          FlightGuard
	logger         *zap.Logger
	now            func() time.Time
	processTimeout time.Duration
	flightTTL      time.Duration
	retryAttempts  int
	initialBackoff time.Duration
	maxBackoff     time.Duration
}

// NewSession constructs a session in its default configuration.
func NewSession(key string, processor imageprocessor.Client, guard FlightGuard, logger *zap.Logger, processTimeout, flightTTL time.Duration) *Session {
	return &Session{
		state: State{
			Config:  editor.DefaultConfiguration(),
			Status:  editor.Idle(),
			History: editor.History{},
		},
		key:            key,
		processor:      processor,
		guard:          guard,
		logger:         logger.Named("editor_session").With(zap.String("session", key)),
		now:            time.Now,
		processTimeout: processTimeout,
		flightTTL:      flightTTL,
		retryAttempts:  3,
		initialBackoff: 50 * time.Millisecond,
		maxBackoff:     time.Second,
	}
}

// Snapshot returns a copy of the current state. History entries are immutable
// and shared.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Result looks up a past result by id.
func (s *Session) Result(id string) (editor.ImageResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.History.Find(id)
}

func (s *Session) SetMode(mode editor.Mode) State {
	return s.update(func(c editor.Configuration) editor.Configuration { return c.WithMode(mode) })
}

func (s *Session) SetBaseImage(handle string) State {
	return s.update(func(c editor.Configuration) editor.Configuration { return c.WithBaseImage(handle) })
}

func (s *Session) SetReferenceImage(handle string) State {
	return s.update(func(c editor.Configuration) editor.Configuration { return c.WithReferenceImage(handle) })
}

func (s *Session) SetCameraAngle(angle editor.CameraAngle) State {
	return s.update(func(c editor.Configuration) editor.Configuration { return c.WithCameraAngle(angle) })
}

func (s *Session) ClearImages() State {
	return s.update(editor.Configuration.ClearImages)
}

func (s *Session) update(transition func(editor.Configuration) editor.Configuration) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Config = transition(s.state.Config)
	return s.state
}

// Process validates the current configuration, calls the image service and
// records the outcome. The configuration is captured when Process starts;
// later edits do not affect the running call. Cancelling ctx does not abort
// the service call once it has started.
func (s *Session) Process(ctx context.Context) (*editor.ImageResult, error) {
	submissionID := uuid.NewString()
	opLogger := logging.WithOperation(s.logger, "usecase.process", submissionID)

	s.mu.Lock()
	cfg := s.state.Config
	if err := editor.Validate(cfg); err != nil {
		// A running call owns the error banner until it resolves.
		if !s.state.Status.IsProcessing {
			s.state.Error = err.Error()
		}
		s.mu.Unlock()
		opLogger.Info("submission rejected", zap.Error(err))
		return nil, &ValidationError{Err: err}
	}
	s.mu.Unlock()

	var acquired bool
	if err := s.withRetry(ctx, submissionID, "flight.acquire", func() error {
		ok, err := s.guard.Acquire(ctx, s.key, submissionID, s.flightTTL)
		acquired = ok
		return err
	}); err != nil {
		s.fail(editor.GenericFailureText)
		return nil, err
	}
	if !acquired {
		opLogger.Info("submission ignored, another one is in flight")
		return nil, ErrSubmissionInProgress
	}
	defer s.releaseFlight(submissionID, opLogger)

	s.mu.Lock()
	s.state.Error = ""
	s.state.Status = editor.Analyzing()
	s.mu.Unlock()

	s.setStatus(editor.CallingService())
	opLogger.Info("calling image service", zap.String("mode", string(cfg.Mode)))

	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.processTimeout)
	handle, err := s.processor.SubmitEdit(callCtx, imageprocessor.NewRequest(cfg))
	cancel()
	if err != nil {
		message := failureMessage(err)
		s.fail(message)
		opLogger.Error("image service failed", zap.Error(err), zap.String("display_error", message))
		return nil, err
	}

	result := editor.NewImageResult(cfg, handle, s.now())
	s.mu.Lock()
	s.state.History = s.state.History.Prepend(result)
	s.state.Status = editor.Complete()
	s.mu.Unlock()

	opLogger.Info("submission complete", zap.String("result_id", result.ID))
	return &result, nil
}

func (s *Session) setStatus(status editor.ProcessingStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Status = status
}

func (s *Session) fail(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Error = message
	s.state.Status = editor.Idle()
}

func (s *Session) releaseFlight(submissionID string, opLogger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.withRetry(ctx, submissionID, "flight.release", func() error {
		return s.guard.Release(ctx, s.key, submissionID)
	}); err != nil {
		opLogger.Warn("failed to release flight marker", zap.Error(err))
	}
}

// failureMessage turns a service failure into the text shown to the user.
func failureMessage(err error) string {
	var svcErr *imageprocessor.ServiceError
	if errors.As(err, &svcErr) && strings.TrimSpace(svcErr.Message) != "" {
		return svcErr.Message
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return editor.GenericFailureText
}
