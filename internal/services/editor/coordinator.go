package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"listing_editor/internal/domain/models"
	"listing_editor/internal/lib/logger/sl"
	"listing_editor/internal/metrics"
	"listing_editor/internal/services/validation"

	"github.com/google/uuid"
)

const (
	RedirectAfterSubmit = "/listings"

	defaultSubmitTimeout = 60 * time.Second
)

type PropertyWriter interface {
	CreateProperty(ctx context.Context, sub models.Submission) (*models.Property, error)
	UpdateProperty(ctx context.Context, sub models.Submission) (*models.Property, error)
}

type SubmissionRecorder interface {
	SaveSubmission(ctx context.Context, rec models.SubmissionRecord) error
}

// Outcome результат успешной отправки.
type Outcome struct {
	State    State            `json:"state"`
	Mode     models.Mode      `json:"mode"`
	Property *models.Property `json:"property"`
	Redirect string           `json:"redirect"`

	released []string
}

// Coordinator gates submissions with the validator and talks to the property API.
type Coordinator struct {
	log       *slog.Logger
	validator *validation.Validator
	writer    PropertyWriter
	recorder  SubmissionRecorder
	timeout   time.Duration
}

func NewCoordinator(log *slog.Logger, validator *validation.Validator, writer PropertyWriter, recorder SubmissionRecorder, timeout time.Duration) *Coordinator {
	if timeout <= 0 {
		timeout = defaultSubmitTimeout
	}
	return &Coordinator{
		log:       log,
		validator: validator,
		writer:    writer,
		recorder:  recorder,
		timeout:   timeout,
	}
}

// Submit validates the session draft and sends it. The external call is not
// bound to ctx cancellation; it only inherits its values.
func (c *Coordinator) Submit(ctx context.Context, s *Session) (*Outcome, error) {
	const op = "editor.Coordinator.Submit"

	log := c.log.With(
		slog.String("op", op),
		slog.String("session_id", s.ID.String()),
		slog.String("mode", string(s.Mode())),
	)

	sub, err := s.begin(c.validator)
	if err != nil {
		var (
			verr *ValidationError
			derr *DomainError
		)
		switch {
		case errors.As(err, &verr):
			log.Info("draft rejected by validation", slog.Int("fields", len(verr.Result.Errors)))
			c.record(ctx, s, models.OutcomeInvalid, "", nil, models.Submission{Mode: s.Mode()})
		case errors.As(err, &derr):
			log.Info("draft rejected by domain check", slog.String("reason", derr.Message))
			c.record(ctx, s, models.OutcomeDomainError, derr.Message, nil, models.Submission{Mode: s.Mode()})
		case errors.Is(err, ErrSubmissionInFlight):
			log.Warn("submission already in flight")
		default:
			log.Error("failed to start submission", sl.Err(err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("submitting listing",
		slog.Int("images_added", len(sub.Images)),
		slog.Int("images_deleted", len(sub.DeletedImages)),
	)

	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()

	start := time.Now()
	property, callErr := c.send(callCtx, sub)
	metrics.SubmissionDuration.WithLabelValues(string(sub.Mode)).Observe(time.Since(start).Seconds())

	var failure *Failure
	if callErr == nil && property == nil {
		callErr = errors.New("empty response from property api")
	}
	if callErr != nil {
		failure = &Failure{Kind: FailureExternal, Message: failureMessage(sub.Mode, callErr)}
	}

	released, discarded := s.finish(property, failure)

	switch {
	case discarded:
		log.Warn("session closed during submission, result discarded")
		c.record(ctx, s, models.OutcomeDiscarded, "", property, sub)
		return &Outcome{released: released}, fmt.Errorf("%s: %w", op, ErrSessionClosed)
	case callErr != nil:
		log.Error("property api call failed", sl.Err(callErr))
		c.record(ctx, s, models.OutcomeFailed, failure.Message, nil, sub)
		return &Outcome{State: StateFailed, Mode: sub.Mode, released: released}, &SubmitError{Message: failure.Message, Err: callErr}
	}

	log.Info("listing saved", slog.Int("property_id", property.ID))
	c.record(ctx, s, models.OutcomeSucceeded, "", property, sub)

	return &Outcome{
		State:    StateSucceeded,
		Mode:     sub.Mode,
		Property: property,
		Redirect: RedirectAfterSubmit,
		released: released,
	}, nil
}

func (c *Coordinator) send(ctx context.Context, sub models.Submission) (*models.Property, error) {
	if sub.Mode == models.ModeEdit {
		return c.writer.UpdateProperty(ctx, sub)
	}
	return c.writer.CreateProperty(ctx, sub)
}

func (c *Coordinator) record(ctx context.Context, s *Session, outcome models.SubmissionOutcome, reason string, property *models.Property, sub models.Submission) {
	metrics.SubmissionsTotal.WithLabelValues(string(s.Mode()), string(outcome)).Inc()

	if c.recorder == nil {
		return
	}

	rec := models.SubmissionRecord{
		ID:            uuid.New(),
		SessionID:     s.ID,
		AgentID:       s.AgentID,
		Mode:          s.Mode(),
		Outcome:       outcome,
		Reason:        reason,
		ImagesAdded:   len(sub.Images),
		ImagesDeleted: len(sub.DeletedImages),
		CreatedAt:     time.Now().UTC(),
	}
	switch {
	case property != nil:
		id := property.ID
		rec.PropertyID = &id
	case sub.Mode == models.ModeEdit && sub.ID != 0:
		id := sub.ID
		rec.PropertyID = &id
	}

	if err := c.recorder.SaveSubmission(context.WithoutCancel(ctx), rec); err != nil {
		c.log.Warn("failed to record submission",
			slog.String("op", "editor.Coordinator.record"),
			sl.Err(err),
		)
	}
}

// failureMessage prefers the reason reported by the server.
func failureMessage(mode models.Mode, err error) string {
	var um interface{ UserMessage() string }
	if errors.As(err, &um) && um.UserMessage() != "" {
		return um.UserMessage()
	}
	if mode == models.ModeEdit {
		return "Failed to update property."
	}
	return "Failed to create property."
}
