package editor

import (
	"errors"
	"fmt"

	"listing_editor/internal/domain/models"
)

var (
	ErrSubmissionInFlight = errors.New("submission already in flight")
	ErrSessionClosed      = errors.New("editor session is closed")
	ErrSessionNotFound    = errors.New("editor session not found")
	ErrNotAgent           = errors.New("agent role required")
	ErrImageNotFound      = errors.New("image not found")
)

const (
	MsgNoImagesRemain = "At least one image must remain on the listing"
	msgTooManyImages  = "A listing can have at most %d images"
)

// ValidationError несёт ошибки по полям формы.
type ValidationError struct {
	Result models.ValidationResult
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("draft validation failed: %d field(s)", len(e.Result.Errors))
}

// DomainError is a form-level rule violation found after schema validation.
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// SubmitError wraps a failed call to the property API.
type SubmitError struct {
	Message string
	Err     error
}

func (e *SubmitError) Error() string {
	return e.Message
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}
