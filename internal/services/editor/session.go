package editor

import (
	"fmt"
	"sync"
	"time"

	"listing_editor/internal/domain/models"
	"listing_editor/internal/services/reconciler"
	"listing_editor/internal/services/validation"

	"github.com/google/uuid"
)

type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

type FailureKind string

const (
	FailureValidation FailureKind = "validation"
	FailureDomain     FailureKind = "domain"
	FailureExternal   FailureKind = "external"
)

// Failure причина последнего неуспешного submit.
type Failure struct {
	Kind    FailureKind       `json:"kind"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Session владеет черновиком, набором изображений и состоянием отправки
// одного объявления. Все методы безопасны для конкурентного вызова.
type Session struct {
	ID        uuid.UUID
	AgentID   string
	CreatedAt time.Time

	mu       sync.Mutex
	mode     models.Mode
	draft    models.PropertyDraft
	images   *reconciler.Reconciler
	state    State
	failure  *Failure
	result   *models.Property
	closed   bool
	batch    string
	released []string
}

type SessionView struct {
	ID        string                 `json:"id"`
	Mode      models.Mode            `json:"mode"`
	State     State                  `json:"state"`
	Failure   *Failure               `json:"failure,omitempty"`
	Draft     models.PropertyDraft   `json:"draft"`
	Existing  []models.ExistingImage `json:"existingImages"`
	Remaining int                    `json:"remainingImages"`
	Property  *models.Property       `json:"property,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
}

// NewSession opens a create session when property is nil and an edit
// session pre-filled from property otherwise.
func NewSession(agentID string, property *models.Property, resolver reconciler.Resolver) *Session {
	s := &Session{
		ID:        uuid.New(),
		AgentID:   agentID,
		CreatedAt: time.Now().UTC(),
		mode:      models.ModeCreate,
		images:    reconciler.New(resolver),
		state:     StateIdle,
		draft:     models.PropertyDraft{IsAvailable: true},
	}

	if property != nil {
		s.mode = models.ModeEdit
		s.draft = property.ToDraft()
		s.images.Seed(property.Images)
	}

	return s
}

func (s *Session) Mode() models.Mode {
	return s.mode
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) View() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	return SessionView{
		ID:        s.ID.String(),
		Mode:      s.mode,
		State:     s.state,
		Failure:   s.failure,
		Draft:     s.snapshotLocked(),
		Existing:  s.images.Existing(),
		Remaining: s.images.Visible(),
		Property:  s.result,
		CreatedAt: s.CreatedAt,
	}
}

// Draft returns the draft with the image fields taken from the reconciler.
func (s *Session) Draft() models.PropertyDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) ApplyPatch(p DraftPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	p.apply(&s.draft)
	s.touchLocked()
	return nil
}

// SetImprovement adds or removes an amenity. Repeating a toggle is a no-op.
func (s *Session) SetImprovement(id int, checked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}

	has := s.draft.HasImprovement(id)
	switch {
	case checked && !has:
		s.draft.Improvements = append(append([]int(nil), s.draft.Improvements...), id)
	case !checked && has:
		out := make([]int, 0, len(s.draft.Improvements))
		for _, v := range s.draft.Improvements {
			if v != id {
				out = append(out, v)
			}
		}
		s.draft.Improvements = out
	}
	s.touchLocked()
	return nil
}

// ReplaceImages swaps the new-image set. The returned staging batches can be
// released right away; batches still referenced by an in-flight submission
// are held until it finishes.
func (s *Session) ReplaceImages(files []models.ImageFile, batch string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrSessionClosed
	}

	s.images.ReplaceAdded(files)
	prev := s.batch
	s.batch = batch
	s.touchLocked()

	if prev == "" {
		return nil, nil
	}
	if s.state == StateSubmitting {
		s.released = append(s.released, prev)
		return nil, nil
	}
	return []string{prev}, nil
}

func (s *Session) DeleteImage(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if !s.images.MarkDeleted(id) {
		return ErrImageNotFound
	}
	s.touchLocked()
	return nil
}

// Validate runs the schema without touching the submission state.
func (s *Session) Validate(v *validation.Validator) (models.ValidationResult, error) {
	s.mu.Lock()
	draft := s.snapshotLocked()
	s.mu.Unlock()

	return v.Validate(draft, s.mode)
}

// Close marks the session torn down. Returns false if it was already closed.
func (s *Session) Close() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	s.closed = true
	return true
}

func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// begin moves the session to submitting and captures the payload.
func (s *Session) begin(v *validation.Validator) (models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return models.Submission{}, ErrSessionClosed
	}
	if s.state == StateSubmitting {
		return models.Submission{}, ErrSubmissionInFlight
	}

	s.state = StateValidating
	s.failure = nil
	s.result = nil

	draft := s.snapshotLocked()
	res, err := v.Validate(draft, s.mode)
	if err != nil {
		s.state = StateIdle
		return models.Submission{}, err
	}
	if !res.Valid {
		s.failLocked(&Failure{Kind: FailureValidation, Fields: res.Errors})
		return models.Submission{}, &ValidationError{Result: res}
	}

	if s.mode == models.ModeEdit {
		if derr := checkRemaining(s.images.Visible(), v.MaxImages()); derr != nil {
			s.failLocked(&Failure{Kind: FailureDomain, Message: derr.Message})
			return models.Submission{}, derr
		}
	}

	sub, err := buildSubmission(s.mode, s.AgentID, draft)
	if err != nil {
		s.state = StateIdle
		return models.Submission{}, err
	}

	s.state = StateSubmitting
	return sub, nil
}

// finish applies the result of the external call. A closed session
// discards it.
func (s *Session) finish(property *models.Property, failure *Failure) (released []string, discarded bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	released = s.released
	s.released = nil

	if s.closed {
		return released, true
	}

	if failure != nil {
		s.failLocked(failure)
		return released, false
	}

	s.state = StateSucceeded
	s.result = property
	return released, false
}

func (s *Session) failLocked(f *Failure) {
	s.state = StateFailed
	s.failure = f
}

// touchLocked возвращает сессию в idle после завершённой попытки.
func (s *Session) touchLocked() {
	if s.state == StateSucceeded || s.state == StateFailed {
		s.state = StateIdle
		s.failure = nil
	}
}

func (s *Session) snapshotLocked() models.PropertyDraft {
	d := s.draft.Clone()
	d.Images, d.DeletedImages = s.images.Submission()
	if d.Improvements == nil {
		d.Improvements = []int{}
	}
	return d
}

func checkRemaining(remaining, max int) *DomainError {
	switch {
	case remaining == 0:
		return &DomainError{Message: MsgNoImagesRemain}
	case remaining > max:
		return &DomainError{Message: fmt.Sprintf(msgTooManyImages, max)}
	}
	return nil
}

func buildSubmission(mode models.Mode, agentID string, d models.PropertyDraft) (models.Submission, error) {
	// валидатор уже гарантировал наличие чисел
	if d.RoomCount == nil || d.BathroomCount == nil || d.SizeInSquareMeters == nil || d.Price == nil {
		return models.Submission{}, fmt.Errorf("editor.buildSubmission: %w", validation.ErrMalformedDraft)
	}

	sub := models.Submission{
		Mode:               mode,
		Description:        d.Description,
		RoomCount:          *d.RoomCount,
		BathroomCount:      *d.BathroomCount,
		SizeInSquareMeters: *d.SizeInSquareMeters,
		Price:              *d.Price,
		PropertyTypeID:     d.PropertyTypeID,
		SaleTypeID:         d.SaleTypeID,
		AgentID:            agentID,
		UniqueCode:         d.UniqueCode,
		Improvements:       d.Improvements,
		Images:             d.Images,
		IsAvailable:        true,
	}

	if mode == models.ModeEdit {
		if d.ID == nil {
			return models.Submission{}, fmt.Errorf("editor.buildSubmission: %w: edit draft without id", validation.ErrMalformedDraft)
		}
		sub.ID = *d.ID
		sub.IsAvailable = d.IsAvailable
		sub.DeletedImages = d.DeletedImages
	}

	return sub, nil
}
