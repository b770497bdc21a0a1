package models

import (
	"time"

	"github.com/google/uuid"
)

// Submission снимок полезной нагрузки, зафиксированный в начале отправки.
type Submission struct {
	Mode               Mode
	ID                 int
	Description        string
	RoomCount          int
	BathroomCount      int
	SizeInSquareMeters float64
	Price              float64
	PropertyTypeID     string
	SaleTypeID         string
	AgentID            string
	UniqueCode         string
	Improvements       []int
	Images             []ImageFile
	DeletedImages      []string
	IsAvailable        bool
}

type SubmissionOutcome string

const (
	OutcomeSucceeded   SubmissionOutcome = "succeeded"
	OutcomeFailed      SubmissionOutcome = "failed"
	OutcomeInvalid     SubmissionOutcome = "invalid"
	OutcomeDomainError SubmissionOutcome = "domain_error"
	OutcomeDiscarded   SubmissionOutcome = "discarded"
)

// SubmissionRecord строка истории отправок агента.
type SubmissionRecord struct {
	ID            uuid.UUID         `json:"id" db:"id"`
	SessionID     uuid.UUID         `json:"session_id" db:"session_id"`
	AgentID       string            `json:"agent_id" db:"agent_id"`
	Mode          Mode              `json:"mode" db:"mode"`
	PropertyID    *int              `json:"property_id,omitempty" db:"property_id"`
	Outcome       SubmissionOutcome `json:"outcome" db:"outcome"`
	Reason        string            `json:"reason,omitempty" db:"reason"`
	ImagesAdded   int               `json:"images_added" db:"images_added"`
	ImagesDeleted int               `json:"images_deleted" db:"images_deleted"`
	CreatedAt     time.Time         `json:"created_at" db:"created_at"`
}
