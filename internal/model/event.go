package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventAction identifies what happened to an interview.
type EventAction string

const (
	EventBooked    EventAction = "booked"
	EventCancelled EventAction = "cancelled"
	EventFeedback  EventAction = "feedback"
)

// InterviewEvent is an audit entry for a completed booking-lifecycle
// transition. Detail carries optional context, like what triggered a
// cancellation.
type InterviewEvent struct {
	ID          uuid.UUID   `json:"id" gorm:"type:char(36);primaryKey"`
	InterviewID uuid.UUID   `json:"interview_id" gorm:"type:char(36);not null;index"`
	Action      EventAction `json:"action" gorm:"type:varchar(20);not null;index"`
	Detail      string      `json:"detail,omitempty" gorm:"type:text"`
	CreatedAt   time.Time   `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (e *InterviewEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
