package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InterviewSlot represents a bookable interviewer time slot.
// Availability is flipped off when the slot is booked and back on when the
// derived interview is cancelled.
type InterviewSlot struct {
	ID                 uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	InterviewerID      uuid.UUID       `json:"interviewer_id" gorm:"type:char(36);not null;index"`
	InterviewerName    string          `json:"interviewer_name" gorm:"size:255;not null"`
	InterviewerCompany string          `json:"interviewer_company" gorm:"size:255"`
	InterviewerAvatar  string          `json:"interviewer_avatar,omitempty" gorm:"size:255"`
	Date               time.Time       `json:"date" gorm:"not null;index"`
	Time               string          `json:"time" gorm:"size:20;not null"` // display label, e.g. "2:00 PM"
	Duration           int             `json:"duration" gorm:"not null"`     // minutes
	Price              decimal.Decimal `json:"price" gorm:"type:decimal(20,2);not null"`
	Type               string          `json:"type" gorm:"size:50;index"`
	Domain             string          `json:"domain" gorm:"size:50;index"`
	Profile            string          `json:"profile" gorm:"size:50;index"`
	Available          bool            `json:"available" gorm:"default:true;index"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (s *InterviewSlot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// SlotFilter narrows the available-slot listing. All fields are optional and
// combine with AND. Date matches by calendar day.
type SlotFilter struct {
	Type    string
	Domain  string
	Profile string
	Date    *time.Time
}
