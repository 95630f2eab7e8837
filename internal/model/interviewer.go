package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Interviewer is a directory entry for an approved interviewer.
type Interviewer struct {
	ID              uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Name            string          `json:"name" gorm:"size:255;not null"`
	Company         string          `json:"company" gorm:"size:255"`
	Designation     string          `json:"designation" gorm:"size:255"`
	Experience      int             `json:"experience"` // years
	HourlyRate      decimal.Decimal `json:"hourly_rate" gorm:"type:decimal(20,2)"`
	Domains         []string        `json:"domains" gorm:"serializer:json"`
	Rating          float64         `json:"rating"`
	TotalInterviews int             `json:"total_interviews"`
	Avatar          string          `json:"avatar,omitempty" gorm:"size:255"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (i *Interviewer) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// InterviewerFilter narrows the interviewer listing. Domain matches any of the
// interviewer's domains case-insensitively; the numeric fields are minimums.
type InterviewerFilter struct {
	Domain        string
	MinExperience int
	MinRating     float64
}
