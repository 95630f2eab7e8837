package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ApplicationStatus represents the review state of an interviewer application.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// InterviewerApplication is a request from a professional to join the
// interviewer directory. Approval creates an Interviewer record.
type InterviewerApplication struct {
	ID               uuid.UUID         `json:"id" gorm:"type:char(36);primaryKey"`
	FullName         string            `json:"full_name" gorm:"size:100;not null"`
	Email            string            `json:"email" gorm:"size:255;not null;index"`
	LinkedinURL      string            `json:"linkedin_url" gorm:"size:255"`
	Company          string            `json:"company" gorm:"size:100"`
	Designation      string            `json:"designation" gorm:"size:100"`
	Experience       int               `json:"experience"`
	HourlyRate       decimal.Decimal   `json:"hourly_rate" gorm:"type:decimal(20,2)"`
	ExpertiseDomains string            `json:"expertise_domains" gorm:"size:500"` // comma-separated
	Availability     string            `json:"availability" gorm:"size:500"`
	ResumeURL        *string           `json:"resume_url" gorm:"size:255"`
	Status           ApplicationStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	ReviewNotes      string            `json:"review_notes,omitempty" gorm:"type:text"`
	ReviewedAt       *time.Time        `json:"reviewed_at"`
	CreatedAt        time.Time         `json:"created_at"` // applied at
	UpdatedAt        time.Time         `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (a *InterviewerApplication) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
