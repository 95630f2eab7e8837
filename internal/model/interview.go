package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InterviewStatus represents the lifecycle state of an interview.
type InterviewStatus string

const (
	InterviewStatusUpcoming  InterviewStatus = "upcoming"
	InterviewStatusCompleted InterviewStatus = "completed"
	InterviewStatusCancelled InterviewStatus = "cancelled"
)

// PaymentStatus represents the payment state of an interview booking.
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPending PaymentStatus = "pending"
)

// Interview represents a confirmed booking derived from a slot. It keeps an
// explicit reference to the originating slot so cancellation can restore
// availability by key.
type Interview struct {
	ID                 uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	UserID             uuid.UUID       `json:"user_id" gorm:"type:char(36);not null;index"`
	SlotID             uuid.UUID       `json:"slot_id" gorm:"type:char(36);not null;index"`
	InterviewerID      uuid.UUID       `json:"interviewer_id" gorm:"type:char(36);not null;index"`
	InterviewerName    string          `json:"interviewer_name" gorm:"size:255;not null"`
	InterviewerCompany string          `json:"interviewer_company" gorm:"size:255"`
	Type               string          `json:"type" gorm:"size:50"`
	Domain             string          `json:"domain" gorm:"size:50"`
	Profile            string          `json:"profile" gorm:"size:50"`
	Date               time.Time       `json:"date" gorm:"not null"`
	Time               string          `json:"time" gorm:"size:20;not null"`
	Duration           int             `json:"duration" gorm:"not null"`
	Status             InterviewStatus `json:"status" gorm:"type:varchar(20);not null;default:'upcoming';index"`
	PaymentStatus      PaymentStatus   `json:"payment_status" gorm:"type:varchar(20);not null;default:'paid'"`
	MeetingLink        string          `json:"meeting_link" gorm:"size:255"`
	Price              decimal.Decimal `json:"price" gorm:"type:decimal(20,2);not null"`
	Feedback           *string         `json:"feedback" gorm:"type:text"`
	Rating             *int            `json:"rating"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (i *Interview) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// InterviewStats aggregates interviews by status plus revenue over paid
// bookings.
type InterviewStats struct {
	Total        int64           `json:"total"`
	Upcoming     int64           `json:"upcoming"`
	Completed    int64           `json:"completed"`
	Cancelled    int64           `json:"cancelled"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}
