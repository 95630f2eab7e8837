package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role values for User.Role.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User represents a registered account on the platform.
type User struct {
	ID                uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name              string    `json:"name" gorm:"size:255;not null"`
	Email             string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash      string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Phone             string    `json:"phone,omitempty" gorm:"size:32"`
	College           string    `json:"college,omitempty" gorm:"size:100"`
	Course            string    `json:"course,omitempty" gorm:"size:100"`
	CurrentYear       int       `json:"current_year,omitempty"`
	GraduationYear    int       `json:"graduation_year,omitempty"`
	LinkedinURL       string    `json:"linkedin_url,omitempty" gorm:"size:255"`
	PreferredLanguage string    `json:"preferred_language,omitempty" gorm:"size:50"`
	Role              string    `json:"role" gorm:"size:50;default:'student';index"`
	ProfileCompleted  bool      `json:"profile_completed" gorm:"default:false"`
	ResumeURL         *string   `json:"resume_url" gorm:"size:255"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
