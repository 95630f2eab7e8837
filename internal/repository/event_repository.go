package repository

import (
	"context"

	"gorm.io/gorm"

	"interviewprep/internal/model"
)

// EventRepository defines interview event persistence operations.
type EventRepository interface {
	Create(ctx context.Context, event *model.InterviewEvent) error
	CreateBatch(ctx context.Context, events []model.InterviewEvent) error
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

// Create creates a new event entry.
func (r *eventRepository) Create(ctx context.Context, event *model.InterviewEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// CreateBatch creates multiple event entries in a single transaction.
func (r *eventRepository) CreateBatch(ctx context.Context, events []model.InterviewEvent) error {
	if len(events) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(events, 100).Error
}
