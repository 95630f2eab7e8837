package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"interviewprep/internal/model"
)

// SlotRepository defines slot persistence operations.
type SlotRepository interface {
	Create(ctx context.Context, slot *model.InterviewSlot) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.InterviewSlot, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.InterviewSlot, error)
	ListAvailable(ctx context.Context, filter model.SlotFilter) ([]model.InterviewSlot, error)
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) error
}

type slotRepository struct {
	db *gorm.DB
}

// NewSlotRepository creates a new slot repository.
func NewSlotRepository(db *gorm.DB) SlotRepository {
	return &slotRepository{db: db}
}

func (r *slotRepository) Create(ctx context.Context, slot *model.InterviewSlot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *slotRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.InterviewSlot, error) {
	var slot model.InterviewSlot
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&slot).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

// FindByIDForUpdate fetches a slot with a row-level lock so the availability
// check and flip are serialized against concurrent bookings.
func (r *slotRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.InterviewSlot, error) {
	var slot model.InterviewSlot
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&slot).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

// ListAvailable returns available slots matching the filter, in insertion order.
func (r *slotRepository) ListAvailable(ctx context.Context, filter model.SlotFilter) ([]model.InterviewSlot, error) {
	q := r.db.WithContext(ctx).Where("available = ?", true)
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Domain != "" {
		q = q.Where("domain = ?", filter.Domain)
	}
	if filter.Profile != "" {
		q = q.Where("profile = ?", filter.Profile)
	}
	if filter.Date != nil {
		// match by calendar day, not instant
		q = q.Where("DATE(date) = DATE(?)", *filter.Date)
	}

	var slots []model.InterviewSlot
	if err := q.Order("created_at").Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *slotRepository) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	return r.db.WithContext(ctx).Model(&model.InterviewSlot{}).
		Where("id = ?", id).
		Update("available", available).Error
}
