package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"interviewprep/internal/model"
)

// InterviewRepository defines interview persistence operations.
type InterviewRepository interface {
	Create(ctx context.Context, interview *model.Interview) error
	Update(ctx context.Context, interview *model.Interview) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Interview, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Interview, error)
	ListByUserAndStatus(ctx context.Context, userID uuid.UUID, status model.InterviewStatus) ([]model.Interview, error)
	InterviewerAggregates(ctx context.Context, interviewerID uuid.UUID) (completed int64, avgRating float64, err error)
	Stats(ctx context.Context) (*model.InterviewStats, error)
}

type interviewRepository struct {
	db *gorm.DB
}

// NewInterviewRepository creates a new interview repository.
func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

func (r *interviewRepository) Create(ctx context.Context, interview *model.Interview) error {
	return r.db.WithContext(ctx).Create(interview).Error
}

func (r *interviewRepository) Update(ctx context.Context, interview *model.Interview) error {
	return r.db.WithContext(ctx).Save(interview).Error
}

func (r *interviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Interview, error) {
	var interview model.Interview
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&interview).Error; err != nil {
		return nil, err
	}
	return &interview, nil
}

func (r *interviewRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Interview, error) {
	var interviews []model.Interview
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at").Find(&interviews).Error; err != nil {
		return nil, err
	}
	return interviews, nil
}

func (r *interviewRepository) ListByUserAndStatus(ctx context.Context, userID uuid.UUID, status model.InterviewStatus) ([]model.Interview, error) {
	var interviews []model.Interview
	if err := r.db.WithContext(ctx).Where("user_id = ? AND status = ?", userID, status).
		Find(&interviews).Error; err != nil {
		return nil, err
	}
	return interviews, nil
}

// InterviewerAggregates computes completed-interview count and average rating
// for an interviewer's directory profile.
func (r *interviewRepository) InterviewerAggregates(ctx context.Context, interviewerID uuid.UUID) (int64, float64, error) {
	var completed int64
	if err := r.db.WithContext(ctx).Model(&model.Interview{}).
		Where("interviewer_id = ? AND status = ?", interviewerID, model.InterviewStatusCompleted).
		Count(&completed).Error; err != nil {
		return 0, 0, err
	}

	var avgRating float64
	err := r.db.WithContext(ctx).Model(&model.Interview{}).
		Select("COALESCE(AVG(rating), 0)").
		Where("interviewer_id = ? AND rating IS NOT NULL", interviewerID).
		Row().Scan(&avgRating)
	if err != nil {
		return 0, 0, err
	}
	return completed, avgRating, nil
}

// Stats aggregates interview counts by status and paid revenue.
func (r *interviewRepository) Stats(ctx context.Context) (*model.InterviewStats, error) {
	stats := &model.InterviewStats{}

	if err := r.db.WithContext(ctx).Model(&model.Interview{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	byStatus := map[model.InterviewStatus]*int64{
		model.InterviewStatusUpcoming:  &stats.Upcoming,
		model.InterviewStatusCompleted: &stats.Completed,
		model.InterviewStatusCancelled: &stats.Cancelled,
	}
	for status, dst := range byStatus {
		if err := r.db.WithContext(ctx).Model(&model.Interview{}).
			Where("status = ?", status).Count(dst).Error; err != nil {
			return nil, err
		}
	}

	var revenue decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Interview{}).
		Select("COALESCE(SUM(price), 0)").
		Where("payment_status = ?", model.PaymentStatusPaid).
		Row().Scan(&revenue)
	if err != nil {
		return nil, err
	}
	stats.TotalRevenue = revenue

	return stats, nil
}
