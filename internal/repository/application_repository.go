package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"interviewprep/internal/model"
)

// ApplicationRepository defines interviewer application persistence operations.
type ApplicationRepository interface {
	Create(ctx context.Context, application *model.InterviewerApplication) error
	Update(ctx context.Context, application *model.InterviewerApplication) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.InterviewerApplication, error)
	List(ctx context.Context, status model.ApplicationStatus) ([]model.InterviewerApplication, error)
}

type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new application repository.
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, application *model.InterviewerApplication) error {
	return r.db.WithContext(ctx).Create(application).Error
}

func (r *applicationRepository) Update(ctx context.Context, application *model.InterviewerApplication) error {
	return r.db.WithContext(ctx).Save(application).Error
}

func (r *applicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.InterviewerApplication, error) {
	var application model.InterviewerApplication
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&application).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

// List returns applications, optionally restricted to a status.
func (r *applicationRepository) List(ctx context.Context, status model.ApplicationStatus) ([]model.InterviewerApplication, error) {
	q := r.db.WithContext(ctx)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var applications []model.InterviewerApplication
	if err := q.Order("created_at").Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}
