package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"interviewprep/internal/model"
)

// InterviewerRepository defines interviewer directory persistence operations.
type InterviewerRepository interface {
	Create(ctx context.Context, interviewer *model.Interviewer) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Interviewer, error)
	List(ctx context.Context, filter model.InterviewerFilter) ([]model.Interviewer, error)
}

type interviewerRepository struct {
	db *gorm.DB
}

// NewInterviewerRepository creates a new interviewer repository.
func NewInterviewerRepository(db *gorm.DB) InterviewerRepository {
	return &interviewerRepository{db: db}
}

func (r *interviewerRepository) Create(ctx context.Context, interviewer *model.Interviewer) error {
	return r.db.WithContext(ctx).Create(interviewer).Error
}

func (r *interviewerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Interviewer, error) {
	var interviewer model.Interviewer
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&interviewer).Error; err != nil {
		return nil, err
	}
	return &interviewer, nil
}

func (r *interviewerRepository) List(ctx context.Context, filter model.InterviewerFilter) ([]model.Interviewer, error) {
	q := r.db.WithContext(ctx)
	if filter.Domain != "" {
		// domains is a JSON array column; substring match is good enough for
		// the directory search box
		q = q.Where("LOWER(domains) LIKE ?", "%"+strings.ToLower(filter.Domain)+"%")
	}
	if filter.MinExperience > 0 {
		q = q.Where("experience >= ?", filter.MinExperience)
	}
	if filter.MinRating > 0 {
		q = q.Where("rating >= ?", filter.MinRating)
	}

	var interviewers []model.Interviewer
	if err := q.Order("created_at").Find(&interviewers).Error; err != nil {
		return nil, err
	}
	return interviewers, nil
}
