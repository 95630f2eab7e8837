package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"interviewprep/internal/errors"
	"interviewprep/internal/model"
	"interviewprep/internal/repository"
)

// InterviewerProfile is a directory entry enriched with aggregates computed
// from the interviews table.
type InterviewerProfile struct {
	model.Interviewer
	CompletedInterviews int64   `json:"completed_interviews"`
	AverageRating       float64 `json:"average_rating"`
}

// InterviewerService handles the interviewer directory and the application
// review flow.
type InterviewerService interface {
	List(ctx context.Context, filter model.InterviewerFilter) ([]model.Interviewer, error)
	Profile(ctx context.Context, id uuid.UUID) (*InterviewerProfile, error)
	Apply(ctx context.Context, application *model.InterviewerApplication) (*model.InterviewerApplication, error)
	Applications(ctx context.Context, status model.ApplicationStatus) ([]model.InterviewerApplication, error)
	Review(ctx context.Context, id uuid.UUID, status model.ApplicationStatus, notes string) (*model.InterviewerApplication, error)
}

type interviewerService struct {
	interviewerRepo repository.InterviewerRepository
	applicationRepo repository.ApplicationRepository
	interviewRepo   repository.InterviewRepository
}

// NewInterviewerService creates a new interviewer service.
func NewInterviewerService(
	interviewerRepo repository.InterviewerRepository,
	applicationRepo repository.ApplicationRepository,
	interviewRepo repository.InterviewRepository,
) InterviewerService {
	return &interviewerService{
		interviewerRepo: interviewerRepo,
		applicationRepo: applicationRepo,
		interviewRepo:   interviewRepo,
	}
}

// List returns interviewers matching the filter.
func (s *interviewerService) List(ctx context.Context, filter model.InterviewerFilter) ([]model.Interviewer, error) {
	return s.interviewerRepo.List(ctx, filter)
}

// Profile returns a directory entry with live aggregates.
func (s *interviewerService) Profile(ctx context.Context, id uuid.UUID) (*InterviewerProfile, error) {
	interviewer, err := s.interviewerRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	completed, avgRating, err := s.interviewRepo.InterviewerAggregates(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("interviewer aggregates: %w", err)
	}

	return &InterviewerProfile{
		Interviewer:         *interviewer,
		CompletedInterviews: completed,
		AverageRating:       avgRating,
	}, nil
}

// Apply files a pending application.
func (s *interviewerService) Apply(ctx context.Context, application *model.InterviewerApplication) (*model.InterviewerApplication, error) {
	application.Status = model.ApplicationStatusPending
	if err := s.applicationRepo.Create(ctx, application); err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}
	return application, nil
}

// Applications lists applications, optionally by status.
func (s *interviewerService) Applications(ctx context.Context, status model.ApplicationStatus) ([]model.InterviewerApplication, error) {
	return s.applicationRepo.List(ctx, status)
}

// Review records the decision. Approval adds the applicant to the interviewer
// directory with domains split out of the free-text expertise field.
func (s *interviewerService) Review(ctx context.Context, id uuid.UUID, status model.ApplicationStatus, notes string) (*model.InterviewerApplication, error) {
	application, err := s.applicationRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrApplicationNotFound
		}
		return nil, err
	}

	now := time.Now()
	application.Status = status
	application.ReviewNotes = notes
	application.ReviewedAt = &now

	if err := s.applicationRepo.Update(ctx, application); err != nil {
		return nil, fmt.Errorf("update application: %w", err)
	}

	if status == model.ApplicationStatusApproved {
		interviewer := &model.Interviewer{
			Name:        application.FullName,
			Company:     application.Company,
			Designation: application.Designation,
			Experience:  application.Experience,
			HourlyRate:  application.HourlyRate,
			Domains:     splitDomains(application.ExpertiseDomains),
			Avatar:      "/api/placeholder/40/40",
		}
		if err := s.interviewerRepo.Create(ctx, interviewer); err != nil {
			return nil, fmt.Errorf("create interviewer: %w", err)
		}
	}

	return application, nil
}

func splitDomains(raw string) []string {
	parts := strings.Split(raw, ",")
	domains := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			domains = append(domains, trimmed)
		}
	}
	return domains
}
