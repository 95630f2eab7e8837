package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"interviewprep/internal/cache"
	"interviewprep/internal/errors"
	"interviewprep/internal/model"
	"interviewprep/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// ProfileUpdate carries the optional profile fields; nil means "leave as is".
type ProfileUpdate struct {
	Name              *string
	Phone             *string
	College           *string
	Course            *string
	CurrentYear       *int
	GraduationYear    *int
	LinkedinURL       *string
	PreferredLanguage *string
}

// UserService exposes profile operations.
type UserService interface {
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, update ProfileUpdate) (*model.User, error)
	SetResume(ctx context.Context, id uuid.UUID, resumeURL string) (*model.User, error)
	DeleteAccount(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("user:%s", id.String())
}

// GetUser retrieves a user by ID with caching.
func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

// UpdateProfile applies a shallow merge of the provided fields and marks the
// profile completed.
func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, update ProfileUpdate) (*model.User, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	fields := map[string]interface{}{
		"profile_completed": true,
	}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Phone != nil {
		fields["phone"] = *update.Phone
	}
	if update.College != nil {
		fields["college"] = *update.College
	}
	if update.Course != nil {
		fields["course"] = *update.Course
	}
	if update.CurrentYear != nil {
		fields["current_year"] = *update.CurrentYear
	}
	if update.GraduationYear != nil {
		fields["graduation_year"] = *update.GraduationYear
	}
	if update.LinkedinURL != nil {
		fields["linkedin_url"] = *update.LinkedinURL
	}
	if update.PreferredLanguage != nil {
		fields["preferred_language"] = *update.PreferredLanguage
	}

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return s.repo.FindByID(ctx, id)
}

// SetResume persists the uploaded resume's reference path on the user.
func (s *userService) SetResume(ctx context.Context, id uuid.UUID, resumeURL string) (*model.User, error) {
	if err := s.repo.UpdateFields(ctx, id, map[string]interface{}{"resume_url": resumeURL}); err != nil {
		return nil, fmt.Errorf("set resume: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes the user. Upcoming interviews must already be
// cancelled by the caller (see BookingService.CancelUpcomingForUser).
func (s *userService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}
