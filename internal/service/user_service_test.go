package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"interviewprep/internal/errors"
	"interviewprep/internal/model"
)

func TestUserService_GetUser(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		userID := uuid.New()
		mockRepo.On("FindByID", mock.Anything, userID).Return(&model.User{
			ID:    userID,
			Email: "test@example.com",
		}, nil)

		svc := NewUserService(mockRepo, nil)
		user, err := svc.GetUser(context.Background(), userID)

		require.NoError(t, err)
		assert.Equal(t, "test@example.com", user.Email)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)

		svc := NewUserService(mockRepo, nil)
		_, err := svc.GetUser(context.Background(), uuid.New())

		assert.Equal(t, errors.ErrUserNotFound, err)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	t.Run("only provided fields are written, profile marked complete", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		userID := uuid.New()
		college := "IIT Delhi"
		year := 3

		mockRepo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
		mockRepo.On("UpdateFields", mock.Anything, userID, mock.MatchedBy(func(fields map[string]interface{}) bool {
			if len(fields) != 3 {
				return false
			}
			return fields["profile_completed"] == true &&
				fields["college"] == college &&
				fields["current_year"] == year
		})).Return(nil)

		svc := NewUserService(mockRepo, nil)
		_, err := svc.UpdateProfile(context.Background(), userID, ProfileUpdate{
			College:     &college,
			CurrentYear: &year,
		})

		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)

		svc := NewUserService(mockRepo, nil)
		_, err := svc.UpdateProfile(context.Background(), uuid.New(), ProfileUpdate{})

		assert.Equal(t, errors.ErrUserNotFound, err)
		mockRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUserService_DeleteAccount(t *testing.T) {
	t.Run("deletes existing user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		userID := uuid.New()
		mockRepo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
		mockRepo.On("Delete", mock.Anything, userID).Return(nil)

		svc := NewUserService(mockRepo, nil)
		require.NoError(t, svc.DeleteAccount(context.Background(), userID))
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)

		svc := NewUserService(mockRepo, nil)
		err := svc.DeleteAccount(context.Background(), uuid.New())

		assert.Equal(t, errors.ErrUserNotFound, err)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
