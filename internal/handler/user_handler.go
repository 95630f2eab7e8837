package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"interviewprep/internal/errors"
	"interviewprep/internal/service"
	"interviewprep/internal/storage"
)

const maxResumeSize = 10 << 20 // 10 MB

var resumeContentTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// UserHandler handles profile management endpoints.
type UserHandler struct {
	userService    service.UserService
	bookingService service.BookingService
	resumeStore    *storage.ResumeStore
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService, bookingService service.BookingService, resumeStore *storage.ResumeStore) *UserHandler {
	return &UserHandler{
		userService:    userService,
		bookingService: bookingService,
		resumeStore:    resumeStore,
	}
}

// UpdateProfileRequest carries the optional profile fields. Absent fields are
// left untouched.
type UpdateProfileRequest struct {
	Name              *string `json:"name" validate:"omitempty,min=2,max=50"`
	Phone             *string `json:"phone" validate:"omitempty,max=20"`
	College           *string `json:"college" validate:"omitempty,max=255"`
	Course            *string `json:"course" validate:"omitempty,max=255"`
	CurrentYear       *int    `json:"current_year" validate:"omitempty,min=1,max=10"`
	GraduationYear    *int    `json:"graduation_year" validate:"omitempty,min=1950,max=2100"`
	LinkedinURL       *string `json:"linkedin_url" validate:"omitempty,url"`
	PreferredLanguage *string `json:"preferred_language" validate:"omitempty,max=50"`
}

// UpdateProfile godoc
// @Summary Update the caller's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), claims.UserID, service.ProfileUpdate{
		Name:              req.Name,
		Phone:             req.Phone,
		College:           req.College,
		Course:            req.Course,
		CurrentYear:       req.CurrentYear,
		GraduationYear:    req.GraduationYear,
		LinkedinURL:       req.LinkedinURL,
		PreferredLanguage: req.PreferredLanguage,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, user)
}

// UploadResume godoc
// @Summary Upload the caller's resume
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param resume formData file true "Resume file (.pdf, .doc, .docx, max 10MB)"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/resume [post]
func (h *UserHandler) UploadResume(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("resume")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "resume file is required")
	}

	if file.Size > maxResumeSize {
		return echo.NewHTTPError(http.StatusBadRequest, "resume must be 10MB or smaller")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	contentType, ok := resumeContentTypes[ext]
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "resume must be a .pdf, .doc or .docx file")
	}

	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "failed to read resume file")
	}
	defer src.Close()

	key := fmt.Sprintf("users/%s/%s%s", claims.UserID, uuid.New(), ext)
	resumeURL, err := h.resumeStore.Save(c.Request().Context(), key, src, file.Size, contentType)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to store resume",
			Code:  "RESUME_UPLOAD_FAILED",
		})
	}

	user, err := h.userService.SetResume(c.Request().Context(), claims.UserID, resumeURL)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, user)
}

// DeleteAccount godoc
// @Summary Delete the caller's account
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/profile [delete]
func (h *UserHandler) DeleteAccount(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}

	// Cancel upcoming interviews first so their slots are released.
	cancelled, err := h.bookingService.CancelUpcomingForUser(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	if err := h.userService.DeleteAccount(c.Request().Context(), claims.UserID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":              "account deleted successfully",
		"cancelled_interviews": cancelled,
	})
}
