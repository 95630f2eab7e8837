package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"interviewprep/internal/errors"
	"interviewprep/internal/model"
	"interviewprep/internal/service"
	"interviewprep/internal/storage"
)

// InterviewerHandler handles the interviewer directory and application flow.
type InterviewerHandler struct {
	interviewerService service.InterviewerService
	resumeStore        *storage.ResumeStore
}

// NewInterviewerHandler creates a new interviewer handler.
func NewInterviewerHandler(interviewerService service.InterviewerService, resumeStore *storage.ResumeStore) *InterviewerHandler {
	return &InterviewerHandler{interviewerService: interviewerService, resumeStore: resumeStore}
}

// ApplyRequest is an interviewer application submission.
type ApplyRequest struct {
	FullName         string  `json:"full_name" validate:"required,min=2,max=100"`
	Email            string  `json:"email" validate:"required,email"`
	LinkedinURL      string  `json:"linkedin_url" validate:"required,url"`
	Company          string  `json:"company" validate:"required,max=100"`
	Designation      string  `json:"designation" validate:"required,max=100"`
	Experience       int     `json:"experience" validate:"required,min=1,max=50"`
	HourlyRate       float64 `json:"hourly_rate" validate:"required,min=10,max=1000"`
	ExpertiseDomains string  `json:"expertise_domains" validate:"required"`
	Availability     string  `json:"availability" validate:"required"`
	ResumeURL        *string `json:"resume_url" validate:"omitempty"`
	Terms            bool    `json:"terms" validate:"required,eq=true"`
}

// ReviewRequest records an admin decision on an application.
type ReviewRequest struct {
	Status      string `json:"status" validate:"required,oneof=approved rejected"`
	ReviewNotes string `json:"review_notes" validate:"omitempty,max=1000"`
}

// List godoc
// @Summary List interviewers
// @Tags interviewers
// @Produce json
// @Param domain query string false "Domain"
// @Param experience query int false "Minimum years of experience"
// @Param rating query number false "Minimum rating"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /interviewers [get]
func (h *InterviewerHandler) List(c echo.Context) error {
	filter := model.InterviewerFilter{
		Domain: c.QueryParam("domain"),
	}

	if raw := c.QueryParam("experience"); raw != "" {
		experience, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid experience value")
		}
		filter.MinExperience = experience
	}

	if raw := c.QueryParam("rating"); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid rating value")
		}
		filter.MinRating = rating
	}

	interviewers, err := h.interviewerService.List(c.Request().Context(), filter)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"count":        len(interviewers),
		"interviewers": interviewers,
	})
}

// Profile godoc
// @Summary Get an interviewer's profile with live aggregates
// @Tags interviewers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Interviewer ID"
// @Success 200 {object} service.InterviewerProfile
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /interviewers/profile/{id} [get]
func (h *InterviewerHandler) Profile(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid interviewer ID")
	}

	profile, err := h.interviewerService.Profile(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, profile)
}

// Apply godoc
// @Summary Apply to become an interviewer
// @Tags interviewers
// @Accept json
// @Produce json
// @Param request body ApplyRequest true "Application"
// @Success 201 {object} model.InterviewerApplication
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /interviewers/apply [post]
func (h *InterviewerHandler) Apply(c echo.Context) error {
	var req ApplyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	application, err := h.interviewerService.Apply(c.Request().Context(), &model.InterviewerApplication{
		FullName:         req.FullName,
		Email:            req.Email,
		LinkedinURL:      req.LinkedinURL,
		Company:          req.Company,
		Designation:      req.Designation,
		Experience:       req.Experience,
		HourlyRate:       decimal.NewFromFloat(req.HourlyRate),
		ExpertiseDomains: req.ExpertiseDomains,
		Availability:     req.Availability,
		ResumeURL:        req.ResumeURL,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to submit application",
			Code:  "APPLICATION_FAILED",
		})
	}

	return c.JSON(http.StatusCreated, application)
}

// UploadResume godoc
// @Summary Upload a resume for an interviewer application
// @Tags interviewers
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param resume formData file true "Resume file (.pdf, .doc, .docx, max 10MB)"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /interviewers/resume [post]
func (h *InterviewerHandler) UploadResume(c echo.Context) error {
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

	key := fmt.Sprintf("applications/%s/%s%s", claims.UserID, uuid.New(), ext)
	resumeURL, err := h.resumeStore.Save(c.Request().Context(), key, src, file.Size, contentType)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to store resume",
			Code:  "RESUME_UPLOAD_FAILED",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"resume_url": resumeURL,
	})
}

// Applications godoc
// @Summary List interviewer applications
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(pending, approved, rejected)
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/applications [get]
func (h *InterviewerHandler) Applications(c echo.Context) error {
	status := model.ApplicationStatus(c.QueryParam("status"))

	applications, err := h.interviewerService.Applications(c.Request().Context(), status)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"count":        len(applications),
		"applications": applications,
	})
}

// Review godoc
// @Summary Review an interviewer application
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Param request body ReviewRequest true "Decision"
// @Success 200 {object} model.InterviewerApplication
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/applications/{id}/review [put]
func (h *InterviewerHandler) Review(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid application ID")
	}

	var req ReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	application, err := h.interviewerService.Review(c.Request().Context(), id, model.ApplicationStatus(req.Status), req.ReviewNotes)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, application)
}
