package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"interviewprep/internal/errors"
	"interviewprep/internal/model"
	"interviewprep/internal/service"
)

// InterviewHandler handles slot browsing and the interview lifecycle.
type InterviewHandler struct {
	bookingService service.BookingService
}

// NewInterviewHandler creates a new interview handler.
func NewInterviewHandler(bookingService service.BookingService) *InterviewHandler {
	return &InterviewHandler{bookingService: bookingService}
}

// BookRequest identifies the slot to reserve.
type BookRequest struct {
	SlotID string `json:"slot_id" validate:"required,uuid"`
}

// FeedbackRequest carries interviewer feedback for an interview.
type FeedbackRequest struct {
	Feedback string `json:"feedback" validate:"required"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
}

// AvailableSlots godoc
// @Summary List available interview slots
// @Tags interviews
// @Produce json
// @Param type query string false "Interview type"
// @Param domain query string false "Domain"
// @Param profile query string false "Profile"
// @Param date query string false "Calendar day (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /interviews/available [get]
func (h *InterviewHandler) AvailableSlots(c echo.Context) error {
	filter := model.SlotFilter{
		Type:    c.QueryParam("type"),
		Domain:  c.QueryParam("domain"),
		Profile: c.QueryParam("profile"),
	}

	if raw := c.QueryParam("date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid date format, expected YYYY-MM-DD")
		}
		filter.Date = &date
	}

	slots, err := h.bookingService.AvailableSlots(c.Request().Context(), filter)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"count": len(slots),
		"slots": slots,
	})
}

// UserInterviews godoc
// @Summary List a user's interviews
// @Tags interviews
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /interviews/user/{userId} [get]
func (h *InterviewHandler) UserInterviews(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}

	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user ID")
	}

	if claims.UserID != userID {
		httpErr := errors.MapErrorToHTTP(errors.ErrAccessDenied)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	interviews, err := h.bookingService.UserInterviews(c.Request().Context(), userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"count":      len(interviews),
		"interviews": interviews,
	})
}

// Book godoc
// @Summary Book an interview slot
// @Tags interviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BookRequest true "Slot to book"
// @Success 201 {object} model.Interview
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /interviews/book [post]
func (h *InterviewHandler) Book(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}

	var req BookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	slotID, err := uuid.Parse(req.SlotID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid slot ID")
	}

	interview, err := h.bookingService.Book(c.Request().Context(), claims.UserID, slotID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, interview)
}

// Cancel godoc
// @Summary Cancel an interview
// @Tags interviews
// @Produce json
// @Security BearerAuth
// @Param id path string true "Interview ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /interviews/{id}/cancel [put]
func (h *InterviewHandler) Cancel(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}

	interviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid interview ID")
	}

	if err := h.bookingService.Cancel(c.Request().Context(), interviewID, claims.UserID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "interview cancelled successfully",
	})
}

// GetFeedback godoc
// @Summary Get feedback for an interview
// @Tags interviews
// @Produce json
// @Security BearerAuth
// @Param id path string true "Interview ID"
// @Success 200 {object} service.FeedbackResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /interviews/{id}/feedback [get]
func (h *InterviewHandler) GetFeedback(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}

	interviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid interview ID")
	}

	feedback, err := h.bookingService.GetFeedback(c.Request().Context(), interviewID, claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, feedback)
}

// SubmitFeedback godoc
// @Summary Submit feedback for an interview
// @Tags interviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Interview ID"
// @Param request body FeedbackRequest true "Feedback"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /interviews/{id}/feedback [post]
func (h *InterviewHandler) SubmitFeedback(c echo.Context) error {
	interviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid interview ID")
	}

	var req FeedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.bookingService.SubmitFeedback(c.Request().Context(), interviewID, req.Feedback, req.Rating); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "feedback submitted successfully",
	})
}

// Stats godoc
// @Summary Interview statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.InterviewStats
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/stats [get]
func (h *InterviewHandler) Stats(c echo.Context) error {
	stats, err := h.bookingService.Stats(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, stats)
}
