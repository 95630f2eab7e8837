package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrSlotNotFound is returned when a slot is not found.
	ErrSlotNotFound = errors.New("slot not found")
	// ErrSlotUnavailable is returned when booking a slot that is already taken.
	ErrSlotUnavailable = errors.New("slot is no longer available")
	// ErrInterviewNotFound is returned when an interview is not found.
	ErrInterviewNotFound = errors.New("interview not found")
	// ErrAccessDenied is returned when acting on another user's resource.
	ErrAccessDenied = errors.New("access denied")
	// ErrFeedbackNotAvailable is returned when feedback has not been submitted yet.
	ErrFeedbackNotAvailable = errors.New("feedback not available yet")
	// ErrInterviewNotUpcoming is returned when feedback is submitted on a
	// cancelled or already completed interview.
	ErrInterviewNotUpcoming = errors.New("interview is not upcoming")
	// ErrApplicationNotFound is returned when an interviewer application is not found.
	ErrApplicationNotFound = errors.New("application not found")
	// ErrInvalidRating is returned when a rating is outside 1-5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrSlotNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "SLOT_NOT_FOUND")
	case ErrSlotUnavailable:
		return NewHTTPError(http.StatusConflict, err.Error(), "SLOT_UNAVAILABLE")
	case ErrInterviewNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "INTERVIEW_NOT_FOUND")
	case ErrAccessDenied:
		return NewHTTPError(http.StatusForbidden, err.Error(), "ACCESS_DENIED")
	case ErrFeedbackNotAvailable:
		return NewHTTPError(http.StatusNotFound, err.Error(), "FEEDBACK_NOT_AVAILABLE")
	case ErrInterviewNotUpcoming:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INTERVIEW_NOT_UPCOMING")
	case ErrApplicationNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "APPLICATION_NOT_FOUND")
	case ErrInvalidRating:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_RATING")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
