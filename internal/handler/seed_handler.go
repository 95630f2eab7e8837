package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"interviewprep/internal/errors"
	"interviewprep/internal/repository"
	"interviewprep/internal/seed"
)

// SeedHandler exposes demo data seeding for development environments.
type SeedHandler struct {
	interviewerRepo repository.InterviewerRepository
	slotRepo        repository.SlotRepository
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(interviewerRepo repository.InterviewerRepository, slotRepo repository.SlotRepository) *SeedHandler {
	return &SeedHandler{interviewerRepo: interviewerRepo, slotRepo: slotRepo}
}

// SeedSlots godoc
// @Summary Seed demo interviewers and slots
// @Tags seed
// @Produce json
// @Success 200 {object} seed.Result
// @Failure 500 {object} errors.ErrorResponse
// @Router /seed/slots [get]
func (h *SeedHandler) SeedSlots(c echo.Context) error {
	result, err := seed.Run(c.Request().Context(), h.interviewerRepo, h.slotRepo)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to seed demo data",
			Code:  "SEED_FAILED",
		})
	}

	return c.JSON(http.StatusOK, result)
}
