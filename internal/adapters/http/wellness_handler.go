package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/studywell/dashboard/internal/infrastructure/logger"
	"github.com/studywell/dashboard/internal/ports"
)

// HealthCreated echoes a stored health record. Date is the stored day key,
// midnight at UTC+9 expressed in UTC.
type HealthCreated struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date" example:"2025-05-31T15:00:00Z"`
	Condition int       `json:"condition"`
}

// MoodCreated echoes a stored mood entry
type MoodCreated struct {
	ID   string    `json:"id"`
	Mood int       `json:"mood"`
	At   time.Time `json:"at"`
}

// WellnessHandler handles health and mood submissions
type WellnessHandler struct {
	wellnessService ports.WellnessService
	logger          *logger.Logger
}

// NewWellnessHandler creates a new wellness handler
func NewWellnessHandler(wellnessService ports.WellnessService, logger *logger.Logger) *WellnessHandler {
	return &WellnessHandler{
		wellnessService: wellnessService,
		logger:          logger,
	}
}

// SubmitHealth godoc
// @Summary Record today's condition
// @Description Creates or overwrites the record of a civil day. condition is 1..3 or 良い/普通/悪い/good/normal/bad.
// @Tags wellness
// @Accept json
// @Produce json
// @Param request body ports.SubmitHealthRequest true "Health data"
// @Success 201 {object} CreatedResponse[HealthCreated]
// @Failure 400 {object} ErrorResponse
// @Router /health [post]
func (h *WellnessHandler) SubmitHealth(c echo.Context) error {
	var req ports.SubmitHealthRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	rec, err := h.wellnessService.SubmitHealth(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, CreatedResponse[HealthCreated]{
		OK: true,
		Created: HealthCreated{
			ID:        rec.ID,
			Date:      rec.Date,
			Condition: rec.Condition,
		},
	})
}

// SubmitMood godoc
// @Summary Log a mood sample
// @Description mood is 1..5, an emoji or very_good/good/neutral/bad/very_bad.
// @Tags wellness
// @Accept json
// @Produce json
// @Param request body ports.SubmitMoodRequest true "Mood data"
// @Success 201 {object} CreatedResponse[MoodCreated]
// @Failure 400 {object} ErrorResponse
// @Router /mood [post]
func (h *WellnessHandler) SubmitMood(c echo.Context) error {
	var req ports.SubmitMoodRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	entry, err := h.wellnessService.SubmitMood(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, CreatedResponse[MoodCreated]{
		OK: true,
		Created: MoodCreated{
			ID:   entry.ID,
			Mood: entry.Mood,
			At:   entry.At,
		},
	})
}
