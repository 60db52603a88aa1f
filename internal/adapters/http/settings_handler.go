package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studywell/dashboard/internal/domain/settings"
	"github.com/studywell/dashboard/internal/infrastructure/logger"
)

// highlightAlpha is the opacity of the derived highlight background
const highlightAlpha = 0.16

// SettingsResponse is the effective client settings plus derived values
type SettingsResponse struct {
	settings.Settings
	HighlightBackground string `json:"highlightBackground" example:"rgba(239, 68, 68, 0.16)"`
}

// SettingsHandler serves client presentation settings. Overrides live on the
// client; the server only owns the defaults and the merge rule.
type SettingsHandler struct {
	defaults settings.Settings
	logger   *logger.Logger
}

// NewSettingsHandler creates a settings handler over server defaults
func NewSettingsHandler(defaults settings.Settings, logger *logger.Logger) *SettingsHandler {
	return &SettingsHandler{
		defaults: defaults,
		logger:   logger,
	}
}

// GetSettings godoc
// @Summary Default client settings
// @Tags settings
// @Produce json
// @Success 200 {object} SettingsResponse
// @Router /settings [get]
func (h *SettingsHandler) GetSettings(c echo.Context) error {
	return c.JSON(http.StatusOK, respond(h.defaults))
}

// MergeSettings godoc
// @Summary Apply a settings patch
// @Description Merges the patch over the defaults. Snooze days are clamped to 1..30.
// @Tags settings
// @Accept json
// @Produce json
// @Param request body settings.Patch true "Partial settings"
// @Success 200 {object} SettingsResponse
// @Failure 400 {object} ErrorResponse
// @Router /settings [post]
func (h *SettingsHandler) MergeSettings(c echo.Context) error {
	var patch settings.Patch
	if err := bind(c, &patch); err != nil {
		return err
	}

	merged, err := settings.Merge(h.defaults, patch)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, respond(merged))
}

func respond(s settings.Settings) SettingsResponse {
	return SettingsResponse{Settings: s, HighlightBackground: s.HighlightBackground(highlightAlpha)}
}
