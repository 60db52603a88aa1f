package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studywell/dashboard/internal/infrastructure/logger"
	"github.com/studywell/dashboard/internal/ports"
)

// WeatherHandler proxies forecast lookups
type WeatherHandler struct {
	weatherService ports.WeatherService
	logger         *logger.Logger
}

// NewWeatherHandler creates a new weather handler
func NewWeatherHandler(weatherService ports.WeatherService, logger *logger.Logger) *WeatherHandler {
	return &WeatherHandler{
		weatherService: weatherService,
		logger:         logger,
	}
}

// Forecast godoc
// @Summary Hourly forecast
// @Description Forecast and place name for a coordinate; missing coordinates use the configured default.
// @Tags weather
// @Produce json
// @Param lat query string false "Latitude"
// @Param lon query string false "Longitude"
// @Success 200 {object} ports.WeatherReport
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} WeatherErrorResponse
// @Router /weather [get]
func (h *WeatherHandler) Forecast(c echo.Context) error {
	report, err := h.weatherService.Forecast(c.Request().Context(), c.QueryParam("lat"), c.QueryParam("lon"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}
