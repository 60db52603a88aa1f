package server

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	httpHandlers "github.com/studywell/dashboard/internal/adapters/http"
)

// languageMiddleware negotiates the response language once per request
func (s *Server) languageMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			lang := s.translator.Match(c.Request().Header.Get("Accept-Language"))
			httpHandlers.SetLanguage(c, lang)
			c.Response().Header().Set("Content-Language", lang)
			return next(c)
		}
	}
}

// metricsMiddleware counts requests and observes latency per route template
func (s *Server) metricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// Write the error response now so the recorded status is the sent one.
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			method := c.Request().Method

			s.metrics.RequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Response().Status)).Inc()
			s.metrics.RequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

			return nil
		}
	}
}
