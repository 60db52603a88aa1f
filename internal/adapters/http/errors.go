package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/studywell/dashboard/internal/domain/entities"
	"github.com/studywell/dashboard/internal/infrastructure/logger"
	"github.com/studywell/dashboard/internal/infrastructure/translator"
)

const (
	msgNotFound    = "notFound"
	msgRateLimited = "rateLimited"
)

// payloadError is a request body that could not be decoded
type payloadError struct {
	cause error
}

func (e *payloadError) Error() string {
	return fmt.Sprintf("invalid payload: %v", e.cause)
}

func (e *payloadError) Unwrap() error {
	return e.cause
}

// fieldMessages maps struct validation failures to message IDs by JSON field
var fieldMessages = map[string]string{
	"title":       entities.MsgTitleRequired,
	"importance":  entities.MsgImportanceRange,
	"estimateMin": entities.MsgEstimateNegative,
}

// ErrorHandler renders every error as {error: message} in the request's
// language. Server-side failures are logged and answered generically.
func ErrorHandler(tr *translator.Translator, logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, messageID := classify(err)
		if code >= http.StatusInternalServerError && code != http.StatusBadGateway {
			logger.Errorw("Internal server error", "error", err, "path", c.Request().URL.Path, "method", c.Request().Method)
		}

		msg := tr.Message(language(c, tr), messageID)
		var body interface{} = ErrorResponse{Error: msg}
		if code == http.StatusBadGateway {
			body = WeatherErrorResponse{OK: false, Error: msg}
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, body)
		}
		if err != nil {
			logger.Errorw("Error sending response", "error", err)
		}
	}
}

func classify(err error) (int, string) {
	var (
		pe *payloadError
		ve *entities.ValidationError
		fe validator.ValidationErrors
		he *echo.HTTPError
	)

	switch {
	case errors.As(err, &pe):
		return http.StatusBadRequest, entities.MsgInvalidPayload
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.MessageID
	case errors.As(err, &fe):
		if len(fe) > 0 {
			if id, ok := fieldMessages[fe[0].Field()]; ok {
				return http.StatusBadRequest, id
			}
		}
		return http.StatusBadRequest, entities.MsgInvalidPayload
	case errors.Is(err, entities.ErrTaskNotFound):
		return http.StatusNotFound, entities.MsgTaskNotFound
	case errors.Is(err, entities.ErrRecordNotFound):
		return http.StatusNotFound, msgNotFound
	case errors.Is(err, entities.ErrUpstream):
		return http.StatusBadGateway, entities.MsgWeatherUnavailable
	case errors.As(err, &he):
		switch he.Code {
		case http.StatusNotFound:
			return he.Code, msgNotFound
		case http.StatusTooManyRequests:
			return he.Code, msgRateLimited
		case http.StatusBadRequest:
			return he.Code, entities.MsgInvalidPayload
		case http.StatusInternalServerError:
			return he.Code, entities.MsgInternal
		default:
			return he.Code, http.StatusText(he.Code)
		}
	default:
		return http.StatusInternalServerError, entities.MsgInternal
	}
}
