package http

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/studywell/dashboard/internal/infrastructure/translator"
)

const languageKey = "lang"

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns an echo validator that reports fields by their JSON name
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// SetLanguage stores the negotiated response language on the request
func SetLanguage(c echo.Context, lang string) {
	c.Set(languageKey, lang)
}

// language returns the negotiated language, negotiating it on the spot when
// no middleware did.
func language(c echo.Context, tr *translator.Translator) string {
	if lang, ok := c.Get(languageKey).(string); ok && lang != "" {
		return lang
	}
	return tr.Match(c.Request().Header.Get("Accept-Language"))
}

// bind decodes the request body, reporting malformed input as a payload error
func bind(c echo.Context, dest interface{}) error {
	if err := c.Bind(dest); err != nil {
		return &payloadError{cause: err}
	}
	return c.Validate(dest)
}

// Request/Response types

type ErrorResponse struct {
	Error string `json:"error"`
}

type WeatherErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

type CreatedResponse[T any] struct {
	OK      bool `json:"ok"`
	Created T    `json:"created"`
}
