package translator

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

// Supported languages
const (
	LanguageJa = "ja"
	LanguageEn = "en"
)

//go:embed locales/*.toml
var locales embed.FS

// Translator resolves message IDs into localized text
type Translator struct {
	bundle   *i18n.Bundle
	matcher  language.Matcher
	fallback string
}

// New loads the embedded message files. fallback is used when a request
// names no supported language.
func New(fallback string) (*Translator, error) {
	bundle := i18n.NewBundle(language.Japanese)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.Glob(locales, "locales/*.toml")
	if err != nil {
		return nil, fmt.Errorf("list translation files: %w", err)
	}
	for _, f := range files {
		if _, err := bundle.LoadMessageFileFS(locales, f); err != nil {
			return nil, fmt.Errorf("load translation file %s: %w", f, err)
		}
	}

	if fallback != LanguageEn {
		fallback = LanguageJa
	}

	return &Translator{
		bundle:   bundle,
		matcher:  language.NewMatcher([]language.Tag{language.Japanese, language.English}),
		fallback: fallback,
	}, nil
}

// Match picks the supported language for an Accept-Language header value
func (t *Translator) Match(acceptLanguage string) string {
	if acceptLanguage == "" {
		return t.fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return t.fallback
	}
	_, index, confidence := t.matcher.Match(tags...)
	if confidence == language.No {
		return t.fallback
	}
	if index == 1 {
		return LanguageEn
	}
	return LanguageJa
}

// Message returns the text for messageID in lang. Unknown IDs come back
// unchanged.
func (t *Translator) Message(lang, messageID string) string {
	localizer := i18n.NewLocalizer(t.bundle, lang, t.fallback)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: messageID})
	if err != nil {
		return messageID
	}
	return msg
}

// ConditionLabel returns the display label for a 1..3 health condition
func (t *Translator) ConditionLabel(lang string, condition int) string {
	switch condition {
	case 3:
		return t.Message(lang, "conditionGood")
	case 2:
		return t.Message(lang, "conditionNormal")
	case 1:
		return t.Message(lang, "conditionBad")
	default:
		return "—"
	}
}
