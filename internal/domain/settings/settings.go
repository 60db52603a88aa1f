// Package settings models the client presentation preferences as one
// explicit object: server defaults merged with a client patch.
package settings

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/studywell/dashboard/internal/domain/entities"
)

// Themes
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Settings is the full set of client preferences.
type Settings struct {
	Theme          string `json:"theme"`
	HighlightColor string `json:"highlightColor"`
	SnoozeDays     int    `json:"snoozeDays"`
}

// Patch carries a partial update; nil fields keep the base value.
type Patch struct {
	Theme          *string `json:"theme"`
	HighlightColor *string `json:"highlightColor"`
	SnoozeDays     *int    `json:"snoozeDays"`
}

// Merge applies patch over base. Theme and colour must be valid; snooze days
// are clamped into range rather than rejected.
func Merge(base Settings, patch Patch) (Settings, error) {
	out := base

	if patch.Theme != nil {
		if *patch.Theme != ThemeLight && *patch.Theme != ThemeDark {
			return base, entities.NewValidationError("theme", entities.MsgInvalidTheme)
		}
		out.Theme = *patch.Theme
	}

	if patch.HighlightColor != nil {
		if !hexColor.MatchString(*patch.HighlightColor) {
			return base, entities.NewValidationError("highlightColor", entities.MsgInvalidHighlight)
		}
		out.HighlightColor = *patch.HighlightColor
	}

	if patch.SnoozeDays != nil {
		out.SnoozeDays = ClampSnoozeDays(*patch.SnoozeDays)
	}

	return out, nil
}

// ClampSnoozeDays forces n into [1, 30].
func ClampSnoozeDays(n int) int {
	if n < entities.MinSnoozeDays {
		return entities.MinSnoozeDays
	}
	if n > entities.MaxSnoozeDays {
		return entities.MaxSnoozeDays
	}
	return n
}

// HighlightBackground renders the highlight colour as a translucent rgba().
func (s Settings) HighlightBackground(alpha float64) string {
	if !hexColor.MatchString(s.HighlightColor) {
		return ""
	}
	r, _ := strconv.ParseUint(s.HighlightColor[1:3], 16, 8)
	g, _ := strconv.ParseUint(s.HighlightColor[3:5], 16, 8)
	b, _ := strconv.ParseUint(s.HighlightColor[5:7], 16, 8)
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, strconv.FormatFloat(alpha, 'f', -1, 64))
}
