package wellness

// Condition labels, matched case-sensitively.
var conditionLabels = map[string]int{
	"良い": 3,
	"普通": 2,
	"悪い": 1,

	"good":   3,
	"normal": 2,
	"bad":    1,
}

// Mood emoji and keywords, matched case-sensitively.
var moodLabels = map[string]int{
	"😄": 5,
	"🙂": 4,
	"😐": 3,
	"😕": 2,
	"😞": 1,

	"very_good": 5,
	"good":      4,
	"neutral":   3,
	"bad":       2,
	"very_bad":  1,
}

var moodEmoji = map[int]string{5: "😄", 4: "🙂", 3: "😐", 2: "😕", 1: "😞"}

// NormalizeCondition maps input to 1 (bad), 2 (normal) or 3 (good).
// ok is false for anything outside the closed set.
func NormalizeCondition(v Value) (condition int, ok bool) {
	return normalize(v, 1, 3, conditionLabels)
}

// NormalizeMood maps input to 1..5. ok is false for anything else.
func NormalizeMood(v Value) (mood int, ok bool) {
	return normalize(v, 1, 5, moodLabels)
}

// MoodEmoji returns the display emoji for a 1..5 mood, or "—".
func MoodEmoji(mood int) string {
	if e, ok := moodEmoji[mood]; ok {
		return e
	}
	return "—"
}

func normalize(v Value, lo, hi int, labels map[string]int) (int, bool) {
	switch v.Kind {
	case KindNumber:
		n, ok := v.integer()
		if !ok || n < lo || n > hi {
			return 0, false
		}
		return n, true
	case KindText:
		n, ok := labels[v.Text]
		return n, ok
	default:
		return 0, false
	}
}
