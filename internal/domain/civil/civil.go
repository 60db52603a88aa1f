// Package civil converts calendar dates observed at the fixed UTC+9 offset
// into the instants used as storage keys for daily records. Write and read
// paths must both go through this package so day boundaries never drift with
// the host timezone.
package civil

import (
	"errors"
	"regexp"
	"strconv"
	"time"
)

// Offset is the fixed civil offset from UTC.
const Offset = 9 * time.Hour

// Layout is the canonical civil date layout.
const Layout = "2006-01-02"

// Location is the fixed UTC+9 zone. It deliberately ignores tzdata.
var Location = time.FixedZone("UTC+9", int(Offset/time.Second))

// ErrInvalidFormat is returned when a date string is not strictly YYYY-MM-DD.
var ErrInvalidFormat = errors.New("invalid civil date format")

var datePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// ParseDate returns the UTC instant of 00:00 at UTC+9 on the given date.
// Out-of-range month or day values roll over like a calendar constructor
// ("2025-02-30" is 2025-03-02).
func ParseDate(s string) (time.Time, error) {
	m := datePattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, ErrInvalidFormat
	}
	y, _ := strconv.Atoi(m[1])
	mo, _ := strconv.Atoi(m[2])
	d, _ := strconv.Atoi(m[3])
	return midnight(y, time.Month(mo), d), nil
}

// TodayString returns the current civil date.
func TodayString() string {
	return TodayStringAt(time.Now())
}

// TodayStringAt returns the civil date observed at now.
func TodayStringAt(now time.Time) string {
	return DateString(now)
}

// TodayKey returns the storage key of the current civil day.
func TodayKey() time.Time {
	return TodayKeyAt(time.Now())
}

// TodayKeyAt returns the storage key of the civil day containing now.
func TodayKeyAt(now time.Time) time.Time {
	key, _ := ParseDate(TodayStringAt(now))
	return key
}

// DateString returns the civil date an instant falls on.
func DateString(t time.Time) string {
	return t.In(Location).Format(Layout)
}

// StartOfDay returns the storage key of the civil day containing t.
func StartOfDay(t time.Time) time.Time {
	local := t.In(Location)
	return midnight(local.Year(), local.Month(), local.Day())
}

// AddDays shifts a day key by n civil days.
func AddDays(key time.Time, n int) time.Time {
	local := key.In(Location)
	return midnight(local.Year(), local.Month(), local.Day()+n)
}

// ParseInstant reads a due date from client input. It accepts RFC 3339
// timestamps, a civil date-time without zone ("2025-06-01T18:30") and a bare
// civil date, which resolves to that day's midnight.
func ParseInstant(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.ParseInLocation(layout, s, Location); err == nil {
			return t.UTC(), nil
		}
	}
	return ParseDate(s)
}

func midnight(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, Location).UTC()
}
