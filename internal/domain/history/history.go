// Package history merges daily health records and timestamped mood entries
// into one row per civil day.
package history

import (
	"sort"
	"strings"
	"time"

	"github.com/studywell/dashboard/internal/domain/civil"
	"github.com/studywell/dashboard/internal/domain/entities"
)

// Defaults used by the history view.
const (
	DefaultDays      = 30
	DefaultMoodLimit = 300
	SummaryWindow    = 7
)

// Day is the merged view of one civil date.
type Day struct {
	Date        string
	Health      *entities.DailyHealthRecord
	Moods       []entities.MoodLogEntry
	AverageMood *float64
	HasAnyNote  bool
}

// MoodValues returns the mood scores of the day in entry order.
func (d Day) MoodValues() []int {
	out := make([]int, len(d.Moods))
	for i, m := range d.Moods {
		out[i] = m.Mood
	}
	return out
}

// Summary aggregates the trailing window of days.
type Summary struct {
	From        string
	To          string
	AverageMood *float64
	Good        int
	Normal      int
	Bad         int
}

// Aggregate buckets records and moods by civil date, newest day first, and
// keeps at most limit days. Mood entries keep their input order within a day.
func Aggregate(records []entities.DailyHealthRecord, moods []entities.MoodLogEntry, limit int) []Day {
	byDay := make(map[string]*Day)
	get := func(date string) *Day {
		d, ok := byDay[date]
		if !ok {
			d = &Day{Date: date}
			byDay[date] = d
		}
		return d
	}

	for i := range records {
		r := records[i]
		get(civil.DateString(r.Date)).Health = &r
	}
	for _, m := range moods {
		d := get(civil.DateString(m.At))
		d.Moods = append(d.Moods, m)
	}

	days := make([]Day, 0, len(byDay))
	for _, d := range byDay {
		d.AverageMood = average(d.MoodValues())
		d.HasAnyNote = hasNote(d)
		days = append(days, *d)
	}

	// Civil dates sort lexically.
	sort.Slice(days, func(i, j int) bool { return days[i].Date > days[j].Date })

	if limit >= 0 && len(days) > limit {
		days = days[:limit]
	}
	return days
}

// Summarize covers the window civil days ending on the day containing now.
// The mood average is the mean of daily averages; days without moods are
// skipped, and a window with no moods has a nil average.
func Summarize(days []Day, now time.Time, window int) Summary {
	today := civil.TodayKeyAt(now)
	s := Summary{
		From: civil.DateString(civil.AddDays(today, -(window - 1))),
		To:   civil.DateString(today),
	}

	var daily []float64
	for _, d := range days {
		if d.Date < s.From || d.Date > s.To {
			continue
		}
		if d.AverageMood != nil {
			daily = append(daily, *d.AverageMood)
		}
		if d.Health == nil {
			continue
		}
		switch d.Health.Condition {
		case entities.ConditionGood:
			s.Good++
		case entities.ConditionNormal:
			s.Normal++
		case entities.ConditionBad:
			s.Bad++
		}
	}

	if len(daily) > 0 {
		var sum float64
		for _, v := range daily {
			sum += v
		}
		avg := sum / float64(len(daily))
		s.AverageMood = &avg
	}
	return s
}

func average(values []int) *float64 {
	if len(values) == 0 {
		return nil
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	avg := float64(sum) / float64(len(values))
	return &avg
}

func hasNote(d *Day) bool {
	if d.Health != nil && d.Health.Note != nil && strings.TrimSpace(*d.Health.Note) != "" {
		return true
	}
	for _, m := range d.Moods {
		if m.Note != nil && strings.TrimSpace(*m.Note) != "" {
			return true
		}
	}
	return false
}
