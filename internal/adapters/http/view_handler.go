package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/studywell/dashboard/internal/domain/history"
	"github.com/studywell/dashboard/internal/domain/wellness"
	"github.com/studywell/dashboard/internal/infrastructure/logger"
	"github.com/studywell/dashboard/internal/infrastructure/translator"
	"github.com/studywell/dashboard/internal/ports"
)

// HistoryResponse is the rendered history view
type HistoryResponse struct {
	Today   string          `json:"today"`
	Summary HistorySummary  `json:"summary"`
	Days    []HistoryDayRow `json:"days"`
}

// HistorySummary covers the trailing week
type HistorySummary struct {
	From        string   `json:"from"`
	To          string   `json:"to"`
	AverageMood *float64 `json:"averageMood"`
	Good        int      `json:"good"`
	Normal      int      `json:"normal"`
	Bad         int      `json:"bad"`
}

// HistoryDayRow is one civil day of the history table
type HistoryDayRow struct {
	Date           string        `json:"date"`
	Condition      *int          `json:"condition"`
	ConditionLabel string        `json:"conditionLabel"`
	HealthNote     *string       `json:"healthNote,omitempty"`
	Moods          []HistoryMood `json:"moods"`
	MoodEmojis     string        `json:"moodEmojis"`
	AverageMood    *float64      `json:"averageMood"`
	HasAnyNote     bool          `json:"hasAnyNote"`
}

// HistoryMood is a single mood sample within a day
type HistoryMood struct {
	At    time.Time `json:"at"`
	Mood  int       `json:"mood"`
	Emoji string    `json:"emoji"`
	Note  *string   `json:"note,omitempty"`
}

// ViewHandler serves the read-only history and dashboard views
type ViewHandler struct {
	historyService   ports.HistoryService
	dashboardService ports.DashboardService
	translator       *translator.Translator
	logger           *logger.Logger
}

// NewViewHandler creates a new view handler
func NewViewHandler(historyService ports.HistoryService, dashboardService ports.DashboardService, tr *translator.Translator, logger *logger.Logger) *ViewHandler {
	return &ViewHandler{
		historyService:   historyService,
		dashboardService: dashboardService,
		translator:       tr,
		logger:           logger,
	}
}

// History godoc
// @Summary Per-day history
// @Description The last 30 civil days of health records and moods, newest first, with a 7 day summary.
// @Tags views
// @Produce json
// @Success 200 {object} HistoryResponse
// @Router /history [get]
func (h *ViewHandler) History(c echo.Context) error {
	view, err := h.historyService.History(c.Request().Context())
	if err != nil {
		return err
	}

	lang := language(c, h.translator)
	resp := HistoryResponse{
		Today: view.Today,
		Summary: HistorySummary{
			From:        view.Summary.From,
			To:          view.Summary.To,
			AverageMood: view.Summary.AverageMood,
			Good:        view.Summary.Good,
			Normal:      view.Summary.Normal,
			Bad:         view.Summary.Bad,
		},
		Days: make([]HistoryDayRow, len(view.Days)),
	}
	for i, d := range view.Days {
		resp.Days[i] = h.dayRow(lang, d)
	}

	return c.JSON(http.StatusOK, resp)
}

// Dashboard godoc
// @Summary Landing view
// @Description Today's condition, latest mood and the top three tasks.
// @Tags views
// @Produce json
// @Success 200 {object} ports.DashboardView
// @Router /dashboard [get]
func (h *ViewHandler) Dashboard(c echo.Context) error {
	view, err := h.dashboardService.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}
	if view.Top == nil {
		view.Top = []ports.ScoredTask{}
	}
	return c.JSON(http.StatusOK, view)
}

func (h *ViewHandler) dayRow(lang string, d history.Day) HistoryDayRow {
	row := HistoryDayRow{
		Date:           d.Date,
		ConditionLabel: "—",
		Moods:          make([]HistoryMood, len(d.Moods)),
		AverageMood:    d.AverageMood,
		HasAnyNote:     d.HasAnyNote,
	}

	if d.Health != nil {
		c := d.Health.Condition
		row.Condition = &c
		row.ConditionLabel = h.translator.ConditionLabel(lang, c)
		row.HealthNote = d.Health.Note
	}

	for i, m := range d.Moods {
		emoji := wellness.MoodEmoji(m.Mood)
		row.Moods[i] = HistoryMood{At: m.At, Mood: m.Mood, Emoji: emoji, Note: m.Note}
		row.MoodEmojis += emoji
	}

	return row
}
