package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/studywell/dashboard/internal/adapters/cache"
	"github.com/studywell/dashboard/internal/adapters/repository"
	"github.com/studywell/dashboard/internal/application/services"
	"github.com/studywell/dashboard/internal/domain/entities"
	"github.com/studywell/dashboard/internal/domain/settings"
	"github.com/studywell/dashboard/internal/domain/wellness"
	"github.com/studywell/dashboard/internal/infrastructure/logger"
	"github.com/studywell/dashboard/internal/infrastructure/metrics"
	"github.com/studywell/dashboard/internal/infrastructure/translator"
	"github.com/studywell/dashboard/internal/ports"
)

type MockWeatherService struct {
	mock.Mock
}

func (m *MockWeatherService) Forecast(ctx context.Context, lat, lon string) (*ports.WeatherReport, error) {
	args := m.Called(ctx, lat, lon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.WeatherReport), args.Error(1)
}

type testAPI struct {
	echo    *echo.Echo
	weather *MockWeatherService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	log := logger.NewNop()
	tr, err := translator.New(translator.LanguageEn)
	require.NoError(t, err)

	store := repository.NewMemoryStore()
	taskRepo := repository.NewMemoryTaskRepository(store)
	healthRepo := repository.NewMemoryHealthRepository(store)
	moodRepo := repository.NewMemoryMoodRepository(store)
	m := metrics.New()
	views := services.NewViewCache(cache.NewMemoryCache(), time.Minute, m, log)

	taskService := services.NewTaskService(taskRepo, healthRepo, moodRepo, views, m, log)
	wellnessService := services.NewWellnessService(healthRepo, moodRepo, views, m, log)
	historyService := services.NewHistoryService(healthRepo, moodRepo, log)
	dashboardService := services.NewDashboardService(taskRepo, healthRepo, moodRepo, views, log)
	weather := &MockWeatherService{}

	e := echo.New()
	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler(tr, log)

	tasks := NewTaskHandler(taskService, log)
	wellnessHandler := NewWellnessHandler(wellnessService, log)
	viewsHandler := NewViewHandler(historyService, dashboardService, tr, log)
	settingsHandler := NewSettingsHandler(settings.Settings{Theme: "light", HighlightColor: "#ef4444", SnoozeDays: 1}, log)
	weatherHandler := NewWeatherHandler(weather, log)

	api := e.Group("/api")
	api.POST("/health", wellnessHandler.SubmitHealth)
	api.POST("/mood", wellnessHandler.SubmitMood)
	api.GET("/tasks", tasks.ListTasks)
	api.POST("/tasks", tasks.CreateTask)
	api.GET("/tasks/top", tasks.TopTasks)
	api.GET("/tasks/:id", tasks.GetTask)
	api.PUT("/tasks/:id", tasks.UpdateTask)
	api.DELETE("/tasks/:id", tasks.DeleteTask)
	api.POST("/tasks/:id/done", tasks.MarkDone)
	api.POST("/tasks/:id/snooze", tasks.SnoozeTask)
	api.GET("/history", viewsHandler.History)
	api.GET("/dashboard", viewsHandler.Dashboard)
	api.GET("/settings", settingsHandler.GetSettings)
	api.POST("/settings", settingsHandler.MergeSettings)
	api.GET("/weather", weatherHandler.Forecast)

	return &testAPI{echo: e, weather: weather}
}

func (a *testAPI) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dest), rec.Body.String())
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body ErrorResponse
	decode(t, rec, &body)
	return body.Error
}

func TestTaskHandler_Lifecycle(t *testing.T) {
	api := newTestAPI(t)
	due := time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339)

	rec := api.do(http.MethodPost, "/api/tasks", fmt.Sprintf(`{"title":"Write report","dueDate":%q,"importance":4,"estimateMin":90}`, due))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created map[string]interface{}
	decode(t, rec, &created)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "Write report", created["title"])
	assert.Equal(t, "soon", created["dueStatus"])
	assert.Equal(t, false, created["isDone"])

	rec = api.do(http.MethodGet, "/api/tasks/"+id, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(http.MethodPut, "/api/tasks/"+id, `{"title":"Write final report","importance":5}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated map[string]interface{}
	decode(t, rec, &updated)
	assert.Equal(t, "Write final report", updated["title"])
	assert.Nil(t, updated["dueDate"])
	assert.Equal(t, "none", updated["dueStatus"])

	rec = api.do(http.MethodPost, "/api/tasks/"+id+"/snooze", `{"days":3}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodPost, "/api/tasks/"+id+"/done", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodGet, "/api/tasks?done=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var done []map[string]interface{}
	decode(t, rec, &done)
	require.Len(t, done, 1)
	assert.Equal(t, true, done[0]["isDone"])
	assert.NotNil(t, done[0]["dueDate"], "snooze set a deadline")

	rec = api.do(http.MethodDelete, "/api/tasks/"+id, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodDelete, "/api/tasks/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Task not found.", errorMessage(t, rec))
}

func TestTaskHandler_SnoozeWithoutBody(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/api/tasks", `{"title":"Plan week"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created map[string]interface{}
	decode(t, rec, &created)

	rec = api.do(http.MethodPost, "/api/tasks/"+created["id"].(string)+"/snooze", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodPost, "/api/tasks/missing/snooze", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTaskHandler_SnoozeDaysFallBackToDefault(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/api/tasks", `{"title":"Lab write-up","dueDate":"2099-01-01T00:00:00Z"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created map[string]interface{}
	decode(t, rec, &created)
	id := created["id"].(string)

	steps := []struct {
		body string
		due  string
	}{
		{`{"days":"abc"}`, "2099-01-02T00:00:00Z"},
		{`{"days":2.5}`, "2099-01-04T00:00:00Z"},
		{`{"days":null}`, "2099-01-05T00:00:00Z"},
		{`{"days":"3"}`, "2099-01-08T00:00:00Z"},
		{`{"days":true}`, "2099-01-09T00:00:00Z"},
	}
	for _, step := range steps {
		rec = api.do(http.MethodPost, "/api/tasks/"+id+"/snooze", step.body)
		require.Equal(t, http.StatusNoContent, rec.Code, step.body)

		rec = api.do(http.MethodGet, "/api/tasks/"+id, "")
		require.Equal(t, http.StatusOK, rec.Code)
		var task map[string]interface{}
		decode(t, rec, &task)
		assert.Equal(t, step.due, task["dueDate"], step.body)
	}
}

func intPtr(n int) *int { return &n }

func TestSnoozeDays(t *testing.T) {
	tests := []struct {
		name string
		in   wellness.Value
		want *int
	}{
		{"absent", wellness.Value{}, nil},
		{"non-numeric text", wellness.Text("abc"), nil},
		{"other kind", wellness.Value{Kind: wellness.KindOther}, nil},
		{"numeric text", wellness.Text(" 4 "), intPtr(4)},
		{"fraction truncates", wellness.Number(2.5), intPtr(2)},
		{"below range", wellness.Number(0.4), intPtr(1)},
		{"negative", wellness.Number(-3), intPtr(1)},
		{"huge", wellness.Number(1e300), intPtr(30)},
		{"infinite text", wellness.Text("Inf"), nil},
		{"nan text", wellness.Text("NaN"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, snoozeDays(tt.in))
		})
	}
}

func TestTaskHandler_Validation(t *testing.T) {
	api := newTestAPI(t)

	cases := []struct {
		name string
		body string
		want string
	}{
		{"blank title", `{"title":"  "}`, "Title is required."},
		{"importance range", `{"title":"x","importance":9}`, "Importance must be between 1 and 5."},
		{"negative estimate", `{"title":"x","estimateMin":-5}`, "Estimate must be zero or more minutes."},
		{"bad due date", `{"title":"x","dueDate":"next week"}`, "Invalid due date."},
		{"malformed json", `{"title":`, "Malformed request body."},
		{"wrong type", `{"title":42}`, "Malformed request body."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := api.do(http.MethodPost, "/api/tasks", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.want, errorMessage(t, rec))
		})
	}

	rec := api.do(http.MethodGet, "/api/tasks", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestTaskHandler_LocalizedErrors(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/api/tasks/missing", "", "Accept-Language", "ja-JP,ja;q=0.9")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "タスクが見つかりません", errorMessage(t, rec))

	rec = api.do(http.MethodPost, "/api/tasks", `{"title":""}`, "Accept-Language", "en-US")
	assert.Equal(t, "Title is required.", errorMessage(t, rec))
}

func TestTaskHandler_TopTasks(t *testing.T) {
	api := newTestAPI(t)

	for i := 1; i <= 5; i++ {
		rec := api.do(http.MethodPost, "/api/tasks", fmt.Sprintf(`{"title":"task %d","importance":%d}`, i, i))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := api.do(http.MethodGet, "/api/tasks/top", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var top []ports.ScoredTask
	decode(t, rec, &top)
	require.Len(t, top, 3)
	assert.Equal(t, "task 5", top[0].Task.Title)
	assert.InDelta(t, 5*0.9, top[0].Score, 1e-9)

	rec = api.do(http.MethodGet, "/api/tasks/top?limit=1", "")
	decode(t, rec, &top)
	assert.Len(t, top, 1)

	rec = api.do(http.MethodGet, "/api/tasks/top?limit=zero", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWellnessHandler(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/api/health", `{"condition":"良い","dayJst":"2025-06-01"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"date":"2025-05-31T15:00:00Z"`)
	var health CreatedResponse[HealthCreated]
	decode(t, rec, &health)
	assert.True(t, health.OK)
	assert.True(t, time.Date(2025, 5, 31, 15, 0, 0, 0, time.UTC).Equal(health.Created.Date), health.Created.Date.String())
	assert.Equal(t, 3, health.Created.Condition)

	rec = api.do(http.MethodPost, "/api/health", `{"condition":"excellent"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid condition.", errorMessage(t, rec))

	rec = api.do(http.MethodPost, "/api/health", `{"condition":2,"dayJst":"June 1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPost, "/api/mood", `{"mood":"😄","note":"finished the exam"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var mood CreatedResponse[MoodCreated]
	decode(t, rec, &mood)
	assert.Equal(t, 5, mood.Created.Mood)
	assert.False(t, mood.Created.At.IsZero())

	rec = api.do(http.MethodPost, "/api/mood", `{"mood":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid mood.", errorMessage(t, rec))
}

func TestViewHandler_History(t *testing.T) {
	api := newTestAPI(t)

	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/health", `{"condition":"bad","note":"headache"}`).Code)
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/mood", `{"mood":4}`).Code)
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/mood", `{"mood":2}`).Code)

	rec := api.do(http.MethodGet, "/api/history", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view HistoryResponse
	decode(t, rec, &view)
	require.Len(t, view.Days, 1)

	day := view.Days[0]
	assert.Equal(t, view.Today, day.Date)
	require.NotNil(t, day.Condition)
	assert.Equal(t, entities.ConditionBad, *day.Condition)
	assert.Equal(t, "Bad", day.ConditionLabel)
	assert.Len(t, day.Moods, 2)
	assert.Len(t, []rune(day.MoodEmojis), 2)
	require.NotNil(t, day.AverageMood)
	assert.InDelta(t, 3.0, *day.AverageMood, 1e-9)
	assert.True(t, day.HasAnyNote)
	assert.Equal(t, 1, view.Summary.Bad)
}

func TestViewHandler_Dashboard(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/api/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view map[string]interface{}
	decode(t, rec, &view)
	assert.Equal(t, []interface{}{}, view["top"])
	assert.Nil(t, view["health"])
	assert.EqualValues(t, 0, view["openCount"])
}

func TestSettingsHandler(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/api/settings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"theme":"light","highlightColor":"#ef4444","snoozeDays":1,"highlightBackground":"rgba(239, 68, 68, 0.16)"}`, rec.Body.String())

	rec = api.do(http.MethodPost, "/api/settings", `{"theme":"dark","snoozeDays":99}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var merged SettingsResponse
	decode(t, rec, &merged)
	assert.Equal(t, "dark", merged.Theme)
	assert.Equal(t, 30, merged.SnoozeDays)
	assert.Equal(t, "#ef4444", merged.HighlightColor)

	rec = api.do(http.MethodPost, "/api/settings", `{"highlightColor":"red"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Highlight color must look like #RRGGBB.", errorMessage(t, rec))
}

func TestWeatherHandler(t *testing.T) {
	api := newTestAPI(t)

	api.weather.On("Forecast", mock.Anything, "35.0", "135.0").Return(&ports.WeatherReport{
		OK:         true,
		Data:       json.RawMessage(`{"hourly":{}}`),
		PlaceLabel: "京都府",
	}, nil)
	api.weather.On("Forecast", mock.Anything, "0", "0").Return(nil, fmt.Errorf("%w: timeout", entities.ErrUpstream))
	api.weather.On("Forecast", mock.Anything, "x", "0").Return(nil, entities.NewValidationError("lat", entities.MsgInvalidCoordinates))

	rec := api.do(http.MethodGet, "/api/weather?lat=35.0&lon=135.0", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"data":{"hourly":{}},"placeLabel":"京都府"}`, rec.Body.String())

	rec = api.do(http.MethodGet, "/api/weather?lat=0&lon=0", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"ok":false,"error":"Weather lookup failed."}`, rec.Body.String())

	rec = api.do(http.MethodGet, "/api/weather?lat=x&lon=0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	api.weather.AssertExpectations(t)
}

func TestErrorHandler_UnknownRoute(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/api/nothing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found.", errorMessage(t, rec))
}
