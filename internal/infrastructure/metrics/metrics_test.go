package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New()

	m.TaskMutated("create")
	m.TaskMutated("create")
	m.ViewInvalidated("dashboard")
	m.CacheLookup("dashboard", true)
	m.CacheLookup("dashboard", false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.taskMutations.WithLabelValues("create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.viewInvalidations.WithLabelValues("dashboard")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("dashboard", "hit")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.DigestRan()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "studywell_digest_runs_total 1"))
}
