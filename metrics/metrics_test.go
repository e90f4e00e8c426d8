package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorders(t *testing.T) {
	m := New()
	m.RecordHTTPRequest("GET", "/api/projects/{id}", 404, 20*time.Millisecond)
	m.RecordHTTPRequest("GET", "/api/projects/{id}", 404, 10*time.Millisecond)
	m.RecordLLMRequest("technology", nil, time.Second)
	m.RecordLLMRequest("technology", errors.New("boom"), time.Second)
	m.RecordVote("created")
	m.RecordProjectCreated()
	m.RecordComment()

	if got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/projects/{id}", "404")); got != 2 {
		t.Errorf("http requests = %v", got)
	}
	if got := testutil.ToFloat64(m.LLMRequestsTotal.WithLabelValues("technology", "error")); got != 1 {
		t.Errorf("llm errors = %v", got)
	}
	if got := testutil.ToFloat64(m.VotesTotal.WithLabelValues("created")); got != 1 {
		t.Errorf("votes = %v", got)
	}
	if got := testutil.ToFloat64(m.ProjectsCreatedTotal); got != 1 {
		t.Errorf("projects = %v", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.RecordComment()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{"buildsy_comments_total 1", "buildsy_server_uptime_seconds", "go_goroutines"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("exposition missing %q", want)
		}
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.RecordHTTPRequest("GET", "/", 200, time.Millisecond)
	m.RecordLLMRequest("general", nil, time.Millisecond)
	m.RecordVote("removed")
	m.RequestStarted()
	m.RequestFinished()
}

func TestSeparateRegistries(t *testing.T) {
	a, b := New(), New()
	a.RecordComment()
	if got := testutil.ToFloat64(b.CommentsTotal); got != 0 {
		t.Errorf("registries share state: %v", got)
	}
}
