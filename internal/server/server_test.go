package server

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/julianstephens/slotscore/internal/analytics"
	"github.com/julianstephens/slotscore/internal/metrics"
	"github.com/julianstephens/slotscore/internal/models"
	"github.com/julianstephens/slotscore/internal/service"
	"github.com/julianstephens/slotscore/internal/storage/jsonstore"
)

var refNow = time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, m *metrics.Metrics) (*Server, *service.Service) {
	t.Helper()
	store := jsonstore.NewStore(filepath.Join(t.TempDir(), "data"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	svc, err := service.New(store, service.Options{
		UserID:   "local",
		Timezone: "UTC",
		Now:      func() time.Time { return refNow },
	})
	if err != nil {
		t.Fatalf("service.New failed: %v", err)
	}
	return New(svc, Options{Metrics: m}), svc
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != "" {
		rd = bytes.NewReader([]byte(body))
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := do(t, srv.Router(), http.MethodGet, "/api/v1/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decode[map[string]string](t, rec)
	if body["status"] != "ok" || body["today"] != "2026-10-16" {
		t.Errorf("health = %v", body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestLogLifecycle(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	h := srv.Router()

	rec := do(t, h, http.MethodPost, "/api/v1/logs", `{"time":"09:30","score":4,"category":"Work"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d body %s", rec.Code, rec.Body.String())
	}
	created := decode[service.LogResult](t, rec)
	if created.Entry.TimeSlot != 19 || created.DayTotal != 4 {
		t.Errorf("created = %+v", created)
	}

	rec = do(t, h, http.MethodPost, "/api/v1/logs", `{"date":"2026-10-15","slot":0,"score":0}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create with slot 0 and score 0 status = %d body %s", rec.Code, rec.Body.String())
	}

	rec = do(t, h, http.MethodGet, "/api/v1/logs", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	day := decode[service.DayView](t, rec)
	if day.Total != 4 || len(day.Entries) != 1 || !day.Slots[19].Logged {
		t.Errorf("day view = total %d entries %d", day.Total, len(day.Entries))
	}

	rec = do(t, h, http.MethodDelete, "/api/v1/logs/"+created.Entry.ID, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = do(t, h, http.MethodDelete, "/api/v1/logs/"+created.Entry.ID, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d", rec.Code)
	}
	if body := decode[errorBody](t, rec); body.Error.Code != codeNotFound {
		t.Errorf("error body = %+v", body)
	}
}

func TestCreateLog_BadRequests(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	h := srv.Router()

	tests := []struct {
		name string
		body string
		code string
	}{
		{"not json", `{`, codeBadRequest},
		{"unknown field", `{"slot":1,"score":2,"mood":"ok"}`, codeBadRequest},
		{"missing score", `{"slot":1}`, codeValidation},
		{"score too high", `{"slot":1,"score":5}`, codeValidation},
		{"no slot or time", `{"score":2}`, codeValidation},
		{"bad time", `{"time":"9am","score":2}`, codeValidation},
		{"slot out of range", `{"slot":48,"score":2}`, codeValidation},
		{"bad date", `{"date":"16/10/2026","slot":1,"score":2}`, codeBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/v1/logs", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d body %s", rec.Code, rec.Body.String())
			}
			if body := decode[errorBody](t, rec); body.Error.Code != tt.code {
				t.Errorf("error code = %q, want %q", body.Error.Code, tt.code)
			}
		})
	}
}

func TestGoals(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	h := srv.Router()

	rec := do(t, h, http.MethodPut, "/api/v1/goals", `{"daily":40}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("put status = %d body %s", rec.Code, rec.Body.String())
	}
	got := decode[models.Goals](t, do(t, h, http.MethodGet, "/api/v1/goals", ""))
	if got.Daily != 40 || got.Weekly != 500 {
		t.Errorf("goals = %+v", got)
	}

	if rec := do(t, h, http.MethodPut, "/api/v1/goals", `{"weekly":-5}`); rec.Code != http.StatusBadRequest {
		t.Errorf("negative goal status = %d", rec.Code)
	}
}

func TestCategories(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	h := srv.Router()

	if rec := do(t, h, http.MethodPost, "/api/v1/categories", `{"name":"Reading","icon":"📖"}`); rec.Code != http.StatusCreated {
		t.Fatalf("add status = %d body %s", rec.Code, rec.Body.String())
	}
	if rec := do(t, h, http.MethodPost, "/api/v1/categories", `{"name":"Reading"}`); rec.Code != http.StatusConflict {
		t.Errorf("duplicate add status = %d", rec.Code)
	}
	if rec := do(t, h, http.MethodDelete, "/api/v1/categories/Work", ""); rec.Code != http.StatusNoContent {
		t.Errorf("hide built-in status = %d", rec.Code)
	}
	if rec := do(t, h, http.MethodDelete, "/api/v1/categories/Nope", ""); rec.Code != http.StatusNotFound {
		t.Errorf("delete missing status = %d", rec.Code)
	}

	cats := decode[[]models.Category](t, do(t, h, http.MethodGet, "/api/v1/categories", ""))
	if len(cats) != 7 {
		t.Errorf("got %d categories, want 7", len(cats))
	}
}

func TestAnalyticsEndpoints(t *testing.T) {
	srv, svc := newTestServer(t, nil)
	h := srv.Router()
	today := svc.Today()
	for i := 0; i < 3; i++ {
		if _, err := svc.LogSlot(today.AddDate(0, 0, -i), 18+i, 4, "Work", ""); err != nil {
			t.Fatal(err)
		}
	}

	paths := []string{
		"/api/v1/analytics/summary",
		"/api/v1/analytics/summary?period=week",
		"/api/v1/analytics/streaks",
		"/api/v1/analytics/compare?period=month",
		"/api/v1/analytics/patterns",
		"/api/v1/analytics/heatmap",
		"/api/v1/analytics/distribution",
		"/api/v1/analytics/recommendations?limit=2",
		"/api/v1/analytics/report?period=all",
		"/api/v1/analytics/calendar?start=2026-10-01&end=2026-10-20",
		"/api/v1/analytics/categories",
		"/api/v1/analytics/trend",
		"/api/v1/analytics/goals",
	}
	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, p, "")
			if rec.Code != http.StatusOK {
				t.Errorf("status = %d body %s", rec.Code, rec.Body.String())
			}
		})
	}

	cal := decode[analytics.Calendar](t, do(t, h, http.MethodGet, "/api/v1/analytics/calendar?start=2026-10-10&end=2026-10-18", ""))
	if len(cal.Days) != 9 || cal.Days[8].Status != analytics.StatusFuture {
		t.Errorf("calendar = %+v", cal)
	}

	dist := decode[map[string]int](t, do(t, h, http.MethodGet, "/api/v1/analytics/distribution", ""))
	if len(dist) != 5 || dist["4"] != 3 {
		t.Errorf("distribution = %v", dist)
	}

	recs := decode[[]analytics.Recommendation](t, do(t, h, http.MethodGet, "/api/v1/analytics/recommendations?limit=1", ""))
	if len(recs) != 1 {
		t.Errorf("got %d recommendations, want 1", len(recs))
	}
}

func TestAnalyticsBadParams(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	h := srv.Router()

	for _, p := range []string{
		"/api/v1/analytics/summary?period=decade",
		"/api/v1/analytics/compare?period=all",
		"/api/v1/analytics/calendar?start=2026-10-20&end=2026-10-01",
		"/api/v1/analytics/calendar?start=yesterday",
		"/api/v1/analytics/recommendations?limit=-1",
		"/api/v1/analytics/summary?user=../etc",
	} {
		t.Run(p, func(t *testing.T) {
			if rec := do(t, h, http.MethodGet, p, ""); rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d body %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestUserParamIsolatesData(t *testing.T) {
	srv, svc := newTestServer(t, nil)
	h := srv.Router()
	if _, err := svc.LogSlot(svc.Today(), 10, 3, "", ""); err != nil {
		t.Fatal(err)
	}

	mine := decode[analytics.StatsSummary](t, do(t, h, http.MethodGet, "/api/v1/analytics/summary", ""))
	guest := decode[analytics.StatsSummary](t, do(t, h, http.MethodGet, "/api/v1/analytics/summary?user=guest", ""))
	if mine.TotalEntries != 1 || guest.TotalEntries != 0 {
		t.Errorf("entries: local %d, guest %d", mine.TotalEntries, guest.TotalEntries)
	}
}

func TestNotFound(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := do(t, srv.Router(), http.MethodGet, "/api/v1/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, metrics.New())
	h := srv.Router()
	do(t, h, http.MethodGet, "/api/v1/analytics/streaks", "")

	rec := do(t, h, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `route="/api/v1/analytics/streaks"`) {
		t.Errorf("metrics missing route label:\n%s", rec.Body.String())
	}

	noMetrics, _ := newTestServer(t, nil)
	if rec := do(t, noMetrics.Router(), http.MethodGet, "/metrics", ""); rec.Code != http.StatusNotFound {
		t.Errorf("metrics served while disabled: %d", rec.Code)
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/v1/health")
	if err != nil {
		t.Fatalf("GET health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status = %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
