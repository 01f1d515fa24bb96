package app

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toggl-track/internal/domain"
	"toggl-track/internal/usecase"
	"toggl-track/toggl"
)

type stubSyncer struct {
	from, to time.Time
	err      error
}

func (s *stubSyncer) Run(ctx context.Context, from, to time.Time) (domain.SyncRun, error) {
	s.from, s.to = from, to
	if s.err != nil {
		return domain.SyncRun{}, s.err
	}
	return domain.SyncRun{ID: "run-1", From: from, To: to, Status: domain.RunSucceeded, Entries: 3, Projects: 2}, nil
}

func newTestApp(s syncer) *App {
	remaining := 17
	return &App{
		log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		sync: s,
		loc:  time.UTC,
		quota: func() toggl.Quota {
			return toggl.Quota{Remaining: &remaining, ResetsIn: 30 * time.Second}
		},
	}
}

func do(t *testing.T, h http.Handler, method, target string) (int, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	var body map[string]any
	if rec.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec.Code, body
}

func TestRouter_Healthz(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestApp(&stubSyncer{}).Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("Content-Type"))
}

func TestRouter_Sync(t *testing.T) {
	s := &stubSyncer{}
	h := newTestApp(s).Router()

	code, body := do(t, h, http.MethodPost, "/sync?from=2025-08-01&to=2025-08-01")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "run-1", body["run_id"])
	assert.Equal(t, float64(3), body["entries"])
	assert.Equal(t, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), s.from)
	assert.Equal(t, time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC), s.to)

	code, _ = do(t, h, http.MethodGet, "/sync")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 24*time.Hour, s.to.Sub(s.from))
}

func TestRouter_SyncErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target string
		method string
		want   int
	}{
		{"already running", usecase.ErrSyncRunning, "/sync", http.MethodPost, http.StatusConflict},
		{"wrapped running", errors.Join(errors.New("x"), usecase.ErrSyncRunning), "/sync", http.MethodPost, http.StatusConflict},
		{"failure", errors.New("boom"), "/sync", http.MethodPost, http.StatusInternalServerError},
		{"bad window", nil, "/sync?from=tomorrow", http.MethodGet, http.StatusBadRequest},
		{"bad timeout", nil, "/sync?timeout=soon", http.MethodGet, http.StatusBadRequest},
		{"wrong method", nil, "/sync", http.MethodDelete, http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := do(t, newTestApp(&stubSyncer{err: tt.err}).Router(), tt.method, tt.target)
			assert.Equal(t, tt.want, code)
			if tt.err != nil {
				assert.Equal(t, "error", body["status"])
				assert.Equal(t, tt.err.Error(), body["error"])
			}
		})
	}
}

func TestRouter_Quota(t *testing.T) {
	code, body := do(t, newTestApp(&stubSyncer{}).Router(), http.MethodGet, "/quota")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(17), body["remaining"])
	assert.Equal(t, float64(30), body["resets_in_seconds"])
	assert.NotContains(t, body, "observed_at")
}
