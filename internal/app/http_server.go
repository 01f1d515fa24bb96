package app

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"toggl-track/internal/usecase"
)

// HTTPServer returns a configured http.Server that exposes endpoints to
// trigger syncs. Call ListenAndServe on it in a goroutine and Shutdown it on
// exit.
func (a *App) HTTPServer(addr string) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	a.log.Info("http trigger server configured", slog.String("addr", addr))
	return srv
}

// Router serves:
//
//	GET  /healthz
//	GET  /quota
//	GET|POST /sync?from=...&to=...&timeout=5m
func (a *App) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(loggingMiddleware(a.log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/quota", a.handleQuota)
	r.Get("/sync", a.handleSync)
	r.Post("/sync", a.handleSync)
	return r
}

func (a *App) handleSync(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, to, err := ParseWindow(q.Get("from"), q.Get("to"), time.Now().UTC(), a.loc)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"status": "error", "error": err.Error()})
		return
	}

	ctx := r.Context()
	if v := q.Get("timeout"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]any{"status": "error", "error": "invalid timeout " + v})
			return
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	run, err := a.RunOnce(ctx, from, to)
	body := map[string]any{
		"from": from.Format(time.RFC3339),
		"to":   to.Format(time.RFC3339),
	}
	if run.ID != "" {
		body["run_id"] = run.ID
	}
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, usecase.ErrSyncRunning) {
			status = http.StatusConflict
		}
		body["status"] = "error"
		body["error"] = err.Error()
		writeJSON(w, status, body)
		return
	}
	body["status"] = run.Status
	body["entries"] = run.Entries
	body["projects"] = run.Projects
	body["clients"] = run.Clients
	body["tags"] = run.Tags
	writeJSON(w, http.StatusOK, body)
}

func (a *App) handleQuota(w http.ResponseWriter, r *http.Request) {
	if a.quota == nil {
		writeJSON(w, http.StatusOK, map[string]any{})
		return
	}
	qt := a.quota()
	body := map[string]any{"resets_in_seconds": int64(qt.ResetsIn / time.Second)}
	if qt.Remaining != nil {
		body["remaining"] = *qt.Remaining
	}
	if !qt.ObservedAt.IsZero() {
		body["observed_at"] = qt.ObservedAt.UTC().Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func loggingMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info("http request",
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote", r.RemoteAddr),
				slog.Int("status", ww.Status()),
				slog.Duration("dur", time.Since(start)),
			)
		})
	}
}
