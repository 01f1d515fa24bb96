package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"toggl-track/internal/app"
	"toggl-track/internal/config"
)

func main() {
	once := flag.Bool("once", false, "Run a single sync and exit")
	interval := flag.Duration("interval", 15*time.Minute, "Sync interval when not running once")
	daily := flag.Bool("daily", false, "Run at local midnight each day (uses SYNC_TZ, default UTC)")
	from := flag.String("from", "", "RFC3339 or YYYY-MM-DD start (default: to - 24h)")
	to := flag.String("to", "", "RFC3339 or YYYY-MM-DD end, dates inclusive (default: now)")
	httpAddr := flag.String("http", "", "Serve the sync trigger API on this address (default: HTTP_ADDR)")
	verbose := flag.Bool("v", false, "Enable verbose logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	application, err := app.New(logger, cfg)
	if err != nil {
		logger.Error("failed to initialize app", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer application.Close()

	fromTime, toTime, err := app.ParseWindow(*from, *to, time.Now().UTC(), application.Location())
	if err != nil {
		logger.Error("invalid time window", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *once {
		run, err := application.RunOnce(ctx, fromTime, toTime)
		if err != nil {
			logger.Error("sync failed", slog.String("run_id", run.ID), slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}

	addr := *httpAddr
	if addr == "" {
		addr = cfg.HTTP.Addr
	}
	if addr != "" {
		srv := application.HTTPServer(addr)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server failed", slog.String("error", err.Error()))
				stop()
			}
		}()
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(sctx)
		}()
	}

	if *daily {
		runDaily(ctx, logger, application)
		return
	}
	runPeriodic(ctx, logger, application, *interval, fromTime, toTime)
}

// runDaily syncs the previous local day at each midnight in SYNC_TZ.
func runDaily(ctx context.Context, logger *slog.Logger, application *app.App) {
	loc := application.Location()
	logger.Info("starting daily sync at midnight", slog.String("tz", loc.String()))
	for {
		next := app.NextMidnight(time.Now().In(loc))
		dur := time.Until(next)
		logger.Info("sleeping until next midnight", slog.Time("next", next), slog.Duration("sleep", dur))
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			return
		case <-time.After(dur):
			end := next.UTC()
			start := next.AddDate(0, 0, -1).UTC()
			if _, err := application.RunOnce(ctx, start, end); err != nil {
				logger.Error("daily sync failed", slog.String("error", err.Error()))
			}
		}
	}
}

func runPeriodic(ctx context.Context, logger *slog.Logger, application *app.App, interval time.Duration, from, to time.Time) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	logger.Info("starting periodic sync", slog.Duration("interval", interval))
	if _, err := application.RunOnce(ctx, from, to); err != nil {
		logger.Error("initial sync failed", slog.String("error", err.Error()))
	}
	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			return
		case <-ticker.C:
			end := time.Now().UTC()
			if _, err := application.RunOnce(ctx, end.Add(-app.DefaultWindow), end); err != nil {
				logger.Error("periodic sync failed", slog.String("error", err.Error()))
			}
		}
	}
}
