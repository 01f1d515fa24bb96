package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	msql "toggl-track/internal/adapter/mysql"
	tg "toggl-track/internal/adapter/toggl"
	"toggl-track/internal/config"
	"toggl-track/internal/domain"
	"toggl-track/internal/migrate"
	"toggl-track/internal/usecase"
	"toggl-track/toggl"
)

type syncer interface {
	Run(ctx context.Context, from, to time.Time) (domain.SyncRun, error)
}

// App wires adapters and use cases.
type App struct {
	log   *slog.Logger
	sync  syncer
	quota func() toggl.Quota
	loc   *time.Location
	close func() error
}

func New(log *slog.Logger, cfg config.Config) (*App, error) {
	loc, err := time.LoadLocation(cfg.Sync.Timezone)
	if err != nil {
		return nil, fmt.Errorf("SYNC_TZ: %w", err)
	}
	auth, err := cfg.Toggl.Auth()
	if err != nil {
		return nil, err
	}
	api, err := toggl.NewClient(auth,
		toggl.WithBaseURL(cfg.Toggl.BaseURL),
		toggl.WithReportsURL(cfg.Toggl.ReportsURL),
		toggl.WithRequestInterval(cfg.Toggl.RequestInterval),
		toggl.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}
	log.Info("toggl client configured", slog.String("auth", api.AuthMode()), slog.String("base_url", cfg.Toggl.BaseURL))
	togglClient := tg.NewClient(api, cfg.Toggl.WorkspaceID, log)

	// Migrate before the sink is used.
	if err := migrate.Run(context.Background(), cfg.MySQL.DSN, log); err != nil {
		return nil, err
	}
	sink, err := msql.NewClient(context.Background(), cfg.MySQL.DSN, log)
	if err != nil {
		return nil, err
	}

	uc := &usecase.SyncUseCase{
		Log:   log,
		Toggl: togglClient,
		Sink:  sink,
	}
	return &App{log: log, sync: uc, quota: togglClient.Quota, loc: loc, close: sink.Close}, nil
}

// RunOnce syncs the window [from, to].
func (a *App) RunOnce(ctx context.Context, from, to time.Time) (domain.SyncRun, error) {
	return a.sync.Run(ctx, from, to)
}

// Location is the zone date-only bounds and daily runs are computed in.
func (a *App) Location() *time.Location { return a.loc }

func (a *App) Close() error {
	if a.close == nil {
		return nil
	}
	return a.close()
}
