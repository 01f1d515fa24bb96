package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"toggl-track/internal/domain"
	"toggl-track/internal/ports"
)

// ErrSyncRunning is returned when Run is called while another run is active.
var ErrSyncRunning = errors.New("sync already running")

// SyncUseCase coordinates fetching from Toggl and syncing to a Sink. At most
// one Run executes at a time.
type SyncUseCase struct {
	Log   *slog.Logger
	Toggl ports.TogglClient
	Sink  ports.Sink

	// Now defaults to time.Now.
	Now func() time.Time

	mu sync.Mutex
}

// Run copies clients, projects, tags and the entries started in [from, to]
// into the sink, then records the run. The run is recorded on failure too.
func (uc *SyncUseCase) Run(ctx context.Context, from, to time.Time) (domain.SyncRun, error) {
	if uc.Toggl == nil || uc.Sink == nil {
		return domain.SyncRun{}, errors.New("usecase not initialized: missing dependencies")
	}
	if !to.After(from) {
		return domain.SyncRun{}, fmt.Errorf("empty sync window: %s is not after %s", to.Format(time.RFC3339), from.Format(time.RFC3339))
	}
	if !uc.mu.TryLock() {
		return domain.SyncRun{}, ErrSyncRunning
	}
	defer uc.mu.Unlock()

	run := domain.SyncRun{ID: uuid.NewString(), From: from, To: to, StartedAt: uc.now()}
	log := uc.Log.With(slog.String("run_id", run.ID))

	err := uc.sync(ctx, log, &run)
	run.FinishedAt = uc.now()
	run.Status = domain.RunSucceeded
	if err != nil {
		run.Status = domain.RunFailed
		run.Error = err.Error()
	}

	if rerr := uc.Sink.RecordRun(context.WithoutCancel(ctx), run); rerr != nil {
		log.Error("record sync run failed", slog.String("error", rerr.Error()))
		if err == nil {
			err = rerr
		}
	}
	if err != nil {
		return run, err
	}
	log.Info("sync completed",
		slog.Int("entries", run.Entries),
		slog.Int("projects", run.Projects),
		slog.Int("clients", run.Clients),
		slog.Int("tags", run.Tags),
		slog.Duration("took", run.FinishedAt.Sub(run.StartedAt)),
	)
	return run, nil
}

// sync clients and projects before entries so reports can join on them.
func (uc *SyncUseCase) sync(ctx context.Context, log *slog.Logger, run *domain.SyncRun) error {
	clients, err := uc.Toggl.ListClients(ctx)
	if err != nil {
		return err
	}
	if err := uc.Sink.SyncClients(ctx, clients); err != nil {
		return err
	}
	run.Clients = len(clients)

	projects, err := uc.Toggl.ListProjects(ctx)
	if err != nil {
		return err
	}
	if err := uc.Sink.SyncProjects(ctx, projects); err != nil {
		return err
	}
	run.Projects = len(projects)

	tags, err := uc.Toggl.ListTags(ctx)
	if err != nil {
		return err
	}
	if err := uc.Sink.SyncTags(ctx, tags); err != nil {
		return err
	}
	run.Tags = len(tags)

	log.Info("fetching time entries", slog.Time("from", run.From), slog.Time("to", run.To))
	entries, err := uc.Toggl.ListTimeEntries(ctx, run.From, run.To)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		log.Info("no entries to sync")
		return nil
	}
	if err := uc.Sink.SyncEntries(ctx, entries); err != nil {
		return err
	}
	run.Entries = len(entries)
	return nil
}

func (uc *SyncUseCase) now() time.Time {
	if uc.Now != nil {
		return uc.Now()
	}
	return time.Now()
}
