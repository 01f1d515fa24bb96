package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"toggl-track/internal/domain"
)

// Client implements ports.Sink on MySQL tables created by package migrate.
type Client struct {
	db  *sql.DB
	log *slog.Logger
}

// NewClient opens a MySQL connection using the provided DSN.
// Example DSN: user:pass@tcp(host:3306)/dbname?parseTime=true&multiStatements=true
func NewClient(ctx context.Context, dsn string, log *slog.Logger) (*Client, error) {
	if dsn == "" {
		return nil, errors.New("mysql: DSN is required")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(c); err != nil {
		db.Close()
		return nil, err
	}
	return &Client{db: db, log: log}, nil
}

const upsertEntry = `
INSERT INTO toggl_time_entries
  (id, workspace_id, project_id, task_id, user_id, description, tags, billable, start, stop, duration_sec, running, at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  workspace_id=VALUES(workspace_id),
  project_id=VALUES(project_id),
  task_id=VALUES(task_id),
  user_id=VALUES(user_id),
  description=VALUES(description),
  tags=VALUES(tags),
  billable=VALUES(billable),
  start=VALUES(start),
  stop=VALUES(stop),
  duration_sec=VALUES(duration_sec),
  running=VALUES(running),
  at=VALUES(at);
`

// SyncEntries upserts entries by id.
func (c *Client) SyncEntries(ctx context.Context, entries []domain.TimeEntry) error {
	return upsertAll(ctx, c, "toggl_time_entries", upsertEntry, entries, func(e domain.TimeEntry) ([]any, error) {
		tags, err := json.Marshal(e.Tags)
		if err != nil {
			return nil, err
		}
		return []any{
			e.ID,
			e.WorkspaceID,
			nullInt(e.ProjectID),
			nullInt(e.TaskID),
			e.UserID,
			e.Description,
			string(tags),
			e.Billable,
			e.Start.UTC(),
			nullTime(e.Stop),
			e.DurationSec,
			e.Running(),
			nullTime(e.At),
		}, nil
	})
}

const upsertProject = `
INSERT INTO toggl_projects
  (id, workspace_id, client_id, name, active, is_private, billable, color, at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  workspace_id=VALUES(workspace_id),
  client_id=VALUES(client_id),
  name=VALUES(name),
  active=VALUES(active),
  is_private=VALUES(is_private),
  billable=VALUES(billable),
  color=VALUES(color),
  at=VALUES(at);
`

// SyncProjects upserts projects by id.
func (c *Client) SyncProjects(ctx context.Context, projects []domain.Project) error {
	return upsertAll(ctx, c, "toggl_projects", upsertProject, projects, func(p domain.Project) ([]any, error) {
		return []any{p.ID, p.WorkspaceID, nullInt(p.ClientID), p.Name, p.Active, p.Private, p.Billable, p.Color, zeroTime(p.At)}, nil
	})
}

const upsertClient = `
INSERT INTO toggl_clients (id, workspace_id, name, archived, at)
VALUES (?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  workspace_id=VALUES(workspace_id),
  name=VALUES(name),
  archived=VALUES(archived),
  at=VALUES(at);
`

func (c *Client) SyncClients(ctx context.Context, clients []domain.Client) error {
	return upsertAll(ctx, c, "toggl_clients", upsertClient, clients, func(cl domain.Client) ([]any, error) {
		return []any{cl.ID, cl.WorkspaceID, cl.Name, cl.Archived, zeroTime(cl.At)}, nil
	})
}

const upsertTag = `
INSERT INTO toggl_tags (id, workspace_id, name, at)
VALUES (?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  workspace_id=VALUES(workspace_id),
  name=VALUES(name),
  at=VALUES(at);
`

func (c *Client) SyncTags(ctx context.Context, tags []domain.Tag) error {
	return upsertAll(ctx, c, "toggl_tags", upsertTag, tags, func(t domain.Tag) ([]any, error) {
		return []any{t.ID, t.WorkspaceID, t.Name, zeroTime(t.At)}, nil
	})
}

// RecordRun stores the outcome of one sync pass.
func (c *Client) RecordRun(ctx context.Context, run domain.SyncRun) error {
	const q = `
INSERT INTO toggl_sync_runs
  (id, range_from, range_to, started_at, finished_at, status, error, entries, projects, clients, tags)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`
	_, err := c.db.ExecContext(ctx, q,
		run.ID,
		run.From.UTC(),
		run.To.UTC(),
		run.StartedAt.UTC(),
		run.FinishedAt.UTC(),
		run.Status,
		run.Error,
		run.Entries,
		run.Projects,
		run.Clients,
		run.Tags,
	)
	if err != nil {
		return fmt.Errorf("record sync run %s: %w", run.ID, err)
	}
	return nil
}

// Close closes the underlying DB.
func (c *Client) Close() error { return c.db.Close() }

// upsertAll executes query once per row inside one transaction.
func upsertAll[T any](ctx context.Context, c *Client, table, query string, rows []T, args func(T) ([]any, error)) error {
	if len(rows) == 0 {
		return nil
	}
	tx, err := c.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		a, err := args(row)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("%s: %w", table, err)
		}
		if _, err := stmt.ExecContext(ctx, a...); err != nil {
			tx.Rollback()
			return fmt.Errorf("%s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	c.log.Info("mysql sink upserted rows", slog.String("table", table), slog.Int("count", len(rows)))
	return nil
}

func nullInt(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func zeroTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC()
}
