package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

//go:embed sql/*.sql
var migrationsFS embed.FS

type migration struct {
	version int
	name    string
	body    string
}

// Run opens dsn and applies pending migrations from internal/migrate/sql.
// The DSN should include multiStatements=true since each file is executed
// as one batch.
func Run(ctx context.Context, dsn string, log *slog.Logger) error {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(c); err != nil {
		return err
	}
	return Apply(ctx, db, log)
}

// Apply runs every embedded migration not yet recorded in
// schema_migrations, in version order.
func Apply(ctx context.Context, db *sql.DB, log *slog.Logger) error {
	migrations, err := load(migrationsFS)
	if err != nil {
		return err
	}
	if err := ensureMigrationsTable(ctx, db); err != nil {
		return err
	}
	applied, err := loadApplied(ctx, db)
	if err != nil {
		return err
	}

	pending := 0
	for _, m := range migrations {
		if applied[m.version] {
			log.Debug("migration already applied", slog.Int("version", m.version), slog.String("file", m.name))
			continue
		}
		log.Info("applying migration", slog.Int("version", m.version), slog.String("file", m.name))
		if _, err := db.ExecContext(ctx, m.body); err != nil {
			return fmt.Errorf("applying %s: %w", m.name, err)
		}
		if err := recordApplied(ctx, db, m.version); err != nil {
			return err
		}
		pending++
	}
	log.Info("schema up to date", slog.Int("applied", pending), slog.Int("total", len(migrations)))
	return nil
}

// load reads sql/NNNN_name.sql files from fsys sorted by version.
func load(fsys fs.FS) ([]migration, error) {
	files, err := fs.Glob(fsys, "sql/*.sql")
	if err != nil {
		return nil, err
	}
	out := make([]migration, 0, len(files))
	seen := make(map[int]string, len(files))
	for _, f := range files {
		base := path.Base(f)
		ver, err := parseVersion(base)
		if err != nil {
			return nil, fmt.Errorf("invalid migration filename %q: %w", base, err)
		}
		if prev, dup := seen[ver]; dup {
			return nil, fmt.Errorf("migrations %q and %q share version %d", prev, base, ver)
		}
		seen[ver] = base
		b, err := fs.ReadFile(fsys, f)
		if err != nil {
			return nil, err
		}
		out = append(out, migration{version: ver, name: base, body: string(b)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].version < out[j].version })
	return out, nil
}

func ensureMigrationsTable(ctx context.Context, db *sql.DB) error {
	const ddl = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version BIGINT PRIMARY KEY,
	applied_at DATETIME(6) NOT NULL
) ENGINE=InnoDB;`
	_, err := db.ExecContext(ctx, ddl)
	return err
}

func loadApplied(ctx context.Context, db *sql.DB) (map[int]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	m := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		m[v] = true
	}
	return m, rows.Err()
}

func recordApplied(ctx context.Context, db *sql.DB, version int) error {
	_, err := db.ExecContext(ctx, "INSERT INTO schema_migrations(version, applied_at) VALUES(?, ?)", version, time.Now().UTC())
	return err
}

func parseVersion(name string) (int, error) {
	i := strings.IndexByte(name, '_')
	if i <= 0 {
		return 0, fmt.Errorf("missing prefix number")
	}
	return strconv.Atoi(name[:i])
}
