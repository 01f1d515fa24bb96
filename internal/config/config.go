package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"toggl-track/toggl"
)

// Config holds environment-driven configuration.
type Config struct {
	Toggl TogglConfig
	MySQL MySQLConfig
	Sync  SyncConfig
	HTTP  HTTPConfig
}

// TogglConfig selects credentials and endpoints. Exactly one credential is
// used: the token, else email and password, else the session cookie.
type TogglConfig struct {
	APIToken        string        `env:"TOGGL_API_TOKEN"`
	Email           string        `env:"TOGGL_EMAIL"`
	Password        string        `env:"TOGGL_PASSWORD"`
	SessionCookie   string        `env:"TOGGL_SESSION_COOKIE"`
	WorkspaceID     int64         `env:"TOGGL_WORKSPACE_ID" env-default:"0"`
	BaseURL         string        `env:"TOGGL_BASE_URL" env-default:"https://api.track.toggl.com/api/v9"`
	ReportsURL      string        `env:"TOGGL_REPORTS_URL" env-default:"https://api.track.toggl.com/reports/api/v3"`
	RequestInterval time.Duration `env:"TOGGL_REQUEST_INTERVAL" env-default:"1s"`
}

type MySQLConfig struct {
	// e.g. user:pass@tcp(host:3306)/dbname?parseTime=true&multiStatements=true
	DSN string `env:"MYSQL_DSN"`
}

type SyncConfig struct {
	Timezone string `env:"SYNC_TZ" env-default:"UTC"`
}

type HTTPConfig struct {
	// Empty disables the trigger server unless -http is given.
	Addr string `env:"HTTP_ADDR"`
}

// Load reads configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	if _, err := cfg.Toggl.Auth(); err != nil {
		return Config{}, err
	}
	if cfg.Toggl.WorkspaceID < 0 {
		return Config{}, fmt.Errorf("TOGGL_WORKSPACE_ID must not be negative, got %d", cfg.Toggl.WorkspaceID)
	}
	if _, err := time.LoadLocation(cfg.Sync.Timezone); err != nil {
		return Config{}, fmt.Errorf("SYNC_TZ: %w", err)
	}
	return cfg, nil
}

// Auth returns the credential to authenticate with.
func (c TogglConfig) Auth() (toggl.Auth, error) {
	return toggl.ResolveAuth(c.APIToken, c.Email, c.Password, c.SessionCookie)
}
