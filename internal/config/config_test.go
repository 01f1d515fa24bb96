package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toggl-track/toggl"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TOGGL_API_TOKEN", "TOGGL_EMAIL", "TOGGL_PASSWORD", "TOGGL_SESSION_COOKIE",
		"TOGGL_WORKSPACE_ID", "TOGGL_BASE_URL", "TOGGL_REPORTS_URL", "TOGGL_REQUEST_INTERVAL",
		"MYSQL_DSN", "SYNC_TZ", "HTTP_ADDR",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOGGL_API_TOKEN", "tok")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, toggl.DefaultBaseURL, cfg.Toggl.BaseURL)
	assert.Equal(t, toggl.DefaultReportsURL, cfg.Toggl.ReportsURL)
	assert.Equal(t, time.Second, cfg.Toggl.RequestInterval)
	assert.Equal(t, "UTC", cfg.Sync.Timezone)

	a, err := cfg.Toggl.Auth()
	require.NoError(t, err)
	assert.Equal(t, "token", a.String())
}

func TestLoad_EmailPasswordAndOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOGGL_EMAIL", "me@example.com")
	t.Setenv("TOGGL_PASSWORD", "pw")
	t.Setenv("TOGGL_WORKSPACE_ID", "456")
	t.Setenv("TOGGL_REQUEST_INTERVAL", "250ms")
	t.Setenv("SYNC_TZ", "Europe/Berlin")
	t.Setenv("HTTP_ADDR", ":8080")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, int64(456), cfg.Toggl.WorkspaceID)
	assert.Equal(t, 250*time.Millisecond, cfg.Toggl.RequestInterval)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)

	a, err := cfg.Toggl.Auth()
	require.NoError(t, err)
	assert.Equal(t, toggl.BasicAuth{Email: "me@example.com", Password: "pw"}, a)
}

func TestLoad_RequiresCredential(t *testing.T) {
	clearEnv(t)
	_, err := Load()
	require.ErrorIs(t, err, toggl.ErrNoAuth)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOGGL_API_TOKEN", "tok")
	t.Setenv("SYNC_TZ", "Mars/Olympus")
	_, err := Load()
	require.Error(t, err)

	clearEnv(t)
	t.Setenv("TOGGL_API_TOKEN", "tok")
	t.Setenv("TOGGL_WORKSPACE_ID", "abc")
	_, err = Load()
	require.Error(t, err)
}
