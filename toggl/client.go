package toggl

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the Track API v9 root.
	DefaultBaseURL = "https://api.track.toggl.com/api/v9"
	// DefaultReportsURL is the Reports API v3 root.
	DefaultReportsURL = "https://api.track.toggl.com/reports/api/v3"

	defaultUserAgent     = "toggl-track-go/0.1"
	defaultTimeout       = 30 * time.Second
	defaultServerRetries = 2
	defaultRetryInterval = 500 * time.Millisecond
)

// Client talks to the Toggl Track API. Create one with NewClient and use the
// resource services hanging off it.
type Client struct {
	baseURL     string
	reportsURL  string
	accountsURL string
	userAgent   string
	http        *http.Client
	auth        Auth
	log         *slog.Logger
	gov         *governor

	retryRateLimit bool
	serverRetries  int
	retryInterval  time.Duration

	Me             *MeService
	TimeEntries    *TimeEntriesService
	Projects       *ProjectsService
	ProjectUsers   *ProjectUsersService
	Clients        *ClientsService
	Tags           *TagsService
	Workspaces     *WorkspacesService
	WorkspaceUsers *WorkspaceUsersService
	Tasks          *TasksService
	Groups         *GroupsService
	Organizations  *OrganizationsService
	Reports        *ReportsService
	Webhooks       *WebhooksService
	Expenses       *ExpensesService
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the Track API root.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithReportsURL overrides the Reports API root.
func WithReportsURL(u string) Option {
	return func(c *Client) { c.reportsURL = strings.TrimRight(u, "/") }
}

// WithAccountsURL overrides the accounts service root used for sessions.
func WithAccountsURL(u string) Option {
	return func(c *Client) { c.accountsURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient sets the underlying HTTP client. Its Timeout bounds each
// request.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger. Requests are logged at debug level.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithRequestInterval sets the minimum spacing between requests. Zero
// disables the throttle.
func WithRequestInterval(d time.Duration) Option {
	return func(c *Client) {
		if d < 0 {
			d = 0
		}
		c.gov.interval = d
	}
}

// WithRateLimitRetry controls whether a 429 is retried once after waiting
// Retry-After. Enabled by default.
func WithRateLimitRetry(enabled bool) Option {
	return func(c *Client) { c.retryRateLimit = enabled }
}

// WithServerRetries sets how many times a 5xx response is retried and the
// initial backoff between attempts.
func WithServerRetries(n int, initial time.Duration) Option {
	return func(c *Client) {
		if n < 0 {
			n = 0
		}
		c.serverRetries = n
		if initial > 0 {
			c.retryInterval = initial
		}
	}
}

// NewClient builds a Client authenticating with auth.
func NewClient(auth Auth, opts ...Option) (*Client, error) {
	if auth == nil {
		return nil, ErrNoAuth
	}
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := &Client{
		baseURL:        DefaultBaseURL,
		reportsURL:     DefaultReportsURL,
		accountsURL:    defaultAccountsURL,
		userAgent:      defaultUserAgent,
		http:           &http.Client{Timeout: defaultTimeout},
		auth:           auth,
		log:            discard,
		gov:            newGovernor(DefaultRequestInterval, discard),
		retryRateLimit: true,
		serverRetries:  defaultServerRetries,
		retryInterval:  defaultRetryInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.gov.log = c.log

	c.Me = &MeService{c}
	c.TimeEntries = &TimeEntriesService{c}
	c.Projects = &ProjectsService{c}
	c.ProjectUsers = &ProjectUsersService{c}
	c.Clients = &ClientsService{c}
	c.Tags = &TagsService{c}
	c.Workspaces = &WorkspacesService{c}
	c.WorkspaceUsers = &WorkspaceUsersService{c}
	c.Tasks = &TasksService{c}
	c.Groups = &GroupsService{c}
	c.Organizations = &OrganizationsService{c}
	c.Reports = &ReportsService{c}
	c.Webhooks = &WebhooksService{c}
	c.Expenses = &ExpensesService{c}
	return c, nil
}

// NewClientFromEnv builds a Client using AuthFromEnv.
func NewClientFromEnv(opts ...Option) (*Client, error) {
	auth, err := AuthFromEnv()
	if err != nil {
		return nil, err
	}
	return NewClient(auth, opts...)
}

// Quota returns the last quota state reported by the server.
func (c *Client) Quota() Quota { return c.gov.snapshot() }

// AuthMode names the configured auth mode: token, email or session.
func (c *Client) AuthMode() string { return c.auth.String() }

func (c *Client) apiURL(format string, args ...any) string {
	return c.baseURL + fmt.Sprintf(format, args...)
}

func (c *Client) reportURL(format string, args ...any) string {
	return c.reportsURL + fmt.Sprintf(format, args...)
}
