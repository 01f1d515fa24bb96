package toggl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

const (
	// SessionCookieName is the cookie set by the accounts service.
	SessionCookieName = "__Secure-accounts-session"

	defaultAccountsURL = "https://accounts.toggl.com/api"
)

// Auth authenticates outgoing requests. It is one of TokenAuth, BasicAuth or
// SessionAuth and is fixed for the lifetime of a Client.
type Auth interface {
	apply(req *http.Request)
	String() string
}

// TokenAuth authenticates with an API token, sent as the basic auth user name
// with the literal password "api_token".
type TokenAuth struct {
	Token string
}

func (a TokenAuth) apply(req *http.Request) { req.SetBasicAuth(a.Token, "api_token") }

func (a TokenAuth) String() string { return "token" }

// BasicAuth authenticates with account email and password.
type BasicAuth struct {
	Email    string
	Password string
}

func (a BasicAuth) apply(req *http.Request) { req.SetBasicAuth(a.Email, a.Password) }

func (a BasicAuth) String() string { return "email" }

// SessionAuth authenticates with a session cookie obtained from CreateSession.
type SessionAuth struct {
	Cookie string
}

func (a SessionAuth) apply(req *http.Request) {
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: a.Cookie})
}

func (a SessionAuth) String() string { return "session" }

// AuthFromEnv picks credentials from the environment, preferring
// TOGGL_API_TOKEN, then TOGGL_EMAIL with TOGGL_PASSWORD, then
// TOGGL_SESSION_COOKIE.
func AuthFromEnv() (Auth, error) {
	return ResolveAuth(
		os.Getenv("TOGGL_API_TOKEN"),
		os.Getenv("TOGGL_EMAIL"),
		os.Getenv("TOGGL_PASSWORD"),
		os.Getenv("TOGGL_SESSION_COOKIE"),
	)
}

// ResolveAuth returns the first complete credential in precedence order
// token, email+password, session cookie.
func ResolveAuth(token, email, password, sessionCookie string) (Auth, error) {
	switch {
	case strings.TrimSpace(token) != "":
		return TokenAuth{Token: strings.TrimSpace(token)}, nil
	case strings.TrimSpace(email) != "" && password != "":
		return BasicAuth{Email: strings.TrimSpace(email), Password: password}, nil
	case strings.TrimSpace(sessionCookie) != "":
		return SessionAuth{Cookie: strings.TrimSpace(sessionCookie)}, nil
	}
	return nil, ErrNoAuth
}

// CreateSession logs in to the accounts service and returns the session
// cookie value for use with SessionAuth.
func CreateSession(ctx context.Context, httpClient *http.Client, accountsURL, email, password string) (string, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if accountsURL == "" {
		accountsURL = defaultAccountsURL
	}
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return "", err
	}
	target := strings.TrimRight(accountsURL, "/") + "/sessions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Method: req.Method, URL: target, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode >= 300 {
		return "", errorFromResponse(resp, body)
	}
	for _, c := range resp.Cookies() {
		if c.Name == SessionCookieName && c.Value != "" {
			return c.Value, nil
		}
	}
	return "", &AuthError{&APIError{StatusCode: resp.StatusCode, Message: "no session cookie in response"}}
}

// DestroySession logs the session out on the accounts service.
func (c *Client) DestroySession(ctx context.Context) error {
	if _, ok := c.auth.(SessionAuth); !ok {
		return fmt.Errorf("toggl: client is not using session auth (%s)", c.auth)
	}
	_, err := c.send(ctx, http.MethodDelete, strings.TrimRight(c.accountsURL, "/")+"/sessions", nil, nil)
	return err
}
