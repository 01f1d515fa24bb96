package toggl

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Client-side validation errors. These are returned before any request is sent.
var (
	ErrNoIDs      = errors.New("toggl: at least one id is required")
	ErrTooManyIDs = errors.New("toggl: too many ids in a single request")
	ErrInvalidID  = errors.New("toggl: id must be a positive integer")
	ErrNoEmails   = errors.New("toggl: at least one email is required")
	ErrNoAuth     = errors.New("toggl: authentication required: set an API token, email and password, or a session cookie")
)

// APIError is a non-2xx response from the API. The more specific error
// types below embed and unwrap to it, so errors.As(err, &apiErr) matches
// all of them.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("toggl: api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("toggl: api returned status %d: %s", e.StatusCode, e.Message)
}

// ValidationError is returned for 400 responses.
type ValidationError struct{ *APIError }

// AuthError is returned for 401 and 403 responses.
type AuthError struct{ *APIError }

// NotFoundError is returned for 404 responses.
type NotFoundError struct{ *APIError }

// DeprecatedEndpointError is returned for 410 responses.
type DeprecatedEndpointError struct{ *APIError }

// ServerError is returned for 5xx responses once retries are exhausted.
type ServerError struct{ *APIError }

// RateLimitError is returned for 429 responses.
type RateLimitError struct {
	*APIError
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s (retry after %s)", e.APIError.Error(), e.RetryAfter)
}

// QuotaError is returned for 402 responses.
type QuotaError struct {
	*APIError
	ResetsIn  time.Duration
	Remaining *int
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("%s (quota resets in %s)", e.APIError.Error(), e.ResetsIn)
}

// TransportError wraps network failures and timeouts. No entity is returned
// alongside it.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("toggl: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *ValidationError) Unwrap() error         { return e.APIError }
func (e *AuthError) Unwrap() error               { return e.APIError }
func (e *NotFoundError) Unwrap() error           { return e.APIError }
func (e *DeprecatedEndpointError) Unwrap() error { return e.APIError }
func (e *ServerError) Unwrap() error             { return e.APIError }
func (e *RateLimitError) Unwrap() error          { return e.APIError }
func (e *QuotaError) Unwrap() error              { return e.APIError }

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// errorFromResponse translates a non-2xx response into a typed error.
func errorFromResponse(resp *http.Response, body []byte) error {
	base := &APIError{
		StatusCode: resp.StatusCode,
		Message:    messageFromBody(body),
		Body:       body,
	}
	switch code := resp.StatusCode; {
	case code == http.StatusBadRequest:
		return &ValidationError{base}
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return &AuthError{base}
	case code == http.StatusPaymentRequired:
		qe := &QuotaError{APIError: base}
		qe.ResetsIn, _ = secondsHeader(resp.Header, headerQuotaResetsIn)
		if n, ok := intHeader(resp.Header, headerQuotaRemaining); ok {
			qe.Remaining = &n
		}
		return qe
	case code == http.StatusNotFound:
		return &NotFoundError{base}
	case code == http.StatusGone:
		return &DeprecatedEndpointError{base}
	case code == http.StatusTooManyRequests:
		retry, ok := secondsHeader(resp.Header, headerRetryAfter)
		if !ok {
			retry = DefaultRetryAfter
		}
		return &RateLimitError{APIError: base, RetryAfter: retry}
	case code >= 500:
		return &ServerError{base}
	default:
		return base
	}
}

// messageFromBody extracts a human message from an error body. Toggl returns
// either a JSON string, an object with message/error, or plain text.
func messageFromBody(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}
	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return s
	}
	var obj struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &obj); err == nil {
		if obj.Message != "" {
			return obj.Message
		}
		if obj.Error != "" {
			return obj.Error
		}
	}
	if len(trimmed) > 512 {
		trimmed = trimmed[:512]
	}
	return trimmed
}

func intHeader(h http.Header, name string) (int, bool) {
	v := strings.TrimSpace(h.Get(name))
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func secondsHeader(h http.Header, name string) (time.Duration, bool) {
	n, ok := intHeader(h, name)
	if !ok || n < 0 {
		return 0, false
	}
	return time.Duration(n) * time.Second, true
}
