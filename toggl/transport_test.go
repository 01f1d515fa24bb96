package toggl

import (
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		status int
		check  func(error) bool
	}{
		{http.StatusBadRequest, func(err error) bool { var e *ValidationError; return errors.As(err, &e) }},
		{http.StatusUnauthorized, func(err error) bool { var e *AuthError; return errors.As(err, &e) }},
		{http.StatusForbidden, func(err error) bool { var e *AuthError; return errors.As(err, &e) }},
		{http.StatusPaymentRequired, func(err error) bool { var e *QuotaError; return errors.As(err, &e) }},
		{http.StatusNotFound, func(err error) bool { var e *NotFoundError; return errors.As(err, &e) }},
		{http.StatusGone, func(err error) bool { var e *DeprecatedEndpointError; return errors.As(err, &e) }},
		{http.StatusTooManyRequests, func(err error) bool { var e *RateLimitError; return errors.As(err, &e) }},
		{http.StatusBadGateway, func(err error) bool { var e *ServerError; return errors.As(err, &e) }},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			var calls atomic.Int32
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				writeJSON(w, tt.status, "something went wrong")
			}), WithRateLimitRetry(false), WithServerRetries(0, 0))
			newFakeClock().install(c)

			_, err := c.Workspaces.Get(testContext(t), 1)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error type %T", err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, "something went wrong", apiErr.Message)
			assert.Equal(t, int32(1), calls.Load())
		})
	}
}

func TestServerErrors_AreRetried(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"id": 9, "name": "Main"})
	}))

	ws, err := c.Workspaces.Get(testContext(t), 9)
	require.NoError(t, err)
	assert.Equal(t, "Main", ws.Name)
	assert.Equal(t, int32(3), calls.Load())
}

func TestServerErrors_SurfaceWhenExhausted(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}), WithServerRetries(1, time.Millisecond))

	_, err := c.Workspaces.Get(testContext(t), 9)
	var se *ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClientErrors_AreNotRetried(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusForbidden, map[string]string{"message": "forbidden"})
	}))

	_, err := c.Me.Get(testContext(t))
	var ae *AuthError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "forbidden", ae.Message)
	assert.Equal(t, int32(1), calls.Load())
}

func TestTransportError_OnNetworkFailure(t *testing.T) {
	c, err := NewClient(TokenAuth{Token: "tok"},
		WithBaseURL("http://127.0.0.1:1"),
		WithRequestInterval(0),
		WithServerRetries(0, 0),
	)
	require.NoError(t, err)

	_, err = c.Me.Get(testContext(t))
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.MethodGet, te.Method)
}

func TestInvalidIDs_RejectedBeforeRequest(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	ctx := testContext(t)

	_, err := c.Projects.Get(ctx, 0, 5)
	require.ErrorIs(t, err, ErrInvalidID)
	_, err = c.TimeEntries.Get(ctx, -3)
	require.ErrorIs(t, err, ErrInvalidID)
	require.ErrorIs(t, c.Tags.Delete(ctx, 1, 0), ErrInvalidID)
	assert.Equal(t, int32(0), calls.Load())
}
