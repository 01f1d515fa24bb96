package toggl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// send performs one logical API call: throttle, request, error translation,
// a single wait-and-retry on 429 and delayed retries on 5xx. It returns the
// raw response body, which is empty for 204 and similar responses.
func (c *Client) send(ctx context.Context, method, target string, query url.Values, body any) ([]byte, error) {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		payload = b
	}
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var (
		out         []byte
		rateRetried bool
	)
	op := func() error {
		data, err := c.attempt(ctx, method, target, payload)
		var rl *RateLimitError
		if errors.As(err, &rl) && c.retryRateLimit && !rateRetried {
			rateRetried = true
			c.log.Warn("rate limited, retrying once",
				slog.String("method", method),
				slog.String("url", target),
				slog.Duration("retry_after", rl.RetryAfter),
			)
			data, err = c.attempt(ctx, method, target, payload)
		}
		if err == nil {
			out = data
			return nil
		}
		var se *ServerError
		if errors.As(err, &se) {
			c.log.Warn("server error", slog.String("method", method), slog.String("url", target), slog.Int("status", se.StatusCode))
			return err
		}
		return backoff.Permanent(err)
	}
	if err := backoff.Retry(op, c.serverBackOff(ctx)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) serverBackOff(ctx context.Context) backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = c.retryInterval
	eb.MaxInterval = 30 * time.Second
	eb.MaxElapsedTime = 0
	eb.Reset()
	return backoff.WithContext(backoff.WithMaxRetries(eb, uint64(c.serverRetries)), ctx)
}

func (c *Client) attempt(ctx context.Context, method, target string, payload []byte) ([]byte, error) {
	if err := c.gov.wait(ctx); err != nil {
		return nil, err
	}

	var rdr io.Reader
	if payload != nil {
		rdr = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, rdr)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.auth.apply(req)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Method: method, URL: target, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: target, Err: fmt.Errorf("read response: %w", err)}
	}
	c.gov.observe(resp.Header)
	c.log.Debug("toggl request",
		slog.String("method", method),
		slog.String("url", target),
		slog.Int("status", resp.StatusCode),
		slog.Duration("dur", time.Since(start)),
	)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}
	apiErr := errorFromResponse(resp, body)
	var rl *RateLimitError
	if errors.As(apiErr, &rl) {
		c.gov.block(rl.RetryAfter)
	}
	return nil, apiErr
}

// getJSON, postJSON and friends send a request and decode a single object
// into dest. A nil dest discards the body.
func (c *Client) getJSON(ctx context.Context, target string, query url.Values, dest any) error {
	return c.call(ctx, http.MethodGet, target, query, nil, dest)
}

func (c *Client) postJSON(ctx context.Context, target string, body, dest any) error {
	return c.call(ctx, http.MethodPost, target, nil, body, dest)
}

func (c *Client) putJSON(ctx context.Context, target string, body, dest any) error {
	return c.call(ctx, http.MethodPut, target, nil, body, dest)
}

func (c *Client) patchJSON(ctx context.Context, target string, body, dest any) error {
	return c.call(ctx, http.MethodPatch, target, nil, body, dest)
}

func (c *Client) deleteJSON(ctx context.Context, target string) error {
	return c.call(ctx, http.MethodDelete, target, nil, nil, nil)
}

func (c *Client) call(ctx context.Context, method, target string, query url.Values, body, dest any) error {
	data, err := c.send(ctx, method, target, query, body)
	if err != nil {
		return err
	}
	return decodeObject(data, dest)
}
