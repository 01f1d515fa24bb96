package toggl

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

const (
	// DefaultRequestInterval is the minimum spacing between two requests from
	// one Client.
	DefaultRequestInterval = time.Second
	// DefaultRetryAfter is used when a 429 response has no usable Retry-After.
	DefaultRetryAfter = 5 * time.Second

	lowQuotaThreshold = 10

	headerQuotaRemaining = "X-Toggl-Quota-Remaining"
	headerQuotaResetsIn  = "X-Toggl-Quota-Resets-In"
	headerRetryAfter     = "Retry-After"
)

// Quota is the last quota state reported by the server.
type Quota struct {
	Remaining  *int
	ResetsIn   time.Duration
	ObservedAt time.Time
}

// governor spaces requests by a fixed interval and holds them back after a
// 429. It is local to one Client; separate clients do not coordinate.
type governor struct {
	mu           sync.Mutex
	interval     time.Duration
	last         time.Time
	blockedUntil time.Time
	quota        Quota

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
	log   *slog.Logger
}

func newGovernor(interval time.Duration, log *slog.Logger) *governor {
	return &governor{
		interval: interval,
		now:      time.Now,
		sleep:    sleepContext,
		log:      log,
	}
}

// wait blocks until the next request may be sent.
func (g *governor) wait(ctx context.Context) error {
	g.mu.Lock()
	now := g.now()
	until := g.blockedUntil
	if !g.last.IsZero() {
		if next := g.last.Add(g.interval); next.After(until) {
			until = next
		}
	}
	d := until.Sub(now)
	if d > 0 {
		g.last = until
	} else {
		g.last = now
	}
	g.mu.Unlock()

	if d <= 0 {
		return nil
	}
	g.log.Debug("throttling request", slog.Duration("sleep", d))
	return g.sleep(ctx, d)
}

// observe records quota headers from any response.
func (g *governor) observe(h http.Header) {
	remaining, hasRemaining := intHeader(h, headerQuotaRemaining)
	resets, hasResets := secondsHeader(h, headerQuotaResetsIn)
	if !hasRemaining && !hasResets {
		return
	}

	g.mu.Lock()
	if hasRemaining {
		g.quota.Remaining = &remaining
	}
	if hasResets {
		g.quota.ResetsIn = resets
	}
	g.quota.ObservedAt = g.now()
	g.mu.Unlock()

	if hasRemaining && remaining < lowQuotaThreshold {
		g.log.Warn("low api quota", slog.Int("remaining", remaining), slog.Duration("resets_in", resets))
	}
}

// block holds back every request until d has elapsed.
func (g *governor) block(d time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if until := g.now().Add(d); until.After(g.blockedUntil) {
		g.blockedUntil = until
	}
}

func (g *governor) snapshot() Quota {
	g.mu.Lock()
	defer g.mu.Unlock()
	q := g.quota
	if q.Remaining != nil {
		n := *q.Remaining
		q.Remaining = &n
	}
	return q
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
