package app

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// DefaultWindow is the sync window used when no bounds are given.
const DefaultWindow = 24 * time.Hour

// ParseWindow resolves from/to bounds given as RFC3339 or YYYY-MM-DD. A
// date-only end is inclusive and becomes the next day's midnight. Dates are
// read in loc. Empty bounds default to [to-24h, now].
func ParseWindow(from, to string, now time.Time, loc *time.Location) (time.Time, time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	end := now
	if to != "" {
		t, dateOnly, err := parseBound(to, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid to %q: expected RFC3339 or YYYY-MM-DD", to)
		}
		if dateOnly {
			t = t.AddDate(0, 0, 1)
		}
		end = t
	}
	start := end.Add(-DefaultWindow)
	if from != "" {
		t, _, err := parseBound(from, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid from %q: expected RFC3339 or YYYY-MM-DD", from)
		}
		start = t
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("window end %s is not after start %s", end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return start.UTC(), end.UTC(), nil
}

func parseBound(val string, loc *time.Location) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return t, false, nil
	}
	d, err := time.ParseInLocation(dateLayout, val, loc)
	if err != nil {
		return time.Time{}, false, err
	}
	return d, true, nil
}

// NextMidnight returns the first midnight strictly after t in t's location.
func NextMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location())
}
