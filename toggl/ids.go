package toggl

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	maxPatchIDs   = 100
	maxProjectIDs = 200
)

func checkID(name string, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: %s %d", ErrInvalidID, name, id)
	}
	return nil
}

// joinIDs validates a bulk id list and renders it comma separated.
func joinIDs(name string, ids []int64, limit int) (string, error) {
	if len(ids) == 0 {
		return "", ErrNoIDs
	}
	if limit > 0 && len(ids) > limit {
		return "", fmt.Errorf("%w: %d %s given, at most %d allowed", ErrTooManyIDs, len(ids), name, limit)
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		if err := checkID(name, id); err != nil {
			return "", err
		}
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ","), nil
}
