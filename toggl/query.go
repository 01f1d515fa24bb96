package toggl

import (
	"net/url"
	"strconv"
	"strings"
)

// Query helpers skip zero values so unset filters never reach the server.

func setString(q url.Values, key, v string) {
	if v != "" {
		q.Set(key, v)
	}
}

func setTrue(q url.Values, key string, v bool) {
	if v {
		q.Set(key, "true")
	}
}

func setBool(q url.Values, key string, v *bool) {
	if v != nil {
		q.Set(key, strconv.FormatBool(*v))
	}
}

func setInt64(q url.Values, key string, v int64) {
	if v != 0 {
		q.Set(key, strconv.FormatInt(v, 10))
	}
}

func setIDs(q url.Values, key string, ids []int64) {
	if len(ids) == 0 {
		return
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	q.Set(key, strings.Join(parts, ","))
}

func setStrings(q url.Values, key string, vs []string) {
	if len(vs) > 0 {
		q.Set(key, strings.Join(vs, ","))
	}
}

// Bool returns a pointer to v, for optional filters and fields.
func Bool(v bool) *bool { return &v }

// Int64 returns a pointer to v.
func Int64(v int64) *int64 { return &v }
