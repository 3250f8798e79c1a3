package domain

import (
	"time"
)

// The document store hands back loosely-typed field maps. Everything below is
// the parsing boundary: absent or malformed fields degrade to zero values
// instead of failing, so one bad record never takes down a whole feed.

func stringField(fields map[string]any, key string) string {
	if v, ok := fields[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func intField(fields map[string]any, key string) int {
	switch v := fields[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// timeField coerces the common timestamp encodings seen in the store:
// native time values, RFC 3339 strings, and unix milliseconds. Anything else
// yields the zero time, which sorts last under newest-first ordering.
func timeField(fields map[string]any, key string) time.Time {
	switch v := fields[key].(type) {
	case time.Time:
		return v
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t
		}
	case int64:
		return time.UnixMilli(v)
	case float64:
		return time.UnixMilli(int64(v))
	}
	return time.Time{}
}
