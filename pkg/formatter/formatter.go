package formatter

import (
	"strconv"
	"time"
)

// FormatNumber converts an integer to a string with commas as thousands separators.
// Example: 1234567 -> "1,234,567"
func FormatNumber(n int) string {
	s := strconv.Itoa(n)
	if n < 0 {
		s = s[1:]
	}

	le := len(s)
	if le <= 3 {
		if n < 0 {
			return "-" + s
		}
		return s
	}

	sepCount := (le - 1) / 3

	res := make([]byte, le+sepCount)

	j := len(res) - 1
	for i := le - 1; i >= 0; i-- {
		res[j] = s[i]
		j--
		if (le-i)%3 == 0 && i > 0 {
			res[j] = ','
			j--
		}
	}

	if n < 0 {
		return "-" + string(res)
	}
	return string(res)
}

// RelativeAge renders a coarse human-readable age for a timestamp. The unit
// count is floored, never rounded: 119 minutes is "1 hours ago". Timestamps
// in the future clamp to zero.
func RelativeAge(now, at time.Time) string {
	diff := now.Sub(at)
	if diff < 0 {
		diff = 0
	}

	switch {
	case diff < time.Hour:
		return strconv.Itoa(int(diff/time.Minute)) + " minutes ago"
	case diff < 24*time.Hour:
		return strconv.Itoa(int(diff/time.Hour)) + " hours ago"
	default:
		return strconv.Itoa(int(diff/(24*time.Hour))) + " days ago"
	}
}
