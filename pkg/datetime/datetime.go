package datetime

import (
	"fmt"
	"strings"
	"time"

	"rally/pkg/tz"
)

// Layout is the wire format for event dates and deadlines, minute
// precision, interpreted in Asia/Shanghai.
const Layout = "2006-01-02 15:04"

// Parse parses "YYYY-MM-DD HH:mm" in Asia/Shanghai. An empty string
// parses to the zero time (field not set).
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(Layout, s, tz.Shanghai)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time (expected YYYY-MM-DD HH:mm): %q", s)
	}
	return t, nil
}

// Format renders t in the wire format, or "" for the zero time.
func Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(tz.Shanghai).Format(Layout)
}
