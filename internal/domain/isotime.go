package domain

import (
	"fmt"
	"strings"
	"time"
)

type isoLayout struct {
	layout string
	aware  bool
}

// Accepted ISO-8601 shapes, offset-aware first. Times may stop at the hour,
// minute or second; offsets may be Z, +HH, +HHMM or +HH:MM. Fractional seconds
// are accepted by time.Parse even when a layout omits them. Basic (separator-free)
// dates and offsets with seconds are not accepted.
var isoLayouts = []isoLayout{
	{"2006-01-02T15:04:05Z07:00", true},
	{"2006-01-02T15:04:05-0700", true},
	{"2006-01-02T15:04:05Z07", true},
	{"2006-01-02T15:04Z07:00", true},
	{"2006-01-02T15:04-0700", true},
	{"2006-01-02T15:04Z07", true},
	{"2006-01-02T15Z07:00", true},
	{"2006-01-02T15-0700", true},
	{"2006-01-02T15Z07", true},
	{"2006-01-02T15:04:05", false},
	{"2006-01-02T15:04", false},
	{"2006-01-02T15", false},
	{"2006-01-02", false},
}

// ParseISO parses an ISO-8601 timestamp and reports whether it carried a UTC offset.
// A space is accepted in place of the 'T' separator.
func ParseISO(s string) (time.Time, bool, error) {
	if len(s) > 10 && s[10] == ' ' {
		s = s[:10] + "T" + s[11:]
	}

	for _, l := range isoLayouts {
		t, err := time.Parse(l.layout, s)
		if err == nil {
			return t, l.aware, nil
		}
	}

	return time.Time{}, false, fmt.Errorf("parse iso timestamp %q: unsupported format", s)
}

// FormatISO renders t as YYYY-MM-DDTHH:MM:SS[.ffffff][+HH:MM]. Naive inputs stay naive.
func FormatISO(t time.Time, aware bool) string {
	var b strings.Builder
	b.WriteString(t.Format("2006-01-02T15:04:05"))
	if us := t.Nanosecond() / 1000; us != 0 {
		fmt.Fprintf(&b, ".%06d", us)
	}
	if aware {
		b.WriteString(t.Format("-07:00"))
	}
	return b.String()
}

// ISOInstant parses s as an absolute instant. Timestamps without an offset are
// read as local wall-clock time.
func ISOInstant(s string) (time.Time, error) {
	t, aware, err := ParseISO(s)
	if err != nil {
		return time.Time{}, err
	}
	if !aware {
		t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.Local)
	}
	return t, nil
}
