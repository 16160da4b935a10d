package helpers

import (
	"strings"
	"time"
)

// DisplayDateLayout renders as e.g. "Mar 7, 2031 · 8:30 PM".
const DisplayDateLayout = "Jan 2, 2006 · 3:04 PM"

// zoned layouts carry their own offset; the rest are read in the caller's location.
var (
	zonedLayouts = []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04Z07:00",
	}
	localLayouts = []string{
		"2006-01-02T15:04",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05.000",
		"2006-01-02 15:04",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
)

func StringTrim(s string) string {
	return strings.TrimSpace(s)
}

// ParseDateTime accepts RFC3339 timestamps, datetime-local form values and
// bare dates. Inputs without an offset are interpreted in loc.
func ParseDateTime(value string, loc *time.Location) (time.Time, bool) {
	value = StringTrim(value)
	if value == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func FormatDisplayDate(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(DisplayDateLayout)
}
