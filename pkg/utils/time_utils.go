package utils

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format of every date the forms accept and render.
const DateLayout = "2006-01-02"

// Korea time location (KST, +09:00)
var kstLoc = func() *time.Location {
	if loc, err := time.LoadLocation("Asia/Seoul"); err == nil {
		return loc
	}
	return time.FixedZone("KST", 9*3600)
}()

// DefaultLocation is used when no timezone is configured.
func DefaultLocation() *time.Location { return kstLoc }

// ParseDate parses a form date (YYYY-MM-DD) into a UTC midnight value.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// dump formats seen in open-data files, tried in order
var seedDateLayouts = []string{
	DateLayout,
	"20060102",
	"2006.01.02",
	"2006/01/02",
	"2006. 1. 2.",
	"2006. 1. 2",
}

// ParseLooseDate accepts the date spellings found in public data dumps.
// Timestamps keep only their calendar date.
func ParseLooseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range seedDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DateOf(t), nil
	}
	if len(s) > len(DateLayout) {
		if t, err := time.Parse(DateLayout, s[:len(DateLayout)]); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// DateOf drops the clock part of t, keeping its calendar date in t's location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date in loc as a UTC midnight value.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = kstLoc
	}
	return DateOf(now.In(loc))
}

// DaysUntil counts whole days from today to start. Negative once start has passed.
// Both are stored dates (UTC midnight), whatever location the driver scanned them into.
func DaysUntil(start, today time.Time) int {
	return int((StoredDate(start).Unix() - StoredDate(today).Unix()) / 86400)
}

// StoredDate is the calendar date of a value saved as UTC midnight. Drivers
// such as pgx hand timestamps back in time.Local.
func StoredDate(t time.Time) time.Time {
	return DateOf(t.UTC())
}

// DDayLabel renders a day count the way Korean event listings do.
func DDayLabel(days int) string {
	switch {
	case days == 0:
		return "D-Day"
	case days > 0:
		return fmt.Sprintf("D-%d", days)
	default:
		return fmt.Sprintf("D+%d", -days)
	}
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateLayout)
}
