// Package dateutils provides the date parsing and normalisation used for ledger rows
// and user input.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Common date layouts
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutEuropean = "02.01.2006"
	DateLayoutUS       = "01/02/2006"
	DateLayoutFull     = "2006-01-02 15:04:05"
)

// CommonFormats is the ordered list of layouts tried by ParseDate.
// ISO comes first because it is the ledger's own serialisation.
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutFull,
	time.RFC3339,
	DateLayoutISO + "T15:04:05",
	DateLayoutEuropean,
	"02/01/2006",
	"2006/01/02",
	"2-Jan-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// ParseDate parses dateStr with the first matching layout in CommonFormats and
// returns the calendar date at midnight UTC. The time-of-day component is dropped.
func ParseDate(dateStr string) (time.Time, error) {
	clean := CleanDateString(dateStr)
	if clean == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, layout := range CommonFormats {
		if t, err := time.Parse(layout, clean); err == nil {
			return TruncateToDay(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// TruncateToDay strips the clock and location, keeping the calendar date as seen
// in t's own location.
func TruncateToDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date.
func Today() time.Time {
	return TruncateToDay(time.Now())
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return date.Format(DateLayoutISO)
}

// CleanDateString trims and collapses whitespace
func CleanDateString(dateStr string) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// CompareDates compares the calendar dates of two times:
//
//	-1 if date1 is before date2
//	 0 if they fall on the same day
//	 1 if date1 is after date2
func CompareDates(date1, date2 time.Time) int {
	date1 = TruncateToDay(date1)
	date2 = TruncateToDay(date2)

	switch {
	case date1.Before(date2):
		return -1
	case date1.After(date2):
		return 1
	default:
		return 0
	}
}
