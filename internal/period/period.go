// Package period resolves opaque month identifiers into calendar dates and
// display labels, and decides whether a resolved date falls inside a
// requested window. All calendar-date resolution lives here so no other
// package grows its own ad hoc date parsing.
package period

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ID is an opaque string key for one calendar month. Several textual formats
// are accepted; see Parse.
type ID string

var monthCodes = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

var monthYearPattern = regexp.MustCompile(`^([A-Za-z]{3})([0-9]{2})$`)

// Fallback layouts tried, in order, when none of the explicit formats match.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"Jan 2006",
	"January 2006",
}

// Parse resolves a period identifier to the first day of its calendar month
// in UTC. Recognized formats, in priority order:
//
//  1. three-letter month code plus two-digit year ("oct19" -> Oct 2019;
//     two-digit years always resolve as 2000+yy), case-insensitive
//  2. "YYYY-MM"
//  3. "YYYY-MM-DD" (the month containing that day)
//  4. a small set of generic date layouts, accepted only if they parse
//
// Unrecognized identifiers return ok=false; Parse never panics.
func Parse(id ID) (time.Time, bool) {
	s := strings.TrimSpace(string(id))
	if s == "" {
		return time.Time{}, false
	}

	if m := monthYearPattern.FindStringSubmatch(s); m != nil {
		month, ok := monthCodes[strings.ToLower(m[1])]
		if ok {
			yy, err := strconv.Atoi(m[2])
			if err == nil {
				return monthStart(2000+yy, month), true
			}
		}
		// Three letters that are not a month code fall through to the
		// generic layouts below.
	}

	if t, err := time.Parse("2006-01", s); err == nil {
		return monthStart(t.Year(), t.Month()), true
	}

	if t, err := time.Parse("2006-01-02", s); err == nil {
		return monthStart(t.Year(), t.Month()), true
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return monthStart(t.Year(), t.Month()), true
		}
	}

	return time.Time{}, false
}

// Format renders a period identifier as a "Mon YYYY" display label using the
// same detection as Parse. Unparsable identifiers are echoed verbatim so a
// bad upstream key still renders something on an axis.
func Format(id ID) string {
	date, ok := Parse(id)
	if !ok {
		return string(id)
	}
	return date.Format("Jan 2006")
}

// MonthEnd returns the implicit exclusive end of the month containing d: the
// first day of the following month.
func MonthEnd(d time.Time) time.Time {
	return monthStart(d.Year(), d.Month()).AddDate(0, 1, 0)
}

func monthStart(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}
