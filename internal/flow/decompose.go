package flow

import "time"

// YearRange is the bounds of one sub-query dispatched to the upstream API.
type YearRange struct {
	Start time.Time
	End   time.Time
}

// Decompose splits a request window into one bounded sub-query per calendar
// year. A window inside a single year keeps its original bounds. A multi-year
// window produces one full-year range (Jan 1 - Dec 31) per touched year,
// deliberately losing day-level precision at the edges; the range filter
// applied after merging restores the requested window.
func Decompose(start, end time.Time) []YearRange {
	if start.Year() == end.Year() {
		return []YearRange{{Start: start, End: end}}
	}

	ranges := make([]YearRange, 0, end.Year()-start.Year()+1)
	for year := start.Year(); year <= end.Year(); year++ {
		ranges = append(ranges, YearRange{
			Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
		})
	}
	return ranges
}
