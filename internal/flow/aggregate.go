package flow

import (
	"sort"
	"time"

	"migflow/internal/flow/models"
	"migflow/internal/period"
)

// Aggregate turns a (possibly merged) response into ordered, zero-filled
// chart entries plus summary totals.
//
// Every requested location appears in every entry: locations matched to the
// response carry their series values (net recomputed as moveIn-moveOut when
// the upstream supplied none), the rest are zero-filled so all chart shapes
// stay stable across periods. A malformed or empty response degrades to an
// empty entry list and a zeroed summary instead of failing; callers signal
// "error" separately from "no data".
func Aggregate(resp models.MigrationResponse, requested []models.LocationRef, window period.Bounds, mode period.BoundaryMode, matcher Matcher) models.Result {
	if matcher == nil {
		matcher = NameMatcher{}
	}

	result := models.Result{Entries: []models.ChartEntry{}}
	if len(requested) == 0 {
		return result
	}

	// Join each requested location to its upstream record by name; record
	// misses as diagnostics but keep them in every entry zero-filled.
	upstreamIDs := make([]string, len(requested))
	for i, ref := range requested {
		matched, ok := matcher.Match(ref, resp.Locations)
		if !ok {
			result.Unmatched = append(result.Unmatched, ref.Name)
			continue
		}
		upstreamIDs[i] = matched.ID
	}

	type seriesKey struct {
		locationID string
		periodID   period.ID
	}
	series := make(map[seriesKey]models.SeriesPoint, len(resp.Series))
	for _, pt := range resp.Series {
		series[seriesKey{locationID: pt.LocationID, periodID: pt.PeriodID}] = pt
	}

	type datedEntry struct {
		date  time.Time
		entry models.ChartEntry
	}
	entries := make([]datedEntry, 0, len(resp.TimePeriods))

	for _, tp := range resp.TimePeriods {
		date, ok := resolvedDate(tp)
		if !ok {
			// Unparsable period IDs are excluded from range filtering
			// rather than surfaced as errors.
			continue
		}
		if !period.InRange(date, window, mode) {
			continue
		}

		entry := models.ChartEntry{
			Period:    period.Format(tp.ID),
			Date:      date,
			Locations: make([]models.ChartLocation, 0, len(requested)),
		}
		for i, ref := range requested {
			loc := models.ChartLocation{
				LocationID:   ref.ID,
				LocationName: ref.Name,
			}
			if upstreamIDs[i] != "" {
				if pt, ok := series[seriesKey{locationID: upstreamIDs[i], periodID: tp.ID}]; ok {
					loc.MoveIn = pt.MoveIn
					loc.MoveOut = pt.MoveOut
					loc.NetMigration = pt.Net()
				}
			}
			entry.Locations = append(entry.Locations, loc)
		}
		entries = append(entries, datedEntry{date: date, entry: entry})
	}

	// Stable sort ascending by resolved date; ties are impossible given
	// unique period IDs within a response.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].date.Before(entries[j].date)
	})

	result.Entries = make([]models.ChartEntry, 0, len(entries))
	for _, de := range entries {
		result.Entries = append(result.Entries, de.entry)
		for _, loc := range de.entry.Locations {
			result.Summary.TotalMoveIn += loc.MoveIn
			result.Summary.TotalMoveOut += loc.MoveOut
		}
	}
	result.Summary.Net = result.Summary.TotalMoveIn - result.Summary.TotalMoveOut

	return result
}
