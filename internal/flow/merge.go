package flow

import (
	"sort"
	"time"

	"migflow/internal/flow/models"
	"migflow/internal/period"
)

// Merge combines sub-query responses into one. Periods are unioned by ID
// (last write wins on metadata) and sorted ascending by resolved date; flow
// edges and series points are unioned by intrinsic identity with counts
// summed on collision, which defends against overlapping sub-query windows.
// The location list is copied from the first response: all sub-queries share
// one location set by construction.
//
// Because both keyed unions use intrinsic identity rather than positional
// order, Merge is commutative and associative over its input list.
func Merge(responses []models.MigrationResponse) models.MigrationResponse {
	if len(responses) == 0 {
		return models.MigrationResponse{}
	}
	if len(responses) == 1 {
		return responses[0]
	}

	merged := models.MigrationResponse{
		Locations: responses[0].Locations,
	}

	periodsByID := make(map[period.ID]models.TimePeriod)
	edges := make(map[models.EdgeKey]models.FlowEdge)
	type seriesKey struct {
		locationID string
		periodID   period.ID
	}
	points := make(map[seriesKey]models.SeriesPoint)

	for _, resp := range responses {
		for _, tp := range resp.TimePeriods {
			periodsByID[tp.ID] = tp
		}
		for _, edge := range resp.Flows {
			key := edge.Key()
			if existing, ok := edges[key]; ok {
				existing.FlowCount += edge.FlowCount
				edges[key] = existing
			} else {
				edges[key] = edge
			}
		}
		for _, pt := range resp.Series {
			key := seriesKey{locationID: pt.LocationID, periodID: pt.PeriodID}
			if existing, ok := points[key]; ok {
				existing.MoveIn += pt.MoveIn
				existing.MoveOut += pt.MoveOut
				if pt.NetMigration != nil {
					existing.NetMigration = pt.NetMigration
				}
				points[key] = existing
			} else {
				points[key] = pt
			}
		}
	}

	merged.TimePeriods = make([]models.TimePeriod, 0, len(periodsByID))
	for _, tp := range periodsByID {
		merged.TimePeriods = append(merged.TimePeriods, tp)
	}
	sortPeriods(merged.TimePeriods)

	// Deterministic output order keeps Merge order-independent over its
	// inputs, not just equal as a multiset.
	merged.Flows = make([]models.FlowEdge, 0, len(edges))
	for _, edge := range edges {
		merged.Flows = append(merged.Flows, edge)
	}
	sort.Slice(merged.Flows, func(i, j int) bool {
		a, b := merged.Flows[i], merged.Flows[j]
		if a.PeriodID != b.PeriodID {
			return a.PeriodID < b.PeriodID
		}
		if a.OriginID != b.OriginID {
			return a.OriginID < b.OriginID
		}
		return a.DestinationID < b.DestinationID
	})

	merged.Series = make([]models.SeriesPoint, 0, len(points))
	for _, pt := range points {
		merged.Series = append(merged.Series, pt)
	}
	sort.Slice(merged.Series, func(i, j int) bool {
		a, b := merged.Series[i], merged.Series[j]
		if a.PeriodID != b.PeriodID {
			return a.PeriodID < b.PeriodID
		}
		return a.LocationID < b.LocationID
	})

	return merged
}

// sortPeriods orders periods ascending by resolved calendar date. Unparsable
// IDs sort last, keeping their relative order stable.
func sortPeriods(periods []models.TimePeriod) {
	sort.SliceStable(periods, func(i, j int) bool {
		di, oki := resolvedDate(periods[i])
		dj, okj := resolvedDate(periods[j])
		if oki != okj {
			return oki
		}
		if !oki {
			return false
		}
		return di.Before(dj)
	})
}

// resolvedDate prefers the period's own start date and falls back to parsing
// its identifier.
func resolvedDate(tp models.TimePeriod) (time.Time, bool) {
	if !tp.StartDate.IsZero() {
		return tp.StartDate, true
	}
	return period.Parse(tp.ID)
}
