// Package models defines the migration-flow domain entities exchanged with
// the upstream data API and handed to chart consumers. Everything here is
// created per query, merged in memory, and discarded after hand-off; nothing
// is persisted.
package models

import (
	"time"

	"migflow/internal/period"
)

// LocationType is the administrative level of a location.
type LocationType string

const (
	TypeProvince    LocationType = "province"
	TypeDistrict    LocationType = "district"
	TypeSubDistrict LocationType = "subDistrict"
)

// LocationRef identifies a location in either the caller's or the upstream
// API's namespace. The two namespaces use different IDs; name is the join key.
type LocationRef struct {
	ID   string       `json:"id"`
	Name string       `json:"name"`
	Type LocationType `json:"type"`
}

// TimePeriod is one calendar month of a response. Its implicit end is the
// first day of the following month. ID is unique within a response.
type TimePeriod struct {
	ID        period.ID `json:"id"`
	StartDate time.Time `json:"startDate"`
}

// SeriesPoint holds one location's migration counts for one period.
// NetMigration is nil unless the upstream supplied an explicit override;
// consumers compute MoveIn-MoveOut when it is absent.
type SeriesPoint struct {
	LocationID   string    `json:"locationId"`
	PeriodID     period.ID `json:"periodId"`
	MoveIn       int64     `json:"moveIn"`
	MoveOut      int64     `json:"moveOut"`
	NetMigration *int64    `json:"netMigration,omitempty"`
}

// Net returns the explicit net migration when supplied, MoveIn-MoveOut
// otherwise.
func (p SeriesPoint) Net() int64 {
	if p.NetMigration != nil {
		return *p.NetMigration
	}
	return p.MoveIn - p.MoveOut
}

// FlowEdge is a directed, dated count of migrants moving from one location to
// another. Identity is (OriginID, DestinationID, PeriodID); duplicate edges
// in a merged response are summed, never overwritten.
type FlowEdge struct {
	OriginID      string    `json:"originId"`
	DestinationID string    `json:"destinationId"`
	PeriodID      period.ID `json:"periodId"`
	FlowCount     int64     `json:"flowCount"`
}

// EdgeKey identifies a flow edge within a response.
type EdgeKey struct {
	OriginID      string
	DestinationID string
	PeriodID      period.ID
}

// Key returns the edge's intrinsic identity.
func (e FlowEdge) Key() EdgeKey {
	return EdgeKey{OriginID: e.OriginID, DestinationID: e.DestinationID, PeriodID: e.PeriodID}
}

// MigrationResponse is the unit exchanged with, and merged from, the upstream
// API: location metadata, the periods covered, per-location series points,
// and origin-destination flow edges.
type MigrationResponse struct {
	Locations   []LocationRef `json:"locations"`
	TimePeriods []TimePeriod  `json:"timePeriods"`
	Series      []SeriesPoint `json:"series"`
	Flows       []FlowEdge    `json:"flows"`
}

// ChartLocation is one requested location's values within a ChartEntry.
// Locations absent from the source are present with zero values so every
// entry carries the same per-location shape.
type ChartLocation struct {
	LocationID   string `json:"locationId"`
	LocationName string `json:"locationName"`
	MoveIn       int64  `json:"moveIn"`
	MoveOut      int64  `json:"moveOut"`
	NetMigration int64  `json:"netMigration"`
}

// ChartEntry is one period's row of the aggregated dataset, consumed
// identically by diverging bars, line charts, and flow diagrams.
type ChartEntry struct {
	Period    string          `json:"period"` // display label, e.g. "Oct 2019"
	Date      time.Time       `json:"date"`
	Locations []ChartLocation `json:"locations"`
}

// Summary carries totals accumulated across all entries and locations.
type Summary struct {
	TotalMoveIn  int64 `json:"totalMoveIn"`
	TotalMoveOut int64 `json:"totalMoveOut"`
	Net          int64 `json:"net"`
}

// Result is the aggregator's output. Unmatched lists requested location names
// that had no upstream counterpart; they are still zero-filled in Entries,
// the diagnostic exists so callers can distinguish "no data" from "no match".
type Result struct {
	Entries   []ChartEntry `json:"entries"`
	Summary   Summary      `json:"summary"`
	Unmatched []string     `json:"unmatched,omitempty"`
}
