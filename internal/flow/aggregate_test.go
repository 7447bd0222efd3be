package flow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"migflow/internal/flow/models"
	"migflow/internal/period"
)

var (
	bangkok   = models.LocationRef{ID: "loc-1", Name: "Bangkok", Type: models.TypeProvince}
	chiangMai = models.LocationRef{ID: "loc-2", Name: "Chiang Mai", Type: models.TypeProvince}
)

func sampleResponse() models.MigrationResponse {
	return models.MigrationResponse{
		Locations: []models.LocationRef{
			{ID: "p-10", Name: "bangkok", Type: models.TypeProvince},
			{ID: "p-50", Name: "CHIANG MAI", Type: models.TypeProvince},
		},
		TimePeriods: []models.TimePeriod{
			{ID: "feb19", StartDate: day(2019, time.February, 1)},
			{ID: "jan19", StartDate: day(2019, time.January, 1)},
		},
		Series: []models.SeriesPoint{
			{LocationID: "p-10", PeriodID: "jan19", MoveIn: 100, MoveOut: 30},
			{LocationID: "p-10", PeriodID: "feb19", MoveIn: 50, MoveOut: 10},
		},
	}
}

func window(start, end time.Time) period.Bounds {
	return period.Bounds{Start: start, End: end}
}

func TestAggregateZeroFill(t *testing.T) {
	resp := sampleResponse()
	w := window(day(2019, time.January, 1), day(2020, time.January, 1))

	got := Aggregate(resp, []models.LocationRef{bangkok, chiangMai}, w, period.ExcludeEnd, nil)

	require.Len(t, got.Entries, 2)
	for _, entry := range got.Entries {
		// Every requested location appears in every entry.
		require.Len(t, entry.Locations, 2)
		assert.Equal(t, "Bangkok", entry.Locations[0].LocationName)
		assert.Equal(t, "Chiang Mai", entry.Locations[1].LocationName)
		// Chiang Mai has no source data: present but zero-valued.
		assert.Zero(t, entry.Locations[1].MoveIn)
		assert.Zero(t, entry.Locations[1].MoveOut)
		assert.Zero(t, entry.Locations[1].NetMigration)
	}
}

func TestAggregateSummaryArithmetic(t *testing.T) {
	resp := sampleResponse()
	w := window(day(2019, time.January, 1), day(2020, time.January, 1))

	got := Aggregate(resp, []models.LocationRef{bangkok, chiangMai}, w, period.ExcludeEnd, nil)

	assert.Equal(t, int64(150), got.Summary.TotalMoveIn)
	assert.Equal(t, int64(40), got.Summary.TotalMoveOut)
	assert.Equal(t, int64(110), got.Summary.Net)
}

func TestAggregateSortsEntriesAscending(t *testing.T) {
	resp := sampleResponse()
	w := window(day(2019, time.January, 1), day(2020, time.January, 1))

	got := Aggregate(resp, []models.LocationRef{bangkok}, w, period.ExcludeEnd, nil)

	require.Len(t, got.Entries, 2)
	assert.Equal(t, "Jan 2019", got.Entries[0].Period)
	assert.Equal(t, "Feb 2019", got.Entries[1].Period)
	assert.True(t, got.Entries[0].Date.Before(got.Entries[1].Date))
}

func TestAggregateNetOverride(t *testing.T) {
	override := int64(-5)
	resp := models.MigrationResponse{
		Locations: []models.LocationRef{{ID: "p-10", Name: "Bangkok"}},
		TimePeriods: []models.TimePeriod{
			{ID: "jan19", StartDate: day(2019, time.January, 1)},
		},
		Series: []models.SeriesPoint{
			{LocationID: "p-10", PeriodID: "jan19", MoveIn: 10, MoveOut: 2, NetMigration: &override},
		},
	}
	w := window(day(2019, time.January, 1), day(2020, time.January, 1))

	got := Aggregate(resp, []models.LocationRef{bangkok}, w, period.ExcludeEnd, nil)

	require.Len(t, got.Entries, 1)
	// Explicit upstream net wins over moveIn-moveOut.
	assert.Equal(t, int64(-5), got.Entries[0].Locations[0].NetMigration)
}

func TestAggregateRangeFilter(t *testing.T) {
	resp := models.MigrationResponse{
		Locations: []models.LocationRef{{ID: "p-10", Name: "Bangkok"}},
		TimePeriods: []models.TimePeriod{
			{ID: "dec18", StartDate: day(2018, time.December, 1)},
			{ID: "jan19", StartDate: day(2019, time.January, 1)},
			{ID: "dec19", StartDate: day(2019, time.December, 1)},
			{ID: "jan20", StartDate: day(2020, time.January, 1)},
		},
	}
	w := window(day(2019, time.January, 1), day(2020, time.January, 1))

	t.Run("exclusive end drops the boundary month", func(t *testing.T) {
		got := Aggregate(resp, []models.LocationRef{bangkok}, w, period.ExcludeEnd, nil)
		require.Len(t, got.Entries, 2)
		assert.Equal(t, "Jan 2019", got.Entries[0].Period)
		assert.Equal(t, "Dec 2019", got.Entries[1].Period)
	})

	t.Run("inclusive end keeps the boundary month", func(t *testing.T) {
		got := Aggregate(resp, []models.LocationRef{bangkok}, w, period.IncludeEnd, nil)
		require.Len(t, got.Entries, 3)
		assert.Equal(t, "Jan 2020", got.Entries[2].Period)
	})
}

func TestAggregateUnparsablePeriodExcluded(t *testing.T) {
	resp := models.MigrationResponse{
		Locations: []models.LocationRef{{ID: "p-10", Name: "Bangkok"}},
		TimePeriods: []models.TimePeriod{
			{ID: "jan19", StartDate: day(2019, time.January, 1)},
			{ID: "bogus"},
		},
	}
	w := window(day(2019, time.January, 1), day(2020, time.January, 1))

	got := Aggregate(resp, []models.LocationRef{bangkok}, w, period.ExcludeEnd, nil)

	require.Len(t, got.Entries, 1)
	assert.Equal(t, "Jan 2019", got.Entries[0].Period)
}

func TestAggregateMalformedResponseDegrades(t *testing.T) {
	w := window(day(2019, time.January, 1), day(2020, time.January, 1))

	got := Aggregate(models.MigrationResponse{}, []models.LocationRef{bangkok}, w, period.ExcludeEnd, nil)

	assert.Empty(t, got.Entries)
	assert.Zero(t, got.Summary)
}

func TestAggregateUnmatchedDiagnostic(t *testing.T) {
	resp := sampleResponse()
	w := window(day(2019, time.January, 1), day(2020, time.January, 1))
	phuket := models.LocationRef{ID: "loc-9", Name: "Phuket", Type: models.TypeProvince}

	got := Aggregate(resp, []models.LocationRef{bangkok, phuket}, w, period.ExcludeEnd, nil)

	assert.Equal(t, []string{"Phuket"}, got.Unmatched)
	// Unmatched locations still zero-fill every entry.
	for _, entry := range got.Entries {
		require.Len(t, entry.Locations, 2)
		assert.Equal(t, "Phuket", entry.Locations[1].LocationName)
		assert.Zero(t, entry.Locations[1].MoveIn)
	}
}

func TestAggregateNoRequestedLocations(t *testing.T) {
	got := Aggregate(sampleResponse(), nil, window(day(2019, time.January, 1), day(2020, time.January, 1)), period.ExcludeEnd, nil)
	assert.Empty(t, got.Entries)
	assert.Zero(t, got.Summary)
}
