package flow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDecompose(t *testing.T) {
	t.Run("single year keeps original bounds", func(t *testing.T) {
		got := Decompose(day(2020, time.June, 1), day(2020, time.September, 1))

		assert.Len(t, got, 1)
		assert.Equal(t, day(2020, time.June, 1), got[0].Start)
		assert.Equal(t, day(2020, time.September, 1), got[0].End)
	})

	t.Run("multi-year window produces one full year per touched year", func(t *testing.T) {
		got := Decompose(day(2019, time.June, 1), day(2021, time.March, 1))

		assert.Len(t, got, 3)
		for i, year := range []int{2019, 2020, 2021} {
			assert.Equal(t, day(year, time.January, 1), got[i].Start)
			assert.Equal(t, day(year, time.December, 31), got[i].End)
		}
	})

	t.Run("two adjacent years", func(t *testing.T) {
		got := Decompose(day(2019, time.December, 15), day(2020, time.January, 10))

		assert.Len(t, got, 2)
		assert.Equal(t, day(2019, time.January, 1), got[0].Start)
		assert.Equal(t, day(2019, time.December, 31), got[0].End)
		assert.Equal(t, day(2020, time.January, 1), got[1].Start)
		assert.Equal(t, day(2020, time.December, 31), got[1].End)
	})
}
