package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"migflow/internal/flow/models"
	"migflow/internal/flow/ports"
	"migflow/pkg/platform/sentinel"
)

func sampleSnapshot() *Snapshot {
	return &Snapshot{
		Metadata: ports.Metadata{
			Provinces: []models.LocationRef{
				{ID: "p-10", Name: "Bangkok", Type: models.TypeProvince},
			},
		},
		FetchedAt: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store returns not found", func(t *testing.T) {
		m := NewMemory()
		_, err := m.Load(ctx)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("save then load round-trips", func(t *testing.T) {
		m := NewMemory()
		require.NoError(t, m.Save(ctx, sampleSnapshot()))

		got, err := m.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, sampleSnapshot(), got)
	})

	t.Run("load returns a copy", func(t *testing.T) {
		m := NewMemory()
		require.NoError(t, m.Save(ctx, sampleSnapshot()))

		first, err := m.Load(ctx)
		require.NoError(t, err)
		first.FetchedAt = time.Time{}

		second, err := m.Load(ctx)
		require.NoError(t, err)
		assert.False(t, second.FetchedAt.IsZero())
	})

	t.Run("clear empties the store", func(t *testing.T) {
		m := NewMemory()
		require.NoError(t, m.Save(ctx, sampleSnapshot()))
		require.NoError(t, m.Clear(ctx))

		_, err := m.Load(ctx)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}
