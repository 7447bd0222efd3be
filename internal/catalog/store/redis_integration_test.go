//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"migflow/internal/catalog/store"
	"migflow/internal/flow/models"
	"migflow/internal/flow/ports"
	"migflow/pkg/platform/sentinel"
	"migflow/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *store.Redis
}

func TestRedisStoreSuite(t *testing.T) {
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())

	var err error
	s.store, err = store.NewRedis(s.redis.Client, 10*time.Minute)
	s.Require().NoError(err)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) snapshot() *store.Snapshot {
	return &store.Snapshot{
		Metadata: ports.Metadata{
			Provinces: []models.LocationRef{
				{ID: "p-10", Name: "Bangkok", Type: models.TypeProvince},
				{ID: "p-50", Name: "Chiang Mai", Type: models.TypeProvince},
			},
			Districts: []models.LocationRef{
				{ID: "d-1001", Name: "Phra Nakhon", Type: models.TypeDistrict},
			},
		},
		FetchedAt: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *RedisStoreSuite) TestLoadEmpty() {
	_, err := s.store.Load(context.Background())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisStoreSuite) TestSaveLoadRoundTrip() {
	ctx := context.Background()
	s.Require().NoError(s.store.Save(ctx, s.snapshot()))

	got, err := s.store.Load(ctx)
	s.Require().NoError(err)
	s.Equal(s.snapshot().Metadata, got.Metadata)
	s.True(s.snapshot().FetchedAt.Equal(got.FetchedAt))
}

func (s *RedisStoreSuite) TestClear() {
	ctx := context.Background()
	s.Require().NoError(s.store.Save(ctx, s.snapshot()))
	s.Require().NoError(s.store.Clear(ctx))

	_, err := s.store.Load(ctx)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisStoreSuite) TestCorruptSnapshotTreatedAsAbsent() {
	ctx := context.Background()
	s.Require().NoError(s.redis.Client.Set(ctx, "migflow:catalog", "{not json", 0).Err())

	_, err := s.store.Load(ctx)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
