// Package ports declares the upstream collaborator interfaces the flow and
// catalog services depend on. Adapters live in internal/upstream; tests
// substitute fakes or generated mocks.
package ports

import (
	"context"
	"time"

	"migflow/internal/flow/models"
)

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

// MigrationAPI is the upstream migration-data collaborator. Implementations
// must be safe for concurrent use and idempotent for identical arguments;
// retry/backoff is not this layer's concern.
type MigrationAPI interface {
	GetMigrationData(ctx context.Context, req MigrationDataRequest) (*models.MigrationResponse, error)
}

// MigrationDataRequest carries the arguments of one upstream data call.
type MigrationDataRequest struct {
	Scale        string
	LocationIDs  []string
	StartDate    time.Time
	EndDate      time.Time
	Aggregation  string
	IncludeFlows bool
}

// Metadata is the upstream location catalog grouped by administrative level.
type Metadata struct {
	Provinces    []models.LocationRef `json:"provinces"`
	Districts    []models.LocationRef `json:"districts"`
	SubDistricts []models.LocationRef `json:"subdistricts"`
}

// All returns every catalog entry across levels, provinces first.
func (m Metadata) All() []models.LocationRef {
	all := make([]models.LocationRef, 0, len(m.Provinces)+len(m.Districts)+len(m.SubDistricts))
	all = append(all, m.Provinces...)
	all = append(all, m.Districts...)
	all = append(all, m.SubDistricts...)
	return all
}

// CatalogAPI is the location-catalog collaborator.
type CatalogAPI interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	SearchLocations(ctx context.Context, query string, types []models.LocationType) ([]models.LocationRef, error)
}
