// Package store holds cached copies of the upstream location catalog.
// Stores only persist bytes and a fetch timestamp; freshness policy lives in
// the catalog service, which checks FetchedAt against its injectable clock.
package store

import (
	"context"
	"time"

	"migflow/internal/flow/ports"
)

// Snapshot is one fetched copy of the upstream catalog.
type Snapshot struct {
	Metadata  ports.Metadata `json:"metadata"`
	FetchedAt time.Time      `json:"fetchedAt"`
}

// Store is the contract catalog cache stores must satisfy. Load returns
// sentinel.ErrNotFound (optionally wrapped) when no snapshot is held.
type Store interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
	Clear(ctx context.Context) error
}
