package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Adapters and cache stores return
// these (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist (catalog entry, cached value)
// - ErrExpired: cached catalog copy is older than its freshness window
// - ErrSuperseded: a newer request for the same view was dispatched meanwhile
// - ErrUnavailable: upstream collaborator temporarily unreachable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors.
var (
	ErrNotFound    = errors.New("not found")
	ErrExpired     = errors.New("expired")
	ErrSuperseded  = errors.New("superseded")
	ErrUnavailable = errors.New("unavailable")
)
