// Package catalog provides the location-catalog cache service: a time-boxed
// copy of the upstream metadata shared by concurrent callers, with request
// coalescing on refresh and name-based resolution of caller LocationRefs to
// upstream identifiers.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"migflow/internal/catalog/store"
	"migflow/internal/flow"
	"migflow/internal/flow/models"
	"migflow/internal/flow/ports"
	"migflow/internal/platform/metrics"
	"migflow/pkg/platform/sentinel"
)

// DefaultTTL is the catalog freshness window. Administrative boundaries
// change rarely; five minutes keeps interactive sessions cheap without
// holding stale data for long.
const DefaultTTL = 5 * time.Minute

const refreshKey = "catalog"

// Service caches the upstream location catalog. Within the freshness window
// concurrent callers reuse one fetched copy; on expiry exactly one refetch
// runs and every concurrent caller shares its result.
type Service struct {
	api     ports.CatalogAPI
	store   store.Store
	ttl     time.Duration
	clock   func() time.Time
	matcher flow.Matcher
	logger  *slog.Logger
	metrics *metrics.Metrics

	group singleflight.Group
}

type Option func(*Service)

func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.ttl = ttl
	}
}

// WithClock injects the time source, letting tests drive expiry.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

func WithMatcher(m flow.Matcher) Option {
	return func(s *Service) {
		s.matcher = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(api ports.CatalogAPI, st store.Store, opts ...Option) (*Service, error) {
	if api == nil {
		return nil, fmt.Errorf("catalog API is required")
	}
	if st == nil {
		return nil, fmt.Errorf("catalog store is required")
	}

	svc := &Service{
		api:     api,
		store:   st,
		ttl:     DefaultTTL,
		clock:   time.Now,
		matcher: flow.NameMatcher{},
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

type fetched struct {
	meta      ports.Metadata
	fromCache bool
}

// Get returns the catalog and whether it came from the cache. Expired or
// missing snapshots trigger exactly one upstream fetch shared among all
// concurrent callers.
func (s *Service) Get(ctx context.Context) (ports.Metadata, bool, error) {
	if snap, err := s.store.Load(ctx); err == nil && s.fresh(snap) {
		if s.metrics != nil {
			s.metrics.CatalogCacheHits.Inc()
		}
		return snap.Metadata, true, nil
	}

	v, err, _ := s.group.Do(refreshKey, func() (any, error) {
		// A concurrent flight may have refreshed while we queued.
		if snap, err := s.store.Load(ctx); err == nil && s.fresh(snap) {
			return fetched{meta: snap.Metadata, fromCache: true}, nil
		}

		meta, err := s.api.GetMetadata(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch catalog: %w", err)
		}

		snap := &store.Snapshot{Metadata: *meta, FetchedAt: s.clock()}
		if err := s.store.Save(ctx, snap); err != nil {
			// The fetched copy is still good for this caller; log and move on.
			if s.logger != nil {
				s.logger.WarnContext(ctx, "catalog snapshot save failed", "error", err)
			}
		}
		if s.metrics != nil {
			s.metrics.CatalogRefreshes.Inc()
		}
		return fetched{meta: *meta}, nil
	})
	if err != nil {
		return ports.Metadata{}, false, err
	}

	f := v.(fetched)
	if f.fromCache && s.metrics != nil {
		s.metrics.CatalogCacheHits.Inc()
	}
	return f.meta, f.fromCache, nil
}

// Invalidate drops the cached catalog so the next Get refetches.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.store.Clear(ctx)
}

// Search queries the upstream location search; if the upstream is down, the
// cached catalog serves as a degraded local fallback filter.
func (s *Service) Search(ctx context.Context, query string, types []models.LocationType) ([]models.LocationRef, error) {
	results, err := s.api.SearchLocations(ctx, query, types)
	if err == nil {
		return results, nil
	}

	snap, loadErr := s.store.Load(ctx)
	if loadErr != nil {
		return nil, fmt.Errorf("search locations: %w", err)
	}
	if s.logger != nil {
		s.logger.WarnContext(ctx, "upstream search failed, filtering cached catalog", "error", err)
	}
	return filterCatalog(snap.Metadata, query, types), nil
}

// ResolveID joins a caller LocationRef to the upstream catalog entry and
// returns the upstream's own identifier. Returns sentinel.ErrNotFound when
// no entry matches under the configured policy.
func (s *Service) ResolveID(ctx context.Context, ref models.LocationRef) (string, error) {
	meta, _, err := s.Get(ctx)
	if err != nil {
		return "", err
	}

	matched, ok := s.matcher.Match(ref, candidatesFor(meta, ref.Type))
	if !ok {
		return "", fmt.Errorf("location %q: %w", ref.Name, sentinel.ErrNotFound)
	}
	return matched.ID, nil
}

func (s *Service) fresh(snap *store.Snapshot) bool {
	return s.clock().Sub(snap.FetchedAt) < s.ttl
}

func candidatesFor(meta ports.Metadata, t models.LocationType) []models.LocationRef {
	switch t {
	case models.TypeProvince:
		return meta.Provinces
	case models.TypeDistrict:
		return meta.Districts
	case models.TypeSubDistrict:
		return meta.SubDistricts
	default:
		return meta.All()
	}
}

func filterCatalog(meta ports.Metadata, query string, types []models.LocationType) []models.LocationRef {
	wantType := make(map[models.LocationType]bool, len(types))
	for _, t := range types {
		wantType[t] = true
	}
	q := strings.ToLower(query)

	var results []models.LocationRef
	for _, loc := range meta.All() {
		if len(wantType) > 0 && !wantType[loc.Type] {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(loc.Name), q) {
			continue
		}
		results = append(results, loc)
	}
	return results
}
