// Package flow implements the migration-flow aggregation engine: decomposing
// a multi-year query into per-year upstream sub-queries, merging their
// responses idempotently, and normalizing the result into chart-ready
// entries.
package flow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"migflow/internal/flow/models"
	"migflow/internal/flow/ports"
	"migflow/internal/period"
	"migflow/internal/platform/metrics"
	dErrors "migflow/pkg/domain-errors"
	"migflow/pkg/platform/sentinel"
	pstrings "migflow/pkg/platform/strings"
)

const tracerName = "migflow/internal/flow"

// Resolver maps a caller LocationRef to the upstream API's own location
// identifier. The catalog service provides the production implementation.
type Resolver interface {
	ResolveID(ctx context.Context, ref models.LocationRef) (string, error)
}

// QueryRequest describes one aggregation query.
type QueryRequest struct {
	Scale        string
	Locations    []models.LocationRef
	Window       period.Bounds
	Boundary     period.BoundaryMode
	Aggregation  string
	IncludeFlows bool
	// ViewKey identifies the view a query feeds. Concurrent queries for the
	// same key race under last-result-wins: a superseded query's result is
	// discarded at commit time. Empty disables the guard.
	ViewKey string
}

// Service orchestrates the query pipeline: resolve, decompose, fan out,
// merge, aggregate, commit.
type Service struct {
	api      ports.MigrationAPI
	resolver Resolver
	matcher  Matcher
	logger   *slog.Logger
	metrics  *metrics.Metrics
	tracer   trace.Tracer

	mu      sync.Mutex
	tickets map[string]uint64
}

type Option func(*Service)

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

func WithMatcher(m Matcher) Option {
	return func(s *Service) {
		s.matcher = m
	}
}

func NewService(api ports.MigrationAPI, resolver Resolver, opts ...Option) (*Service, error) {
	if api == nil {
		return nil, fmt.Errorf("migration API is required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("location resolver is required")
	}

	svc := &Service{
		api:      api,
		resolver: resolver,
		matcher:  NameMatcher{},
		tracer:   otel.Tracer(tracerName),
		tickets:  make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Query runs one aggregation query end to end. Any sub-query failure fails
// the whole operation atomically; no partial merge of only-successful years.
func (s *Service) Query(ctx context.Context, req QueryRequest) (*models.Result, error) {
	start := time.Now()
	if s.metrics != nil {
		s.metrics.QueriesTotal.Inc()
	}

	ctx, span := s.tracer.Start(ctx, "flow.Query",
		trace.WithAttributes(
			attribute.String("flow.scale", req.Scale),
			attribute.Int("flow.locations", len(req.Locations)),
		))
	defer span.End()

	if err := validate(req); err != nil {
		if s.metrics != nil {
			s.metrics.QueryFailures.Inc()
		}
		return nil, err
	}

	ticket := s.begin(req.ViewKey)

	locationIDs := s.resolveLocationIDs(ctx, req.Locations)

	responses, err := s.fanOut(ctx, req, locationIDs)
	if err != nil {
		if s.metrics != nil {
			s.metrics.QueryFailures.Inc()
		}
		return nil, err
	}

	merged := Merge(responses)
	result := Aggregate(merged, req.Locations, req.Window, req.Boundary, s.matcher)

	// Last-result-wins: if a newer query for this view was dispatched while
	// we were in flight, discard our result instead of committing it.
	if !s.current(req.ViewKey, ticket) {
		if s.metrics != nil {
			s.metrics.QueriesSuperseded.Inc()
		}
		if s.logger != nil {
			s.logger.DebugContext(ctx, "query result superseded",
				"view_key", req.ViewKey,
			)
		}
		return nil, dErrors.Wrap(dErrors.CodeSuperseded, "query superseded by a newer request", sentinel.ErrSuperseded)
	}

	if s.metrics != nil {
		s.metrics.ObserveQueryDuration(time.Since(start))
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "query aggregated",
			"scale", req.Scale,
			"locations", len(req.Locations),
			"entries", len(result.Entries),
			"unmatched", len(result.Unmatched),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}

	return &result, nil
}

func validate(req QueryRequest) error {
	if len(req.Locations) == 0 {
		return dErrors.New(dErrors.CodeBadRequest, "at least one location is required")
	}
	if req.Window.Start.IsZero() || req.Window.End.IsZero() {
		return dErrors.New(dErrors.CodeBadRequest, "start and end dates are required")
	}
	if req.Window.End.Before(req.Window.Start) {
		return dErrors.New(dErrors.CodeBadRequest, "end date precedes start date")
	}
	return nil
}

// resolveLocationIDs maps requested locations to upstream identifiers.
// Unresolvable locations are dropped from the upstream request; they stay in
// the aggregation zero-filled and surface in the Unmatched diagnostics.
func (s *Service) resolveLocationIDs(ctx context.Context, locations []models.LocationRef) []string {
	ids := make([]string, 0, len(locations))
	for _, ref := range locations {
		id, err := s.resolver.ResolveID(ctx, ref)
		if err != nil {
			if s.logger != nil && !errors.Is(err, sentinel.ErrNotFound) {
				s.logger.WarnContext(ctx, "location resolution failed",
					"location", ref.Name,
					"error", err,
				)
			}
			continue
		}
		ids = append(ids, id)
	}
	// Duplicate location names resolve to the same upstream ID; send each
	// once so per-location counts are not double-requested.
	return pstrings.DedupeAndTrim(ids)
}

// fanOut dispatches one upstream sub-query per decomposed year range and
// waits for all of them. errgroup.Wait blocks until every goroutine returns,
// so siblings of a failed sub-query still run to completion; cancellation is
// advisory via ctx only.
func (s *Service) fanOut(ctx context.Context, req QueryRequest, locationIDs []string) ([]models.MigrationResponse, error) {
	effectiveEnd := req.Window.End
	if req.Boundary == period.ExcludeEnd {
		// End marks the first excluded month; step back a day so a window
		// ending exactly on Jan 1 does not drag in the next year.
		effectiveEnd = effectiveEnd.AddDate(0, 0, -1)
	}
	ranges := Decompose(req.Window.Start, effectiveEnd)

	results := make([]*models.MigrationResponse, len(ranges))
	errs := make([]error, len(ranges))

	g := new(errgroup.Group)
	for i, yr := range ranges {
		g.Go(func() error {
			subCtx, subSpan := s.tracer.Start(ctx, "flow.subquery",
				trace.WithAttributes(attribute.Int("flow.year", yr.Start.Year())))
			defer subSpan.End()

			resp, err := s.api.GetMigrationData(subCtx, ports.MigrationDataRequest{
				Scale:        req.Scale,
				LocationIDs:  locationIDs,
				StartDate:    yr.Start,
				EndDate:      yr.End,
				Aggregation:  req.Aggregation,
				IncludeFlows: req.IncludeFlows,
			})
			if err != nil {
				errs[i] = err
				return err
			}
			results[i] = resp
			return nil
		})
	}

	firstErr := g.Wait()
	if firstErr != nil {
		failed := 0
		for _, err := range errs {
			if err != nil {
				failed++
			}
		}
		if s.metrics != nil {
			s.metrics.SubqueryFailures.Add(float64(failed))
		}
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "sub-queries failed",
				"failed", failed,
				"total", len(ranges),
				"error", firstErr,
			)
		}
		return nil, dErrors.Wrap(dErrors.CodeUnavailable,
			fmt.Sprintf("%d of %d sub-queries failed", failed, len(ranges)), firstErr)
	}

	responses := make([]models.MigrationResponse, 0, len(results))
	for _, resp := range results {
		if resp != nil {
			responses = append(responses, *resp)
		}
	}
	return responses, nil
}

// begin takes a ticket for the given view key. The latest ticket is the only
// one allowed to commit.
func (s *Service) begin(viewKey string) uint64 {
	if viewKey == "" {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickets[viewKey]++
	return s.tickets[viewKey]
}

func (s *Service) current(viewKey string, ticket uint64) bool {
	if viewKey == "" {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tickets[viewKey] == ticket
}
