// Package upstream implements the HTTP adapter for the migration-data API.
// It satisfies both ports.MigrationAPI and ports.CatalogAPI against a single
// JSON service.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"migflow/internal/flow/models"
	"migflow/internal/flow/ports"
	"migflow/pkg/platform/sentinel"
)

const (
	tracerName     = "migflow/internal/upstream"
	defaultTimeout = 30 * time.Second
	defaultAgent   = "migflow/1.0"

	dateLayout = "2006-01-02"

	// Error bodies are logged truncated; upstream errors can carry full
	// HTML pages.
	maxErrorBody = 512
)

// Config holds the upstream connection settings.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Client talks to the upstream migration-data service. Safe for concurrent
// use; the fan-out layer issues per-year calls against one shared Client.
type Client struct {
	base      *url.URL
	http      *http.Client
	userAgent string
	logger    *slog.Logger
	tracer    trace.Tracer
}

type Option func(*Client)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient replaces the underlying transport, e.g. for tests or an
// instrumented round-tripper.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func New(cfg Config, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("upstream base URL is required")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse upstream base URL: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultAgent
	}

	c := &Client{
		base:      base,
		http:      &http.Client{Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// migrationDataPayload is the wire form of a data request.
type migrationDataPayload struct {
	Scale        string   `json:"scale"`
	LocationIDs  []string `json:"locationIds"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Aggregation  string   `json:"aggregation,omitempty"`
	IncludeFlows bool     `json:"includeFlows"`
}

func (c *Client) GetMigrationData(ctx context.Context, req ports.MigrationDataRequest) (*models.MigrationResponse, error) {
	ctx, span := c.tracer.Start(ctx, "upstream.GetMigrationData",
		trace.WithAttributes(
			attribute.String("scale", req.Scale),
			attribute.Int("location_count", len(req.LocationIDs)),
			attribute.String("start_date", req.StartDate.Format(dateLayout)),
			attribute.String("end_date", req.EndDate.Format(dateLayout)),
		))
	defer span.End()

	payload := migrationDataPayload{
		Scale:        req.Scale,
		LocationIDs:  req.LocationIDs,
		StartDate:    req.StartDate.Format(dateLayout),
		EndDate:      req.EndDate.Format(dateLayout),
		Aggregation:  req.Aggregation,
		IncludeFlows: req.IncludeFlows,
	}

	var resp models.MigrationResponse
	if err := c.do(ctx, http.MethodPost, "/migration/data", nil, payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetMetadata(ctx context.Context) (*ports.Metadata, error) {
	ctx, span := c.tracer.Start(ctx, "upstream.GetMetadata")
	defer span.End()

	var meta ports.Metadata
	if err := c.do(ctx, http.MethodGet, "/metadata", nil, nil, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (c *Client) SearchLocations(ctx context.Context, query string, types []models.LocationType) ([]models.LocationRef, error) {
	ctx, span := c.tracer.Start(ctx, "upstream.SearchLocations",
		trace.WithAttributes(attribute.String("query", query)))
	defer span.End()

	params := url.Values{}
	params.Set("q", query)
	for _, t := range types {
		params.Add("type", string(t))
	}

	var wire struct {
		Locations []models.LocationRef `json:"locations"`
	}
	if err := c.do(ctx, http.MethodGet, "/locations/search", params, nil, &wire); err != nil {
		return nil, err
	}
	return wire.Locations, nil
}

// do issues one JSON request against the upstream and decodes the response
// into out. Non-2xx statuses map onto the platform sentinels so callers can
// branch without knowing HTTP.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, payload, out any) error {
	endpoint := *c.base
	endpoint.Path = strings.TrimRight(endpoint.Path, "/") + path
	if len(params) > 0 {
		endpoint.RawQuery = params.Encode()
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode upstream request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return fmt.Errorf("build upstream request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %w", method, path, sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s %s: %w", method, path, sentinel.ErrNotFound)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if c.logger != nil {
			c.logger.WarnContext(ctx, "upstream request failed",
				"method", method,
				"path", path,
				"status", resp.StatusCode,
				"body", strings.TrimSpace(string(snippet)),
			)
		}
		return fmt.Errorf("%s %s: status %d: %w", method, path, resp.StatusCode, sentinel.ErrUnavailable)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode upstream response: %w", err)
	}
	return nil
}

var (
	_ ports.MigrationAPI = (*Client)(nil)
	_ ports.CatalogAPI   = (*Client)(nil)
)
