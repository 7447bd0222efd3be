package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"migflow/internal/flow"
	"migflow/internal/flow/models"
	"migflow/pkg/platform/httputil"
	"migflow/pkg/requestcontext"
)

// Service defines the interface for aggregation queries.
type Service interface {
	Query(ctx context.Context, req flow.QueryRequest) (*models.Result, error)
}

// Handler wires migration query endpoints to the flow service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a flow handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts migration endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/migration/query", h.HandleQuery)
}

// HandleQuery handles POST /migration/query requests.
func (h *Handler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[QueryRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Query(ctx, flow.QueryRequest{
		Scale:        req.Scale,
		Locations:    req.ParsedLocations(),
		Window:       req.ParsedWindow(),
		Boundary:     req.ParsedBoundary(),
		Aggregation:  req.Aggregation,
		IncludeFlows: req.IncludeFlows,
		ViewKey:      req.ViewKey,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "migration query failed",
			"request_id", requestID,
			"scale", req.Scale,
			"locations", len(req.Locations),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "migration query served",
		"request_id", requestID,
		"scale", req.Scale,
		"locations", len(req.Locations),
		"entries", len(result.Entries),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}
