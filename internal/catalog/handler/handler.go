package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"migflow/internal/flow/models"
	dErrors "migflow/pkg/domain-errors"
	"migflow/pkg/platform/httputil"
	"migflow/pkg/requestcontext"
)

// Service defines the interface for catalog operations.
type Service interface {
	Search(ctx context.Context, query string, types []models.LocationType) ([]models.LocationRef, error)
	Invalidate(ctx context.Context) error
}

// Handler wires catalog endpoints to the catalog service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a catalog handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts catalog endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/locations/search", h.HandleSearch)
	r.Post("/catalog/invalidate", h.HandleInvalidate)
}

// SearchResponse is the HTTP response for GET /locations/search.
type SearchResponse struct {
	Locations []models.LocationRef `json:"locations"`
}

// HandleSearch handles GET /locations/search requests.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "query parameter q is required"))
		return
	}

	types, err := parseTypes(r.URL.Query()["type"])
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	results, err := h.service.Search(ctx, query, types)
	if err != nil {
		h.logger.ErrorContext(ctx, "location search failed",
			"request_id", requestID,
			"query", query,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	if results == nil {
		results = []models.LocationRef{}
	}
	httputil.WriteJSON(w, http.StatusOK, SearchResponse{Locations: results})
}

// HandleInvalidate handles POST /catalog/invalidate requests.
func (h *Handler) HandleInvalidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	if err := h.service.Invalidate(ctx); err != nil {
		h.logger.ErrorContext(ctx, "catalog invalidation failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "catalog invalidated", "request_id", requestID)
	w.WriteHeader(http.StatusNoContent)
}

func parseTypes(raw []string) ([]models.LocationType, error) {
	types := make([]models.LocationType, 0, len(raw))
	for _, value := range raw {
		switch t := models.LocationType(strings.TrimSpace(value)); t {
		case models.TypeProvince, models.TypeDistrict, models.TypeSubDistrict:
			types = append(types, t)
		default:
			return nil, dErrors.New(dErrors.CodeBadRequest, "unknown location type "+value)
		}
	}
	return types, nil
}
