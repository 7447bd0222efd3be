package handler

import (
	"migflow/internal/flow/models"
)

// QueryResponse is the HTTP response for POST /migration/query.
type QueryResponse struct {
	Entries   []models.ChartEntry `json:"entries"`
	Summary   models.Summary      `json:"summary"`
	Unmatched []string            `json:"unmatched,omitempty"`
}

// FromResult converts an aggregation Result to an HTTP response.
func FromResult(result *models.Result) *QueryResponse {
	return &QueryResponse{
		Entries:   result.Entries,
		Summary:   result.Summary,
		Unmatched: result.Unmatched,
	}
}
