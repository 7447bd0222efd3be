package handler

import (
	"strings"
	"time"

	"migflow/internal/flow/models"
	"migflow/internal/period"
	dErrors "migflow/pkg/domain-errors"
)

const dateLayout = "2006-01-02"

// QueryRequest is the HTTP request body for POST /migration/query.
type QueryRequest struct {
	Scale        string            `json:"scale"`
	Locations    []QueryLocation   `json:"locations"`
	StartDate    string            `json:"startDate"`
	EndDate      string            `json:"endDate"`
	Boundary     string            `json:"boundary,omitempty"`
	Aggregation  string            `json:"aggregation,omitempty"`
	IncludeFlows bool              `json:"includeFlows"`
	ViewKey      string            `json:"viewKey,omitempty"`

	// Parsed values (populated by Validate)
	parsedWindow   period.Bounds
	parsedBoundary period.BoundaryMode
}

// QueryLocation identifies one requested location.
type QueryLocation struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *QueryRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	if len(r.Locations) == 0 {
		return dErrors.New(dErrors.CodeBadRequest, "locations is required")
	}
	for i := range r.Locations {
		r.Locations[i].Name = strings.TrimSpace(r.Locations[i].Name)
		if r.Locations[i].Name == "" {
			return dErrors.New(dErrors.CodeBadRequest, "locations[].name is required")
		}
	}

	start, err := parseDate(r.StartDate)
	if err != nil {
		return dErrors.New(dErrors.CodeBadRequest, "startDate must be a YYYY-MM-DD date")
	}
	end, err := parseDate(r.EndDate)
	if err != nil {
		return dErrors.New(dErrors.CodeBadRequest, "endDate must be a YYYY-MM-DD date")
	}
	r.parsedWindow = period.Bounds{Start: start, End: end}

	mode, err := period.ParseBoundaryMode(r.Boundary)
	if err != nil {
		return dErrors.New(dErrors.CodeBadRequest, "boundary must be \"inclusive\" or \"exclusive\"")
	}
	r.parsedBoundary = mode

	return nil
}

// ParsedWindow returns the validated query window.
func (r *QueryRequest) ParsedWindow() period.Bounds {
	return r.parsedWindow
}

// ParsedBoundary returns the validated end boundary mode.
func (r *QueryRequest) ParsedBoundary() period.BoundaryMode {
	return r.parsedBoundary
}

// ParsedLocations returns the requested locations as domain refs.
func (r *QueryRequest) ParsedLocations() []models.LocationRef {
	refs := make([]models.LocationRef, 0, len(r.Locations))
	for _, loc := range r.Locations {
		refs = append(refs, models.LocationRef{
			ID:   loc.ID,
			Name: loc.Name,
			Type: models.LocationType(loc.Type),
		})
	}
	return refs
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
