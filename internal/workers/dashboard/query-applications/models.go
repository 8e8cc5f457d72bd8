// internal/workers/dashboard/query-applications/models.go
package queryapplications

import (
	"encoding/json"

	"credentialing-workers/internal/models"
	"credentialing-workers/internal/queryengine"
)

type Input struct {
	// Records arrives raw so a non-collection payload can be rejected as
	// INVALID_INPUT instead of surfacing as a generic parse failure.
	Records json.RawMessage  `json:"records"`
	Filters queryengine.Spec `json:"filters"`

	// IncludeFacets asks for the distinct filterable values of the FULL
	// snapshot alongside the filtered result.
	IncludeFacets bool `json:"includeFacets,omitempty"`
}

type Output struct {
	Applications []models.ProviderApplication `json:"applications"`
	TotalCount   int                          `json:"totalCount"`
	FilteredFrom int                          `json:"filteredFrom"`
	Facets       *queryengine.Facets          `json:"facets,omitempty"`
}
