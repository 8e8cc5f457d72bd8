package queries

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var (
	ErrUnknownQueryType = errors.New("unknown query type")
	ErrMissingIndex     = errors.New("index name is required")
)

// ProviderQuery describes a provider search request against the index.
type ProviderQuery struct {
	Index      string
	QueryType  string
	Filters    map[string]interface{}
	ProviderID string
	Pagination struct {
		From int
		Size int
	}
}

// BuildQuery assembles the search request for the requested query type.
func BuildQuery(pq ProviderQuery) (*esapi.SearchRequest, error) {
	if pq.Index == "" {
		return nil, ErrMissingIndex
	}

	var queryBody map[string]interface{}

	switch pq.QueryType {
	case "provider_search":
		queryBody = buildProviderSearchQuery(pq)
	case "similar_providers":
		queryBody = buildSimilarProvidersQuery(pq)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownQueryType, pq.QueryType)
	}

	body, _ := json.Marshal(queryBody)

	req := esapi.SearchRequest{
		Index: []string{pq.Index},
		Body:  strings.NewReader(string(body)),
		From:  &pq.Pagination.From,
		Size:  &pq.Pagination.Size,
	}

	return &req, nil
}

// buildProviderSearchQuery combines free text and term filters into one bool
// query. Name matches weigh heaviest, then specialty.
func buildProviderSearchQuery(pq ProviderQuery) map[string]interface{} {
	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	if keywords, ok := pq.Filters["keywords"].(string); ok && keywords != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  keywords,
				"fields": []string{"name^3", "specialty^2", "market"},
				"type":   "best_fields",
			},
		})
	}

	for _, field := range []string{"specialty", "market", "status", "networkImpact"} {
		if value, ok := pq.Filters[field].(string); ok && value != "" {
			filterClauses = append(filterClauses, map[string]interface{}{
				"term": map[string]interface{}{field: value},
			})
		}
	}

	if expRange, ok := pq.Filters["minExperience"].(float64); ok && expRange > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{
				"workExperience": map[string]interface{}{"gte": expRange},
			},
		})
	}

	boolQuery := map[string]interface{}{}
	if len(mustClauses) > 0 {
		boolQuery["must"] = mustClauses
	}
	if len(filterClauses) > 0 {
		boolQuery["filter"] = filterClauses
	}
	if len(boolQuery) == 0 {
		return map[string]interface{}{
			"query": map[string]interface{}{"match_all": map[string]interface{}{}},
		}
	}

	return map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
	}
}

// buildSimilarProvidersQuery finds providers in the same specialty and market
// as the given provider, excluding the provider itself.
func buildSimilarProvidersQuery(pq ProviderQuery) map[string]interface{} {
	filterClauses := []interface{}{}

	for _, field := range []string{"specialty", "market"} {
		if value, ok := pq.Filters[field].(string); ok && value != "" {
			filterClauses = append(filterClauses, map[string]interface{}{
				"term": map[string]interface{}{field: value},
			})
		}
	}

	boolQuery := map[string]interface{}{
		"filter": filterClauses,
	}
	if pq.ProviderID != "" {
		boolQuery["must_not"] = []interface{}{
			map[string]interface{}{
				"term": map[string]interface{}{"id": pq.ProviderID},
			},
		}
	}

	return map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
	}
}
