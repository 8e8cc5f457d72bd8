package searchproviders

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"credentialing-workers/internal/common/logger"
)

func createHandler(t *testing.T, esURL string) *Handler {
	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{esURL}})
	require.NoError(t, err)

	cfg := &Config{
		Timeout:      5 * time.Second,
		DefaultIndex: "providers",
	}
	return NewHandler(cfg, client, logger.NewZapAdapter(zaptest.NewLogger(t)))
}

func searchResponse(sources ...map[string]interface{}) map[string]interface{} {
	hits := make([]interface{}, 0, len(sources))
	for _, src := range sources {
		hits = append(hits, map[string]interface{}{"_source": src})
	}
	return map[string]interface{}{
		"hits": map[string]interface{}{
			"total":     map[string]interface{}{"value": len(sources)},
			"max_score": 1.5,
			"hits":      hits,
		},
	}
}

func TestHandler_Execute_ProviderSearch(t *testing.T) {
	var capturedBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/providers/_search")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&capturedBody))

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		json.NewEncoder(w).Encode(searchResponse(
			map[string]interface{}{"id": "APP-001", "name": "Dr. Sarah Chen", "specialty": "Cardiology"},
		))
	}))
	defer server.Close()

	handler := createHandler(t, server.URL)

	output, err := handler.Execute(context.Background(), &Input{
		QueryType: "provider_search",
		Filters: map[string]interface{}{
			"keywords":  "chen",
			"specialty": "Cardiology",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), output.TotalHits)
	require.Len(t, output.Data, 1)
	assert.Equal(t, "APP-001", output.Data[0]["id"])

	// The request body carries both the text clause and the term filter.
	boolQuery := capturedBody["query"].(map[string]interface{})["bool"].(map[string]interface{})
	assert.Contains(t, boolQuery, "must")
	assert.Contains(t, boolQuery, "filter")
}

func TestHandler_Execute_SimilarProviders(t *testing.T) {
	var capturedBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&capturedBody))
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		json.NewEncoder(w).Encode(searchResponse())
	}))
	defer server.Close()

	handler := createHandler(t, server.URL)

	_, err := handler.Execute(context.Background(), &Input{
		QueryType:  "similar_providers",
		ProviderID: "APP-001",
		Filters: map[string]interface{}{
			"specialty": "Cardiology",
			"market":    "Dallas",
		},
	})
	require.NoError(t, err)

	boolQuery := capturedBody["query"].(map[string]interface{})["bool"].(map[string]interface{})
	assert.Contains(t, boolQuery, "must_not")
	assert.Len(t, boolQuery["filter"], 2)
}

func TestHandler_Execute_UnknownQueryType(t *testing.T) {
	handler := createHandler(t, "http://localhost:0")

	_, err := handler.Execute(context.Background(), &Input{QueryType: "claims_index"})
	assert.ErrorIs(t, err, ErrSearchQueryFailed)
}

func TestHandler_Execute_SearchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	handler := createHandler(t, server.URL)

	_, err := handler.Execute(context.Background(), &Input{QueryType: "provider_search"})
	assert.ErrorIs(t, err, ErrSearchQueryFailed)
}

func TestBuildQueryDefaults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		json.NewEncoder(w).Encode(searchResponse())
	}))
	defer server.Close()

	handler := createHandler(t, server.URL)

	// No filters at all falls back to match_all against the default index.
	output, err := handler.Execute(context.Background(), &Input{QueryType: "provider_search"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), output.TotalHits)
}
