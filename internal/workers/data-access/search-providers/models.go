// internal/workers/data-access/search-providers/models.go
package searchproviders

type Pagination struct {
	From int `json:"from"`
	Size int `json:"size"`
}

type Input struct {
	IndexName  string                 `json:"indexName,omitempty"`
	QueryType  string                 `json:"queryType"`
	Filters    map[string]interface{} `json:"filters,omitempty"`
	ProviderID string                 `json:"providerId,omitempty"`
	Pagination *Pagination            `json:"pagination,omitempty"`
}

type Output struct {
	Data      []map[string]interface{} `json:"data"`
	TotalHits int64                    `json:"totalHits"`
	MaxScore  float64                  `json:"maxScore"`
	Took      int64                    `json:"took"` // milliseconds
}
