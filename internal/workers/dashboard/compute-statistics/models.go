// internal/workers/dashboard/compute-statistics/models.go
package computestatistics

import "encoding/json"

type Input struct {
	Records json.RawMessage `json:"records"`
}

type Output struct {
	TotalApplications int            `json:"totalApplications"`
	ByStatus          map[string]int `json:"byStatus"`
	BySpecialty       map[string]int `json:"bySpecialty"`
	ByMarket          map[string]int `json:"byMarket"`
	ByNetworkImpact   map[string]int `json:"byNetworkImpact"`
	InReview          int            `json:"inReview"`
	CommitteeQueue    int            `json:"committeeQueue"`
	Approved          int            `json:"approved"`
	Denied            int            `json:"denied"`
	Unassigned        int            `json:"unassigned"`
	AvgWorkExperience float64        `json:"avgWorkExperience"`
}
