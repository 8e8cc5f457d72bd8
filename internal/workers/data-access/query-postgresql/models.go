// internal/workers/data-access/query-postgresql/models.go
package querypostgresql

import "credentialing-workers/internal/models"

type Input struct {
	QueryType     string `json:"queryType"`
	ApplicationID string `json:"applicationId,omitempty"`
	Analyst       string `json:"analyst,omitempty"`
	RosterID      string `json:"rosterId,omitempty"`
}

type Output struct {
	Data               interface{} `json:"data"`
	RowCount           int         `json:"rowCount"`
	QueryExecutionTime int64       `json:"queryExecutionTime"` // milliseconds
}

type QueryType = models.QueryType

var (
	QueryTypeApplicationsSnapshot  = models.QueryTypeApplicationsSnapshot
	QueryTypeApplicationDetail     = models.QueryTypeApplicationDetail
	QueryTypeApplicationsByAnalyst = models.QueryTypeApplicationsByAnalyst
	QueryTypeRosterSummary         = models.QueryTypeRosterSummary
)
