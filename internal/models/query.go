// internal/models/query.go
package models

// QueryType names a registered dashboard data query.
type QueryType string

const (
	QueryTypeApplicationsSnapshot  QueryType = "applications_snapshot"
	QueryTypeApplicationDetail     QueryType = "application_detail"
	QueryTypeApplicationsByAnalyst QueryType = "applications_by_analyst"
	QueryTypeRosterSummary         QueryType = "roster_summary"
)
