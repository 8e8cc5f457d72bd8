// internal/workers/roster/ingest-roster/models.go
package ingestroster

type RosterRow struct {
	Name           string `json:"name"`
	Specialty      string `json:"specialty"`
	Market         string `json:"market,omitempty"`
	NPI            string `json:"npi,omitempty"`
	LicenseNumber  string `json:"licenseNumber,omitempty"`
	WorkExperience int    `json:"workExperience,omitempty"`
	NetworkImpact  string `json:"networkImpact,omitempty"`
	SubmissionDate string `json:"submissionDate,omitempty"`
}

type RowFailure struct {
	Row    int    `json:"row"`
	Name   string `json:"name,omitempty"`
	Reason string `json:"reason"`
}

type Input struct {
	RosterID string      `json:"rosterId,omitempty"`
	Source   string      `json:"source,omitempty"`
	Rows     []RosterRow `json:"rows"`
}

type Output struct {
	RosterID       string       `json:"rosterId"`
	Accepted       int          `json:"accepted"`
	Rejected       int          `json:"rejected"`
	ApplicationIDs []string     `json:"applicationIds"`
	Failures       []RowFailure `json:"failures,omitempty"`
}
