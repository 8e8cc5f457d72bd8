// internal/models/activity.go
package models

// Activity event types shown on the dashboard feed.
const (
	ActivityApplicationSubmitted = "application_submitted"
	ActivityStatusChanged        = "status_changed"
	ActivityAnalystAssigned      = "analyst_assigned"
	ActivityCommitteeDecision    = "committee_decision"
	ActivityRosterIngested       = "roster_ingested"
)

// ActivityEvent is one entry on the dashboard activity feed.
type ActivityEvent struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	ApplicationID string `json:"applicationId,omitempty"`
	ProviderName  string `json:"providerName,omitempty"`
	Actor         string `json:"actor,omitempty"`
	Detail        string `json:"detail,omitempty"`
	OccurredAt    string `json:"occurredAt"`
}
