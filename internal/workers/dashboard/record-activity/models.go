// internal/workers/dashboard/record-activity/models.go
package recordactivity

import "credentialing-workers/internal/models"

type Input struct {
	Type          string `json:"type"`
	ApplicationID string `json:"applicationId,omitempty"`
	ProviderName  string `json:"providerName,omitempty"`
	Actor         string `json:"actor,omitempty"`
	Detail        string `json:"detail,omitempty"`

	// Fetch switches the worker into read mode: return the newest events
	// instead of recording one.
	Fetch bool `json:"fetch,omitempty"`
	Limit int  `json:"limit,omitempty"`
}

type Output struct {
	Recorded bool                   `json:"recorded"`
	EventID  string                 `json:"eventId,omitempty"`
	Events   []models.ActivityEvent `json:"events,omitempty"`
}
