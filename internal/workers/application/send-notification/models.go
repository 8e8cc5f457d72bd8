// internal/workers/application/send-notification/models.go
package sendnotification

type Input struct {
	ApplicationID string `json:"applicationId"`
	ProviderName  string `json:"providerName"`
	Recipient     string `json:"recipient"`
	Phone         string `json:"phone,omitempty"`
	Event         string `json:"event"` // e.g. "status_changed", "committee_decision"
	NewStatus     string `json:"newStatus,omitempty"`
	NetworkImpact string `json:"networkImpact,omitempty"`
	Detail        string `json:"detail,omitempty"`
}

type Output struct {
	NotificationID string `json:"notificationId"`
	EmailSent      bool   `json:"emailSent"`
	SMSSent        bool   `json:"smsSent"`
	EmailMessageID string `json:"emailMessageId,omitempty"`
}
