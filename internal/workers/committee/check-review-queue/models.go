// internal/workers/committee/check-review-queue/models.go
package checkreviewqueue

import "credentialing-workers/internal/models"

type Input struct {
	Market string `json:"market,omitempty"`

	// ForceRefresh bypasses the cached queue.
	ForceRefresh bool `json:"forceRefresh,omitempty"`
}

type Output struct {
	Queue      []models.ProviderApplication `json:"queue"`
	QueueSize  int                          `json:"queueSize"`
	HighImpact int                          `json:"highImpact"`
	FromCache  bool                         `json:"fromCache"`
}
