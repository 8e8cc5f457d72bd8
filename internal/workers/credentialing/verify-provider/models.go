// internal/workers/credentialing/verify-provider/models.go
package verifyprovider

import "credentialing-workers/internal/models"

type Input struct {
	ApplicationID string                  `json:"applicationId"`
	Profile       *models.ProviderProfile `json:"profile"`
}

type Output struct {
	ApplicationID    string                    `json:"applicationId"`
	ComplianceStatus models.ComplianceStatus   `json:"complianceStatus"`
	Score            int                       `json:"score"`
	HardResults      []models.RegulationResult `json:"hardRegulationResults"`
	SoftResults      []models.RegulationResult `json:"softRegulationResults"`
	FailedHard       []string                  `json:"failedHardRegulations,omitempty"`
	ProcessingTimeMs int64                     `json:"processingTimeMs"`
}
