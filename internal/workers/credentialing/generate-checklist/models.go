// internal/workers/credentialing/generate-checklist/models.go
package generatechecklist

type ChecklistItem struct {
	Label    string `json:"label"`
	Category string `json:"category"`
	Required bool   `json:"required"`
	Done     bool   `json:"done"`
}

type Input struct {
	ApplicationID string `json:"applicationId"`
	ProviderName  string `json:"providerName,omitempty"`
	Specialty     string `json:"specialty"`
	Market        string `json:"market,omitempty"`
	NetworkImpact string `json:"networkImpact,omitempty"`
}

type Output struct {
	ApplicationID string          `json:"applicationId"`
	Items         []ChecklistItem `json:"items"`
	Source        string          `json:"source"` // "genai" or "baseline"
}
