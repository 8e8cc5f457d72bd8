// internal/models/regulation.go
package models

// RegulationKind distinguishes pass/fail rules from scored rules.
type RegulationKind string

const (
	RegulationHard RegulationKind = "hard"
	RegulationSoft RegulationKind = "soft"
)

// ComplianceStatus is the outcome of a credentialing verification run.
type ComplianceStatus string

const (
	ComplianceCompliant    ComplianceStatus = "COMPLIANT"
	ComplianceNonCompliant ComplianceStatus = "NON_COMPLIANT"
	ComplianceFailed       ComplianceStatus = "FAILED"
)

// Regulation is a single credentialing rule. Hard regulations must all pass;
// soft regulations contribute a weighted 1-5 score.
type Regulation struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Kind        RegulationKind `json:"kind"`
	Weight      float64        `json:"weight,omitempty"`
	Description string         `json:"description,omitempty"`
}

// RegulationResult is the per-regulation outcome.
type RegulationResult struct {
	RegulationID string  `json:"regulationId"`
	Name         string  `json:"name"`
	Passed       bool    `json:"passed"`
	Score        int     `json:"score,omitempty"`
	Reasoning    string  `json:"reasoning,omitempty"`
	Weighted     float64 `json:"weightedScore,omitempty"`
}
