package verifyprovider

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"credentialing-workers/internal/common/logger"
	"credentialing-workers/internal/models"
)

func createTestHandler(t *testing.T) *Handler {
	cfg := &Config{
		Timeout:           5 * time.Second,
		MinCoverageAmount: 1000000,
	}
	return NewHandler(cfg, logger.NewZapAdapter(zaptest.NewLogger(t)))
}

func compliantProfile() *models.ProviderProfile {
	return &models.ProviderProfile{
		ProviderID: "PRV-001",
		PersonalInfo: models.PersonalInfo{
			Name: "Dr. Sarah Chen",
		},
		ProfessionalIDs: models.ProfessionalIDs{
			LicenseNumber: "TX-48291",
			LicenseStatus: "Active",
			NPI:           "1234567890",
		},
		WorkHistory: models.WorkHistory{
			YearsExperience: 18,
		},
		Insurance: models.Insurance{
			MalpracticeStatus: "Active",
			CoverageAmount:    2000000,
		},
		Certifications: []models.Certification{
			{Board: "American Board of Internal Medicine", CertifiedDate: "2015-06-01"},
		},
		QualityMetrics: &models.QualityMetrics{
			QualityScore: 4.5,
			CMECredits:   110,
		},
	}
}

func TestHandler_Execute_CompliantProvider(t *testing.T) {
	handler := createTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{
		ApplicationID: "APP-001",
		Profile:       compliantProfile(),
	})
	require.NoError(t, err)

	assert.Equal(t, models.ComplianceCompliant, output.ComplianceStatus)
	assert.Equal(t, 5, output.Score)
	assert.Empty(t, output.FailedHard)
	assert.Len(t, output.HardResults, 5)
	assert.Len(t, output.SoftResults, 3)
	for _, result := range output.HardResults {
		assert.True(t, result.Passed, result.RegulationID)
	}
}

func TestHandler_Execute_HardRegulationFailures(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(p *models.ProviderProfile)
		failedID string
	}{
		{
			name:     "expired license",
			mutate:   func(p *models.ProviderProfile) { p.ProfessionalIDs.LicenseStatus = "Expired" },
			failedID: regActiveLicense,
		},
		{
			name:     "missing license number",
			mutate:   func(p *models.ProviderProfile) { p.ProfessionalIDs.LicenseNumber = "" },
			failedID: regActiveLicense,
		},
		{
			name:     "disciplinary action on record",
			mutate:   func(p *models.ProviderProfile) { p.Disclosure.DisciplinaryActions = []string{"2019 state board reprimand"} },
			failedID: regNoDisciplinary,
		},
		{
			name:     "license suspension on record",
			mutate:   func(p *models.ProviderProfile) { p.Disclosure.LicenseSuspensions = 1 },
			failedID: regNoDisciplinary,
		},
		{
			name:     "lapsed malpractice coverage",
			mutate:   func(p *models.ProviderProfile) { p.Insurance.MalpracticeStatus = "Lapsed" },
			failedID: regMalpracticeActive,
		},
		{
			name:     "insufficient coverage amount",
			mutate:   func(p *models.ProviderProfile) { p.Insurance.CoverageAmount = 500000 },
			failedID: regMalpracticeActive,
		},
		{
			name:     "no board certification",
			mutate:   func(p *models.ProviderProfile) { p.Certifications = nil },
			failedID: regBoardCertification,
		},
		{
			name:     "pending claims",
			mutate:   func(p *models.ProviderProfile) { p.Disclosure.PendingClaims = 2 },
			failedID: regCleanBackground,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := createTestHandler(t)
			profile := compliantProfile()
			tt.mutate(profile)

			output, err := handler.Execute(context.Background(), &Input{
				ApplicationID: "APP-001",
				Profile:       profile,
			})
			require.NoError(t, err)

			assert.Equal(t, models.ComplianceNonCompliant, output.ComplianceStatus)
			assert.Contains(t, output.FailedHard, tt.failedID)
		})
	}
}

func TestHandler_Execute_SoftScoring(t *testing.T) {
	tests := []struct {
		name     string
		years    int
		credits  int
		quality  float64
		expected int
	}{
		{name: "veteran high performer", years: 20, credits: 110, quality: 4.8, expected: 5},
		{name: "mid career average", years: 8, credits: 60, quality: 3.5, expected: 3},
		{name: "early career low quality", years: 1, credits: 10, quality: 0.5, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := createTestHandler(t)
			profile := compliantProfile()
			profile.WorkHistory.YearsExperience = tt.years
			profile.QualityMetrics = &models.QualityMetrics{
				QualityScore: tt.quality,
				CMECredits:   tt.credits,
			}

			output, err := handler.Execute(context.Background(), &Input{
				ApplicationID: "APP-001",
				Profile:       profile,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, output.Score)
		})
	}
}

func TestHandler_Execute_MissingQualityMetricsDefaults(t *testing.T) {
	handler := createTestHandler(t)
	profile := compliantProfile()
	profile.QualityMetrics = nil

	output, err := handler.Execute(context.Background(), &Input{
		ApplicationID: "APP-001",
		Profile:       profile,
	})
	require.NoError(t, err)

	// Experience still scores 5 at weight 0.4; missing CME and quality data
	// both default to 3 at combined weight 0.6.
	assert.Equal(t, 4, output.Score)
	assert.Equal(t, models.ComplianceCompliant, output.ComplianceStatus)
}

func TestHandler_Execute_MissingProfile(t *testing.T) {
	handler := createTestHandler(t)

	_, err := handler.Execute(context.Background(), &Input{ApplicationID: "APP-404"})
	assert.ErrorIs(t, err, ErrProviderNotFound)
}
