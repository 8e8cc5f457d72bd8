package verifyprovider

import (
	"fmt"

	"credentialing-workers/internal/models"
)

// Hard regulations are pass/fail gates; a single failure makes the provider
// non-compliant. Soft regulations produce a weighted 1-5 score.
const (
	regActiveLicense      = "HR001"
	regNoDisciplinary     = "HR002"
	regMalpracticeActive  = "HR003"
	regBoardCertification = "HR004"
	regCleanBackground    = "HR005"

	regYearsExperience     = "SR001"
	regContinuingEducation = "SR002"
	regQualityMetrics      = "SR003"
)

type hardCheck struct {
	id    string
	name  string
	check func(cfg *Config, p *models.ProviderProfile) (bool, string)
}

type softCheck struct {
	id     string
	name   string
	weight float64
	score  func(p *models.ProviderProfile) (int, string)
}

var hardChecks = []hardCheck{
	{
		id:   regActiveLicense,
		name: "Active Medical License",
		check: func(_ *Config, p *models.ProviderProfile) (bool, string) {
			if p.ProfessionalIDs.LicenseNumber == "" {
				return false, "no license number on file"
			}
			if p.ProfessionalIDs.LicenseStatus != "Active" {
				return false, fmt.Sprintf("license status is %q, expected Active", p.ProfessionalIDs.LicenseStatus)
			}
			return true, "license on file and active"
		},
	},
	{
		id:   regNoDisciplinary,
		name: "No Disciplinary Actions",
		check: func(_ *Config, p *models.ProviderProfile) (bool, string) {
			if n := len(p.Disclosure.DisciplinaryActions); n > 0 {
				return false, fmt.Sprintf("%d disciplinary action(s) disclosed", n)
			}
			if p.Disclosure.LicenseSuspensions > 0 {
				return false, fmt.Sprintf("%d license suspension(s) disclosed", p.Disclosure.LicenseSuspensions)
			}
			return true, "no disciplinary history disclosed"
		},
	},
	{
		id:   regMalpracticeActive,
		name: "Active Malpractice Insurance",
		check: func(cfg *Config, p *models.ProviderProfile) (bool, string) {
			if p.Insurance.MalpracticeStatus != "Active" {
				return false, fmt.Sprintf("malpractice status is %q, expected Active", p.Insurance.MalpracticeStatus)
			}
			if p.Insurance.CoverageAmount < cfg.MinCoverageAmount {
				return false, fmt.Sprintf("coverage %d below required %d", p.Insurance.CoverageAmount, cfg.MinCoverageAmount)
			}
			return true, "malpractice coverage active and sufficient"
		},
	},
	{
		id:   regBoardCertification,
		name: "Board Certification",
		check: func(_ *Config, p *models.ProviderProfile) (bool, string) {
			if len(p.Certifications) == 0 {
				return false, "no board certifications on file"
			}
			return true, fmt.Sprintf("%d board certification(s) on file", len(p.Certifications))
		},
	},
	{
		id:   regCleanBackground,
		name: "Clean Background",
		check: func(_ *Config, p *models.ProviderProfile) (bool, string) {
			if p.Disclosure.PendingClaims > 0 {
				return false, fmt.Sprintf("%d pending claim(s) disclosed", p.Disclosure.PendingClaims)
			}
			return true, "no pending claims disclosed"
		},
	},
}

var softChecks = []softCheck{
	{
		id:     regYearsExperience,
		name:   "Years of Experience",
		weight: 0.4,
		score: func(p *models.ProviderProfile) (int, string) {
			years := p.WorkHistory.YearsExperience
			var score int
			switch {
			case years >= 16:
				score = 5
			case years >= 11:
				score = 4
			case years >= 6:
				score = 3
			case years >= 3:
				score = 2
			default:
				score = 1
			}
			return score, fmt.Sprintf("%d years of practice", years)
		},
	},
	{
		id:     regContinuingEducation,
		name:   "Continuing Education",
		weight: 0.3,
		score: func(p *models.ProviderProfile) (int, string) {
			if p.QualityMetrics == nil {
				return 3, "no CME data on file, default score applied"
			}
			credits := p.QualityMetrics.CMECredits
			var score int
			switch {
			case credits >= 100:
				score = 5
			case credits >= 76:
				score = 4
			case credits >= 51:
				score = 3
			case credits >= 26:
				score = 2
			default:
				score = 1
			}
			return score, fmt.Sprintf("%d CME credits earned", credits)
		},
	},
	{
		id:     regQualityMetrics,
		name:   "Quality Metrics",
		weight: 0.3,
		score: func(p *models.ProviderProfile) (int, string) {
			if p.QualityMetrics == nil {
				return 3, "no quality data on file, default score applied"
			}
			quality := p.QualityMetrics.QualityScore
			var score int
			switch {
			case quality >= 4.1:
				score = 5
			case quality >= 3.1:
				score = 4
			case quality >= 2.1:
				score = 3
			case quality >= 1.1:
				score = 2
			default:
				score = 1
			}
			return score, fmt.Sprintf("quality score %.1f of 5", quality)
		},
	},
}
