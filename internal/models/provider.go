// internal/models/provider.go
package models

// Application lifecycle statuses.
const (
	StatusInitiated       = "Initiated"
	StatusInProgress      = "In Progress"
	StatusCommitteeReview = "Committee Review"
	StatusApproved        = "Approved"
	StatusDenied          = "Denied"
)

// Network impact classifications, ordered Low < Medium < High.
const (
	NetworkImpactLow    = "Low"
	NetworkImpactMedium = "Medium"
	NetworkImpactHigh   = "High"
)

// ProviderApplication is a single credentialing application as it moves
// through the onboarding pipeline. Every field except ID may be empty.
type ProviderApplication struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Specialty       string `json:"specialty"`
	Market          string `json:"market"`
	Status          string `json:"status"`
	NetworkImpact   string `json:"networkImpact"`
	WorkExperience  int    `json:"workExperience"`
	SubmissionDate  string `json:"submissionDate"`
	AssignedAnalyst string `json:"assignedAnalyst"`
}

// ProviderProfile is the full credentialing dossier collected at roster
// intake. Sections mirror the upstream credentialing packet.
type ProviderProfile struct {
	ProviderID      string           `json:"providerId"`
	PersonalInfo    PersonalInfo     `json:"personalInfo"`
	ProfessionalIDs ProfessionalIDs  `json:"professionalIds"`
	Education       Education        `json:"education"`
	Specialties     Specialties      `json:"specialties"`
	WorkHistory     WorkHistory      `json:"workHistory"`
	Insurance       Insurance        `json:"insurance"`
	Disclosure      Disclosure       `json:"disclosure"`
	Certifications  []Certification  `json:"certifications,omitempty"`
	QualityMetrics  *QualityMetrics  `json:"qualityMetrics,omitempty"`
}

type PersonalInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type ProfessionalIDs struct {
	LicenseNumber string `json:"licenseNumber"`
	LicenseStatus string `json:"licenseStatus"`
	DEANumber     string `json:"deaNumber"`
	NPI           string `json:"npi"`
	StateLicense  string `json:"stateLicense"`
}

type Education struct {
	MedicalSchool  string `json:"medicalSchool"`
	GraduationYear int    `json:"graduationYear"`
	Residency      string `json:"residency"`
	Fellowship     string `json:"fellowship,omitempty"`
}

type Specialties struct {
	Primary        string   `json:"primary"`
	Subspecialties []string `json:"subspecialties,omitempty"`
}

type WorkHistory struct {
	YearsExperience int      `json:"yearsExperience"`
	Employers       []string `json:"employers,omitempty"`
}

type Insurance struct {
	MalpracticeStatus string `json:"malpracticeStatus"`
	CoverageAmount    int    `json:"coverageAmount"`
	Carrier           string `json:"carrier"`
	ExpirationDate    string `json:"expirationDate"`
}

type Disclosure struct {
	DisciplinaryActions []string `json:"disciplinaryActions,omitempty"`
	LicenseSuspensions  int      `json:"licenseSuspensions"`
	PendingClaims       int      `json:"pendingClaims"`
}

type Certification struct {
	Board          string `json:"board"`
	CertifiedDate  string `json:"certifiedDate"`
	ExpirationDate string `json:"expirationDate"`
}

type QualityMetrics struct {
	QualityScore     float64 `json:"qualityScore"`
	PatientSatisfied float64 `json:"patientSatisfied"`
	CMECredits       int     `json:"cmeCredits"`
	RequiredCredits  int     `json:"requiredCredits"`
}
