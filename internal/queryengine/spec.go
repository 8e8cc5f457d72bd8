// internal/queryengine/spec.go
package queryengine

// SortKey selects the single ordering applied after filtering.
type SortKey string

const (
	SortNetworkImpact  SortKey = "networkImpact"
	SortWorkExperience SortKey = "workExperience"
	SortSubmissionDate SortKey = "submissionDate"
	SortName           SortKey = "name"
	SortSpecialty      SortKey = "specialty"
)

// Spec is the combined filter and sort request evaluated by Query. Every
// filter field is optional; the zero value matches the whole collection in
// its original order.
type Spec struct {
	SearchText   string  `json:"searchText,omitempty"`
	Specialty    string  `json:"specialty,omitempty"`
	Status       string  `json:"status,omitempty"`
	Market       string  `json:"market,omitempty"`
	AssignedToMe bool    `json:"assignedToMe,omitempty"`
	SortKey      SortKey `json:"sortKey,omitempty"`
	CurrentUser  string  `json:"currentUser,omitempty"`
}

// Facets holds the distinct non-empty values observed per filterable field,
// in first-seen order, for populating selection controls.
type Facets struct {
	Specialties []string `json:"specialties"`
	Markets     []string `json:"markets"`
	Statuses    []string `json:"statuses"`
}
