// internal/queryengine/engine_test.go
package queryengine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"credentialing-workers/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func sampleRecords() []models.ProviderApplication {
	return []models.ProviderApplication{
		{
			ID:              "APP-001",
			Name:            "Alice Nguyen",
			Specialty:       "Cardiology",
			Market:          "TX-N",
			Status:          models.StatusCommitteeReview,
			NetworkImpact:   models.NetworkImpactHigh,
			WorkExperience:  12,
			SubmissionDate:  "2026-03-14T09:30:00Z",
			AssignedAnalyst: "John Smith",
		},
		{
			ID:             "APP-002",
			Name:           "Bob Haynes",
			Specialty:      "Cardiology",
			Market:         "TX-S",
			Status:         models.StatusInProgress,
			NetworkImpact:  models.NetworkImpactLow,
			WorkExperience: 4,
			SubmissionDate: "2026-05-02T14:00:00Z",
		},
		{
			ID:              "APP-003",
			Name:            "Carol Diaz",
			Specialty:       "Dermatology",
			Market:          "TX-N",
			Status:          models.StatusApproved,
			NetworkImpact:   models.NetworkImpactMedium,
			WorkExperience:  9,
			SubmissionDate:  "2026-01-20T08:15:00Z",
			AssignedAnalyst: "Priya Patel",
		},
		{
			ID:             "APP-004",
			Name:           "Dan Aliyev",
			Specialty:      "Oncology",
			Market:         "OK-C",
			Status:         models.StatusInitiated,
			NetworkImpact:  models.NetworkImpactHigh,
			WorkExperience: 20,
			SubmissionDate: "2026-04-11T16:45:00Z",
		},
	}
}

func ids(records []models.ProviderApplication) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

// ==========================
// Filtering
// ==========================

func TestQuery_NoConstraints_PreservesInputOrder(t *testing.T) {
	records := sampleRecords()

	result := Query(records, Spec{})

	assert.Equal(t, ids(records), ids(result))
}

func TestQuery_FreeTextSearch(t *testing.T) {
	records := sampleRecords()

	tests := []struct {
		name       string
		searchText string
		expected   []string
	}{
		{"case-insensitive name substring", "ali", []string{"APP-001", "APP-004"}},
		{"matches id", "app-003", []string{"APP-003"}},
		{"no match", "zzz", []string{}},
		{"whitespace only is no constraint", "   ", []string{"APP-001", "APP-002", "APP-003", "APP-004"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Query(records, Spec{SearchText: tt.searchText})
			assert.Equal(t, tt.expected, ids(result))
		})
	}
}

func TestQuery_EqualityFilters(t *testing.T) {
	records := sampleRecords()

	tests := []struct {
		name     string
		spec     Spec
		expected []string
	}{
		{"specialty", Spec{Specialty: "Cardiology"}, []string{"APP-001", "APP-002"}},
		{"status", Spec{Status: models.StatusApproved}, []string{"APP-003"}},
		{"market", Spec{Market: "TX-N"}, []string{"APP-001", "APP-003"}},
		{"conjunctive", Spec{Specialty: "Cardiology", Market: "TX-N"}, []string{"APP-001"}},
		{"conjunctive empty result", Spec{Specialty: "Dermatology", Status: models.StatusDenied}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Query(records, tt.spec)
			assert.Equal(t, tt.expected, ids(result))
		})
	}
}

func TestQuery_AssignedToMe(t *testing.T) {
	records := sampleRecords()

	result := Query(records, Spec{AssignedToMe: true, CurrentUser: "John Smith"})
	assert.Equal(t, []string{"APP-001"}, ids(result))

	// Exact, case-sensitive match.
	result = Query(records, Spec{AssignedToMe: true, CurrentUser: "john smith"})
	assert.Empty(t, result)

	// Unassigned records only match the empty analyst, never a named user.
	result = Query(records, Spec{AssignedToMe: true, CurrentUser: "Nobody"})
	assert.Empty(t, result)
}

// ==========================
// Sorting
// ==========================

func TestQuery_SortNetworkImpact(t *testing.T) {
	records := sampleRecords()

	result := Query(records, Spec{SortKey: SortNetworkImpact})

	// High(APP-001, APP-004 in input order), Medium, Low.
	assert.Equal(t, []string{"APP-001", "APP-004", "APP-003", "APP-002"}, ids(result))
}

func TestQuery_SortNetworkImpact_UnknownRanksLast(t *testing.T) {
	records := []models.ProviderApplication{
		{ID: "a", NetworkImpact: ""},
		{ID: "b", NetworkImpact: models.NetworkImpactLow},
		{ID: "c", NetworkImpact: "Catastrophic"},
	}

	result := Query(records, Spec{SortKey: SortNetworkImpact})

	assert.Equal(t, []string{"b", "a", "c"}, ids(result))
}

func TestQuery_SortWorkExperience_MissingTreatedAsLowest(t *testing.T) {
	records := []models.ProviderApplication{
		{ID: "p2", Name: "Bob"},
		{ID: "p1", Name: "Alice", WorkExperience: 10},
	}

	result := Query(records, Spec{SortKey: SortWorkExperience})

	assert.Equal(t, []string{"p1", "p2"}, ids(result))
}

func TestQuery_SortSubmissionDate(t *testing.T) {
	records := []models.ProviderApplication{
		{ID: "mid", SubmissionDate: "2026-03-01T00:00:00Z"},
		{ID: "bad", SubmissionDate: "not-a-date"},
		{ID: "new", SubmissionDate: "2026-06-01T00:00:00Z"},
		{ID: "bare", SubmissionDate: "2026-05-10"},
	}

	result := Query(records, Spec{SortKey: SortSubmissionDate})

	// Most recent first; malformed dates sort as oldest.
	assert.Equal(t, []string{"new", "bare", "mid", "bad"}, ids(result))
}

func TestQuery_SortName_CaseInsensitiveAscending(t *testing.T) {
	records := []models.ProviderApplication{
		{ID: "1", Name: "delgado"},
		{ID: "2", Name: "Adams"},
		{ID: "3", Name: "baker"},
	}

	result := Query(records, Spec{SortKey: SortName})

	assert.Equal(t, []string{"2", "3", "1"}, ids(result))
}

func TestQuery_SortSpecialtyAscending(t *testing.T) {
	records := sampleRecords()

	result := Query(records, Spec{SortKey: SortSpecialty})

	assert.Equal(t, []string{"APP-001", "APP-002", "APP-003", "APP-004"}, ids(result))
}

func TestQuery_UnrecognizedSortKey_NoReorder(t *testing.T) {
	records := sampleRecords()

	result := Query(records, Spec{SortKey: "riskScore"})

	assert.Equal(t, ids(records), ids(result))
}

func TestQuery_SortIsStable(t *testing.T) {
	records := []models.ProviderApplication{
		{ID: "first", NetworkImpact: models.NetworkImpactHigh, WorkExperience: 5},
		{ID: "second", NetworkImpact: models.NetworkImpactHigh, WorkExperience: 5},
		{ID: "third", NetworkImpact: models.NetworkImpactHigh, WorkExperience: 5},
	}

	for _, key := range []SortKey{SortNetworkImpact, SortWorkExperience, SortSubmissionDate} {
		result := Query(records, Spec{SortKey: key})
		assert.Equal(t, []string{"first", "second", "third"}, ids(result), "sortKey=%s", key)
	}
}

// ==========================
// Properties
// ==========================

func TestQuery_ResultIsSubsetOfInput(t *testing.T) {
	records := sampleRecords()
	byID := make(map[string]models.ProviderApplication)
	for _, r := range records {
		byID[r.ID] = r
	}

	result := Query(records, Spec{SearchText: "a", SortKey: SortWorkExperience})

	seen := make(map[string]bool)
	for _, r := range result {
		original, exists := byID[r.ID]
		assert.True(t, exists, "fabricated record %s", r.ID)
		assert.Equal(t, original, r)
		assert.False(t, seen[r.ID], "duplicated record %s", r.ID)
		seen[r.ID] = true
	}
}

func TestQuery_FilteringIsIdempotent(t *testing.T) {
	records := sampleRecords()
	spec := Spec{Specialty: "Cardiology", SortKey: SortNetworkImpact}

	once := Query(records, spec)
	twice := Query(once, spec)

	assert.Equal(t, once, twice)
}

func TestQuery_DoesNotMutateInput(t *testing.T) {
	records := sampleRecords()
	snapshot := make([]models.ProviderApplication, len(records))
	copy(snapshot, records)

	Query(records, Spec{SearchText: "a", SortKey: SortName})
	DeriveFacets(records)

	assert.Equal(t, snapshot, records)
}

// ==========================
// Facets
// ==========================

func TestDeriveFacets_EncounterOrder(t *testing.T) {
	facets := DeriveFacets(sampleRecords())

	assert.Equal(t, []string{"Cardiology", "Dermatology", "Oncology"}, facets.Specialties)
	assert.Equal(t, []string{"TX-N", "TX-S", "OK-C"}, facets.Markets)
	assert.Equal(t, []string{
		models.StatusCommitteeReview,
		models.StatusInProgress,
		models.StatusApproved,
		models.StatusInitiated,
	}, facets.Statuses)
}

func TestDeriveFacets_SkipsEmptyValues(t *testing.T) {
	records := []models.ProviderApplication{
		{ID: "a", Specialty: "Cardiology"},
		{ID: "b", Market: "TX-N"},
		{ID: "c"},
	}

	facets := DeriveFacets(records)

	assert.Equal(t, []string{"Cardiology"}, facets.Specialties)
	assert.Equal(t, []string{"TX-N"}, facets.Markets)
	assert.Empty(t, facets.Statuses)
}

func TestDeriveFacets_EmptyInput(t *testing.T) {
	facets := DeriveFacets(nil)

	assert.Empty(t, facets.Specialties)
	assert.Empty(t, facets.Markets)
	assert.Empty(t, facets.Statuses)
	assert.NotNil(t, facets.Specialties)
}

// ==========================
// Spec examples
// ==========================

func TestQuery_SpecialtyFilterWithImpactSort(t *testing.T) {
	records := []models.ProviderApplication{
		{ID: "p1", Name: "Alice", Specialty: "Cardiology", NetworkImpact: models.NetworkImpactHigh},
		{ID: "p2", Name: "Bob", Specialty: "Cardiology", NetworkImpact: models.NetworkImpactLow},
	}

	result := Query(records, Spec{Specialty: "Cardiology", SortKey: SortNetworkImpact})

	assert.Equal(t, []string{"p1", "p2"}, ids(result))
}

func TestQuery_AssignedFilterSkipsUnassigned(t *testing.T) {
	records := []models.ProviderApplication{
		{ID: "p1", Name: "Alice", AssignedAnalyst: "John Smith"},
		{ID: "p2", Name: "Bob", AssignedAnalyst: ""},
	}

	result := Query(records, Spec{AssignedToMe: true, CurrentUser: "John Smith"})

	assert.Equal(t, []string{"p1"}, ids(result))
}

func TestParseSubmissionDate_Formats(t *testing.T) {
	assert.Equal(t, time.Time{}, parseSubmissionDate(""))
	assert.Equal(t, time.Time{}, parseSubmissionDate("03/14/2026"))
	assert.Equal(t, 2026, parseSubmissionDate("2026-03-14").Year())
	assert.Equal(t, 2026, parseSubmissionDate("2026-03-14T09:30:00Z").Year())
}
