// internal/queryengine/engine.go

// Package queryengine filters, sorts and facets provider application
// collections for the credentialing dashboard views. All operations are pure:
// they never mutate their inputs and hold no state between calls, so a single
// snapshot may be queried concurrently from any number of callers.
package queryengine

import (
	"errors"
	"sort"
	"strings"
	"time"

	"credentialing-workers/internal/models"
)

// ErrInvalidInput reports a structurally malformed request, e.g. a record
// payload that is not a collection. Per-record anomalies never raise it.
var ErrInvalidInput = errors.New("INVALID_INPUT")

// networkImpactRank orders impact labels High > Medium > Low. Unknown or
// missing labels rank 0 and sort last under the networkImpact key.
var networkImpactRank = map[string]int{
	models.NetworkImpactHigh:   3,
	models.NetworkImpactMedium: 2,
	models.NetworkImpactLow:    1,
}

// DeriveFacets returns the distinct non-empty specialty, market and status
// values present in records, preserving encounter order.
func DeriveFacets(records []models.ProviderApplication) Facets {
	facets := Facets{
		Specialties: []string{},
		Markets:     []string{},
		Statuses:    []string{},
	}

	seenSpecialty := make(map[string]bool)
	seenMarket := make(map[string]bool)
	seenStatus := make(map[string]bool)

	for _, r := range records {
		if r.Specialty != "" && !seenSpecialty[r.Specialty] {
			facets.Specialties = append(facets.Specialties, r.Specialty)
			seenSpecialty[r.Specialty] = true
		}
		if r.Market != "" && !seenMarket[r.Market] {
			facets.Markets = append(facets.Markets, r.Market)
			seenMarket[r.Market] = true
		}
		if r.Status != "" && !seenStatus[r.Status] {
			facets.Statuses = append(facets.Statuses, r.Status)
			seenStatus[r.Status] = true
		}
	}

	return facets
}

// Query applies every filter in spec conjunctively, then exactly one stable
// sort selected by spec.SortKey. The result is a new slice; relative input
// order survives everywhere the sort does not explicitly reorder.
func Query(records []models.ProviderApplication, spec Spec) []models.ProviderApplication {
	filtered := make([]models.ProviderApplication, 0, len(records))
	for _, r := range records {
		if matches(r, spec) {
			filtered = append(filtered, r)
		}
	}

	sortRecords(filtered, spec.SortKey)
	return filtered
}

func matches(r models.ProviderApplication, spec Spec) bool {
	if text := strings.ToLower(strings.TrimSpace(spec.SearchText)); text != "" {
		name := strings.ToLower(r.Name)
		id := strings.ToLower(r.ID)
		if !strings.Contains(name, text) && !strings.Contains(id, text) {
			return false
		}
	}
	if spec.Specialty != "" && r.Specialty != spec.Specialty {
		return false
	}
	if spec.Status != "" && r.Status != spec.Status {
		return false
	}
	if spec.Market != "" && r.Market != spec.Market {
		return false
	}
	if spec.AssignedToMe && r.AssignedAnalyst != spec.CurrentUser {
		return false
	}
	return true
}

func sortRecords(records []models.ProviderApplication, key SortKey) {
	switch key {
	case SortNetworkImpact:
		sort.SliceStable(records, func(i, j int) bool {
			return networkImpactRank[records[i].NetworkImpact] > networkImpactRank[records[j].NetworkImpact]
		})
	case SortWorkExperience:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].WorkExperience > records[j].WorkExperience
		})
	case SortSubmissionDate:
		sort.SliceStable(records, func(i, j int) bool {
			return parseSubmissionDate(records[i].SubmissionDate).After(parseSubmissionDate(records[j].SubmissionDate))
		})
	case SortName:
		sort.SliceStable(records, func(i, j int) bool {
			return lexLess(records[i].Name, records[j].Name)
		})
	case SortSpecialty:
		sort.SliceStable(records, func(i, j int) bool {
			return lexLess(records[i].Specialty, records[j].Specialty)
		})
	default:
		// Unrecognized or empty sort key: preserve filtered order.
	}
}

// parseSubmissionDate accepts RFC3339 or bare dates. Anything else maps to
// the zero time so malformed records sort as oldest.
func parseSubmissionDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	return time.Time{}
}

func lexLess(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}
