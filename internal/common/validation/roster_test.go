package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRosterValidator_ValidRow(t *testing.T) {
	v, err := NewRosterValidator()
	require.NoError(t, err)

	row := map[string]interface{}{
		"name":           "Dr. Sarah Chen",
		"specialty":      "Cardiology",
		"market":         "Dallas",
		"npi":            "1234567890",
		"workExperience": 12,
		"networkImpact":  "High",
	}

	assert.NoError(t, v.ValidateRow(row))
}

func TestRosterValidator_MissingRequiredFields(t *testing.T) {
	v, err := NewRosterValidator()
	require.NoError(t, err)

	row := map[string]interface{}{
		"name": "Dr. Sarah Chen",
	}

	err = v.ValidateRow(row)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "specialty")
	assert.Contains(t, err.Error(), "market")
}

func TestRosterValidator_BadNPI(t *testing.T) {
	v, err := NewRosterValidator()
	require.NoError(t, err)

	row := map[string]interface{}{
		"name":      "Dr. Sarah Chen",
		"specialty": "Cardiology",
		"market":    "Dallas",
		"npi":       "12345",
	}

	assert.Error(t, v.ValidateRow(row))
}

func TestRosterValidator_BadImpact(t *testing.T) {
	v, err := NewRosterValidator()
	require.NoError(t, err)

	row := map[string]interface{}{
		"name":          "Dr. Sarah Chen",
		"specialty":     "Cardiology",
		"market":        "Dallas",
		"networkImpact": "Critical",
	}

	assert.Error(t, v.ValidateRow(row))
}

func TestRosterValidator_RawRow(t *testing.T) {
	v, err := NewRosterValidator()
	require.NoError(t, err)

	assert.NoError(t, v.ValidateRawRow([]byte(`{"name":"Dr. A","specialty":"Oncology","market":"Austin"}`)))
	assert.Error(t, v.ValidateRawRow([]byte(`{"name":""}`)))
}
