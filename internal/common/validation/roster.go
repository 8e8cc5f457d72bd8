// Package validation checks inbound payloads against JSON Schemas before
// workers act on them.
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const rosterRowSchema = `{
  "type": "object",
  "required": ["name", "specialty", "market"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "specialty": {"type": "string", "minLength": 1},
    "market": {"type": "string", "minLength": 1},
    "npi": {"type": "string", "pattern": "^[0-9]{10}$"},
    "licenseNumber": {"type": "string"},
    "workExperience": {"type": "integer", "minimum": 0},
    "networkImpact": {"type": "string", "enum": ["Low", "Medium", "High"]},
    "submissionDate": {"type": "string"}
  }
}`

type RosterValidator struct {
	schema *gojsonschema.Schema
}

func NewRosterValidator() (*RosterValidator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(rosterRowSchema))
	if err != nil {
		return nil, fmt.Errorf("compile roster schema: %w", err)
	}
	return &RosterValidator{schema: schema}, nil
}

// ValidateRow returns nil when the row conforms to the roster schema, or an
// error listing every violation found.
func (v *RosterValidator) ValidateRow(row interface{}) error {
	result, err := v.schema.Validate(gojsonschema.NewGoLoader(row))
	if err != nil {
		return fmt.Errorf("validate roster row: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var problems []string
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return fmt.Errorf("roster row invalid: %s", strings.Join(problems, "; "))
}

// ValidateRawRow validates a row still held as raw JSON bytes.
func (v *RosterValidator) ValidateRawRow(raw []byte) error {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("validate roster row: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var problems []string
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return fmt.Errorf("roster row invalid: %s", strings.Join(problems, "; "))
}
