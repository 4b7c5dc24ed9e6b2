package overview

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// FilterValidator checks filter payloads arriving from the external
// filter-picker widget before they replace the store's list.
type FilterValidator interface {
	ValidateFilters(filters []PropertyFilter) error
}

// propertyFilterSchema mirrors the PropertyFilter wire shape: event filters
// carry an exact operator plus string/number values, computed filters carry
// only the generated expression key.
const propertyFilterSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["kind", "key"],
		"properties": {
			"kind": {"type": "string", "enum": ["event", "computed"]},
			"key": {"type": "string", "minLength": 1},
			"operator": {"type": "string", "enum": ["exact"]},
			"values": {
				"type": "array",
				"minItems": 1,
				"items": {"type": ["string", "number"]}
			}
		},
		"additionalProperties": false
	}
}`

// JSONSchemaFilterValidator compiles the filter schema once and validates
// incoming lists against it.
type JSONSchemaFilterValidator struct {
	once   sync.Once
	schema *jsonschema.Schema
	err    error
}

// NewJSONSchemaFilterValidator builds a validator backed by jsonschema v5.
func NewJSONSchemaFilterValidator() *JSONSchemaFilterValidator {
	return &JSONSchemaFilterValidator{}
}

// ValidateFilters ensures the provided list satisfies the filter schema and
// the one-filter-per-key invariant.
func (v *JSONSchemaFilterValidator) ValidateFilters(filters []PropertyFilter) error {
	schema, err := v.compiled()
	if err != nil {
		return err
	}
	data, err := json.Marshal(filters)
	if err != nil {
		return fmt.Errorf("overview: marshal filters: %w", err)
	}
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("overview: normalize filters: %w", err)
	}
	if payload == nil {
		payload = []any{}
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("overview: filter payload failed validation: %w", err)
	}
	seen := make(map[string]struct{}, len(filters))
	for _, f := range filters {
		if _, exists := seen[f.Key]; exists {
			return fmt.Errorf("overview: duplicate filter key %q", f.Key)
		}
		seen[f.Key] = struct{}{}
	}
	return nil
}

func (v *JSONSchemaFilterValidator) compiled() (*jsonschema.Schema, error) {
	v.once.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("filters.json", bytes.NewReader([]byte(propertyFilterSchema))); err != nil {
			v.err = fmt.Errorf("overview: load filter schema: %w", err)
			return
		}
		v.schema, v.err = compiler.Compile("filters.json")
		if v.err != nil {
			v.err = fmt.Errorf("overview: compile filter schema: %w", v.err)
		}
	})
	return v.schema, v.err
}
