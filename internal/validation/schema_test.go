package validation

import (
	"errors"
	"testing"
)

func testSchema() *Schema {
	return NewSchema("hero", map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{"type": "string"},
		},
		"additionalProperties": false,
	})
}

func TestSchemaValidateAcceptsMatchingPayload(t *testing.T) {
	if err := testSchema().ValidateJSON([]byte(`{"title":"ERP Suite"}`)); err != nil {
		t.Fatalf("expected payload to validate, got %v", err)
	}
}

func TestSchemaValidateReportsIssues(t *testing.T) {
	err := testSchema().ValidateJSON([]byte(`{"title":3,"extra":true}`))
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
	if issues := Issues(err); len(issues) == 0 {
		t.Fatalf("expected issues, got none")
	}
}

func TestSchemaValidateRejectsMalformedJSON(t *testing.T) {
	err := testSchema().ValidateJSON([]byte(`{"title":`))
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
}

func TestSchemaCompileFailure(t *testing.T) {
	broken := NewSchema("broken", map[string]any{"type": 12})
	if err := broken.Compile(); !errors.Is(err, ErrSchemaInvalid) {
		t.Fatalf("expected ErrSchemaInvalid, got %v", err)
	}
}
