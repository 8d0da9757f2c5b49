package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDIsStable(t *testing.T) {
	first := SolutionUUID("ERP")
	second := SolutionUUID(" erp ")
	if first == uuid.Nil {
		t.Fatalf("expected non-nil uuid")
	}
	if first != second {
		t.Fatalf("expected normalized slugs to map to the same id, got %s and %s", first, second)
	}
}

func TestUUIDSeparatesEntityTypes(t *testing.T) {
	if SolutionUUID("finance") == CategoryUUID("finance") {
		t.Fatalf("expected solution and category ids to differ")
	}
	id := SolutionUUID("finance")
	if BlockUUID(id, 0) == BlockUUID(id, 1) {
		t.Fatalf("expected block ids to differ by index")
	}
}

func TestUUIDBlankKey(t *testing.T) {
	if UUID("  ") != uuid.Nil {
		t.Fatalf("expected nil uuid for blank key")
	}
}
