package seedcmd

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-solutions/internal/commands"
	"github.com/goliatone/go-solutions/internal/seed"
	"github.com/goliatone/go-solutions/internal/solutions"
)

const solutionDoc = `---
kind: solution
name: Payroll
---
Pay people on time.
`

func TestImportSeedHandlerStoresDocuments(t *testing.T) {
	ctx := context.Background()
	svc := solutions.NewService(solutions.NewMemorySolutionRepository())
	fsys := fstest.MapFS{"seed/payroll.md": {Data: []byte(solutionDoc)}}

	handler := NewImportSeedHandler(seed.NewImporter(svc), fsys, nil)
	if err := handler.Execute(ctx, ImportSeedCommand{Directory: "seed"}); err != nil {
		t.Fatalf("import: %v", err)
	}
	stored, err := svc.GetBySlug(ctx, "payroll")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Description != "Pay people on time." {
		t.Fatalf("unexpected description %q", stored.Description)
	}
}

func TestImportSeedHandlerDryRunStoresNothing(t *testing.T) {
	ctx := context.Background()
	svc := solutions.NewService(solutions.NewMemorySolutionRepository())
	fsys := fstest.MapFS{"seed/payroll.md": {Data: []byte(solutionDoc)}}

	handler := NewImportSeedHandler(seed.NewImporter(svc), fsys, nil)
	if err := handler.Execute(ctx, ImportSeedCommand{Directory: "seed", DryRun: true}); err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if _, err := svc.GetBySlug(ctx, "payroll"); !solutions.IsNotFound(err) {
		t.Fatalf("expected nothing stored, got %v", err)
	}
}

func TestImportSeedHandlerValidatesAndGates(t *testing.T) {
	ctx := context.Background()

	handler := NewImportSeedHandler(nil, nil, nil)
	err := handler.Execute(ctx, ImportSeedCommand{Directory: " "})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) || commands.TextCode(err) != commands.CodeValidation {
		t.Fatalf("expected validation failure, got %v", err)
	}
	if err := handler.Execute(ctx, ImportSeedCommand{Directory: "seed"}); !errors.Is(err, ErrSeedDisabled) {
		t.Fatalf("expected ErrSeedDisabled, got %v", err)
	}
}
