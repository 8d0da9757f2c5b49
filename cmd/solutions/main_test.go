package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	solutions "github.com/goliatone/go-solutions"
	"github.com/goliatone/go-solutions/internal/di"
)

func writeContent(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"erp.md":     "---\nkind: solution\nname: ERP\n---\nPlan every department.\n",
		"payroll.md": "---\nkind: solution\nname: Payroll\nparent: erp\n---\n",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func captureModule(t *testing.T) **solutions.Module {
	t.Helper()
	original := moduleBuilder
	t.Cleanup(func() { moduleBuilder = original })

	var built *solutions.Module
	moduleBuilder = func(cfg solutions.Config, opts ...di.Option) (*solutions.Module, error) {
		cfg.Logging.Provider = "none"
		module, err := original(cfg, opts...)
		built = module
		return module, err
	}
	return &built
}

func TestRunSeedImportsDirectory(t *testing.T) {
	dir := writeContent(t)
	built := captureModule(t)

	var out bytes.Buffer
	if err := run(context.Background(), []string{"seed", "-content-dir", dir}, &out); err != nil {
		t.Fatalf("run seed: %v", err)
	}
	if !strings.Contains(out.String(), "seed command executed successfully") {
		t.Fatalf("unexpected output %q", out.String())
	}

	page, err := (*built).Page(context.Background(), "erp")
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if len(page.Solution.Children) != 1 || page.Solution.Children[0].Slug != "payroll" {
		t.Fatalf("unexpected children %#v", page.Solution.Children)
	}
}

func TestRunSeedDryRunStoresNothing(t *testing.T) {
	dir := writeContent(t)
	built := captureModule(t)

	var out bytes.Buffer
	if err := run(context.Background(), []string{"seed", "-content-dir", dir, "-dry-run"}, &out); err != nil {
		t.Fatalf("run seed: %v", err)
	}
	if _, err := (*built).Page(context.Background(), "erp"); err == nil {
		t.Fatalf("expected dry run to leave storage empty")
	}
}

func TestRunRejectsUnknownCommand(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), []string{"publish"}, &out); err == nil {
		t.Fatalf("expected error for unknown command")
	}
	if !strings.Contains(out.String(), "usage: solutions") {
		t.Fatalf("expected usage output, got %q", out.String())
	}
}

func TestRunSeedRejectsBunWithoutDSN(t *testing.T) {
	captureModule(t)
	var out bytes.Buffer
	err := run(context.Background(), []string{"seed", "-storage", "bun"}, &out)
	if err == nil || !strings.Contains(err.Error(), "bootstrap module") {
		t.Fatalf("expected bootstrap error, got %v", err)
	}
}
