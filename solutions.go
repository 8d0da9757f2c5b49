package solutions

import (
	"context"
	"net/http"

	"github.com/goliatone/go-solutions/internal/blocks"
	"github.com/goliatone/go-solutions/internal/categories"
	"github.com/goliatone/go-solutions/internal/di"
	"github.com/goliatone/go-solutions/internal/editor"
	"github.com/goliatone/go-solutions/internal/hierarchy"
	"github.com/goliatone/go-solutions/internal/render"
	"github.com/goliatone/go-solutions/internal/seed"
	"github.com/goliatone/go-solutions/internal/site"
	store "github.com/goliatone/go-solutions/internal/solutions"
)

// Solution is a product page with an ordered block body and child links.
type Solution = store.Solution

// Summary is the public shape of a resolved child.
type Summary = store.Summary

// Block is one addressable unit of a solution body.
type Block = blocks.Block

// BlockList is the ordered body of a solution.
type BlockList = blocks.List

// Category groups solution items under a titled landing page.
type Category = categories.Category

// SolutionService exports the solution persistence contract.
type SolutionService = store.Service

// CategoryService exports the category contract.
type CategoryService = categories.Service

// HierarchyManager links children to parents.
type HierarchyManager = *hierarchy.Manager

// Editor is an in-memory editing session over a draft.
type Editor = *editor.Editor

// Page is an assembled public page.
type Page = site.Page

// SeedReport summarises a Markdown import.
type SeedReport = seed.Report

// RenderResult is the output of rendering a block list.
type RenderResult = render.Result

// Module represents the top level solutions runtime.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and optional DI
// overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Solutions returns the configured solution service.
func (m *Module) Solutions() SolutionService {
	return m.container.SolutionService()
}

// Categories returns the configured category service.
func (m *Module) Categories() CategoryService {
	return m.container.CategoryService()
}

// Hierarchy returns the parent/child manager.
func (m *Module) Hierarchy() HierarchyManager {
	return m.container.HierarchyManager()
}

// Edit opens an editing session over draft. The draft is not modified until
// the session's result is saved.
func (m *Module) Edit(draft *Solution) Editor {
	return m.container.NewEditor(draft)
}

// Render walks the solution's blocks with the configured renderer. Children
// feed service tiles when the stored services list is empty.
func (m *Module) Render(ctx context.Context, solution *Solution, children []Summary) RenderResult {
	if solution == nil {
		return RenderResult{Nodes: []render.Node{}}
	}
	return m.container.Renderer().Render(render.NewContext(ctx, solution.ID, children), solution.Blocks)
}

// Page resolves slug to a solution or category page.
func (m *Module) Page(ctx context.Context, slug string) (*Page, error) {
	return m.container.Assembler().Resolve(ctx, slug)
}

// Seed imports the configured seed directory.
func (m *Module) Seed(ctx context.Context) (SeedReport, error) {
	return m.container.Seed(ctx)
}

// Handler returns the admin and public HTTP APIs on one mux.
func (m *Module) Handler() (http.Handler, error) {
	return m.container.HTTPHandler()
}

// Close releases resources the module opened.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
