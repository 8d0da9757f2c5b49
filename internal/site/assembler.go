package site

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-solutions/internal/categories"
	"github.com/goliatone/go-solutions/internal/logging"
	"github.com/goliatone/go-solutions/internal/render"
	"github.com/goliatone/go-solutions/internal/solutions"
	"github.com/goliatone/go-solutions/pkg/interfaces"
	"golang.org/x/sync/errgroup"
)

var (
	ErrPageNotFound     = errors.New("site: page not found")
	ErrSolutionsMissing = errors.New("site: solution service required")
)

// DefaultChildFetchLimit bounds concurrent child lookups per page.
const DefaultChildFetchLimit = 8

// PageKind says which content model a slug resolved to.
type PageKind string

const (
	PageSolution PageKind = "solution"
	PageCategory PageKind = "category"
)

// SolutionRead is the public read shape of a Solution: the record plus its
// children resolved to summaries.
type SolutionRead struct {
	Solution *solutions.Solution `json:"solution"`
	Children []solutions.Summary `json:"children"`
}

// Page is an assembled public page. Exactly one of Solution or Category is
// set, matching Kind.
type Page struct {
	Kind        PageKind             `json:"kind"`
	Slug        string               `json:"slug"`
	Solution    *SolutionRead        `json:"solution,omitempty"`
	Nodes       []render.Node        `json:"nodes,omitempty"`
	Diagnostics []render.Diagnostic  `json:"diagnostics,omitempty"`
	Category    *render.CategoryPage `json:"category,omitempty"`
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithCategories enables category page resolution.
func WithCategories(svc categories.Service) Option {
	return func(a *Assembler) {
		a.categories = svc
	}
}

// WithRenderer overrides the block renderer.
func WithRenderer(r *render.Renderer) Option {
	return func(a *Assembler) {
		if r != nil {
			a.renderer = r
		}
	}
}

// WithCategoryRenderer overrides the category renderer.
func WithCategoryRenderer(r *render.CategoryRenderer) Option {
	return func(a *Assembler) {
		if r != nil {
			a.categoryRenderer = r
		}
	}
}

// WithChildFetchLimit bounds concurrent child lookups. Values < 1 are ignored.
func WithChildFetchLimit(limit int) Option {
	return func(a *Assembler) {
		if limit > 0 {
			a.fetchLimit = limit
		}
	}
}

// WithLogger overrides the assembler logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(a *Assembler) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// Assembler turns stored Solutions and Categories into public pages.
type Assembler struct {
	solutions        solutions.Service
	categories       categories.Service
	renderer         *render.Renderer
	categoryRenderer *render.CategoryRenderer
	fetchLimit       int
	logger           interfaces.Logger
}

// NewAssembler constructs an assembler over the solution service.
func NewAssembler(svc solutions.Service, opts ...Option) *Assembler {
	if svc == nil {
		panic(ErrSolutionsMissing)
	}
	a := &Assembler{
		solutions:  svc,
		fetchLimit: DefaultChildFetchLimit,
		logger:     logging.RenderLogger(nil),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.renderer == nil {
		a.renderer = render.New(render.WithLogger(a.logger))
	}
	if a.categoryRenderer == nil {
		a.categoryRenderer = render.NewCategoryRenderer()
	}
	return a
}

// Resolve assembles the page at slug. Solution slugs win over category slugs.
func (a *Assembler) Resolve(ctx context.Context, slug string) (*Page, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrPageNotFound
	}

	read, err := a.Solution(ctx, slug)
	switch {
	case err == nil:
		return a.solutionPage(ctx, slug, read), nil
	case !solutions.IsNotFound(err):
		return nil, err
	}

	if a.categories == nil {
		return nil, ErrPageNotFound
	}
	category, err := a.categories.GetBySlug(ctx, slug)
	if err != nil {
		if categories.IsNotFound(err) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	rendered, err := a.categoryRenderer.Render(category)
	if err != nil {
		return nil, err
	}
	return &Page{Kind: PageCategory, Slug: slug, Category: rendered}, nil
}

func (a *Assembler) solutionPage(ctx context.Context, slug string, read *SolutionRead) *Page {
	list := render.SortServicesByRank(read.Solution.Blocks)
	result := a.renderer.Render(render.NewContext(ctx, read.Solution.ID, read.Children), list)
	return &Page{
		Kind:        PageSolution,
		Slug:        slug,
		Solution:    read,
		Nodes:       result.Nodes,
		Diagnostics: result.Diagnostics,
	}
}

// Solution loads a Solution by slug and resolves its children to summaries
// in stored order. Dangling child references are logged and dropped.
func (a *Assembler) Solution(ctx context.Context, slug string) (*SolutionRead, error) {
	record, err := a.solutions.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	children, err := a.children(ctx, record)
	if err != nil {
		return nil, err
	}
	return &SolutionRead{Solution: record, Children: children}, nil
}

func (a *Assembler) children(ctx context.Context, record *solutions.Solution) ([]solutions.Summary, error) {
	found := make([]*solutions.Summary, len(record.Children))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.fetchLimit)
	for i, id := range record.Children {
		g.Go(func() error {
			child, err := a.solutions.Get(gctx, id)
			if err != nil {
				if solutions.IsNotFound(err) {
					logging.WithLink(a.logger, record.ID, id).Warn("site.child.missing")
					return nil
				}
				return err
			}
			summary := child.Summary()
			found[i] = &summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summaries := make([]solutions.Summary, 0, len(found))
	for _, summary := range found {
		if summary != nil {
			summaries = append(summaries, *summary)
		}
	}
	return summaries, nil
}

// Navigation lists primary Solutions ordered by rank.
func (a *Assembler) Navigation(ctx context.Context) ([]solutions.Summary, error) {
	records, err := a.solutions.List(ctx, solutions.Filter{PrimaryOnly: true})
	if err != nil {
		return nil, err
	}
	summaries := make([]solutions.Summary, 0, len(records))
	for _, record := range records {
		summaries = append(summaries, record.Summary())
	}
	return render.SortSummariesByRank(summaries), nil
}

// Category loads a category page by slug.
func (a *Assembler) Category(ctx context.Context, slug string) (*render.CategoryPage, error) {
	if a.categories == nil {
		return nil, ErrPageNotFound
	}
	category, err := a.categories.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return a.categoryRenderer.Render(category)
}
