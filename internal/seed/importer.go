package seed

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/goliatone/go-solutions/internal/categories"
	"github.com/goliatone/go-solutions/internal/hierarchy"
	"github.com/goliatone/go-solutions/internal/logging"
	"github.com/goliatone/go-solutions/internal/solutions"
	"github.com/goliatone/go-solutions/pkg/interfaces"
)

// Report summarises an import run.
type Report struct {
	SolutionsCreated  int      `json:"solutionsCreated"`
	SolutionsUpdated  int      `json:"solutionsUpdated"`
	CategoriesCreated int      `json:"categoriesCreated"`
	CategoriesUpdated int      `json:"categoriesUpdated"`
	Linked            int      `json:"linked"`
	Skipped           []string `json:"skipped,omitempty"`
}

// Importer upserts solutions and categories described by Markdown files.
// Identifiers are derived from slugs so repeated imports update in place.
type Importer struct {
	solutions  solutions.Service
	categories categories.Service
	hierarchy  *hierarchy.Manager
	logger     interfaces.Logger
	pattern    string
}

type Option func(*Importer)

// WithCategories enables category documents. Without it they are skipped.
func WithCategories(svc categories.Service) Option {
	return func(i *Importer) {
		i.categories = svc
	}
}

// WithHierarchy enables parent links declared with the parent key.
func WithHierarchy(manager *hierarchy.Manager) Option {
	return func(i *Importer) {
		i.hierarchy = manager
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(i *Importer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithPattern limits discovered files to names matching the glob.
func WithPattern(pattern string) Option {
	return func(i *Importer) {
		if strings.TrimSpace(pattern) != "" {
			i.pattern = pattern
		}
	}
}

func NewImporter(svc solutions.Service, opts ...Option) *Importer {
	if svc == nil {
		panic(ErrSolutionServiceRequired)
	}
	i := &Importer{
		solutions: svc,
		logger:    logging.SeedLogger(nil),
		pattern:   "*.md",
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Load parses every matching file under root in lexical order.
func (i *Importer) Load(ctx context.Context, fsys fs.FS, root string) ([]*Document, error) {
	if strings.TrimSpace(root) == "" {
		root = "."
	}
	var docs []*Document
	err := fs.WalkDir(fsys, root, func(name string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if ok, _ := path.Match(i.pattern, d.Name()); !ok {
			return nil
		}
		source, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("seed read %s: %w", name, err)
		}
		doc, err := ParseDocument(name, source)
		if err != nil {
			return fmt.Errorf("seed %s: %w", name, err)
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// Import loads root and applies every document. Solutions are saved before
// any parent link is attached so files may reference parents declared later.
func (i *Importer) Import(ctx context.Context, fsys fs.FS, root string) (Report, error) {
	docs, err := i.Load(ctx, fsys, root)
	if err != nil {
		return Report{}, err
	}
	return i.Apply(ctx, docs)
}

// Apply upserts docs and then links children to their parents.
func (i *Importer) Apply(ctx context.Context, docs []*Document) (Report, error) {
	var report Report

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		switch doc.Kind {
		case KindSolution:
			created, err := i.upsertSolution(ctx, doc)
			if err != nil {
				return report, fmt.Errorf("seed %s: %w", doc.Path, err)
			}
			if created {
				report.SolutionsCreated++
			} else {
				report.SolutionsUpdated++
			}
		case KindCategory:
			if i.categories == nil {
				i.logger.Warn("seed.category.skipped", "path", doc.Path, "slug", doc.Slug)
				report.Skipped = append(report.Skipped, doc.Path)
				continue
			}
			created, err := i.upsertCategory(ctx, doc)
			if err != nil {
				return report, fmt.Errorf("seed %s: %w", doc.Path, err)
			}
			if created {
				report.CategoriesCreated++
			} else {
				report.CategoriesUpdated++
			}
		}
	}

	for _, doc := range docs {
		if doc.Kind != KindSolution || doc.Parent == "" {
			continue
		}
		if err := i.link(ctx, doc); err != nil {
			return report, fmt.Errorf("seed %s: %w", doc.Path, err)
		}
		report.Linked++
	}

	i.logger.Info("seed.import.completed",
		"solutions_created", report.SolutionsCreated,
		"solutions_updated", report.SolutionsUpdated,
		"categories_created", report.CategoriesCreated,
		"categories_updated", report.CategoriesUpdated,
		"linked", report.Linked,
	)
	return report, nil
}

func (i *Importer) upsertSolution(ctx context.Context, doc *Document) (bool, error) {
	draft := doc.Solution.Clone()
	existing, err := i.solutions.Get(ctx, draft.ID)
	switch {
	case err == nil:
		// Links are owned by the hierarchy, not by the file.
		draft.Children = existing.Children
		draft.Version = 0
	case solutions.IsNotFound(err):
	default:
		return false, err
	}

	saved, err := i.solutions.Save(ctx, draft)
	if err != nil {
		return false, err
	}
	i.logger.Debug("seed.solution.saved", "solution_id", saved.ID.String(), "slug", saved.Slug)
	return existing == nil, nil
}

func (i *Importer) upsertCategory(ctx context.Context, doc *Document) (bool, error) {
	input := *doc.Category
	_, err := i.categories.Get(ctx, input.ID)
	switch {
	case err == nil:
		items := input.Items
		_, err = i.categories.Update(ctx, categories.UpdateCategoryInput{
			ID:          input.ID,
			Title:       &input.Title,
			Slug:        &input.Slug,
			ImageURL:    &input.ImageURL,
			Description: &input.Description,
			Items:       &items,
		})
		return false, err
	case categories.IsNotFound(err):
		_, err = i.categories.Create(ctx, input)
		return err == nil, err
	default:
		return false, err
	}
}

func (i *Importer) link(ctx context.Context, doc *Document) error {
	if i.hierarchy == nil {
		return ErrHierarchyRequired
	}
	parent, err := i.solutions.GetBySlug(ctx, doc.Parent)
	if err != nil {
		if solutions.IsNotFound(err) {
			return fmt.Errorf("%w: %s", ErrParentNotFound, doc.Parent)
		}
		return err
	}
	return i.hierarchy.AttachChild(ctx, parent.ID, doc.Solution.ID)
}
