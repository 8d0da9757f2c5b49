package categories

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewCategoryRepository creates a generic repository for category records.
func NewCategoryRepository(db *bun.DB) repository.Repository[*Category] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Category]{
		NewRecord: func() *Category { return &Category{} },
		GetID: func(c *Category) uuid.UUID {
			return c.ID
		},
		SetID: func(c *Category, id uuid.UUID) {
			c.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(c *Category) string {
			return c.Slug
		},
	})
}

// BunCategoryRepository implements CategoryRepository with optional caching.
type BunCategoryRepository struct {
	repo         repository.Repository[*Category]
	cacheService cache.CacheService
	cachePrefix  string
}

// NewBunCategoryRepository creates a category repository without caching.
func NewBunCategoryRepository(db *bun.DB) *BunCategoryRepository {
	return NewBunCategoryRepositoryWithCache(db, nil, nil)
}

// NewBunCategoryRepositoryWithCache creates a category repository with caching support.
func NewBunCategoryRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunCategoryRepository {
	base := NewCategoryRepository(db)
	if cacheService == nil || serializer == nil {
		return &BunCategoryRepository{repo: base}
	}
	return &BunCategoryRepository{
		repo:         repositorycache.New(base, cacheService, serializer),
		cacheService: cacheService,
		cachePrefix:  "category" + cache.KeySeparator,
	}
}

// InvalidateCache drops every cached category read.
func (r *BunCategoryRepository) InvalidateCache(ctx context.Context) error {
	if r.cacheService == nil {
		return nil
	}
	return r.cacheService.DeleteByPrefix(ctx, r.cachePrefix)
}

func (r *BunCategoryRepository) Create(ctx context.Context, category *Category) (*Category, error) {
	record := cloneCategory(category)
	if err := r.ensureSlugAvailable(ctx, record.ID, record.Slug); err != nil {
		return nil, err
	}
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("category repository error: %w", err)
	}
	return created, nil
}

func (r *BunCategoryRepository) Update(ctx context.Context, category *Category) (*Category, error) {
	record := cloneCategory(category)
	if _, err := r.GetByID(ctx, record.ID); err != nil {
		return nil, err
	}
	if err := r.ensureSlugAvailable(ctx, record.ID, record.Slug); err != nil {
		return nil, err
	}
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"title",
			"slug",
			"image_url",
			"description",
			"solutions",
			"updated_at",
		),
	)
	if err != nil {
		return nil, fmt.Errorf("category repository error: %w", err)
	}
	return updated, nil
}

func (r *BunCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

func (r *BunCategoryRepository) GetBySlug(ctx context.Context, slug string) (*Category, error) {
	key := strings.TrimSpace(slug)
	record, err := r.repo.GetByIdentifier(ctx, key)
	if err != nil {
		return nil, mapRepositoryError(err, key)
	}
	return record, nil
}

func (r *BunCategoryRepository) List(ctx context.Context) ([]*Category, error) {
	records, _, err := r.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("category repository error: %w", err)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Title < records[j].Title
	})
	return records, nil
}

func (r *BunCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return r.repo.Delete(ctx, &Category{ID: id})
}

func (r *BunCategoryRepository) ensureSlugAvailable(ctx context.Context, id uuid.UUID, slug string) error {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.slug = ?", slug).Where("?TableAlias.id <> ?", id)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return fmt.Errorf("category repository error: %w", err)
	}
	if len(records) > 0 {
		return ErrSlugExists
	}
	return nil
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: "category", Key: key}
	}
	return fmt.Errorf("category repository error: %w", err)
}
