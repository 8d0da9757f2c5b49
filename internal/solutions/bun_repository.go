package solutions

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/goliatone/go-solutions/internal/logging"
	"github.com/goliatone/go-solutions/pkg/interfaces"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const solutionNamespace = "solution"

// BunSolutionRepository implements SolutionRepository with optional caching.
//
// Slug and list reads go through the cache when one is configured. GetByID
// always reads the database so compare-and-swap loops see the current
// version.
type BunSolutionRepository struct {
	db           *bun.DB
	base         repository.Repository[*Solution]
	repo         repository.Repository[*Solution]
	cacheService cache.CacheService
	cachePrefix  string
	now          func() time.Time
	logger       interfaces.Logger
}

// BunRepositoryOption configures a BunSolutionRepository.
type BunRepositoryOption func(*BunSolutionRepository)

// WithRepositoryLogger sets the logger that records cache invalidation
// failures after committed writes.
func WithRepositoryLogger(logger interfaces.Logger) BunRepositoryOption {
	return func(r *BunSolutionRepository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewBunSolutionRepository creates a solution repository without caching.
func NewBunSolutionRepository(db *bun.DB) *BunSolutionRepository {
	return NewBunSolutionRepositoryWithCache(db, nil, nil)
}

// NewBunSolutionRepositoryWithCache creates a solution repository with caching support.
func NewBunSolutionRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer, opts ...BunRepositoryOption) *BunSolutionRepository {
	base := NewSolutionRepository(db)
	repo := base
	var svc cache.CacheService
	if cacheService != nil && serializer != nil {
		repo = repositorycache.New(base, cacheService, serializer)
		svc = cacheService
	}
	prefix := ""
	if svc != nil {
		prefix = solutionNamespace + cache.KeySeparator
	}
	r := &BunSolutionRepository{
		db:           db,
		base:         base,
		repo:         repo,
		cacheService: svc,
		cachePrefix:  prefix,
		now:          time.Now,
		logger:       logging.StoreLogger(nil),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *BunSolutionRepository) Create(ctx context.Context, solution *Solution) (*Solution, error) {
	record := cloneSolution(solution)
	normalizeRecord(record)
	if record.Version < 1 {
		record.Version = 1
	}
	if err := r.ensureSlugAvailable(ctx, record.ID, record.Slug); err != nil {
		return nil, err
	}
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("solution repository error: %w", err)
	}
	r.invalidateAfterWrite(ctx, "create", created.ID)
	return created, nil
}

func (r *BunSolutionRepository) Update(ctx context.Context, solution *Solution, expectedVersion int) (*Solution, error) {
	record := cloneSolution(solution)
	normalizeRecord(record)
	if err := r.ensureSlugAvailable(ctx, record.ID, record.Slug); err != nil {
		return nil, err
	}
	record.Version = expectedVersion + 1

	res, err := r.db.NewUpdate().
		Model(record).
		Column("name", "description", "icon", "is_primary", "rank", "slug", "blocks", "children", "version", "updated_at").
		Where("id = ?", record.ID).
		Where("version = ?", expectedVersion).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("solution repository error: %w", err)
	}
	if err := r.checkSwapped(ctx, res, record.ID, expectedVersion); err != nil {
		return nil, err
	}
	r.invalidateAfterWrite(ctx, "update", record.ID)
	return r.GetByID(ctx, record.ID)
}

func (r *BunSolutionRepository) UpdateChildren(ctx context.Context, id uuid.UUID, expectedVersion int, children []uuid.UUID) (*Solution, error) {
	if children == nil {
		children = []uuid.UUID{}
	}
	payload, err := json.Marshal(children)
	if err != nil {
		return nil, fmt.Errorf("solution repository error: encode children: %w", err)
	}

	res, err := r.db.NewUpdate().
		Model((*Solution)(nil)).
		Set("children = ?", string(payload)).
		Set("version = ?", expectedVersion+1).
		Set("updated_at = ?", r.now()).
		Where("id = ?", id).
		Where("version = ?", expectedVersion).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("solution repository error: %w", err)
	}
	if err := r.checkSwapped(ctx, res, id, expectedVersion); err != nil {
		return nil, err
	}
	r.invalidateAfterWrite(ctx, "update_children", id)
	return r.GetByID(ctx, id)
}

func (r *BunSolutionRepository) GetByID(ctx context.Context, id uuid.UUID) (*Solution, error) {
	record, err := r.base.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

func (r *BunSolutionRepository) GetBySlug(ctx context.Context, slug string) (*Solution, error) {
	key := strings.TrimSpace(slug)
	record, err := r.repo.GetByIdentifier(ctx, key)
	if err != nil {
		return nil, mapRepositoryError(err, key)
	}
	return record, nil
}

func (r *BunSolutionRepository) List(ctx context.Context, filter Filter) ([]*Solution, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		if filter.PrimaryOnly {
			q = q.Where("?TableAlias.is_primary = ?", true)
		}
		if len(filter.IDs) > 0 {
			q = q.Where("?TableAlias.id IN (?)", bun.In(filter.IDs))
		}
		return q
	}))
	if err != nil {
		return nil, fmt.Errorf("solution repository error: %w", err)
	}
	sortByRank(records)
	return records, nil
}

// ListParents scans stored children lists in process; the JSON column is
// not indexed the same way across sqlite and postgres.
func (r *BunSolutionRepository) ListParents(ctx context.Context, childID uuid.UUID) ([]*Solution, error) {
	records, _, err := r.base.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("solution repository error: %w", err)
	}
	parents := slices.DeleteFunc(records, func(s *Solution) bool {
		return !s.HasChild(childID)
	})
	sortByRank(parents)
	return parents, nil
}

func (r *BunSolutionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	if err := r.repo.Delete(ctx, &Solution{ID: id}); err != nil {
		return fmt.Errorf("solution repository error: %w", err)
	}
	r.invalidateAfterWrite(ctx, "delete", id)
	return nil
}

// InvalidateCache drops every cached solution read.
func (r *BunSolutionRepository) InvalidateCache(ctx context.Context) error {
	return r.invalidate(ctx)
}

// invalidateAfterWrite drops cached reads once a write has committed. The
// write stands even when invalidation fails; stale entries expire with the
// cache TTL.
func (r *BunSolutionRepository) invalidateAfterWrite(ctx context.Context, op string, id uuid.UUID) {
	if err := r.invalidate(ctx); err != nil {
		r.logger.Warn("solution.cache.invalidate_failed", "operation", op, "solution_id", id.String(), "error", err)
	}
}

func (r *BunSolutionRepository) invalidate(ctx context.Context) error {
	if r.cacheService == nil || r.cachePrefix == "" {
		return nil
	}
	return r.cacheService.DeleteByPrefix(ctx, r.cachePrefix)
}

func (r *BunSolutionRepository) ensureSlugAvailable(ctx context.Context, id uuid.UUID, slug string) error {
	records, _, err := r.base.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.slug = ?", slug).Where("?TableAlias.id <> ?", id)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return fmt.Errorf("solution repository error: %w", err)
	}
	if len(records) > 0 {
		return ErrSlugExists
	}
	return nil
}

func (r *BunSolutionRepository) checkSwapped(ctx context.Context, res sql.Result, id uuid.UUID, expected int) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("solution repository error: %w", err)
	}
	if affected > 0 {
		return nil
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return &VersionConflictError{ID: id, Expected: expected}
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return notFound(key)
	}
	return fmt.Errorf("solution repository error: %w", err)
}
