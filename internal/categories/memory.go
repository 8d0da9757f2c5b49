package categories

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

type memoryCategoryRepository struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*Category
	bySlug map[string]uuid.UUID
}

// NewMemoryCategoryRepository constructs an in-memory category repository.
func NewMemoryCategoryRepository() CategoryRepository {
	return &memoryCategoryRepository{
		byID:   make(map[uuid.UUID]*Category),
		bySlug: make(map[string]uuid.UUID),
	}
}

func (m *memoryCategoryRepository) Create(_ context.Context, category *Category) (*Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneCategory(category)
	if owner, taken := m.bySlug[cloned.Slug]; taken && owner != cloned.ID {
		return nil, ErrSlugExists
	}
	m.byID[cloned.ID] = cloned
	m.bySlug[cloned.Slug] = cloned.ID
	return cloneCategory(cloned), nil
}

func (m *memoryCategoryRepository) Update(_ context.Context, category *Category) (*Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[category.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "category", Key: category.ID.String()}
	}
	cloned := cloneCategory(category)
	if owner, taken := m.bySlug[cloned.Slug]; taken && owner != cloned.ID {
		return nil, ErrSlugExists
	}
	if existing.Slug != cloned.Slug {
		delete(m.bySlug, existing.Slug)
	}
	m.byID[cloned.ID] = cloned
	m.bySlug[cloned.Slug] = cloned.ID
	return cloneCategory(cloned), nil
}

func (m *memoryCategoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "category", Key: id.String()}
	}
	return cloneCategory(record), nil
}

func (m *memoryCategoryRepository) GetBySlug(_ context.Context, slug string) (*Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	key := strings.TrimSpace(slug)
	id, ok := m.bySlug[key]
	if !ok {
		return nil, &NotFoundError{Resource: "category", Key: key}
	}
	return cloneCategory(m.byID[id]), nil
}

func (m *memoryCategoryRepository) List(_ context.Context) ([]*Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Category, 0, len(m.byID))
	for _, record := range m.byID {
		records = append(records, cloneCategory(record))
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Title < records[j].Title
	})
	return records, nil
}

func (m *memoryCategoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.byID[id]
	if !ok {
		return &NotFoundError{Resource: "category", Key: id.String()}
	}
	delete(m.byID, id)
	delete(m.bySlug, record.Slug)
	return nil
}
