package solutions

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-solutions/internal/blocks"
	"github.com/google/uuid"
)

type memorySolutionRepository struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*Solution
	bySlug map[string]uuid.UUID
	now    func() time.Time
}

// NewMemorySolutionRepository constructs an in-memory solution repository.
func NewMemorySolutionRepository() SolutionRepository {
	return &memorySolutionRepository{
		byID:   make(map[uuid.UUID]*Solution),
		bySlug: make(map[string]uuid.UUID),
		now:    time.Now,
	}
}

func (m *memorySolutionRepository) Create(_ context.Context, solution *Solution) (*Solution, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneSolution(solution)
	normalizeRecord(cloned)
	if _, exists := m.byID[cloned.ID]; exists {
		return nil, ErrAlreadyExists
	}
	if owner, taken := m.bySlug[cloned.Slug]; taken && owner != cloned.ID {
		return nil, ErrSlugExists
	}
	if cloned.Version < 1 {
		cloned.Version = 1
	}
	m.byID[cloned.ID] = cloned
	m.bySlug[cloned.Slug] = cloned.ID
	return cloneSolution(cloned), nil
}

func (m *memorySolutionRepository) Update(_ context.Context, solution *Solution, expectedVersion int) (*Solution, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[solution.ID]
	if !ok {
		return nil, notFound(solution.ID.String())
	}
	if existing.Version != expectedVersion {
		return nil, &VersionConflictError{ID: solution.ID, Expected: expectedVersion}
	}

	cloned := cloneSolution(solution)
	normalizeRecord(cloned)
	if owner, taken := m.bySlug[cloned.Slug]; taken && owner != cloned.ID {
		return nil, ErrSlugExists
	}
	cloned.Version = expectedVersion + 1
	cloned.CreatedAt = existing.CreatedAt

	if existing.Slug != cloned.Slug {
		delete(m.bySlug, existing.Slug)
	}
	m.byID[cloned.ID] = cloned
	m.bySlug[cloned.Slug] = cloned.ID
	return cloneSolution(cloned), nil
}

func (m *memorySolutionRepository) UpdateChildren(_ context.Context, id uuid.UUID, expectedVersion int, children []uuid.UUID) (*Solution, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[id]
	if !ok {
		return nil, notFound(id.String())
	}
	if existing.Version != expectedVersion {
		return nil, &VersionConflictError{ID: id, Expected: expectedVersion}
	}

	updated := cloneSolution(existing)
	updated.Children = cloneIDs(children)
	if updated.Children == nil {
		updated.Children = []uuid.UUID{}
	}
	updated.Version = expectedVersion + 1
	updated.UpdatedAt = m.now()
	m.byID[id] = updated
	return cloneSolution(updated), nil
}

func (m *memorySolutionRepository) GetByID(_ context.Context, id uuid.UUID) (*Solution, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, notFound(id.String())
	}
	return cloneSolution(record), nil
}

func (m *memorySolutionRepository) GetBySlug(_ context.Context, slug string) (*Solution, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	key := strings.TrimSpace(slug)
	id, ok := m.bySlug[key]
	if !ok {
		return nil, notFound(key)
	}
	return cloneSolution(m.byID[id]), nil
}

func (m *memorySolutionRepository) List(_ context.Context, filter Filter) ([]*Solution, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Solution, 0, len(m.byID))
	for _, record := range m.byID {
		if filter.PrimaryOnly && !record.IsPrimary {
			continue
		}
		if len(filter.IDs) > 0 && !slices.Contains(filter.IDs, record.ID) {
			continue
		}
		records = append(records, cloneSolution(record))
	}
	sortByRank(records)
	return records, nil
}

func (m *memorySolutionRepository) ListParents(_ context.Context, childID uuid.UUID) ([]*Solution, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var records []*Solution
	for _, record := range m.byID {
		if record.HasChild(childID) {
			records = append(records, cloneSolution(record))
		}
	}
	sortByRank(records)
	return records, nil
}

func (m *memorySolutionRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.byID[id]
	if !ok {
		return notFound(id.String())
	}
	delete(m.byID, id)
	delete(m.bySlug, record.Slug)
	return nil
}

// sortByRank orders by rank ascending, then name, then id for stability.
func sortByRank(records []*Solution) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Rank != records[j].Rank {
			return records[i].Rank < records[j].Rank
		}
		if records[i].Name != records[j].Name {
			return records[i].Name < records[j].Name
		}
		return records[i].ID.String() < records[j].ID.String()
	})
}

// normalizeRecord replaces nil collections so every stored record encodes
// its blocks and children as arrays.
func normalizeRecord(s *Solution) {
	if s.Blocks == nil {
		s.Blocks = blocks.List{}
	}
	if s.Children == nil {
		s.Children = []uuid.UUID{}
	}
}
