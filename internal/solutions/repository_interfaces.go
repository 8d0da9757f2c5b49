package solutions

import (
	"context"

	"github.com/google/uuid"
)

// SolutionRepository exposes persistence operations for solutions.
//
// Update and UpdateChildren are compare-and-swap writes: they succeed only
// while the stored Version equals expectedVersion, bump it by one, and
// otherwise fail with ErrVersionConflict.
type SolutionRepository interface {
	Create(ctx context.Context, solution *Solution) (*Solution, error)
	Update(ctx context.Context, solution *Solution, expectedVersion int) (*Solution, error)
	UpdateChildren(ctx context.Context, id uuid.UUID, expectedVersion int, children []uuid.UUID) (*Solution, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Solution, error)
	GetBySlug(ctx context.Context, slug string) (*Solution, error)
	List(ctx context.Context, filter Filter) ([]*Solution, error)
	ListParents(ctx context.Context, childID uuid.UUID) ([]*Solution, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
