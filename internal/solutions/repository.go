package solutions

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewSolutionRepository creates a generic repository for solution records.
func NewSolutionRepository(db *bun.DB) repository.Repository[*Solution] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Solution]{
		NewRecord: func() *Solution { return &Solution{} },
		GetID: func(s *Solution) uuid.UUID {
			return s.ID
		},
		SetID: func(s *Solution, id uuid.UUID) {
			s.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(s *Solution) string {
			return s.Slug
		},
	})
}
