package solutions

import (
	"slices"
	"time"

	"github.com/goliatone/go-solutions/internal/blocks"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Solution is a product/solution page: descriptive metadata, an ordered
// block body, and references to child Solutions.
type Solution struct {
	bun.BaseModel `bun:"table:solutions,alias:s"`

	ID          uuid.UUID   `bun:",pk,type:uuid" json:"id"`
	Name        string      `bun:"name,notnull" json:"name"`
	Description string      `bun:"description" json:"description"`
	Icon        string      `bun:"icon" json:"icon"`
	IsPrimary   bool        `bun:"is_primary,notnull,default:false" json:"isPrimary"`
	Rank        int         `bun:"rank,notnull,default:0" json:"rank"`
	Slug        string      `bun:"slug,notnull,unique" json:"slug"`
	Blocks      blocks.List `bun:"blocks,type:jsonb,notnull" json:"blocks"`
	Children    []uuid.UUID `bun:"children,type:jsonb,notnull" json:"children"`
	Version     int         `bun:"version,notnull,default:1" json:"version"`
	CreatedAt   time.Time   `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt"`
	UpdatedAt   time.Time   `bun:"updated_at,nullzero,default:current_timestamp" json:"updatedAt"`
}

// Summary is the resolved shape of a child reference on public reads. It
// never carries the child's own blocks.
type Summary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Slug        string    `json:"slug"`
	Rank        int       `json:"rank"`
}

// Filter narrows List results. The zero value lists every Solution.
type Filter struct {
	PrimaryOnly bool
	IDs         []uuid.UUID
}

// Summary projects s onto its public child shape.
func (s *Solution) Summary() Summary {
	if s == nil {
		return Summary{}
	}
	return Summary{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Icon:        s.Icon,
		Slug:        s.Slug,
		Rank:        s.Rank,
	}
}

// HasChild reports whether id is already linked as a child.
func (s *Solution) HasChild(id uuid.UUID) bool {
	if s == nil {
		return false
	}
	return slices.Contains(s.Children, id)
}

// Clone deep-copies the solution, including its block list.
func (s *Solution) Clone() *Solution {
	return cloneSolution(s)
}

func cloneSolution(s *Solution) *Solution {
	if s == nil {
		return nil
	}
	cloned := *s
	cloned.Blocks = s.Blocks.Clone()
	cloned.Children = cloneIDs(s.Children)
	return &cloned
}

func cloneIDs(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return nil
	}
	return slices.Clone(ids)
}

// ImageTarget names the image-bearing field an upload populates.
type ImageTarget string

const (
	TargetIcon           ImageTarget = "icon"
	TargetHeroBackground ImageTarget = "hero.backgroundImageUrl"
	TargetImage          ImageTarget = "image.imageUrl"
	TargetServiceImage   ImageTarget = "services.image"
)

const defaultUploadFolder = "solutions"
