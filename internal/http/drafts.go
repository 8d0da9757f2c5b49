package http

import (
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-solutions/internal/blocks"
	"github.com/goliatone/go-solutions/internal/solutions"
	"github.com/google/uuid"
)

// blockPayload is the wire form of a block: {"_id", "type", "props"}.
type blockPayload struct {
	ID    uuid.UUID       `json:"_id"`
	Type  string          `json:"type"`
	Props json.RawMessage `json:"props"`
}

type solutionPayload struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Icon        string         `json:"icon"`
	IsPrimary   bool           `json:"isPrimary"`
	Rank        int            `json:"rank"`
	Slug        string         `json:"slug"`
	Blocks      []blockPayload `json:"blocks"`
	Children    []uuid.UUID    `json:"children"`
	Version     int            `json:"version"`
	ParentID    *uuid.UUID     `json:"parent_id,omitempty"`
}

// toDraft converts an admin payload into a draft. Unknown block types and
// schema violations are rejected here; stored data is never reinterpreted.
func (p solutionPayload) toDraft(id uuid.UUID) (*solutions.Solution, error) {
	list, err := decodeBlocks(p.Blocks)
	if err != nil {
		return nil, err
	}
	return &solutions.Solution{
		ID:          id,
		Name:        p.Name,
		Description: p.Description,
		Icon:        p.Icon,
		IsPrimary:   p.IsPrimary,
		Rank:        p.Rank,
		Slug:        p.Slug,
		Blocks:      list,
		Children:    p.Children,
		Version:     p.Version,
	}, nil
}

func decodeBlocks(payloads []blockPayload) (blocks.List, error) {
	list := make(blocks.List, 0, len(payloads))
	for i, payload := range payloads {
		kind, err := blocks.ParseKind(payload.Type)
		if err != nil {
			return nil, fmt.Errorf("blocks[%d]: %w", i, err)
		}
		props, err := blocks.ParseProps(kind, payload.Props)
		if err != nil {
			return nil, fmt.Errorf("blocks[%d]: %w", i, err)
		}
		list = append(list, blocks.Block{ID: payload.ID, Props: props})
	}
	return list, nil
}
