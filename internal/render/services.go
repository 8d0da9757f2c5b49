package render

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/goliatone/go-solutions/internal/blocks"
	"github.com/goliatone/go-solutions/internal/solutions"
)

// synthesizeServices maps child summaries onto service tiles in the order
// given.
func synthesizeServices(ctx context.Context, links LinkResolver, children []solutions.Summary) ([]blocks.ServiceItem, error) {
	tiles := make([]blocks.ServiceItem, 0, len(children))
	for _, child := range children {
		link, err := links.SolutionURL(ctx, child.Slug)
		if err != nil {
			return nil, err
		}
		tiles = append(tiles, blocks.ServiceItem{
			Title:       child.Name,
			Description: child.Description,
			Image:       child.Icon,
			URL:         link,
			Rank:        child.Rank,
		})
	}
	return tiles, nil
}

// SortServicesByRank returns a copy of list in which every ServicesBlock has
// its tiles stably ordered by ascending rank. Other blocks are cloned as is.
// The renderer never reorders; callers apply this before Render.
func SortServicesByRank(list blocks.List) blocks.List {
	sorted := list.Clone()
	for i, block := range sorted {
		props, ok := block.Props.(blocks.ServicesProps)
		if !ok {
			continue
		}
		slices.SortStableFunc(props.Services, func(a, b blocks.ServiceItem) int {
			return cmp.Compare(a.Rank, b.Rank)
		})
		sorted[i].Props = props
	}
	return sorted
}

// SortSummariesByRank orders child summaries by rank, then name.
func SortSummariesByRank(children []solutions.Summary) []solutions.Summary {
	sorted := slices.Clone(children)
	slices.SortStableFunc(sorted, func(a, b solutions.Summary) int {
		return cmp.Or(cmp.Compare(a.Rank, b.Rank), strings.Compare(a.Name, b.Name))
	})
	return sorted
}
