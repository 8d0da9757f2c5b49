package seed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/goliatone/go-slug"
	"github.com/goliatone/go-solutions/internal/blocks"
	"github.com/goliatone/go-solutions/internal/categories"
	"github.com/goliatone/go-solutions/internal/identity"
	"github.com/goliatone/go-solutions/internal/solutions"
	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// DocumentKind selects which entity a seed file describes.
type DocumentKind string

const (
	KindCategory DocumentKind = "category"
	KindSolution DocumentKind = "solution"
)

// Document is a parsed seed file ready to be upserted.
type Document struct {
	Path     string
	Kind     DocumentKind
	Slug     string
	Parent   string
	Category *categories.CreateCategoryInput
	Solution *solutions.Solution
}

type frontMatter struct {
	Kind        string        `yaml:"kind"`
	Title       string        `yaml:"title"`
	Name        string        `yaml:"name"`
	Slug        string        `yaml:"slug"`
	Description string        `yaml:"description"`
	Image       string        `yaml:"image"`
	Icon        string        `yaml:"icon"`
	IsPrimary   bool          `yaml:"isPrimary"`
	Rank        int           `yaml:"rank"`
	Parent      string        `yaml:"parent"`
	Items       []itemMatter  `yaml:"solutions"`
	Blocks      []blockMatter `yaml:"blocks"`
}

type itemMatter struct {
	Name           string   `yaml:"name"`
	ShortDesc      string   `yaml:"shortDesc"`
	Features       []string `yaml:"features"`
	Implementation string   `yaml:"implementation"`
}

type blockMatter struct {
	Type  string                 `yaml:"type"`
	Props map[string]interface{} `yaml:"props"`
}

type section struct {
	Title string
	Body  string
}

// ParseDocument reads the frontmatter and body of a seed file. Category
// bodies are split on level-two headings: the text before the first heading
// becomes the description and each heading names an item whose section is
// its full description.
func ParseDocument(path string, source []byte) (*Document, error) {
	var meta frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	kind := DocumentKind(strings.ToLower(strings.TrimSpace(meta.Kind)))
	switch kind {
	case KindCategory:
		return parseCategory(path, meta, body)
	case KindSolution:
		return parseSolution(path, meta, body)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDocumentKind, meta.Kind)
	}
}

func parseCategory(path string, meta frontMatter, body []byte) (*Document, error) {
	title := strings.TrimSpace(meta.Title)
	normalized, err := documentSlug(meta.Slug, title)
	if err != nil {
		return nil, err
	}

	intro, sections := splitSections(body)
	description := strings.TrimSpace(meta.Description)
	if description == "" {
		description = intro
	}

	used := make(map[int]bool, len(sections))
	items := make([]categories.ItemInput, 0, len(meta.Items)+len(sections))
	for _, entry := range meta.Items {
		item := categories.ItemInput{
			Name:           strings.TrimSpace(entry.Name),
			ShortDesc:      entry.ShortDesc,
			Features:       entry.Features,
			Implementation: entry.Implementation,
		}
		for idx, sec := range sections {
			if !used[idx] && strings.EqualFold(sec.Title, item.Name) {
				item.FullDesc = sec.Body
				used[idx] = true
				break
			}
		}
		items = append(items, item)
	}
	for idx, sec := range sections {
		if used[idx] {
			continue
		}
		items = append(items, categories.ItemInput{Name: sec.Title, FullDesc: sec.Body})
	}

	return &Document{
		Path: path,
		Kind: KindCategory,
		Slug: normalized,
		Category: &categories.CreateCategoryInput{
			ID:          identity.CategoryUUID(normalized),
			Title:       title,
			Slug:        normalized,
			ImageURL:    strings.TrimSpace(meta.Image),
			Description: description,
			Items:       items,
		},
	}, nil
}

func parseSolution(path string, meta frontMatter, body []byte) (*Document, error) {
	name := strings.TrimSpace(meta.Name)
	if name == "" {
		name = strings.TrimSpace(meta.Title)
	}
	normalized, err := documentSlug(meta.Slug, name)
	if err != nil {
		return nil, err
	}
	id := identity.SolutionUUID(normalized)

	list := make(blocks.List, 0, len(meta.Blocks))
	for idx, entry := range meta.Blocks {
		block, err := buildBlock(identity.BlockUUID(id, idx), entry)
		if err != nil {
			return nil, fmt.Errorf("blocks[%d]: %w", idx, err)
		}
		list = append(list, block)
	}

	description := strings.TrimSpace(meta.Description)
	if description == "" {
		description = strings.TrimSpace(string(body))
	}

	return &Document{
		Path:   path,
		Kind:   KindSolution,
		Slug:   normalized,
		Parent: strings.TrimSpace(meta.Parent),
		Solution: &solutions.Solution{
			ID:          id,
			Name:        name,
			Description: description,
			Icon:        strings.TrimSpace(meta.Icon),
			IsPrimary:   meta.IsPrimary,
			Rank:        meta.Rank,
			Slug:        normalized,
			Blocks:      list,
			Children:    []uuid.UUID{},
		},
	}, nil
}

func buildBlock(id uuid.UUID, entry blockMatter) (blocks.Block, error) {
	kind, err := blocks.ParseKind(entry.Type)
	if err != nil {
		return blocks.Block{}, err
	}
	raw, err := json.Marshal(normalizeYAML(entry.Props))
	if err != nil {
		return blocks.Block{}, fmt.Errorf("encode props: %w", err)
	}
	props, err := blocks.ParseProps(kind, raw)
	if err != nil {
		return blocks.Block{}, err
	}
	return blocks.Block{ID: id, Props: props}, nil
}

// normalizeYAML turns the map[interface{}]interface{} values produced by the
// YAML decoder into JSON-encodable maps.
func normalizeYAML(value any) any {
	switch typed := value.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[fmt.Sprint(key)] = normalizeYAML(item)
		}
		return out
	case map[string]interface{}:
		if typed == nil {
			return map[string]any{}
		}
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[key] = normalizeYAML(item)
		}
		return out
	case []interface{}:
		out := make([]any, len(typed))
		for idx, item := range typed {
			out[idx] = normalizeYAML(item)
		}
		return out
	default:
		return value
	}
}

func documentSlug(candidate, fallback string) (string, error) {
	value := strings.TrimSpace(candidate)
	if value == "" {
		value = strings.TrimSpace(fallback)
	}
	if value == "" {
		return "", ErrSlugRequired
	}
	normalized, err := slug.Normalize(value)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSlugRequired, err)
	}
	if normalized == "" {
		return "", ErrSlugRequired
	}
	return normalized, nil
}

// splitSections walks the Markdown AST and cuts body at every level-two
// heading.
func splitSections(body []byte) (string, []section) {
	root := goldmark.New().Parser().Parse(text.NewReader(body))

	type mark struct {
		title string
		start int
		end   int
	}
	var marks []mark
	for node := root.FirstChild(); node != nil; node = node.NextSibling() {
		heading, ok := node.(*ast.Heading)
		if !ok || heading.Level != 2 {
			continue
		}
		lines := heading.Lines()
		if lines.Len() == 0 {
			continue
		}
		var title strings.Builder
		for i := range lines.Len() {
			title.Write(lines.At(i).Value(body))
		}
		first := lines.At(0)
		last := lines.At(lines.Len() - 1)
		marks = append(marks, mark{
			title: strings.TrimSpace(title.String()),
			start: lineStart(body, first.Start),
			end:   lineEnd(body, last.Stop),
		})
	}

	if len(marks) == 0 {
		return strings.TrimSpace(string(body)), nil
	}

	intro := strings.TrimSpace(string(body[:marks[0].start]))
	sections := make([]section, 0, len(marks))
	for idx, m := range marks {
		stop := len(body)
		if idx+1 < len(marks) {
			stop = marks[idx+1].start
		}
		sections = append(sections, section{
			Title: m.title,
			Body:  strings.TrimSpace(string(body[m.end:stop])),
		})
	}
	return intro, sections
}

func lineStart(source []byte, offset int) int {
	if idx := bytes.LastIndexByte(source[:offset], '\n'); idx >= 0 {
		return idx + 1
	}
	return 0
}

func lineEnd(source []byte, offset int) int {
	if offset >= len(source) {
		return len(source)
	}
	if idx := bytes.IndexByte(source[offset:], '\n'); idx >= 0 {
		return offset + idx + 1
	}
	return len(source)
}
