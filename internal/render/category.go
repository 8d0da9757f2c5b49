package render

import (
	"html/template"

	"github.com/goliatone/go-solutions/internal/categories"
	"github.com/google/uuid"
)

// CategoryPage is the rendered form of a SolutionCategory.
type CategoryPage struct {
	ID          uuid.UUID      `json:"id"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	ImageURL    string         `json:"imageUrl"`
	Description template.HTML  `json:"description"`
	Items       []CategoryItem `json:"items"`
	HTML        template.HTML  `json:"html"`
}

// CategoryItem is one embedded item of a category page.
type CategoryItem struct {
	ID             int           `json:"id"`
	Name           string        `json:"name"`
	ShortDesc      string        `json:"shortDesc"`
	FullDesc       template.HTML `json:"fullDesc"`
	Features       []string      `json:"features"`
	Implementation template.HTML `json:"implementation"`
}

// CategoryRenderer renders categories. Items keep their stored order.
type CategoryRenderer struct {
	markdown *Markdown
}

// NewCategoryRenderer constructs a category renderer. Only WithMarkdown is
// consulted.
func NewCategoryRenderer(opts ...Option) *CategoryRenderer {
	cfg := newOptions(opts)
	return &CategoryRenderer{markdown: cfg.markdown}
}

func (r *CategoryRenderer) Render(category *categories.Category) (*CategoryPage, error) {
	if category == nil {
		return nil, ErrMissingProps
	}
	description, err := r.markdown.Render(category.Description)
	if err != nil {
		return nil, err
	}
	page := &CategoryPage{
		ID:          category.ID,
		Title:       category.Title,
		Slug:        category.Slug,
		ImageURL:    category.ImageURL,
		Description: description,
		Items:       make([]CategoryItem, 0, len(category.Solutions)),
	}
	for _, item := range category.Solutions {
		rendered, err := r.item(item)
		if err != nil {
			return nil, err
		}
		page.Items = append(page.Items, rendered)
	}

	html, err := execute(componentCategory, page)
	if err != nil {
		return nil, err
	}
	page.HTML = html
	return page, nil
}

func (r *CategoryRenderer) item(item categories.Item) (CategoryItem, error) {
	full, err := r.markdown.Render(item.FullDesc)
	if err != nil {
		return CategoryItem{}, err
	}
	implementation, err := r.markdown.Render(item.Implementation)
	if err != nil {
		return CategoryItem{}, err
	}
	features := make([]string, 0, len(item.Features))
	for _, feature := range item.Features {
		features = append(features, feature.Text)
	}
	return CategoryItem{
		ID:             item.ID,
		Name:           item.Name,
		ShortDesc:      item.ShortDesc,
		FullDesc:       full,
		Features:       features,
		Implementation: implementation,
	}, nil
}
