package render

import (
	"fmt"
	"html/template"

	"github.com/goliatone/go-solutions/internal/blocks"
)

type handlers struct {
	markdown *Markdown
	links    LinkResolver
}

type heroView struct {
	Title              string
	Subtitle           string
	BackgroundImageURL string
}

type imageView struct {
	Title       string
	Subtitle    string
	Description template.HTML
	ImageURL    string
	Position    blocks.ImagePosition
}

type ctaView struct {
	Message       string
	ButtonLabel   string
	ButtonURL     string
	LearnMoreText string
	LearnMoreURL  string
}

type faqView struct {
	Question string
	Answer   template.HTML
}

type listView[T any] struct {
	Items []T
}

type serviceView struct {
	Title       string
	Description template.HTML
	Image       string
	URL         string
	Rank        int
}

func (h *handlers) hero(_ Context, b blocks.Block) (Node, error) {
	props, err := propsAs[blocks.HeroProps](b)
	if err != nil {
		return Node{}, err
	}
	view := heroView(props)
	return h.node(b, componentHero, view, map[string]any{
		"title":              props.Title,
		"subtitle":           props.Subtitle,
		"backgroundImageUrl": props.BackgroundImageURL,
	})
}

func (h *handlers) image(_ Context, b blocks.Block) (Node, error) {
	props, err := propsAs[blocks.ImageProps](b)
	if err != nil {
		return Node{}, err
	}
	description, err := h.markdown.Render(props.Description)
	if err != nil {
		return Node{}, err
	}
	position := props.ImagePosition
	if position == "" {
		position = blocks.ImageLeft
	}
	view := imageView{
		Title:       props.Title,
		Subtitle:    props.Subtitle,
		Description: description,
		ImageURL:    props.ImageURL,
		Position:    position,
	}
	return h.node(b, componentImage, view, map[string]any{
		"title":         props.Title,
		"subtitle":      props.Subtitle,
		"description":   description,
		"imageUrl":      props.ImageURL,
		"imagePosition": string(position),
	})
}

func (h *handlers) callToAction(_ Context, b blocks.Block) (Node, error) {
	props, err := propsAs[blocks.CallToActionProps](b)
	if err != nil {
		return Node{}, err
	}
	view := ctaView(props)
	return h.node(b, componentCallToAction, view, map[string]any{
		"message":       props.Message,
		"buttonLabel":   props.ButtonLabel,
		"buttonUrl":     props.ButtonURL,
		"learnMoreText": props.LearnMoreText,
		"learnMoreUrl":  props.LearnMoreURL,
	})
}

func (h *handlers) faqs(_ Context, b blocks.Block) (Node, error) {
	props, err := propsAs[blocks.FAQsProps](b)
	if err != nil {
		return Node{}, err
	}
	return h.questionList(b, componentFAQs, props.FAQs)
}

func (h *handlers) features(_ Context, b blocks.Block) (Node, error) {
	props, err := propsAs[blocks.FeaturesProps](b)
	if err != nil {
		return Node{}, err
	}
	return h.questionList(b, componentFeatures, props.FAQs)
}

func (h *handlers) questionList(b blocks.Block, component string, rows []blocks.FAQ) (Node, error) {
	items := make([]faqView, 0, len(rows))
	data := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		answer, err := h.markdown.Render(row.Answer)
		if err != nil {
			return Node{}, err
		}
		items = append(items, faqView{Question: row.Question, Answer: answer})
		data = append(data, map[string]any{"question": row.Question, "answer": answer})
	}
	return h.node(b, component, listView[faqView]{Items: items}, map[string]any{"items": data})
}

func (h *handlers) services(ctx Context, b blocks.Block) (Node, error) {
	props, err := propsAs[blocks.ServicesProps](b)
	if err != nil {
		return Node{}, err
	}

	tiles := props.Services
	synthesized := false
	if len(tiles) == 0 && len(ctx.Children) > 0 {
		tiles, err = synthesizeServices(ctx, h.links, ctx.Children)
		if err != nil {
			return Node{}, err
		}
		synthesized = true
	}

	items := make([]serviceView, 0, len(tiles))
	data := make([]map[string]any, 0, len(tiles))
	for _, tile := range tiles {
		description, err := h.markdown.Render(tile.Description)
		if err != nil {
			return Node{}, err
		}
		items = append(items, serviceView{
			Title:       tile.Title,
			Description: description,
			Image:       tile.Image,
			URL:         tile.URL,
			Rank:        tile.Rank,
		})
		data = append(data, map[string]any{
			"title":       tile.Title,
			"description": description,
			"image":       tile.Image,
			"url":         tile.URL,
			"rank":        tile.Rank,
		})
	}
	return h.node(b, componentServices, listView[serviceView]{Items: items}, map[string]any{
		"items":       data,
		"synthesized": synthesized,
	})
}

func (h *handlers) node(b blocks.Block, component string, view any, data map[string]any) (Node, error) {
	html, err := execute(component, view)
	if err != nil {
		return Node{}, err
	}
	return Node{
		BlockID:   b.ID,
		Kind:      b.Kind(),
		Component: component,
		Data:      data,
		HTML:      html,
	}, nil
}

func propsAs[T blocks.Props](b blocks.Block) (T, error) {
	props, ok := b.Props.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %T for %q", ErrPropsMismatch, b.Props, b.Kind())
	}
	return props, nil
}
