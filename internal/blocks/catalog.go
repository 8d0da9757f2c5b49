package blocks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goliatone/go-solutions/internal/validation"
)

type variant struct {
	zero   func() Props
	decode func(json.RawMessage) (Props, error)
	schema *validation.Schema
}

var catalog = map[Kind]variant{
	KindHero: {
		zero:   func() Props { return HeroProps{} },
		decode: decodeAs[HeroProps],
		schema: objectSchema(KindHero, map[string]any{
			"title":              stringSchema(),
			"subtitle":           stringSchema(),
			"backgroundImageUrl": stringSchema(),
		}),
	},
	KindImage: {
		zero:   func() Props { return ImageProps{ImagePosition: ImageLeft} },
		decode: decodeAs[ImageProps],
		schema: objectSchema(KindImage, map[string]any{
			"title":         stringSchema(),
			"subtitle":      stringSchema(),
			"description":   stringSchema(),
			"imageUrl":      stringSchema(),
			"imagePosition": map[string]any{"enum": []any{string(ImageLeft), string(ImageRight), ""}},
		}),
	},
	KindCallToAction: {
		zero:   func() Props { return CallToActionProps{} },
		decode: decodeAs[CallToActionProps],
		schema: objectSchema(KindCallToAction, map[string]any{
			"message":       stringSchema(),
			"buttonLabel":   stringSchema(),
			"buttonUrl":     stringSchema(),
			"learnMoreText": stringSchema(),
			"learnMoreUrl":  stringSchema(),
		}),
	},
	KindFAQs: {
		zero: func() Props { return FAQsProps{FAQs: []FAQ{}} },
		decode: func(raw json.RawMessage) (Props, error) {
			props, err := decodeAs[FAQsProps](raw)
			if err != nil {
				return nil, err
			}
			p := props.(FAQsProps)
			if p.FAQs == nil {
				p.FAQs = []FAQ{}
			}
			return p, nil
		},
		schema: objectSchema(KindFAQs, map[string]any{"faqs": faqListSchema()}),
	},
	KindFeatures: {
		zero: func() Props { return FeaturesProps{FAQs: []FAQ{}} },
		decode: func(raw json.RawMessage) (Props, error) {
			props, err := decodeAs[FeaturesProps](raw)
			if err != nil {
				return nil, err
			}
			p := props.(FeaturesProps)
			if p.FAQs == nil {
				p.FAQs = []FAQ{}
			}
			return p, nil
		},
		schema: objectSchema(KindFeatures, map[string]any{"faqs": faqListSchema()}),
	},
	KindServices: {
		zero: func() Props { return ServicesProps{Services: []ServiceItem{}} },
		decode: func(raw json.RawMessage) (Props, error) {
			props, err := decodeAs[ServicesProps](raw)
			if err != nil {
				return nil, err
			}
			p := props.(ServicesProps)
			if p.Services == nil {
				p.Services = []ServiceItem{}
			}
			return p, nil
		},
		schema: objectSchema(KindServices, map[string]any{
			"services": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title":       stringSchema(),
						"description": stringSchema(),
						"image":       stringSchema(),
						"url":         stringSchema(),
						"rank":        map[string]any{"type": "integer", "minimum": 0},
					},
					"additionalProperties": false,
				},
			},
		}),
	},
}

// order fixes the listing order of Kinds.
var order = []Kind{KindHero, KindImage, KindCallToAction, KindFAQs, KindFeatures, KindServices}

// Kinds lists the block catalog in editor palette order.
func Kinds() []Kind {
	out := make([]Kind, len(order))
	copy(out, order)
	return out
}

// Known reports whether kind is part of the catalog.
func (k Kind) Known() bool {
	_, ok := catalog[k]
	return ok
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind resolves a tag string, tolerating surrounding whitespace.
func ParseKind(value string) (Kind, error) {
	kind := Kind(strings.TrimSpace(value))
	if !kind.Known() {
		return "", &UnknownVariantError{Kind: kind}
	}
	return kind, nil
}

// Zero returns the empty payload for kind. List payloads are empty, not nil.
func Zero(kind Kind) (Props, error) {
	v, ok := catalog[kind]
	if !ok {
		return nil, &UnknownVariantError{Kind: kind}
	}
	return v.zero(), nil
}

// ParseProps validates raw against the kind's JSON schema, decodes it, and
// runs the payload's own Validate rules. Admin input goes through here.
func ParseProps(kind Kind, raw json.RawMessage) (Props, error) {
	v, ok := catalog[kind]
	if !ok {
		return nil, &UnknownVariantError{Kind: kind}
	}
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return v.zero(), nil
	}
	if err := v.schema.ValidateJSON(raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidProps, kind, err)
	}
	props, err := v.decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidProps, kind, err)
	}
	if err := props.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidProps, kind, err)
	}
	return props, nil
}

// decodeProps decodes stored payloads without schema checks. Unknown tags
// are preserved as UnknownProps.
func decodeProps(tag string, raw json.RawMessage) (Props, error) {
	kind := Kind(tag)
	v, ok := catalog[kind]
	if !ok {
		return UnknownProps{Type: tag, Raw: append(json.RawMessage(nil), raw...)}, nil
	}
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return v.zero(), nil
	}
	return v.decode(raw)
}

func decodeAs[T Props](raw json.RawMessage) (Props, error) {
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func objectSchema(kind Kind, properties map[string]any) *validation.Schema {
	return validation.NewSchema(string(kind), map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	})
}

func stringSchema() map[string]any {
	return map[string]any{"type": "string"}
}

func faqListSchema() map[string]any {
	return map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": stringSchema(),
				"answer":   stringSchema(),
			},
			"additionalProperties": false,
		},
	}
}
