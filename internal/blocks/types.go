package blocks

import (
	"encoding/json"
	"slices"
)

// Kind is the discriminator stored in a block's "type" field.
type Kind string

const (
	KindHero         Kind = "HeroBlock"
	KindImage        Kind = "ImageBlock"
	KindCallToAction Kind = "CallToActionBlock"
	KindFAQs         Kind = "FAQsBlock"
	KindFeatures     Kind = "FeaturesBlock"
	KindServices     Kind = "ServicesBlock"
)

// ImagePosition controls which side an ImageBlock places its picture on.
type ImagePosition string

const (
	ImageLeft  ImagePosition = "left"
	ImageRight ImagePosition = "right"
)

// Props is the typed payload carried by a Block. The set of implementations
// is closed to this package; UnknownProps stands in for tags this build does
// not recognise.
type Props interface {
	Kind() Kind
	Validate() error
	cloneProps() Props
}

// HeroProps is the payload of a HeroBlock.
type HeroProps struct {
	Title              string `json:"title"`
	Subtitle           string `json:"subtitle"`
	BackgroundImageURL string `json:"backgroundImageUrl"`
}

func (HeroProps) Kind() Kind           { return KindHero }
func (p HeroProps) cloneProps() Props { return p }

// ImageProps is the payload of an ImageBlock.
type ImageProps struct {
	Title         string        `json:"title"`
	Subtitle      string        `json:"subtitle"`
	Description   string        `json:"description"`
	ImageURL      string        `json:"imageUrl"`
	ImagePosition ImagePosition `json:"imagePosition"`
}

func (ImageProps) Kind() Kind           { return KindImage }
func (p ImageProps) cloneProps() Props { return p }

// CallToActionProps is the payload of a CallToActionBlock.
type CallToActionProps struct {
	Message       string `json:"message"`
	ButtonLabel   string `json:"buttonLabel"`
	ButtonURL     string `json:"buttonUrl"`
	LearnMoreText string `json:"learnMoreText"`
	LearnMoreURL  string `json:"learnMoreUrl"`
}

func (CallToActionProps) Kind() Kind           { return KindCallToAction }
func (p CallToActionProps) cloneProps() Props { return p }

// FAQ is a question/answer row. FeaturesBlock reuses it as feature/caption.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQsProps is the payload of a FAQsBlock.
type FAQsProps struct {
	FAQs []FAQ `json:"faqs"`
}

func (FAQsProps) Kind() Kind { return KindFAQs }
func (p FAQsProps) cloneProps() Props {
	return FAQsProps{FAQs: cloneFAQs(p.FAQs)}
}

// FeaturesProps is the payload of a FeaturesBlock. It has the same shape as
// FAQsProps but renders and evolves independently.
type FeaturesProps struct {
	FAQs []FAQ `json:"faqs"`
}

func (FeaturesProps) Kind() Kind { return KindFeatures }
func (p FeaturesProps) cloneProps() Props {
	return FeaturesProps{FAQs: cloneFAQs(p.FAQs)}
}

// ServiceItem is one tile of a ServicesBlock.
type ServiceItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	URL         string `json:"url"`
	Rank        int    `json:"rank"`
}

// ServicesProps is the payload of a ServicesBlock.
type ServicesProps struct {
	Services []ServiceItem `json:"services"`
}

func (ServicesProps) Kind() Kind { return KindServices }
func (p ServicesProps) cloneProps() Props {
	return ServicesProps{Services: cloneServices(p.Services)}
}

// UnknownProps keeps the raw payload of a block whose tag is not part of the
// catalog, so stored data written by newer editors survives a round trip.
type UnknownProps struct {
	Type string
	Raw  json.RawMessage
}

func (p UnknownProps) Kind() Kind { return Kind(p.Type) }

func (p UnknownProps) Validate() error {
	return &UnknownVariantError{Kind: Kind(p.Type)}
}

func (p UnknownProps) cloneProps() Props {
	return UnknownProps{Type: p.Type, Raw: slices.Clone(p.Raw)}
}

func cloneFAQs(in []FAQ) []FAQ {
	if in == nil {
		return nil
	}
	return slices.Clone(in)
}

func cloneServices(in []ServiceItem) []ServiceItem {
	if in == nil {
		return nil
	}
	return slices.Clone(in)
}
