package blocks

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

func (p HeroProps) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Length(0, 200)),
		validation.Field(&p.BackgroundImageURL, is.RequestURI),
	)
}

func (p ImageProps) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ImageURL, is.RequestURI),
		validation.Field(&p.ImagePosition, validation.In(ImageLeft, ImageRight)),
	)
}

func (p CallToActionProps) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ButtonURL, is.RequestURI),
		validation.Field(&p.LearnMoreURL, is.RequestURI),
	)
}

func (p FAQsProps) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.FAQs),
	)
}

func (p FeaturesProps) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.FAQs),
	)
}

func (p ServicesProps) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Services),
	)
}

// Validate allows blank rows; the editor appends them before the author fills
// them in.
func (f FAQ) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Question, validation.Length(0, 500)),
	)
}

func (s ServiceItem) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Image, is.RequestURI),
		validation.Field(&s.URL, is.RequestURI),
		validation.Field(&s.Rank, validation.Min(0)),
	)
}
