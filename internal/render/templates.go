package render

import (
	"bytes"
	"fmt"
	"html/template"
)

const (
	componentHero         = "hero"
	componentImage        = "image"
	componentCallToAction = "call-to-action"
	componentFAQs         = "faqs"
	componentFeatures     = "features"
	componentServices     = "services"
	componentCategory     = "category"
)

const partials = `
{{define "hero"}}<section class="block hero"{{with .BackgroundImageURL}} style="background-image: url('{{.}}')"{{end}}><h1>{{.Title}}</h1>{{with .Subtitle}}<p class="subtitle">{{.}}</p>{{end}}</section>{{end}}

{{define "image"}}<section class="block image image-{{.Position}}">{{with .ImageURL}}<img src="{{.}}" alt="{{$.Title}}">{{end}}<div class="body"><h2>{{.Title}}</h2>{{with .Subtitle}}<h3>{{.}}</h3>{{end}}{{.Description}}</div></section>{{end}}

{{define "call-to-action"}}<section class="block cta"><p>{{.Message}}</p>{{with .ButtonURL}}<a class="button" href="{{.}}">{{$.ButtonLabel}}</a>{{end}}{{with .LearnMoreURL}}<a class="learn-more" href="{{.}}">{{$.LearnMoreText}}</a>{{end}}</section>{{end}}

{{define "faqs"}}<section class="block faqs"><dl>{{range .Items}}<dt>{{.Question}}</dt><dd>{{.Answer}}</dd>{{end}}</dl></section>{{end}}

{{define "features"}}<section class="block features"><ul>{{range .Items}}<li><strong>{{.Question}}</strong>{{.Answer}}</li>{{end}}</ul></section>{{end}}

{{define "services"}}<section class="block services"><ul>{{range .Items}}<li>{{if .URL}}<a href="{{.URL}}">{{end}}{{with .Image}}<img src="{{.}}" alt="">{{end}}<h3>{{.Title}}</h3>{{if .URL}}</a>{{end}}{{.Description}}</li>{{end}}</ul></section>{{end}}

{{define "category"}}<article class="category">{{with .ImageURL}}<img src="{{.}}" alt="{{$.Title}}">{{end}}<h1>{{.Title}}</h1>{{.Description}}{{range .Items}}<section class="category-item" id="item-{{.ID}}"><h2>{{.Name}}</h2>{{with .ShortDesc}}<p>{{.}}</p>{{end}}{{.FullDesc}}{{with .Features}}<ul>{{range .}}<li>{{.}}</li>{{end}}</ul>{{end}}{{.Implementation}}</section>{{end}}</article>{{end}}
`

var templates = template.Must(template.New("blocks").Parse(partials))

func execute(component string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, component, data); err != nil {
		return "", fmt.Errorf("render: template %s: %w", component, err)
	}
	return template.HTML(buf.String()), nil
}
