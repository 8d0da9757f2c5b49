package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Markdown converts the free-text fields of blocks (answers, captions,
// descriptions) into HTML. Raw HTML embedded in the source is never emitted,
// so the output is safe to mark as template.HTML.
type Markdown struct {
	engine goldmark.Markdown
}

// NewMarkdown builds a converter with the named extensions. Unknown names are
// ignored; an empty list enables GFM and linkify.
func NewMarkdown(extensions ...string) *Markdown {
	opts := []goldmark.Option{
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	}
	if exts := collectExtensions(extensions); len(exts) > 0 {
		opts = append(opts, goldmark.WithExtensions(exts...))
	}
	return &Markdown{engine: goldmark.New(opts...)}
}

// Render converts source to HTML. Blank input yields "".
func (m *Markdown) Render(source string) (template.HTML, error) {
	if strings.TrimSpace(source) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := m.engine.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("render: markdown: %w", err)
	}
	return template.HTML(strings.TrimSpace(buf.String())), nil
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"typographer":   extension.Typographer,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{extension.GFM, extension.Linkify}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}
		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}
	return extenders
}
