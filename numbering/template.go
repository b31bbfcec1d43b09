package numbering

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Template is a parsed custom label: literal text interleaved with "(#name)"
// placeholders.
type Template struct {
	Parts []*Part `parser:"@@*"`
}

// Part is one literal run or placeholder within a Template.
type Part struct {
	Pos lexer.Position

	Placeholder *string `parser:"  @Placeholder"`
	Text        *string `parser:"| @Text"`
}

// Name returns the placeholder name of the part, or "" for literal text.
func (p *Part) Name() string {
	if p.Placeholder == nil {
		return ""
	}
	s := *p.Placeholder
	return s[2 : len(s)-1]
}

var templateLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Placeholder", Pattern: `\(#[^)]+\)`},
	{Name: "Text", Pattern: `[^(]+|\(`},
})

var templateParser = participle.MustBuild[Template](
	participle.Lexer(templateLexer),
)

// ParseTemplate parses a raw custom label. Every input parses: anything
// that is not a well formed placeholder is literal text.
func ParseTemplate(raw string) *Template {
	tmpl, err := templateParser.ParseString("", raw)
	if err != nil || tmpl == nil {
		text := raw
		return &Template{Parts: []*Part{{Text: &text}}}
	}
	return tmpl
}

// PlaceholderSpan locates one placeholder within a raw template.
type PlaceholderSpan struct {
	Name     string
	From, To int // byte offsets within the raw template
}

// Placeholders returns the template's placeholders in order of appearance.
func (tmpl *Template) Placeholders() []PlaceholderSpan {
	var spans []PlaceholderSpan
	for _, part := range tmpl.Parts {
		if name := part.Name(); name != "" {
			spans = append(spans, PlaceholderSpan{
				Name: name,
				From: part.Pos.Offset,
				To:   part.Pos.Offset + len(*part.Placeholder),
			})
		}
	}
	return spans
}

// Resolve renders the template, replacing each placeholder with the number
// returned by num. If num reports false for any placeholder, Resolve returns
// false; the rendered string then retains that placeholder's raw text.
func (tmpl *Template) Resolve(num func(name string) (int, bool)) (string, bool) {
	var sb strings.Builder
	ok := true
	for _, part := range tmpl.Parts {
		switch {
		case part.Placeholder != nil:
			if n, known := num(part.Name()); known {
				sb.WriteString(strconv.Itoa(n))
			} else {
				sb.WriteString(*part.Placeholder)
				ok = false
			}
		case part.Text != nil:
			sb.WriteString(*part.Text)
		}
	}
	return sb.String(), ok
}
