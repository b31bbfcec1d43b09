// Package resolve finds example and custom label references in content
// text and resolves them against a numbering pass.
package resolve

import (
	"strconv"
	"strings"

	"github.com/jcorbin/listnum/marker"
	"github.com/jcorbin/listnum/numbering"
	"github.com/jcorbin/listnum/region"
)

// Kind distinguishes resolved references from duplicate warnings.
type Kind int

// Kind constants.
const (
	Resolved Kind = iota
	DuplicateWarning
)

func (k Kind) String() string {
	switch k {
	case Resolved:
		return "resolved"
	case DuplicateWarning:
		return "duplicate-warning"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Replacement is one reference token to be rendered in place of its source
// text.
type Replacement struct {
	Span     region.Span // source token bytes
	Kind     Kind
	Ref      marker.Kind // Example or CustomLabel
	Label    string      // label as written in the token
	Resolved string      // resolved label
	Number   int         // example number; 0 for custom labels
	Display  string      // text to render, like "(3)" or "(P1)"
	Content  string      // content of the label's first declaration

	// First locates the first declaration of a duplicated label; only set
	// for DuplicateWarning replacements.
	First numbering.Occurrence
}

// Resolver scans text for references.
type Resolver struct {
	// ExtendedLabels enables custom label references.
	ExtendedLabels bool
}

// Resolve scans content text for references, returning replacements in
// text order with spans offset by base. Unknown labels produce no
// replacement, leaving their token as literal text. Tokens inside inline
// code spans are ignored.
//
// Resolve only reads from the engine.
func (r Resolver) Resolve(text string, base int, engine *numbering.Engine) []Replacement {
	var reps []Replacement
	for i := 0; i < len(text); {
		switch text[i] {
		case '`':
			i = skipCode(text, i)
			continue

		case '(':
			if label, n := marker.ExampleToken(text[i:]); n > 0 && label != "" {
				if rep, ok := resolveExample(engine, label); ok {
					rep.Span = region.Span{From: base + i, To: base + i + n}
					reps = append(reps, rep)
				}
				i += n
				continue
			}

		case '{':
			if !r.ExtendedLabels {
				break
			}
			if label, n := marker.CustomLabelToken(text[i:]); n > 0 {
				if rep, ok := resolveCustomLabel(engine, label); ok {
					rep.Span = region.Span{From: base + i, To: base + i + n}
					reps = append(reps, rep)
				}
				i += n
				continue
			}
		}
		i++
	}
	return reps
}

func resolveExample(engine *numbering.Engine, label string) (Replacement, bool) {
	ex, ok := engine.LookupExample(label)
	if !ok {
		return Replacement{}, false
	}
	rep := Replacement{
		Ref:      marker.Example,
		Label:    label,
		Resolved: label,
		Number:   ex.Number,
		Display:  "(" + strconv.Itoa(ex.Number) + ")",
		Content:  ex.Content,
	}
	if engine.Examples.Duplicate(label) {
		rep.Kind = DuplicateWarning
		rep.First, _ = engine.Examples.First(label)
	}
	return rep, true
}

func resolveCustomLabel(engine *numbering.Engine, label string) (Replacement, bool) {
	cl, ok := engine.LookupCustomLabel(label)
	if !ok {
		return Replacement{}, false
	}
	rep := Replacement{
		Ref:      marker.CustomLabel,
		Label:    label,
		Resolved: cl.Resolved,
		Display:  "(" + cl.Resolved + ")",
		Content:  cl.Content,
	}
	if engine.CustomLabels.Duplicate(cl.Resolved) {
		rep.Kind = DuplicateWarning
		rep.First, _ = engine.CustomLabels.First(cl.Resolved)
	}
	return rep, true
}

// skipCode returns the offset after the inline code span opening at i, or
// just after its opening backticks if the span is never closed.
func skipCode(text string, i int) int {
	j := i
	for j < len(text) && text[j] == '`' {
		j++
	}
	fence := text[i:j]
	for k := j; k < len(text); {
		at := strings.Index(text[k:], fence)
		if at < 0 {
			break
		}
		end := k + at + len(fence)
		if end == len(text) || text[end] != '`' {
			return end
		}
		// longer backtick run; keep looking
		for end < len(text) && text[end] == '`' {
			end++
		}
		k = end
	}
	return j
}
