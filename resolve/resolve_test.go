package resolve_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/listnum/marker"
	"github.com/jcorbin/listnum/numbering"
	"github.com/jcorbin/listnum/region"
	"github.com/jcorbin/listnum/resolve"
)

// apply substitutes display text for replacements in text starting at base.
func apply(text string, base int, reps []resolve.Replacement) string {
	var sb strings.Builder
	last := 0
	for _, rep := range reps {
		from, to := rep.Span.From-base, rep.Span.To-base
		sb.WriteString(text[last:from])
		sb.WriteString(rep.Display)
		last = to
	}
	sb.WriteString(text[last:])
	return sb.String()
}

func engine() *numbering.Engine {
	var e numbering.Engine
	e.RegisterExample("good", "Good example", 0)
	e.RegisterExample("", "unlabeled", 1)
	e.RegisterExample("x", "A", 2)
	e.RegisterExample("x", "B", 5)
	e.RegisterCustomLabel("P(#a)", "Premise", 6)
	return &e
}

func TestResolve(t *testing.T) {
	e := engine()
	before := e.Counters()

	text := "See (@good), (@x), (@missing), (@), {::P(#a)} and {::P1}."
	reps := resolve.Resolver{ExtendedLabels: true}.Resolve(text, 100, e)
	require.Len(t, reps, 4)

	assert.Equal(t, resolve.Replacement{
		Span:     region.Span{From: 104, To: 111},
		Kind:     resolve.Resolved,
		Ref:      marker.Example,
		Label:    "good",
		Resolved: "good",
		Number:   1,
		Display:  "(1)",
		Content:  "Good example",
	}, reps[0])

	assert.Equal(t, resolve.DuplicateWarning, reps[1].Kind)
	assert.Equal(t, "(3)", reps[1].Display, "duplicates resolve to the first number")
	assert.Equal(t, numbering.Occurrence{Line: 2, Content: "A"}, reps[1].First)

	assert.Equal(t, marker.CustomLabel, reps[2].Ref)
	assert.Equal(t, "P1", reps[2].Resolved)
	assert.Equal(t, "(P1)", reps[2].Display)
	assert.Equal(t, "(P1)", reps[3].Display)

	assert.Equal(t, before, e.Counters(), "resolution is read only")

	assert.Equal(t,
		"See (1), (3), (@missing), (@), (P1) and (P1).",
		apply(text, 100, reps))
}

func TestResolve_extendedOff(t *testing.T) {
	reps := resolve.Resolver{}.Resolve("{::P(#a)} (@good)", 0, engine())
	require.Len(t, reps, 1)
	assert.Equal(t, "good", reps[0].Label)
}

func TestResolve_code(t *testing.T) {
	for _, tc := range []struct {
		text   string
		expect string
	}{
		{"`(@good)` (@good)", "`(@good)` (1)"},
		{"``a ` (@good)`` (@good)", "``a ` (@good)`` (1)"},
		{"`unclosed (@good)", "`unclosed (1)"},
		{"```(@good)`` (@good)", "```(1)`` (1)"},
	} {
		t.Run(tc.text, func(t *testing.T) {
			reps := resolve.Resolver{}.Resolve(tc.text, 0, engine())
			assert.Equal(t, tc.expect, apply(tc.text, 0, reps))
		})
	}
}
