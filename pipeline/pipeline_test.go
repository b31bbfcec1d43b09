package pipeline_test

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/listnum/marker"
	"github.com/jcorbin/listnum/numbering"
	"github.com/jcorbin/listnum/pipeline"
	"github.com/jcorbin/listnum/region"
	"github.com/jcorbin/listnum/resolve"
	"github.com/jcorbin/listnum/scandown"
)

func doc(lines ...string) *pipeline.Text {
	return pipeline.NewText(strings.Join(lines, "\n") + "\n")
}

func recompute(t *testing.T, d pipeline.Document, cfg pipeline.Config) *pipeline.Result {
	res, err := pipeline.Recompute(d, cfg)
	require.NoError(t, err)
	return res
}

func resolved(t *testing.T, d *pipeline.Text, cfg pipeline.Config) string {
	res := recompute(t, d, cfg)
	return pipeline.ApplyEdits(d.String(), res.ResolveEdits())
}

var examples = doc(
	"Intro refers to (@x) and (@missing).",
	"",
	"(@x) A",
	"#. first hash",
	"#. second hash",
	"(@x) B",
	"(@y) C",
	"",
	"See (@x), (@y).",
)

func TestRecompute_duplicates(t *testing.T) {
	res := recompute(t, examples, pipeline.Config{})

	line := res.Lines[5]
	assert.Equal(t, marker.Example, line.Marker.Kind)
	assert.True(t, line.Duplicate)
	assert.Equal(t, 1, line.Number)
	assert.False(t, res.Lines[2].Duplicate)
	assert.Equal(t, 2, res.Lines[6].Number)

	var refs []resolve.Replacement
	for _, rep := range res.Replacements {
		if rep.Label == "x" {
			refs = append(refs, rep)
		}
	}
	require.Len(t, refs, 2)
	for _, rep := range refs {
		assert.Equal(t, resolve.DuplicateWarning, rep.Kind)
		assert.Equal(t, "(1)", rep.Display)
		assert.Equal(t, numbering.Occurrence{Line: 2, Content: "A"}, rep.First)
	}

	assert.Equal(t, []numbering.Entry{
		{Raw: "x", Label: "x", Number: 1, Content: "A", Line: 2, Duplicate: true},
		{Raw: "y", Label: "y", Number: 2, Content: "C", Line: 6},
	}, res.Examples)
	assert.Len(t, res.Duplicates(), 1)
}

func TestRecompute_resolveText(t *testing.T) {
	assert.Equal(t, strings.Join([]string{
		"Intro refers to (@x) and (@missing).",
		"",
		"(1) A",
		"1. first hash",
		"2. second hash",
		"(1) B",
		"(2) C",
		"",
		"See (@x), (2).",
		"",
	}, "\n"), resolved(t, examples, pipeline.Config{}))
}

func TestRecompute_deterministic(t *testing.T) {
	cfg := pipeline.Config{ExtendedLabels: true}
	d := doc(
		"{::P(#a)} premise",
		"(@q) question",
		"",
		"a. one",
		"b. two",
		"",
		"Refs {::P(#a)} (@q)",
	)
	a := recompute(t, d, cfg)
	b := recompute(t, d, cfg)
	assert.Equal(t, a, b)
	assert.NotSame(t, a, b)

	c := recompute(t, d, pipeline.Config{})
	assert.NotEqual(t, a.Revision, c.Revision, "config is part of the revision")
}

func TestRecompute_firstAppearance(t *testing.T) {
	res := recompute(t, doc(
		"(@c) third letter, first seen",
		"(@a) first letter",
		"",
		"mention (@b) early",
		"",
		"(@b) declared last",
		"(@a) again",
	), pipeline.Config{})

	var labels []string
	var numbers []int
	for _, ent := range res.Examples {
		labels = append(labels, ent.Label)
		numbers = append(numbers, ent.Number)
	}
	assert.Equal(t, []string{"c", "a", "b"}, labels)
	assert.Equal(t, []int{1, 2, 3}, numbers)
}

func TestRecompute_placeholders(t *testing.T) {
	cfg := pipeline.Config{ExtendedLabels: true}
	labels := func(res *pipeline.Result) []string {
		var out []string
		for _, lr := range res.Lines {
			if lr.Marker.Kind == marker.CustomLabel {
				out = append(out, lr.Label)
			}
		}
		return out
	}

	before := recompute(t, doc(
		"{::P(#a)} first",
		"{::P(#b)} second",
		"",
		"See {::P(#b)}.",
	), cfg)
	assert.Equal(t, []string{"P1", "P2"}, labels(before))

	after := doc(
		"{::P(#a)} first",
		"{::P(#c)} inserted",
		"{::P(#b)} second",
		"",
		"See {::P(#b)}.",
	)
	res := recompute(t, after, cfg)
	assert.Equal(t, []string{"P1", "P2", "P3"}, labels(res))
	assert.Equal(t, []numbering.Placeholder{{Name: "a", Number: 1}, {Name: "c", Number: 2}, {Name: "b", Number: 3}}, res.Placeholders)
	assert.Equal(t, strings.Join([]string{
		"(P1) first",
		"(P2) inserted",
		"(P3) second",
		"",
		"See (P3).",
		"",
	}, "\n"), pipeline.ApplyEdits(after.String(), res.ResolveEdits()))

	ph := res.Lines[1].Placeholders
	require.Len(t, ph, 1)
	assert.Equal(t, "(#c)", after.SliceString(ph[0].From, ph[0].To))

	off := recompute(t, after, pipeline.Config{})
	assert.Empty(t, labels(off), "custom labels need extended labels")
	assert.Empty(t, off.Replacements)
}

func TestRecompute_unresolved(t *testing.T) {
	d := doc(
		"See (@missing) here.",
		"",
		"(@x) declared",
		"",
		"Also {::nope} and (@x).",
	)
	cfg := pipeline.Config{ExtendedLabels: true}
	assert.Equal(t,
		"See (@missing) here.\n\n(1) declared\n\nAlso {::nope} and (1).\n",
		resolved(t, d, cfg))

	res := recompute(t, d, cfg)
	assert.Empty(t, res.LineReplacements(0))
	assert.Len(t, res.LineReplacements(4), 1)
}

func TestRecompute_decimal(t *testing.T) {
	res := recompute(t, doc("1. text", "iv. text"), pipeline.Config{})
	assert.Equal(t, marker.None, res.Lines[0].Marker.Kind)
	m := res.Lines[1].Marker
	assert.Equal(t, marker.Fancy, m.Kind)
	assert.Equal(t, marker.LowerRoman, m.Family)
	assert.Equal(t, "iv", m.Value)
}

func TestRecompute_strict(t *testing.T) {
	d := doc("para", "a. item", "", "b. ok")
	res := recompute(t, d, pipeline.Config{StrictMode: true})
	assert.True(t, res.Lines[1].Invalid)
	assert.Equal(t, -1, res.Lines[1].Region)
	assert.Equal(t, "", res.Lines[1].Display)
	assert.True(t, res.Lines[3].Invalid, "loose items share their list block")
	assert.Len(t, res.InvalidLines(), 2)

	res = recompute(t, d, pipeline.Config{})
	assert.False(t, res.Lines[1].Invalid)
	assert.Equal(t, "a.", res.Lines[1].Display)
}

func TestRecompute_code(t *testing.T) {
	res := recompute(t, doc(
		"(@x) declared",
		"```",
		"(@y) not declared",
		"see (@x)",
		"```",
		"see (@x) and `(@x)`",
	), pipeline.Config{})
	assert.Len(t, res.Examples, 1)
	assert.True(t, res.Lines[2].Code())
	assert.Equal(t, marker.None, res.Lines[2].Marker.Kind)
	require.Len(t, res.Replacements, 1)
	assert.Equal(t, 5, res.Lines[5].Index)
	assert.Equal(t, []resolve.Replacement{res.Replacements[0]}, res.LineReplacements(5))
}

func TestRecompute_ordinals(t *testing.T) {
	d := doc("C. three", "A. four", "A. five")
	res := recompute(t, d, pipeline.Config{})
	assert.Equal(t, []int{3, 4, 5}, []int{res.Lines[0].Number, res.Lines[1].Number, res.Lines[2].Number})
	assert.Equal(t, []pipeline.Edit{
		{Span: region.Span{From: 9, To: 11}, Text: "D."},
		{Span: region.Span{From: 17, To: 19}, Text: "E."},
	}, res.RenumberEdits())
	assert.Equal(t, "C. three\nD. four\nE. five\n",
		pipeline.ApplyEdits(d.String(), res.RenumberEdits()))
}

func TestRecompute_definitions(t *testing.T) {
	res := recompute(t, doc(
		"Term",
		"~ def one",
		"  continued",
		": def two",
		"Other prose",
	), pipeline.Config{})
	assert.Equal(t, []pipeline.Definition{{
		Line:  0,
		Term:  "Term",
		Items: []string{"def one continued", "def two"},
	}}, res.Definitions)
	assert.Equal(t, marker.DefinitionTerm, res.Lines[0].Marker.Kind)
	assert.True(t, res.Lines[2].Continuation)
	assert.Equal(t, marker.None, res.Lines[2].Marker.Kind)
}

type badDoc struct {
	*pipeline.Text
	mangle func(i int, line scandown.Line) scandown.Line
}

func (d badDoc) LineAt(i int) scandown.Line { return d.mangle(i, d.Text.LineAt(i)) }

func TestRecompute_precondition(t *testing.T) {
	base := doc("one", "two", "three")
	for _, tc := range []struct {
		name   string
		mangle func(i int, line scandown.Line) scandown.Line
	}{
		{"index", func(i int, line scandown.Line) scandown.Line {
			line.Index = 0
			return line
		}},
		{"inverted", func(i int, line scandown.Line) scandown.Line {
			if i == 1 {
				line.Start, line.End = line.End, line.Start
			}
			return line
		}},
		{"non-monotonic", func(i int, line scandown.Line) scandown.Line {
			if i == 2 {
				line.Start, line.End = 0, 5
			}
			return line
		}},
		{"text mismatch", func(i int, line scandown.Line) scandown.Line {
			if i == 1 {
				line.Text = "TWO"
			}
			return line
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := pipeline.Recompute(badDoc{base, tc.mangle}, pipeline.Config{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, pipeline.ErrPrecondition), "got %v", err)
		})
	}
}

func TestSession(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := pipeline.NewSession(pipeline.Config{}, log)
	assert.Nil(t, s.Result())

	a, err := s.Recompute(examples)
	require.NoError(t, err)
	b, err := s.Recompute(examples)
	require.NoError(t, err)
	assert.Same(t, a, b, "unchanged document reuses its result")
	assert.Same(t, a, s.Result())

	s.SetConfig(pipeline.Config{StrictMode: true})
	c, err := s.Recompute(examples)
	require.NoError(t, err)
	assert.NotSame(t, a, c)
	assert.True(t, c.Config.StrictMode)

	s.Reset()
	assert.Nil(t, s.Result())
}

func TestWorkspace(t *testing.T) {
	w := pipeline.NewWorkspace(pipeline.Config{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	a := w.Open("a.md")
	assert.Same(t, a, w.Open("a.md"))
	w.Open("b.md")
	assert.Equal(t, 2, w.Len())

	r := w.Reload("a.md")
	assert.NotEqual(t, a.ID(), r.ID())
	assert.Same(t, r, w.Open("a.md"))

	w.Close("a.md")
	assert.Equal(t, 1, w.Len())
}

func TestDisplayLevel(t *testing.T) {
	mark := region.Span{From: 10, To: 22}
	phs := []region.Span{{From: 14, To: 18}}
	for _, tc := range []struct {
		cursor int
		phs    []region.Span
		expect pipeline.Level
	}{
		{cursor: 0, phs: phs, expect: pipeline.Collapsed},
		{cursor: 30, phs: phs, expect: pipeline.Collapsed},
		{cursor: 11, phs: phs, expect: pipeline.SemiExpanded},
		{cursor: 15, phs: phs, expect: pipeline.Full},
		{cursor: 11, expect: pipeline.Full},
	} {
		assert.Equal(t, tc.expect, pipeline.DisplayLevel(tc.cursor, mark, tc.phs), "cursor %v", tc.cursor)
	}
}
