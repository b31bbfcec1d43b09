package region_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/listnum/marker"
	"github.com/jcorbin/listnum/region"
	"github.com/jcorbin/listnum/scandown"
)

func split(src string, strict bool) ([]region.Region, []region.Info) {
	lines := scandown.Lines(src)
	marks := make([]marker.Marker, len(lines))
	for i, line := range lines {
		if !line.Block.Code() {
			marks[i] = marker.Classify(line.Text)
		}
	}
	return region.Splitter{Strict: strict}.Split(lines, marks)
}

func describe(src string, regions []region.Region) []string {
	var out []string
	for _, r := range regions {
		s := fmt.Sprintf("%v %v-%v %q", r.Parent, r.Line, r.LastLine, src[r.Span.From:r.Span.To])
		if r.Marker.Len() > 0 {
			s += fmt.Sprintf(" marker=%q", src[r.Marker.From:r.Marker.To])
		}
		out = append(out, s)
	}
	return out
}

func TestSplit(t *testing.T) {
	src := strings.Join([]string{
		"Intro (@a) here.",
		"continued line",
		"",
		"(@a) First",
		"     more of first",
		"",
		"     still first",
		"(@) Second",
		"Term",
		"~ def one",
		"  def cont",
		"```",
		"(@b) code",
		"```",
		"#. hash",
		"",
	}, "\n")

	regions, infos := split(src, false)
	assert.Equal(t, []string{
		`None 0-1 "Intro (@a) here.\ncontinued line"`,
		`Example 3-6 "First\n     more of first\n\n     still first" marker="(@a)"`,
		`Example 7-7 "Second" marker="(@)"`,
		`DefinitionTerm 8-8 "Term"`,
		`DefinitionItem 9-10 "def one\n  def cont" marker="~"`,
		`Hash 14-14 "hash" marker="#."`,
	}, describe(src, regions))

	require.Len(t, infos, 15)
	assert.True(t, regions[1].Multiline)
	assert.False(t, regions[2].Multiline)
	assert.Equal(t, marker.DefinitionTerm, infos[8].Marker.Kind)
	assert.True(t, infos[4].Continuation)
	assert.True(t, infos[6].Continuation)
	assert.Equal(t, 1, infos[5].Region, "inner blank line stays in its item")
	assert.Equal(t, -1, infos[2].Region)
	for i := 11; i <= 13; i++ {
		assert.Equal(t, -1, infos[i].Region, "code line %v", i)
		assert.Equal(t, marker.None, infos[i].Marker.Kind, "code line %v", i)
	}
}

func TestSplit_trailingBlank(t *testing.T) {
	src := "a. one\n\nafter\n"
	regions, infos := split(src, false)
	assert.Equal(t, []string{
		`Fancy 0-0 "one" marker="a."`,
		`None 2-2 "after"`,
	}, describe(src, regions))
	assert.Equal(t, -1, infos[1].Region)
}

func TestSplit_definitionContinuation(t *testing.T) {
	src := strings.Join([]string{
		"Term",
		"~ def one",
		"  continued",
		": def two",
	}, "\n")
	regions, infos := split(src, false)
	assert.Equal(t, []string{
		`DefinitionTerm 0-0 "Term"`,
		`DefinitionItem 1-2 "def one\n  continued" marker="~"`,
		`DefinitionItem 3-3 "def two" marker=":"`,
	}, describe(src, regions))
	assert.True(t, infos[2].Continuation)
	assert.Equal(t, marker.None, infos[2].Marker.Kind)
}

func TestSplit_narrow(t *testing.T) {
	for _, tc := range []struct {
		line   string
		reason string
	}{
		{"A. one", region.ReasonNarrowSpace},
		{"B) one", region.ReasonNarrowSpace},
		{"A.  one", ""},
		{"B)  one", ""},
		{"a. one", ""},
		{"IV. four", ""},
	} {
		t.Run(tc.line, func(t *testing.T) {
			_, infos := split(tc.line+"\n", true)
			require.Len(t, infos, 1)
			assert.Equal(t, tc.reason != "", infos[0].Invalid)
			assert.Equal(t, tc.reason, infos[0].Reason)
		})
	}
}

func TestSplit_strict(t *testing.T) {
	src := strings.Join([]string{
		"Para",
		"a. one",
		"b. two",
		"",
		"Middle para",
		"",
		"A. one",
		"B.  two",
		"",
		"Again",
		"",
		"c) three",
		"after",
	}, "\n")

	t.Run("strict", func(t *testing.T) {
		regions, infos := split(src, true)
		assert.Equal(t, []string{
			`None 0-0 "Para"`,
			`None 4-4 "Middle para"`,
			`Fancy 7-7 "two" marker="B."`,
			`None 9-9 "Again"`,
			`None 12-12 "after"`,
		}, describe(src, regions))

		for _, tc := range []struct {
			line   int
			reason string
		}{
			{1, region.ReasonNoBlankBefore},
			{2, region.ReasonNoBlankBefore},
			{6, region.ReasonNarrowSpace},
			{11, region.ReasonNoBlankAfter},
		} {
			info := infos[tc.line]
			assert.True(t, info.Invalid, "line %v", tc.line)
			assert.Equal(t, tc.reason, info.Reason, "line %v", tc.line)
			assert.Equal(t, -1, info.Region, "line %v", tc.line)
		}
		assert.False(t, infos[7].Invalid)
	})

	t.Run("lenient", func(t *testing.T) {
		regions, infos := split(src, false)
		assert.Len(t, regions, 9)
		for _, info := range infos {
			assert.False(t, info.Invalid)
		}
	})
}

func TestSpan(t *testing.T) {
	sp := region.Span{From: 3, To: 7}
	assert.Equal(t, 4, sp.Len())
	assert.True(t, sp.Contains(3))
	assert.True(t, sp.Contains(7))
	assert.False(t, sp.Contains(8))
}
