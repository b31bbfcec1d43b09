package render_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/listnum/internal/render"
	"github.com/jcorbin/listnum/pipeline"
)

var src = strings.Join([]string{
	"(@good) A good example.",
	"",
	"See (@good) and `(@good)`.",
	"",
	"(@dup) first",
	"(@dup) second",
	"",
	"Refer to (@dup).",
	"",
	"Term",
	"~ definition",
	"",
}, "\n")

func recompute(t *testing.T) *pipeline.Result {
	res, err := pipeline.Recompute(pipeline.NewText(src), pipeline.Config{})
	require.NoError(t, err)
	return res
}

func TestMarkdown(t *testing.T) {
	assert.Equal(t, strings.Join([]string{
		`<span class="listnum-marker" data-line="0">(1)</span> A good example.`,
		"",
		"See <span class=\"listnum-ref\" data-ref=\"0\">(1)</span> and `(@good)`.",
		"",
		`<span class="listnum-marker" data-line="4">(2)</span> first`,
		`<span class="listnum-marker" data-line="5">(2)</span> second`,
		"",
		`Refer to <span class="listnum-ref" data-ref="1">(2)</span>.`,
		"",
		"Term",
		": definition",
		"",
	}, "\n"), render.Markdown(src, recompute(t)))
}

func TestRender(t *testing.T) {
	out, err := render.Renderer{}.Render(src, recompute(t))
	require.NoError(t, err)
	s := string(out)

	assert.Contains(t, s, `<span class="listnum-ref" data-ref="0" title="A good example.">(1)</span>`)
	assert.Contains(t, s, `<code>(@good)</code>`)
	assert.Contains(t, s, `<span class="listnum-marker duplicate" data-line="5" title=`)
	assert.Contains(t, s, `<span class="listnum-ref duplicate" data-ref="1" title=`)
	assert.Contains(t, s, "first declared on line 5: first")
	assert.Contains(t, s, "<dt>Term</dt>")
	assert.NotContains(t, s, `class="listnum-marker duplicate" data-line="4"`)
}

func TestRender_tooltipLen(t *testing.T) {
	long := "(@x) " + strings.Repeat("word ", 40) + "\n\nsee (@x)\n"
	res, err := pipeline.Recompute(pipeline.NewText(long), pipeline.Config{})
	require.NoError(t, err)
	out, err := render.Renderer{TooltipLen: 9}.Render(long, res)
	require.NoError(t, err)
	assert.Contains(t, string(out), `title="word word…"`)
}
