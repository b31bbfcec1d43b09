package scandown_test

import (
	"bufio"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/listnum/scandown"
)

func Example() {
	var lines scandown.LineScanner
	sc := bufio.NewScanner(strings.NewReader("" +
		"Some prose\n" +
		"\n" +
		"```go\n" +
		"(@x) in code\n" +
		"```\n" +
		"  - bullet\n" +
		"1. one\n" +
		"~~~~\n" +
		"~~~"))
	sc.Split(lines.Scan)
	for sc.Scan() {
		fmt.Printf("%+v\n", lines.Line())
	}

	// Output:
	// 0@0 Paragraph "Some prose"
	// 1@11 Blank ""
	// 2@12 Codefence delim='`' width=3 "```go"
	// 3@18 Codefence delim='`' width=3 "(@x) in code"
	// 4@31 Codefence delim='`' width=3 "```"
	// 5@35 Item delim='-' width=2 indent=2 "  - bullet"
	// 6@46 OrderedItem delim='.' width=3 "1. one"
	// 7@53 Codefence delim='~' width=4 "~~~~"
	// 8@58 Codefence delim='~' width=4 "~~~"
}

func TestLines(t *testing.T) {
	for _, tc := range []struct {
		name  string
		in    string
		texts []string
		code  []bool
	}{
		{
			name: "empty",
			in:   "",
		},
		{
			name:  "trailing newline",
			in:    "a\nb\n",
			texts: []string{"a", "b"},
			code:  []bool{false, false},
		},
		{
			name:  "crlf",
			in:    "a\r\nb",
			texts: []string{"a", "b"},
			code:  []bool{false, false},
		},
		{
			name:  "indented fence is not a fence",
			in:    "    ```\nx\n",
			texts: []string{"    ```", "x"},
			code:  []bool{false, false},
		},
		{
			name:  "closing fence must match delimiter",
			in:    "~~~\n```\n~~~\nafter",
			texts: []string{"~~~", "```", "~~~", "after"},
			code:  []bool{true, true, true, false},
		},
		{
			name:  "closing fence may not have info",
			in:    "```\n``` x\n```\n",
			texts: []string{"```", "``` x", "```"},
			code:  []bool{true, true, true},
		},
		{
			name:  "definition tilde is not a fence",
			in:    "term\n~ def\n",
			texts: []string{"term", "~ def"},
			code:  []bool{false, false},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			lines := scandown.Lines(tc.in)
			var (
				texts []string
				code  []bool
			)
			for i, line := range lines {
				assert.Equal(t, i, line.Index, "expected line index")
				assert.Equal(t, line.Text, tc.in[line.Start:line.End], "expected line range")
				texts = append(texts, line.Text)
				code = append(code, line.Block.Code())
			}
			assert.Equal(t, tc.texts, texts, "expected line texts")
			assert.Equal(t, tc.code, code, "expected code lines")
		})
	}
}

func TestParseMark(t *testing.T) {
	for _, tc := range []struct {
		line    string
		ordered bool
		typ     string
	}{
		{"1. one", true, "OrderedItem"},
		{"12) twelve", true, "OrderedItem"},
		{"1.5 apples", false, "None"},
		{"- bullet", false, "Item"},
		{"---", false, "Ruler"},
		{"> quote", false, "Blockquote"},
		{"A. alpha", false, "None"},
	} {
		t.Run(tc.line, func(t *testing.T) {
			b, _ := scandown.ParseMark(0, []byte(tc.line))
			assert.Equal(t, tc.ordered, b.Ordered(), "expected ordered")
			assert.Equal(t, tc.typ, fmt.Sprint(b), "expected block type")
		})
	}
}

func TestCollapseSpace(t *testing.T) {
	assert.Equal(t, "a b c", scandown.CollapseSpace("  a\n   b\t\tc \n"))
	assert.Equal(t, "", scandown.CollapseSpace(" \n "))
	assert.Equal(t, "a b", scandown.CollapseSpace("a\r\nb\r\n"))
}

func TestIndent(t *testing.T) {
	n, tail := scandown.Indent([]byte("  \tx"))
	assert.Equal(t, 4, n)
	assert.Equal(t, "x", string(tail))

	n, tail = scandown.Indent([]byte("   y"))
	assert.Equal(t, 3, n)
	assert.Equal(t, "y", string(tail))
}
