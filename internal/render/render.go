// Package render produces static HTML from a recomputed document: numbered
// markers and resolved references are substituted into the markdown source,
// blackfriday renders it, and a final pass over the HTML tree attaches
// hover tooltips and duplicate warnings.
package render

import (
	"bytes"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/russross/blackfriday"
	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/jcorbin/listnum/internal/textutil"
	"github.com/jcorbin/listnum/marker"
	"github.com/jcorbin/listnum/pipeline"
	"github.com/jcorbin/listnum/region"
	"github.com/jcorbin/listnum/resolve"
)

// Class names used on generated elements.
const (
	MarkerClass    = "listnum-marker"
	RefClass       = "listnum-ref"
	DuplicateClass = "duplicate"
)

// Renderer renders documents to HTML.
type Renderer struct {
	// TooltipLen limits tooltip text, in runes; 0 means DefaultTooltipLen.
	TooltipLen int
}

// DefaultTooltipLen is the tooltip limit of the zero Renderer.
const DefaultTooltipLen = 80

const extensions = blackfriday.CommonExtensions | blackfriday.DefinitionLists

// Render renders src, which res must have been recomputed from.
func (r Renderer) Render(src string, res *pipeline.Result) ([]byte, error) {
	md := Markdown(src, res)
	out := blackfriday.Run([]byte(md), blackfriday.WithExtensions(extensions))
	return r.annotate(out, res)
}

// Markdown returns src with numbered markers and resolved references
// replaced by inline HTML spans, and definition markers normalized to the
// ':' form.
func Markdown(src string, res *pipeline.Result) string {
	var edits []pipeline.Edit
	for i, lr := range res.Lines {
		m := lr.Marker
		if lr.Invalid || lr.Region < 0 {
			continue
		}
		span := region.Span{From: lr.Start + m.Offset, To: lr.Start + m.Offset + m.Len}
		switch {
		case m.Kind == marker.DefinitionItem:
			edits = append(edits, pipeline.Edit{Span: span, Text: ":"})
		case lr.Display != "":
			edits = append(edits, pipeline.Edit{
				Span: span,
				Text: fmt.Sprintf(`<span class="%s" data-line="%d">%s</span>`,
					MarkerClass, i, html.EscapeString(lr.Display)),
			})
		}
	}
	for i, rep := range res.Replacements {
		edits = append(edits, pipeline.Edit{
			Span: rep.Span,
			Text: fmt.Sprintf(`<span class="%s" data-ref="%d">%s</span>`,
				RefClass, i, html.EscapeString(rep.Display)),
		})
	}
	pipeline.SortEdits(edits)
	return pipeline.ApplyEdits(src, edits)
}

// annotate walks rendered HTML, adding titles and duplicate classes to the
// spans generated by Markdown.
func (r Renderer) annotate(out []byte, res *pipeline.Result) ([]byte, error) {
	body := &xhtml.Node{Type: xhtml.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := xhtml.ParseFragment(bytes.NewReader(out), body)
	if err != nil {
		return nil, fmt.Errorf("parsing rendered html: %w", err)
	}

	var walk func(*xhtml.Node)
	walk = func(n *xhtml.Node) {
		if n.Type == xhtml.ElementNode && n.DataAtom == atom.Span {
			switch {
			case hasClass(n, RefClass):
				if i, ok := intAttr(n, "data-ref"); ok && i < len(res.Replacements) {
					r.annotateRef(n, res.Replacements[i])
				}
			case hasClass(n, MarkerClass):
				if i, ok := intAttr(n, "data-line"); ok && i < len(res.Lines) {
					r.annotateMarker(n, res, res.Lines[i])
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	var buf bytes.Buffer
	for _, n := range nodes {
		walk(n)
		if err := xhtml.Render(&buf, n); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func (r Renderer) tooltip(s string) string {
	n := r.TooltipLen
	if n <= 0 {
		n = DefaultTooltipLen
	}
	return textutil.Truncate(s, n)
}

func (r Renderer) annotateRef(n *xhtml.Node, rep resolve.Replacement) {
	if rep.Kind == resolve.DuplicateWarning {
		addClass(n, DuplicateClass)
		setAttr(n, "title", fmt.Sprintf("duplicate label %q, first declared on line %d: %s",
			rep.Label, rep.First.Line+1, r.tooltip(rep.First.Content)))
		return
	}
	setAttr(n, "title", r.tooltip(rep.Content))
}

func (r Renderer) annotateMarker(n *xhtml.Node, res *pipeline.Result, lr pipeline.LineResult) {
	if !lr.Duplicate {
		return
	}
	addClass(n, DuplicateClass)
	var first int
	switch lr.Marker.Kind {
	case marker.Example:
		for _, ent := range res.Examples {
			if ent.Label == lr.Label {
				first = ent.Line
			}
		}
	case marker.CustomLabel:
		for _, ent := range res.CustomLabels {
			if ent.Label == lr.Label {
				first = ent.Line
			}
		}
	}
	setAttr(n, "title", fmt.Sprintf("duplicate label %q, first declared on line %d", lr.Label, first+1))
}

func hasClass(n *xhtml.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key == "class" {
			for _, c := range strings.Fields(attr.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

func addClass(n *xhtml.Node, class string) {
	for i, attr := range n.Attr {
		if attr.Key == "class" {
			n.Attr[i].Val = attr.Val + " " + class
			return
		}
	}
	n.Attr = append(n.Attr, xhtml.Attribute{Key: "class", Val: class})
}

func setAttr(n *xhtml.Node, key, val string) {
	for i, attr := range n.Attr {
		if attr.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, xhtml.Attribute{Key: key, Val: val})
}

func intAttr(n *xhtml.Node, key string) (int, bool) {
	for _, attr := range n.Attr {
		if attr.Key == key {
			i, err := strconv.Atoi(attr.Val)
			return i, err == nil && i >= 0
		}
	}
	return 0, false
}
