package main

import (
	"github.com/jcorbin/listnum/internal/render"
)

// HTMLCmd renders a document to HTML.
type HTMLCmd struct {
	Output     string `short:"o" default:"-" help:"Output file; - writes stdout."`
	TooltipLen int    `name:"tooltip-len" default:"80" help:"Maximum tooltip length."`
	File       string `arg:"" default:"-" help:"Document to render; - reads stdin."`
}

// Run renders the document.
func (c *HTMLCmd) Run(g *Globals) error {
	doc, err := g.load(c.File)
	if err != nil {
		return err
	}
	out, err := render.Renderer{TooltipLen: c.TooltipLen}.Render(doc.src, doc.res)
	if err != nil {
		return err
	}
	return writeStore(g.storeFor(c.Output), string(out))
}
