package main

import (
	"io"

	"github.com/jcorbin/listnum/pipeline"
)

// ResolveCmd substitutes numbers into documents.
type ResolveCmd struct {
	Write    bool     `short:"w" help:"Write results back to each file instead of stdout."`
	Renumber bool     `help:"Only renumber stale fancy list markers, leaving other syntax alone."`
	Files    []string `arg:"" default:"-" help:"Documents to resolve; - reads stdin."`
}

// Run resolves every file.
func (c *ResolveCmd) Run(g *Globals) error {
	for _, name := range c.Files {
		doc, err := g.load(name)
		if err != nil {
			return err
		}
		edits := doc.res.ResolveEdits()
		if c.Renumber {
			edits = doc.res.RenumberEdits()
		}
		out := pipeline.ApplyEdits(doc.src, edits)
		if c.Write {
			if err := writeStore(g.storeFor(name), out); err != nil {
				return err
			}
		} else if _, err := io.WriteString(g.stdout, out); err != nil {
			return err
		}
	}
	return nil
}
