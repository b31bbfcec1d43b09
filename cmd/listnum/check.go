package main

import (
	"fmt"
	"io"

	"github.com/jcorbin/listnum/internal/textutil"
	"github.com/jcorbin/listnum/marker"
	"github.com/jcorbin/listnum/numbering"
	"github.com/jcorbin/listnum/pipeline"
)

// CheckCmd reports problems.
type CheckCmd struct {
	Files []string `arg:"" default:"-" help:"Documents to check; - reads stdin."`
}

// Run checks every file, returning errDiagnostics if any problem was found.
func (c *CheckCmd) Run(g *Globals) error {
	problems := 0
	for _, name := range c.Files {
		doc, err := g.load(name)
		if err != nil {
			return err
		}
		n, err := check(g.stdout, doc)
		if err != nil {
			return err
		}
		problems += n
	}
	if problems > 0 {
		fmt.Fprintf(g.stdout, "%v\n", errorStyle.Render(fmt.Sprintf("%v problem(s)", problems)))
		return errDiagnostics
	}
	return nil
}

func check(out io.Writer, doc document) (problems int, err error) {
	ew := &textutil.ErrWriter{Writer: out}
	for _, lr := range doc.res.Lines {
		switch {
		case lr.Invalid:
			problems++
			ew.Printf("%v:%v: %v\n", doc.name, lr.Index+1, warnStyle.Render(lr.Reason))
		case lr.Duplicate:
			problems++
			first := firstDeclaration(doc.res, lr)
			ew.Printf("%v:%v: %v (first declared on line %v: %v)\n",
				doc.name, lr.Index+1,
				warnStyle.Render(fmt.Sprintf("duplicate label %q", lr.Label)),
				first.Line+1, textutil.Truncate(first.Content, 40))
		}
	}
	return problems, ew.Err
}

func firstDeclaration(res *pipeline.Result, lr pipeline.LineResult) numbering.Occurrence {
	entries := res.Examples
	if lr.Marker.Kind == marker.CustomLabel {
		entries = res.CustomLabels
	}
	for _, ent := range entries {
		if ent.Label == lr.Label {
			return numbering.Occurrence{Line: ent.Line, Content: ent.Content}
		}
	}
	return numbering.Occurrence{Line: lr.Index}
}
