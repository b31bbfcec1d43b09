package main

import (
	"fmt"
	"io"

	"github.com/jcorbin/listnum/internal/textutil"
)

// ScanCmd dumps per-line classification.
type ScanCmd struct {
	Verbose bool     `short:"v" help:"Include marker positions and block structure."`
	Files   []string `arg:"" default:"-" help:"Documents to scan; - reads stdin."`
}

// Run scans every file.
func (c *ScanCmd) Run(g *Globals) error {
	for _, name := range c.Files {
		doc, err := g.load(name)
		if err != nil {
			return err
		}
		if err := c.dump(g.stdout, doc); err != nil {
			return err
		}
	}
	return nil
}

func (c *ScanCmd) dump(out io.Writer, doc document) error {
	i := -1
	return textutil.WriteLines(out, func(w io.Writer, _ func()) bool {
		if i < 0 {
			fmt.Fprintf(w, "# %v\n", fileStyle.Render(doc.name))
			i++
			return true
		}
		if i >= len(doc.res.Lines) {
			return false
		}
		lr := doc.res.Lines[i]
		i++

		fmt.Fprintf(w, "%v@%v ", lr.Index, lr.Start)
		if c.Verbose {
			fmt.Fprintf(w, "%+v [%+v]", lr.Marker, lr.Block)
		} else {
			fmt.Fprintf(w, "%v", lr.Marker)
		}
		switch {
		case lr.Code():
			io.WriteString(w, dimStyle.Render(" code"))
		case lr.Invalid:
			io.WriteString(w, errorStyle.Render(" invalid: "+lr.Reason))
		case lr.Continuation:
			io.WriteString(w, dimStyle.Render(" continuation"))
		}
		if lr.Display != "" {
			io.WriteString(w, " => "+displayStyle.Render(lr.Display))
		}
		if lr.Duplicate {
			io.WriteString(w, warnStyle.Render(" duplicate"))
		}
		if reps := doc.res.LineReplacements(lr.Index); len(reps) > 0 {
			io.WriteString(w, " refs:")
			for _, rep := range reps {
				fmt.Fprintf(w, " %v", rep.Display)
			}
		}
		io.WriteString(w, "\n")
		return true
	})
}
