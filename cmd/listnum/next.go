package main

import (
	"fmt"
	"strings"

	"github.com/jcorbin/listnum/marker"
	"github.com/jcorbin/listnum/ordinal"
	"github.com/jcorbin/listnum/pipeline"
)

// NextCmd prints the marker that continues the list item on a line, for
// editors inserting a new item after it.
type NextCmd struct {
	Line int    `arg:"" help:"1-based line number within the item."`
	File string `arg:"" default:"-" help:"Document; - reads stdin."`
}

// Run prints the continuation marker, indented like the item's marker, or
// nothing if the line is not within a list item.
func (c *NextCmd) Run(g *Globals) error {
	doc, err := g.load(c.File)
	if err != nil {
		return err
	}
	if c.Line < 1 || c.Line > len(doc.res.Lines) {
		return fmt.Errorf("line %v out of range [1, %v]", c.Line, len(doc.res.Lines))
	}
	if text := nextMarker(doc.res, c.Line-1); text != "" {
		_, err = fmt.Fprintln(g.stdout, text)
	}
	return err
}

func nextMarker(res *pipeline.Result, i int) string {
	lr := res.Lines[i]
	if lr.Continuation && lr.Region >= 0 {
		lr = res.Lines[res.Regions[lr.Region].Line]
	}
	if lr.Invalid || !lr.Marker.Item() {
		return ""
	}
	text := ordinal.Next(lr.Marker, runFamily(res.Runs, lr.Index))
	if text == "" {
		return ""
	}
	return strings.Repeat(" ", lr.Marker.Indent) + text
}

// runFamily returns the effective family of the run holding line i.
func runFamily(runs []ordinal.Run, i int) marker.Family {
	for _, run := range runs {
		for _, ent := range run.Items {
			if ent.Line == i {
				return run.Family
			}
		}
	}
	return marker.NoFamily
}
