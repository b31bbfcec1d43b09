// Package ordinal groups fancy list items into ordinal runs and renumbers
// them.
package ordinal

import (
	"github.com/jcorbin/listnum/marker"
)

// Role is the part a line plays while grouping runs.
type Role int

// Role constants.
const (
	// Text is any non-blank line that is not a fancy item: prose,
	// continuations, code, other markers, and strict mode rejects.
	Text Role = iota
	Blank
	Item
)

// Line is the input to Runs.
type Line struct {
	Index  int
	Role   Role
	Indent int           // columns of leading space; ignored for Blank lines
	Marker marker.Marker // only for Item lines
}

// Run is one ordinal run: consecutive fancy items at one indent sharing a
// delimiter, case, and family.
type Run struct {
	Family marker.Family
	Delim  byte
	Indent int
	Start  int
	Items  []Entry
}

// Entry is one item within a Run.
type Entry struct {
	Line      int
	Offset    int    // marker byte offset within its line
	Len       int    // marker byte length
	Value     string // source value, like "iv" or "C"
	Ambiguous bool

	Ordinal int
	Display string // computed marker text, like "iv." or "C)"
	Stale   bool   // whether Display differs from the source marker
}

// Source returns the entry's marker text as written.
func (ent Entry) Source(delim byte) string { return ent.Value + string(delim) }

// Runs groups item lines into ordinal runs, renumbering each.
//
// When loose is false, a blank line ends every run that is not continued by
// an indented line after it; when loose is true, blank lines are ignored,
// so that items separated by blank lines stay one run.
func Runs(lines []Line, loose bool) []Run {
	var (
		runs  []Run
		open  []int // indices into runs, by increasing indent
		blank bool  // whether blank lines preceded the current line
	)

	closeFrom := func(indent int) {
		i := len(open)
		for i > 0 && runs[open[i-1]].Indent >= indent {
			i--
		}
		open = open[:i]
	}

	for _, line := range lines {
		switch line.Role {
		case Blank:
			blank = true
			continue

		case Text:
			closeFrom(line.Indent)

		case Item:
			m := line.Marker
			closeFrom(m.Indent + 1)
			if n := len(open); n > 0 && (!blank || loose) {
				if run := &runs[open[n-1]]; run.Indent == m.Indent && run.accepts(m) {
					run.add(line.Index, m)
					break
				}
			}
			closeFrom(m.Indent)
			runs = append(runs, newRun(line.Index, m))
			open = append(open, len(runs)-1)
		}
		blank = false
	}

	for i := range runs {
		runs[i].Renumber()
	}
	return runs
}

func newRun(index int, m marker.Marker) Run {
	run := Run{
		Family: m.Family,
		Delim:  m.Delim,
		Indent: m.Indent,
	}
	if m.Ambiguous && m.Value != "i" && m.Value != "I" {
		run.Family = m.Family.Alpha()
	}
	run.add(index, m)
	return run
}

func (run *Run) add(index int, m marker.Marker) {
	if !m.Ambiguous && m.Family != run.Family && run.ambiguous() {
		run.Family = m.Family
	}
	run.Items = append(run.Items, Entry{
		Line:      index,
		Offset:    m.Offset,
		Len:       m.Len,
		Value:     m.Value,
		Ambiguous: m.Ambiguous,
	})
}

// ambiguous returns true if every item so far could be either roman or
// alphabetic.
func (run *Run) ambiguous() bool {
	for _, ent := range run.Items {
		if !ent.Ambiguous {
			return false
		}
	}
	return true
}

// accepts returns true if a marker may continue the run.
func (run *Run) accepts(m marker.Marker) bool {
	if m.Delim != run.Delim || m.Family.Upper() != run.Family.Upper() {
		return false
	}
	return m.Ambiguous || m.Family == run.Family || run.ambiguous()
}

// Renumber recomputes every ordinal in the run from its first item: the
// first item's value sets the start, and each later item takes the next
// ordinal.
func (run *Run) Renumber() {
	if len(run.Items) == 0 {
		return
	}
	start, ok := run.Family.Parse(run.Items[0].Value)
	if !ok || start < 1 {
		start = 1
	}
	run.Start = start
	for i := range run.Items {
		ent := &run.Items[i]
		ent.Ordinal = start + i
		ent.Display = run.Family.Marker(ent.Ordinal) + string(run.Delim)
		ent.Stale = ent.Display != ent.Source(run.Delim)
	}
}

// Edit replaces a stale marker with its renumbered display.
type Edit struct {
	Line   int
	Offset int // byte offset within the line
	Len    int // bytes to replace
	Text   string
}

// Edits returns the edits that rewrite every stale marker in the given runs,
// in line order for runs given in document order.
func Edits(runs []Run) []Edit {
	var edits []Edit
	for _, run := range runs {
		for _, ent := range run.Items {
			if ent.Stale {
				edits = append(edits, Edit{
					Line:   ent.Line,
					Offset: ent.Offset,
					Len:    ent.Len,
					Text:   ent.Display,
				})
			}
		}
	}
	return edits
}

// Next returns the marker text that continues a list after an item with the
// given marker. For fancy markers, family is the effective family of the
// item's run; NoFamily means the marker's own family. Custom labels and
// prose have no continuation, so Next returns "".
func Next(m marker.Marker, family marker.Family) string {
	switch m.Kind {
	case marker.Hash:
		return "#" + string(m.Delim)
	case marker.Example:
		return "(@)"
	case marker.DefinitionItem:
		return string(m.Delim)
	case marker.Fancy:
		if family == marker.NoFamily {
			family = m.Family
		}
		n, ok := family.Parse(m.Value)
		if !ok {
			return ""
		}
		return family.Marker(n+1) + string(m.Delim)
	}
	return ""
}
