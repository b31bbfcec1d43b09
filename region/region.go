// Package region splits classified lines into content regions: the text
// following each recognized marker, merged across continuation lines, plus
// ordinary prose paragraphs. Regions are what reference resolution scans.
package region

import (
	"github.com/jcorbin/listnum/marker"
	"github.com/jcorbin/listnum/scandown"
)

// Span is a half-open [From, To) byte range within the document.
type Span struct{ From, To int }

// Len returns the byte length of the span.
func (sp Span) Len() int { return sp.To - sp.From }

// Contains returns true if offset lies within the span; the end offset is
// included so that a cursor sitting just past the span counts.
func (sp Span) Contains(offset int) bool { return sp.From <= offset && offset <= sp.To }

// Region is one content region.
type Region struct {
	Line      int         // first line of the region
	LastLine  int         // last line of the region, same as Line unless Multiline
	Span      Span        // content bytes, marker excluded
	Marker    Span        // marker bytes; empty for prose and definition terms
	Parent    marker.Kind // kind of the marker opening the region; None for prose
	Multiline bool
}

// Info is the per-line outcome of a split.
type Info struct {
	// Marker is the line's classification, with DefinitionTerm filled in
	// where lookahead recognized one.
	Marker marker.Marker

	// Invalid is set for marker lines rejected by strict validation; Reason
	// describes why.
	Invalid bool
	Reason  string

	// Continuation is set for lines that extend the preceding item's region.
	Continuation bool

	// Region indexes the region covering the line, or is -1.
	Region int
}

// Strict validation reasons.
const (
	ReasonNoBlankBefore = "fancy list not preceded by a blank line"
	ReasonNoBlankAfter  = "fancy list not followed by a blank line"
	ReasonNarrowSpace   = "single capital letter marker needs two spaces"
)

// Splitter splits classified lines into regions.
type Splitter struct {
	// Strict enables blank line and spacing validation of fancy lists.
	Strict bool
}

// Split computes content regions over a whole document. The marks slice
// parallels lines, holding each line's classification; code lines should
// carry the zero Marker, and are never part of any region.
//
// Regions are returned in document order.
func (s Splitter) Split(lines []scandown.Line, marks []marker.Marker) ([]Region, []Info) {
	infos := make([]Info, len(lines))
	for i := range infos {
		if i < len(marks) {
			infos[i].Marker = marks[i]
		}
		infos[i].Region = -1
	}

	if s.Strict {
		validate(lines, infos)
	}

	var (
		regions []Region
		cur     = -1 // index of the open region
		col     int  // content column that continuation lines must reach
		item    bool // whether the open region belongs to a list item
	)
	closeRegion := func() { cur, item = -1, false }
	extend := func(i int) {
		r := &regions[cur]
		r.LastLine = i
		r.Span.To = lines[i].End
		r.Multiline = true
		infos[i].Region = cur
	}

	for i, line := range lines {
		info := &infos[i]
		m := info.Marker

		switch {
		case line.Block.Code():
			closeRegion()

		case line.Blank():
			// blank lines belong to an item only when followed by more of it
			if item && continues(lines, infos, i, col) {
				infos[i].Region = cur
			} else {
				closeRegion()
			}

		case info.Invalid:
			closeRegion()

		case m.Item():
			start := line.Start + m.Content
			if m.Content > len(line.Text) {
				start = line.End
			}
			regions = append(regions, Region{
				Line:     i,
				LastLine: i,
				Span:     Span{start, line.End},
				Marker:   Span{line.Start + m.Offset, line.Start + m.Offset + m.Len},
				Parent:   m.Kind,
			})
			cur, col, item = len(regions)-1, m.Column(), true
			info.Region = cur

		case item && indentOf(line) >= col:
			info.Continuation = true
			extend(i)

		case term(lines, infos, i):
			info.Marker = marker.Marker{Kind: marker.DefinitionTerm}
			offset := len(line.Text) - len(trimLeft(line.Text))
			regions = append(regions, Region{
				Line:     i,
				LastLine: i,
				Span:     Span{line.Start + offset, line.End},
				Marker:   Span{line.Start + offset, line.Start + offset},
				Parent:   marker.DefinitionTerm,
			})
			cur, item = len(regions)-1, false
			info.Region = cur

		case cur >= 0 && !item:
			// lazy prose paragraph continuation
			extend(i)

		default:
			offset := len(line.Text) - len(trimLeft(line.Text))
			regions = append(regions, Region{
				Line:     i,
				LastLine: i,
				Span:     Span{line.Start + offset, line.End},
				Marker:   Span{line.Start + offset, line.Start + offset},
				Parent:   marker.None,
			})
			cur, item = len(regions)-1, false
			info.Region = cur
		}
	}

	return regions, infos
}

// term returns true if line i is prose immediately followed by a definition
// item. Lines that continue an open item are matched before this.
func term(lines []scandown.Line, infos []Info, i int) bool {
	if i+1 >= len(lines) || infos[i].Marker.Kind != marker.None {
		return false
	}
	next := lines[i+1]
	return !next.Block.Code() && infos[i+1].Marker.Kind == marker.DefinitionItem
}

// continues returns true if the first non-blank line after i continues an
// item whose content starts at column col.
func continues(lines []scandown.Line, infos []Info, i, col int) bool {
	for j := i + 1; j < len(lines); j++ {
		line := lines[j]
		if line.Blank() {
			continue
		}
		if line.Block.Code() {
			return false
		}
		m := infos[j].Marker
		return !m.Item() && indentOf(line) >= col
	}
	return false
}

// validate applies strict mode rules to fancy list blocks: maximal runs of
// fancy item lines and their indented continuations.
func validate(lines []scandown.Line, infos []Info) {
	for i := 0; i < len(lines); {
		if infos[i].Marker.Kind != marker.Fancy {
			i++
			continue
		}

		// find the block extent, allowing blank lines between items
		start, end := i, i+1
		col := infos[i].Marker.Column()
		for j := i + 1; j < len(lines); j++ {
			line := lines[j]
			m := infos[j].Marker
			if line.Blank() {
				continue
			}
			if m.Kind == marker.Fancy {
				col = m.Column()
				end = j + 1
				continue
			}
			if !line.Block.Code() && !m.Item() && indentOf(line) >= col {
				end = j + 1
				continue
			}
			break
		}

		before := start == 0 || boundary(lines[start-1])
		after := end == len(lines) || boundary(lines[end])
		for j := start; j < end; j++ {
			info := &infos[j]
			if info.Marker.Kind != marker.Fancy {
				continue
			}
			switch {
			case !before:
				info.Invalid, info.Reason = true, ReasonNoBlankBefore
			case !after:
				info.Invalid, info.Reason = true, ReasonNoBlankAfter
			case narrow(info.Marker):
				info.Invalid, info.Reason = true, ReasonNarrowSpace
			}
		}
		i = end
	}
}

func boundary(line scandown.Line) bool {
	return line.Blank() || line.Block.Code()
}

// narrow matches single capital letter markers like "A. " or "B) " that
// could just as well be a prose initial.
func narrow(m marker.Marker) bool {
	return len(m.Value) == 1 && m.Family.Upper() && m.Spaces < 2
}

func indentOf(line scandown.Line) int {
	n, _ := scandown.Indent([]byte(line.Text))
	return n
}

func trimLeft(s string) string {
	for len(s) > 0 && (s[0] == ' ' || s[0] == '\t') {
		s = s[1:]
	}
	return s
}
