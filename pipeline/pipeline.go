// Package pipeline recomputes the full numbering of a document: classify
// every line, split content regions, number declarations in document order,
// group ordinal runs, and resolve references.
//
// A Result is always a function of the whole document text and Config;
// there is no incremental update. Session caches the latest Result for one
// open document.
package pipeline

import (
	"encoding/hex"
	"sort"
	"strconv"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/jcorbin/listnum/marker"
	"github.com/jcorbin/listnum/numbering"
	"github.com/jcorbin/listnum/ordinal"
	"github.com/jcorbin/listnum/region"
	"github.com/jcorbin/listnum/resolve"
	"github.com/jcorbin/listnum/scandown"
)

// Config selects optional syntax. The zero value disables both options.
type Config struct {
	// StrictMode enables blank line and spacing validation of fancy lists.
	StrictMode bool `json:"strict"`

	// ExtendedLabels enables custom label markers, their placeholders, and
	// references to them.
	ExtendedLabels bool `json:"extended_labels"`
}

// Result is the outcome of one full recompute.
type Result struct {
	Revision string
	Config   Config

	Lines        []LineResult
	Regions      []region.Region
	Replacements []resolve.Replacement
	Runs         []ordinal.Run

	Examples     []numbering.Entry
	CustomLabels []numbering.Entry
	Placeholders []numbering.Placeholder
	Definitions  []Definition
	Counters     numbering.Counters
}

// LineResult describes one line of a Result.
type LineResult struct {
	scandown.Line

	Marker       marker.Marker
	Invalid      bool
	Reason       string
	Continuation bool
	Region       int // index into Result.Regions, or -1

	Number    int    // hash or example number, or fancy ordinal
	Label     string // example label or resolved custom label
	Display   string // computed marker text, like "3." or "(2)"
	Duplicate bool   // example or custom label declared by an earlier line

	// Placeholders locates each placeholder of a custom label marker.
	Placeholders []region.Span
}

// Code returns true if the line lies within fenced code.
func (lr LineResult) Code() bool { return lr.Block.Code() }

// Definition is a definition list entry: a term followed by one or more
// definition items.
type Definition struct {
	Line  int
	Term  string
	Items []string
}

// Recompute runs the full pipeline over a document.
func Recompute(doc Document, cfg Config) (*Result, error) {
	lines, err := readLines(doc)
	if err != nil {
		return nil, err
	}
	return compute(doc, lines, cfg), nil
}

func compute(doc Document, lines []scandown.Line, cfg Config) *Result {
	res := &Result{
		Revision: revision(lines, cfg),
		Config:   cfg,
	}

	classifier := marker.Classifier{ExtendedLabels: cfg.ExtendedLabels}
	marks := make([]marker.Marker, len(lines))
	for i, line := range lines {
		if !line.Block.Code() {
			marks[i] = classifier.Classify(line.Text)
		}
	}

	regions, infos := region.Splitter{Strict: cfg.StrictMode}.Split(lines, marks)
	res.Regions = regions
	res.Lines = make([]LineResult, len(lines))
	for i, line := range lines {
		info := infos[i]
		res.Lines[i] = LineResult{
			Line:         line,
			Marker:       info.Marker,
			Invalid:      info.Invalid,
			Reason:       info.Reason,
			Continuation: info.Continuation,
			Region:       info.Region,
		}
	}

	// number declarations in document order
	var engine numbering.Engine
	for i := range res.Lines {
		lr := &res.Lines[i]
		if lr.Invalid || lr.Region < 0 {
			continue
		}
		m := lr.Marker
		switch m.Kind {
		case marker.Hash:
			lr.Number = engine.NextHash()
			lr.Display = strconv.Itoa(lr.Number) + string(m.Delim)

		case marker.Example:
			content := regionContent(doc, regions[lr.Region])
			lr.Number, lr.Duplicate = engine.RegisterExample(m.Label, content, i)
			lr.Label = m.Label
			lr.Display = "(" + strconv.Itoa(lr.Number) + ")"

		case marker.CustomLabel:
			content := regionContent(doc, regions[lr.Region])
			lr.Label, lr.Duplicate = engine.RegisterCustomLabel(m.Label, content, i)
			lr.Display = "(" + lr.Label + ")"
			labelStart := lr.Start + m.Offset + len("{::")
			for _, ph := range numbering.ParseTemplate(m.Label).Placeholders() {
				lr.Placeholders = append(lr.Placeholders, region.Span{
					From: labelStart + ph.From,
					To:   labelStart + ph.To,
				})
			}
		}
	}

	res.Runs = ordinal.Runs(ordinalLines(res.Lines), cfg.StrictMode)
	for _, run := range res.Runs {
		for _, ent := range run.Items {
			lr := &res.Lines[ent.Line]
			lr.Number = ent.Ordinal
			lr.Display = ent.Display
		}
	}

	resolver := resolve.Resolver{ExtendedLabels: cfg.ExtendedLabels}
	for _, reg := range regions {
		text := doc.SliceString(reg.Span.From, reg.Span.To)
		res.Replacements = append(res.Replacements, resolver.Resolve(text, reg.Span.From, &engine)...)
	}

	res.Examples = engine.Examples.Entries()
	res.CustomLabels = engine.CustomLabels.Entries()
	res.Placeholders = engine.Placeholders()
	res.Counters = engine.Counters()
	res.Definitions = definitions(doc, regions)
	return res
}

// revision hashes the document text and configuration.
func revision(lines []scandown.Line, cfg Config) string {
	h := blake3.New()
	for _, line := range lines {
		h.Write([]byte(line.Text))
		h.Write([]byte{'\n'})
	}
	var flags [2]byte
	if cfg.StrictMode {
		flags[0] = 1
	}
	if cfg.ExtendedLabels {
		flags[1] = 1
	}
	h.Write(flags[:])
	return hex.EncodeToString(h.Sum(nil)[:16])
}

// regionContent returns a region's text with runs of space, including line
// breaks, collapsed.
func regionContent(doc Document, reg region.Region) string {
	return scandown.CollapseSpace(doc.SliceString(reg.Span.From, reg.Span.To))
}

func ordinalLines(lines []LineResult) []ordinal.Line {
	out := make([]ordinal.Line, len(lines))
	for i, lr := range lines {
		out[i].Index = i
		switch {
		case lr.Blank():
			out[i].Role = ordinal.Blank
		case lr.Marker.Kind == marker.Fancy && !lr.Invalid && lr.Region >= 0:
			out[i].Role = ordinal.Item
			out[i].Marker = lr.Marker
		default:
			out[i].Role = ordinal.Text
			out[i].Indent, _ = scandown.Indent([]byte(lr.Text))
		}
	}
	return out
}

// definitions groups definition terms with the items that follow them.
func definitions(doc Document, regions []region.Region) []Definition {
	var (
		defs []Definition
		open bool
	)
	for _, reg := range regions {
		switch reg.Parent {
		case marker.DefinitionTerm:
			defs = append(defs, Definition{
				Line: reg.Line,
				Term: regionContent(doc, reg),
			})
			open = true
		case marker.DefinitionItem:
			if open {
				def := &defs[len(defs)-1]
				def.Items = append(def.Items, regionContent(doc, reg))
			}
		default:
			open = false
		}
	}
	return defs
}

// Edit replaces the bytes of Span with Text.
type Edit struct {
	Span region.Span
	Text string
}

// RenumberEdits returns the edits that rewrite stale fancy list markers to
// their computed ordinals, in document order.
func (res *Result) RenumberEdits() []Edit {
	var edits []Edit
	for _, ed := range ordinal.Edits(res.Runs) {
		from := res.Lines[ed.Line].Start + ed.Offset
		edits = append(edits, Edit{
			Span: region.Span{From: from, To: from + ed.Len},
			Text: ed.Text,
		})
	}
	SortEdits(edits)
	return edits
}

// ResolveEdits returns the edits that replace every numbered marker and
// every resolved reference with its display text, in document order.
// References to duplicated labels keep their source text; plain text has no
// room for the warning they carry.
func (res *Result) ResolveEdits() []Edit {
	var edits []Edit
	for _, lr := range res.Lines {
		if lr.Display == "" {
			continue
		}
		from := lr.Start + lr.Marker.Offset
		edits = append(edits, Edit{
			Span: region.Span{From: from, To: from + lr.Marker.Len},
			Text: lr.Display,
		})
	}
	for _, rep := range res.Replacements {
		if rep.Kind == resolve.DuplicateWarning {
			continue
		}
		edits = append(edits, Edit{Span: rep.Span, Text: rep.Display})
	}
	SortEdits(edits)
	return edits
}

// SortEdits stably sorts edits by start offset.
func SortEdits(edits []Edit) {
	sort.SliceStable(edits, func(i, j int) bool {
		return edits[i].Span.From < edits[j].Span.From
	})
}

// ApplyEdits applies sorted, non-overlapping, edits to src; edits that
// overlap an earlier edit or fall outside src are skipped.
func ApplyEdits(src string, edits []Edit) string {
	var sb strings.Builder
	last := 0
	for _, ed := range edits {
		if ed.Span.From < last || ed.Span.To > len(src) {
			continue
		}
		sb.WriteString(src[last:ed.Span.From])
		sb.WriteString(ed.Text)
		last = ed.Span.To
	}
	sb.WriteString(src[last:])
	return sb.String()
}

// Duplicates returns the lines that redeclare an earlier label.
func (res *Result) Duplicates() []LineResult {
	var dups []LineResult
	for _, lr := range res.Lines {
		if lr.Duplicate {
			dups = append(dups, lr)
		}
	}
	return dups
}

// InvalidLines returns the lines rejected by strict validation.
func (res *Result) InvalidLines() []LineResult {
	var bad []LineResult
	for _, lr := range res.Lines {
		if lr.Invalid {
			bad = append(bad, lr)
		}
	}
	return bad
}

// LineReplacements returns the replacements falling within the given line.
func (res *Result) LineReplacements(i int) []resolve.Replacement {
	lr := res.Lines[i]
	var reps []resolve.Replacement
	for _, rep := range res.Replacements {
		if rep.Span.From >= lr.Start && rep.Span.To <= lr.End {
			reps = append(reps, rep)
		}
	}
	return reps
}
