package pipeline

import (
	"errors"
	"fmt"

	"github.com/jcorbin/listnum/scandown"
)

// ErrPrecondition is returned when a Document violates its contract.
var ErrPrecondition = errors.New("pipeline precondition failed")

// Document is a read only, line addressable, text buffer.
//
// Lines must be numbered from 0, with monotonic, non-overlapping, byte
// ranges whose slices equal their text. Any Block structure on returned
// lines is ignored.
type Document interface {
	LineCount() int
	LineAt(i int) scandown.Line
	SliceString(from, to int) string
}

// Text is a Document over an in-memory string.
type Text struct {
	src   string
	lines []scandown.Line
}

// NewText scans src into a Text document.
func NewText(src string) *Text {
	return &Text{src: src, lines: scandown.Lines(src)}
}

// String returns the document source.
func (text *Text) String() string { return text.src }

// LineCount returns the number of lines.
func (text *Text) LineCount() int { return len(text.lines) }

// LineAt returns the i-th line.
func (text *Text) LineAt(i int) scandown.Line { return text.lines[i] }

// SliceString returns the source bytes in [from, to).
func (text *Text) SliceString(from, to int) string { return text.src[from:to] }

// readLines collects and validates every line of a document, re-deriving
// fenced code structure.
func readLines(doc Document) ([]scandown.Line, error) {
	n := doc.LineCount()
	if n < 0 {
		return nil, fmt.Errorf("%w: negative line count %v", ErrPrecondition, n)
	}
	lines := make([]scandown.Line, n)
	var (
		fences scandown.Fences
		prior  int
	)
	for i := range lines {
		line := doc.LineAt(i)
		switch {
		case line.Index != i:
			return nil, fmt.Errorf("%w: line %v has index %v", ErrPrecondition, i, line.Index)
		case line.Start < prior:
			return nil, fmt.Errorf("%w: line %v starts at %v, before prior line end %v",
				ErrPrecondition, i, line.Start, prior)
		case line.End < line.Start:
			return nil, fmt.Errorf("%w: line %v has inverted range [%v, %v)",
				ErrPrecondition, i, line.Start, line.End)
		case line.End-line.Start != len(line.Text):
			return nil, fmt.Errorf("%w: line %v range [%v, %v) does not match its %v text bytes",
				ErrPrecondition, i, line.Start, line.End, len(line.Text))
		}
		if s := doc.SliceString(line.Start, line.End); s != line.Text {
			return nil, fmt.Errorf("%w: line %v text differs from document slice %q",
				ErrPrecondition, i, s)
		}
		line.Block = fences.Next([]byte(line.Text))
		lines[i] = line
		prior = line.End
	}
	return lines, nil
}
