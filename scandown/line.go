package scandown

import (
	"bufio"
	"bytes"
	"strings"
)

// Line is an immutable view of one scanned text row.
type Line struct {
	Index int    // 0-based line number
	Start int    // offset of Text within the scanned stream
	End   int    // offset just past Text, before any line terminator
	Text  string // line content, without any line terminator
	Block Block  // structure recognized by Fences
}

// Blank returns true if the line contains only space.
func (line Line) Blank() bool { return line.Block.Type == Blank }

// LineScanner tokenizes a stream into lines, tracking fenced code structure
// along the way.
//
// Scan() implements a bufio.SplitFunc tokenizer, while Line() describes the
// last scanned token.
//
// It is not safe to use LineScanner from parallel goroutines.
type LineScanner struct {
	fences Fences
	line   Line
	next   int // stream offset of the next line
	index  int // index of the next line
}

// Scan implements a bufio.SplitFunc that tokenizes lines.
//
// The returned token is the full line, including its terminator, and
// becomes invalid once the caller advances data. A final unterminated line is
// only consumed atEOF.
//
// Example usage:
// 	var lines scandown.LineScanner
// 	sc := bufio.NewScanner(os.Stdin)
// 	sc.Split(lines.Scan)
// 	for sc.Scan() {
// 		fmt.Printf("scanned %v\n", lines.Line())
// 	}
func (ls *LineScanner) Scan(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if len(data) == 0 {
		return 0, nil, nil
	}

	token = data
	if eol := bytes.IndexByte(data, '\n'); eol >= 0 {
		token = data[:eol+1]
	} else if !atEOF {
		return 0, nil, nil
	}

	text := trimNewline(token)
	ls.line = Line{
		Index: ls.index,
		Start: ls.next,
		End:   ls.next + len(text),
		Text:  string(text),
		Block: ls.fences.Next(text),
	}
	ls.index++
	ls.next += len(token)
	return len(token), token, nil
}

// Line returns the last scanned line.
func (ls *LineScanner) Line() Line { return ls.line }

// Lines scans all lines from the given text.
// A trailing line terminator does not produce a final empty line.
func Lines(text string) []Line {
	var ls LineScanner
	sc := bufio.NewScanner(strings.NewReader(text))
	if n := len(text) + 1; n > bufio.MaxScanTokenSize {
		sc.Buffer(make([]byte, 0, 64*1024), n)
	}
	sc.Split(ls.Scan)

	var lines []Line
	for sc.Scan() {
		lines = append(lines, ls.Line())
	}
	return lines
}
