package scandown

// TODO indented code blocks are not recognized; under non-commonmark list
// markers they are indistinguishable from item continuation lines
// TODO CRLF handling probably needs improvement
// TODO recognize HTML blocks, whose content should also be opaque

import (
	"bytes"
	"math"
)

// Block represents the structure recognized for a single line: whether it
// is blank, part of a fenced code block, or opens some other block mark.
type Block struct {
	Type BlockType

	// Delim may contain a delimiter byte:
	// - Ruler: '-','_', or '*'
	// - Blockquote: '>''
	// - Item: '-', '*', '+', ')', or '.'
	// - Codefence: '`' or '~'
	Delim byte

	// Width may contain a mark width:
	// - Ruler: counts how many rule bytes, including any spaces between
	// - Blockquote: width of the quote marker, including any following spaces
	// - Item: width of the list item marker, including any following spaces
	// - Codefence: counts how many fence Delim bytes opened the fence
	Width int

	// Indent tracks how far the block mark was indented.
	Indent int
}

// BlockType is to determine the semantic meaning of a Block.
type BlockType int

// BlockType constants for line structure.
const (
	noBlock BlockType = iota // 0 value should never be seen by user
	Blank
	Paragraph
	Ruler
	Blockquote
	Item
	Codefence
)

// Code returns true if the block is part of a fenced code block, including
// its opening and closing fence lines.
func (block Block) Code() bool { return block.Type == Codefence }

// Fences tracks fenced code block state across consecutive lines, along the
// lines of the commonmark fence rules: an opening fence of 3 or more '`' or
// '~' bytes indented less than 4 columns, closed by a fence of the same
// delimiter that is at least as wide and followed only by space.
//
// An unclosed fence continues to the end of the stream.
type Fences struct {
	open Block
}

// Next recognizes the given line bytes, updating fence state, and returns
// the recognized Block. Any line terminator is ignored.
func (fs *Fences) Next(line []byte) Block {
	tail := trimNewline(line)

	if open := fs.open; open.Type == Codefence {
		if indent, cont := trimIndent(tail, 0, 3); indent < 4 && len(cont) > 0 {
			if delim, _, rest := fence(cont, open.Width, open.Delim); delim != 0 && len(bytes.TrimSpace(rest)) == 0 {
				fs.open = Block{}
			}
		}
		return open
	}

	indent, cont := trimIndent(tail, 0, 4)
	if len(bytes.TrimSpace(cont)) == 0 {
		return Block{Blank, 0, 0, 0}
	}
	if indent < 4 {
		if delim, width, info := fence(cont, 3, '`', '~'); delim != 0 {
			// backtick fence info strings may not contain backticks
			if delim != '`' || bytes.IndexByte(info, '`') < 0 {
				fs.open = Block{Codefence, delim, width, indent}
				return fs.open
			}
		}
		if b, _ := ParseMark(0, cont); b.Type != noBlock && b.Type != Codefence {
			b.Indent = indent
			return b
		}
	}
	return Block{Paragraph, 0, 0, indent}
}

// ParseMark parses a single block mark from the given line bytes, optionally
// skipping past a fixed amount of prior expected indent.
// Returns any parsed block mark and the line trailer bytes, or the zero Block
// and all line bytes if no mark can be parsed.
func ParseMark(prior int, line []byte) (Block, []byte) {
	if len(line) > 0 {
		if indent, cont := trimIndent(line, 0, prior); len(cont) > 0 {
			if indent < prior {
				return Block{}, line
			}
			if delim, width, cc := fence(cont, 3, '`', '~'); delim != 0 {
				return Block{Codefence, delim, width, indent}, cc
			}
			if delim, width, _ := ruler(cont, '-', '_', '*'); delim != 0 && width >= 3 {
				return Block{Ruler, delim, width, indent}, nil
			}
			if delim, width, qc := quoteMarker(cont); delim != 0 {
				return Block{Blockquote, delim, width, indent}, qc
			}
			if delim, width, lc := listMarker(cont); delim != 0 {
				return Block{Item, delim, width, indent}, lc
			}
		}
	}
	return Block{}, line
}

// Ordered returns true if the block is an ordered (decimal) list item mark.
func (block Block) Ordered() bool {
	return block.Type == Item && (block.Delim == '.' || block.Delim == ')')
}

// Indent returns how many columns of leading space the line has, and the
// remaining line bytes. Tabs advance to the next multiple of 4 columns.
func Indent(line []byte) (n int, tail []byte) {
	return trimIndent(line, 0, math.MaxInt32)
}

// IndentAt is like Indent, but for space that starts at column prior; the
// returned count excludes prior.
func IndentAt(line []byte, prior int) (n int, tail []byte) {
	return trimIndent(line, prior, math.MaxInt32)
}

// CollapseSpace returns s with runs of space, tab, and newline bytes
// collapsed into single spaces, and any leading or trailing space trimmed.
func CollapseSpace(s string) string {
	b := []byte(s)
	n := coalesceSpace(b, b)
	return string(bytes.TrimSpace(b[:n]))
}

func coalesceSpace(dst, src []byte) (n int) {
	between := true
	for _, c := range src {
		switch c {
		case '\t', '\n', '\r':
			c = ' '
			fallthrough
		case ' ':
			if between {
				continue
			}
			between = true
		default:
			between = false
		}
		if dst != nil {
			dst[n] = c
		}
		n++
	}
	return n
}

func quoteMarker(line []byte) (delim byte, width int, cont []byte) {
	if delim, width, tail := delimiter(line, 3, '>'); delim != 0 {
		if in, cont := trimIndent(tail, 1, 1); in > 0 || len(cont) == 0 {
			return delim, width + in, cont
		}
	}
	return 0, 0, nil
}

func listMarker(line []byte) (delim byte, width int, cont []byte) {
	delim, width, tail := delimiter(line, 1, '-', '*', '+')
	if delim == 0 {
		if width, tail = ordinal(line); len(tail) > 0 {
			var dw int
			delim, dw, tail = delimiter(tail, 1, '.', ')')
			width += dw
		}
	}
	if delim != 0 {
		// TODO this wants to be able to consume a single virtual space from a tab, passing any remainder
		if in, cont := trimIndent(tail, 1, 1); in > 0 || len(cont) == 0 {
			return delim, width + in, cont
		}
	}
	return 0, 0, nil
}

func delimiter(line []byte, maxWidth int, marks ...byte) (delim byte, width int, tail []byte) {
	if len(line) == 0 {
		return 0, 0, nil
	}
	if delim = line[0]; !isByte(delim, marks...) {
		return 0, 0, nil
	}

	width++
	tail = line[1:]
	for {
		if len(tail) == 0 {
			return delim, width, tail
		}
		switch tail[0] {
		case delim:
			if width++; width > maxWidth {
				return 0, 0, nil
			}
			tail = tail[1:]
		case ' ', '\t':
			return delim, width, tail
		default:
			return 0, 0, nil
		}
	}
}

func ordinal(line []byte) (width int, tail []byte) {
	tail = line
	for len(tail) > 0 {
		switch c := tail[0]; c {
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			width++
			tail = tail[1:]
			continue
		}
		break
	}
	if width < 1 || width > 9 {
		return 0, nil
	}
	return width, tail
}

func fence(line []byte, min int, marks ...byte) (fence byte, width int, tail []byte) {
	if fence = line[0]; !isByte(fence, marks...) {
		return 0, 0, nil
	}
	width++

	for ; width < len(line); width++ {
		if line[width] != fence {
			break
		}
	}

	if width < min {
		return 0, 0, nil
	}

	return fence, width, line[width:]
}

func ruler(line []byte, marks ...byte) (rule byte, width int, tail []byte) {
	if rule = line[0]; !isByte(rule, marks...) {
		return 0, 0, nil
	}
	count := 1
	for width++; width < len(line); width++ {
		switch line[width] {
		case rule:
			count++
		case ' ', '\t':
		case '\n':
			return rule, count, line[width:]
		default:
			return 0, 0, nil
		}
	}
	return rule, count, line[width:]
}

func isByte(b byte, any ...byte) bool {
	for _, ab := range any {
		if b == ab {
			return true
		}
	}
	return false
}

func trimNewline(line []byte) []byte {
	i := len(line) - 1
	for i >= 0 {
		switch line[i] {
		case '\r', '\n':
			i--
		default:
			return line[:i+1]
		}
	}
	return line[:0]
}

// trimIndent consumes up to limit columns of leading space, where a tab
// advances to the next multiple of 4 columns past any prior columns.
// A tab that would overshoot limit is left in the returned tail.
func trimIndent(line []byte, prior, limit int) (n int, tail []byte) {
	for tail = line; n < limit && len(tail) > 0; tail = tail[1:] {
		switch tail[0] {
		case ' ':
			n++
		case '\t':
			m := n + 4 - (prior+n)%4
			if m > limit {
				return n, tail
			}
			n = m
		default:
			return n, tail
		}
	}
	return n, tail
}
