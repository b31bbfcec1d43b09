package scandown

import (
	"fmt"
	"io"
)

var blockTypeNames = [...]string{
	noBlock:    "None",
	Blank:      "Blank",
	Paragraph:  "Paragraph",
	Ruler:      "Ruler",
	Blockquote: "Blockquote",
	Item:       "Item",
	Codefence:  "Codefence",
}

// Format writes the type name, with OrderedItem standing in for decimal
// items; `%+v` adds any non-zero delim, width, and indent attributes.
func (b Block) Format(f fmt.State, _ rune) {
	if b.Ordered() {
		io.WriteString(f, "OrderedItem")
	} else {
		fmt.Fprint(f, b.Type)
	}
	if !f.Flag('+') {
		return
	}
	if b.Delim != 0 {
		fmt.Fprintf(f, " delim=%q", b.Delim)
	}
	if b.Width != 0 {
		fmt.Fprintf(f, " width=%v", b.Width)
	}
	if b.Indent != 0 {
		fmt.Fprintf(f, " indent=%v", b.Indent)
	}
}

func (t BlockType) Format(f fmt.State, _ rune) {
	if t >= 0 && int(t) < len(blockTypeNames) {
		io.WriteString(f, blockTypeNames[t])
		return
	}
	fmt.Fprintf(f, "InvalidBlock%v", int(t))
}

// Format writes an "index@start Block" form; `%+v` also quotes the text.
func (line Line) Format(f fmt.State, _ rune) {
	fmt.Fprintf(f, "%v@%v ", line.Index, line.Start)
	if f.Flag('+') {
		fmt.Fprintf(f, "%+v %q", line.Block, line.Text)
		return
	}
	fmt.Fprint(f, line.Block)
}
