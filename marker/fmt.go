package marker

import (
	"fmt"
	"io"
)

// Format writes a kind name for the receiver code.
func (k Kind) Format(f fmt.State, _ rune) {
	switch k {
	case None:
		io.WriteString(f, "None")
	case Hash:
		io.WriteString(f, "Hash")
	case Fancy:
		io.WriteString(f, "Fancy")
	case Example:
		io.WriteString(f, "Example")
	case CustomLabel:
		io.WriteString(f, "CustomLabel")
	case DefinitionTerm:
		io.WriteString(f, "DefinitionTerm")
	case DefinitionItem:
		io.WriteString(f, "DefinitionItem")
	default:
		fmt.Fprintf(f, "InvalidKind%v", int(k))
	}
}

// String returns the kind name.
func (k Kind) String() string { return fmt.Sprint(k) }

// Format writes a family name for the receiver code.
func (fam Family) Format(f fmt.State, _ rune) {
	switch fam {
	case NoFamily:
		io.WriteString(f, "NoFamily")
	case UpperAlpha:
		io.WriteString(f, "UpperAlpha")
	case LowerAlpha:
		io.WriteString(f, "LowerAlpha")
	case UpperRoman:
		io.WriteString(f, "UpperRoman")
	case LowerRoman:
		io.WriteString(f, "LowerRoman")
	default:
		fmt.Fprintf(f, "InvalidFamily%v", int(fam))
	}
}

// Format writes a terse "Kind{detail}" form of the receiver; when formatted
// with `%+v", also writes its position within the line.
func (m Marker) Format(f fmt.State, _ rune) {
	fmt.Fprint(f, m.Kind)
	switch m.Kind {
	case Hash:
		fmt.Fprintf(f, "{%q}", m.Delim)
	case Fancy:
		fmt.Fprintf(f, "{%v %q %q", m.Family, m.Value, m.Delim)
		if m.Ambiguous {
			io.WriteString(f, " ambiguous")
		}
		io.WriteString(f, "}")
	case Example, CustomLabel:
		fmt.Fprintf(f, "{%q}", m.Label)
	case DefinitionItem:
		fmt.Fprintf(f, "{%q}", m.Delim)
	}
	if f.Flag('+') && m.Kind != None {
		fmt.Fprintf(f, " indent=%v offset=%v len=%v content=%v width=%v",
			m.Indent, m.Offset, m.Len, m.Content, m.Width)
	}
}
