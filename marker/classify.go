package marker

import (
	"unicode"
	"unicode/utf8"

	"github.com/jcorbin/listnum/numeral"
	"github.com/jcorbin/listnum/scandown"
)

// Classifier classifies lines. Its zero value recognizes every marker
// except custom labels.
type Classifier struct {
	// ExtendedLabels enables custom label markers; when false, custom
	// label lines classify as None.
	ExtendedLabels bool
}

// Classify classifies a line with the zero Classifier.
func Classify(line string) Marker { return Classifier{}.Classify(line) }

// Classify returns the marker opening the given line, or the zero Marker
// (Kind None) if the line has none. It is total: malformed candidates, like
// an unclosed bracket or a marker without following space, are prose.
//
// Decimal list lines ("1. ", "2) ") are never markers, even though their
// shape resembles a fancy marker. DefinitionTerm is never returned, since
// recognizing a term needs lookahead; see the region package.
func (c Classifier) Classify(line string) Marker {
	b := []byte(line)
	indent, rest := scandown.Indent(b)
	if len(rest) == 0 {
		return Marker{}
	}
	if mark, _ := scandown.ParseMark(0, rest); mark.Ordered() {
		return Marker{}
	}

	m := Marker{
		Indent: indent,
		Offset: len(b) - len(rest),
	}
	var n int
	switch rest[0] {
	case '#':
		if n = hashMarker(rest); n > 0 {
			m.Kind = Hash
			m.Delim = rest[1]
		}

	case '(':
		if label, ln := exampleMarker(rest); ln > 0 {
			n = ln
			m.Kind = Example
			m.Label = label
		}

	case '{':
		if !c.ExtendedLabels {
			return Marker{}
		}
		if label, ln := customLabelMarker(rest); ln > 0 {
			n = ln
			m.Kind = CustomLabel
			m.Label = label
		}

	case '~', ':':
		n = 1
		m.Kind = DefinitionItem
		m.Delim = rest[0]

	default:
		if value, ln := fancyMarker(rest); ln > 0 {
			n = ln
			m.Kind = Fancy
			m.Delim = rest[ln-1]
			m.Value = value
			upper := value[0] >= 'A' && value[0] <= 'Z'
			switch {
			case numeral.IsRoman(value) && upper:
				m.Family = UpperRoman
			case numeral.IsRoman(value):
				m.Family = LowerRoman
			case upper:
				m.Family = UpperAlpha
			default:
				m.Family = LowerAlpha
			}
			m.Ambiguous = len(value) == 1 && m.Family.Roman()
		}
	}
	if n == 0 {
		return Marker{}
	}

	markCols := utf8.RuneCount(rest[:n])
	spaces, cont := scandown.IndentAt(rest[n:], indent+markCols)
	if spaces == 0 {
		return Marker{}
	}

	m.Len = n
	m.Spaces = spaces
	m.Width = markCols + spaces
	m.Content = len(b) - len(cont)
	return m
}

// hashMarker matches "#." or "#)".
func hashMarker(rest []byte) int {
	if len(rest) >= 2 && rest[0] == '#' && (rest[1] == '.' || rest[1] == ')') {
		return 2
	}
	return 0
}

// exampleMarker matches "(@label)" where label may be empty.
func exampleMarker(rest []byte) (label string, n int) {
	if len(rest) < 3 || rest[0] != '(' || rest[1] != '@' {
		return "", 0
	}
	i := 2
	for i < len(rest) && isLabelByte(rest[i]) {
		i++
	}
	if i >= len(rest) || rest[i] != ')' {
		return "", 0
	}
	return string(rest[2:i]), i + 1
}

// customLabelMarker matches "{::label}" where label is non-empty and
// contains no control, space, '|', '<', or '>' characters.
func customLabelMarker(rest []byte) (label string, n int) {
	if len(rest) < 5 || rest[0] != '{' || rest[1] != ':' || rest[2] != ':' {
		return "", 0
	}
	for i := 3; i < len(rest); {
		r, size := utf8.DecodeRune(rest[i:])
		switch {
		case r == '}':
			if i == 3 {
				return "", 0
			}
			return string(rest[3:i]), i + 1
		case r == utf8.RuneError && size <= 1,
			unicode.IsControl(r), unicode.IsSpace(r),
			r == '|', r == '<', r == '>':
			return "", 0
		}
		i += size
	}
	return "", 0
}

// fancyMarker matches a single case run of ASCII letters followed by '.'
// or ')'.
func fancyMarker(rest []byte) (value string, n int) {
	i := 0
	switch c := rest[0]; {
	case c >= 'a' && c <= 'z':
		for i < len(rest) && rest[i] >= 'a' && rest[i] <= 'z' {
			i++
		}
	case c >= 'A' && c <= 'Z':
		for i < len(rest) && rest[i] >= 'A' && rest[i] <= 'Z' {
			i++
		}
	default:
		return "", 0
	}
	if i >= len(rest) || (rest[i] != '.' && rest[i] != ')') {
		return "", 0
	}
	return string(rest[:i]), i + 1
}

// IsLabel returns true if s is a valid, non-empty, example label.
func IsLabel(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isLabelByte(s[i]) {
			return false
		}
	}
	return true
}

func isLabelByte(c byte) bool {
	return c == '_' || c == '-' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// ExampleToken matches an example token "(@label)" at the start of s,
// returning its label and byte length; n is 0 if s does not start with one.
func ExampleToken(s string) (label string, n int) { return exampleMarker([]byte(s)) }

// CustomLabelToken matches a custom label token "{::label}" at the start of
// s, returning its label and byte length; n is 0 if s does not start with
// one.
func CustomLabelToken(s string) (label string, n int) { return customLabelMarker([]byte(s)) }
