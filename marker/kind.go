// Package marker classifies single lines of text into the extended list
// marker model: hash, fancy (letter and roman), example, custom label, and
// definition markers.
package marker

import (
	"strconv"

	"github.com/jcorbin/listnum/numeral"
)

// Kind tags which variant of marker a Marker holds.
type Kind int

// Kind constants; None is the zero value, meaning ordinary prose.
const (
	None Kind = iota
	Hash
	Fancy
	Example
	CustomLabel
	DefinitionTerm
	DefinitionItem
)

// Family is the numbering family of a Fancy marker.
type Family int

// Family constants; NoFamily is used by every non-Fancy marker.
const (
	NoFamily Family = iota
	UpperAlpha
	LowerAlpha
	UpperRoman
	LowerRoman
)

// Marker is a classified line marker. Kind determines which of the
// remaining fields are meaningful:
//
//   - every Kind except None and DefinitionTerm: Indent, Offset, Len,
//     Content, and Width locate the marker and its content within the line
//   - Hash, Fancy: Delim is '.' or ')'
//   - Fancy: Family and Value, with Ambiguous set for single roman letters
//   - Example: Label, empty when the example is unlabeled "(@)"
//   - CustomLabel: Label holds the raw template, placeholders included
//   - DefinitionItem: Delim is '~' or ':'
type Marker struct {
	Kind Kind

	Indent  int // columns of space before the marker
	Offset  int // byte offset of the marker within its line
	Len     int // marker byte length, excluding following space
	Content int // byte offset of content within its line
	Width   int // columns from marker start to content start
	Spaces  int // columns of space between marker and content

	Delim     byte
	Family    Family
	Value     string
	Ambiguous bool
	Label     string
}

// Column returns the content column of the marker: continuation lines must
// be indented at least this far.
func (m Marker) Column() int { return m.Indent + m.Width }

// Is returns true if the marker's kind is any of the given kinds.
func (m Marker) Is(kinds ...Kind) bool {
	for _, k := range kinds {
		if m.Kind == k {
			return true
		}
	}
	return false
}

// Item returns true for the marker kinds that open a list item.
func (m Marker) Item() bool {
	return m.Is(Hash, Fancy, Example, CustomLabel, DefinitionItem)
}

// Text returns the marker bytes from the line it was classified from.
func (m Marker) Text(line string) string {
	if m.Kind == None || m.Offset+m.Len > len(line) {
		return ""
	}
	return line[m.Offset : m.Offset+m.Len]
}

// Upper returns true for the upper case families.
func (f Family) Upper() bool { return f == UpperAlpha || f == UpperRoman }

// Roman returns true for the roman numeral families.
func (f Family) Roman() bool { return f == UpperRoman || f == LowerRoman }

// Alpha returns the alphabetic family of the same case.
func (f Family) Alpha() Family {
	switch f {
	case UpperRoman, UpperAlpha:
		return UpperAlpha
	case LowerRoman, LowerAlpha:
		return LowerAlpha
	}
	return NoFamily
}

// AsRoman returns the roman family of the same case.
func (f Family) AsRoman() Family {
	switch f {
	case UpperRoman, UpperAlpha:
		return UpperRoman
	case LowerRoman, LowerAlpha:
		return LowerRoman
	}
	return NoFamily
}

// Parse returns the ordinal value of a marker value within the family.
func (f Family) Parse(value string) (int, bool) {
	switch f {
	case UpperRoman, LowerRoman:
		return numeral.FromRoman(value)
	case UpperAlpha, LowerAlpha:
		return numeral.FromLetters(value)
	}
	return 0, false
}

// Marker returns the marker value for ordinal n within the family.
// Values the family cannot represent fall back to decimal.
func (f Family) Marker(n int) string {
	var s string
	switch f {
	case UpperRoman, LowerRoman:
		s = numeral.ToRoman(n, f.Upper())
	case UpperAlpha, LowerAlpha:
		s = numeral.ToLetters(n, f.Upper())
	}
	if s == "" {
		s = strconv.Itoa(n)
	}
	return s
}
