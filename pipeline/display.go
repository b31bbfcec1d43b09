package pipeline

import "github.com/jcorbin/listnum/region"

// Level is how much of a custom label marker an editor should show.
type Level int

// Level constants.
const (
	// Collapsed shows only the resolved label.
	Collapsed Level = iota

	// SemiExpanded shows the raw template with resolved placeholders.
	SemiExpanded

	// Full shows the raw template, placeholders included.
	Full
)

func (lvl Level) String() string {
	switch lvl {
	case Collapsed:
		return "collapsed"
	case SemiExpanded:
		return "semi-expanded"
	case Full:
		return "full"
	}
	return "invalid"
}

// DisplayLevel decides how to display a custom label marker given the
// cursor offset. A cursor away from the marker collapses it; a cursor on one
// of its placeholders, or on a marker without placeholders, shows it in
// full; otherwise placeholders display resolved.
//
// The level never affects numbering.
func DisplayLevel(cursor int, mark region.Span, placeholders []region.Span) Level {
	if !mark.Contains(cursor) {
		return Collapsed
	}
	if len(placeholders) == 0 {
		return Full
	}
	for _, ph := range placeholders {
		if ph.Contains(cursor) {
			return Full
		}
	}
	return SemiExpanded
}
