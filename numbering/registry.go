package numbering

// Occurrence records where a label was first declared.
type Occurrence struct {
	Line    int
	Content string
}

// Entry is one registered label, as listed by Registry.Entries.
type Entry struct {
	Raw       string // declared form; same as Label for examples
	Label     string // resolved form
	Number    int    // example number; 0 for custom labels
	Content   string
	Line      int
	Duplicate bool // whether later lines declared the label again
}

// Registry maps declared labels to their resolved forms, content, and first
// occurrence. A label is a duplicate once its resolved form is declared by
// a second line.
type Registry struct {
	rawToResolved     map[string]string
	resolvedToContent map[string]string
	firstOccurrence   map[string]Occurrence
	duplicates        map[string]struct{}
	numbers           map[string]int
	order             []string // resolved labels, by first occurrence
	raws              []string // parallel to order
}

// Len returns the number of distinct resolved labels.
func (reg *Registry) Len() int { return len(reg.order) }

// register records a declaration, returning true if the resolved label was
// already declared. The number is only recorded for first declarations.
func (reg *Registry) register(raw, resolved, content string, line, number int) bool {
	if reg.rawToResolved == nil {
		reg.rawToResolved = make(map[string]string)
		reg.resolvedToContent = make(map[string]string)
		reg.firstOccurrence = make(map[string]Occurrence)
		reg.duplicates = make(map[string]struct{})
		reg.numbers = make(map[string]int)
	}
	if _, seen := reg.rawToResolved[raw]; !seen {
		reg.rawToResolved[raw] = resolved
	}
	if _, dup := reg.firstOccurrence[resolved]; dup {
		reg.duplicates[resolved] = struct{}{}
		return true
	}
	reg.resolvedToContent[resolved] = content
	reg.firstOccurrence[resolved] = Occurrence{line, content}
	reg.numbers[resolved] = number
	reg.order = append(reg.order, resolved)
	reg.raws = append(reg.raws, raw)
	return false
}

// Resolved returns the resolved form of a declared raw label.
func (reg *Registry) Resolved(raw string) (string, bool) {
	resolved, ok := reg.rawToResolved[raw]
	return resolved, ok
}

// Has returns true if the resolved label has been declared.
func (reg *Registry) Has(resolved string) bool {
	_, ok := reg.firstOccurrence[resolved]
	return ok
}

// Content returns the content of the resolved label's first declaration.
func (reg *Registry) Content(resolved string) string { return reg.resolvedToContent[resolved] }

// Number returns the number assigned to the resolved label, if any.
func (reg *Registry) Number(resolved string) int { return reg.numbers[resolved] }

// First returns the first occurrence of the resolved label.
func (reg *Registry) First(resolved string) (Occurrence, bool) {
	occ, ok := reg.firstOccurrence[resolved]
	return occ, ok
}

// Duplicate returns true if the resolved label was declared more than once.
func (reg *Registry) Duplicate(resolved string) bool {
	_, dup := reg.duplicates[resolved]
	return dup
}

// Entries returns all registered labels in first occurrence order.
func (reg *Registry) Entries() []Entry {
	if len(reg.order) == 0 {
		return nil
	}
	entries := make([]Entry, len(reg.order))
	for i, label := range reg.order {
		occ := reg.firstOccurrence[label]
		entries[i] = Entry{
			Raw:       reg.raws[i],
			Label:     label,
			Number:    reg.numbers[label],
			Content:   occ.Content,
			Line:      occ.Line,
			Duplicate: reg.Duplicate(label),
		}
	}
	return entries
}

// Duplicates returns the duplicated resolved labels in first occurrence
// order.
func (reg *Registry) Duplicates() []string {
	var dups []string
	for _, label := range reg.order {
		if reg.Duplicate(label) {
			dups = append(dups, label)
		}
	}
	return dups
}
