// Package numbering implements the per-document numbering state: hash and
// example counters, placeholder assignment, and the example and custom label
// registries.
//
// An Engine must be fed declarations in document order during one full pass
// over a document; numbers are a function of declaration position. Callers
// should Reset (or use a fresh Engine) before every pass.
package numbering

// Engine holds the numbering state of one document pass.
type Engine struct {
	hash        int
	example     int
	placeholder int

	placeholders map[string]int
	names        []string // placeholder names, by assignment

	Examples     Registry
	CustomLabels Registry
}

// Reset clears all counters and registries.
func (e *Engine) Reset() { *e = Engine{} }

// NextHash returns the next hash list number.
func (e *Engine) NextHash() int {
	e.hash++
	return e.hash
}

// RegisterExample declares an example item, returning its number and
// whether its label was already declared. Unlabeled examples (empty label)
// always take the next number, and are never registered.
//
// A duplicate label takes its first declaration's number, without
// advancing the example counter.
func (e *Engine) RegisterExample(label, content string, line int) (number int, dup bool) {
	if label == "" {
		e.example++
		return e.example, false
	}
	if e.Examples.Has(label) {
		e.Examples.register(label, label, content, line, 0)
		return e.Examples.Number(label), true
	}
	e.example++
	e.Examples.register(label, label, content, line, e.example)
	return e.example, false
}

// ResolvePlaceholder returns the number assigned to a placeholder name,
// assigning the next number on first use.
func (e *Engine) ResolvePlaceholder(name string) int {
	if n, ok := e.placeholders[name]; ok {
		return n
	}
	if e.placeholders == nil {
		e.placeholders = make(map[string]int)
	}
	e.placeholder++
	e.placeholders[name] = e.placeholder
	e.names = append(e.names, name)
	return e.placeholder
}

// RegisterCustomLabel declares a custom label item, resolving any
// placeholders in its raw template, and returns the resolved label and
// whether it was already declared.
func (e *Engine) RegisterCustomLabel(raw, content string, line int) (resolved string, dup bool) {
	resolved, _ = ParseTemplate(raw).Resolve(func(name string) (int, bool) {
		return e.ResolvePlaceholder(name), true
	})
	dup = e.CustomLabels.register(raw, resolved, content, line, 0)
	return resolved, dup
}

// Example is the result of an example lookup.
type Example struct {
	Number  int
	Content string
}

// LookupExample returns the number and content of a declared example label.
func (e *Engine) LookupExample(label string) (Example, bool) {
	if !e.Examples.Has(label) {
		return Example{}, false
	}
	return Example{
		Number:  e.Examples.Number(label),
		Content: e.Examples.Content(label),
	}, true
}

// CustomLabel is the result of a custom label lookup.
type CustomLabel struct {
	Resolved string
	Content  string
}

// LookupCustomLabel finds a declared custom label given either its raw
// template or its resolved form. A template never declared verbatim still
// resolves if all of its placeholders are known and its resolution was
// declared. Lookup never assigns placeholder numbers.
func (e *Engine) LookupCustomLabel(label string) (CustomLabel, bool) {
	resolved, ok := e.CustomLabels.Resolved(label)
	if !ok && e.CustomLabels.Has(label) {
		resolved, ok = label, true
	}
	if !ok {
		resolved, ok = e.ResolveTemplate(label)
		ok = ok && e.CustomLabels.Has(resolved)
	}
	if !ok {
		return CustomLabel{}, false
	}
	return CustomLabel{
		Resolved: resolved,
		Content:  e.CustomLabels.Content(resolved),
	}, true
}

// ResolveTemplate resolves a raw template using only already assigned
// placeholder numbers; it returns false if any placeholder is unknown.
func (e *Engine) ResolveTemplate(raw string) (string, bool) {
	return ParseTemplate(raw).Resolve(func(name string) (int, bool) {
		n, ok := e.placeholders[name]
		return n, ok
	})
}

// Placeholder is one placeholder assignment.
type Placeholder struct {
	Name   string
	Number int
}

// Placeholders returns all placeholder assignments, in assignment order.
func (e *Engine) Placeholders() []Placeholder {
	if len(e.names) == 0 {
		return nil
	}
	out := make([]Placeholder, len(e.names))
	for i, name := range e.names {
		out[i] = Placeholder{name, e.placeholders[name]}
	}
	return out
}

// Counters is a snapshot of the engine's counters.
type Counters struct {
	Hash        int
	Example     int
	Placeholder int
}

// Counters returns the current counter values.
func (e *Engine) Counters() Counters {
	return Counters{e.hash, e.example, e.placeholder}
}
