package pipeline

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Session holds the numbering of one open document. Recomputes are
// serialized, and each completed Result replaces the previous one
// atomically; readers never observe a partial result.
type Session struct {
	id  uuid.UUID
	log *slog.Logger

	mu     sync.Mutex // serializes recomputes and config changes
	cfg    Config
	result atomic.Pointer[Result]
}

// NewSession creates a session with a fresh identity. A nil logger uses
// slog.Default().
func NewSession(cfg Config, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	id := uuid.New()
	return &Session{
		id:  id,
		cfg: cfg,
		log: log.With("document", id.String()),
	}
}

// ID returns the session's document identity.
func (s *Session) ID() uuid.UUID { return s.id }

// Config returns the session's current configuration.
func (s *Session) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// SetConfig changes the session configuration; the next Recompute will not
// reuse any result computed under a different configuration.
func (s *Session) SetConfig(cfg Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
}

// Result returns the latest completed result, or nil.
func (s *Session) Result() *Result { return s.result.Load() }

// Recompute recomputes the document's numbering, returning the cached
// result if the document text and configuration are unchanged since the
// last recompute.
func (s *Session) Recompute(doc Document) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t0 := time.Now()
	lines, err := readLines(doc)
	if err != nil {
		s.log.Error("recompute rejected", "err", err)
		return nil, err
	}

	if prior := s.result.Load(); prior != nil && prior.Revision == revision(lines, s.cfg) {
		s.log.Debug("recompute cached", "revision", prior.Revision)
		return prior, nil
	}

	res := compute(doc, lines, s.cfg)
	s.result.Store(res)
	s.log.Debug("recompute",
		"revision", res.Revision,
		"lines", len(res.Lines),
		"regions", len(res.Regions),
		"replacements", len(res.Replacements),
		"duplicates", len(res.Duplicates()),
		"duration", time.Since(t0))
	return res, nil
}

// Reset discards the cached result, as when the document is reloaded.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result.Store(nil)
}

// Workspace tracks one Session per open document name.
type Workspace struct {
	cfg Config
	log *slog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewWorkspace creates an empty workspace whose sessions start with the
// given config and logger.
func NewWorkspace(cfg Config, log *slog.Logger) *Workspace {
	if log == nil {
		log = slog.Default()
	}
	return &Workspace{
		cfg:      cfg,
		log:      log,
		sessions: make(map[string]*Session),
	}
}

// Open returns the session for a document name, creating it if needed.
func (w *Workspace) Open(name string) *Session {
	w.mu.Lock()
	defer w.mu.Unlock()
	if s, ok := w.sessions[name]; ok {
		return s
	}
	s := NewSession(w.cfg, w.log.With("name", name))
	w.sessions[name] = s
	w.log.Debug("open document", "name", name, "document", s.ID().String())
	return s
}

// Reload replaces a document's session with a fresh one, so that nothing
// carries over from its prior contents.
func (w *Workspace) Reload(name string) *Session {
	w.mu.Lock()
	defer w.mu.Unlock()
	s := NewSession(w.cfg, w.log.With("name", name))
	w.sessions[name] = s
	w.log.Debug("reload document", "name", name, "document", s.ID().String())
	return s
}

// Close forgets a document's session.
func (w *Workspace) Close(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.sessions, name)
}

// Len returns the number of open documents.
func (w *Workspace) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.sessions)
}
