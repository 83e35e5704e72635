package store

import (
	"path/filepath"
	"sync"

	"github.com/walteh/amps"
)

// Store holds compiled templates keyed by their cleaned path.
type Store struct {
	engine    *amps.Engine
	templates *sync.Map // map[string]*amps.Template
}

func New(engine *amps.Engine) *Store {
	return &Store{
		engine:    engine,
		templates: &sync.Map{},
	}
}

func normalizePath(path string) string {
	return filepath.Clean(path)
}

// GetNoFallback returns a stored template without touching the filesystem.
func (s *Store) GetNoFallback(path string) (*amps.Template, bool) {
	tmpl, ok := s.templates.Load(normalizePath(path))
	if !ok {
		return nil, false
	}
	return tmpl.(*amps.Template), true
}

// Get returns the stored template for path, compiling it from the engine's
// filesystem on a miss.
func (s *Store) Get(path string) (*amps.Template, error) {
	key := normalizePath(path)
	if tmpl, ok := s.templates.Load(key); ok {
		return tmpl.(*amps.Template), nil
	}

	tmpl, err := s.engine.CompileFile(key)
	if err != nil {
		return nil, err
	}

	actual, _ := s.templates.LoadOrStore(key, tmpl)
	return actual.(*amps.Template), nil
}

func (s *Store) Put(path string, tmpl *amps.Template) {
	s.templates.Store(normalizePath(path), tmpl)
}

// Invalidate drops path so the next Get reloads it.
func (s *Store) Invalidate(path string) {
	s.templates.Delete(normalizePath(path))
}

func (s *Store) Len() int {
	n := 0
	s.templates.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
