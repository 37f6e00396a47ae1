package resolver

import (
	"sort"

	"github.com/varlet-dev/varlet/ast"
)

// Scope is one frame of the lexical scope chain. Each frame records the
// names declared in it along with their declaration kinds. Lookups walk the
// chain innermost-first, so inner frames shadow outer ones.
type Scope struct {
	parent   *Scope
	bindings map[string]ast.DeclKind
}

// NewScope creates a new root scope frame.
func NewScope() *Scope {
	return &Scope{bindings: map[string]ast.DeclKind{}}
}

// NewBlock creates a child frame for a nested block.
func (s *Scope) NewBlock() *Scope {
	return &Scope{parent: s, bindings: map[string]ast.DeclKind{}}
}

// Parent returns the enclosing frame, or nil for the root frame.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Declare registers a binding in this frame, overwriting any previous
// binding of the same name in this frame.
func (s *Scope) Declare(name string, kind ast.DeclKind) {
	s.bindings[name] = kind
}

// Lookup searches the scope chain innermost-first for a binding.
func (s *Scope) Lookup(name string) (ast.DeclKind, bool) {
	for frame := s; frame != nil; frame = frame.parent {
		if kind, ok := frame.bindings[name]; ok {
			return kind, true
		}
	}
	return ast.NoKind, false
}

// LookupLocal searches only this frame for a binding.
func (s *Scope) LookupLocal(name string) (ast.DeclKind, bool) {
	kind, ok := s.bindings[name]
	return kind, ok
}

// Count returns the number of bindings in this frame.
func (s *Scope) Count() int {
	return len(s.bindings)
}

// Names returns all names visible from this frame, sorted. Shadowed outer
// names are included once.
func (s *Scope) Names() []string {
	seen := map[string]bool{}
	for frame := s; frame != nil; frame = frame.parent {
		for name := range frame.bindings {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
