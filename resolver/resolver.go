package resolver

import (
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/varlet-dev/varlet/ast"
	"github.com/varlet-dev/varlet/internal/token"
)

// Mode says how a resolved binding relates to the surrounding scope.
type Mode int

const (
	// Declare means the binding introduces a new name in the current frame.
	Declare Mode = iota
	// Reuse means the binding assigns to a name that already exists.
	Reuse
)

// String returns "declare" or "reuse".
func (m Mode) String() string {
	if m == Reuse {
		return "reuse"
	}
	return "declare"
}

// MarshalText encodes the mode as its string form for JSON output.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Binding is the fully resolved outcome for one bound name: the kind it
// carries, whether it declares a new name or reuses an existing one, and
// whether it collects rest values.
type Binding struct {
	Name string         `json:"name"`
	Kind ast.DeclKind   `json:"kind"`
	Mode Mode           `json:"mode"`
	Rest bool           `json:"rest,omitempty"`
	Pos  token.Position `json:"-"`
}

// Option is a configuration function for a Resolver.
type Option func(*Resolver)

// WithFilename sets the filename reported in resolve errors.
func WithFilename(name string) Option {
	return func(r *Resolver) {
		r.filename = name
	}
}

// WithSource provides the source text so that resolve errors can show the
// offending line.
func WithSource(src string) Option {
	return func(r *Resolver) {
		r.lines = strings.Split(src, "\n")
	}
}

// Resolver assigns a declaration kind and a scope mode to every name bound
// by a program. It does not evaluate anything; it only answers which names
// are introduced, with which kinds, and which assignments reuse existing
// bindings.
type Resolver struct {
	filename string
	lines    []string
}

// New creates a Resolver with the given options.
func New(opts ...Option) *Resolver {
	r := &Resolver{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) lineText(pos token.Position) string {
	n := pos.LineNumber() - 1
	if n < 0 || n >= len(r.lines) {
		return ""
	}
	return r.lines[n]
}

// KindFor answers the kind-resolution question for a single pattern element:
// the element's own keyword wins, otherwise the pattern's default kind
// applies, otherwise the element is deferred to scope lookup (NoKind).
func KindFor(elem ast.PatternElem, defaultKind ast.DeclKind) ast.DeclKind {
	if elem.Kind.IsValid() {
		return elem.Kind
	}
	return defaultKind
}

// ResolvePattern resolves every named slot of a destructuring pattern
// against the given scope. It returns one Binding per named slot in pattern
// order; elided slots produce nothing. The scope is not modified: a pattern
// resolves as a unit, and its declarations take effect only via Commit.
// Earlier slots of the same pattern are visible to later ones.
func (r *Resolver) ResolvePattern(pat *ast.Destructure, scope *Scope) ([]Binding, error) {
	var result error
	bindings := make([]Binding, 0, len(pat.Elems))
	pending := map[string]ast.DeclKind{}

	lookupLocal := func(name string) (ast.DeclKind, bool) {
		if kind, ok := pending[name]; ok {
			return kind, true
		}
		return scope.LookupLocal(name)
	}
	lookupChain := func(name string) (ast.DeclKind, bool) {
		if kind, ok := pending[name]; ok {
			return kind, true
		}
		return scope.Lookup(name)
	}

	for _, elem := range pat.Elems {
		if elem.Name == nil {
			continue // elided slot: no binding, no scope interaction
		}
		binding := Binding{
			Name: elem.Name.Name,
			Rest: elem.Rest,
			Pos:  elem.Name.NamePos,
		}
		switch {
		case elem.Kind.IsValid():
			// An explicit keyword on the slot is authoritative. It may
			// restate the kind of an existing binding, but never change it.
			existing, ok := lookupLocal(elem.Name.Name)
			if ok && existing != elem.Kind {
				result = multierror.Append(result,
					r.newRedeclarationConflictError(elem.Name, existing, elem.Kind))
				continue
			}
			binding.Kind = elem.Kind
			if ok {
				binding.Mode = Reuse
			} else {
				binding.Mode = Declare
				pending[elem.Name.Name] = elem.Kind
			}
		case pat.DefaultKind.IsValid():
			// The default kind yields to an existing binding: the slot
			// reuses the binding with its original kind.
			if existing, ok := lookupLocal(elem.Name.Name); ok {
				binding.Kind = existing
				binding.Mode = Reuse
			} else {
				binding.Kind = pat.DefaultKind
				binding.Mode = Declare
				pending[elem.Name.Name] = pat.DefaultKind
			}
		default:
			// No keyword anywhere: the slot can only assign to a binding
			// that already exists somewhere in the scope chain.
			existing, ok := lookupChain(elem.Name.Name)
			if !ok {
				result = multierror.Append(result,
					r.newMissingDeclarationError(elem.Name, scope))
				continue
			}
			binding.Kind = existing
			binding.Mode = Reuse
		}
		bindings = append(bindings, binding)
	}

	if result != nil {
		return nil, result
	}
	return bindings, nil
}

// Commit applies the declarations of a resolved pattern to the scope.
// Reuse bindings leave the scope untouched.
func Commit(scope *Scope, bindings []Binding) {
	for _, b := range bindings {
		if b.Mode == Declare {
			scope.Declare(b.Name, b.Kind)
		}
	}
}

// ResolveProgram resolves every statement of a program against a fresh root
// scope. It returns the bindings of all declarations and assignments in
// source order. Resolution continues past a failed statement so that one
// bad pattern does not hide errors later in the program; a failed pattern
// commits nothing.
func (r *Resolver) ResolveProgram(prog *ast.Program) ([]Binding, error) {
	scope := NewScope()
	return r.resolveStmts(prog.Stmts, scope)
}

func (r *Resolver) resolveStmts(stmts []ast.Node, scope *Scope) ([]Binding, error) {
	var result error
	var bindings []Binding

	for _, stmt := range stmts {
		switch node := stmt.(type) {
		case *ast.Declare:
			binding, err := r.resolveDeclare(node, scope)
			if err != nil {
				result = multierror.Append(result, err)
				continue
			}
			bindings = append(bindings, binding)
		case *ast.Assign:
			binding, err := r.resolveAssign(node, scope)
			if err != nil {
				result = multierror.Append(result, err)
				continue
			}
			bindings = append(bindings, binding)
		case *ast.Destructure:
			resolved, err := r.ResolvePattern(node, scope)
			if err != nil {
				result = multierror.Append(result, err)
				continue
			}
			Commit(scope, resolved)
			bindings = append(bindings, resolved...)
		case *ast.Block:
			nested, err := r.resolveStmts(node.Stmts, scope.NewBlock())
			if err != nil {
				result = multierror.Append(result, err)
			}
			bindings = append(bindings, nested...)
		}
	}
	return bindings, result
}

func (r *Resolver) resolveDeclare(node *ast.Declare, scope *Scope) (Binding, error) {
	binding := Binding{
		Name: node.Name.Name,
		Kind: node.Kind,
		Pos:  node.Name.NamePos,
	}
	if existing, ok := scope.LookupLocal(node.Name.Name); ok {
		if existing != node.Kind {
			return Binding{}, r.newRedeclarationConflictError(node.Name, existing, node.Kind)
		}
		binding.Mode = Reuse
		return binding, nil
	}
	binding.Mode = Declare
	scope.Declare(node.Name.Name, node.Kind)
	return binding, nil
}

func (r *Resolver) resolveAssign(node *ast.Assign, scope *Scope) (Binding, error) {
	existing, ok := scope.Lookup(node.Name.Name)
	if !ok {
		return Binding{}, r.newUndeclaredAssignError(node.Name, scope)
	}
	return Binding{
		Name: node.Name.Name,
		Kind: existing,
		Mode: Reuse,
		Pos:  node.Name.NamePos,
	}, nil
}
