package resolver

import (
	"fmt"

	"github.com/varlet-dev/varlet/ast"
	"github.com/varlet-dev/varlet/errors"
	"github.com/varlet-dev/varlet/internal/token"
)

// MissingDeclarationError reports a pattern slot that has no declaration
// keyword of its own, no default kind on the pattern, and no existing
// binding in scope to reuse.
type MissingDeclarationError struct {
	*errors.CompileError

	// Name is the identifier that could not be bound.
	Name string
}

// RedeclarationConflictError reports an explicit declaration keyword that
// disagrees with the kind of an existing binding for the same name in the
// current scope frame.
type RedeclarationConflictError struct {
	*errors.CompileError

	// Name is the identifier being redeclared.
	Name string
	// Existing is the kind of the binding already in scope.
	Existing ast.DeclKind
	// Requested is the kind written in the pattern.
	Requested ast.DeclKind
}

// UndeclaredAssignError reports a plain assignment to a name with no
// binding anywhere in the scope chain.
type UndeclaredAssignError struct {
	*errors.CompileError

	Name string
}

func (r *Resolver) newMissingDeclarationError(name *ast.Ident, scope *Scope) *MissingDeclarationError {
	suggestions := errors.SuggestSimilar(name.Name, scope.Names())
	return &MissingDeclarationError{
		Name: name.Name,
		CompileError: r.newCompileError(errors.E2001, name.NamePos, len(name.Name),
			fmt.Sprintf("no declaration kind for %q", name.Name),
			suggestions,
			"declare a default kind on the pattern, or annotate this element with var, let, or const"),
	}
}

func (r *Resolver) newRedeclarationConflictError(name *ast.Ident, existing, requested ast.DeclKind) *RedeclarationConflictError {
	return &RedeclarationConflictError{
		Name:      name.Name,
		Existing:  existing,
		Requested: requested,
		CompileError: r.newCompileError(errors.E2002, name.NamePos, len(name.Name),
			fmt.Sprintf("cannot redeclare %q as %s: already declared as %s",
				name.Name, requested, existing),
			nil,
			fmt.Sprintf("%q was previously declared with %s in this scope", name.Name, existing)),
	}
}

func (r *Resolver) newUndeclaredAssignError(name *ast.Ident, scope *Scope) *UndeclaredAssignError {
	suggestions := errors.SuggestSimilar(name.Name, scope.Names())
	return &UndeclaredAssignError{
		Name: name.Name,
		CompileError: r.newCompileError(errors.E2003, name.NamePos, len(name.Name),
			fmt.Sprintf("assignment to undeclared name %q", name.Name),
			suggestions,
			"declare the name with var, let, or const before assigning to it"),
	}
}

func (r *Resolver) newCompileError(code errors.ErrorCode, pos token.Position, width int, msg string, suggestions []errors.Suggestion, note string) *errors.CompileError {
	filename := r.filename
	if filename == "" {
		filename = pos.File
	}
	err := &errors.CompileError{
		Code:        code,
		Message:     msg,
		Filename:    filename,
		Suggestions: suggestions,
		Note:        note,
	}
	if pos.IsValid() {
		err.Line = pos.LineNumber()
		err.Column = pos.ColumnNumber()
		err.EndColumn = err.Column + width - 1
		err.SourceLine = r.lineText(pos)
	}
	return err
}
