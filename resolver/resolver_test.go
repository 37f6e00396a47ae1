package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/varlet-dev/varlet/ast"
	verrors "github.com/varlet-dev/varlet/errors"
	"github.com/varlet-dev/varlet/parser"
)

func parsePattern(t *testing.T, src string) *ast.Destructure {
	t.Helper()
	prog, err := parser.Parse(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 1)
	pat, ok := prog.Stmts[0].(*ast.Destructure)
	require.True(t, ok, "expected a destructuring statement, got %T", prog.Stmts[0])
	return pat
}

func TestKindFor(t *testing.T) {
	explicit := ast.PatternElem{Kind: ast.LetKind}
	plain := ast.PatternElem{}

	assert.Equal(t, ast.LetKind, KindFor(explicit, ast.ConstKind))
	assert.Equal(t, ast.LetKind, KindFor(explicit, ast.NoKind))
	assert.Equal(t, ast.ConstKind, KindFor(plain, ast.ConstKind))
	assert.Equal(t, ast.NoKind, KindFor(plain, ast.NoKind))
}

func TestResolveDefaultKind(t *testing.T) {
	pat := parsePattern(t, "const [foo, let bar, ...rest] = [1, 2, 3, 4]")
	scope := NewScope()

	bindings, err := New().ResolvePattern(pat, scope)
	require.NoError(t, err)
	require.Equal(t, []Binding{
		{Name: "foo", Kind: ast.ConstKind, Mode: Declare, Pos: bindings[0].Pos},
		{Name: "bar", Kind: ast.LetKind, Mode: Declare, Pos: bindings[1].Pos},
		{Name: "rest", Kind: ast.ConstKind, Mode: Declare, Rest: true, Pos: bindings[2].Pos},
	}, bindings)

	// Resolution alone must not touch the scope
	require.Equal(t, 0, scope.Count())

	Commit(scope, bindings)
	kind, ok := scope.Lookup("rest")
	require.True(t, ok)
	require.Equal(t, ast.ConstKind, kind)
}

func TestDeferredSlotWithoutBinding(t *testing.T) {
	pat := parsePattern(t, "[var _, const bar, ...rest] = xs")
	scope := NewScope()

	bindings, err := New().ResolvePattern(pat, scope)
	require.Error(t, err)
	require.Nil(t, bindings)

	var missing *MissingDeclarationError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "rest", missing.Name)
	assert.Equal(t, verrors.E2001, missing.Code)

	// Nothing was committed: _ and bar are not in scope
	assert.Equal(t, 0, scope.Count())
}

func TestDefaultYieldsToExistingBinding(t *testing.T) {
	pat := parsePattern(t, "const [hello, bar, world] = xs")
	scope := NewScope()
	scope.Declare("bar", ast.LetKind)

	bindings, err := New().ResolvePattern(pat, scope)
	require.NoError(t, err)
	require.Len(t, bindings, 3)

	assert.Equal(t, Binding{Name: "hello", Kind: ast.ConstKind, Mode: Declare, Pos: bindings[0].Pos}, bindings[0])
	assert.Equal(t, Binding{Name: "bar", Kind: ast.LetKind, Mode: Reuse, Pos: bindings[1].Pos}, bindings[1])
	assert.Equal(t, Binding{Name: "world", Kind: ast.ConstKind, Mode: Declare, Pos: bindings[2].Pos}, bindings[2])

	Commit(scope, bindings)
	kind, ok := scope.Lookup("bar")
	require.True(t, ok)
	assert.Equal(t, ast.LetKind, kind, "reuse must not change the existing kind")
}

func TestExplicitKindConflict(t *testing.T) {
	pat := parsePattern(t, "[const hello, const bar, let world] = xs")
	scope := NewScope()
	scope.Declare("bar", ast.LetKind)

	bindings, err := New().ResolvePattern(pat, scope)
	require.Error(t, err)
	require.Nil(t, bindings)

	var conflict *RedeclarationConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "bar", conflict.Name)
	assert.Equal(t, ast.LetKind, conflict.Existing)
	assert.Equal(t, ast.ConstKind, conflict.Requested)
	assert.Equal(t, verrors.E2002, conflict.Code)

	// hello and world were valid but must not be committed
	assert.Equal(t, 1, scope.Count())
}

func TestExplicitKindWins(t *testing.T) {
	pat := parsePattern(t, "var [let a, b] = xs")
	bindings, err := New().ResolvePattern(pat, NewScope())
	require.NoError(t, err)
	require.Len(t, bindings, 2)
	assert.Equal(t, ast.LetKind, bindings[0].Kind)
	assert.Equal(t, ast.VarKind, bindings[1].Kind)
}

func TestMatchingKindReuse(t *testing.T) {
	tests := []struct {
		name string
		kind ast.DeclKind
		src  string
	}{
		{"let", ast.LetKind, "[let a] = xs"},
		{"var", ast.VarKind, "[var a] = xs"},
		{"const", ast.ConstKind, "[const a] = xs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope := NewScope()
			scope.Declare("a", tt.kind)
			bindings, err := New().ResolvePattern(parsePattern(t, tt.src), scope)
			require.NoError(t, err)
			require.Len(t, bindings, 1)
			assert.Equal(t, Reuse, bindings[0].Mode)
			assert.Equal(t, tt.kind, bindings[0].Kind)
		})
	}
}

func TestElidedSlots(t *testing.T) {
	pat := parsePattern(t, "let [, a, , b] = xs")
	bindings, err := New().ResolvePattern(pat, NewScope())
	require.NoError(t, err)
	require.Len(t, bindings, 2)
	assert.Equal(t, "a", bindings[0].Name)
	assert.Equal(t, "b", bindings[1].Name)
}

func TestWithinPatternVisibility(t *testing.T) {
	// A slot declared earlier in the same pattern is visible to later slots
	pat := parsePattern(t, "let [a, a] = xs")
	bindings, err := New().ResolvePattern(pat, NewScope())
	require.NoError(t, err)
	require.Len(t, bindings, 2)
	assert.Equal(t, Declare, bindings[0].Mode)
	assert.Equal(t, Reuse, bindings[1].Mode)
	assert.Equal(t, ast.LetKind, bindings[1].Kind)
}

func TestDeferredReuseFromOuterFrame(t *testing.T) {
	outer := NewScope()
	outer.Declare("x", ast.VarKind)
	inner := outer.NewBlock()

	pat := parsePattern(t, "[x] = xs")
	bindings, err := New().ResolvePattern(pat, inner)
	require.NoError(t, err)
	require.Len(t, bindings, 1)
	assert.Equal(t, Reuse, bindings[0].Mode)
	assert.Equal(t, ast.VarKind, bindings[0].Kind)
}

func TestIdempotence(t *testing.T) {
	src := "const [foo, let bar, ...rest] = xs"
	r := New()

	scope1 := NewScope()
	first, err := r.ResolvePattern(parsePattern(t, src), scope1)
	require.NoError(t, err)

	scope2 := NewScope()
	second, err := r.ResolvePattern(parsePattern(t, src), scope2)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	Commit(scope1, first)
	Commit(scope2, second)
	assert.Equal(t, scope1.Names(), scope2.Names())
}

func TestMissingDeclarationSuggestion(t *testing.T) {
	scope := NewScope()
	scope.Declare("count", ast.LetKind)

	pat := parsePattern(t, "[counts] = xs")
	_, err := New().ResolvePattern(pat, scope)
	require.Error(t, err)

	var missing *MissingDeclarationError
	require.True(t, errors.As(err, &missing))
	require.NotEmpty(t, missing.Suggestions)
	assert.Equal(t, "count", missing.Suggestions[0].Value)
}

func TestMultipleSlotErrors(t *testing.T) {
	// Both bad slots are reported, not just the first
	pat := parsePattern(t, "[a, b] = xs")
	_, err := New().ResolvePattern(pat, NewScope())
	require.Error(t, err)

	count := 0
	for _, e := range flatten(err) {
		var missing *MissingDeclarationError
		if errors.As(e, &missing) {
			count++
		}
	}
	assert.Equal(t, 2, count)
}

func flatten(err error) []error {
	if u, ok := err.(interface{ Unwrap() []error }); ok {
		return u.Unwrap()
	}
	if u, ok := err.(interface{ WrappedErrors() []error }); ok {
		return u.WrappedErrors()
	}
	return []error{err}
}

func TestResolveProgram(t *testing.T) {
	src := `let total = 0
const [a, let b, ...rest] = [1, 2, 3]
total = 5
{
	let inner = 1
	[a] = rest
}
`
	prog, err := parser.Parse(context.Background(), src)
	require.NoError(t, err)

	bindings, err := New(WithSource(src)).ResolveProgram(prog)
	require.NoError(t, err)

	got := make([]string, 0, len(bindings))
	for _, b := range bindings {
		got = append(got, b.Name+":"+b.Kind.String()+"="+b.Mode.String())
	}
	assert.Equal(t, []string{
		"total:let=declare",
		"a:const=declare",
		"b:let=declare",
		"rest:const=declare",
		"total:let=reuse",
		"inner:let=declare",
		"a:const=reuse",
	}, got)
}

func TestResolveProgramBlockScoping(t *testing.T) {
	src := `{
	let hidden = 1
}
hidden = 2
`
	prog, err := parser.Parse(context.Background(), src)
	require.NoError(t, err)

	_, err = New().ResolveProgram(prog)
	require.Error(t, err)

	var undeclared *UndeclaredAssignError
	require.True(t, errors.As(err, &undeclared))
	assert.Equal(t, "hidden", undeclared.Name)
	assert.Equal(t, verrors.E2003, undeclared.Code)
}

func TestResolveProgramRedeclaration(t *testing.T) {
	src := `let x = 1
const x = 2
`
	prog, err := parser.Parse(context.Background(), src)
	require.NoError(t, err)

	_, err = New().ResolveProgram(prog)
	require.Error(t, err)

	var conflict *RedeclarationConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, ast.LetKind, conflict.Existing)
	assert.Equal(t, ast.ConstKind, conflict.Requested)
}

func TestResolveProgramShadowing(t *testing.T) {
	src := `let x = 1
{
	const x = 2
}
`
	prog, err := parser.Parse(context.Background(), src)
	require.NoError(t, err)

	bindings, err := New().ResolveProgram(prog)
	require.NoError(t, err)
	require.Len(t, bindings, 2)
	assert.Equal(t, ast.LetKind, bindings[0].Kind)
	assert.Equal(t, ast.ConstKind, bindings[1].Kind)
	assert.Equal(t, Declare, bindings[1].Mode)
}

func TestResolveProgramContinuesPastErrors(t *testing.T) {
	src := `[a] = xs
[b] = ys
`
	prog, err := parser.Parse(context.Background(), src)
	require.NoError(t, err)

	_, err = New().ResolveProgram(prog)
	require.Error(t, err)
	assert.Len(t, flatten(err), 2)
}

func TestErrorCarriesSourceLine(t *testing.T) {
	src := "[oops] = xs"
	prog, err := parser.Parse(context.Background(), src, parser.WithFilename("main.vl"))
	require.NoError(t, err)

	_, err = New(WithSource(src), WithFilename("main.vl")).ResolveProgram(prog)
	require.Error(t, err)

	var missing *MissingDeclarationError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "main.vl", missing.Filename)
	assert.Equal(t, 1, missing.Line)
	assert.Equal(t, 2, missing.Column)
	assert.Equal(t, src, missing.SourceLine)
}
