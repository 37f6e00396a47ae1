package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/varlet-dev/varlet/internal/token"
)

func TestDeclKindString(t *testing.T) {
	assert.Equal(t, "var", VarKind.String())
	assert.Equal(t, "let", LetKind.String())
	assert.Equal(t, "const", ConstKind.String())
	assert.Equal(t, "", NoKind.String())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, VarKind, KindOf(token.VAR))
	assert.Equal(t, LetKind, KindOf(token.LET))
	assert.Equal(t, ConstKind, KindOf(token.CONST))
	assert.Equal(t, NoKind, KindOf(token.IDENT))
}

func TestDestructureString(t *testing.T) {
	stmt := &Destructure{
		DefaultKind: ConstKind,
		Elems: []PatternElem{
			{Name: &Ident{Name: "foo"}},
			{Kind: LetKind, Name: &Ident{Name: "bar"}},
			{Rest: true, Name: &Ident{Name: "rest"}},
		},
		Value: &Ident{Name: "xs"},
	}
	assert.Equal(t, "const [foo, let bar, ...rest] = xs", stmt.String())
}

func TestPatternElemString(t *testing.T) {
	elem := PatternElem{
		Kind: ConstKind,
		Rest: true,
		Name: &Ident{Name: "rest"},
	}
	assert.Equal(t, "...const rest", elem.String())

	elided := PatternElem{}
	assert.Equal(t, "", elided.String())

	withDefault := PatternElem{
		Name:    &Ident{Name: "a"},
		Default: &Int{Literal: "1", Value: 1},
	}
	assert.Equal(t, "a = 1", withDefault.String())
}

func TestDeclareString(t *testing.T) {
	stmt := &Declare{
		Kind:  LetKind,
		Name:  &Ident{Name: "x"},
		Value: &Int{Literal: "5", Value: 5},
	}
	assert.Equal(t, "let x = 5", stmt.String())
}

func TestProgramString(t *testing.T) {
	prog := &Program{Stmts: []Node{
		&Declare{Kind: LetKind, Name: &Ident{Name: "x"}, Value: &Int{Literal: "1", Value: 1}},
		&Assign{Name: &Ident{Name: "x"}, Value: &Int{Literal: "2", Value: 2}},
	}}
	assert.Equal(t, "let x = 1\nx = 2", prog.String())
}

func TestWalkVisitsPatternChildren(t *testing.T) {
	stmt := &Destructure{
		DefaultKind: LetKind,
		Elems: []PatternElem{
			{Name: &Ident{Name: "a"}, Default: &Int{Literal: "1", Value: 1}},
			{Name: &Ident{Name: "b"}},
		},
		Value: &List{Items: []Expr{
			&Int{Literal: "1", Value: 1},
			&Int{Literal: "2", Value: 2},
		}},
	}

	var idents []string
	var ints int
	Inspect(stmt, func(n Node) bool {
		switch n := n.(type) {
		case *Ident:
			idents = append(idents, n.Name)
		case *Int:
			ints++
		}
		return true
	})
	assert.Equal(t, []string{"a", "b"}, idents)
	assert.Equal(t, 3, ints)
}

func TestPreorder(t *testing.T) {
	prog := &Program{Stmts: []Node{
		&Declare{Kind: LetKind, Name: &Ident{Name: "x"}, Value: &Int{Literal: "1", Value: 1}},
	}}
	var count int
	for range Preorder(prog) {
		count++
	}
	assert.Equal(t, 4, count) // program, declare, ident, int
}
