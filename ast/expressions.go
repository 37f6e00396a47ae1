package ast

import (
	"bytes"
	"strings"

	"github.com/varlet-dev/varlet/internal/token"
)

// Ident is an expression node that refers to a variable by name.
type Ident struct {
	NamePos token.Position // position of identifier
	Name    string         // identifier name
}

func (x *Ident) exprNode() {}

func (x *Ident) Pos() token.Position { return x.NamePos }
func (x *Ident) End() token.Position { return x.NamePos.Advance(len(x.Name)) }

func (x *Ident) String() string { return x.Name }

// Prefix is an operator expression where the operator precedes the operand.
// Examples include "!false" and "-x".
type Prefix struct {
	OpPos token.Position // position of operator
	Op    string         // operator: "!" or "-"
	X     Expr           // operand
}

func (x *Prefix) exprNode() {}

func (x *Prefix) Pos() token.Position { return x.OpPos }
func (x *Prefix) End() token.Position { return x.X.End() }

func (x *Prefix) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(x.Op)
	out.WriteString(x.X.String())
	out.WriteString(")")
	return out.String()
}

// Infix is an operator expression where the operator is between the operands.
// Examples include "x + y" and "5 - 1".
type Infix struct {
	X     Expr           // left operand
	OpPos token.Position // position of operator
	Op    string         // operator: "+", "-", "*", "/", etc.
	Y     Expr           // right operand
}

func (x *Infix) exprNode() {}

func (x *Infix) Pos() token.Position { return x.X.Pos() }
func (x *Infix) End() token.Position { return x.Y.End() }

func (x *Infix) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(x.X.String())
	out.WriteString(" " + x.Op + " ")
	out.WriteString(x.Y.String())
	out.WriteString(")")
	return out.String()
}

// Spread represents a spread expression (...expr) used in list literals.
type Spread struct {
	Ellipsis token.Position // position of "..."
	X        Expr           // expression being spread
}

func (x *Spread) exprNode() {}

func (x *Spread) Pos() token.Position { return x.Ellipsis }
func (x *Spread) End() token.Position {
	if x.X != nil {
		return x.X.End()
	}
	return x.Ellipsis.Advance(3) // len("...")
}

func (x *Spread) String() string {
	var out bytes.Buffer
	out.WriteString("...")
	if x.X != nil {
		out.WriteString(x.X.String())
	}
	return out.String()
}

// Index is an expression node that retrieves a value from a container by key
// or position, e.g. "arr[0]".
type Index struct {
	X      Expr           // the container being indexed
	Lbrack token.Position // position of "["
	Key    Expr           // the index expression
	Rbrack token.Position // position of "]"
}

func (x *Index) exprNode() {}

func (x *Index) Pos() token.Position { return x.X.Pos() }
func (x *Index) End() token.Position { return x.Rbrack.Advance(1) }

func (x *Index) String() string {
	var out bytes.Buffer
	out.WriteString(x.X.String())
	out.WriteString("[")
	out.WriteString(x.Key.String())
	out.WriteString("]")
	return out.String()
}

// Call is an expression node that describes calling a function.
type Call struct {
	Fun    Expr           // the function being called
	Lparen token.Position // position of "("
	Args   []Expr         // call arguments
	Rparen token.Position // position of ")"
}

func (x *Call) exprNode() {}

func (x *Call) Pos() token.Position { return x.Fun.Pos() }
func (x *Call) End() token.Position { return x.Rparen.Advance(1) }

func (x *Call) String() string {
	args := make([]string, 0, len(x.Args))
	for _, a := range x.Args {
		args = append(args, a.String())
	}
	var out bytes.Buffer
	out.WriteString(x.Fun.String())
	out.WriteString("(")
	out.WriteString(strings.Join(args, ", "))
	out.WriteString(")")
	return out.String()
}
