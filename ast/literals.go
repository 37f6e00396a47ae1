package ast

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/varlet-dev/varlet/internal/token"
)

// Int is an expression node that holds an integer literal.
type Int struct {
	ValuePos token.Position // position of the literal
	Literal  string         // the literal text (e.g., "42")
	Value    int64          // the parsed value
}

func (x *Int) exprNode() {}

func (x *Int) Pos() token.Position { return x.ValuePos }
func (x *Int) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }

func (x *Int) String() string { return x.Literal }

// Float is an expression node that holds a floating point literal.
type Float struct {
	ValuePos token.Position // position of the literal
	Literal  string         // the literal text
	Value    float64        // the parsed value
}

func (x *Float) exprNode() {}

func (x *Float) Pos() token.Position { return x.ValuePos }
func (x *Float) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }

func (x *Float) String() string { return x.Literal }

// String is an expression node that holds a string literal.
type String struct {
	ValuePos token.Position // position of opening quote
	Value    string         // the unquoted string value
}

func (x *String) exprNode() {}

func (x *String) Pos() token.Position { return x.ValuePos }
func (x *String) End() token.Position { return x.ValuePos.Advance(len(x.Value) + 2) }

func (x *String) String() string { return strconv.Quote(x.Value) }

// Bool is an expression node that holds a boolean literal.
type Bool struct {
	ValuePos token.Position // position of "true" or "false"
	Literal  string         // "true" or "false"
	Value    bool           // the boolean value
}

func (x *Bool) exprNode() {}

func (x *Bool) Pos() token.Position { return x.ValuePos }
func (x *Bool) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }

func (x *Bool) String() string { return x.Literal }

// Nil is an expression node that holds a nil literal.
type Nil struct {
	NilPos token.Position // position of "nil" keyword
}

func (x *Nil) exprNode() {}

func (x *Nil) Pos() token.Position { return x.NilPos }
func (x *Nil) End() token.Position { return x.NilPos.Advance(3) } // len("nil")

func (x *Nil) String() string { return "nil" }

// List is an expression node that holds a list literal, e.g. "[1, 2, 3]".
type List struct {
	Lbrack token.Position // position of "["
	Items  []Expr         // list items
	Rbrack token.Position // position of "]"
}

func (x *List) exprNode() {}

func (x *List) Pos() token.Position { return x.Lbrack }
func (x *List) End() token.Position { return x.Rbrack.Advance(1) }

func (x *List) String() string {
	items := make([]string, 0, len(x.Items))
	for _, item := range x.Items {
		items = append(items, item.String())
	}
	var out bytes.Buffer
	out.WriteString("[")
	out.WriteString(strings.Join(items, ", "))
	out.WriteString("]")
	return out.String()
}
