package ast

import (
	"bytes"

	"github.com/varlet-dev/varlet/internal/token"
)

// Declare is a statement that declares a single variable with an initial
// value, e.g. "let x = 1", "const y = 2", or "var z = 3".
type Declare struct {
	KindPos token.Position // position of the declaration keyword
	Kind    DeclKind       // var, let, or const
	Name    *Ident         // name being declared
	Value   Expr           // initial value
}

func (s *Declare) stmtNode() {}

func (s *Declare) Pos() token.Position { return s.KindPos }

func (s *Declare) End() token.Position {
	if s.Value != nil {
		return s.Value.End()
	}
	return s.Name.End()
}

func (s *Declare) String() string {
	var out bytes.Buffer
	out.WriteString(s.Kind.String() + " ")
	out.WriteString(s.Name.String())
	out.WriteString(" = ")
	if s.Value != nil {
		out.WriteString(s.Value.String())
	}
	return out.String()
}

// Assign is a statement that assigns a new value into an existing binding,
// e.g. "x = 5". It never introduces a new name.
type Assign struct {
	Name  *Ident         // binding being assigned
	OpPos token.Position // position of "="
	Value Expr           // new value
}

func (s *Assign) stmtNode() {}

func (s *Assign) Pos() token.Position { return s.Name.Pos() }
func (s *Assign) End() token.Position { return s.Value.End() }

func (s *Assign) String() string {
	var out bytes.Buffer
	out.WriteString(s.Name.String())
	out.WriteString(" = ")
	out.WriteString(s.Value.String())
	return out.String()
}

// PatternElem is one slot within an array destructuring pattern.
//
// A slot may carry its own declaration keyword, which overrides the pattern's
// default kind. A nil Name means the slot is elided and only skips a source
// position. The rest slot collects all remaining source elements and must be
// the final slot in the pattern.
type PatternElem struct {
	Kind     DeclKind       // per-slot declaration keyword, or NoKind
	KindPos  token.Position // position of the keyword, if present
	Ellipsis token.Position // position of "...", if Rest
	Rest     bool           // true for the trailing collector slot
	Name     *Ident         // bound name; nil for an elided slot
	Default  Expr           // default value if the source element is nil (optional)
	Comma    token.Position // position of the preceding "," (NoPos for the first slot)
}

// Pos returns the position of the first character of the slot.
func (e PatternElem) Pos() token.Position {
	if e.Kind != NoKind && e.KindPos.IsValid() {
		if !e.Rest || e.KindPos.Char < e.Ellipsis.Char {
			return e.KindPos
		}
	}
	if e.Rest {
		return e.Ellipsis
	}
	if e.Name != nil {
		return e.Name.Pos()
	}
	return e.Comma
}

func (e PatternElem) String() string {
	var out bytes.Buffer
	if e.Rest {
		out.WriteString("...")
	}
	if e.Kind != NoKind {
		out.WriteString(e.Kind.String() + " ")
	}
	if e.Name != nil {
		out.WriteString(e.Name.String())
	}
	if e.Default != nil {
		out.WriteString(" = ")
		out.WriteString(e.Default.String())
	}
	return out.String()
}

// Destructure is a statement that unpacks an ordered sequence into a set of
// bindings, e.g. "const [foo, let bar, ...rest] = xs".
//
// DefaultKind is the declaration keyword written before the opening bracket;
// it applies to every slot that has no keyword of its own. NoKind means the
// pattern was written bare, in which case each slot either carries its own
// keyword or refers to an existing binding.
type Destructure struct {
	KindPos     token.Position // position of the default keyword, if present
	DefaultKind DeclKind       // keyword before "[", or NoKind
	Lbrack      token.Position // position of "["
	Elems       []PatternElem  // ordered slots; non-empty
	Rbrack      token.Position // position of "]"
	Value       Expr           // the sequence being unpacked
}

func (s *Destructure) stmtNode() {}

func (s *Destructure) Pos() token.Position {
	if s.DefaultKind != NoKind {
		return s.KindPos
	}
	return s.Lbrack
}

func (s *Destructure) End() token.Position { return s.Value.End() }

func (s *Destructure) String() string {
	var out bytes.Buffer
	if s.DefaultKind != NoKind {
		out.WriteString(s.DefaultKind.String() + " ")
	}
	out.WriteString("[")
	for i, e := range s.Elems {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(e.String())
	}
	out.WriteString("] = ")
	out.WriteString(s.Value.String())
	return out.String()
}

// Block is a node that holds a sequence of statements within braces. Entering
// a block pushes a new scope frame.
type Block struct {
	Lbrace token.Position // position of "{"
	Stmts  []Node         // the statements in the block
	Rbrace token.Position // position of "}"
}

func (b *Block) stmtNode() {}

func (b *Block) Pos() token.Position { return b.Lbrace }
func (b *Block) End() token.Position { return b.Rbrace.Advance(1) }

func (b *Block) String() string {
	var out bytes.Buffer
	out.WriteString("{\n")
	for _, s := range b.Stmts {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	out.WriteString("}")
	return out.String()
}
