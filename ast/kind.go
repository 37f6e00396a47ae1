package ast

import "github.com/varlet-dev/varlet/internal/token"

// DeclKind identifies a variable declaration keyword. It is a closed enum so
// that keyword handling is never driven by raw strings.
type DeclKind int

const (
	// NoKind means no declaration keyword was written.
	NoKind DeclKind = iota
	// VarKind is the "var" keyword.
	VarKind
	// LetKind is the "let" keyword.
	LetKind
	// ConstKind is the "const" keyword.
	ConstKind
)

// String returns the keyword text for the declaration kind.
func (k DeclKind) String() string {
	switch k {
	case VarKind:
		return "var"
	case LetKind:
		return "let"
	case ConstKind:
		return "const"
	default:
		return ""
	}
}

// IsValid returns true if the kind is one of var, let, or const.
func (k DeclKind) IsValid() bool {
	return k == VarKind || k == LetKind || k == ConstKind
}

// MarshalText encodes the kind as its keyword text, so that JSON output
// shows "const" rather than an opaque integer.
func (k DeclKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// KindOf maps a declaration keyword token type to its DeclKind.
// Non-keyword token types map to NoKind.
func KindOf(t token.Type) DeclKind {
	switch t {
	case token.VAR:
		return VarKind
	case token.LET:
		return LetKind
	case token.CONST:
		return ConstKind
	default:
		return NoKind
	}
}
