package errors

// ErrorCode represents a unique identifier for error types.
// Codes are organized by category:
//   - E1xxx: Parse errors
//   - E2xxx: Resolve errors
type ErrorCode string

const (
	// Parse errors (E1xxx)
	E1001 ErrorCode = "E1001" // Unexpected token
	E1002 ErrorCode = "E1002" // Unterminated string literal
	E1003 ErrorCode = "E1003" // Invalid syntax
	E1004 ErrorCode = "E1004" // Missing expression
	E1005 ErrorCode = "E1005" // Invalid assignment target
	E1006 ErrorCode = "E1006" // Expected identifier
	E1007 ErrorCode = "E1007" // Unclosed delimiter
	E1008 ErrorCode = "E1008" // Invalid number literal
	E1009 ErrorCode = "E1009" // Maximum nesting depth exceeded
	E1010 ErrorCode = "E1010" // Duplicate declaration keyword on a pattern slot
	E1011 ErrorCode = "E1011" // Rest element is not the final element
	E1012 ErrorCode = "E1012" // Multiple rest elements
	E1013 ErrorCode = "E1013" // Empty destructuring pattern

	// Resolve errors (E2xxx)
	E2001 ErrorCode = "E2001" // Missing declaration
	E2002 ErrorCode = "E2002" // Redeclaration conflict
	E2003 ErrorCode = "E2003" // Assignment to undeclared name
)

// codeDescriptions maps error codes to their short descriptions.
var codeDescriptions = map[ErrorCode]string{
	E1001: "unexpected token",
	E1002: "unterminated string literal",
	E1003: "invalid syntax",
	E1004: "missing expression",
	E1005: "invalid assignment target",
	E1006: "expected identifier",
	E1007: "unclosed delimiter",
	E1008: "invalid number literal",
	E1009: "maximum nesting depth exceeded",
	E1010: "duplicate declaration keyword",
	E1011: "misplaced rest element",
	E1012: "multiple rest elements",
	E1013: "empty destructuring pattern",

	E2001: "missing declaration",
	E2002: "redeclaration conflict",
	E2003: "assignment to undeclared name",
}

// Description returns the short description for an error code.
func (c ErrorCode) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return "unknown error"
}

// String returns the error code as a string.
func (c ErrorCode) String() string {
	return string(c)
}

// Category returns the error category based on the code prefix.
func (c ErrorCode) Category() string {
	if len(c) < 2 {
		return "unknown"
	}
	switch c[1] {
	case '1':
		return "parse"
	case '2':
		return "resolve"
	default:
		return "unknown"
	}
}
