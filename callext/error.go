package callext

import "fmt"

// ParseError is a grammar violation inside a claimed CALL statement. It is
// raised at the first unexpected token and carries no partial AST. Messages
// follow the host's LL-parser convention, e.g. `missing '(' at 'radish'`.
type ParseError struct {
	Message string `json:"message"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Token   string `json:"token"`
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Column, e.Message)
}

// LiteralError is a literal-level failure: an unparsable timestamp, a
// number out of range, a malformed decimal. It surfaces to the caller the
// same way a ParseError does.
type LiteralError struct {
	Token   string `json:"token"`
	Message string `json:"message"`
	cause   error
}

// Error implements the error interface.
func (e *LiteralError) Error() string {
	return fmt.Sprintf("invalid literal %q: %s", e.Token, e.Message)
}

// Unwrap exposes the underlying conversion failure, if any.
func (e *LiteralError) Unwrap() error { return e.cause }

// errMissing builds the `missing '<expected>' at '<actual>'` diagnostic for
// a single required token that did not appear.
func errMissing(expected string, tok token, pos Pos) *ParseError {
	return &ParseError{
		Message: fmt.Sprintf("missing '%s' at '%s'", expected, tok.describe()),
		Line:    pos.Line,
		Column:  pos.Column,
		Token:   tok.describe(),
	}
}

// errExpected builds the generic `<description> at '<actual>'` diagnostic
// for states that accept more than one token kind.
func errExpected(desc string, tok token, pos Pos) *ParseError {
	return &ParseError{
		Message: fmt.Sprintf("%s at '%s'", desc, tok.describe()),
		Line:    pos.Line,
		Column:  pos.Column,
		Token:   tok.describe(),
	}
}
