// Package callext adds a CALL statement to a host SQL front end without
// touching the host's grammar. The parser recognizes
//
//	CALL catalog.schema.proc(arg, name => arg, ...)
//
// and hands every other statement, byte for byte, to an injected host
// parser. Argument values are typed literals; string literals whose whole
// content is a ${key} placeholder are resolved against an injected
// session-variable lookup before typing.
package callext

import "strings"

// Pos is a position in the original statement text.
type Pos struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Name is a multipart identifier: one or more dot-separated parts, each
// optionally backtick-quoted in the source. Parts keep their source case;
// case folding, if any, is the consumer's concern.
type Name []string

// String renders the name in SQL form, re-quoting any part that needs it.
func (n Name) String() string {
	parts := make([]string, len(n))
	for i, p := range n {
		parts[i] = quoteIdentIfNeeded(p)
	}
	return strings.Join(parts, ".")
}

// quoteIdentIfNeeded wraps a name part in backticks when it contains
// characters a bare identifier cannot, doubling embedded backticks.
func quoteIdentIfNeeded(part string) string {
	if part == "" {
		return "``"
	}
	bare := true
	for i := 0; i < len(part); i++ {
		ch := part[i]
		if !isIdentChar(ch) || (i == 0 && ch >= '0' && ch <= '9') {
			bare = false
			break
		}
	}
	if bare {
		return part
	}
	return "`" + strings.ReplaceAll(part, "`", "``") + "`"
}

// Argument is one entry in a CALL argument list. Name is empty for
// positional arguments. Arguments appear in the slice in source order;
// named and positional forms may be freely interleaved.
type Argument struct {
	Name  string  `json:"name,omitempty"`
	Value Literal `json:"value"`
	Pos   Pos     `json:"pos"`
}

// Named reports whether the argument was written as name => value.
func (a Argument) Named() bool { return a.Name != "" }

// CallStatement is the AST for one parsed CALL statement. It is immutable
// once returned from Parse and holds no reference to parser state.
type CallStatement struct {
	Name Name       `json:"name"`
	Args []Argument `json:"args"`
	Pos  Pos        `json:"pos"`
}
