package callext

import (
	"encoding/json"
	"strings"
)

// String renders the argument in SQL form: `name => value` or `value`.
func (a Argument) String() string {
	if a.Named() {
		return quoteIdentIfNeeded(a.Name) + " => " + a.Value.String()
	}
	return a.Value.String()
}

// String renders the statement back as canonical SQL text. The rendering
// parses back to an equal AST: identifier parts are re-quoted when needed
// and literals keep their typing suffixes.
func (c *CallStatement) String() string {
	var b strings.Builder
	b.WriteString("CALL ")
	b.WriteString(c.Name.String())
	b.WriteByte('(')
	for i, arg := range c.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(arg.String())
	}
	b.WriteByte(')')
	return b.String()
}

// FormatJSON renders the statement as indented JSON for tooling output.
func FormatJSON(c *CallStatement) ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}
