package callext

// NamedArg returns the first argument written as name => value with the
// given name. Matching is exact: name case is preserved from the source
// and case folding, like signature checking, belongs to the consumer.
func (c *CallStatement) NamedArg(name string) (Argument, bool) {
	for _, arg := range c.Args {
		if arg.Name == name {
			return arg, true
		}
	}
	return Argument{}, false
}

// Positional returns the positional arguments in source order.
func (c *CallStatement) Positional() []Argument {
	var out []Argument
	for _, arg := range c.Args {
		if !arg.Named() {
			out = append(out, arg)
		}
	}
	return out
}

// Named returns the named arguments in source order. The parser accepts
// named arguments before positional ones, so the two slices together may
// interleave in the original list.
func (c *CallStatement) Named() []Argument {
	var out []Argument
	for _, arg := range c.Args {
		if arg.Named() {
			out = append(out, arg)
		}
	}
	return out
}

// AsString returns the payload of a string literal.
func AsString(l Literal) (string, bool) {
	s, ok := l.(StringLiteral)
	return string(s), ok
}

// AsInt64 widens an integer or long literal to int64.
func AsInt64(l Literal) (int64, bool) {
	switch v := l.(type) {
	case IntegerLiteral:
		return int64(v), true
	case LongLiteral:
		return int64(v), true
	}
	return 0, false
}

// AsBool returns the payload of a boolean literal.
func AsBool(l Literal) (bool, bool) {
	b, ok := l.(BooleanLiteral)
	return bool(b), ok
}
