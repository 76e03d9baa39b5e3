package callext

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// HostParser is the delegate for every statement this extension does not
// claim. The delegate receives the original text byte for byte and its
// result or error is returned to the caller unchanged.
type HostParser interface {
	Parse(sql string) (any, error)
}

// HostParserFunc adapts a function to the HostParser interface.
type HostParserFunc func(sql string) (any, error)

func (f HostParserFunc) Parse(sql string) (any, error) { return f(sql) }

// VariableResolver looks up a session variable for ${key} substitution in
// string literals. It must be read-only; the parser never writes through it.
type VariableResolver interface {
	Resolve(key string) (string, bool)
}

// ResolverFunc adapts a function to the VariableResolver interface.
type ResolverFunc func(key string) (string, bool)

func (f ResolverFunc) Resolve(key string) (string, bool) { return f(key) }

// Parser recognizes CALL statements and delegates everything else. It has
// no mutable state of its own, so one instance is safe for concurrent use
// as long as the injected delegate and resolver are.
type Parser struct {
	delegate HostParser
	resolver VariableResolver
}

// Option configures a Parser during construction.
type Option func(*Parser)

// WithDelegate sets the host parser that receives non-CALL statements.
// Without a delegate, non-CALL statements fail with an error.
func WithDelegate(h HostParser) Option {
	return func(p *Parser) { p.delegate = h }
}

// WithResolver sets the session-variable lookup used for ${key}
// substitution in string literals. Without a resolver, placeholders are
// kept verbatim.
func WithResolver(r VariableResolver) Option {
	return func(p *Parser) { p.resolver = r }
}

// New creates a Parser. The delegate and resolver are passed here rather
// than read from any ambient state.
func New(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses one SQL statement. If the statement is a CALL it returns
// *CallStatement; otherwise the delegate's result is returned as-is. Once
// the CALL keyword has matched the statement is claimed: every later
// violation is a *ParseError or *LiteralError from this package, never a
// delegation.
func (p *Parser) Parse(sql string) (any, error) {
	stripped := StripComments(sql)
	if !hasCallPrefix(stripped) {
		if p.delegate == nil {
			return nil, errors.New("callext: not a CALL statement and no host parser configured")
		}
		return p.delegate.Parse(sql)
	}

	tzer := newTokenizer(stripped)
	tokens, err := tzer.tokenize()
	if err != nil {
		return nil, err
	}
	cp := &callParser{tokens: tokens, tzer: tzer, resolver: p.resolver}
	stmt, err := cp.parseCall()
	if err != nil {
		return nil, err
	}
	return stmt, nil
}

// ParseCall is like Parse for callers that only ever feed CALL statements;
// any other input is a *ParseError rather than a delegation.
func (p *Parser) ParseCall(sql string) (*CallStatement, error) {
	stripped := StripComments(sql)
	tzer := newTokenizer(stripped)
	tokens, err := tzer.tokenize()
	if err != nil {
		return nil, err
	}
	cp := &callParser{tokens: tokens, tzer: tzer, resolver: p.resolver}
	return cp.parseCall()
}

// callParser walks the token stream through the CALL grammar:
// CALL name '(' [arg (',' arg)*] ')' [';']. Any unexpected token halts
// parsing with a diagnostic naming the expected shape and the actual token.
type callParser struct {
	tokens   []token
	pos      int
	tzer     *tokenizer
	resolver VariableResolver
}

func (p *callParser) peek() token {
	if p.pos >= len(p.tokens) {
		return token{typ: tokenEOF, pos: len(p.tzer.input)}
	}
	return p.tokens[p.pos]
}

func (p *callParser) peekAt(n int) token {
	if p.pos+n >= len(p.tokens) {
		return token{typ: tokenEOF, pos: len(p.tzer.input)}
	}
	return p.tokens[p.pos+n]
}

func (p *callParser) advance() token {
	tok := p.peek()
	if tok.typ != tokenEOF {
		p.pos++
	}
	return tok
}

func (p *callParser) parseCall() (*CallStatement, error) {
	kw := p.advance()
	if kw.typ != tokenIdent || !strings.EqualFold(kw.val, "CALL") {
		return nil, errExpected("missing 'CALL' keyword", kw, p.tzer.posAt(kw.pos))
	}

	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	if tok := p.peek(); tok.typ != tokenLParen {
		return nil, errMissing("(", tok, p.tzer.posAt(tok.pos))
	}
	p.advance()

	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}

	if tok := p.peek(); tok.typ == tokenSemi {
		p.advance()
	}
	if tok := p.peek(); tok.typ != tokenEOF {
		return nil, errExpected("extraneous input", tok, p.tzer.posAt(tok.pos))
	}

	return &CallStatement{
		Name: name,
		Args: args,
		Pos:  p.tzer.posAt(kw.pos),
	}, nil
}

// parseName parses a dot-separated multipart identifier. Each part keeps
// its source case; quoted parts arrive already decoded from the tokenizer.
func (p *callParser) parseName() (Name, error) {
	var name Name
	for {
		tok := p.advance()
		if tok.typ != tokenIdent && tok.typ != tokenQuotedIdent {
			return nil, errExpected("missing procedure name", tok, p.tzer.posAt(tok.pos))
		}
		name = append(name, tok.val)
		if p.peek().typ != tokenDot {
			return name, nil
		}
		p.advance()
	}
}

// parseArgs parses the argument list up to and including the closing
// parenthesis. An empty list is legal. Named and positional arguments mix
// freely and keep their source order; whether that order makes sense for
// the target procedure is the execution engine's question, not ours.
func (p *callParser) parseArgs() ([]Argument, error) {
	var args []Argument
	if p.peek().typ == tokenRParen {
		p.advance()
		return args, nil
	}
	for {
		arg, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		switch tok := p.peek(); tok.typ {
		case tokenComma:
			p.advance()
		case tokenRParen:
			p.advance()
			return args, nil
		default:
			return nil, errExpected("expecting ',' or ')'", tok, p.tzer.posAt(tok.pos))
		}
	}
}

// parseArg parses [identifier '=>'] literal.
func (p *callParser) parseArg() (Argument, error) {
	first := p.peek()
	argPos := p.tzer.posAt(first.pos)

	var name string
	if (first.typ == tokenIdent || first.typ == tokenQuotedIdent) && p.peekAt(1).typ == tokenArrow {
		p.advance()
		p.advance()
		name = first.val
	}

	value, err := p.parseLiteral()
	if err != nil {
		return Argument{}, err
	}
	return Argument{Name: name, Value: value, Pos: argPos}, nil
}

// parseLiteral parses a single literal value. Argument values accept only
// the literal grammar: no nested calls, arithmetic, or column references.
func (p *callParser) parseLiteral() (Literal, error) {
	tok := p.advance()
	switch tok.typ {
	case tokenNumber:
		return ParseNumber(tok.val)
	case tokenString:
		return StringLiteral(substitute(tok.val, p.resolver)), nil
	case tokenIdent:
		if lit, ok := ParseBoolean(tok.val); ok {
			return lit, nil
		}
		if strings.EqualFold(tok.val, "TIMESTAMP") {
			text := p.advance()
			if text.typ != tokenString {
				return nil, errExpected("missing timestamp string", text, p.tzer.posAt(text.pos))
			}
			return ParseTimestamp(text.val)
		}
	}
	return nil, errExpected("missing literal value", tok, p.tzer.posAt(tok.pos))
}
