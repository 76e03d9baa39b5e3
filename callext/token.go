package callext

import (
	"fmt"
	"sort"
	"strings"
)

type tokenType int

const (
	tokenIdent       tokenType = iota // bare identifier or keyword
	tokenQuotedIdent                  // backtick-quoted identifier, decoded
	tokenNumber                       // digits with optional sign, point, exponent, suffix
	tokenString                       // quoted string, decoded
	tokenLParen
	tokenRParen
	tokenComma
	tokenDot
	tokenArrow // =>
	tokenSemi
	tokenEOF
)

type token struct {
	typ tokenType
	val string
	pos int // byte offset in input
}

// describe returns the token text as it appears in diagnostics.
func (t token) describe() string {
	if t.typ == tokenEOF {
		return "<EOF>"
	}
	return t.val
}

// tokenizer splits one comment-stripped statement into tokens. It keeps a
// lineStarts table so any byte offset converts back to a line and column
// for diagnostics.
type tokenizer struct {
	input      string
	pos        int
	tokens     []token
	lineStarts []int
}

func newTokenizer(input string) *tokenizer {
	t := &tokenizer{
		input:      input,
		lineStarts: []int{0},
	}
	for i := 0; i < len(input); i++ {
		if input[i] == '\n' {
			t.lineStarts = append(t.lineStarts, i+1)
		}
	}
	return t
}

// posAt converts a byte offset into a Pos with 1-based line and column.
func (t *tokenizer) posAt(offset int) Pos {
	line := sort.Search(len(t.lineStarts), func(i int) bool {
		return t.lineStarts[i] > offset
	})
	col := offset - t.lineStarts[line-1] + 1
	return Pos{Offset: offset, Line: line, Column: col}
}

func (t *tokenizer) tokenize() ([]token, error) {
	for t.pos < len(t.input) {
		ch := t.input[t.pos]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			t.pos++
		case ch == '(':
			t.emit(tokenLParen, "(")
		case ch == ')':
			t.emit(tokenRParen, ")")
		case ch == ',':
			t.emit(tokenComma, ",")
		case ch == ';':
			t.emit(tokenSemi, ";")
		case ch == '\'' || ch == '"':
			if err := t.readString(); err != nil {
				return nil, err
			}
		case ch == '`':
			if err := t.readQuotedIdent(); err != nil {
				return nil, err
			}
		case ch == '=' && t.pos+1 < len(t.input) && t.input[t.pos+1] == '>':
			t.tokens = append(t.tokens, token{typ: tokenArrow, val: "=>", pos: t.pos})
			t.pos += 2
		case ch == '.' && t.pos+1 < len(t.input) && isDigit(t.input[t.pos+1]):
			t.readNumber()
		case ch == '.':
			t.emit(tokenDot, ".")
		case ch == '-' && t.pos+1 < len(t.input) && (isDigit(t.input[t.pos+1]) || t.input[t.pos+1] == '.'):
			t.readNumber()
		case isDigit(ch):
			t.readNumber()
		case isIdentStart(ch):
			t.readIdent()
		default:
			pos := t.posAt(t.pos)
			return nil, &ParseError{
				Message: fmt.Sprintf("unexpected character %q", string(ch)),
				Line:    pos.Line,
				Column:  pos.Column,
				Token:   string(ch),
			}
		}
	}
	t.tokens = append(t.tokens, token{typ: tokenEOF, pos: t.pos})
	return t.tokens, nil
}

func (t *tokenizer) emit(typ tokenType, val string) {
	t.tokens = append(t.tokens, token{typ: typ, val: val, pos: t.pos})
	t.pos++
}

// readString consumes a single- or double-quoted string literal. Backslash
// escapes the quote, a backslash, n, and t; any other escaped byte is kept
// with its backslash.
func (t *tokenizer) readString() error {
	startPos := t.pos
	quote := t.input[t.pos]
	t.pos++
	var result []byte
	for t.pos < len(t.input) {
		ch := t.input[t.pos]
		if ch == '\\' && t.pos+1 < len(t.input) {
			next := t.input[t.pos+1]
			switch next {
			case '\'', '"', '\\':
				result = append(result, next)
			case 'n':
				result = append(result, '\n')
			case 't':
				result = append(result, '\t')
			default:
				result = append(result, '\\', next)
			}
			t.pos += 2
			continue
		}
		if ch == quote {
			t.tokens = append(t.tokens, token{typ: tokenString, val: string(result), pos: startPos})
			t.pos++
			return nil
		}
		result = append(result, ch)
		t.pos++
	}
	pos := t.posAt(startPos)
	return &ParseError{
		Message: "unterminated string literal",
		Line:    pos.Line,
		Column:  pos.Column,
		Token:   t.input[startPos:],
	}
}

// readQuotedIdent consumes a backtick-quoted identifier. A doubled
// backtick is one literal backtick; dots inside the quotes are literal.
func (t *tokenizer) readQuotedIdent() error {
	startPos := t.pos
	t.pos++
	var result []byte
	for t.pos < len(t.input) {
		ch := t.input[t.pos]
		if ch == '`' {
			if t.pos+1 < len(t.input) && t.input[t.pos+1] == '`' {
				result = append(result, '`')
				t.pos += 2
				continue
			}
			t.tokens = append(t.tokens, token{typ: tokenQuotedIdent, val: string(result), pos: startPos})
			t.pos++
			return nil
		}
		result = append(result, ch)
		t.pos++
	}
	pos := t.posAt(startPos)
	return &ParseError{
		Message: "unterminated quoted identifier",
		Line:    pos.Line,
		Column:  pos.Column,
		Token:   t.input[startPos:],
	}
}

// readNumber consumes an optionally signed numeric literal: digits, an
// optional fraction, an optional exponent, and any trailing letter suffix
// (L, D, BD). The suffix stays part of the token; typing happens in
// ParseNumber.
func (t *tokenizer) readNumber() {
	start := t.pos
	if t.input[t.pos] == '-' {
		t.pos++
	}
	for t.pos < len(t.input) && isDigit(t.input[t.pos]) {
		t.pos++
	}
	if t.pos < len(t.input) && t.input[t.pos] == '.' {
		t.pos++
		for t.pos < len(t.input) && isDigit(t.input[t.pos]) {
			t.pos++
		}
	}
	if t.pos < len(t.input) && (t.input[t.pos] == 'e' || t.input[t.pos] == 'E') {
		// Only a well-formed exponent belongs to the number; a bare e is
		// a suffix letter and fails typing later.
		mark := t.pos
		t.pos++
		if t.pos < len(t.input) && (t.input[t.pos] == '+' || t.input[t.pos] == '-') {
			t.pos++
		}
		if t.pos < len(t.input) && isDigit(t.input[t.pos]) {
			for t.pos < len(t.input) && isDigit(t.input[t.pos]) {
				t.pos++
			}
		} else {
			t.pos = mark
		}
	}
	for t.pos < len(t.input) && isLetter(t.input[t.pos]) {
		t.pos++
	}
	t.tokens = append(t.tokens, token{typ: tokenNumber, val: t.input[start:t.pos], pos: start})
}

func (t *tokenizer) readIdent() {
	start := t.pos
	for t.pos < len(t.input) && isIdentChar(t.input[t.pos]) {
		t.pos++
	}
	t.tokens = append(t.tokens, token{typ: tokenIdent, val: t.input[start:t.pos], pos: start})
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentStart(ch byte) bool { return isLetter(ch) || ch == '_' }

func isIdentChar(ch byte) bool { return isIdentStart(ch) || isDigit(ch) }

// hasCallPrefix reports whether the first significant token of the
// comment-stripped text is the CALL keyword. Only this check decides
// between claiming the statement and delegating it.
func hasCallPrefix(stripped string) bool {
	i := 0
	for i < len(stripped) {
		ch := stripped[i]
		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' {
			i++
			continue
		}
		break
	}
	j := i
	for j < len(stripped) && isIdentChar(stripped[j]) {
		j++
	}
	return strings.EqualFold(stripped[i:j], "call")
}
