package callext

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/cockroachdb/errors"
)

// Kind identifies the concrete type of a Literal.
type Kind int

const (
	KindInteger Kind = iota // 32-bit signed integer
	KindLong                // 64-bit signed integer
	KindDouble              // 64-bit float
	KindDecimal             // exact decimal with precision and scale
	KindBoolean
	KindString
	KindTimestamp
)

// String returns the SQL-facing type name for the kind.
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "int"
	case KindLong:
		return "bigint"
	case KindDouble:
		return "double"
	case KindDecimal:
		return "decimal"
	case KindBoolean:
		return "boolean"
	case KindString:
		return "string"
	case KindTimestamp:
		return "timestamp"
	default:
		return "unknown"
	}
}

// Literal is a typed argument value. Two literals are equal iff both kind
// and payload are equal: exact equality for Integer, Long, and Decimal,
// standard floating-point equality for Double. String renders the literal
// back in its SQL source form.
type Literal interface {
	Kind() Kind
	Equal(other Literal) bool
	String() string
}

// IntegerLiteral is an unsuffixed numeric literal that fits in 32 bits.
type IntegerLiteral int32

func (l IntegerLiteral) Kind() Kind { return KindInteger }

func (l IntegerLiteral) Equal(other Literal) bool {
	o, ok := other.(IntegerLiteral)
	return ok && l == o
}

func (l IntegerLiteral) String() string { return strconv.FormatInt(int64(l), 10) }

// LongLiteral is an L-suffixed 64-bit integer literal.
type LongLiteral int64

func (l LongLiteral) Kind() Kind { return KindLong }

func (l LongLiteral) Equal(other Literal) bool {
	o, ok := other.(LongLiteral)
	return ok && l == o
}

func (l LongLiteral) String() string { return strconv.FormatInt(int64(l), 10) + "L" }

// DoubleLiteral is a D-suffixed or exponent-form 64-bit float literal.
type DoubleLiteral float64

func (l DoubleLiteral) Kind() Kind { return KindDouble }

func (l DoubleLiteral) Equal(other Literal) bool {
	o, ok := other.(DoubleLiteral)
	return ok && l == o
}

func (l DoubleLiteral) String() string {
	return strconv.FormatFloat(float64(l), 'g', -1, 64) + "D"
}

// DecimalLiteral is an exact decimal: a BD-suffixed literal or a bare
// decimal fraction. Precision counts significant digits after exponent
// normalization, Scale counts digits right of the decimal point, and
// Precision >= Scale always holds.
type DecimalLiteral struct {
	Value     *apd.Decimal `json:"value"`
	Precision int32        `json:"precision"`
	Scale     int32        `json:"scale"`
}

func (l DecimalLiteral) Kind() Kind { return KindDecimal }

func (l DecimalLiteral) Equal(other Literal) bool {
	o, ok := other.(DecimalLiteral)
	return ok && l.Precision == o.Precision && l.Scale == o.Scale &&
		l.Value.Cmp(o.Value) == 0
}

func (l DecimalLiteral) String() string { return l.Value.Text('f') + "BD" }

// BooleanLiteral is a TRUE or FALSE keyword literal.
type BooleanLiteral bool

func (l BooleanLiteral) Kind() Kind { return KindBoolean }

func (l BooleanLiteral) Equal(other Literal) bool {
	o, ok := other.(BooleanLiteral)
	return ok && l == o
}

func (l BooleanLiteral) String() string { return strconv.FormatBool(bool(l)) }

// StringLiteral is a quoted string literal, after escape processing and
// ${key} substitution.
type StringLiteral string

func (l StringLiteral) Kind() Kind { return KindString }

func (l StringLiteral) Equal(other Literal) bool {
	o, ok := other.(StringLiteral)
	return ok && l == o
}

func (l StringLiteral) String() string { return quoteString(string(l)) }

// quoteString renders s as a single-quoted SQL string.
func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; ch {
		case '\'', '\\':
			b.WriteByte('\\')
			b.WriteByte(ch)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(ch)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

// TimestampLiteral is a TIMESTAMP '<text>' literal, held as an instant.
type TimestampLiteral struct {
	Instant time.Time `json:"instant"`
}

func (l TimestampLiteral) Kind() Kind { return KindTimestamp }

func (l TimestampLiteral) Equal(other Literal) bool {
	o, ok := other.(TimestampLiteral)
	return ok && l.Instant.Equal(o.Instant)
}

func (l TimestampLiteral) String() string {
	return "TIMESTAMP '" + l.Instant.UTC().Format("2006-01-02T15:04:05.999999999Z07:00") + "'"
}

// numericSuffixes maps a literal suffix to its constructor, longest suffix
// first so BD wins over D. New literal forms are added here, not as new
// branches in the scanner.
var numericSuffixes = []struct {
	suffix string
	build  func(digits string) (Literal, error)
}{
	{"BD", parseDecimal},
	{"L", parseLong},
	{"D", parseDouble},
}

// ParseNumber converts a numeric token into a typed literal. The suffix
// (case-insensitive) picks the type; an unsuffixed token with an exponent
// is a double, with a decimal point an exact decimal, and otherwise a
// 32-bit integer. Values outside the chosen type's range fail with a
// LiteralError.
func ParseNumber(text string) (Literal, error) {
	upper := strings.ToUpper(text)
	for _, entry := range numericSuffixes {
		if strings.HasSuffix(upper, entry.suffix) {
			lit, err := entry.build(text[:len(text)-len(entry.suffix)])
			if err != nil {
				return nil, err
			}
			return lit, nil
		}
	}
	if strings.ContainsAny(text, "eE") {
		return parseDouble(text)
	}
	if strings.Contains(text, ".") {
		return parseDecimal(text)
	}
	return parseInteger(text)
}

func parseInteger(digits string) (Literal, error) {
	v, err := strconv.ParseInt(digits, 10, 32)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return nil, &LiteralError{
				Token:   digits,
				Message: "does not fit in a 4-byte signed integer",
				cause:   err,
			}
		}
		return nil, &LiteralError{Token: digits, Message: "malformed integer", cause: err}
	}
	return IntegerLiteral(int32(v)), nil
}

func parseLong(digits string) (Literal, error) {
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return nil, &LiteralError{
				Token:   digits,
				Message: "does not fit in an 8-byte signed integer",
				cause:   err,
			}
		}
		return nil, &LiteralError{Token: digits, Message: "malformed bigint", cause: err}
	}
	return LongLiteral(v), nil
}

func parseDouble(digits string) (Literal, error) {
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return nil, &LiteralError{Token: digits, Message: "malformed double", cause: err}
	}
	return DoubleLiteral(v), nil
}

// parseDecimal builds an exact decimal, normalizing any exponent so that
// precision and scale describe the plain positional form: 900e-1 becomes
// 90.0 with precision 3, scale 1.
func parseDecimal(digits string) (Literal, error) {
	switch {
	case strings.HasPrefix(digits, "."):
		digits = "0" + digits
	case strings.HasPrefix(digits, "-."):
		digits = "-0" + digits[1:]
	}
	d, _, err := apd.NewFromString(digits)
	if err != nil {
		return nil, &LiteralError{
			Token:   digits,
			Message: "malformed decimal",
			cause:   errors.Wrap(err, "apd"),
		}
	}
	// A positive exponent folds into the coefficient so scale is never
	// negative: 900e1 normalizes to 9000 (precision 4, scale 0).
	ten := apd.NewBigInt(10)
	for d.Exponent > 0 {
		d.Coeff.Mul(&d.Coeff, ten)
		d.Exponent--
	}
	scale := -d.Exponent
	precision := int32(d.NumDigits())
	if precision < scale {
		// Leading zeros carry no significance: .05 is precision 2, scale 2.
		precision = scale
	}
	return DecimalLiteral{Value: d, Precision: precision, Scale: scale}, nil
}

// timestampLayouts are the ISO-8601 instant forms accepted inside
// TIMESTAMP '<text>'. The first matching layout wins; layouts without a
// zone are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp converts the text of a TIMESTAMP literal into an instant.
func ParseTimestamp(text string) (Literal, error) {
	var firstErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, text)
		if err == nil {
			return TimestampLiteral{Instant: t.UTC()}, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, &LiteralError{
		Token:   text,
		Message: "cannot be parsed as a timestamp",
		cause:   errors.Wrapf(firstErr, "parsing %q", text),
	}
}

// ParseBoolean converts a TRUE/FALSE keyword (any case) into a literal.
func ParseBoolean(text string) (Literal, bool) {
	switch strings.ToUpper(text) {
	case "TRUE":
		return BooleanLiteral(true), true
	case "FALSE":
		return BooleanLiteral(false), true
	}
	return nil, false
}

// substitute resolves a string literal whose entire content is a ${key}
// placeholder. Resolution happens once and is not recursive; a missing key
// or nil resolver leaves the content verbatim.
func substitute(s string, r VariableResolver) string {
	if r == nil || len(s) < 4 || !strings.HasPrefix(s, "${") || !strings.HasSuffix(s, "}") {
		return s
	}
	key := s[2 : len(s)-1]
	if strings.Contains(key, "}") {
		return s
	}
	if v, ok := r.Resolve(key); ok {
		return v
	}
	return s
}

// MarshalJSON emits the literal's SQL rendering alongside its kind, keeping
// AST dumps stable across numeric representations.
func (l DecimalLiteral) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`{"kind":%q,"text":%q,"precision":%d,"scale":%d}`,
		l.Kind(), l.Value.Text('f'), l.Precision, l.Scale)), nil
}

func (l TimestampLiteral) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`{"kind":%q,"instant":%q}`,
		l.Kind(), l.Instant.UTC().Format(time.RFC3339Nano))), nil
}
