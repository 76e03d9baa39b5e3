package callext

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input string
		want  Literal
	}{
		{"1", IntegerLiteral(1)},
		{"0", IntegerLiteral(0)},
		{"-1", IntegerLiteral(-1)},
		{"2147483647", IntegerLiteral(2147483647)},
		{"-2147483648", IntegerLiteral(-2147483648)},
		{"3L", LongLiteral(3)},
		{"3l", LongLiteral(3)},
		{"-9223372036854775808L", LongLiteral(-9223372036854775808)},
		{"1.0D", DoubleLiteral(1.0)},
		{"1.0d", DoubleLiteral(1.0)},
		{"-1.5D", DoubleLiteral(-1.5)},
		{"9.0e1", DoubleLiteral(90.0)},
		{"2E2", DoubleLiteral(200.0)},
		{"1e-3", DoubleLiteral(0.001)},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseNumber(tc.input)
			require.NoError(t, err)
			require.Equal(t, tc.want.Kind(), got.Kind())
			require.True(t, tc.want.Equal(got), "got %s, want %s", got, tc.want)
		})
	}
}

func TestParseNumberDecimals(t *testing.T) {
	tests := []struct {
		input     string
		text      string // plain positional rendering
		precision int32
		scale     int32
	}{
		{"900e-1BD", "90.0", 3, 1},
		{"900e-1bd", "90.0", 3, 1},
		{"900e1BD", "9000", 4, 0},
		{"90.0BD", "90.0", 3, 1},
		{"1.2", "1.2", 2, 1},
		{"-1.2", "-1.2", 2, 1},
		{".05", "0.05", 2, 2},
		{"0.05BD", "0.05", 2, 2},
		{"10.500BD", "10.500", 5, 3},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseNumber(tc.input)
			require.NoError(t, err)
			dec, ok := got.(DecimalLiteral)
			require.True(t, ok, "expected decimal, got %T", got)
			require.Equal(t, tc.text, dec.Value.Text('f'))
			require.Equal(t, tc.precision, dec.Precision)
			require.Equal(t, tc.scale, dec.Scale)
			require.GreaterOrEqual(t, dec.Precision, dec.Scale)
		})
	}
}

func TestParseNumberErrors(t *testing.T) {
	tests := []struct {
		input string
		msg   string
	}{
		{"2147483648", "does not fit in a 4-byte signed integer"},
		{"-2147483649", "does not fit in a 4-byte signed integer"},
		{"99999999999999999999L", "does not fit in an 8-byte signed integer"},
		{"12abc", "malformed integer"},
		{"1.2.3D", "malformed double"},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			_, err := ParseNumber(tc.input)
			require.Error(t, err)
			var lerr *LiteralError
			require.ErrorAs(t, err, &lerr)
			require.Contains(t, lerr.Error(), tc.msg)
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2017-02-03T10:37:30.00Z", time.Date(2017, 2, 3, 10, 37, 30, 0, time.UTC)},
		{"2017-02-03T10:37:30Z", time.Date(2017, 2, 3, 10, 37, 30, 0, time.UTC)},
		{"2017-02-03T10:37:30.123456789Z", time.Date(2017, 2, 3, 10, 37, 30, 123456789, time.UTC)},
		{"2017-02-03T10:37:30+01:00", time.Date(2017, 2, 3, 9, 37, 30, 0, time.UTC)},
		{"2017-02-03T10:37:30", time.Date(2017, 2, 3, 10, 37, 30, 0, time.UTC)},
		{"2017-02-03 10:37:30", time.Date(2017, 2, 3, 10, 37, 30, 0, time.UTC)},
		{"2017-02-03", time.Date(2017, 2, 3, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseTimestamp(tc.input)
			require.NoError(t, err)
			ts, ok := got.(TimestampLiteral)
			require.True(t, ok)
			require.True(t, ts.Instant.Equal(tc.want), "got %s, want %s", ts.Instant, tc.want)
		})
	}
}

func TestParseTimestampError(t *testing.T) {
	_, err := ParseTimestamp("yesterday at noon")
	require.Error(t, err)
	var lerr *LiteralError
	require.ErrorAs(t, err, &lerr)
	require.Contains(t, lerr.Error(), "cannot be parsed as a timestamp")
}

func TestParseBoolean(t *testing.T) {
	for _, s := range []string{"true", "TRUE", "True"} {
		lit, ok := ParseBoolean(s)
		require.True(t, ok, s)
		require.Equal(t, BooleanLiteral(true), lit)
	}
	for _, s := range []string{"false", "FALSE", "False"} {
		lit, ok := ParseBoolean(s)
		require.True(t, ok, s)
		require.Equal(t, BooleanLiteral(false), lit)
	}
	_, ok := ParseBoolean("yes")
	require.False(t, ok)
}

func TestLiteralEquality(t *testing.T) {
	d90_0, err := ParseNumber("90.0BD")
	require.NoError(t, err)
	d90_0b, err := ParseNumber("900e-1BD")
	require.NoError(t, err)
	d90_00, err := ParseNumber("90.00BD")
	require.NoError(t, err)

	tests := []struct {
		name  string
		a, b  Literal
		equal bool
	}{
		{"integer same", IntegerLiteral(1), IntegerLiteral(1), true},
		{"integer diff", IntegerLiteral(1), IntegerLiteral(2), false},
		{"integer vs long", IntegerLiteral(1), LongLiteral(1), false},
		{"long vs double", LongLiteral(1), DoubleLiteral(1), false},
		{"double same", DoubleLiteral(90.0), DoubleLiteral(90.0), true},
		{"decimal same value same scale", d90_0, d90_0b, true},
		{"decimal same value diff scale", d90_0, d90_00, false},
		{"string same", StringLiteral("2"), StringLiteral("2"), true},
		{"string vs integer", StringLiteral("2"), IntegerLiteral(2), false},
		{"bool same", BooleanLiteral(true), BooleanLiteral(true), true},
		{"bool diff", BooleanLiteral(true), BooleanLiteral(false), false},
		{
			"timestamp same instant diff zone",
			TimestampLiteral{Instant: time.Date(2017, 2, 3, 10, 37, 30, 0, time.UTC)},
			TimestampLiteral{Instant: time.Date(2017, 2, 3, 11, 37, 30, 0, time.FixedZone("CET", 3600))},
			true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.equal, tc.a.Equal(tc.b))
			require.Equal(t, tc.equal, tc.b.Equal(tc.a))
		})
	}
}

func TestLiteralString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1", "1"},
		{"3L", "3L"},
		{"1.0D", "1D"},
		{"9.0e1", "90D"},
		{"900e-1BD", "90.0BD"},
	}
	for _, tc := range tests {
		lit, err := ParseNumber(tc.input)
		require.NoError(t, err)
		require.Equal(t, tc.want, lit.String())
	}

	require.Equal(t, `'it\'s'`, StringLiteral("it's").String())
	require.Equal(t, "true", BooleanLiteral(true).String())
	ts := TimestampLiteral{Instant: time.Date(2017, 2, 3, 10, 37, 30, 0, time.UTC)}
	require.Equal(t, "TIMESTAMP '2017-02-03T10:37:30Z'", ts.String())
}
