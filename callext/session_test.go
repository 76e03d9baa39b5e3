package callext

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSessionConf(t *testing.T) {
	conf := NewSessionConf(WithVariables(map[string]string{"a": "1"}))
	conf.Set("b", "2")

	v, ok := conf.Resolve("a")
	require.True(t, ok)
	require.Equal(t, "1", v)

	v, ok = conf.Resolve("b")
	require.True(t, ok)
	require.Equal(t, "2", v)

	_, ok = conf.Resolve("missing")
	require.False(t, ok)
}

func TestResolverFunc(t *testing.T) {
	r := ResolverFunc(func(key string) (string, bool) {
		if key == "k" {
			return "v", true
		}
		return "", false
	})
	p := New(WithResolver(r))
	call := parseCall(t, p, "CALL c.f('${k}', '${other}')")
	checkArg(t, call, 0, "", StringLiteral("v"))
	checkArg(t, call, 1, "", StringLiteral("${other}"))
}
