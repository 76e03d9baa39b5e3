package callext

import (
	"testing"

	"github.com/cockroachdb/datadriven"
)

// TestParseDataDriven runs the golden-file cases in testdata/parse. Each
// "parse" directive feeds its input to the parser and records either the
// canonical rendering of the AST or the error.
func TestParseDataDriven(t *testing.T) {
	conf := NewSessionConf(WithVariables(map[string]string{"env": "prod"}))
	p := New(WithResolver(conf))

	datadriven.RunTest(t, "testdata/parse", func(t *testing.T, d *datadriven.TestData) string {
		switch d.Cmd {
		case "parse":
			result, err := p.ParseCall(d.Input)
			if err != nil {
				return "error: " + err.Error()
			}
			return result.String()
		default:
			t.Fatalf("unknown directive %q", d.Cmd)
			return ""
		}
	})
}
