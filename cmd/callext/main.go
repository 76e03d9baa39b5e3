// Command callext inspects CALL statements from the command line.
//
// Usage:
//
//	callext parse "CALL cat.system.rollback(snapshot_id => 123L)" --format json
//	callext parse "CALL cat.system.func('${env}')" --vars vars.yaml --format sql
//	callext strip "/* preamble */ CALL cat.system.func()"
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/perf-apt/wildfire-iceberg/callext/cobraext"
)

func main() {
	root := &cobra.Command{
		Use:           "callext",
		Short:         "CALL statement parser for SQL front ends",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cobraext.AddCommands(root)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
