// Package cobraext provides Cobra commands for inspecting CALL statements.
// It isolates the github.com/spf13/cobra dependency so that users who
// embed the parser in a SQL front end never import it.
package cobraext

import (
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/perf-apt/wildfire-iceberg/callext"
)

// loadVars reads a flat YAML mapping of session variables, e.g.
//
//	spark.extra.prop: value
//	env: prod
func loadVars(path string) (*callext.SessionConf, error) {
	if path == "" {
		return callext.NewSessionConf(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading variables file %s", path)
	}
	vars := make(map[string]string)
	if err := yaml.Unmarshal(data, &vars); err != nil {
		return nil, errors.Wrapf(err, "parsing variables file %s", path)
	}
	return callext.NewSessionConf(callext.WithVariables(vars)), nil
}

// render serializes a parsed statement per the --format flag.
func render(stmt *callext.CallStatement, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		return callext.FormatJSON(stmt)
	case "sql":
		return []byte(stmt.String()), nil
	default:
		return nil, fmt.Errorf("unknown format %q: use \"json\" or \"sql\"", format)
	}
}

// ParseCommand creates a "parse" subcommand that parses a CALL statement
// and prints its AST. Session variables for ${key} substitution come from
// the optional --vars YAML file. The --format flag is required.
func ParseCommand() *cobra.Command {
	var (
		varsFile string
		format   string
	)

	cmd := &cobra.Command{
		Use:   "parse <statement>",
		Short: "Parse a CALL statement and print its AST",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadVars(varsFile)
			if err != nil {
				return err
			}
			p := callext.New(callext.WithResolver(conf))
			stmt, err := p.ParseCall(args[0])
			if err != nil {
				return err
			}
			data, err := render(stmt, format)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}

	cmd.Flags().StringVar(&varsFile, "vars", "", "YAML file of session variables for ${key} substitution")
	cmd.Flags().StringVar(&format, "format", "", `Output format (required): "json" or "sql"`)
	_ = cmd.MarkFlagRequired("format")
	return cmd
}

// StripCommand creates a "strip" subcommand that prints the statement with
// comments blanked, exactly as the parser sees it.
func StripCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "strip <statement>",
		Short: "Print a statement with SQL comments removed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), callext.StripComments(args[0]))
			return err
		},
	}
}

// AddCommands adds the parse and strip commands as subcommands of parent.
func AddCommands(parent *cobra.Command) {
	parent.AddCommand(ParseCommand())
	parent.AddCommand(StripCommand())
}
