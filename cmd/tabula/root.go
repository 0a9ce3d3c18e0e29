package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tabula",
	Short: "Build and inspect table-driven parsers from a structured grammar",
	Long: `tabula provides three features:
- Builds a portable parsing table from a structured (JSON) grammar.
- Describes a built table: summary counts, the conflict count, and the
  per-state report when the table was built with --report.
- Parses a structured token stream against a built table, primarily
  aimed at debugging the grammar before wiring a real lexer.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
