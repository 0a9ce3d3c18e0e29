package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nihei9/tabula"
	"github.com/spf13/cobra"
)

var buildFlags struct {
	algo     *algoFlag
	compress bool
	report   bool
	out      string
}

func init() {
	buildFlags.algo = newAlgoFlag(tabula.LALR1)

	cmd := &cobra.Command{
		Use:   "build <grammar.json>",
		Short: "Build a parsing table from a structured grammar",
		Args:  cobra.ExactArgs(1),
		RunE:  runBuild,
	}
	cmd.Flags().Var(buildFlags.algo, "algo", "construction algorithm: lr0, slr1, lr1, lalr1, ll1")
	cmd.Flags().BoolVar(&buildFlags.compress, "compress", true, "run default-action compression and unreachable-state pruning")
	cmd.Flags().BoolVar(&buildFlags.report, "report", false, "collect a human-readable build report")
	cmd.Flags().StringVarP(&buildFlags.out, "out", "o", "", "write the compiled table as JSON to this file instead of stdout")

	rootCmd.AddCommand(cmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	specFile, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer specFile.Close()

	var spec tabula.Spec
	if err := json.NewDecoder(specFile).Decode(&spec); err != nil {
		return fmt.Errorf("invalid grammar: %w", err)
	}

	t, err := tabula.Build(&spec, tabula.Options{
		Algorithm: buildFlags.algo.value,
		Compress:  buildFlags.compress,
		Report:    buildFlags.report,
	})
	if err != nil {
		return err
	}

	conflicts := t.Conflicts()
	if len(conflicts) > 0 {
		fmt.Fprintf(os.Stderr, "warning: %d conflicts found\n", len(conflicts))
	}

	out := os.Stdout
	if buildFlags.out != "" {
		f, err := os.Create(buildFlags.out)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(t.Underlying())
}
