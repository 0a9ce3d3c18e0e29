package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	itable "github.com/nihei9/tabula/internal/table"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "describe <table.json>",
		Short: "Pretty-print a built table's states and conflicts",
		Args:  cobra.ExactArgs(1),
		RunE:  runDescribe,
	}
	rootCmd.AddCommand(cmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	// Conflicts are kept as raw JSON: table.Conflict is an interface with
	// no concrete type to decode into, and only their count is printed.
	var in struct {
		itable.Table
		Conflicts []json.RawMessage
	}
	if err := json.NewDecoder(f).Decode(&in); err != nil {
		return fmt.Errorf("invalid table: %w", err)
	}
	t := in.Table

	pterm.DefaultSection.Println("Summary")
	pterm.Info.Printfln("algorithm: %s", t.Algorithm)
	pterm.Info.Printfln("states: %d", t.StateCount)
	pterm.Info.Printfln("terminals: %d", t.TerminalCount)
	pterm.Info.Printfln("non-terminals: %d", t.NonTerminalCount)

	if len(in.Conflicts) > 0 {
		pterm.Warning.Printfln("%d conflicts", len(in.Conflicts))
	} else {
		pterm.Success.Println("no conflicts")
	}

	if t.Report != nil {
		pterm.DefaultSection.Println("States")
		var w strings.Builder
		t.Report.WriteText(&w)
		pterm.Println(w.String())
	}

	return nil
}
