package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nihei9/tabula"
	"github.com/nihei9/tabula/internal/symbol"
	"github.com/nihei9/tabula/runtime"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "parse <grammar.json> <tokens.json>",
		Short: "Parse a structured token stream and print its syntax tree",
		Long: `parse rebuilds the table from <grammar.json> and drives a debug
lexer over a JSON array of {"terminal": "...", "lexeme": "..."} objects
read from <tokens.json>. It exists to exercise a grammar before a real
lexer is wired in — it is not a substitute for one.`,
		Args: cobra.ExactArgs(2),
		RunE: runParse,
	}
	cmd.Flags().Var(buildFlags.algo, "algo", "construction algorithm: lr0, slr1, lr1, lalr1, ll1")
	cmd.Flags().Bool("cst", false, "print the concrete syntax tree instead of the abstract one")
	rootCmd.AddCommand(cmd)
}

type jsonToken struct {
	Terminal string `json:"terminal"`
	Lexeme   string `json:"lexeme"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
}

type debugToken struct {
	sym    symbol.Symbol
	lexeme string
	row    int
	col    int
	eof    bool
}

func (t *debugToken) Terminal() symbol.Symbol   { return t.sym }
func (t *debugToken) Lexeme() []byte            { return []byte(t.lexeme) }
func (t *debugToken) EOF() bool                 { return t.eof }
func (t *debugToken) Invalid() bool             { return false }
func (t *debugToken) Position() (int, int)      { return t.row, t.col }

type debugLexer struct {
	toks []*debugToken
	pos  int
}

func (l *debugLexer) Next() (runtime.Token, error) {
	if l.pos >= len(l.toks) {
		return &debugToken{eof: true}, nil
	}
	t := l.toks[l.pos]
	l.pos++
	return t, nil
}

func runParse(cmd *cobra.Command, args []string) error {
	specFile, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer specFile.Close()

	var spec tabula.Spec
	if err := json.NewDecoder(specFile).Decode(&spec); err != nil {
		return fmt.Errorf("invalid grammar: %w", err)
	}

	t, err := tabula.Build(&spec, tabula.Options{Algorithm: buildFlags.algo.value, Compress: false})
	if err != nil {
		return err
	}

	tokFile, err := os.Open(args[1])
	if err != nil {
		return err
	}
	defer tokFile.Close()

	var raw []jsonToken
	if err := json.NewDecoder(tokFile).Decode(&raw); err != nil {
		return fmt.Errorf("invalid token stream: %w", err)
	}

	lex := &debugLexer{}
	for _, jt := range raw {
		sym, ok := t.ToSymbol(jt.Terminal)
		if !ok {
			return fmt.Errorf("unknown terminal %q", jt.Terminal)
		}
		lex.toks = append(lex.toks, &debugToken{sym: sym, lexeme: jt.Lexeme, row: jt.Row, col: jt.Col})
	}

	printCST, _ := cmd.Flags().GetBool("cst")

	var opts []runtime.SyntaxTreeActionOption
	if printCST {
		opts = append(opts, runtime.WithConcreteTree())
	}
	action := runtime.NewSyntaxTreeAction(
		runtime.NewTableGrammar(t.Underlying()),
		func(num int) string { return t.TerminalName(num) },
		func(num int) string { return t.NonTerminalName(num) },
		opts...,
	)

	if err := t.Parse(lex, action); err != nil {
		return err
	}

	if printCST {
		runtime.PrintTree(os.Stdout, action.CST())
	} else {
		runtime.PrintTree(os.Stdout, action.AST())
	}
	return nil
}
