// Package tabula is the public entry point: build a parser table from a
// structured grammar (build), inspect the conflicts a build found
// (Table.Conflicts), and drive input through the compiled table
// (Table.Parse). Everything else lives in internal/ — grammar modeling,
// item/state algebra, and table construction are implementation details
// a caller never needs to see directly.
package tabula

import (
	"fmt"

	"github.com/nihei9/tabula/internal/automaton"
	igrammar "github.com/nihei9/tabula/internal/grammar"
	"github.com/nihei9/tabula/internal/symbol"
	"github.com/nihei9/tabula/internal/table"
	"github.com/nihei9/tabula/runtime"
)

type Algorithm = table.Algorithm

const (
	LR0   = table.LR0
	SLR1  = table.SLR1
	LR1   = table.LR1
	LALR1 = table.LALR1
	LL1   = table.LL1
)

// Spec is the structured grammar input; see internal/grammar.Spec for
// the field-level contract.
type Spec = igrammar.Spec
type ProductionSpec = igrammar.ProductionSpec
type PrecedenceGroupSpec = igrammar.PrecedenceGroupSpec

// Options configures a Build call.
type Options struct {
	Algorithm Algorithm
	Compress  bool
	Report    bool
}

// Table is a compiled parsing table: the result of build(G).
type Table struct {
	compiled *table.Table
	gram     *igrammar.Grammar
	defaults []table.Action
}

// Build runs the full pipeline (C1-C5): it constructs the grammar,
// computes the item/state automaton appropriate to opts.Algorithm,
// assembles the action/goto (or PREDICT) table, and optionally
// compresses it.
func Build(spec *Spec, opts Options) (*Table, error) {
	g, err := igrammar.NewBuilder(spec).Build()
	if err != nil {
		return nil, err
	}

	var compiled *table.Table
	switch opts.Algorithm {
	case table.LL1:
		compiled, err = table.BuildLL1(g)
	case table.LR0:
		a, aerr := automaton.BuildLR0(g)
		if aerr != nil {
			return nil, aerr
		}
		compiled, err = table.Build(g, a, table.LR0)
	case table.SLR1:
		a, aerr := automaton.BuildSLR(g)
		if aerr != nil {
			return nil, aerr
		}
		compiled, err = table.Build(g, a, table.SLR1)
	case table.LR1:
		a, aerr := automaton.BuildLR1(g)
		if aerr != nil {
			return nil, aerr
		}
		compiled, err = table.Build(g, a, table.LR1)
	case table.LALR1, "":
		a, aerr := automaton.BuildLALR(g)
		if aerr != nil {
			return nil, aerr
		}
		compiled, err = table.Build(g, a, table.LALR1)
	default:
		return nil, fmt.Errorf("unknown algorithm %q", opts.Algorithm)
	}
	if err != nil {
		return nil, err
	}

	t := &Table{compiled: compiled, gram: g}

	if opts.Compress {
		t.defaults = table.Compress(compiled)
	}
	if opts.Report {
		compiled.Report = table.GenerateReport(compiled, g)
	}

	return t, nil
}

// Conflicts returns every shift/reduce, reduce/reduce, or LL(1) predict
// conflict the build found. A non-empty result means the table still
// parses (conflicts are resolved, never fatal) but is worth reviewing.
func (t *Table) Conflicts() []table.Conflict {
	return t.compiled.Conflicts
}

// Report returns the build's diagnostic report, or nil if Options.Report
// was false.
func (t *Table) Report() *table.Report {
	return t.compiled.Report
}

// Parse drives lex through the compiled table, invoking action at each
// shift/reduce/accept/recovery step.
func (t *Table) Parse(lex runtime.Lexer, action runtime.SemanticAction) error {
	p := runtime.NewParser(runtime.NewTableGrammar(t.compiled), lex, action)
	return p.Parse()
}

// TerminalName returns the declared name of a terminal symbol number.
func (t *Table) TerminalName(num int) string {
	texts := t.compiled.Terminals
	if num < 0 || num >= len(texts) {
		return ""
	}
	return texts[num]
}

// NonTerminalName returns the declared name of a non-terminal symbol number.
func (t *Table) NonTerminalName(num int) string {
	texts := t.compiled.NonTerminals
	if num < 0 || num >= len(texts) {
		return ""
	}
	return texts[num]
}

// ToSymbol resolves a declared terminal or non-terminal name back to its
// Symbol, for callers (lexers, CLI tooling) that only know grammar text.
func (t *Table) ToSymbol(name string) (symbol.Symbol, bool) {
	return t.gram.Symbols.ToSymbol(name)
}

// EOFSymbol returns the reserved end-of-input symbol.
func (t *Table) EOFSymbol() symbol.Symbol {
	return symbol.EOF
}

// Underlying exposes the compiled table for advanced callers (report
// rendering, serialization) that need more than the stable surface above.
func (t *Table) Underlying() *table.Table {
	return t.compiled
}
