package table

import (
	"github.com/nihei9/tabula/internal/grammar"
	"github.com/nihei9/tabula/internal/symbol"
)

// PredictConflictKind distinguishes the two ways a PREDICT cell can be
// double-written: two alternatives sharing a FIRST terminal, versus an
// alternative's FIRST colliding with another's FOLLOW-derived entry
// (reached only because the other alternative is nullable).
type PredictConflictKind string

const (
	PredictFirstFirst  = PredictConflictKind("first/first")
	PredictFirstFollow = PredictConflictKind("first/follow")
)

// PredictConflict reports two productions under the same LHS that both
// predict on the same terminal — the grammar is not LL(1).
type PredictConflict struct {
	LHS    symbol.Symbol
	Symbol symbol.Symbol
	Prod1  grammar.Num
	Prod2  grammar.Num
	Kind   PredictConflictKind
}

func (c *PredictConflict) conflict() {}

// BuildLL1 constructs the PREDICT table directly from FIRST/FOLLOW,
// without any item/state automaton: for A -> α, PREDICT[A][a] = that
// production for every a in FIRST(α), and additionally for every a in
// FOLLOW(A) when α is nullable.
func BuildLL1(g *grammar.Grammar) (*Table, error) {
	termCount := g.Symbols.TerminalCount()
	nonTermCount := g.Symbols.NonTerminalCount()

	t := &Table{
		Algorithm:        LL1,
		TerminalCount:    termCount,
		NonTerminalCount: nonTermCount,
		StartProduction:  g.StartProduction().Num,
		Terminals:        g.Symbols.TerminalTexts(),
		NonTerminals:     g.Symbols.NonTerminalTexts(),
		EOFSymbol:        symbol.EOF,
		ErrorSymbol:      g.Error,
		Predict:          make([][]grammar.Num, nonTermCount),
	}
	for i := range t.Predict {
		t.Predict[i] = make([]grammar.Num, termCount)
	}

	prods := g.Productions.All()
	t.LHSSymbols = make([]symbol.Symbol, len(prods)+1)
	t.AlternativeSymbolCounts = make([]int, len(prods)+1)
	t.RecoverProductions = make([]bool, len(prods)+1)
	for _, p := range prods {
		t.LHSSymbols[p.Num] = p.LHS
		t.AlternativeSymbolCounts[p.Num] = len(p.RHS)
		t.RecoverProductions[p.Num] = p.Recover
	}

	var conflicts []Conflict

	// fromFollow marks cells whose current entry came from a FOLLOW set, so
	// a collision is tagged first/follow whichever side was written first.
	fromFollow := map[*grammar.Num]bool{}

	write := func(lhs, sym symbol.Symbol, prod *grammar.Production, kind PredictConflictKind) {
		cell := &t.Predict[lhs.Num().Int()][sym.Num().Int()]
		if *cell != grammar.NumNil && *cell != prod.Num {
			conflictKind := kind
			if fromFollow[cell] {
				conflictKind = PredictFirstFollow
			}
			conflicts = append(conflicts, &PredictConflict{LHS: lhs, Symbol: sym, Prod1: *cell, Prod2: prod.Num, Kind: conflictKind})
			if prod.Num < *cell {
				*cell = prod.Num
				fromFollow[cell] = kind == PredictFirstFollow
			}
			return
		}
		*cell = prod.Num
		fromFollow[cell] = kind == PredictFirstFollow
	}

	for _, p := range prods {
		if p.LHS == g.Start {
			continue // the augmented production never predicts
		}
		first, nullable := g.FirstOfString(p.RHS)
		for sym := range first {
			write(p.LHS, sym, p, PredictFirstFirst)
		}
		if nullable {
			follow, eof := g.Follow(p.LHS)
			for sym := range follow {
				write(p.LHS, sym, p, PredictFirstFollow)
			}
			if eof {
				write(p.LHS, symbol.EOF, p, PredictFirstFollow)
			}
		}
	}

	t.Conflicts = conflicts
	return t, nil
}
