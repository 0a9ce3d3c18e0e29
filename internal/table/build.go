package table

import (
	"fmt"
	"sort"

	"github.com/nihei9/tabula/internal/automaton"
	"github.com/nihei9/tabula/internal/grammar"
	"github.com/nihei9/tabula/internal/symbol"
)

// Build assembles the action/goto table for one of the LR-family
// algorithms from a grammar and its already-constructed automaton.
func Build(g *grammar.Grammar, a *automaton.Automaton, algo Algorithm) (*Table, error) {
	termCount := g.Symbols.TerminalCount()
	nonTermCount := g.Symbols.NonTerminalCount()

	t := &Table{
		Algorithm:        algo,
		StateCount:       len(a.States),
		TerminalCount:    termCount,
		NonTerminalCount: nonTermCount,
		InitialState:     a.Initial,
		StartProduction:  g.StartProduction().Num,
		Action:           make([]Action, len(a.States)*termCount),
		GoTo:             make([]GoTo, len(a.States)*nonTermCount),
		Terminals:        g.Symbols.TerminalTexts(),
		NonTerminals:     g.Symbols.NonTerminalTexts(),
		EOFSymbol:        symbol.EOF,
		ErrorSymbol:      g.Error,

		ExpectedTerminals: make([][]symbol.Symbol, len(a.States)),
	}

	prods := g.Productions.All()
	t.LHSSymbols = make([]symbol.Symbol, len(prods)+1)
	t.AlternativeSymbolCounts = make([]int, len(prods)+1)
	for _, p := range prods {
		t.LHSSymbols[p.Num] = p.LHS
		t.AlternativeSymbolCounts[p.Num] = len(p.RHS)
	}

	t.ErrorTrapperStates = make([]bool, len(a.States))
	t.RecoverProductions = make([]bool, len(prods)+1)
	for _, p := range prods {
		t.RecoverProductions[p.Num] = p.Recover
	}

	var conflicts []Conflict

	for _, st := range a.States {
		t.ErrorTrapperStates[st.Num] = st.IsErrorTrapper

		var expected []symbol.Symbol
		for sym, target := range st.Next {
			if sym.IsTerminal() {
				expected = append(expected, sym)
				if c := writeShift(t, g, st.Num, sym, target); c != nil {
					conflicts = append(conflicts, c)
				}
			} else {
				t.setGoTo(st.Num, sym, encodeGoTo(target))
			}
		}

		for _, prodID := range st.Reducible {
			prod, ok := g.Productions.FindByID(prodID)
			if !ok {
				return nil, fmt.Errorf("reducible production not found")
			}

			lookaheads, err := reduceLookaheads(g, a, st, prod, algo)
			if err != nil {
				return nil, err
			}
			for sym := range lookaheads {
				expected = append(expected, sym)
				if c := writeReduce(t, g, st.Num, sym, prod); c != nil {
					conflicts = append(conflicts, c)
				}
			}
		}

		sort.Slice(expected, func(i, j int) bool { return expected[i] < expected[j] })
		t.ExpectedTerminals[st.Num] = expected
	}

	t.Conflicts = conflicts
	return t, nil
}

func reduceLookaheads(g *grammar.Grammar, a *automaton.Automaton, st *automaton.State, prod *grammar.Production, algo Algorithm) (map[symbol.Symbol]struct{}, error) {
	switch algo {
	case LR0:
		all := map[symbol.Symbol]struct{}{symbol.EOF: {}}
		for _, s := range g.Symbols.TerminalSymbols() {
			all[s] = struct{}{}
		}
		return all, nil

	case SLR1:
		terms, eof := g.Follow(prod.LHS)
		set := map[symbol.Symbol]struct{}{}
		for s := range terms {
			set[s] = struct{}{}
		}
		if eof {
			set[symbol.EOF] = struct{}{}
		}
		return set, nil

	case LR1, LALR1:
		item := automaton.Item{Prod: prod.ID, Dot: len(prod.RHS)}
		return st.Lookaheads[item], nil

	default:
		return nil, fmt.Errorf("unsupported algorithm for action/goto tables: %v", algo)
	}
}

func writeShift(t *Table, g *grammar.Grammar, state int, sym symbol.Symbol, target int) Conflict {
	existing := t.getAction(state, sym)
	if existing.IsReduce() {
		prodPrec := lookupProdPrec(g, existing.ReduceProd())
		termPrec, _ := g.Precedence.Lookup(sym)
		shift, isErr, method := resolveShiftReduce(termPrec, prodPrec)
		c := &ShiftReduceConflict{State: state, Symbol: sym, NextState: target, Prod: existing.ReduceProd(), Method: method}
		switch {
		case isErr:
			t.setAction(state, sym, ActionError)
		case shift:
			t.setAction(state, sym, encodeShift(target))
		default:
			// keep the existing reduce
		}
		return c
	}
	t.setAction(state, sym, encodeShift(target))
	return nil
}

func writeReduce(t *Table, g *grammar.Grammar, state int, sym symbol.Symbol, prod *grammar.Production) Conflict {
	existing := t.getAction(state, sym)
	if existing.IsShift() {
		prodPrec := prod.Prec
		termPrec, _ := g.Precedence.Lookup(sym)
		shift, isErr, method := resolveShiftReduce(termPrec, prodPrec)
		c := &ShiftReduceConflict{State: state, Symbol: sym, NextState: existing.ShiftState(), Prod: prod.Num, Method: method}
		switch {
		case isErr:
			t.setAction(state, sym, ActionError)
		case !shift:
			t.setAction(state, sym, encodeReduce(prod.Num))
		default:
			// keep the existing shift
		}
		return c
	}
	if existing.IsReduce() && existing.ReduceProd() != prod.Num {
		winner := existing.ReduceProd()
		if prod.Num < winner {
			winner = prod.Num
			t.setAction(state, sym, encodeReduce(prod.Num))
		}
		return &ReduceReduceConflict{State: state, Symbol: sym, Prod1: existing.ReduceProd(), Prod2: prod.Num, Method: ResolvedByProductionOrder}
	}
	t.setAction(state, sym, encodeReduce(prod.Num))
	return nil
}

func lookupProdPrec(g *grammar.Grammar, num grammar.Num) *grammar.Precedence {
	for _, p := range g.Productions.All() {
		if p.Num == num {
			return p.Prec
		}
	}
	return nil
}
