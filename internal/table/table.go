// Package table implements the Table Builders and Table Compressor: it
// turns a grammar plus its item/state automaton into action/goto tables
// (or, for LL(1), a PREDICT table), resolving conflicts by precedence and
// associativity, and compresses the result with default-action detection
// and unreachable-state pruning.
package table

import (
	"github.com/nihei9/tabula/internal/grammar"
	"github.com/nihei9/tabula/internal/symbol"
)

// Algorithm selects which table-construction strategy Build runs.
type Algorithm string

const (
	LR0   Algorithm = "lr0"
	SLR1  Algorithm = "slr1"
	LR1   Algorithm = "lr1"
	LALR1 Algorithm = "lalr1"
	LL1   Algorithm = "ll1"
)

// Action encodes a parsing-table cell: 0 is an explicit error, a negative
// value -(state+1) is a shift to state, and a positive value is a reduce
// of that production number (reducing grammar.NumStart means accept).
type Action int32

const ActionError = Action(0)

func encodeShift(state int) Action   { return Action(-(state + 1)) }
func encodeReduce(prod grammar.Num) Action { return Action(prod) }

func (a Action) IsError() bool { return a == ActionError }

func (a Action) IsShift() bool { return a < 0 }

func (a Action) IsReduce() bool { return a > 0 }

func (a Action) ShiftState() int { return int(-a) - 1 }

func (a Action) ReduceProd() grammar.Num { return grammar.Num(a) }

// GoTo encodes a goto-table cell: 0 means no transition, else state+1.
type GoTo int32

const GoToError = GoTo(0)

func encodeGoTo(state int) GoTo { return GoTo(state + 1) }

func (g GoTo) IsError() bool { return g == GoToError }

func (g GoTo) State() int { return int(g) - 1 }

// Table is the compiled result: an action/goto table for an LR-family
// algorithm, or a PREDICT table for LL(1) (ll1.go populates Predict
// instead of Action/GoTo).
type Table struct {
	Algorithm Algorithm

	StateCount       int
	TerminalCount    int
	NonTerminalCount int
	InitialState     int
	StartProduction  grammar.Num

	Action []Action // StateCount * TerminalCount
	GoTo   []GoTo   // StateCount * NonTerminalCount

	// Predict[nonTerminal][terminal] is the production number to expand,
	// or grammar.NumNil if there is none. Populated only for LL(1).
	Predict [][]grammar.Num

	LHSSymbols              []symbol.Symbol
	AlternativeSymbolCounts []int

	Terminals    []string
	NonTerminals []string
	EOFSymbol    symbol.Symbol
	ErrorSymbol  symbol.Symbol

	ErrorTrapperStates []bool
	RecoverProductions []bool

	ExpectedTerminals [][]symbol.Symbol

	Conflicts []Conflict

	Report *Report
}

func (t *Table) getAction(state int, term symbol.Symbol) Action {
	return t.Action[state*t.TerminalCount+term.Num().Int()]
}

func (t *Table) setAction(state int, term symbol.Symbol, a Action) {
	t.Action[state*t.TerminalCount+term.Num().Int()] = a
}

func (t *Table) getGoTo(state int, nonTerm symbol.Symbol) GoTo {
	return t.GoTo[state*t.NonTerminalCount+nonTerm.Num().Int()]
}

func (t *Table) setGoTo(state int, nonTerm symbol.Symbol, g GoTo) {
	t.GoTo[state*t.NonTerminalCount+nonTerm.Num().Int()] = g
}

// GetAction exposes the shift/reduce/error decision at (state, terminal)
// to the parse runtime.
func (t *Table) GetAction(state int, term symbol.Symbol) Action {
	return t.getAction(state, term)
}

// GetGoTo exposes the goto transition at (state, non-terminal).
func (t *Table) GetGoTo(state int, nonTerm symbol.Symbol) GoTo {
	return t.getGoTo(state, nonTerm)
}
