package runtime

import (
	"github.com/nihei9/tabula/internal/symbol"
	"github.com/nihei9/tabula/internal/table"
)

// Grammar decouples the parse runtime from a concrete *table.Table,
// the way driver/spec.go's interface decouples the teacher's driver from
// *spec.CompiledGrammar.
type Grammar interface {
	InitialState() int
	Action(state int, term symbol.Symbol) table.Action
	GoTo(state int, nonTerm symbol.Symbol) table.GoTo
	LHS(prodNum int) int
	AlternativeSymbolCount(prodNum int) int
	IsErrorTrapperState(state int) bool
	IsRecoverProduction(prodNum int) bool
	StartProduction() int
	EOFSymbol() symbol.Symbol
	ErrorSymbol() symbol.Symbol
	ExpectedTerminals(state int) []symbol.Symbol
}

// TableGrammar adapts a compiled *table.Table to the Grammar interface.
type TableGrammar struct {
	T *table.Table
}

func NewTableGrammar(t *table.Table) *TableGrammar {
	return &TableGrammar{T: t}
}

func (g *TableGrammar) InitialState() int { return g.T.InitialState }

func (g *TableGrammar) Action(state int, term symbol.Symbol) table.Action {
	return g.T.GetAction(state, term)
}

func (g *TableGrammar) GoTo(state int, nonTerm symbol.Symbol) table.GoTo {
	return g.T.GetGoTo(state, nonTerm)
}

func (g *TableGrammar) LHS(prodNum int) int {
	return g.T.LHSSymbols[prodNum].Num().Int()
}

func (g *TableGrammar) AlternativeSymbolCount(prodNum int) int {
	return g.T.AlternativeSymbolCounts[prodNum]
}

func (g *TableGrammar) IsErrorTrapperState(state int) bool {
	return g.T.ErrorTrapperStates[state]
}

func (g *TableGrammar) IsRecoverProduction(prodNum int) bool {
	return g.T.RecoverProductions[prodNum]
}

func (g *TableGrammar) StartProduction() int {
	return int(g.T.StartProduction)
}

func (g *TableGrammar) EOFSymbol() symbol.Symbol {
	return g.T.EOFSymbol
}

func (g *TableGrammar) ErrorSymbol() symbol.Symbol {
	return g.T.ErrorSymbol
}

func (g *TableGrammar) ExpectedTerminals(state int) []symbol.Symbol {
	return g.T.ExpectedTerminals[state]
}
