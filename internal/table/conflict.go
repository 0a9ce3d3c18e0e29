package table

import (
	"github.com/nihei9/tabula/internal/grammar"
	"github.com/nihei9/tabula/internal/symbol"
)

// ResolutionMethod records how a shift/reduce or reduce/reduce conflict
// was settled, so a build report can explain every table cell instead of
// presenting resolved conflicts as if they never happened.
type ResolutionMethod string

const (
	ResolvedByPrecedence   = ResolutionMethod("precedence")
	ResolvedByAssociativity = ResolutionMethod("associativity")
	ResolvedByShiftDefault = ResolutionMethod("shift-default")
	ResolvedByProductionOrder = ResolutionMethod("production-order")
	ResolvedAsError        = ResolutionMethod("nonassoc-error")
)

type Conflict interface {
	conflict()
}

type ShiftReduceConflict struct {
	State     int
	Symbol    symbol.Symbol
	NextState int
	Prod      grammar.Num
	Method    ResolutionMethod
}

func (c *ShiftReduceConflict) conflict() {}

type ReduceReduceConflict struct {
	State  int
	Symbol symbol.Symbol
	Prod1  grammar.Num
	Prod2  grammar.Num
	Method ResolutionMethod
}

func (c *ReduceReduceConflict) conflict() {}

// resolveShiftReduce decides whether a shift on term (whose precedence is
// termPrec) or a reduce of a production (whose precedence is prodPrec)
// wins. Unlike a bare "always prefer shift" default, precedence and
// associativity are always consulted first; shift is the fallback when
// either side has no declared precedence, or when the levels are equal
// and the level declares no associativity.
func resolveShiftReduce(termPrec, prodPrec *grammar.Precedence) (shift bool, isError bool, method ResolutionMethod) {
	if termPrec == nil || prodPrec == nil {
		return true, false, ResolvedByShiftDefault
	}
	if termPrec.Level > prodPrec.Level {
		return true, false, ResolvedByPrecedence
	}
	if termPrec.Level < prodPrec.Level {
		return false, false, ResolvedByPrecedence
	}
	switch termPrec.Assoc {
	case grammar.AssocLeft:
		return false, false, ResolvedByAssociativity
	case grammar.AssocRight:
		return true, false, ResolvedByAssociativity
	case grammar.AssocNonAssoc:
		return false, true, ResolvedAsError
	default:
		return true, false, ResolvedByShiftDefault
	}
}
