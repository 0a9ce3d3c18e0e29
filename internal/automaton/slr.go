package automaton

import "github.com/nihei9/tabula/internal/grammar"

// BuildSLR constructs the automaton SLR(1) table-building uses: the plain
// LR(0) automaton. SLR(1) differs from LR(0) only in where reduce
// lookaheads come from (FOLLOW(lhs) rather than per-item lookahead sets),
// so no separate item/state construction is needed — the table builder
// consults the grammar's FOLLOW sets directly when it encounters an
// SLR(1) automaton.
func BuildSLR(g *grammar.Grammar) (*Automaton, error) {
	return BuildLR0(g)
}
