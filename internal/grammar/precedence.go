package grammar

import "github.com/nihei9/tabula/internal/symbol"

// Assoc is the associativity of a precedence level.
type Assoc int

const (
	AssocNone Assoc = iota
	AssocLeft
	AssocRight
	// AssocNonAssoc marks a level whose operators may never chain without
	// parentheses; a shift/reduce conflict at equal precedence on this
	// level must resolve to an explicit error cell, not a silent pick.
	AssocNonAssoc
)

// Precedence is a declared or inherited priority level. Higher Level wins
// in a shift/reduce conflict.
type Precedence struct {
	Level int
	Assoc Assoc
}

// PrecedenceTable maps terminal symbols to their declared precedence, in
// the order the grammar's operator groups were declared (lowest first).
type PrecedenceTable struct {
	bySymbol map[symbol.Symbol]*Precedence
}

func NewPrecedenceTable() *PrecedenceTable {
	return &PrecedenceTable{bySymbol: map[symbol.Symbol]*Precedence{}}
}

func (t *PrecedenceTable) Declare(sym symbol.Symbol, level int, assoc Assoc) {
	t.bySymbol[sym] = &Precedence{Level: level, Assoc: assoc}
}

func (t *PrecedenceTable) Lookup(sym symbol.Symbol) (*Precedence, bool) {
	p, ok := t.bySymbol[sym]
	return p, ok
}

// Inherit computes a production's precedence when it carries no explicit
// override: the precedence of the right-most terminal symbol in its RHS,
// or nil if the RHS has no terminal.
func (t *PrecedenceTable) Inherit(rhs []symbol.Symbol) *Precedence {
	for i := len(rhs) - 1; i >= 0; i-- {
		if !rhs[i].IsTerminal() {
			continue
		}
		if p, ok := t.bySymbol[rhs[i]]; ok {
			return p
		}
		return nil
	}
	return nil
}
