// Package grammar implements the Grammar Model and Set Solver: interning
// symbols, assembling productions (with precedence inheritance), and
// computing nullability/FIRST/FOLLOW over the result.
package grammar

import (
	"fmt"

	"github.com/nihei9/tabula/internal/symbol"
)

// Grammar is the fully-built, validated grammar the item/state algebra
// and table builders operate on. It is produced once by Build and is
// immutable afterward.
type Grammar struct {
	Name        string
	Symbols     *symbol.Table
	Productions *ProductionSet
	Precedence  *PrecedenceTable
	Start       symbol.Symbol // the augmented start symbol S'
	RealStart   symbol.Symbol // the grammar's declared start symbol S
	Error       symbol.Symbol

	nullable nullableSet
	first    *firstSet
	follow   *followSet
}

// Nullable reports whether sym can derive the empty string.
func (g *Grammar) Nullable(sym symbol.Symbol) bool {
	return g.nullable[sym]
}

// First returns FIRST(sym): its terminals and whether sym is nullable.
func (g *Grammar) First(sym symbol.Symbol) (terminals map[symbol.Symbol]struct{}, nullable bool) {
	e := g.first.find(sym)
	return e.symbols, e.nullable
}

// FirstOfString returns FIRST of a string of symbols.
func (g *Grammar) FirstOfString(str []symbol.Symbol) (terminals map[symbol.Symbol]struct{}, nullable bool) {
	e := g.first.findString(str)
	return e.symbols, e.nullable
}

// Follow returns FOLLOW(sym): its terminals and whether EOF can follow.
func (g *Grammar) Follow(sym symbol.Symbol) (terminals map[symbol.Symbol]struct{}, eof bool) {
	e := g.follow.find(sym)
	return e.symbols, e.eof
}

// StartProduction returns the augmented S' -> S production. Callers that
// need its Num (to recognize an Accept reduction) should read it from here
// rather than assume NumStart: this is the production's actual identity,
// not a hardcoded convention.
func (g *Grammar) StartProduction() *Production {
	ps := g.Productions.FindByLHS(g.Start)
	if len(ps) == 0 {
		return nil
	}
	return ps[0]
}

// Builder assembles a Grammar from a Spec, collecting every validation
// fault instead of stopping at the first one.
type Builder struct {
	spec *Spec
	errs Errors
}

func NewBuilder(spec *Spec) *Builder {
	return &Builder{spec: spec}
}

func (b *Builder) err(cause Cause, detail string) {
	b.errs = append(b.errs, &Error{Cause: cause, Detail: detail})
}

// Build runs the full C1 pipeline: intern symbols, assemble productions
// with inherited precedence, synthesize the augmented start production,
// then compute nullable/FIRST/FOLLOW (C2).
func (b *Builder) Build() (*Grammar, error) {
	if len(b.spec.Productions) == 0 {
		b.err(CauseEmptyGrammar, "")
		return nil, b.errs
	}
	if b.spec.Start == "" {
		b.err(CauseNoStart, "")
		return nil, b.errs
	}

	symTab := symbol.NewTable()
	precTab := NewPrecedenceTable()

	// Pass 1: register every LHS as a non-terminal so forward references
	// in alternatives resolve.
	for _, p := range b.spec.Productions {
		if p.LHS == "" {
			continue
		}
		if _, err := symTab.RegisterNonTerminal(p.LHS); err != nil {
			b.err(CauseUndeclaredSymbol, err.Error())
		}
	}

	realStart, ok := symTab.ToSymbol(b.spec.Start)
	if !ok {
		b.err(CauseNoStart, fmt.Sprintf("start symbol %q has no productions", b.spec.Start))
	}

	errSym, err := symTab.RegisterTerminal(errorSymbolName)
	if err != nil {
		b.err(CauseUndeclaredSymbol, err.Error())
	}

	// The augmented start production S' -> S is appended first, before any
	// user production, so it always receives Num/NumStart (1) regardless of
	// how many alternatives the grammar declares.
	startSym := symTab.RegisterStart(b.spec.Start + "'")
	prods := NewProductionSet()
	prods.Append(startSym, []symbol.Symbol{realStart}, nil, false)

	// Pass 2: precedence declarations, lowest group first.
	for level, group := range b.spec.Precedence {
		var assoc Assoc
		switch group.Assoc {
		case "left":
			assoc = AssocLeft
		case "right":
			assoc = AssocRight
		case "nonassoc":
			assoc = AssocNonAssoc
		default:
			assoc = AssocNone
		}
		for _, name := range group.Symbols {
			sym, err := symTab.RegisterTerminal(name)
			if err != nil {
				b.err(CauseUndeclaredSymbol, err.Error())
				continue
			}
			if _, exists := precTab.Lookup(sym); exists {
				b.err(CauseAmbiguousPrecedence, name)
				continue
			}
			precTab.Declare(sym, level, assoc)
		}
	}

	// Pass 3: resolve every RHS symbol, registering unseen names as
	// terminals (a name that never appears as an LHS is a terminal).
	for _, p := range b.spec.Productions {
		if p.LHS == "" {
			continue
		}
		lhs, _ := symTab.ToSymbol(p.LHS)

		for altIdx, alt := range p.Alternatives {
			rhs := make([]symbol.Symbol, 0, len(alt))
			recover := false
			for _, name := range alt {
				if name == errorSymbolName {
					rhs = append(rhs, errSym)
					recover = true
					continue
				}
				sym, ok := symTab.ToSymbol(name)
				if !ok {
					var regErr error
					sym, regErr = symTab.RegisterTerminal(name)
					if regErr != nil {
						b.err(CauseUndeclaredSymbol, regErr.Error())
						continue
					}
				}
				rhs = append(rhs, sym)
			}

			var prec *Precedence
			if altIdx < len(p.Prec) && p.Prec[altIdx] != "" {
				if sym, ok := symTab.ToSymbol(p.Prec[altIdx]); ok {
					prec, _ = precTab.Lookup(sym)
				}
			}
			if prec == nil {
				prec = precTab.Inherit(rhs)
			}

			if _, dup := prods.Append(lhs, rhs, prec, recover); dup {
				b.err(CauseDuplicateProduction, fmt.Sprintf("%s -> %v", p.LHS, alt))
			}
		}
	}

	if len(b.errs) > 0 {
		return nil, b.errs
	}

	unused := detectUnreachable(prods, startSym)
	for _, p := range unused {
		b.err(CauseUnusedProduction, fmt.Sprintf("production %d (%s)", p.Num, b.spec.Start))
	}
	if len(b.errs) > 0 {
		return nil, b.errs
	}

	nullable := genNullableSet(prods)
	first := genFirstSet(prods, nullable)
	follow := genFollowSet(prods, startSym, first)

	return &Grammar{
		Name:        b.spec.Name,
		Symbols:     symTab,
		Productions: prods,
		Precedence:  precTab,
		Start:       startSym,
		RealStart:   realStart,
		Error:       errSym,
		nullable:    nullable,
		first:       first,
		follow:      follow,
	}, nil
}

// detectUnreachable finds non-terminals (and hence their productions)
// that can never be reached by expanding the start symbol.
func detectUnreachable(prods *ProductionSet, start symbol.Symbol) []*Production {
	reachable := map[symbol.Symbol]bool{start: true}
	worklist := []symbol.Symbol{start}
	for len(worklist) > 0 {
		sym := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		for _, p := range prods.FindByLHS(sym) {
			for _, s := range p.RHS {
				if s.IsNonTerminal() && !reachable[s] {
					reachable[s] = true
					worklist = append(worklist, s)
				}
			}
		}
	}

	var unused []*Production
	for _, p := range prods.All() {
		if !reachable[p.LHS] {
			unused = append(unused, p)
		}
	}
	return unused
}
