package table

import (
	"testing"

	"github.com/nihei9/tabula/internal/automaton"
	"github.com/nihei9/tabula/internal/grammar"
)

func mustBuildExprGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	spec := &grammar.Spec{
		Name:  "expr",
		Start: "E",
		Productions: []grammar.ProductionSpec{
			{LHS: "E", Alternatives: [][]string{{"E", "+", "T"}, {"T"}}},
			{LHS: "T", Alternatives: [][]string{{"T", "*", "F"}, {"F"}}},
			{LHS: "F", Alternatives: [][]string{{"(", "E", ")"}, {"id"}}},
		},
		Precedence: []grammar.PrecedenceGroupSpec{
			{Assoc: "left", Symbols: []string{"+"}},
			{Assoc: "left", Symbols: []string{"*"}},
		},
	}
	g, err := grammar.NewBuilder(spec).Build()
	if err != nil {
		t.Fatalf("unexpected error building grammar: %v", err)
	}
	return g
}

func TestBuildLALRTableHasNoConflicts(t *testing.T) {
	g := mustBuildExprGrammar(t)
	a, err := automaton.BuildLALR(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tab, err := Build(g, a, LALR1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tab.Conflicts) != 0 {
		t.Fatalf("want no conflicts for a precedence-disambiguated expression grammar, got %d", len(tab.Conflicts))
	}
}

func TestDanglingElseResolvesByShiftDefault(t *testing.T) {
	spec := &grammar.Spec{
		Name:  "stmt",
		Start: "S",
		Productions: []grammar.ProductionSpec{
			{LHS: "S", Alternatives: [][]string{
				{"if", "cond", "then", "S"},
				{"if", "cond", "then", "S", "else", "S"},
				{"other"},
			}},
		},
	}
	g, err := grammar.NewBuilder(spec).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, err := automaton.BuildLALR(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tab, err := Build(g, a, LALR1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var found bool
	for _, c := range tab.Conflicts {
		if src, ok := c.(*ShiftReduceConflict); ok {
			found = true
			if src.Method != ResolvedByShiftDefault {
				t.Fatalf("want dangling-else resolved by shift default, got %v", src.Method)
			}
		}
	}
	if !found {
		t.Fatal("want a shift/reduce conflict for the dangling-else grammar")
	}
}

func TestNonAssocProducesExplicitError(t *testing.T) {
	spec := &grammar.Spec{
		Name:  "cmp",
		Start: "E",
		Productions: []grammar.ProductionSpec{
			{LHS: "E", Alternatives: [][]string{{"E", "<", "E"}, {"id"}}},
		},
		Precedence: []grammar.PrecedenceGroupSpec{
			{Assoc: "nonassoc", Symbols: []string{"<"}},
		},
	}
	g, err := grammar.NewBuilder(spec).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, err := automaton.BuildLALR(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tab, err := Build(g, a, LALR1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ltSym, _ := g.Symbols.ToSymbol("<")
	foundErrorCell := false
	for state := 0; state < tab.StateCount; state++ {
		for _, c := range tab.Conflicts {
			src, ok := c.(*ShiftReduceConflict)
			if !ok || src.State != state || src.Symbol != ltSym {
				continue
			}
			if src.Method != ResolvedAsError {
				t.Fatalf("want nonassoc conflict resolved as an explicit error, got %v", src.Method)
			}
			if !tab.getAction(state, ltSym).IsError() {
				t.Fatal("want an explicit error cell for a nonassoc conflict")
			}
			foundErrorCell = true
		}
	}
	if !foundErrorCell {
		t.Fatal("want a nonassoc shift/reduce conflict somewhere in the table")
	}
}

func TestLL1PredictTable(t *testing.T) {
	spec := &grammar.Spec{
		Name:  "expr",
		Start: "E",
		Productions: []grammar.ProductionSpec{
			{LHS: "E", Alternatives: [][]string{{"T", "Eprime"}}},
			{LHS: "Eprime", Alternatives: [][]string{{"+", "T", "Eprime"}, {}}},
			{LHS: "T", Alternatives: [][]string{{"id"}}},
		},
	}
	g, err := grammar.NewBuilder(spec).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tab, err := BuildLL1(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tab.Conflicts) != 0 {
		t.Fatalf("want an LL(1) grammar to have no predict conflicts, got %d", len(tab.Conflicts))
	}

	idSym, _ := g.Symbols.ToSymbol("id")
	eSym, _ := g.Symbols.ToSymbol("E")
	if tab.Predict[eSym.Num().Int()][idSym.Num().Int()] == grammar.NumNil {
		t.Fatal("want PREDICT[E][id] to be set")
	}
}
