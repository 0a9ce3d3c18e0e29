package grammar

import "testing"

func exprSpec() *Spec {
	return &Spec{
		Name:  "expr",
		Start: "E",
		Productions: []ProductionSpec{
			{LHS: "E", Alternatives: [][]string{{"E", "+", "T"}, {"T"}}},
			{LHS: "T", Alternatives: [][]string{{"T", "*", "F"}, {"F"}}},
			{LHS: "F", Alternatives: [][]string{{"(", "E", ")"}, {"id"}}},
		},
		Precedence: []PrecedenceGroupSpec{
			{Assoc: "left", Symbols: []string{"+"}},
			{Assoc: "left", Symbols: []string{"*"}},
		},
	}
}

func TestBuildGrammar(t *testing.T) {
	g, err := NewBuilder(exprSpec()).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(g.Productions.All()) != 7 {
		t.Fatalf("want 7 productions (6 + augmented start), got %d", len(g.Productions.All()))
	}

	eSym, ok := g.Symbols.ToSymbol("E")
	if !ok {
		t.Fatal("E not registered")
	}
	if g.Nullable(eSym) {
		t.Fatal("E must not be nullable")
	}

	idSym, ok := g.Symbols.ToSymbol("id")
	if !ok {
		t.Fatal("id not registered")
	}
	first, nullable := g.First(eSym)
	if nullable {
		t.Fatal("FIRST(E) must not be nullable")
	}
	if _, ok := first[idSym]; !ok {
		t.Fatal("FIRST(E) must contain id")
	}

	follow, eof := g.Follow(eSym)
	if !eof {
		t.Fatal("FOLLOW(E) must contain EOF")
	}
	plusSym, _ := g.Symbols.ToSymbol("+")
	if _, ok := follow[plusSym]; !ok {
		t.Fatal("FOLLOW(E) must contain +")
	}
}

func TestAugmentedStartProductionGetsNumStart(t *testing.T) {
	g, err := NewBuilder(exprSpec()).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	start := g.StartProduction()
	if start == nil {
		t.Fatal("want a non-nil augmented start production")
	}
	if start.Num != NumStart {
		t.Fatalf("want the augmented start production to have Num %d, got %d", NumStart, start.Num)
	}
	if start.LHS != g.Start {
		t.Fatal("want the augmented start production's LHS to be the augmented start symbol")
	}
}

func TestBuildGrammarRejectsEmpty(t *testing.T) {
	_, err := NewBuilder(&Spec{}).Build()
	if err == nil {
		t.Fatal("want an error for an empty grammar")
	}
}

func TestBuildGrammarRejectsUnreachableProduction(t *testing.T) {
	spec := exprSpec()
	spec.Productions = append(spec.Productions, ProductionSpec{
		LHS:          "Unused",
		Alternatives: [][]string{{"id"}},
	})
	_, err := NewBuilder(spec).Build()
	if err == nil {
		t.Fatal("want an error for an unreachable production")
	}
}

func TestNullableGrammar(t *testing.T) {
	spec := &Spec{
		Name:  "opt",
		Start: "S",
		Productions: []ProductionSpec{
			{LHS: "S", Alternatives: [][]string{{"a", "B"}}},
			{LHS: "B", Alternatives: [][]string{{"b"}, {}}},
		},
	}
	g, err := NewBuilder(spec).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bSym, _ := g.Symbols.ToSymbol("B")
	if !g.Nullable(bSym) {
		t.Fatal("B must be nullable")
	}
}
