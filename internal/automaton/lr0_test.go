package automaton

import (
	"testing"

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

func TestBuildLR0Deterministic(t *testing.T) {
	g := mustBuildExprGrammar(t)

	a1, err := BuildLR0(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a2, err := BuildLR0(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(a1.States) != len(a2.States) {
		t.Fatalf("non-deterministic state count: %d vs %d", len(a1.States), len(a2.States))
	}
	for i := range a1.States {
		if a1.States[i].Core.Key() != a2.States[i].Core.Key() {
			t.Fatalf("state %d core mismatch across runs", i)
		}
	}
}

func TestLR0ClosureIsIdempotent(t *testing.T) {
	g := mustBuildExprGrammar(t)
	a, err := BuildLR0(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	initial := a.States[a.Initial]
	again := closureLR0(g, initial.Items)
	if len(again) != len(initial.Items) {
		t.Fatalf("closure is not idempotent: %d vs %d items", len(again), len(initial.Items))
	}
}

func TestBuildLALRMergesSharedCores(t *testing.T) {
	g := mustBuildExprGrammar(t)

	lr0, err := BuildLR0(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lalr, err := BuildLALR(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(lalr.States) != len(lr0.States) {
		t.Fatalf("LALR(1) state count must equal LR(0) state count for this grammar: %d vs %d", len(lalr.States), len(lr0.States))
	}

	canon, err := BuildLR1(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(canon.States) < len(lalr.States) {
		t.Fatalf("canonical LR(1) must have at least as many states as merged LALR(1): %d vs %d", len(canon.States), len(lalr.States))
	}
}
