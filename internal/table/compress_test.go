package table

import (
	"testing"

	"github.com/nihei9/tabula/internal/symbol"
)

func TestCompressPrunesAndRenumbersUnreachableStates(t *testing.T) {
	symTab := symbol.NewTable()
	termA, err := symTab.RegisterTerminal("a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tc := symTab.TerminalCount()

	// 3 states, 1 non-EOF terminal. State 0 (initial) shifts to state 1 on
	// "a"; state 1 reduces. State 2 is never targeted by any shift/goto and
	// must be pruned, with state-number references in the survivors
	// remapped to the dense 0..1 prefix.
	tbl := &Table{
		Algorithm:          LALR1,
		StateCount:         3,
		TerminalCount:      tc,
		NonTerminalCount:   0,
		InitialState:       0,
		Action:             make([]Action, 3*tc),
		GoTo:               make([]GoTo, 0),
		ErrorTrapperStates: []bool{false, false, false},
		ExpectedTerminals:  make([][]symbol.Symbol, 3),
	}
	tbl.setAction(0, termA, encodeShift(1))
	tbl.setAction(1, termA, encodeReduce(1))
	tbl.setAction(2, termA, encodeShift(0)) // state 2 is unreachable; its own content doesn't matter

	Compress(tbl)

	if tbl.StateCount != 2 {
		t.Fatalf("want 2 reachable states after pruning, got %d", tbl.StateCount)
	}
	if !tbl.getAction(0, termA).IsShift() || tbl.getAction(0, termA).ShiftState() != 1 {
		t.Fatalf("want state 0 to still shift to state 1 after renumbering, got action %v", tbl.getAction(0, termA))
	}
	if !tbl.getAction(1, termA).IsReduce() {
		t.Fatal("want state 1's reduce action preserved after renumbering")
	}
}

func TestCompressDetectsDefaultReduceAction(t *testing.T) {
	symTab := symbol.NewTable()
	termA, err := symTab.RegisterTerminal("a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	termB, err := symTab.RegisterTerminal("b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tc := symTab.TerminalCount()

	tbl := &Table{
		Algorithm:          LALR1,
		StateCount:         1,
		TerminalCount:      tc,
		NonTerminalCount:   0,
		InitialState:       0,
		Action:             make([]Action, tc),
		GoTo:               make([]GoTo, 0),
		ErrorTrapperStates: []bool{false},
		ExpectedTerminals:  make([][]symbol.Symbol, 1),
	}
	tbl.setAction(0, termA, encodeReduce(1))
	// termB left as ActionError, eligible to collapse into the reduce default.

	defaults := Compress(tbl)
	if len(defaults) != 1 || defaults[0] != encodeReduce(1) {
		t.Fatalf("want state 0's default action to be reduce 1, got %v", defaults)
	}
	if tbl.getAction(0, termB).IsError() {
		t.Fatal("want the error cell collapsed into the default reduce action")
	}
}
