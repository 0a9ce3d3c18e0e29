package table

import "github.com/nihei9/tabula/internal/symbol"

// Compress runs the Table Compressor pass: default-action detection (a
// state with no shifts and exactly one distinct reduce action, other than
// the accepting reduce of StartProduction, has its error cells filled with
// that reduce, which becomes its default entry) and unreachable-state
// pruning. It mutates t in place and returns the
// per-state (post-renumbering) default actions it found, mirroring
// compressor.go's row-level dedup granularity rather than a single
// table-wide default.
func Compress(t *Table) []Action {
	defaults := make([]Action, t.StateCount)
	if t.Algorithm == LL1 {
		return defaults
	}

	for state := 0; state < t.StateCount; state++ {
		counts := map[Action]int{}
		errorCount := 0
		hasShift := false
		for term := 0; term < t.TerminalCount; term++ {
			a := t.Action[state*t.TerminalCount+term]
			if a.IsReduce() {
				counts[a]++
			} else if a.IsError() {
				errorCount++
			} else if a.IsShift() {
				hasShift = true
			}
		}

		var best Action
		bestCount := 0
		for a, n := range counts {
			if n > bestCount {
				best, bestCount = a, n
			}
		}
		// Only collapse error cells into a state's sole reduce action; a
		// state with shifts, several distinct reduces, or the accepting
		// reduce keeps its explicit rows.
		if len(counts) == 1 && !hasShift && best.ReduceProd() != t.StartProduction && errorCount > 0 {
			defaults[state] = best
			for term := 0; term < t.TerminalCount; term++ {
				idx := state*t.TerminalCount + term
				if t.Action[idx].IsError() {
					t.Action[idx] = best
				}
			}
		}
	}

	return pruneUnreachable(t, defaults)
}

// pruneUnreachable finds every state unreachable from InitialState and
// renumbers the table to a dense prefix over the survivors: Action/GoTo
// are rebuilt with every shift/goto target remapped through the old-to-new
// state map, and ErrorTrapperStates/ExpectedTerminals/defaults follow the
// same remapping.
func pruneUnreachable(t *Table, defaults []Action) []Action {
	reachable := reachableStates(t)

	oldToNew := make([]int, t.StateCount)
	newCount := 0
	for old, ok := range reachable {
		if ok {
			oldToNew[old] = newCount
			newCount++
		} else {
			oldToNew[old] = -1
		}
	}
	if newCount == t.StateCount {
		return defaults
	}

	remapAction := func(a Action) Action {
		if a.IsShift() {
			return encodeShift(oldToNew[a.ShiftState()])
		}
		return a
	}
	remapGoTo := func(g GoTo) GoTo {
		if g.IsError() {
			return g
		}
		return encodeGoTo(oldToNew[g.State()])
	}

	newAction := make([]Action, newCount*t.TerminalCount)
	newGoTo := make([]GoTo, newCount*t.NonTerminalCount)
	newTrapper := make([]bool, newCount)
	newExpected := make([][]symbol.Symbol, newCount)
	newDefaults := make([]Action, newCount)

	for old := 0; old < t.StateCount; old++ {
		if !reachable[old] {
			continue
		}
		nw := oldToNew[old]
		for term := 0; term < t.TerminalCount; term++ {
			newAction[nw*t.TerminalCount+term] = remapAction(t.Action[old*t.TerminalCount+term])
		}
		for nt := 0; nt < t.NonTerminalCount; nt++ {
			newGoTo[nw*t.NonTerminalCount+nt] = remapGoTo(t.GoTo[old*t.NonTerminalCount+nt])
		}
		newTrapper[nw] = t.ErrorTrapperStates[old]
		newExpected[nw] = t.ExpectedTerminals[old]
		newDefaults[nw] = defaults[old]
	}

	for _, c := range t.Conflicts {
		switch conflict := c.(type) {
		case *ShiftReduceConflict:
			conflict.State = oldToNew[conflict.State]
			conflict.NextState = oldToNew[conflict.NextState]
		case *ReduceReduceConflict:
			conflict.State = oldToNew[conflict.State]
		}
	}

	t.StateCount = newCount
	t.InitialState = oldToNew[t.InitialState]
	t.Action = newAction
	t.GoTo = newGoTo
	t.ErrorTrapperStates = newTrapper
	t.ExpectedTerminals = newExpected

	return newDefaults
}

func reachableStates(t *Table) []bool {
	reachable := make([]bool, t.StateCount)
	reachable[t.InitialState] = true
	worklist := []int{t.InitialState}
	for len(worklist) > 0 {
		s := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		for term := 0; term < t.TerminalCount; term++ {
			a := t.Action[s*t.TerminalCount+term]
			if a.IsShift() {
				target := a.ShiftState()
				if !reachable[target] {
					reachable[target] = true
					worklist = append(worklist, target)
				}
			}
		}
		for nt := 0; nt < t.NonTerminalCount; nt++ {
			g := t.GoTo[s*t.NonTerminalCount+nt]
			if !g.IsError() {
				target := g.State()
				if !reachable[target] {
					reachable[target] = true
					worklist = append(worklist, target)
				}
			}
		}
	}
	return reachable
}
