package automaton

import (
	"github.com/nihei9/tabula/internal/grammar"
	"github.com/nihei9/tabula/internal/symbol"
)

// BuildLALR constructs the LALR(1) automaton by building the full
// canonical LR(1) collection and then merging states that share an
// LR(0) core, unioning their per-item lookahead sets. This is the
// canonical-then-merge method (distinct from, and heavier than, the
// lookahead-propagation algorithm some LALR builders run directly on
// the LR(0) automaton), chosen because it is the most direct way to
// get a state graph that is provably identical in shape to the LR(0)
// automaton while still carrying genuine LR(1) lookaheads.
func BuildLALR(g *grammar.Grammar) (*Automaton, error) {
	canon, err := BuildLR1(g)
	if err != nil {
		return nil, err
	}

	var order []string
	groups := map[string][]int{}
	for _, st := range canon.States {
		key := st.Core.Key()
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], st.Num)
	}

	mergedNum := map[string]int{}
	for i, key := range order {
		mergedNum[key] = i
	}
	canonToMerged := make([]int, len(canon.States))
	for _, key := range order {
		for _, n := range groups[key] {
			canonToMerged[n] = mergedNum[key]
		}
	}

	a := &Automaton{
		States:  make([]*State, len(order)),
		Initial: canonToMerged[canon.Initial],
	}

	for i, key := range order {
		members := groups[key]
		first := canon.States[members[0]]

		lookaheads := map[Item]map[symbol.Symbol]struct{}{}
		for _, it := range first.Items {
			union := map[symbol.Symbol]struct{}{}
			for _, m := range members {
				for s := range canon.States[m].Lookaheads[it] {
					union[s] = struct{}{}
				}
			}
			lookaheads[it] = union
		}

		next := map[symbol.Symbol]int{}
		for sym, target := range first.Next {
			next[sym] = canonToMerged[target]
		}

		errTrapper := false
		var reducible []grammar.ID
		seen := map[grammar.ID]bool{}
		for _, m := range members {
			ms := canon.States[m]
			if ms.IsErrorTrapper {
				errTrapper = true
			}
			for _, id := range ms.Reducible {
				if !seen[id] {
					seen[id] = true
					reducible = append(reducible, id)
				}
			}
		}

		a.States[i] = &State{
			Num:            i,
			Core:           first.Core,
			Items:          first.Items,
			Lookaheads:     lookaheads,
			Next:           next,
			Reducible:      reducible,
			IsErrorTrapper: errTrapper,
		}
	}

	return a, nil
}
