package automaton

import (
	"sort"

	"github.com/nihei9/tabula/internal/grammar"
	"github.com/nihei9/tabula/internal/symbol"
)

// closureLR1 computes the canonical-LR(1) closure of a kernel: for every
// item [A -> α·Bβ, a], every production B -> γ is added as
// [B -> ·γ, b] for each b in FIRST(βa). Because adding a production can
// itself carry a dotted non-terminal earlier in its own RHS, lookaheads
// are propagated to a fixed point rather than computed in one pass.
func closureLR1(g *grammar.Grammar, kernel []Item, kernelLookaheads map[Item]map[symbol.Symbol]struct{}) ([]Item, map[Item]map[symbol.Symbol]struct{}) {
	lookaheads := map[Item]map[symbol.Symbol]struct{}{}
	var items []Item
	seen := map[Item]bool{}

	merge := func(it Item, syms map[symbol.Symbol]struct{}) bool {
		la, ok := lookaheads[it]
		if !ok {
			la = map[symbol.Symbol]struct{}{}
			lookaheads[it] = la
		}
		changed := false
		for s := range syms {
			if _, ok := la[s]; !ok {
				la[s] = struct{}{}
				changed = true
			}
		}
		return changed
	}

	var worklist []Item
	for _, it := range kernel {
		if !seen[it] {
			seen[it] = true
			items = append(items, it)
		}
		merge(it, kernelLookaheads[it])
		worklist = append(worklist, it)
	}

	for len(worklist) > 0 {
		it := worklist[0]
		worklist = worklist[1:]

		prod, ok := g.Productions.FindByID(it.Prod)
		if !ok || it.Dot >= len(prod.RHS) {
			continue
		}
		dotSym := prod.RHS[it.Dot]
		if !dotSym.IsNonTerminal() {
			continue
		}

		rest := prod.RHS[it.Dot+1:]
		restFirst, restNullable := g.FirstOfString(rest)

		for _, p := range g.Productions.FindByLHS(dotSym) {
			newItem := Item{Prod: p.ID, Dot: 0}
			if !seen[newItem] {
				seen[newItem] = true
				items = append(items, newItem)
			}

			add := map[symbol.Symbol]struct{}{}
			for s := range restFirst {
				add[s] = struct{}{}
			}
			if restNullable {
				for a := range lookaheads[it] {
					add[a] = struct{}{}
				}
			}

			if merge(newItem, add) {
				worklist = append(worklist, newItem)
			}
		}
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Prod != items[j].Prod {
			return string(items[i].Prod[:]) < string(items[j].Prod[:])
		}
		return items[i].Dot < items[j].Dot
	})
	return items, lookaheads
}

func gotoLR1(g *grammar.Grammar, items []Item, lookaheads map[Item]map[symbol.Symbol]struct{}, sym symbol.Symbol) ([]Item, map[Item]map[symbol.Symbol]struct{}) {
	var kernel []Item
	la := map[Item]map[symbol.Symbol]struct{}{}
	for _, it := range items {
		prod, ok := g.Productions.FindByID(it.Prod)
		if !ok || it.Dot >= len(prod.RHS) {
			continue
		}
		if prod.RHS[it.Dot] != sym {
			continue
		}
		newItem := Item{Prod: it.Prod, Dot: it.Dot + 1}
		kernel = append(kernel, newItem)
		la[newItem] = lookaheads[it]
	}
	return kernel, la
}

// canonicalKey distinguishes canonical-LR(1) states by core AND lookahead
// set, unlike the LR(0)/LALR(1) Core key which ignores lookaheads.
func canonicalKey(core *Core, items []Item, lookaheads map[Item]map[symbol.Symbol]struct{}) string {
	key := core.Key()
	for _, it := range items {
		key += "|" + lookaheadKey(lookaheads[it])
	}
	return key
}

// BuildLR1 constructs the canonical LR(1) automaton: every state is keyed
// by its core and its full per-item lookahead set, so two states sharing
// an LR(0) core but differing in lookahead remain distinct (this is what
// LALR(1) construction later merges).
func BuildLR1(g *grammar.Grammar) (*Automaton, error) {
	startItem := Item{Prod: startProdID(g), Dot: 0}
	eofSet := map[symbol.Symbol]struct{}{symbol.EOF: {}}

	a := &Automaton{}
	byKey := map[string]int{}

	type pending struct {
		num        int
		kernel     []Item
		lookaheads map[Item]map[symbol.Symbol]struct{}
	}
	var queue []pending

	register := func(kernel []Item, kernelLA map[Item]map[symbol.Symbol]struct{}) int {
		items, lookaheads := closureLR1(g, kernel, kernelLA)
		core := NewCore(kernel)
		key := canonicalKey(core, items, lookaheads)
		if num, ok := byKey[key]; ok {
			return num
		}
		st := &State{
			Num:        len(a.States),
			Core:       core,
			Items:      items,
			Lookaheads: lookaheads,
			Next:       map[symbol.Symbol]int{},
		}
		byKey[key] = st.Num
		a.States = append(a.States, st)
		queue = append(queue, pending{num: st.Num, kernel: kernel, lookaheads: lookaheads})
		return st.Num
	}

	a.Initial = register([]Item{startItem}, map[Item]map[symbol.Symbol]struct{}{startItem: eofSet})

	for i := 0; i < len(queue); i++ {
		p := queue[i]
		st := a.States[p.num]

		nextSyms := outgoingSymbols(g, st.Items)
		for _, sym := range nextSyms {
			kernel, kernelLA := gotoLR1(g, st.Items, st.Lookaheads, sym)
			if len(kernel) == 0 {
				continue
			}
			target := register(kernel, kernelLA)
			a.States[p.num].Next[sym] = target
		}
	}

	finalizeReducibility(g, a)
	return a, nil
}

func finalizeReducibility(g *grammar.Grammar, a *Automaton) {
	for _, st := range a.States {
		seenProd := map[grammar.ID]bool{}
		for _, it := range st.Items {
			prod, ok := g.Productions.FindByID(it.Prod)
			if !ok {
				continue
			}
			if it.Dot == len(prod.RHS) && !seenProd[it.Prod] {
				seenProd[it.Prod] = true
				st.Reducible = append(st.Reducible, it.Prod)
			}
			if it.Dot < len(prod.RHS) && prod.RHS[it.Dot] == g.Error {
				st.IsErrorTrapper = true
			}
		}
	}
}
