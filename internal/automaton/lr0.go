// Package automaton implements the Item & State Algebra: LR(0), canonical
// LR(1), LALR(1) (canonical-then-merge), and SLR(1) item-set/state-graph
// construction.
package automaton

import (
	"sort"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/nihei9/tabula/internal/grammar"
	"github.com/nihei9/tabula/internal/symbol"
)

// State is one node of a canonical collection: a kernel (Core), its full
// closure (Items), the transition function out of it (Next), and the set
// of productions reducible within it.
type State struct {
	Num            int
	Core           *Core
	Items          []Item
	Lookaheads     map[Item]map[symbol.Symbol]struct{} // nil for LR(0) states
	Next           map[symbol.Symbol]int
	Reducible      []grammar.ID
	IsErrorTrapper bool
}

// Automaton is a canonical collection of states plus its transition graph.
type Automaton struct {
	States  []*State
	Initial int
}

func closureLR0(g *grammar.Grammar, kernel []Item) []Item {
	seen := map[Item]bool{}
	var items []Item
	worklist := arraylist.New()
	for _, it := range kernel {
		if !seen[it] {
			seen[it] = true
			items = append(items, it)
			worklist.Add(it)
		}
	}

	for !worklist.Empty() {
		v, _ := worklist.Get(worklist.Size() - 1)
		worklist.Remove(worklist.Size() - 1)
		it := v.(Item)

		prod, ok := g.Productions.FindByID(it.Prod)
		if !ok || it.Dot >= len(prod.RHS) {
			continue
		}
		dotSym := prod.RHS[it.Dot]
		if !dotSym.IsNonTerminal() {
			continue
		}
		for _, p := range g.Productions.FindByLHS(dotSym) {
			newItem := Item{Prod: p.ID, Dot: 0}
			if !seen[newItem] {
				seen[newItem] = true
				items = append(items, newItem)
				worklist.Add(newItem)
			}
		}
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Prod != items[j].Prod {
			return string(items[i].Prod[:]) < string(items[j].Prod[:])
		}
		return items[i].Dot < items[j].Dot
	})
	return items
}

// gotoLR0 computes the kernel reached from items on sym.
func gotoLR0(g *grammar.Grammar, items []Item, sym symbol.Symbol) []Item {
	var kernel []Item
	for _, it := range items {
		prod, ok := g.Productions.FindByID(it.Prod)
		if !ok || it.Dot >= len(prod.RHS) {
			continue
		}
		if prod.RHS[it.Dot] != sym {
			continue
		}
		kernel = append(kernel, Item{Prod: it.Prod, Dot: it.Dot + 1})
	}
	return kernel
}

// BuildLR0 constructs the canonical LR(0) automaton via BFS over kernels,
// keyed by their content-addressed Core so structurally identical states
// are merged as they are discovered.
func BuildLR0(g *grammar.Grammar) (*Automaton, error) {
	startItem := Item{Prod: startProdID(g), Dot: 0}
	initialKernel := []Item{startItem}

	a := &Automaton{}
	byKey := map[string]int{}

	worklist := arraylist.New()
	register := func(kernel []Item) int {
		core := NewCore(kernel)
		if num, ok := byKey[core.Key()]; ok {
			return num
		}
		items := closureLR0(g, kernel)
		st := &State{
			Num:   len(a.States),
			Core:  core,
			Items: items,
			Next:  map[symbol.Symbol]int{},
		}
		byKey[core.Key()] = st.Num
		a.States = append(a.States, st)
		worklist.Add(st.Num)
		return st.Num
	}

	a.Initial = register(initialKernel)

	for !worklist.Empty() {
		v, _ := worklist.Get(0)
		worklist.Remove(0)
		stNum := v.(int)
		st := a.States[stNum]

		nextSyms := outgoingSymbols(g, st.Items)
		for _, sym := range nextSyms {
			kernel := gotoLR0(g, st.Items, sym)
			if len(kernel) == 0 {
				continue
			}
			target := register(kernel)
			a.States[stNum].Next[sym] = target
		}
	}

	for _, st := range a.States {
		for _, it := range st.Items {
			prod, ok := g.Productions.FindByID(it.Prod)
			if !ok {
				continue
			}
			if it.Dot == len(prod.RHS) {
				st.Reducible = append(st.Reducible, it.Prod)
			}
			if it.Dot < len(prod.RHS) && prod.RHS[it.Dot] == g.Error {
				st.IsErrorTrapper = true
			}
		}
	}

	return a, nil
}

func startProdID(g *grammar.Grammar) grammar.ID {
	for _, p := range g.Productions.FindByLHS(g.Start) {
		return p.ID
	}
	panic("grammar has no augmented start production")
}

func outgoingSymbols(g *grammar.Grammar, items []Item) []symbol.Symbol {
	seen := map[symbol.Symbol]bool{}
	var syms []symbol.Symbol
	for _, it := range items {
		prod, ok := g.Productions.FindByID(it.Prod)
		if !ok || it.Dot >= len(prod.RHS) {
			continue
		}
		sym := prod.RHS[it.Dot]
		if !seen[sym] {
			seen[sym] = true
			syms = append(syms, sym)
		}
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	return syms
}
