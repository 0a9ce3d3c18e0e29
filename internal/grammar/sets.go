package grammar

import "github.com/nihei9/tabula/internal/symbol"

// nullableSet records which non-terminals can derive the empty string.
type nullableSet map[symbol.Symbol]bool

func genNullableSet(prods *ProductionSet) nullableSet {
	n := nullableSet{}
	for {
		changed := false
		for _, p := range prods.All() {
			if n[p.LHS] {
				continue
			}
			if p.IsEmpty() {
				n[p.LHS] = true
				changed = true
				continue
			}
			allNullable := true
			for _, s := range p.RHS {
				if s.IsTerminal() || !n[s] {
					allNullable = false
					break
				}
			}
			if allNullable {
				n[p.LHS] = true
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return n
}

// firstSet is FIRST(A) for every non-terminal A: the set of terminals that
// can begin a string derived from A, plus whether A is nullable.
type firstEntry struct {
	symbols  map[symbol.Symbol]struct{}
	nullable bool
}

type firstSet struct {
	entries map[symbol.Symbol]*firstEntry
}

func genFirstSet(prods *ProductionSet, nullable nullableSet) *firstSet {
	fs := &firstSet{entries: map[symbol.Symbol]*firstEntry{}}
	entry := func(sym symbol.Symbol) *firstEntry {
		e, ok := fs.entries[sym]
		if !ok {
			e = &firstEntry{symbols: map[symbol.Symbol]struct{}{}}
			fs.entries[sym] = e
		}
		return e
	}

	for {
		changed := false
		for _, p := range prods.All() {
			lhsEntry := entry(p.LHS)
			if nullable[p.LHS] && !lhsEntry.nullable {
				lhsEntry.nullable = true
				changed = true
			}

			for _, s := range p.RHS {
				if s.IsTerminal() {
					if _, ok := lhsEntry.symbols[s]; !ok {
						lhsEntry.symbols[s] = struct{}{}
						changed = true
					}
					break
				}

				rhsEntry := entry(s)
				for sym := range rhsEntry.symbols {
					if _, ok := lhsEntry.symbols[sym]; !ok {
						lhsEntry.symbols[sym] = struct{}{}
						changed = true
					}
				}
				if !rhsEntry.nullable {
					break
				}
			}
		}
		if !changed {
			break
		}
	}

	return fs
}

func (fs *firstSet) find(sym symbol.Symbol) *firstEntry {
	if sym.IsTerminal() {
		return &firstEntry{symbols: map[symbol.Symbol]struct{}{sym: {}}}
	}
	e, ok := fs.entries[sym]
	if !ok {
		return &firstEntry{symbols: map[symbol.Symbol]struct{}{}}
	}
	return e
}

// findString computes FIRST of a string of symbols (used while computing
// FOLLOW sets and while building LR(1)/LALR(1) lookaheads): the terminals
// that can begin the string, and whether the whole string is nullable.
func (fs *firstSet) findString(str []symbol.Symbol) *firstEntry {
	result := &firstEntry{symbols: map[symbol.Symbol]struct{}{}, nullable: true}
	for _, sym := range str {
		e := fs.find(sym)
		for s := range e.symbols {
			result.symbols[s] = struct{}{}
		}
		if !e.nullable {
			result.nullable = false
			break
		}
	}
	return result
}

// followEntry is FOLLOW(A): the terminals that can appear immediately
// after A in some derivation, plus whether EOF can follow (seeded on the
// start symbol and propagated to every non-terminal that can end it).
type followEntry struct {
	symbols map[symbol.Symbol]struct{}
	eof     bool
}

type followSet struct {
	entries map[symbol.Symbol]*followEntry
}

func genFollowSet(prods *ProductionSet, start symbol.Symbol, first *firstSet) *followSet {
	fo := &followSet{entries: map[symbol.Symbol]*followEntry{}}
	entry := func(sym symbol.Symbol) *followEntry {
		e, ok := fo.entries[sym]
		if !ok {
			e = &followEntry{symbols: map[symbol.Symbol]struct{}{}}
			fo.entries[sym] = e
		}
		return e
	}
	entry(start).eof = true

	for {
		changed := false
		for _, p := range prods.All() {
			for i, s := range p.RHS {
				if !s.IsNonTerminal() {
					continue
				}
				sEntry := entry(s)
				rest := p.RHS[i+1:]
				fe := first.findString(rest)
				for sym := range fe.symbols {
					if _, ok := sEntry.symbols[sym]; !ok {
						sEntry.symbols[sym] = struct{}{}
						changed = true
					}
				}
				if fe.nullable {
					lhsEntry := entry(p.LHS)
					for sym := range lhsEntry.symbols {
						if _, ok := sEntry.symbols[sym]; !ok {
							sEntry.symbols[sym] = struct{}{}
							changed = true
						}
					}
					if lhsEntry.eof && !sEntry.eof {
						sEntry.eof = true
						changed = true
					}
				}
			}
		}
		if !changed {
			break
		}
	}

	return fo
}

func (fo *followSet) find(sym symbol.Symbol) *followEntry {
	e, ok := fo.entries[sym]
	if !ok {
		return &followEntry{symbols: map[symbol.Symbol]struct{}{}}
	}
	return e
}
