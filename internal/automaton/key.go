package automaton

import (
	"sort"

	"github.com/cnf/structhash"
	"github.com/nihei9/tabula/internal/grammar"
	"github.com/nihei9/tabula/internal/symbol"
)

// Item is a dotted production: production p with the dot before RHS[Dot]
// (Dot == len(RHS) means the item is reducible).
type Item struct {
	Prod grammar.ID
	Dot  int
}

// coreEntry is the structhash-friendly, string-keyed projection of an Item
// used to compute a canonical, content-addressed identity for a set of
// items — the same content-addressing idea the grammar package uses for
// production identity, here expressed through a real hashing library
// instead of a hand-rolled byte concatenation.
type coreEntry struct {
	Prod string
	Dot  int
}

// Core is the kernel of a state: its items, in canonical (sorted) order,
// hashed into a stable key so two independently-built states with the
// same kernel always collide to the same map key.
type Core struct {
	entries []coreEntry
	key     string
}

func NewCore(items []Item) *Core {
	entries := make([]coreEntry, len(items))
	for i, it := range items {
		entries[i] = coreEntry{Prod: string(it.Prod[:]), Dot: it.Dot}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Prod != entries[j].Prod {
			return entries[i].Prod < entries[j].Prod
		}
		return entries[i].Dot < entries[j].Dot
	})
	return &Core{entries: entries, key: string(structhash.Sha1(entries, 1))}
}

func (c *Core) Key() string {
	return c.key
}

// lookaheadKey canonicalizes a per-item lookahead set for hashing
// alongside a Core when building canonical LR(1)/LALR(1) state identity.
func lookaheadKey(symbols map[symbol.Symbol]struct{}) string {
	nums := make([]int, 0, len(symbols))
	for s := range symbols {
		nums = append(nums, int(s))
	}
	sort.Ints(nums)
	return string(structhash.Sha1(nums, 1))
}
