package grammar

import (
	"crypto/sha256"
	"sort"

	"github.com/nihei9/tabula/internal/symbol"
)

// ID content-addresses a production by its LHS and RHS, so two grammars
// describing the same rule always produce the same identity regardless of
// declaration order.
type ID [32]byte

func newID(lhs symbol.Symbol, rhs []symbol.Symbol) ID {
	h := sha256.New()
	b := make([]byte, 2)
	write := func(s symbol.Symbol) {
		b[0] = byte(uint16(s) >> 8)
		b[1] = byte(uint16(s) & 0x00ff)
		h.Write(b)
	}
	write(lhs)
	for _, s := range rhs {
		write(s)
	}
	var id ID
	copy(id[:], h.Sum(nil))
	return id
}

// Num is a production's position in declaration order, starting at 1;
// 0 is never a valid production and 1 is reserved for the augmented
// start production S' -> S.
type Num int

const (
	NumNil   = Num(0)
	NumStart = Num(1)
)

func (n Num) Int() int {
	return int(n)
}

type Production struct {
	ID   ID
	Num  Num
	LHS  symbol.Symbol
	RHS  []symbol.Symbol
	Prec *Precedence

	// Recover marks a production whose RHS contains the error symbol;
	// reducing it exits panic-mode recovery immediately.
	Recover bool
}

func (p *Production) IsEmpty() bool {
	return len(p.RHS) == 0
}

type ProductionSet struct {
	byLHS map[symbol.Symbol][]*Production
	byID  map[ID]*Production
	all   []*Production
	next  Num
}

func NewProductionSet() *ProductionSet {
	return &ProductionSet{
		byLHS: map[symbol.Symbol][]*Production{},
		byID:  map[ID]*Production{},
		next:  NumStart,
	}
}

// Append interns a production, returning the existing one (with its
// existing Num and any non-nil Prec carried over) if an identical LHS/RHS
// pair was already added.
func (s *ProductionSet) Append(lhs symbol.Symbol, rhs []symbol.Symbol, prec *Precedence, recover bool) (*Production, bool) {
	id := newID(lhs, rhs)
	if p, ok := s.byID[id]; ok {
		return p, true
	}
	p := &Production{
		ID:      id,
		Num:     s.next,
		LHS:     lhs,
		RHS:     rhs,
		Prec:    prec,
		Recover: recover,
	}
	s.next++
	s.byID[id] = p
	s.byLHS[lhs] = append(s.byLHS[lhs], p)
	s.all = append(s.all, p)
	return p, false
}

func (s *ProductionSet) FindByID(id ID) (*Production, bool) {
	p, ok := s.byID[id]
	return p, ok
}

func (s *ProductionSet) FindByLHS(lhs symbol.Symbol) []*Production {
	return s.byLHS[lhs]
}

func (s *ProductionSet) All() []*Production {
	all := make([]*Production, len(s.all))
	copy(all, s.all)
	sort.Slice(all, func(i, j int) bool { return all[i].Num < all[j].Num })
	return all
}
