package main

import (
	"fmt"

	"github.com/nihei9/tabula"
	"github.com/spf13/pflag"
)

// algoFlag is a pflag.Value wrapping tabula.Algorithm so --algo validates
// its argument against the five supported algorithms instead of
// accepting an arbitrary string.
type algoFlag struct {
	value tabula.Algorithm
}

var _ pflag.Value = (*algoFlag)(nil)

func newAlgoFlag(def tabula.Algorithm) *algoFlag {
	return &algoFlag{value: def}
}

func (f *algoFlag) String() string {
	return string(f.value)
}

func (f *algoFlag) Set(s string) error {
	switch tabula.Algorithm(s) {
	case tabula.LR0, tabula.SLR1, tabula.LR1, tabula.LALR1, tabula.LL1:
		f.value = tabula.Algorithm(s)
		return nil
	default:
		return fmt.Errorf("unknown algorithm %q; want one of: lr0, slr1, lr1, lalr1, ll1", s)
	}
}

func (f *algoFlag) Type() string {
	return "algorithm"
}
