package table

import (
	"fmt"
	"strings"

	"github.com/nihei9/tabula/internal/grammar"
	"github.com/nihei9/tabula/internal/symbol"
)

// Report is an optional, off-by-default build diagnostic: one entry per
// state describing its shift/reduce/goto rows, plus the table-wide
// conflict count. Conflicts are not broken down per state, and an LL(1)
// table gets only the conflict count, with no state entries.
type Report struct {
	ConflictCount int
	States        []StateReport
}

type StateReport struct {
	Num     int
	Shifts  []string
	Reduces []string
	Gotos   []string
	Accept  bool
}

// GenerateReport walks the compiled table and a symbol table to build a
// human-readable description of every state; conflicts are counted for
// the whole table, not attributed to states.
func GenerateReport(t *Table, g *grammar.Grammar) *Report {
	r := &Report{ConflictCount: len(t.Conflicts)}

	symText := func(sym symbol.Symbol) string {
		if sym == symbol.EOF {
			return "<eof>"
		}
		text, ok := g.Symbols.ToText(sym)
		if !ok {
			return fmt.Sprintf("<%v>", sym)
		}
		return text
	}

	if t.Algorithm == LL1 {
		return r
	}

	for state := 0; state < t.StateCount; state++ {
		sr := StateReport{Num: state}
		for term := 0; term < t.TerminalCount; term++ {
			a := t.Action[state*t.TerminalCount+term]
			sym := symbol.Symbol(0)
			for _, s := range g.Symbols.TerminalSymbols() {
				if s.Num().Int() == term {
					sym = s
					break
				}
			}
			switch {
			case a.IsShift():
				sr.Shifts = append(sr.Shifts, fmt.Sprintf("shift %d on %s", a.ShiftState(), symText(sym)))
			case a.IsReduce():
				if a.ReduceProd() == t.StartProduction {
					sr.Accept = true
					continue
				}
				sr.Reduces = append(sr.Reduces, fmt.Sprintf("reduce %d on %s", a.ReduceProd(), symText(sym)))
			}
		}
		for nt := 0; nt < t.NonTerminalCount; nt++ {
			gt := t.GoTo[state*t.NonTerminalCount+nt]
			if gt.IsError() {
				continue
			}
			var sym symbol.Symbol
			for _, s := range g.Symbols.NonTerminalSymbols() {
				if s.Num().Int() == nt {
					sym = s
					break
				}
			}
			sr.Gotos = append(sr.Gotos, fmt.Sprintf("goto %d on %s", gt.State(), symText(sym)))
		}
		r.States = append(r.States, sr)
	}

	return r
}

// WriteText renders a Report as plain text in two sections, Conflicts
// (the count) and States (each state's rows).
func (r *Report) WriteText(w *strings.Builder) {
	fmt.Fprintf(w, "# Conflicts\n\n")
	if r.ConflictCount > 0 {
		fmt.Fprintf(w, "%d conflicts\n\n", r.ConflictCount)
	} else {
		fmt.Fprintf(w, "no conflicts\n\n")
	}

	fmt.Fprintf(w, "# States\n\n")
	for _, st := range r.States {
		fmt.Fprintf(w, "state %d\n", st.Num)
		for _, s := range st.Shifts {
			fmt.Fprintf(w, "    %s\n", s)
		}
		for _, s := range st.Reduces {
			fmt.Fprintf(w, "    %s\n", s)
		}
		for _, s := range st.Gotos {
			fmt.Fprintf(w, "    %s\n", s)
		}
		if st.Accept {
			fmt.Fprintf(w, "    accept on <eof>\n")
		}
		fmt.Fprintf(w, "\n")
	}
}
