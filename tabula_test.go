package tabula

import (
	"testing"

	"github.com/nihei9/tabula/internal/symbol"
	"github.com/nihei9/tabula/runtime"
)

type fakeToken struct {
	sym    symbol.Symbol
	lexeme string
	eof    bool
}

func (t *fakeToken) Terminal() symbol.Symbol { return t.sym }
func (t *fakeToken) Lexeme() []byte          { return []byte(t.lexeme) }
func (t *fakeToken) EOF() bool               { return t.eof }
func (t *fakeToken) Invalid() bool           { return false }
func (t *fakeToken) Position() (int, int)    { return 0, 0 }

type fakeLexer struct {
	toks []*fakeToken
	pos  int
}

func (l *fakeLexer) Next() (runtime.Token, error) {
	if l.pos >= len(l.toks) {
		return &fakeToken{eof: true}, nil
	}
	t := l.toks[l.pos]
	l.pos++
	return t, nil
}

func exprSpec() *Spec {
	return &Spec{
		Name:  "expr",
		Start: "E",
		Productions: []ProductionSpec{
			{LHS: "E", Alternatives: [][]string{{"E", "+", "T"}, {"T"}}},
			{LHS: "T", Alternatives: [][]string{{"T", "*", "F"}, {"F"}}},
			{LHS: "F", Alternatives: [][]string{{"(", "E", ")"}, {"id"}}},
		},
		Precedence: []PrecedenceGroupSpec{
			{Assoc: "left", Symbols: []string{"+"}},
			{Assoc: "left", Symbols: []string{"*"}},
		},
	}
}

func TestBuildAndParseExpr(t *testing.T) {
	tab, err := Build(exprSpec(), Options{Algorithm: LALR1, Compress: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tab.Conflicts()) != 0 {
		t.Fatalf("want no conflicts, got %d", len(tab.Conflicts()))
	}

	// id + id * id
	names := []string{"id", "+", "id", "*", "id"}
	lex := &fakeLexer{}
	for _, n := range names {
		sym, ok := tab.ToSymbol(n)
		if !ok {
			t.Fatalf("symbol %q not found", n)
		}
		lex.toks = append(lex.toks, &fakeToken{sym: sym, lexeme: n})
	}

	action := runtime.NewSyntaxTreeAction(
		runtime.NewTableGrammar(tab.Underlying()),
		func(num int) string { return tab.TerminalName(num) },
		func(num int) string { return tab.NonTerminalName(num) },
	)

	if err := tab.Parse(lex, action); err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if action.AST() == nil {
		t.Fatal("want a non-nil AST after a successful parse")
	}
	if action.AST().KindName != "E" {
		t.Fatalf("want root E, got %s", action.AST().KindName)
	}
}

func TestParseDoesNotAcceptBeforeConsumingAllInput(t *testing.T) {
	tab, err := Build(exprSpec(), Options{Algorithm: LALR1, Compress: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// (id + id) * id reduces E -> E+T once inside the parentheses, well
	// before the closing paren, '*', and the final id are consumed. A
	// parser that mistakes that reduction for the augmented production
	// would accept right there instead of finishing the parse.
	names := []string{"(", "id", "+", "id", ")", "*", "id"}
	lex := &fakeLexer{}
	for _, n := range names {
		sym, ok := tab.ToSymbol(n)
		if !ok {
			t.Fatalf("symbol %q not found", n)
		}
		lex.toks = append(lex.toks, &fakeToken{sym: sym, lexeme: n})
	}

	action := runtime.NewSyntaxTreeAction(
		runtime.NewTableGrammar(tab.Underlying()),
		func(num int) string { return tab.TerminalName(num) },
		func(num int) string { return tab.NonTerminalName(num) },
	)

	if err := tab.Parse(lex, action); err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if lex.pos != len(lex.toks) {
		t.Fatalf("parse accepted early: consumed %d of %d tokens", lex.pos, len(lex.toks))
	}
	if action.AST() == nil || action.AST().KindName != "E" {
		t.Fatal("want a full E parse tree rooted at E")
	}
}

func TestBuildAllAlgorithms(t *testing.T) {
	for _, algo := range []Algorithm{LR0, SLR1, LR1, LALR1, LL1} {
		algo := algo
		t.Run(string(algo), func(t *testing.T) {
			_, err := Build(exprSpec(), Options{Algorithm: algo})
			if err != nil {
				t.Fatalf("unexpected error building with %s: %v", algo, err)
			}
		})
	}
}

func TestParseReportsSyntaxError(t *testing.T) {
	tab, err := Build(exprSpec(), Options{Algorithm: LALR1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	plusSym, _ := tab.ToSymbol("+")
	lex := &fakeLexer{toks: []*fakeToken{{sym: plusSym, lexeme: "+"}}}

	action := runtime.NewSyntaxTreeAction(
		runtime.NewTableGrammar(tab.Underlying()),
		func(num int) string { return tab.TerminalName(num) },
		func(num int) string { return tab.NonTerminalName(num) },
	)

	if err := tab.Parse(lex, action); err == nil {
		t.Fatal("want an error parsing a bare '+'")
	}
}
