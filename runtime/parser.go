package runtime

import (
	"fmt"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/nihei9/tabula/internal/symbol"
	"github.com/nihei9/tabula/tabulaerr"
)

// recoveryShiftThreshold is how many consecutive successful shifts end
// panic-mode: three shifts of lookahead that the recovery state accepts
// are taken as evidence the parse is back on track.
const recoveryShiftThreshold = 3

// Parser drives a compiled Grammar over tokens pulled from a Lexer,
// invoking a SemanticAction at each shift/reduce/accept/recovery step.
// It keeps one stack, of state numbers, backed by gods' arraylist.List.
// Semantic values are kept by the SemanticAction (SyntaxTreeAction has
// its own frame stack), and no stack of token locations is kept.
type Parser struct {
	gram   Grammar
	lex    Lexer
	action SemanticAction

	stateStack *arraylist.List

	onError    bool
	shiftCount int

	syntaxErrors []*tabulaerr.ParseError
}

func NewParser(gram Grammar, lex Lexer, action SemanticAction) *Parser {
	p := &Parser{gram: gram, lex: lex, action: action, stateStack: arraylist.New()}
	p.stateStack.Add(gram.InitialState())
	return p
}

func (p *Parser) SyntaxErrors() []*tabulaerr.ParseError {
	return p.syntaxErrors
}

func (p *Parser) topState() int {
	v, _ := p.stateStack.Get(p.stateStack.Size() - 1)
	return v.(int)
}

// Parse runs the shift-reduce loop to completion: acceptance, an
// unrecoverable syntax error, or a lexer error.
func (p *Parser) Parse() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}

	for {
		term := p.gram.EOFSymbol()
		if !tok.EOF() {
			term = tok.Terminal()
		}

		act := p.gram.Action(p.topState(), term)
		switch {
		case act.IsShift():
			recovered := false
			if p.onError {
				p.shiftCount++
				if p.shiftCount >= recoveryShiftThreshold {
					p.onError = false
					recovered = true
				}
			}
			p.stateStack.Add(act.ShiftState())
			p.action.Shift(tok, recovered)

			if tok.EOF() {
				return fmt.Errorf("unexpected end of input")
			}
			tok, err = p.lex.Next()
			if err != nil {
				return err
			}

		case act.IsReduce():
			prodNum := int(act.ReduceProd())
			if prodNum == p.gram.StartProduction() {
				p.action.Accept()
				return nil
			}

			n := p.gram.AlternativeSymbolCount(prodNum)
			for i := 0; i < n; i++ {
				p.stateStack.Remove(p.stateStack.Size() - 1)
			}
			lhsNum := p.gram.LHS(prodNum)
			gt := p.gram.GoTo(p.topState(), nonTerminalSymbol(lhsNum))
			if gt.IsError() {
				return fmt.Errorf("internal error: no goto for non-terminal %d from state %d", lhsNum, p.topState())
			}
			p.stateStack.Add(gt.State())

			recovered := false
			if p.onError && p.gram.IsRecoverProduction(prodNum) {
				p.onError = false
				recovered = true
			}
			p.action.Reduce(prodNum, recovered)

		default:
			row, col := tok.Position()
			recoverable := p.trapError()
			p.syntaxErrors = append(p.syntaxErrors, tabulaerr.NewParseError(
				"unexpected token", row, col, term, string(tok.Lexeme()),
				p.gram.ExpectedTerminals(p.topState()), recoverable,
			))

			if !recoverable {
				p.action.MissError(tok)
				return &tabulaerr.ParseErrors{Errors: p.syntaxErrors}
			}

			popped := 0
			for !p.gram.IsErrorTrapperState(p.topState()) {
				p.stateStack.Remove(p.stateStack.Size() - 1)
				popped++
			}
			errState := p.gram.Action(p.topState(), p.gram.ErrorSymbol())
			p.stateStack.Add(errState.ShiftState())
			p.action.TrapAndShiftError(tok, popped)

			p.onError = true
			p.shiftCount = 0

			if tok.EOF() {
				return fmt.Errorf("unexpected end of input during error recovery")
			}
			tok, err = p.lex.Next()
			if err != nil {
				return err
			}
		}
	}
}

// trapError reports whether some state already on the stack is an
// error-trapper state — i.e. whether panic-mode recovery is even
// possible from here.
func (p *Parser) trapError() bool {
	for i := p.stateStack.Size() - 1; i >= 0; i-- {
		v, _ := p.stateStack.Get(i)
		if p.gram.IsErrorTrapperState(v.(int)) {
			return true
		}
	}
	return false
}

func nonTerminalSymbol(num int) symbol.Symbol {
	// Non-terminal symbols are numbered starting at 2 (1 is the
	// augmented start symbol); the packed Symbol for a non-terminal has
	// no kind bit set, so its numeric value equals its Num.
	return symbol.Symbol(num)
}
