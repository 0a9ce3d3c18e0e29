package grammar

import "fmt"

// Cause is a sentinel identifying why grammar construction failed,
// mirroring the teacher's small catalogue of named semantic errors
// rather than a single freeform message.
type Cause string

const (
	CauseEmptyGrammar        = Cause("grammar has no productions")
	CauseNoStart             = Cause("grammar has no start symbol")
	CauseUndeclaredSymbol    = Cause("undeclared symbol")
	CauseDuplicateProduction = Cause("duplicate production")
	CauseUnusedProduction    = Cause("unreachable production")
	CauseAmbiguousPrecedence = Cause("symbol declared in more than one precedence group")
)

// Error reports a single grammar-construction fault, with enough context
// (the offending name and, where relevant, a production number) to locate
// it in the source grammar.
type Error struct {
	Cause   Cause
	Detail  string
	ProdNum Num
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return string(e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Cause, e.Detail)
}

// Errors collects every fault found while building a grammar; a grammar
// is rejected as soon as one exists; they are batched rather than
// returned one at a time so a caller can report everything in one pass.
type Errors []*Error

func (es Errors) Error() string {
	if len(es) == 1 {
		return es[0].Error()
	}
	return fmt.Sprintf("%d grammar errors, first: %s", len(es), es[0].Error())
}
