package runtime

import (
	"fmt"
	"io"
)

// SemanticAction is the pluggable callback contract the parse runtime
// drives: one call per shift, reduce, accept, and error-recovery event.
// A caller wanting an AST/CST gets one built in for free via
// NewSyntaxTreeAction; anything else (direct evaluation, a custom IR
// builder) implements this interface itself.
type SemanticAction interface {
	// Shift runs when the driver shifts tok onto the state stack.
	// recovered is true when this shift is the one that carries the
	// driver out of panic-mode.
	Shift(tok Token, recovered bool)

	// Reduce runs when the driver reduces prodNum's RHS to its LHS.
	Reduce(prodNum int, recovered bool)

	// Accept runs once, when the driver accepts the input.
	Accept()

	// TrapAndShiftError runs when the driver traps a syntax error and
	// shifts the error symbol onto the state stack. popped is how many
	// stack frames were discarded finding a recovery state.
	TrapAndShiftError(cause Token, popped int)

	// MissError runs when the driver cannot find any state to recover
	// into; parsing stops after this call.
	MissError(cause Token)
}

var _ SemanticAction = (*SyntaxTreeAction)(nil)

// Node is one AST or CST node built by SyntaxTreeAction.
type Node struct {
	KindName string
	Text     string
	Row      int
	Col      int
	Children []*Node
	Error    bool
}

// PrintTree renders a Node tree as a ruled ASCII tree, for debugging a
// grammar before real semantic actions exist.
func PrintTree(w io.Writer, node *Node) {
	printTree(w, node, "", "")
}

func printTree(w io.Writer, node *Node, ruledLine, childPrefix string) {
	if node == nil {
		return
	}
	switch {
	case node.Error:
		fmt.Fprintf(w, "%s!%s\n", ruledLine, node.KindName)
	case node.Text != "":
		fmt.Fprintf(w, "%s%s %#v\n", ruledLine, node.KindName, node.Text)
	default:
		fmt.Fprintf(w, "%s%s\n", ruledLine, node.KindName)
	}

	n := len(node.Children)
	for i, child := range node.Children {
		line, prefix := "├─ ", "│  "
		if i == n-1 {
			line, prefix = "└─ ", "   "
		}
		printTree(w, child, childPrefix+line, childPrefix+prefix)
	}
}

type semanticFrame struct {
	ast *Node
	cst *Node
}

type semanticStack struct {
	frames []*semanticFrame
}

func (s *semanticStack) push(f *semanticFrame) {
	s.frames = append(s.frames, f)
}

func (s *semanticStack) pop(n int) []*semanticFrame {
	fs := s.frames[len(s.frames)-n:]
	s.frames = s.frames[:len(s.frames)-n]
	return fs
}

// nameEpsilon marks a CST node synthesized for an epsilon (empty-RHS)
// reduction; the AST elides these by simply having no children.
const nameEpsilon = "ε"

// SyntaxTreeActionOption configures NewSyntaxTreeAction.
type SyntaxTreeActionOption func(*SyntaxTreeAction)

// WithConcreteTree makes the action build a concrete syntax tree
// alongside the abstract one: every reduction's handle is kept verbatim,
// including a synthesized node for epsilon reductions that the AST elides.
// Useful for inspecting a grammar's literal derivation before any
// AST-shaping is layered on top.
func WithConcreteTree() SyntaxTreeActionOption {
	return func(a *SyntaxTreeAction) { a.concrete = true }
}

// SyntaxTreeAction is the convenience SemanticAction that builds an AST:
// one node per shift (the token's terminal text), one node per reduce
// (its children taken from the handle), grounded on the same Node shape
// and stack discipline the teacher's driver uses.
type SyntaxTreeAction struct {
	gram     Grammar
	stack    semanticStack
	root     *Node
	cstRoot  *Node
	concrete bool
	terminal func(symNum int) string
	nonTerm  func(symNum int) string
}

func NewSyntaxTreeAction(g Grammar, terminalName, nonTerminalName func(int) string, opts ...SyntaxTreeActionOption) *SyntaxTreeAction {
	a := &SyntaxTreeAction{gram: g, terminal: terminalName, nonTerm: nonTerminalName}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *SyntaxTreeAction) Shift(tok Token, recovered bool) {
	row, col := tok.Position()
	f := &semanticFrame{ast: &Node{
		KindName: a.terminal(tok.Terminal().Num().Int()),
		Text:     string(tok.Lexeme()),
		Row:      row,
		Col:      col,
	}}
	if a.concrete {
		cst := *f.ast
		f.cst = &cst
	}
	a.stack.push(f)
}

func (a *SyntaxTreeAction) Reduce(prodNum int, recovered bool) {
	lhsNum, count := a.gram.LHS(prodNum), a.gram.AlternativeSymbolCount(prodNum)
	handle := a.stack.pop(count)
	children := make([]*Node, len(handle))
	for i, f := range handle {
		children[i] = f.ast
	}
	f := &semanticFrame{ast: &Node{
		KindName: a.nonTerm(lhsNum),
		Children: children,
	}}
	if a.concrete {
		cstChildren := make([]*Node, len(handle))
		for i, h := range handle {
			cstChildren[i] = h.cst
		}
		if len(cstChildren) == 0 {
			cstChildren = []*Node{{KindName: nameEpsilon}}
		}
		f.cst = &Node{KindName: a.nonTerm(lhsNum), Children: cstChildren}
	}
	a.stack.push(f)
}

func (a *SyntaxTreeAction) Accept() {
	top := a.stack.pop(1)
	a.root = top[0].ast
	if a.concrete {
		a.cstRoot = top[0].cst
	}
}

func (a *SyntaxTreeAction) TrapAndShiftError(cause Token, popped int) {
	a.stack.pop(popped)
	f := &semanticFrame{ast: &Node{KindName: a.terminal(a.gram.ErrorSymbol().Num().Int()), Error: true}}
	if a.concrete {
		cst := *f.ast
		f.cst = &cst
	}
	a.stack.push(f)
}

func (a *SyntaxTreeAction) MissError(cause Token) {}

// AST returns the abstract syntax tree built by a successful parse.
func (a *SyntaxTreeAction) AST() *Node {
	return a.root
}

// CST returns the concrete syntax tree built alongside the AST, or nil
// if the action was not constructed with WithConcreteTree.
func (a *SyntaxTreeAction) CST() *Node {
	return a.cstRoot
}
