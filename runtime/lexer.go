// Package runtime implements the Parse Runtime (C6): a three-stack
// shift-reduce driver over a compiled table, with panic-mode error
// recovery, that pulls tokens from a pluggable Lexer and drives a
// pluggable SemanticAction callback set — both external collaborators
// per the table's own external-interface contract.
package runtime

import "github.com/nihei9/tabula/internal/symbol"

// Token is one lexical unit pulled from a Lexer. Terminal identifies
// which terminal symbol the token represents; EOF is reported as its own
// flag rather than a sentinel terminal number so a Lexer implementation
// never has to know the grammar's numbering.
type Token interface {
	Terminal() symbol.Symbol
	Lexeme() []byte
	EOF() bool
	Invalid() bool
	Position() (row, col int)
}

// Lexer is the pull-style external collaborator the parse runtime reads
// tokens from. The library packages never implement it (the CLI's parse
// command has only a debug lexer over a JSON token list) — a concrete
// lexer (regex-based, hand-written, or generated) is supplied by the
// caller, exactly as the table builders never see lexer internals.
type Lexer interface {
	Next() (Token, error)
}
