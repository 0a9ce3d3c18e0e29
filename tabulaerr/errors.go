// Package tabulaerr implements the parse-time part of the Error Model
// (C7): syntax errors and a semantic-error wrapper. Grammar-construction
// faults are reported by internal/grammar's Error and Errors types.
package tabulaerr

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/nihei9/tabula/internal/symbol"
)

// ParseError is one syntax fault found while parsing: the offending
// token, its position, a human message, the terminals that would have
// been accepted there, and whether panic-mode recovery reached an
// error-trapper state for it, grounded on the teacher's driver.SyntaxError
// shape.
type ParseError struct {
	Message           string
	Row, Col          int
	Token             symbol.Symbol
	TokenText         string
	ExpectedTerminals []symbol.Symbol
	Recoverable       bool

	// Hash content-addresses this error's diagnostic context (row, col,
	// offending token, expected set) the same way production/item/state
	// identities are computed, so two parses of the same input hitting the
	// same fault produce byte-identical ParseErrors.
	Hash [32]byte
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Row, e.Col, e.Message)
}

// NewParseError builds a ParseError and computes its diagnostic hash over
// the offending token, its position, and the expected-terminal set.
func NewParseError(message string, row, col int, token symbol.Symbol, tokenText string, expected []symbol.Symbol, recoverable bool) *ParseError {
	e := &ParseError{
		Message:           message,
		Row:               row,
		Col:               col,
		Token:             token,
		TokenText:         tokenText,
		ExpectedTerminals: expected,
		Recoverable:       recoverable,
	}
	e.Hash = e.diagnosticHash()
	return e
}

func (e *ParseError) diagnosticHash() [32]byte {
	h := sha256.New()
	var buf [8]byte
	binary.BigEndian.PutUint32(buf[0:4], uint32(e.Row))
	binary.BigEndian.PutUint32(buf[4:8], uint32(e.Col))
	h.Write(buf[:])
	binary.BigEndian.PutUint16(buf[0:2], uint16(e.Token))
	h.Write(buf[0:2])
	h.Write([]byte(e.TokenText))
	for _, t := range e.ExpectedTerminals {
		binary.BigEndian.PutUint16(buf[0:2], uint16(t))
		h.Write(buf[0:2])
	}
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

// ParseErrors collects every syntax error found in one parse; it is
// returned instead of the first ParseError alone so a caller sees the
// whole picture when recovery succeeded partway through.
type ParseErrors struct {
	Errors []*ParseError
}

func (e *ParseErrors) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msgs := make([]string, len(e.Errors))
	for i, pe := range e.Errors {
		msgs[i] = pe.Error()
	}
	return fmt.Sprintf("%d syntax errors:\n%s", len(e.Errors), strings.Join(msgs, "\n"))
}

// SemanticError wraps an error raised by a caller's own semantic code so
// it is not mistaken for a syntax error. The runtime's SemanticAction
// methods return no error, so the parser never constructs or propagates
// a SemanticError itself.
type SemanticError struct {
	Cause error
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("semantic error: %v", e.Cause)
}

func (e *SemanticError) Unwrap() error {
	return e.Cause
}
