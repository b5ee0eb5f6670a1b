package lexer

import "github.com/minipy/minipy/compiler/internal/diag"

// Source is a minimal token source the parser can consume.
// Any implementation only needs to yield successive tokens via Next().
type Source interface {
	Next() Token
}

// goSource adapts the existing Go lexer to the Source interface.
type goSource struct {
	lx *Lexer
}

// NewSource returns a Source backed by the built-in lexer, recording
// diagnostics on sink the same way NewWithSink does. The parser consumes
// a Source rather than a *Lexer directly so a non-Go-lexer token stream
// (e.g. a fixture replayed in a test) can stand in for it.
func NewSource(src string, sink *diag.Sink) Source {
	return &goSource{lx: NewWithSink(src, sink)}
}

// Next satisfies Source by delegating to the underlying Go lexer.
func (s *goSource) Next() Token {
	return s.lx.Next()
}
