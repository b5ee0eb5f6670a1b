package main

import (
	"os"

	"github.com/minipy/minipy/compiler/internal/lexer"
	"github.com/minipy/minipy/compiler/internal/term"
)

func cmdLex(args []string) int {
	if len(args) != 1 {
		term.Eprintln("usage: minipyc lex <file>")
		return 2
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		term.Eprintf("read %s: %v\n", args[0], err)
		return 1
	}
	lx := lexer.New(string(data))
	for {
		t := lx.Next()
		if t.Kind == lexer.TokEOF {
			term.Printf("%d:%d  %s\n", t.Line, t.Col, t.Kind)
			break
		}
		lex := t.Lex
		if lex == "" {
			term.Printf("%d:%d  %-10s\n", t.Line, t.Col, t.Kind)
		} else {
			term.Printf("%d:%d  %-10s  %q\n", t.Line, t.Col, t.Kind, lex)
		}
	}
	return 0
}
