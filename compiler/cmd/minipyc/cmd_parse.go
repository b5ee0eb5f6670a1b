package main

import (
	"os"

	"github.com/minipy/minipy/compiler/internal/ast"
	"github.com/minipy/minipy/compiler/internal/diag"
	"github.com/minipy/minipy/compiler/internal/parser"
	"github.com/minipy/minipy/compiler/internal/term"
)

func cmdParse(args []string) int {
	if len(args) != 1 {
		term.Eprintln("usage: minipyc parse <file>")
		return 2
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		term.Eprintf("read %s: %v\n", args[0], err)
		return 1
	}

	p := parser.New(string(data))
	prog := p.ParseProgram()

	if diags := p.Diagnostics(); len(diags) > 0 {
		printDiagnostics(diags)
		if hasError(diags) {
			return 2
		}
	}

	term.Printf("%s", ast.DumpProgram(prog))
	return 0
}

func printDiagnostics(diags []diag.Diagnostic) {
	for _, d := range diags {
		term.Eprintf("%s\n", d.Error())
	}
}

func hasError(diags []diag.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == diag.SeverityError {
			return true
		}
	}
	return false
}
