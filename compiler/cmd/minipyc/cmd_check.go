package main

import (
	"os"

	"github.com/minipy/minipy/compiler/internal/pipeline"
	"github.com/minipy/minipy/compiler/internal/term"
)

func cmdCheck(args []string) int {
	if len(args) != 1 {
		term.Eprintln("usage: minipyc check <file>")
		return 2
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		term.Eprintf("read %s: %v\n", args[0], err)
		return 1
	}

	res := pipeline.Compile(string(data), pipeline.Options{EmitIR: false})
	printDiagnostics(res.Diagnostics)
	if res.Success {
		term.Printf("ok: %s\n", res.Summary())
	}
	return res.ExitCode()
}
