package main

import (
	"os"
	"strings"

	"github.com/minipy/minipy/compiler/internal/pipeline"
	"github.com/minipy/minipy/compiler/internal/term"
)

func cmdCompile(args []string) int {
	debug := false
	var file string
	for _, a := range args {
		switch {
		case a == "--debug":
			debug = true
		case !strings.HasPrefix(a, "-") && file == "":
			file = a
		default:
			term.Eprintln("usage: minipyc compile [--debug] <file>")
			return 2
		}
	}
	if file == "" {
		term.Eprintln("usage: minipyc compile [--debug] <file>")
		return 2
	}

	data, err := os.ReadFile(file)
	if err != nil {
		term.Eprintf("read %s: %v\n", file, err)
		return 1
	}

	res := pipeline.Compile(string(data), pipeline.Options{EmitIR: true, Debug: debug})
	printDiagnostics(res.Diagnostics)
	if !res.Success {
		return res.ExitCode()
	}

	for _, instr := range res.Instructions {
		term.Printf("%s\n", instr.String())
	}
	return 0
}
