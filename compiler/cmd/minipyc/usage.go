package main

import "github.com/minipy/minipy/compiler/internal/term"

func usage() {
	term.Eprintln("minipyc — compiler front end for the minipy language")
	term.Eprintln("")
	term.Eprintln("Usage:")
	term.Eprintln("  minipyc <command> [args] <file>")
	term.Eprintln("")
	term.Eprintln("Commands:")
	term.Eprintln("  version                  Print version")
	term.Eprintln("  help                     Show this help")
	term.Eprintln("  lex <file>               Lex a .mpy file and print its token stream")
	term.Eprintln("  parse <file>             Parse a .mpy file and print the AST outline")
	term.Eprintln("  check <file>             Resolve and type-check a .mpy file, print diagnostics")
	term.Eprintln("  compile [--debug] <file> Run the full pipeline and print three-address IR")
	term.Eprintln("")
	term.Eprintln("Exit codes:")
	term.Eprintln("  0 success   1 lex error   2 parse error   3 semantic error   4 codegen error   5 internal error")
}
