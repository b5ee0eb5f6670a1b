package main

import (
	"flag"
	"os"

	"github.com/minipy/minipy/compiler/internal/term"
	"github.com/minipy/minipy/compiler/internal/version"
)

func main() {
	flag.Usage = usage
	if len(os.Args) < 2 {
		usage()
		return
	}
	switch os.Args[1] {
	case "version", "--version", "-v":
		term.Printf("%s\n", version.String())
	case "help", "--help", "-h":
		usage()
	case "lex":
		os.Exit(cmdLex(os.Args[2:]))
	case "parse":
		os.Exit(cmdParse(os.Args[2:]))
	case "check":
		os.Exit(cmdCheck(os.Args[2:]))
	case "compile":
		os.Exit(cmdCompile(os.Args[2:]))
	default:
		term.Eprintf("unknown command: %s\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}
