package pipeline

import (
	"fmt"
	"strings"

	"github.com/minipy/minipy/compiler/internal/ast"
	"github.com/minipy/minipy/compiler/internal/check"
	"github.com/minipy/minipy/compiler/internal/diag"
	"github.com/minipy/minipy/compiler/internal/emitter"
	"github.com/minipy/minipy/compiler/internal/lexer"
	"github.com/minipy/minipy/compiler/internal/parser"
)

// Options controls one Compile invocation. It is the whole configuration
// surface -- there is no config file or environment layer.
type Options struct {
	// Debug asks Compile to retain the intermediate Tokens/AST/Symbols in
	// Result even on success, at the cost of lexing the source twice.
	Debug bool
	// EmitIR runs the emitter phase when the prior phases succeed. Its
	// zero value is false: a zero Options stops after semantic analysis.
	EmitIR bool
}

// Result is everything one Compile call produced.
type Result struct {
	Success      bool
	Diagnostics  []diag.Diagnostic
	Tokens       []lexer.Token
	AST          *ast.Program
	Symbols      *check.Info
	Instructions []emitter.Instruction
}

// ExitCode follows the driver's exit-code policy: 0 on success, otherwise
// the numeric code of the first phase that produced an error.
func (r Result) ExitCode() int {
	if r.Success {
		return 0
	}
	firstPhase := diag.Phase("")
	for _, d := range r.Diagnostics {
		if d.Severity == diag.SeverityError {
			firstPhase = d.Phase
			break
		}
	}
	switch firstPhase {
	case diag.PhaseLex:
		return 1
	case diag.PhaseParse:
		return 2
	case diag.PhaseSemantic:
		return 3
	case diag.PhaseCodegen:
		return 4
	default:
		return 5
	}
}

// Summary renders a single line with each phase's diagnostic count, in
// lex/parse/semantic/codegen order, e.g. "lex: 0, parse: 1, semantic: 0,
// codegen: 0".
func (r Result) Summary() string {
	sink := diag.NewSink()
	for _, d := range r.Diagnostics {
		sink.Add(d)
	}
	parts := make([]string, 0, 4)
	for _, p := range []diag.Phase{diag.PhaseLex, diag.PhaseParse, diag.PhaseSemantic, diag.PhaseCodegen} {
		parts = append(parts, fmt.Sprintf("%s: %d", p, sink.CountBy(p)))
	}
	return strings.Join(parts, ", ")
}

// Compile runs the four-pass pipeline over source and returns the
// accumulated Result. It is a pure function of (source, opts): every
// counter (lexer positions, the parser's token cursor, the resolver's
// scope chain, the emitter's temp/label indices) is allocated fresh inside
// this call, so concurrent calls never share state and identical inputs
// always produce identical output.
func Compile(source string, opts Options) Result {
	sink := diag.NewSink()

	p := parser.NewWithSink(source, sink)
	prog := p.ParseProgram()

	var res Result

	if opts.Debug {
		res.AST = prog
		res.Tokens = tokenize(source)
	}

	if sink.HasErrors() {
		res.Diagnostics = sink.All()
		return res
	}

	info := check.Resolve(prog, sink)
	if opts.Debug {
		res.Symbols = info
	}

	if sink.HasErrors() {
		res.Diagnostics = sink.All()
		return res
	}

	if !opts.EmitIR {
		res.Diagnostics = sink.All()
		res.Success = true
		return res
	}

	res.Instructions = emitter.Emit(prog)
	res.Diagnostics = sink.All()
	res.Success = !sink.HasErrors()
	return res
}

// tokenize re-lexes source from scratch to hand Debug callers the token
// stream without threading it through the parser's single-token cursor.
func tokenize(source string) []lexer.Token {
	lx := lexer.New(source)
	var toks []lexer.Token
	for {
		t := lx.Next()
		toks = append(toks, t)
		if t.Kind == lexer.TokEOF {
			break
		}
	}
	return toks
}
