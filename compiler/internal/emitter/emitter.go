package emitter

import (
	"fmt"

	"github.com/minipy/minipy/compiler/internal/ast"
)

// Instruction is one three-address entry in the emitted list, numbered from
// 1 in emission order. Text is the already-rendered payload -- everything
// after the "n: " prefix.
type Instruction struct {
	N    int
	Text string
}

// String renders the instruction in the stable "<n>: <payload>" form.
func (ins Instruction) String() string { return fmt.Sprintf("%d: %s", ins.N, ins.Text) }

// Emitter walks an annotated AST post-order, allocating temporaries and
// labels from monotonic counters and appending to an ordered instruction
// list, the same way the reference codegen walker builds up its output
// buffer one line() call at a time.
type Emitter struct {
	instrs    []Instruction
	nextTemp  int
	nextLabel int
}

func New() *Emitter { return &Emitter{} }

// Emit runs the full emission pass over prog and returns the finished
// instruction list.
func Emit(prog *ast.Program) []Instruction {
	e := New()
	for _, st := range prog.Stmts {
		e.genStmt(st)
	}
	return e.instrs
}

func (e *Emitter) newTemp() string {
	e.nextTemp++
	return fmt.Sprintf("t%d", e.nextTemp)
}

func (e *Emitter) newLabel() string {
	e.nextLabel++
	return fmt.Sprintf("L%d", e.nextLabel)
}

func (e *Emitter) emit(format string, args ...any) {
	e.instrs = append(e.instrs, Instruction{N: len(e.instrs) + 1, Text: fmt.Sprintf(format, args...)})
}

func (e *Emitter) lastIsReturn() bool {
	if len(e.instrs) == 0 {
		return false
	}
	last := e.instrs[len(e.instrs)-1].Text
	return len(last) >= 6 && last[:6] == "RETURN"
}
