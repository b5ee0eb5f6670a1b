package check

import (
	"strings"

	"github.com/minipy/minipy/compiler/internal/ast"
	"github.com/minipy/minipy/compiler/internal/diag"
)

// checker walks a Program once, threading one scope per function (the
// language scopes like Python: if/while/for bodies share their enclosing
// function's scope, only a def introduces a new one).
type checker struct {
	sink  *diag.Sink
	scope *scope

	funcDepth int

	// retFrames holds one entry per function currently being checked,
	// accumulating the join of every Return statement's Kind (for the
	// function's inferred return type) and whether any return carried a
	// value at all (for the FallthroughReturn warning).
	retFrames []retFrame
}

// retFrame is the per-function accumulator checkReturn folds each Return
// statement into.
type retFrame struct {
	kind     Kind
	sawAny   bool
	sawValue bool
}

// Resolve runs semantic analysis over prog and returns the global function
// table; errors and warnings both land directly on sink. Unused-variable
// warnings cover function-local variables only; module-level variables are
// not reported.
func Resolve(prog *ast.Program, sink *diag.Sink) *Info {
	c := &checker{sink: sink, scope: newScope(nil)}
	c.collectFuncSigs(c.scope, prog.Stmts)
	c.checkStmts(prog.Stmts)

	info := &Info{GlobalFuncs: map[string]FuncSig{}}
	for name, sig := range c.scope.funcs {
		info.GlobalFuncs[name] = sig
	}
	return info
}

func (c *checker) errorf(pos ast.Pos, kind, format string, a ...any) {
	c.sink.Errorf(diag.PhaseSemantic, diag.Pos{Line: pos.Line, Col: pos.Col}, kind, format, a...)
}

func (c *checker) warnf(pos ast.Pos, kind, format string, a ...any) {
	c.sink.Warnf(diag.PhaseSemantic, diag.Pos{Line: pos.Line, Col: pos.Col}, kind, format, a...)
}

// collectFuncSigs hoists every def at this exact block level (not nested
// ones) into scope so forward references across the block work, the same
// way a module's top-level defs are all visible to each other.
func (c *checker) collectFuncSigs(s *scope, stmts []ast.Stmt) {
	for _, st := range stmts {
		fn, ok := st.(*ast.FunctionDef)
		if !ok {
			continue
		}
		sig := FuncSig{Name: fn.Name, Params: fn.Params, Ret: KindUnknown}
		if redefined := s.defineFunc(fn.Name, sig); redefined {
			c.errorf(fn.Pos, "Redefinition", "function %q is already defined in this scope", fn.Name)
		}
	}
}

func (c *checker) reportUnused(s *scope) {
	for name, v := range s.vars {
		if strings.HasPrefix(name, "_") {
			continue
		}
		if !v.read {
			pos := ast.Pos{Line: v.pos.Line, Col: v.pos.Col}
			c.warnf(pos, "UnusedVariable", "variable %q is assigned but never read", name)
		}
	}
}
