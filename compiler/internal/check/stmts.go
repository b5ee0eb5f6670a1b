package check

import (
	"github.com/minipy/minipy/compiler/internal/ast"
	"github.com/minipy/minipy/compiler/internal/diag"
)

func (c *checker) checkStmts(stmts []ast.Stmt) {
	for _, st := range stmts {
		c.checkStmt(st)
	}
}

func (c *checker) checkStmt(st ast.Stmt) {
	switch s := st.(type) {
	case *ast.Assignment:
		c.checkAssignment(s)

	case *ast.If:
		c.kindOfExpr(s.Cond)
		c.checkStmts(s.Then)
		for _, elif := range s.Elifs {
			c.kindOfExpr(elif.Cond)
			c.checkStmts(elif.Body)
		}
		c.checkStmts(s.Else)

	case *ast.While:
		c.kindOfExpr(s.Cond)
		c.checkStmts(s.Body)

	case *ast.For:
		c.kindOfExpr(s.Iter)
		c.defineLoopVar(s)
		c.checkStmts(s.Body)

	case *ast.FunctionDef:
		c.checkFunctionDef(s)

	case *ast.Return:
		c.checkReturn(s)

	case *ast.ExpressionStatement:
		c.kindOfExpr(s.Expr)

	default:
		// nothing else produces a Stmt node; RESERVED-keyword constructs
		// are dropped by the parser before they ever reach here.
	}
}

func (c *checker) checkAssignment(s *ast.Assignment) {
	if s.Target != nil {
		// indexed assignment: `seq[i] = value` -- seq and i are reads,
		// not a new binding.
		c.kindOfExpr(s.Target)
		c.kindOfExpr(s.Value)
		return
	}

	vk := c.kindOfExpr(s.Value)

	if existing, ok := c.scope.vars[s.Name]; ok {
		existing.kind = vk
		existing.written = true
		return
	}

	c.scope.defineVar(s.Name, &varInfo{
		kind:     vk,
		declName: s.Name,
		pos:      diag.Pos{Line: s.Pos.Line, Col: s.Pos.Col},
		written:  true,
	})
}

// loopVarKind types the for-loop's induction variable by its iterable:
// a range(...) call always yields int elements; anything else (a list, an
// unresolved expression) has an unknown element type.
func loopVarKind(iter ast.Expr) Kind {
	if call, ok := iter.(*ast.Call); ok && call.Callee == "range" {
		return KindInt
	}
	return KindUnknown
}

// defineLoopVar binds the for-loop's induction variable (the body is the
// one "use" that matters for unused-variable purposes, so it starts
// unread like any other assignment).
func (c *checker) defineLoopVar(s *ast.For) {
	vk := loopVarKind(s.Iter)
	if existing, ok := c.scope.vars[s.Var]; ok {
		existing.kind = vk
		existing.written = true
		return
	}
	c.scope.defineVar(s.Var, &varInfo{
		kind:     vk,
		declName: s.Var,
		pos:      diag.Pos{Line: s.Pos.Line, Col: s.Pos.Col},
		written:  true,
	})
}

func (c *checker) checkFunctionDef(fn *ast.FunctionDef) {
	child := newScope(c.scope)
	for _, p := range fn.Params {
		child.defineVar(p, &varInfo{
			kind:     KindUnknown,
			declName: p,
			pos:      diag.Pos{Line: fn.Pos.Line, Col: fn.Pos.Col},
			written:  true,
		})
	}
	c.collectFuncSigs(child, fn.Body)

	savedScope := c.scope
	c.scope = child
	c.funcDepth++
	c.retFrames = push(c.retFrames, retFrame{})

	c.checkStmts(fn.Body)

	frame := *top(c.retFrames)
	c.retFrames = pop(c.retFrames)
	c.funcDepth--
	c.scope = savedScope

	if frame.sawValue && !stmtsAlwaysReturn(fn.Body) {
		c.warnf(fn.Pos, "FallthroughReturn",
			"function %q returns a value on some paths but can fall through without returning on others", fn.Name)
	}

	c.reportUnused(child)

	retKind := KindNone
	if frame.sawAny {
		retKind = frame.kind
	}
	if sig, ok := c.scope.lookupFunc(fn.Name); ok {
		sig.Ret = retKind
		c.scope.funcs[fn.Name] = sig
	}
}

func (c *checker) checkReturn(s *ast.Return) {
	if c.funcDepth == 0 {
		c.errorf(s.Pos, "ReturnOutsideFunction", "return used outside of a function")
		return
	}
	vk := KindNone
	if s.Value != nil {
		vk = c.kindOfExpr(s.Value)
	}
	frame := top(c.retFrames)
	if frame == nil {
		return
	}
	if s.Value != nil {
		frame.sawValue = true
	}
	if !frame.sawAny {
		frame.sawAny = true
		frame.kind = vk
		return
	}
	if joined, ok := join(frame.kind, vk); ok {
		frame.kind = joined
	} else {
		frame.kind = KindUnknown
	}
}

// stmtsAlwaysReturn reports whether every control path through stmts is
// guaranteed to hit a return -- loops never count, since the body might
// execute zero times.
func stmtsAlwaysReturn(stmts []ast.Stmt) bool {
	for _, st := range stmts {
		switch s := st.(type) {
		case *ast.Return:
			return true
		case *ast.If:
			if s.Else == nil {
				continue
			}
			allReturn := stmtsAlwaysReturn(s.Then) && stmtsAlwaysReturn(s.Else)
			for _, elif := range s.Elifs {
				allReturn = allReturn && stmtsAlwaysReturn(elif.Body)
			}
			if allReturn {
				return true
			}
		}
	}
	return false
}
