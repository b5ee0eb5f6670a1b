package emitter

import (
	"github.com/minipy/minipy/compiler/internal/ast"
)

func (e *Emitter) genStmt(st ast.Stmt) {
	switch s := st.(type) {
	case *ast.Assignment:
		e.genAssignment(s)

	case *ast.If:
		e.genIf(s)

	case *ast.While:
		e.genWhile(s)

	case *ast.For:
		e.genFor(s)

	case *ast.FunctionDef:
		e.genFunctionDef(s)

	case *ast.Return:
		e.genReturn(s)

	case *ast.ExpressionStatement:
		e.genExpr(s.Expr)
	}
}

func (e *Emitter) genAssignment(s *ast.Assignment) {
	if s.Target != nil {
		idx, ok := s.Target.(*ast.Index)
		if !ok {
			// only index targets reach here; any other shape is a
			// resolver bug, not something the emitter can recover from.
			r := e.genExpr(s.Value)
			e.emit("%s = %s", s.Name, r)
			return
		}
		seq := e.genExpr(idx.Seq)
		at := e.genExpr(idx.At_)
		r := e.genExpr(s.Value)
		e.emit("%s[%s] = %s", seq, at, r)
		return
	}

	r := e.genExpr(s.Value)
	e.emit("%s = %s", s.Name, r)
}

// genIf follows the branch-chain form: each condition skips to the start of
// the next branch on failure, and every branch but the last jumps to a
// shared merge label once it runs. When there is no elif/else at all, the
// "next branch" label and the merge label are the same point, so no extra
// GOTO/LABEL pair is emitted for it -- this keeps a bare if without an else
// (the common case) down to exactly one skip label.
func (e *Emitter) genIf(s *ast.If) {
	hasMore := len(s.Elifs) > 0 || s.Else != nil

	cond := e.genExpr(s.Cond)
	lnext := e.newLabel()
	e.emit("IF_FALSE %s GOTO %s", cond, lnext)
	for _, st := range s.Then {
		e.genStmt(st)
	}

	if !hasMore {
		e.emit("LABEL %s", lnext)
		return
	}

	lend := e.newLabel()
	e.emit("GOTO %s", lend)
	e.emit("LABEL %s", lnext)

	for i, elif := range s.Elifs {
		isLast := i == len(s.Elifs)-1 && s.Else == nil
		econd := e.genExpr(elif.Cond)
		enext := lend
		if !isLast {
			enext = e.newLabel()
		}
		e.emit("IF_FALSE %s GOTO %s", econd, enext)
		for _, st := range elif.Body {
			e.genStmt(st)
		}
		if !isLast {
			e.emit("GOTO %s", lend)
			e.emit("LABEL %s", enext)
		}
	}

	for _, st := range s.Else {
		e.genStmt(st)
	}
	e.emit("LABEL %s", lend)
}

func (e *Emitter) genWhile(s *ast.While) {
	lstart := e.newLabel()
	lend := e.newLabel()

	e.emit("LABEL %s", lstart)
	cond := e.genExpr(s.Cond)
	e.emit("IF_FALSE %s GOTO %s", cond, lend)
	for _, st := range s.Body {
		e.genStmt(st)
	}
	e.emit("GOTO %s", lstart)
	e.emit("LABEL %s", lend)
}

// genFor desugars `for x in iter: body` into an indexed While over a
// length query, per the iteration-lowering rule: an internal index
// temp walks [0, len(iter)) and the loop variable is re-bound from
// iter[idx] on every pass.
func (e *Emitter) genFor(s *ast.For) {
	iterOp := e.genExpr(s.Iter)

	idx := e.newTemp()
	e.emit("%s = 0", idx)

	lstart := e.newLabel()
	lend := e.newLabel()

	e.emit("LABEL %s", lstart)

	e.emit("PARAM %s", iterOp)
	length := e.newTemp()
	e.emit("CALL len, 1, %s", length)

	cond := e.newTemp()
	e.emit("%s = %s < %s", cond, idx, length)
	e.emit("IF_FALSE %s GOTO %s", cond, lend)

	e.emit("%s = %s[%s]", s.Var, iterOp, idx)

	for _, st := range s.Body {
		e.genStmt(st)
	}

	nextIdx := e.newTemp()
	e.emit("%s = %s + 1", nextIdx, idx)
	e.emit("%s = %s", idx, nextIdx)
	e.emit("GOTO %s", lstart)
	e.emit("LABEL %s", lend)
}

func (e *Emitter) genFunctionDef(s *ast.FunctionDef) {
	e.emit("FUNC_BEGIN %s, %d", s.Name, len(s.Params))
	for _, st := range s.Body {
		e.genStmt(st)
	}
	if !e.lastIsReturn() {
		e.emit("RETURN")
	}
	e.emit("FUNC_END")
}

func (e *Emitter) genReturn(s *ast.Return) {
	if s.Value == nil {
		e.emit("RETURN")
		return
	}
	r := e.genExpr(s.Value)
	e.emit("RETURN %s", r)
}
