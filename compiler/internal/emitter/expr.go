package emitter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/minipy/minipy/compiler/internal/ast"
)

// genExpr emits the instructions needed to evaluate e and returns the
// operand text (a temp, an identifier, or a literal) that holds the
// result -- mirroring the reference codegen's genExpr, which leaves its
// result "in R0" and returns nothing; here the result lives in the
// returned operand text instead of a register.
func (e *Emitter) genExpr(expr ast.Expr) string {
	switch x := expr.(type) {
	case *ast.Literal:
		// Atoms never need their own temp: every worked trace in the
		// reference material substitutes the literal text directly
		// wherever it's used as an operand.
		return renderLiteral(x)

	case *ast.Identifier:
		return x.Name

	case *ast.UnaryOp:
		operand := e.genExpr(x.X)
		t := e.newTemp()
		e.emit("%s = %s %s", t, x.Op, operand)
		return t

	case *ast.BinaryOp:
		return e.genBinary(x)

	case *ast.Call:
		return e.genCall(x)

	case *ast.Index:
		seq := e.genExpr(x.Seq)
		idx := e.genExpr(x.At_)
		t := e.newTemp()
		e.emit("%s = %s[%s]", t, seq, idx)
		return t

	case *ast.ListLiteral:
		elems := make([]string, len(x.Elems))
		for i, el := range x.Elems {
			elems[i] = e.genExpr(el)
		}
		t := e.newTemp()
		e.emit("%s = [%s]", t, strings.Join(elems, ", "))
		return t

	default:
		t := e.newTemp()
		e.emit("%s = None", t)
		return t
	}
}

func (e *Emitter) genBinary(x *ast.BinaryOp) string {
	switch x.Op {
	case "and":
		return e.genShortCircuit(x, false)
	case "or":
		return e.genShortCircuit(x, true)
	}

	l := e.genExpr(x.Left)
	r := e.genExpr(x.Right)
	t := e.newTemp()
	e.emit("%s = %s %s %s", t, l, x.Op, r)
	return t
}

// genShortCircuit implements the and/or emission rules: trueShortCircuit
// selects "or" semantics (short-circuit on truthy left), false selects
// "and" (short-circuit on falsy left).
func (e *Emitter) genShortCircuit(x *ast.BinaryOp, trueShortCircuit bool) string {
	l := e.genExpr(x.Left)

	if trueShortCircuit {
		ltrue := e.newLabel()
		e.emit("IF %s GOTO %s", l, ltrue)
		r := e.genExpr(x.Right)
		t := e.newTemp()
		e.emit("%s = %s", t, r)
		lend := e.newLabel()
		e.emit("GOTO %s", lend)
		e.emit("LABEL %s", ltrue)
		e.emit("%s = true", t)
		e.emit("LABEL %s", lend)
		return t
	}

	lfalse := e.newLabel()
	e.emit("IF_FALSE %s GOTO %s", l, lfalse)
	r := e.genExpr(x.Right)
	t := e.newTemp()
	e.emit("%s = %s", t, r)
	lend := e.newLabel()
	e.emit("GOTO %s", lend)
	e.emit("LABEL %s", lfalse)
	e.emit("%s = false", t)
	e.emit("LABEL %s", lend)
	return t
}

func (e *Emitter) genCall(x *ast.Call) string {
	args := make([]string, len(x.Args))
	for i, a := range x.Args {
		args[i] = e.genExpr(a)
	}
	for _, a := range args {
		e.emit("PARAM %s", a)
	}

	if x.Callee == "print" {
		operand := "None"
		if len(args) > 0 {
			operand = args[len(args)-1]
		}
		e.emit("PRINT %s", operand)
		t := e.newTemp()
		e.emit("%s = None", t)
		return t
	}

	t := e.newTemp()
	e.emit("CALL %s, %d, %s", x.Callee, len(args), t)
	return t
}

func renderLiteral(lit *ast.Literal) string {
	switch lit.Kind {
	case "int":
		return strconv.FormatInt(lit.Value.(int64), 10)
	case "float":
		return strconv.FormatFloat(lit.Value.(float64), 'g', -1, 64)
	case "string":
		return renderStringLiteral(lit.Value.(string))
	case "bool":
		if lit.Value.(bool) {
			return "true"
		}
		return "false"
	case "none":
		return "None"
	default:
		return "None"
	}
}

func renderStringLiteral(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\'':
			b.WriteString(`\'`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			fmt.Fprintf(&b, "%c", r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}
