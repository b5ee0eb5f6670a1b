package check

import (
	"github.com/minipy/minipy/compiler/internal/ast"
)

// kindOfExpr infers e's Kind, reporting UndefinedVariable/ArityMismatch/
// TypeMismatch diagnostics on sink as it walks. It never returns an error
// itself -- callers keep going with KindUnknown so one bad expression
// doesn't cascade into unrelated failures.
func (c *checker) kindOfExpr(e ast.Expr) Kind {
	switch x := e.(type) {
	case *ast.Literal:
		return literalKind(x)

	case *ast.Identifier:
		v, ok := c.scope.lookupVar(x.Name)
		if !ok {
			c.errorf(x.Pos, "UndefinedVariable", "undefined variable %q", x.Name)
			return KindUnknown
		}
		v.read = true
		return v.kind

	case *ast.UnaryOp:
		return c.kindOfUnary(x)

	case *ast.BinaryOp:
		return c.kindOfBinary(x)

	case *ast.Call:
		return c.kindOfCall(x)

	case *ast.Index:
		return c.kindOfIndex(x)

	case *ast.ListLiteral:
		for _, el := range x.Elems {
			c.kindOfExpr(el)
		}
		return KindList

	default:
		return KindUnknown
	}
}

func literalKind(lit *ast.Literal) Kind {
	switch lit.Kind {
	case "int":
		return KindInt
	case "float":
		return KindFloat
	case "string":
		return KindStr
	case "bool":
		return KindBool
	case "none":
		return KindNone
	default:
		return KindUnknown
	}
}

func (c *checker) kindOfUnary(x *ast.UnaryOp) Kind {
	k := c.kindOfExpr(x.X)
	switch x.Op {
	case "not":
		return KindBool
	case "-", "+":
		if k == KindUnknown || isNumeric(k) {
			if k == KindUnknown {
				return KindUnknown
			}
			return k
		}
		c.errorf(x.Pos, "TypeMismatch", "unary %q requires a numeric operand, got %s", x.Op, k)
		return KindUnknown
	default:
		return KindUnknown
	}
}

func (c *checker) kindOfBinary(x *ast.BinaryOp) Kind {
	lk := c.kindOfExpr(x.Left)
	rk := c.kindOfExpr(x.Right)

	switch x.Op {
	case "and", "or":
		return KindBool

	case "==", "!=":
		return KindBool

	case "<", "<=", ">", ">=":
		if lk == KindUnknown || rk == KindUnknown {
			return KindBool
		}
		if (isNumeric(lk) && isNumeric(rk)) || (lk == KindStr && rk == KindStr) {
			return KindBool
		}
		c.errorf(x.Pos, "TypeMismatch", "cannot compare %s and %s", lk, rk)
		return KindBool

	case "+":
		if lk == KindStr && rk == KindStr {
			return KindStr
		}
		if lk == KindList && rk == KindList {
			return KindList
		}
		return c.joinArith(x.Pos, x.Op, lk, rk)

	case "*":
		if sk, ok := seqRepeatKind(lk, rk); ok {
			return sk
		}
		return c.joinArith(x.Pos, x.Op, lk, rk)

	case "-", "%":
		return c.joinArith(x.Pos, x.Op, lk, rk)

	case "/":
		if lk == KindUnknown || rk == KindUnknown {
			return KindFloat
		}
		if isNumeric(lk) && isNumeric(rk) {
			return KindFloat
		}
		c.errorf(x.Pos, "TypeMismatch", "/ requires numeric operands, got %s and %s", lk, rk)
		return KindFloat

	case "**":
		return c.joinArith(x.Pos, x.Op, lk, rk)

	default:
		return KindUnknown
	}
}

// seqRepeatKind matches the commutative (str|list, int) shape of `*`
// (e.g. "ab" * 3 or 3 * [1]), returning the sequence operand's own kind.
func seqRepeatKind(lk, rk Kind) (Kind, bool) {
	if (lk == KindStr || lk == KindList) && rk == KindInt {
		return lk, true
	}
	if (rk == KindStr || rk == KindList) && lk == KindInt {
		return rk, true
	}
	return KindUnknown, false
}

func (c *checker) joinArith(pos ast.Pos, op string, lk, rk Kind) Kind {
	if lk == KindUnknown || rk == KindUnknown {
		return KindUnknown
	}
	k, ok := join(lk, rk)
	if !ok || !isNumeric(k) {
		c.errorf(pos, "TypeMismatch", "%s requires numeric operands, got %s and %s", op, lk, rk)
		return KindUnknown
	}
	return k
}

func (c *checker) kindOfCall(x *ast.Call) Kind {
	for _, a := range x.Args {
		c.kindOfExpr(a)
	}

	if b, ok := builtins[x.Callee]; ok {
		n := len(x.Args)
		if n < b.minArgs || (b.maxArgs >= 0 && n > b.maxArgs) {
			c.errorf(x.Pos, "ArityMismatch", "%q expects between %d and %d arguments, got %d",
				x.Callee, b.minArgs, maxArgsDisplay(b.maxArgs), n)
		}
		return b.ret
	}

	sig, ok := c.scope.lookupFunc(x.Callee)
	if !ok {
		c.errorf(x.Pos, "UndefinedVariable", "call to undefined function %q", x.Callee)
		return KindUnknown
	}
	if len(x.Args) != len(sig.Params) {
		c.errorf(x.Pos, "ArityMismatch", "%q expects %d argument(s), got %d",
			x.Callee, len(sig.Params), len(x.Args))
	}
	return sig.Ret
}

func maxArgsDisplay(max int) int {
	if max < 0 {
		return 1 << 30
	}
	return max
}

func (c *checker) kindOfIndex(x *ast.Index) Kind {
	seqKind := c.kindOfExpr(x.Seq)
	idxKind := c.kindOfExpr(x.At_)

	if idxKind != KindUnknown && idxKind != KindInt {
		c.errorf(x.Pos, "TypeMismatch", "index must be int, got %s", idxKind)
	}

	switch seqKind {
	case KindStr:
		return KindStr
	case KindList, KindUnknown:
		return KindUnknown
	default:
		c.errorf(x.Pos, "TypeMismatch", "%s is not indexable", seqKind)
		return KindUnknown
	}
}
