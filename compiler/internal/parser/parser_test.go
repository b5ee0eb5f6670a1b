package parser

import (
	"testing"

	"github.com/minipy/minipy/compiler/internal/ast"
)

func TestPrecedenceOfPlusAndStar(t *testing.T) {
	p := New("1 + 2 * 3\n")
	prog := p.ParseProgram()
	if len(p.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", p.Diagnostics())
	}
	if len(prog.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Stmts))
	}
	es, ok := prog.Stmts[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("stmt0 not ExpressionStatement")
	}
	plus, ok := es.Expr.(*ast.BinaryOp)
	if !ok || plus.Op != "+" {
		t.Fatalf("expr not Binary '+': %#v", es.Expr)
	}
	times, ok := plus.Right.(*ast.BinaryOp)
	if !ok || times.Op != "*" {
		t.Fatalf("right child not '*': %#v", plus.Right)
	}
}

func TestUnaryBindsLooserThanPower(t *testing.T) {
	// "-x ** 2" must parse as UnaryOp(-, BinaryOp(**, x, 2)), not
	// BinaryOp(**, UnaryOp(-, x), 2).
	p := New("-x ** 2\n")
	prog := p.ParseProgram()
	if len(p.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", p.Diagnostics())
	}
	es, ok := prog.Stmts[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("stmt0 not ExpressionStatement")
	}
	un, ok := es.Expr.(*ast.UnaryOp)
	if !ok || un.Op != "-" {
		t.Fatalf("expr not UnaryOp '-': %#v", es.Expr)
	}
	pow, ok := un.X.(*ast.BinaryOp)
	if !ok || pow.Op != "**" {
		t.Fatalf("unary operand not BinaryOp '**': %#v", un.X)
	}
}

func TestPowerIsRightAssociative(t *testing.T) {
	p := New("2 ** 3 ** 2\n")
	prog := p.ParseProgram()
	es := prog.Stmts[0].(*ast.ExpressionStatement)
	top, ok := es.Expr.(*ast.BinaryOp)
	if !ok || top.Op != "**" {
		t.Fatalf("expr not '**': %#v", es.Expr)
	}
	left, ok := top.Left.(*ast.Literal)
	if !ok || left.Value.(int64) != 2 {
		t.Fatalf("left operand of outer '**' should be literal 2, got %#v", top.Left)
	}
	right, ok := top.Right.(*ast.BinaryOp)
	if !ok || right.Op != "**" {
		t.Fatalf("right operand of outer '**' should itself be '**': %#v", top.Right)
	}
}

func TestIfElifElseParsesBlocks(t *testing.T) {
	src := "" +
		"if x:\n" +
		"    y = 1\n" +
		"elif z:\n" +
		"    y = 2\n" +
		"else:\n" +
		"    y = 3\n"
	p := New(src)
	prog := p.ParseProgram()
	if len(p.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", p.Diagnostics())
	}
	ifStmt, ok := prog.Stmts[0].(*ast.If)
	if !ok {
		t.Fatalf("stmt0 not If")
	}
	if len(ifStmt.Then) != 1 || len(ifStmt.Elifs) != 1 || len(ifStmt.Else) != 1 {
		t.Fatalf("unexpected block shape: %#v", ifStmt)
	}
}

func TestForLoopUsesInKeyword(t *testing.T) {
	src := "for x in xs:\n    y = x\n"
	p := New(src)
	prog := p.ParseProgram()
	if len(p.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", p.Diagnostics())
	}
	forStmt, ok := prog.Stmts[0].(*ast.For)
	if !ok || forStmt.Var != "x" {
		t.Fatalf("stmt0 not For over 'x': %#v", prog.Stmts[0])
	}
}

func TestReservedKeywordIsUnsupportedConstruct(t *testing.T) {
	p := New("import os\n")
	p.ParseProgram()
	diags := p.Diagnostics()
	if len(diags) == 0 || diags[0].Kind != "UnsupportedConstruct" {
		t.Fatalf("expected UnsupportedConstruct, got %v", diags)
	}
}
