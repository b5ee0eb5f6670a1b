package emitter

import (
	"testing"

	"github.com/minipy/minipy/compiler/internal/parser"
)

func compile(t *testing.T, src string) []string {
	t.Helper()
	p := parser.New(src)
	prog := p.ParseProgram()
	if diags := p.Diagnostics(); len(diags) > 0 {
		t.Fatalf("unexpected parse diagnostics: %v", diags)
	}
	instrs := Emit(prog)
	out := make([]string, len(instrs))
	for i, ins := range instrs {
		out[i] = ins.Text
	}
	return out
}

func assertInstrs(t *testing.T, got []string, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("instruction count mismatch:\n got:  %v\n want: %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("instruction %d mismatch:\n got:  %q\n want: %q\n full got: %v", i, got[i], want[i], got)
		}
	}
}

func TestAssignmentWithPrecedence(t *testing.T) {
	got := compile(t, "x = 10 + 20 * 2\n")
	assertInstrs(t, got, []string{
		"t1 = 20 * 2",
		"t2 = 10 + t1",
		"x = t2",
	})
}

func TestIfElse(t *testing.T) {
	got := compile(t, "score = 85\nif score >= 80:\n    grade = 1\nelse:\n    grade = 0\n")
	assertInstrs(t, got, []string{
		"score = 85",
		"t1 = score >= 80",
		"IF_FALSE t1 GOTO L1",
		"grade = 1",
		"GOTO L2",
		"LABEL L1",
		"grade = 0",
		"LABEL L2",
	})
}

func TestIfWithoutElse(t *testing.T) {
	got := compile(t, "if x > 0:\n    y = 1\n")
	assertInstrs(t, got, []string{
		"t1 = x > 0",
		"IF_FALSE t1 GOTO L1",
		"y = 1",
		"LABEL L1",
	})
}

func TestWhileLoop(t *testing.T) {
	got := compile(t, "n = 3\nwhile n > 0:\n    n = n - 1\n")
	assertInstrs(t, got, []string{
		"n = 3",
		"LABEL L1",
		"t1 = n > 0",
		"IF_FALSE t1 GOTO L2",
		"t2 = n - 1",
		"n = t2",
		"GOTO L1",
		"LABEL L2",
	})
}

func TestFunctionWithRecursion(t *testing.T) {
	got := compile(t, "def f(n):\n    if n <= 1:\n        return 1\n    return n * f(n - 1)\nr = f(5)\n")
	assertInstrs(t, got, []string{
		"FUNC_BEGIN f, 1",
		"t1 = n <= 1",
		"IF_FALSE t1 GOTO L1",
		"RETURN 1",
		"LABEL L1",
		"t2 = n - 1",
		"PARAM t2",
		"CALL f, 1, t3",
		"t4 = n * t3",
		"RETURN t4",
		"FUNC_END",
		"PARAM 5",
		"CALL f, 1, t5",
		"r = t5",
	})
}

func TestShortCircuitOr(t *testing.T) {
	got := compile(t, "def g(a, b):\n    x = a or b\n    return x\n")
	assertInstrs(t, got, []string{
		"FUNC_BEGIN g, 2",
		"IF a GOTO L1",
		"t1 = b",
		"GOTO L2",
		"LABEL L1",
		"t1 = true",
		"LABEL L2",
		"x = t1",
		"RETURN x",
		"FUNC_END",
	})
}

func TestFunctionFallsOffEndGetsImplicitReturn(t *testing.T) {
	got := compile(t, "def noop():\n    x = 1\n")
	assertInstrs(t, got, []string{
		"FUNC_BEGIN noop, 0",
		"x = 1",
		"RETURN",
		"FUNC_END",
	})
}

func TestForLoopDesugarsToIndexedWhile(t *testing.T) {
	got := compile(t, "for v in items:\n    print(v)\n")
	assertInstrs(t, got, []string{
		"t1 = 0",
		"LABEL L1",
		"PARAM items",
		"CALL len, 1, t2",
		"t3 = t1 < t2",
		"IF_FALSE t3 GOTO L2",
		"v = items[t1]",
		"PARAM v",
		"PRINT v",
		"t4 = None",
		"t5 = t1 + 1",
		"t1 = t5",
		"GOTO L1",
		"LABEL L2",
	})
}

func TestIndexedAssignmentEmitsIndexStore(t *testing.T) {
	got := compile(t, "xs[0] = 9\n")
	assertInstrs(t, got, []string{
		"xs[0] = 9",
	})
}

func TestPrintEmitsOperandNotArgCount(t *testing.T) {
	got := compile(t, "print(42)\n")
	assertInstrs(t, got, []string{
		"PARAM 42",
		"PRINT 42",
		"t1 = None",
	})
}

func TestPrintWithNoArgsPrintsNone(t *testing.T) {
	got := compile(t, "print()\n")
	assertInstrs(t, got, []string{
		"PRINT None",
		"t1 = None",
	})
}
