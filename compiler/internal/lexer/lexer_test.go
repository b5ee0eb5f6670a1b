package lexer

import (
	"testing"

	"github.com/minipy/minipy/compiler/internal/diag"
)

func kindsFrom(src string) []TokKind {
	l := New(src)
	var kinds []TokKind
	for {
		t := l.Next()
		kinds = append(kinds, t.Kind)
		if t.Kind == TokEOF {
			break
		}
	}
	return kinds
}

func TestStubEOF(t *testing.T) {
	ks := kindsFrom("")
	if got, want := ks[len(ks)-1], TokEOF; got != want {
		t.Fatalf("expected EOF, got %v", got)
	}
	if len(ks) != 1 {
		t.Fatalf("expected exactly EOF for empty input, got %v", ks)
	}
}

func TestAssignAndNewlines(t *testing.T) {
	src := "y = 0\ny = y + 1\n"
	ks := kindsFrom(src)
	want := []TokKind{
		TokIdent, TokAssign, TokInt, TokNewline,
		TokIdent, TokAssign, TokIdent, TokPlus, TokInt, TokNewline,
		TokEOF,
	}
	if len(ks) != len(want) {
		t.Fatalf("token count mismatch: got %d, want %d (%v)", len(ks), len(want), ks)
	}
	for i := range want {
		if ks[i] != want[i] {
			t.Fatalf("ks[%d]=%v, want %v (full=%v)", i, ks[i], want[i], ks)
		}
	}
}

func TestIndentDedent(t *testing.T) {
	src := "" +
		"def f(a):\n" +
		"    x = 1\n" +
		"    return x\n"
	ks := kindsFrom(src)
	want := []TokKind{
		TokDef, TokIdent, TokLParen, TokIdent, TokRParen, TokColon, TokNewline,
		TokIndent,
		TokIdent, TokAssign, TokInt, TokNewline,
		TokReturn, TokIdent, TokNewline,
		TokDedent,
		TokEOF,
	}
	if len(ks) != len(want) {
		t.Fatalf("token count mismatch: got %d, want %d (%v)", len(ks), len(want), ks)
	}
	for i := range want {
		if ks[i] != want[i] {
			t.Fatalf("ks[%d]=%v, want %v (full=%v)", i, ks[i], want[i], ks)
		}
	}
}

func TestElifElseDedentSequence(t *testing.T) {
	src := "" +
		"if x:\n" +
		"    y = 1\n" +
		"elif z:\n" +
		"    y = 2\n" +
		"else:\n" +
		"    y = 3\n"
	ks := kindsFrom(src)
	want := []TokKind{
		TokIf, TokIdent, TokColon, TokNewline,
		TokIndent, TokIdent, TokAssign, TokInt, TokNewline, TokDedent,
		TokElif, TokIdent, TokColon, TokNewline,
		TokIndent, TokIdent, TokAssign, TokInt, TokNewline, TokDedent,
		TokElse, TokColon, TokNewline,
		TokIndent, TokIdent, TokAssign, TokInt, TokNewline, TokDedent,
		TokEOF,
	}
	if len(ks) != len(want) {
		t.Fatalf("token count mismatch: got %d, want %d (%v)", len(ks), len(want), ks)
	}
	for i := range want {
		if ks[i] != want[i] {
			t.Fatalf("ks[%d]=%v, want %v (full=%v)", i, ks[i], want[i], ks)
		}
	}
}

func TestFloatLiteralValue(t *testing.T) {
	l := New("3.5")
	tok := l.Next()
	if tok.Kind != TokFloat {
		t.Fatalf("expected TokFloat, got %v", tok.Kind)
	}
	if tok.Value.(float64) != 3.5 {
		t.Fatalf("expected 3.5, got %v", tok.Value)
	}
}

func TestStringEscapeValue(t *testing.T) {
	l := New(`"hi\n"`)
	tok := l.Next()
	if tok.Kind != TokStr {
		t.Fatalf("expected TokStr, got %v", tok.Kind)
	}
	if tok.Value.(string) != "hi\n" {
		t.Fatalf("expected escaped string, got %q", tok.Value)
	}
}

func TestReservedKeywordProducesReservedKind(t *testing.T) {
	ks := kindsFrom("import foo\n")
	if ks[0] != TokReserved {
		t.Fatalf("expected TokReserved for 'import', got %v", ks[0])
	}
}

func TestForInUsesOwnKeywordKinds(t *testing.T) {
	ks := kindsFrom("for x in xs:\n    pass\n")
	if ks[0] != TokFor || ks[2] != TokIn {
		t.Fatalf("expected FOR ... IN to keep their own kinds, got %v", ks)
	}
}

func TestMixedTabsAndSpacesReported(t *testing.T) {
	src := "if x:\n \t y = 1\n"
	l := New(src)
	for {
		tk := l.Next()
		if tk.Kind == TokEOF {
			break
		}
	}
	found := false
	for _, d := range l.Diagnostics() {
		if d.Kind == "MixedTabsAndSpaces" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a MixedTabsAndSpaces diagnostic, got %v", l.Diagnostics())
	}
}

// TestSourceInterfaceYieldsSameTokensAsTheConcreteLexer exercises NewSource
// directly, confirming the Source interface a caller other than this
// package's parser could consume (a fixture replay, a different front end)
// yields the exact same token stream as going through *Lexer.
func TestSourceInterfaceYieldsSameTokensAsTheConcreteLexer(t *testing.T) {
	src := "x = 1 + 2\n"
	var s Source = NewSource(src, diag.NewSink())
	var got []TokKind
	for {
		tk := s.Next()
		got = append(got, tk.Kind)
		if tk.Kind == TokEOF {
			break
		}
	}
	want := kindsFrom(src)
	if len(got) != len(want) {
		t.Fatalf("token count mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d mismatch: got %v, want %v", i, got[i], want[i])
		}
	}
}
