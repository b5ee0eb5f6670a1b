package lexer

import (
	"strconv"
	"unicode"

	"github.com/minipy/minipy/compiler/internal/diag"
)

// tabWidth is this lexer's answer to the tab-width open question: a tab in
// leading whitespace counts as 8 columns.
const tabWidth = 8

// Lexer scans source into the token stream the parser consumes, inserting
// synthetic NEWLINE/INDENT/DEDENT tokens the way Python's tokenizer does.
type Lexer struct {
	src []rune
	i   int

	line int
	col  int

	bol        bool    // beginning-of-line: next non-space decides indentation
	indents    []int   // stack of indent widths; bottom is always 0
	pending    []Token // queued tokens (INDENT/DEDENT)
	eofEmitted bool

	sink *diag.Sink
}

func New(src string) *Lexer { return NewWithSink(src, diag.NewSink()) }

func NewWithSink(src string, sink *diag.Sink) *Lexer {
	return &Lexer{
		src:     []rune(src),
		line:    1,
		col:     0,
		bol:     true,
		indents: []int{0},
		sink:    sink,
	}
}

// Diagnostics returns every lex-phase diagnostic recorded so far.
func (lx *Lexer) Diagnostics() []diag.Diagnostic { return lx.sink.All() }

func (lx *Lexer) enqueue(t Token) { lx.pending = append(lx.pending, t) }

func (lx *Lexer) make(kind TokKind, lex string, line, col int) Token {
	return Token{Kind: kind, Lex: lex, Line: line, Col: col}
}

func (lx *Lexer) errorf(line, col int, kind, format string, a ...any) {
	lx.sink.Errorf(diag.PhaseLex, diag.Pos{Line: line, Col: col}, kind, format, a...)
}

func (lx *Lexer) peek() (rune, bool) {
	if lx.i >= len(lx.src) {
		return 0, false
	}
	return lx.src[lx.i], true
}

func (lx *Lexer) peekAt(offset int) (rune, bool) {
	j := lx.i + offset
	if j >= len(lx.src) {
		return 0, false
	}
	return lx.src[j], true
}

func (lx *Lexer) advance() (rune, bool) {
	ch, ok := lx.peek()
	if !ok {
		return 0, false
	}
	lx.i++
	if ch == '\n' {
		lx.line++
		lx.col = 0
	} else {
		lx.col++
	}
	return ch, true
}

func (lx *Lexer) match(expect rune) bool {
	ch, ok := lx.peek()
	if ok && ch == expect {
		lx.advance()
		return true
	}
	return false
}

func (lx *Lexer) atEOF() bool { return lx.i >= len(lx.src) }

// handleBOL computes the indentation of the next logical line and queues
// INDENT/DEDENT tokens, skipping blank and comment-only lines.
func (lx *Lexer) handleBOL() {
	for lx.bol {
		if lx.atEOF() {
			for len(lx.indents) > 1 {
				lx.indents = lx.indents[:len(lx.indents)-1]
				lx.enqueue(lx.make(TokDedent, "", lx.line, lx.col))
			}
			lx.bol = false
			return
		}

		width := 0
		sawSpace, sawTab := false, false
		startLine, startCol := lx.line, lx.col+1
		for {
			ch, ok := lx.peek()
			if !ok {
				break
			}
			if ch == ' ' {
				width++
				sawSpace = true
				lx.advance()
				continue
			}
			if ch == '\t' {
				width += tabWidth
				sawTab = true
				lx.advance()
				continue
			}
			break
		}
		if sawSpace && sawTab {
			lx.errorf(startLine, startCol, "MixedTabsAndSpaces", "line mixes tabs and spaces in its indentation")
		}

		if ch, ok := lx.peek(); !ok {
			// EOF right after trailing spaces: fall through to next loop iteration.
			continue
		} else if ch == '\n' {
			lx.advance()
			continue
		} else if ch == '#' {
			for {
				ch, ok := lx.peek()
				if !ok || ch == '\n' {
					break
				}
				lx.advance()
			}
			lx.match('\n')
			continue
		}

		top := lx.indents[len(lx.indents)-1]
		if width > top {
			lx.indents = append(lx.indents, width)
			lx.enqueue(lx.make(TokIndent, "", lx.line, lx.col))
		} else if width < top {
			for width < top && len(lx.indents) > 1 {
				lx.indents = lx.indents[:len(lx.indents)-1]
				top = lx.indents[len(lx.indents)-1]
				lx.enqueue(lx.make(TokDedent, "", lx.line, lx.col))
			}
			if width != top {
				lx.errorf(lx.line, lx.col, "InconsistentIndentation", "indentation does not match any enclosing block")
			}
		}
		lx.bol = false
		return
	}
}

// Next returns the next token. It never panics on malformed input; lexical
// errors are recorded on the sink and scanning continues on a best-effort
// basis so later phases still see a token stream to work with.
func (lx *Lexer) Next() Token {
	if n := len(lx.pending); n > 0 {
		t := lx.pending[0]
		lx.pending = lx.pending[1:]
		return t
	}

	if lx.bol {
		lx.handleBOL()
		if n := len(lx.pending); n > 0 {
			t := lx.pending[0]
			lx.pending = lx.pending[1:]
			return t
		}
	}

	if lx.atEOF() {
		if len(lx.indents) > 1 {
			lx.indents = lx.indents[:len(lx.indents)-1]
			return lx.make(TokDedent, "", lx.line, lx.col)
		}
		lx.eofEmitted = true
		return lx.make(TokEOF, "", lx.line, lx.col)
	}

	for {
		ch, ok := lx.peek()
		if !ok || (ch != ' ' && ch != '\t') {
			break
		}
		lx.advance()
	}

	startLine, startCol := lx.line, lx.col+1

	if ch, ok := lx.peek(); ok && ch == '\n' {
		lx.advance()
		lx.bol = true
		return lx.make(TokNewline, "", startLine, startCol)
	}

	if ch, ok := lx.peek(); ok && ch == '#' {
		for {
			ch, ok := lx.peek()
			if !ok || ch == '\n' {
				break
			}
			lx.advance()
		}
		if lx.match('\n') {
			lx.bol = true
			return lx.make(TokNewline, "", startLine, startCol)
		}
		return lx.Next()
	}

	if ch, ok := lx.peek(); ok && (isIdentStart(ch)) {
		lex := lx.scanIdent()
		if kind, ok := keywordKind(lex); ok {
			tok := lx.make(kind, lex, startLine, startCol)
			if kind == TokBool {
				tok.Value = lex == "True"
			}
			return tok
		}
		return lx.make(TokIdent, lex, startLine, startCol)
	}

	if ch, ok := lx.peek(); ok && unicode.IsDigit(ch) {
		return lx.scanNumber(startLine, startCol)
	}

	if ch, ok := lx.peek(); ok && (ch == '"' || ch == '\'') {
		return lx.scanString(startLine, startCol, ch)
	}

	// Multi-char operators first.
	if lx.match('*') {
		if lx.match('*') {
			return lx.make(TokPow, "**", startLine, startCol)
		}
		return lx.make(TokStar, "*", startLine, startCol)
	}
	if lx.match('=') {
		if lx.match('=') {
			return lx.make(TokEqEq, "==", startLine, startCol)
		}
		return lx.make(TokAssign, "=", startLine, startCol)
	}
	if lx.match('!') {
		if lx.match('=') {
			return lx.make(TokNe, "!=", startLine, startCol)
		}
		lx.errorf(startLine, startCol, "UnexpectedCharacter", "unexpected character %q", '!')
		return lx.Next()
	}
	if lx.match('<') {
		if lx.match('=') {
			return lx.make(TokLe, "<=", startLine, startCol)
		}
		return lx.make(TokLt, "<", startLine, startCol)
	}
	if lx.match('>') {
		if lx.match('=') {
			return lx.make(TokGe, ">=", startLine, startCol)
		}
		return lx.make(TokGt, ">", startLine, startCol)
	}
	if lx.match('-') {
		if lx.match('>') {
			return lx.make(TokArrow, "->", startLine, startCol)
		}
		return lx.make(TokMinus, "-", startLine, startCol)
	}

	switch {
	case lx.match('+'):
		return lx.make(TokPlus, "+", startLine, startCol)
	case lx.match('/'):
		return lx.make(TokSlash, "/", startLine, startCol)
	case lx.match('%'):
		return lx.make(TokPercent, "%", startLine, startCol)
	case lx.match('('):
		return lx.make(TokLParen, "(", startLine, startCol)
	case lx.match(')'):
		return lx.make(TokRParen, ")", startLine, startCol)
	case lx.match('['):
		return lx.make(TokLBrack, "[", startLine, startCol)
	case lx.match(']'):
		return lx.make(TokRBrack, "]", startLine, startCol)
	case lx.match('{'):
		return lx.make(TokLBrace, "{", startLine, startCol)
	case lx.match('}'):
		return lx.make(TokRBrace, "}", startLine, startCol)
	case lx.match(','):
		return lx.make(TokComma, ",", startLine, startCol)
	case lx.match(':'):
		return lx.make(TokColon, ":", startLine, startCol)
	case lx.match(';'):
		return lx.make(TokSemicolon, ";", startLine, startCol)
	case lx.match('.'):
		return lx.make(TokDot, ".", startLine, startCol)
	case lx.match('@'):
		return lx.make(TokAt, "@", startLine, startCol)
	}

	ch, _ := lx.advance()
	lx.errorf(startLine, startCol, "UnexpectedCharacter", "unexpected character %q", ch)
	return lx.Next()
}

// ----- scanning helpers -----

func isIdentStart(r rune) bool { return r == '_' || (r < unicode.MaxASCII && unicode.IsLetter(r)) }
func isIdentPart(r rune) bool {
	return r == '_' || (r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)))
}

func (lx *Lexer) scanIdent() string {
	start := lx.i
	for {
		r, ok := lx.peek()
		if !ok || !isIdentPart(r) {
			break
		}
		lx.advance()
	}
	return string(lx.src[start:lx.i])
}

func (lx *Lexer) scanNumber(line, col int) Token {
	start := lx.i
	for {
		r, ok := lx.peek()
		if !ok || !unicode.IsDigit(r) {
			break
		}
		lx.advance()
	}
	isFloat := false
	if r, ok := lx.peek(); ok && r == '.' {
		if r2, ok2 := lx.peekAt(1); ok2 && unicode.IsDigit(r2) {
			isFloat = true
			lx.advance() // '.'
			for {
				r, ok := lx.peek()
				if !ok || !unicode.IsDigit(r) {
					break
				}
				lx.advance()
			}
		} else if r2, ok2 := lx.peekAt(1); !ok2 || !isIdentStart(r2) {
			// A lone trailing '.' with no fractional digits, e.g. "3.": invalid.
			lx.advance()
			lx.errorf(line, col, "InvalidNumber", "'.' in a number must be followed by a digit")
		}
	}
	lex := string(lx.src[start:lx.i])
	tok := lx.make(TokInt, lex, line, col)
	if isFloat {
		tok.Kind = TokFloat
		v, _ := strconv.ParseFloat(lex, 64)
		tok.Value = v
	} else {
		v, _ := strconv.ParseInt(lex, 10, 64)
		tok.Value = v
	}
	return tok
}

func (lx *Lexer) scanString(line, col int, quote rune) Token {
	lx.advance() // opening quote
	var buf []rune
	closed := false
	for {
		r, ok := lx.peek()
		if !ok || r == '\n' {
			break
		}
		if r == quote {
			lx.advance()
			closed = true
			break
		}
		if r == '\\' {
			lx.advance()
			esc, ok := lx.advance()
			if !ok {
				break
			}
			switch esc {
			case 'n':
				buf = append(buf, '\n')
			case 't':
				buf = append(buf, '\t')
			case 'r':
				buf = append(buf, '\r')
			case '\\':
				buf = append(buf, '\\')
			case '"':
				buf = append(buf, '"')
			case '\'':
				buf = append(buf, '\'')
			default:
				buf = append(buf, esc)
			}
			continue
		}
		buf = append(buf, r)
		lx.advance()
	}
	if !closed {
		lx.errorf(line, col, "UnterminatedString", "unterminated string literal")
	}
	tok := lx.make(TokStr, string(buf), line, col)
	tok.Value = string(buf)
	return tok
}
