package parser

import (
	"github.com/minipy/minipy/compiler/internal/ast"
	"github.com/minipy/minipy/compiler/internal/diag"
	"github.com/minipy/minipy/compiler/internal/lexer"
)

// Parser is a recursive-descent parser over the lexer's token stream,
// built the same way the rest of this pack's example parsers are: a single
// lookahead token plus at/accept/expect helpers, climbing a fixed
// precedence ladder for expressions.
type Parser struct {
	lx   lexer.Source
	tok  lexer.Token
	sink *diag.Sink
}

func New(src string) *Parser { return NewWithSink(src, diag.NewSink()) }

func NewWithSink(src string, sink *diag.Sink) *Parser {
	p := &Parser{lx: lexer.NewSource(src, sink), sink: sink}
	p.next()
	return p
}

// Diagnostics returns every lex- and parse-phase diagnostic recorded so far.
func (p *Parser) Diagnostics() []diag.Diagnostic { return p.sink.All() }

func (p *Parser) next()                   { p.tok = p.lx.Next() }
func (p *Parser) at(k lexer.TokKind) bool { return p.tok.Kind == k }
func (p *Parser) accept(k lexer.TokKind) bool {
	if p.at(k) {
		p.next()
		return true
	}
	return false
}

func (p *Parser) pos() ast.Pos { return ast.Pos{Line: p.tok.Line, Col: p.tok.Col} }

func (p *Parser) errorf(kind, format string, a ...any) {
	p.sink.Errorf(diag.PhaseParse, diag.Pos{Line: p.tok.Line, Col: p.tok.Col}, kind, format, a...)
}

// expect consumes a token of kind k or records a diagnostic and returns the
// zero Token; callers that need the lexeme check the second return value.
func (p *Parser) expect(k lexer.TokKind, kind, what string) (lexer.Token, bool) {
	if p.at(k) {
		t := p.tok
		p.next()
		return t, true
	}
	p.errorf(kind, "expected %s, got %q", what, tokenText(p.tok))
	return lexer.Token{}, false
}

func tokenText(t lexer.Token) string {
	if t.Lex != "" {
		return t.Lex
	}
	return kindName(t.Kind)
}

func kindName(k lexer.TokKind) string {
	switch k {
	case lexer.TokEOF:
		return "<eof>"
	case lexer.TokNewline:
		return "<newline>"
	case lexer.TokIndent:
		return "<indent>"
	case lexer.TokDedent:
		return "<dedent>"
	default:
		return "<token>"
	}
}

func (p *Parser) skipNewlines() {
	for p.accept(lexer.TokNewline) {
	}
}

// synchronize recovers from a parse error by discarding tokens up to the
// next NEWLINE (or a token that starts a new statement), mirroring the
// reference implementation's statement-boundary error recovery.
func (p *Parser) synchronize() {
	for !p.at(lexer.TokEOF) && !p.at(lexer.TokNewline) {
		switch p.tok.Kind {
		case lexer.TokIf, lexer.TokWhile, lexer.TokFor, lexer.TokDef, lexer.TokReturn:
			return
		}
		p.next()
	}
	p.accept(lexer.TokNewline)
}

// ParseProgram parses the whole token stream into a Program. It never
// returns a nil *ast.Program: on unrecoverable-looking input it still
// returns whatever statements were parsed alongside recorded diagnostics.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	p.skipNewlines()
	for !p.at(lexer.TokEOF) {
		s := p.parseStmt()
		if s != nil {
			prog.Stmts = append(prog.Stmts, s)
		}
		p.skipNewlines()
	}
	return prog
}

func (p *Parser) parseBlock() []ast.Stmt {
	if _, ok := p.expect(lexer.TokColon, "MissingColon", "':'"); !ok {
		p.synchronize()
		return nil
	}
	if _, ok := p.expect(lexer.TokNewline, "UnexpectedToken", "newline after ':'"); !ok {
		p.synchronize()
		return nil
	}
	if _, ok := p.expect(lexer.TokIndent, "UnexpectedToken", "an indented block"); !ok {
		p.synchronize()
		return nil
	}
	var body []ast.Stmt
	for !p.at(lexer.TokDedent) && !p.at(lexer.TokEOF) {
		s := p.parseStmt()
		if s != nil {
			body = append(body, s)
		}
		p.skipNewlines()
	}
	p.expect(lexer.TokDedent, "UnexpectedToken", "dedent")
	if len(body) == 0 {
		p.errorf("EmptyBlock", "block has no statements")
	}
	return body
}

func (p *Parser) parseStmt() ast.Stmt {
	switch {
	case p.at(lexer.TokIf):
		return p.parseIf()
	case p.at(lexer.TokWhile):
		return p.parseWhile()
	case p.at(lexer.TokFor):
		return p.parseFor()
	case p.at(lexer.TokDef):
		return p.parseFunctionDef()
	case p.at(lexer.TokReturn):
		return p.parseReturn()
	case p.at(lexer.TokReserved):
		p.errorf("UnsupportedConstruct", "%q is reserved and not yet implemented", p.tok.Lex)
		p.synchronize()
		return nil
	case p.at(lexer.TokNewline), p.at(lexer.TokEOF):
		return nil
	default:
		return p.parseAssignmentOrExprStmt()
	}
}

func (p *Parser) parseIf() ast.Stmt {
	pos := p.pos()
	p.next() // 'if'
	cond := p.parseExpr()
	then := p.parseBlock()
	node := &ast.If{Pos: pos, Cond: cond, Then: then}
	for p.at(lexer.TokElif) {
		ePos := p.pos()
		p.next()
		eCond := p.parseExpr()
		eBody := p.parseBlock()
		node.Elifs = append(node.Elifs, ast.Elif{Pos: ePos, Cond: eCond, Body: eBody})
	}
	if p.accept(lexer.TokElse) {
		node.Else = p.parseBlock()
	}
	return node
}

func (p *Parser) parseWhile() ast.Stmt {
	pos := p.pos()
	p.next()
	cond := p.parseExpr()
	body := p.parseBlock()
	return &ast.While{Pos: pos, Cond: cond, Body: body}
}

func (p *Parser) parseFor() ast.Stmt {
	pos := p.pos()
	p.next() // 'for'
	nameTok, ok := p.expect(lexer.TokIdent, "UnexpectedToken", "a loop variable name")
	if !ok {
		p.synchronize()
		return nil
	}
	if _, ok := p.expect(lexer.TokIn, "UnexpectedToken", "'in'"); !ok {
		p.synchronize()
		return nil
	}
	iter := p.parseExpr()
	body := p.parseBlock()
	return &ast.For{Pos: pos, Var: nameTok.Lex, Iter: iter, Body: body}
}

func (p *Parser) parseFunctionDef() ast.Stmt {
	pos := p.pos()
	p.next() // 'def'
	nameTok, ok := p.expect(lexer.TokIdent, "UnexpectedToken", "a function name")
	if !ok {
		p.synchronize()
		return nil
	}
	if _, ok := p.expect(lexer.TokLParen, "UnexpectedToken", "'('"); !ok {
		p.synchronize()
		return nil
	}
	var params []string
	if !p.at(lexer.TokRParen) {
		for {
			pTok, ok := p.expect(lexer.TokIdent, "UnexpectedToken", "a parameter name")
			if !ok {
				break
			}
			params = append(params, pTok.Lex)
			if p.accept(lexer.TokComma) {
				continue
			}
			break
		}
	}
	if _, ok := p.expect(lexer.TokRParen, "MissingCloser", "')'"); !ok {
		p.synchronize()
		return nil
	}
	body := p.parseBlock()
	return &ast.FunctionDef{Pos: pos, Name: nameTok.Lex, Params: params, Body: body}
}

func (p *Parser) parseReturn() ast.Stmt {
	pos := p.pos()
	p.next() // 'return'
	if p.at(lexer.TokNewline) || p.at(lexer.TokEOF) || p.at(lexer.TokDedent) {
		return &ast.Return{Pos: pos}
	}
	val := p.parseExpr()
	return &ast.Return{Pos: pos, Value: val}
}

func (p *Parser) parseAssignmentOrExprStmt() ast.Stmt {
	pos := p.pos()
	e := p.parseExpr()
	if p.accept(lexer.TokAssign) {
		val := p.parseExpr()
		switch target := e.(type) {
		case *ast.Identifier:
			return &ast.Assignment{Pos: pos, Name: target.Name, Value: val}
		case *ast.Index:
			return &ast.Assignment{Pos: pos, Target: target, Value: val}
		default:
			p.errorf("UnexpectedToken", "left side of '=' is not assignable")
			return &ast.ExpressionStatement{Pos: pos, Expr: e}
		}
	}
	return &ast.ExpressionStatement{Pos: pos, Expr: e}
}

/*** EXPRESSIONS: OR -> AND -> equality -> comparison -> additive ->
multiplicative -> unary -> power -> primary. ***/

func (p *Parser) parseExpr() ast.Expr { return p.parseOr() }

func (p *Parser) parseOr() ast.Expr {
	left := p.parseAnd()
	for p.at(lexer.TokOr) {
		pos := p.pos()
		p.next()
		right := p.parseAnd()
		left = &ast.BinaryOp{Pos: pos, Op: "or", Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expr {
	left := p.parseEquality()
	for p.at(lexer.TokAnd) {
		pos := p.pos()
		p.next()
		right := p.parseEquality()
		left = &ast.BinaryOp{Pos: pos, Op: "and", Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseEquality() ast.Expr {
	left := p.parseComparison()
	for p.at(lexer.TokEqEq) || p.at(lexer.TokNe) {
		op := opText(p.tok.Kind)
		pos := p.pos()
		p.next()
		right := p.parseComparison()
		left = &ast.BinaryOp{Pos: pos, Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseComparison() ast.Expr {
	left := p.parseAdditive()
	for p.at(lexer.TokLt) || p.at(lexer.TokLe) || p.at(lexer.TokGt) || p.at(lexer.TokGe) {
		op := opText(p.tok.Kind)
		pos := p.pos()
		p.next()
		right := p.parseAdditive()
		left = &ast.BinaryOp{Pos: pos, Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for p.at(lexer.TokPlus) || p.at(lexer.TokMinus) {
		op := opText(p.tok.Kind)
		pos := p.pos()
		p.next()
		right := p.parseMultiplicative()
		left = &ast.BinaryOp{Pos: pos, Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for p.at(lexer.TokStar) || p.at(lexer.TokSlash) || p.at(lexer.TokPercent) {
		op := opText(p.tok.Kind)
		pos := p.pos()
		p.next()
		right := p.parseUnary()
		left = &ast.BinaryOp{Pos: pos, Op: op, Left: left, Right: right}
	}
	return left
}

// parseUnary binds looser than power: "-x ** 2" parses as -(x ** 2), since
// the recursive call lands on parsePower, not the other way around.
func (p *Parser) parseUnary() ast.Expr {
	if p.at(lexer.TokNot) || p.at(lexer.TokMinus) || p.at(lexer.TokPlus) {
		op := opText(p.tok.Kind)
		pos := p.pos()
		p.next()
		x := p.parseUnary()
		return &ast.UnaryOp{Pos: pos, Op: op, X: x}
	}
	return p.parsePower()
}

// parsePower is right-associative: "2 ** 3 ** 2" parses as 2 ** (3 ** 2).
func (p *Parser) parsePower() ast.Expr {
	left := p.parsePostfix()
	if p.at(lexer.TokPow) {
		pos := p.pos()
		p.next()
		right := p.parsePower()
		return &ast.BinaryOp{Pos: pos, Op: "**", Left: left, Right: right}
	}
	return left
}

func (p *Parser) parsePostfix() ast.Expr {
	x := p.parsePrimary()
	for p.at(lexer.TokLBrack) {
		pos := p.pos()
		p.next()
		idx := p.parseExpr()
		p.expect(lexer.TokRBrack, "MissingCloser", "']'")
		x = &ast.Index{Pos: pos, Seq: x, At_: idx}
	}
	return x
}

func (p *Parser) parsePrimary() ast.Expr {
	pos := p.pos()
	switch {
	case p.at(lexer.TokInt):
		v := p.tok.Value
		p.next()
		return &ast.Literal{Pos: pos, Kind: "int", Value: v}
	case p.at(lexer.TokFloat):
		v := p.tok.Value
		p.next()
		return &ast.Literal{Pos: pos, Kind: "float", Value: v}
	case p.at(lexer.TokStr):
		v := p.tok.Value
		p.next()
		return &ast.Literal{Pos: pos, Kind: "string", Value: v}
	case p.at(lexer.TokBool):
		v := p.tok.Value
		p.next()
		return &ast.Literal{Pos: pos, Kind: "bool", Value: v}
	case p.at(lexer.TokNone):
		p.next()
		return &ast.Literal{Pos: pos, Kind: "none", Value: nil}
	case p.at(lexer.TokLParen):
		p.next()
		e := p.parseExpr()
		p.expect(lexer.TokRParen, "MissingCloser", "')'")
		return e
	case p.at(lexer.TokLBrack):
		p.next()
		var elems []ast.Expr
		if !p.at(lexer.TokRBrack) {
			for {
				elems = append(elems, p.parseExpr())
				if p.accept(lexer.TokComma) {
					continue
				}
				break
			}
		}
		p.expect(lexer.TokRBrack, "MissingCloser", "']'")
		return &ast.ListLiteral{Pos: pos, Elems: elems}
	case p.at(lexer.TokIdent):
		name := p.tok.Lex
		p.next()
		if p.at(lexer.TokLParen) {
			p.next()
			var args []ast.Expr
			if !p.at(lexer.TokRParen) {
				for {
					args = append(args, p.parseExpr())
					if p.accept(lexer.TokComma) {
						continue
					}
					break
				}
			}
			p.expect(lexer.TokRParen, "MissingCloser", "')'")
			return &ast.Call{Pos: pos, Callee: name, Args: args}
		}
		return &ast.Identifier{Pos: pos, Name: name}
	default:
		p.errorf("UnexpectedToken", "unexpected token %q in expression", tokenText(p.tok))
		p.next()
		return &ast.Literal{Pos: pos, Kind: "none", Value: nil}
	}
}

func opText(k lexer.TokKind) string {
	switch k {
	case lexer.TokEqEq:
		return "=="
	case lexer.TokNe:
		return "!="
	case lexer.TokLt:
		return "<"
	case lexer.TokLe:
		return "<="
	case lexer.TokGt:
		return ">"
	case lexer.TokGe:
		return ">="
	case lexer.TokPlus:
		return "+"
	case lexer.TokMinus:
		return "-"
	case lexer.TokStar:
		return "*"
	case lexer.TokSlash:
		return "/"
	case lexer.TokPercent:
		return "%"
	case lexer.TokNot:
		return "not"
	default:
		return "?"
	}
}
