package parser

import (
	"cinder/internal/ast"
	"cinder/internal/diag"
	"cinder/internal/source"
	"cinder/internal/token"
)

func (p *Parser) parseBlock() (ast.StmtID, bool) {
	openTok, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{'")
	if !ok {
		return ast.NoStmtID, false
	}
	var stmtIDs []ast.StmtID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		stmtID, ok := p.parseStmt()
		if !ok {
			return ast.NoStmtID, false
		}
		stmtIDs = append(stmtIDs, stmtID)
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close block"); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewBlock(openTok.Span.Cover(p.lastSpan), stmtIDs), true
}

func (p *Parser) parseStmt() (ast.StmtID, bool) {
	switch p.peek().Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.KwLet, token.KwVar, token.KwConst:
		return p.parseLetStmt()
	case token.Dot:
		if p.peekN(1).Kind == token.Ident && p.peekN(2).Kind == token.Colon {
			return p.parseLabeledStmt()
		}
	case token.KwIf:
		return p.parseIfStmt()
	case token.KwWhile:
		return p.parseWhileStmt(source.NoStringID, p.peek().Span)
	case token.KwFor:
		return p.parseForStmt(source.NoStringID, p.peek().Span)
	case token.KwSwitch:
		return p.parseSwitchStmt()
	case token.KwBreak:
		return p.parseJumpStmt(ast.StmtBreak)
	case token.KwContinue:
		return p.parseJumpStmt(ast.StmtContinue)
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.Invalid:
		return ast.NoStmtID, p.failHere(diag.SynUnexpectedToken, "invalid token")
	}

	switch p.classifyHead() {
	case headNestedFn:
		return p.parseNestedFnStmt()
	case headImplicitDecl:
		return p.parseImplicitDecl(true)
	}
	return p.parseExprStmt()
}

// parseLetStmt: `let x = e;`, `let x: T = e;`, `let T x = e;` (то же для var/const).
func (p *Parser) parseLetStmt() (ast.StmtID, bool) {
	kwTok := p.advance()
	data := ast.LetStmt{}
	switch kwTok.Kind {
	case token.KwLet:
		data.Keyword = ast.LetLet
	case token.KwVar:
		data.Keyword = ast.LetVar
		data.Mutable = true
	case token.KwConst:
		data.Keyword = ast.LetConst
	}

	nameFirst := p.at(token.Ident) && p.atNameFirstLet()
	var ok bool
	if !nameFirst {
		if data.Type, ok = p.parseType(); !ok {
			return ast.NoStmtID, false
		}
	}
	if data.Name, data.NameSpan, ok = p.parseIdent("variable name"); !ok {
		return ast.NoStmtID, false
	}
	if nameFirst && p.eat(token.Colon) {
		if data.Type, ok = p.parseType(); !ok {
			return ast.NoStmtID, false
		}
	}
	if data.Type.IsValid() {
		if data.Type, ok = p.parseArraySuffix(data.Type); !ok {
			return ast.NoStmtID, false
		}
	}
	return p.finishLet(kwTok.Span, data, true)
}

func (p *Parser) atNameFirstLet() bool {
	switch p.peekN(1).Kind {
	case token.Assign, token.Colon, token.Semicolon:
		return true
	}
	return false
}

// parseImplicitDecl: `Type name = e;` без ключевого слова, mutable=false.
func (p *Parser) parseImplicitDecl(needSemi bool) (ast.StmtID, bool) {
	start := p.peek().Span
	data := ast.LetStmt{Keyword: ast.LetImplicit}
	var ok bool
	if data.Type, ok = p.parseType(); !ok {
		return ast.NoStmtID, false
	}
	if data.Name, data.NameSpan, ok = p.parseIdent("variable name"); !ok {
		return ast.NoStmtID, false
	}
	if data.Type, ok = p.parseArraySuffix(data.Type); !ok {
		return ast.NoStmtID, false
	}
	return p.finishLet(start, data, needSemi)
}

func (p *Parser) finishLet(start source.Span, data ast.LetStmt, needSemi bool) (ast.StmtID, bool) {
	if p.eat(token.Assign) {
		var ok bool
		if data.Value, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	if needSemi {
		if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after declaration"); !ok {
			return ast.NoStmtID, false
		}
	}
	if data.Keyword == ast.LetConst && !data.Value.IsValid() {
		return ast.NoStmtID, p.fail(diag.SynExpectExpression, data.NameSpan, "constant declaration needs a value", "'='")
	}
	return p.arenas.Stmts.NewLet(start.Cover(p.lastSpan), data), true
}

// parseNestedFnStmt: `Type name(Type a) { ... }` внутри тела функции.
func (p *Parser) parseNestedFnStmt() (ast.StmtID, bool) {
	start := p.peek().Span
	result, ok := p.parseType()
	if !ok {
		return ast.NoStmtID, false
	}
	name, nameSpan, ok := p.parseIdent("function name")
	if !ok {
		return ast.NoStmtID, false
	}
	decl, ok := p.parseFnRest(result, name, nameSpan)
	if !ok {
		return ast.NoStmtID, false
	}
	decl.Span = start.Cover(p.lastSpan)
	return p.arenas.Stmts.NewNestedFn(decl.Span, decl), true
}

func (p *Parser) parseExprStmt() (ast.StmtID, bool) {
	start := p.peek().Span
	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after expression"); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewExpr(start.Cover(p.lastSpan), expr), true
}

func (p *Parser) parseReturnStmt() (ast.StmtID, bool) {
	retTok := p.advance()
	value := ast.NoExprID
	if !p.at(token.Semicolon) {
		var ok bool
		if value, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after return"); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewReturn(retTok.Span.Cover(p.lastSpan), value), true
}

// parseJumpStmt: `break [.label];` / `continue [.label];`
func (p *Parser) parseJumpStmt(kind ast.StmtKind) (ast.StmtID, bool) {
	kwTok := p.advance()
	label := source.NoStringID
	var labelSpan source.Span
	if p.at(token.Dot) {
		dot := p.advance()
		name, sp, ok := p.parseIdent("label name after '.'")
		if !ok {
			return ast.NoStmtID, false
		}
		label, labelSpan = name, dot.Span.Cover(sp)
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after "+kwTok.Text); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewJump(kwTok.Span.Cover(p.lastSpan), kind, label, labelSpan), true
}
