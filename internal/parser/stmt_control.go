package parser

import (
	"cinder/internal/ast"
	"cinder/internal/diag"
	"cinder/internal/source"
	"cinder/internal/token"
)

// parseLabeledStmt: `.name: while (...) ...` или `.name: for (...) ...`
func (p *Parser) parseLabeledStmt() (ast.StmtID, bool) {
	dot := p.advance()
	label := p.intern(p.advance())
	p.advance() // :
	switch p.peek().Kind {
	case token.KwWhile:
		return p.parseWhileStmt(label, dot.Span)
	case token.KwFor:
		return p.parseForStmt(label, dot.Span)
	}
	return ast.NoStmtID, p.failHere(diag.SynLabelNotLoop, "a label must be followed by a loop", "'while'", "'for'")
}

func (p *Parser) parseParenCond(what string) (ast.ExprID, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after "+what); !ok {
		return ast.NoExprID, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after "+what+" condition"); !ok {
		return ast.NoExprID, false
	}
	return cond, true
}

func (p *Parser) parseIfStmt() (ast.StmtID, bool) {
	ifTok := p.advance()
	cond, ok := p.parseParenCond("'if'")
	if !ok {
		return ast.NoStmtID, false
	}
	then, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}
	els := ast.NoStmtID
	if p.eat(token.KwElse) {
		if els, ok = p.parseStmt(); !ok {
			return ast.NoStmtID, false
		}
	}
	return p.arenas.Stmts.NewIf(ifTok.Span.Cover(p.lastSpan), cond, then, els), true
}

func (p *Parser) parseWhileStmt(label source.StringID, start source.Span) (ast.StmtID, bool) {
	p.advance() // while
	cond, ok := p.parseParenCond("'while'")
	if !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewWhile(start.Cover(p.lastSpan), ast.WhileStmt{Label: label, Cond: cond, Body: body}), true
}

// parseForStmt: `for (init; cond; post) S` или `for ([Type] x in e) S`.
func (p *Parser) parseForStmt(label source.StringID, start source.Span) (ast.StmtID, bool) {
	p.advance() // for
	if _, ok := p.expect(token.LParen, diag.SynForBadHeader, "expected '(' after 'for'"); !ok {
		return ast.NoStmtID, false
	}
	if p.isForIn() {
		return p.parseForInRest(label, start)
	}

	data := ast.ForStmt{Label: label}
	var ok bool
	switch {
	case p.eat(token.Semicolon):
	case p.atOr(token.KwLet, token.KwVar, token.KwConst):
		if data.Init, ok = p.parseLetStmt(); !ok {
			return ast.NoStmtID, false
		}
	case p.classifyHead() == headImplicitDecl:
		if data.Init, ok = p.parseImplicitDecl(true); !ok {
			return ast.NoStmtID, false
		}
	default:
		if data.Init, ok = p.parseExprStmt(); !ok {
			return ast.NoStmtID, false
		}
	}

	if !p.at(token.Semicolon) {
		if data.Cond, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	if _, ok = p.expect(token.Semicolon, diag.SynForBadHeader, "expected ';' after for-loop condition"); !ok {
		return ast.NoStmtID, false
	}
	if !p.at(token.RParen) {
		if data.Post, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	if _, ok = p.expect(token.RParen, diag.SynForBadHeader, "expected ')' to close for-loop header"); !ok {
		return ast.NoStmtID, false
	}
	if data.Body, ok = p.parseStmt(); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewFor(start.Cover(p.lastSpan), data), true
}

func (p *Parser) parseForInRest(label source.StringID, start source.Span) (ast.StmtID, bool) {
	data := ast.ForInStmt{Label: label}
	var ok bool
	if p.peekN(1).Kind != token.KwIn {
		if data.Type, ok = p.parseType(); !ok {
			return ast.NoStmtID, false
		}
	}
	if data.Name, data.NameSpan, ok = p.parseIdent("loop variable"); !ok {
		return ast.NoStmtID, false
	}
	p.advance() // in
	if data.Iterable, ok = p.parseExpr(); !ok {
		return ast.NoStmtID, false
	}
	if _, ok = p.expect(token.RParen, diag.SynForBadHeader, "expected ')' to close for-in header"); !ok {
		return ast.NoStmtID, false
	}
	if data.Body, ok = p.parseStmt(); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewForIn(start.Cover(p.lastSpan), data), true
}

// parseSwitchStmt: подряд идущие метки с пустым телом сливаются в одну ветку;
// `case a, b:` — то же самое. Завершающий `break;` ветки съедается.
func (p *Parser) parseSwitchStmt() (ast.StmtID, bool) {
	switchTok := p.advance()
	value, ok := p.parseParenCond("'switch'")
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok = p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after switch value"); !ok {
		return ast.NoStmtID, false
	}
	var arms []ast.SwitchArm
	seenDefault := false
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		arm := ast.SwitchArm{Span: p.peek().Span}
		if !p.atOr(token.KwCase, token.KwDefault) {
			return ast.NoStmtID, p.failHere(diag.SynSwitchBadArm, "expected 'case' or 'default' in switch", "'case'", "'default'")
		}
		for p.atOr(token.KwCase, token.KwDefault) {
			labelTok := p.advance()
			if labelTok.Kind == token.KwDefault {
				if seenDefault {
					return ast.NoStmtID, p.fail(diag.SynSwitchBadArm, labelTok.Span, "multiple default labels in switch")
				}
				seenDefault = true
				arm.IsDefault = true
			} else {
				for {
					pat, ok := p.parseExpr()
					if !ok {
						return ast.NoStmtID, false
					}
					arm.Patterns = append(arm.Patterns, pat)
					if !p.eat(token.Comma) {
						break
					}
				}
			}
			if _, ok = p.expect(token.Colon, diag.SynSwitchBadArm, "expected ':' after case label"); !ok {
				return ast.NoStmtID, false
			}
		}
		for !p.atOr(token.KwCase, token.KwDefault, token.RBrace, token.EOF) {
			st, ok := p.parseStmt()
			if !ok {
				return ast.NoStmtID, false
			}
			arm.Body = append(arm.Body, st)
		}
		if n := len(arm.Body); n > 0 && p.isPlainBreak(arm.Body[n-1]) {
			arm.Body = arm.Body[:n-1]
			arm.Break = true
		}
		arm.Span = arm.Span.Cover(p.lastSpan)
		arms = append(arms, arm)
	}
	if _, ok = p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close switch"); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewSwitch(switchTok.Span.Cover(p.lastSpan), value, arms), true
}

func (p *Parser) isPlainBreak(id ast.StmtID) bool {
	st := p.arenas.Stmts.Get(id)
	if st == nil || st.Kind != ast.StmtBreak {
		return false
	}
	j, _ := p.arenas.Stmts.Jump(id)
	return j.Label == source.NoStringID
}
