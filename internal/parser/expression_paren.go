package parser

import (
	"cinder/internal/ast"
	"cinder/internal/diag"
	"cinder/internal/token"
)

// parseParenExpr разбирает `(`: приведение типа, группу или кортеж.
//
// Сначала пробуем `Type )` от контрольной точки. Приведение принимается,
// только если после `)` может начаться операнд; иначе откатываемся и
// разбираем выражение. Запятая верхнего уровня даёт кортеж.
func (p *Parser) parseParenExpr() (ast.ExprID, bool) {
	exprs := p.arenas.Exprs
	open := p.advance()

	if p.eat(token.RParen) {
		return exprs.NewTuple(open.Span.Cover(p.lastSpan), nil), true
	}

	if p.atOr(token.Ident, token.KwAuto, token.KwFn) {
		cp := p.checkpoint()
		if typ, ok := p.parseType(); ok && p.at(token.RParen) {
			p.advance()
			if p.canStartCastOperand(typ) {
				value, ok := p.parseUnaryExpr()
				if !ok {
					return ast.NoExprID, false
				}
				span := open.Span.Cover(exprs.Get(value).Span)
				return exprs.NewCast(span, typ, value), true
			}
		}
		p.restore(cp)
	}

	first, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if p.eat(token.RParen) {
		// (expr) — это само выражение; скобки восстановит генератор по приоритетам
		return first, true
	}
	if !p.at(token.Comma) {
		return ast.NoExprID, p.failHere(diag.SynUnclosedDelimiter, "expected ')' or ','", "')'", "','")
	}
	elems := []ast.ExprID{first}
	for p.eat(token.Comma) {
		if p.at(token.RParen) {
			break
		}
		e, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		elems = append(elems, e)
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close tuple"); !ok {
		return ast.NoExprID, false
	}
	return exprs.NewTuple(open.Span.Cover(p.lastSpan), elems), true
}

// canStartCastOperand: идентификаторы, литералы, `(`, `!`, `~`, `++x`, `--x`;
// для примитивов и указателей ещё `-`, `+`, `*`, `&`.
func (p *Parser) canStartCastOperand(typ ast.TypeID) bool {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident, token.IntLit, token.FloatLit, token.StringLit, token.CharLit,
		token.KwTrue, token.KwFalse, token.KwNull, token.LParen, token.Bang, token.Tilde:
		return true
	case token.PlusPlus, token.MinusMinus:
		next := p.peekN(1).Kind
		return next == token.Ident || next == token.LParen
	case token.Minus, token.Plus, token.Star, token.Amp:
		switch p.arenas.Types.Get(typ).Kind {
		case ast.TypePrimitive, ast.TypePointer:
			return true
		}
	}
	return false
}
