package parser

import (
	"cinder/internal/ast"
	"cinder/internal/diag"
	"cinder/internal/source"
	"cinder/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseAssignExpr()
}

// parseAssignExpr: присваивание правоассоциативно и ниже всех по приоритету.
func (p *Parser) parseAssignExpr() (ast.ExprID, bool) {
	left, ok := p.parseTernaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	op, isAssign := assignOps[p.peek().Kind]
	if !isAssign {
		return left, true
	}
	p.advance()
	right, ok := p.parseAssignExpr()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewBinary(p.cover(left, right), op, left, right), true
}

func (p *Parser) parseTernaryExpr() (ast.ExprID, bool) {
	cond, ok := p.parseBinaryExpr(precLogicalOr)
	if !ok || !p.at(token.Question) {
		return cond, ok
	}
	p.advance()
	then, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok = p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' in conditional expression"); !ok {
		return ast.NoExprID, false
	}
	els, ok := p.parseTernaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewTernary(p.cover(cond, els), cond, then, els), true
}

// parseBinaryExpr реализует Pratt parsing для бинарных операторов
// minPrec - минимальный приоритет для текущего уровня
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		info, isBinary := binaryOps[p.peek().Kind]
		if !isBinary || info.prec < minPrec {
			return left, true
		}
		p.advance()
		right, ok := p.parseBinaryExpr(info.prec + 1)
		if !ok {
			return ast.NoExprID, false
		}
		left = p.arenas.Exprs.NewBinary(p.cover(left, right), info.op, left, right)
	}
}

// parseUnaryExpr обрабатывает унарные операторы (префиксы)
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	tok := p.peek()
	op, isUnary := getUnaryOperator(tok.Kind)
	if !isUnary {
		return p.parsePostfixExpr()
	}
	p.advance()
	operand, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	span := tok.Span.Cover(p.arenas.Exprs.Get(operand).Span)
	return p.arenas.Exprs.NewUnary(span, op, operand), true
}

// parsePostfixExpr обрабатывает постфиксные операторы: () [] . -> ++ --
func (p *Parser) parsePostfixExpr() (ast.ExprID, bool) {
	expr, ok := p.parsePrimaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	exprs := p.arenas.Exprs
	for {
		start := exprs.Get(expr).Span
		switch p.peek().Kind {
		case token.LParen:
			p.advance()
			args, ok := p.parseExprList(token.RParen)
			if !ok {
				return ast.NoExprID, false
			}
			expr = exprs.NewCall(start.Cover(p.lastSpan), expr, args)
		case token.LBracket:
			p.advance()
			index, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			if _, ok = p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' after index"); !ok {
				return ast.NoExprID, false
			}
			expr = exprs.NewIndex(start.Cover(p.lastSpan), expr, index)
		case token.Dot, token.Arrow:
			arrow := p.advance().Kind == token.Arrow
			field, _, ok := p.parseIdent("field name")
			if !ok {
				return ast.NoExprID, false
			}
			expr = exprs.NewMember(start.Cover(p.lastSpan), expr, field, arrow)
		case token.PlusPlus:
			p.advance()
			expr = exprs.NewUnary(start.Cover(p.lastSpan), ast.ExprUnaryPostInc, expr)
		case token.MinusMinus:
			p.advance()
			expr = exprs.NewUnary(start.Cover(p.lastSpan), ast.ExprUnaryPostDec, expr)
		default:
			return expr, true
		}
	}
}

// parseExprList разбирает выражения через запятую до closeKind (включительно).
// Завершающая запятая допустима.
func (p *Parser) parseExprList(closeKind token.Kind) ([]ast.ExprID, bool) {
	var out []ast.ExprID
	for !p.at(closeKind) {
		e, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		out = append(out, e)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(closeKind, diag.SynUnclosedDelimiter, "expected '"+closeKind.String()+"' to close list"); !ok {
		return nil, false
	}
	return out, true
}

func (p *Parser) cover(a, b ast.ExprID) source.Span {
	return p.arenas.Exprs.Get(a).Span.Cover(p.arenas.Exprs.Get(b).Span)
}
