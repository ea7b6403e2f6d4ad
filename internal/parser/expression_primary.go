package parser

import (
	"unicode"
	"unicode/utf8"

	"cinder/internal/ast"
	"cinder/internal/diag"
	"cinder/internal/source"
	"cinder/internal/token"
)

func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	exprs := p.arenas.Exprs
	tok := p.peek()
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		return exprs.NewLiteral(tok.Span, ast.ExprLitInt, p.intern(tok)), true
	case token.FloatLit:
		p.advance()
		return exprs.NewLiteral(tok.Span, ast.ExprLitFloat, p.intern(tok)), true
	case token.StringLit:
		p.advance()
		return exprs.NewLiteral(tok.Span, ast.ExprLitString, p.intern(tok)), true
	case token.CharLit:
		p.advance()
		return exprs.NewLiteral(tok.Span, ast.ExprLitChar, p.intern(tok)), true
	case token.KwTrue:
		p.advance()
		return exprs.NewLiteral(tok.Span, ast.ExprLitTrue, p.intern(tok)), true
	case token.KwFalse:
		p.advance()
		return exprs.NewLiteral(tok.Span, ast.ExprLitFalse, p.intern(tok)), true
	case token.KwNull:
		p.advance()
		return exprs.NewLiteral(tok.Span, ast.ExprLitNull, p.intern(tok)), true
	case token.Ident:
		return p.parseIdentExpr()
	case token.LParen:
		return p.parseParenExpr()
	case token.LBracket:
		p.advance()
		elems, ok := p.parseExprList(token.RBracket)
		if !ok {
			return ast.NoExprID, false
		}
		return exprs.NewArray(tok.Span.Cover(p.lastSpan), elems), true
	case token.Invalid:
		return ast.NoExprID, p.failHere(diag.SynUnexpectedToken, "invalid token")
	}
	return ast.NoExprID, p.failHere(diag.SynExpectExpression, "expected expression", "expression")
}

// parseIdentExpr: макро-вызов, путь A::b (с Name<T>::f), инициализатор структуры или имя.
func (p *Parser) parseIdentExpr() (ast.ExprID, bool) {
	exprs := p.arenas.Exprs
	tok := p.peek()

	if entry, ok := p.macros.Lookup(tok.Text); ok {
		p.advance()
		return p.parseMacroCall(tok, entry)
	}

	var typeArgs []ast.TypeID
	genericPath := p.genericPathAhead()
	p.advance()
	segments := []source.StringID{p.intern(tok)}
	if genericPath {
		p.advance() // <
		var ok bool
		if typeArgs, ok = p.parseTypeArgs(); !ok {
			return ast.NoExprID, false
		}
	}
	for p.at(token.ColonColon) {
		p.advance()
		if p.at(token.Lt) && typeArgs == nil && len(segments) == 1 {
			// турбофиш: Vec::<int>::new
			p.advance()
			var ok bool
			if typeArgs, ok = p.parseTypeArgs(); !ok {
				return ast.NoExprID, false
			}
			if !p.at(token.ColonColon) {
				return ast.NoExprID, p.failHere(diag.SynExpectIdentifier, "expected '::' after type arguments", "'::'")
			}
			continue
		}
		name, _, ok := p.parseIdent("name after '::'")
		if !ok {
			return ast.NoExprID, false
		}
		segments = append(segments, name)
	}
	span := tok.Span.Cover(p.lastSpan)

	if p.at(token.LBrace) && typeArgs == nil && p.structInitAhead(segments) {
		return p.parseStructInit(span, segments)
	}
	if len(segments) == 1 && typeArgs == nil {
		return exprs.NewIdent(span, segments[0]), true
	}
	return exprs.NewPath(span, segments, typeArgs), true
}

// structInitAhead: `Name {` с заглавной буквы, затем `}` или `field:`.
func (p *Parser) structInitAhead(segments []source.StringID) bool {
	last := p.arenas.Name(segments[len(segments)-1])
	r, _ := utf8.DecodeRuneInString(last)
	if !unicode.IsUpper(r) {
		return false
	}
	next := p.peekN(1)
	return next.Kind == token.RBrace || (next.Kind == token.Ident && p.peekN(2).Kind == token.Colon)
}

func (p *Parser) parseStructInit(start source.Span, segments []source.StringID) (ast.ExprID, bool) {
	typ := p.arenas.Types.NewPath(start, segments)
	p.advance() // {
	var fields []ast.StructFieldInit
	for !p.at(token.RBrace) {
		name, nameSpan, ok := p.parseIdent("field name")
		if !ok {
			return ast.NoExprID, false
		}
		if _, ok = p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' after field name"); !ok {
			return ast.NoExprID, false
		}
		value, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		fields = append(fields, ast.StructFieldInit{Name: name, Value: value, Span: nameSpan.Cover(p.lastSpan)})
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close struct initializer"); !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewStructInit(start.Cover(p.lastSpan), typ, fields), true
}
