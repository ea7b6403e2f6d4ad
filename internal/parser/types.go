package parser

import (
	"cinder/internal/ast"
	"cinder/internal/diag"
	"cinder/internal/source"
	"cinder/internal/token"
)

// parseType разбирает тип:
//
//	auto | fn(A, B) -> R | (A, B) | Name[::Name]*[<T, ..>] с суффиксами * & [N] []
func (p *Parser) parseType() (ast.TypeID, bool) {
	base, ok := p.parseTypeBase()
	if !ok {
		return ast.NoTypeID, false
	}
	return p.parseTypeSuffixes(base)
}

func (p *Parser) parseTypeBase() (ast.TypeID, bool) {
	types := p.arenas.Types
	tok := p.peek()
	switch tok.Kind {
	case token.KwAuto:
		p.advance()
		return types.NewAuto(tok.Span), true

	case token.KwFn:
		p.advance()
		if _, ok := p.expect(token.LParen, diag.SynExpectType, "expected '(' after 'fn'"); !ok {
			return ast.NoTypeID, false
		}
		params, ok := p.parseTypeList(token.RParen)
		if !ok {
			return ast.NoTypeID, false
		}
		result := ast.NoTypeID
		if p.eat(token.Arrow) {
			if result, ok = p.parseType(); !ok {
				return ast.NoTypeID, false
			}
		}
		return types.NewFn(tok.Span.Cover(p.lastSpan), params, result), true

	case token.LParen:
		p.advance()
		elems, ok := p.parseTypeList(token.RParen)
		if !ok {
			return ast.NoTypeID, false
		}
		return types.NewTuple(tok.Span.Cover(p.lastSpan), elems), true

	case token.Ident:
		p.advance()
		if prim, isPrim := ast.LookupPrimitive(tok.Text); isPrim && !p.at(token.ColonColon) {
			return types.NewPrimitive(tok.Span, prim, p.intern(tok)), true
		}
		segments := []source.StringID{p.intern(tok)}
		for p.at(token.ColonColon) && p.peekN(1).Kind == token.Ident {
			p.advance()
			segments = append(segments, p.intern(p.advance()))
		}
		path := types.NewPath(tok.Span.Cover(p.lastSpan), segments)
		if !p.at(token.Lt) {
			return path, true
		}
		p.advance()
		args, ok := p.parseTypeArgs()
		if !ok {
			return ast.NoTypeID, false
		}
		return types.NewGeneric(tok.Span.Cover(p.lastSpan), path, args), true
	}
	return ast.NoTypeID, p.failHere(diag.SynExpectType, "expected type", "type")
}

func (p *Parser) parseTypeSuffixes(base ast.TypeID) (ast.TypeID, bool) {
	types := p.arenas.Types
	start := types.Get(base).Span
	for {
		switch p.peek().Kind {
		case token.Star:
			p.advance()
			base = types.NewPointer(start.Cover(p.lastSpan), ast.TypePointer, base)
		case token.Amp:
			p.advance()
			base = types.NewPointer(start.Cover(p.lastSpan), ast.TypeReference, base)
		case token.LBracket:
			// `T[N]` / `T[]`; `x[i]` в выражениях сюда не попадает
			var ok bool
			if base, ok = p.parseArrayBrackets(base, start); !ok {
				return ast.NoTypeID, false
			}
		default:
			return base, true
		}
	}
}

// parseArraySuffix handles C declarators: `int xs[3]`, applied after the name.
func (p *Parser) parseArraySuffix(typ ast.TypeID) (ast.TypeID, bool) {
	start := p.arenas.Types.Get(typ).Span
	for p.at(token.LBracket) {
		var ok bool
		if typ, ok = p.parseArrayBrackets(typ, start); !ok {
			return ast.NoTypeID, false
		}
	}
	return typ, true
}

func (p *Parser) parseArrayBrackets(elem ast.TypeID, start source.Span) (ast.TypeID, bool) {
	p.advance() // [
	length := ast.NoExprID
	if !p.at(token.RBracket) {
		var ok bool
		if length, ok = p.parseExpr(); !ok {
			return ast.NoTypeID, false
		}
	}
	if _, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' in array type"); !ok {
		return ast.NoTypeID, false
	}
	return p.arenas.Types.NewArray(start.Cover(p.lastSpan), elem, length), true
}

// parseTypeList разбирает типы через запятую до close (close съедается).
func (p *Parser) parseTypeList(closeKind token.Kind) ([]ast.TypeID, bool) {
	var out []ast.TypeID
	for !p.at(closeKind) {
		t, ok := p.parseType()
		if !ok {
			return nil, false
		}
		out = append(out, t)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(closeKind, diag.SynUnclosedDelimiter, "expected '"+closeKind.String()+"' to close type list"); !ok {
		return nil, false
	}
	return out, true
}

// parseTypeArgs разбирает `T, U>`; открывающая '<' уже съедена.
func (p *Parser) parseTypeArgs() ([]ast.TypeID, bool) {
	var out []ast.TypeID
	for {
		t, ok := p.parseType()
		if !ok {
			return nil, false
		}
		out = append(out, t)
		if !p.eat(token.Comma) {
			break
		}
	}
	if !p.eatCloseAngle() {
		return nil, p.failHere(diag.SynUnclosedDelimiter, "expected '>' to close type arguments", "'>'")
	}
	return out, true
}

// eatCloseAngle съедает '>' и умеет расщеплять '>>' в Vec<Vec<int>>.
func (p *Parser) eatCloseAngle() bool {
	tok := p.peek()
	switch tok.Kind {
	case token.Gt:
		p.advance()
		return true
	case token.Shr:
		first := tok
		first.Kind, first.Text = token.Gt, ">"
		first.Span.End = first.Span.Start + 1
		rest := tok
		rest.Kind, rest.Text, rest.Leading = token.Gt, ">", nil
		rest.Span.Start++
		p.buf[0] = rest
		p.lastSpan = first.Span
		return true
	}
	return false
}
