package parser

import (
	"cinder/internal/ast"
	"cinder/internal/diag"
	"cinder/internal/source"
	"cinder/internal/token"
)

// parseItems — основной цикл верхнего уровня: пока не EOF — parseItem.
func (p *Parser) parseItems() bool {
	for !p.at(token.EOF) {
		itemID, ok := p.parseItem()
		if !ok {
			return false
		}
		p.arenas.PushItem(p.file, itemID)
	}
	return true
}

// parseItem выбирает по первому токену нужный распознаватель top-level конструкции.
func (p *Parser) parseItem() (ast.ItemID, bool) {
	if p.at(token.Hash) {
		return p.parseMacroDef()
	}

	start := p.peek().Span
	vis := ast.VisPublic
	switch p.peek().Kind {
	case token.KwStatic:
		p.advance()
		vis = ast.VisPrivate
	case token.KwPub:
		p.advance()
	}

	switch p.peek().Kind {
	case token.KwStruct:
		return p.parseStructItem(start, vis)
	case token.KwEnum:
		return p.parseEnumItem(start, vis)
	case token.KwTypedef:
		return p.parseTypedefItem(start, vis)
	case token.KwConst:
		return p.parseConstItem(start, vis)
	case token.Ident, token.KwAuto, token.KwFn, token.LParen:
		return p.parseFnItem(start, vis)
	case token.Invalid:
		return ast.NoItemID, p.failHere(diag.SynUnexpectedToken, "invalid token")
	default:
		return ast.NoItemID, p.failHere(diag.SynUnexpectedTopLevel, "unexpected top-level construct",
			"function", "'struct'", "'enum'", "'typedef'", "'const'", "'#define'")
	}
}

// parseFnItem: `Type name[<T, U>](Type a, Type b) { ... }`
func (p *Parser) parseFnItem(start source.Span, vis ast.Visibility) (ast.ItemID, bool) {
	result, ok := p.parseType()
	if !ok {
		return ast.NoItemID, false
	}
	name, nameSpan, ok := p.parseIdent("function name")
	if !ok {
		return ast.NoItemID, false
	}
	var generics []source.StringID
	if p.at(token.Lt) {
		if generics, ok = p.parseGenericParams(); !ok {
			return ast.NoItemID, false
		}
	}
	if !p.at(token.LParen) {
		return ast.NoItemID, p.failHere(diag.SynUnexpectedTopLevel, "expected '(' after function name", "'('")
	}
	decl, ok := p.parseFnRest(result, name, nameSpan)
	if !ok {
		return ast.NoItemID, false
	}
	decl.Generics = generics
	decl.Span = start.Cover(p.lastSpan)
	return p.arenas.Items.NewFn(decl.Span, vis, decl), true
}

// parseFnRest разбирает параметры и тело; общий код для функций верхнего уровня и вложенных.
func (p *Parser) parseFnRest(result ast.TypeID, name source.StringID, nameSpan source.Span) (ast.FnDecl, bool) {
	params, ok := p.parseFnParams()
	if !ok {
		return ast.FnDecl{}, false
	}
	if !p.at(token.LBrace) {
		return ast.FnDecl{}, p.failHere(diag.SynUnexpectedToken, "expected function body", "'{'")
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.FnDecl{}, false
	}
	return ast.FnDecl{
		Name:     name,
		NameSpan: nameSpan,
		Params:   params,
		Result:   result,
		Body:     body,
	}, true
}

// parseFnParams: `()`, `(void)` или `(Type a, Type b[N])`.
func (p *Parser) parseFnParams() ([]ast.FnParam, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '('"); !ok {
		return nil, false
	}
	if p.peek().Text == "void" && p.peekN(1).Kind == token.RParen {
		p.advance()
	}
	var params []ast.FnParam
	for !p.at(token.RParen) {
		start := p.peek().Span
		typ, ok := p.parseType()
		if !ok {
			return nil, false
		}
		name, _, ok := p.parseIdent("parameter name")
		if !ok {
			return nil, false
		}
		if typ, ok = p.parseArraySuffix(typ); !ok {
			return nil, false
		}
		params = append(params, ast.FnParam{Name: name, Type: typ, Span: start.Cover(p.lastSpan)})
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close parameter list"); !ok {
		return nil, false
	}
	return params, true
}

// parseGenericParams: `<T, U>`
func (p *Parser) parseGenericParams() ([]source.StringID, bool) {
	p.advance() // <
	var out []source.StringID
	for {
		name, _, ok := p.parseIdent("type parameter name")
		if !ok {
			return nil, false
		}
		out = append(out, name)
		if !p.eat(token.Comma) {
			break
		}
	}
	if !p.eatCloseAngle() {
		return nil, p.failHere(diag.SynUnclosedDelimiter, "expected '>' to close type parameters", "'>'")
	}
	return out, true
}

// parseStructItem: `struct Name[<T>] { Type field; ... }` с необязательной ';'
func (p *Parser) parseStructItem(start source.Span, vis ast.Visibility) (ast.ItemID, bool) {
	p.advance() // struct
	name, _, ok := p.parseIdent("struct name")
	if !ok {
		return ast.NoItemID, false
	}
	var data ast.StructItem
	if p.at(token.Lt) {
		if data.Generics, ok = p.parseGenericParams(); !ok {
			return ast.NoItemID, false
		}
	}
	if _, ok = p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after struct name"); !ok {
		return ast.NoItemID, false
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		fieldStart := p.peek().Span
		typ, ok := p.parseType()
		if !ok {
			return ast.NoItemID, false
		}
		fieldName, _, ok := p.parseIdent("field name")
		if !ok {
			return ast.NoItemID, false
		}
		if typ, ok = p.parseArraySuffix(typ); !ok {
			return ast.NoItemID, false
		}
		if _, ok = p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after struct field"); !ok {
			return ast.NoItemID, false
		}
		data.Fields = append(data.Fields, ast.StructField{Name: fieldName, Type: typ, Span: fieldStart.Cover(p.lastSpan)})
	}
	if _, ok = p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close struct"); !ok {
		return ast.NoItemID, false
	}
	p.eat(token.Semicolon)
	return p.arenas.Items.NewStruct(start.Cover(p.lastSpan), name, vis, data), true
}

// parseEnumItem: `enum Name { A, B = 2, C }`
func (p *Parser) parseEnumItem(start source.Span, vis ast.Visibility) (ast.ItemID, bool) {
	p.advance() // enum
	name, _, ok := p.parseIdent("enum name")
	if !ok {
		return ast.NoItemID, false
	}
	if _, ok = p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after enum name"); !ok {
		return ast.NoItemID, false
	}
	var data ast.EnumItem
	for !p.at(token.RBrace) {
		variant, span, ok := p.parseIdent("enum variant")
		if !ok {
			return ast.NoItemID, false
		}
		v := ast.EnumVariant{Name: variant, Span: span}
		if p.eat(token.Assign) {
			if v.Value, ok = p.parseExpr(); !ok {
				return ast.NoItemID, false
			}
			v.Span = span.Cover(p.lastSpan)
		}
		data.Variants = append(data.Variants, v)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok = p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close enum"); !ok {
		return ast.NoItemID, false
	}
	p.eat(token.Semicolon)
	return p.arenas.Items.NewEnum(start.Cover(p.lastSpan), name, vis, data), true
}

// parseTypedefItem: `typedef Type Name;`
func (p *Parser) parseTypedefItem(start source.Span, vis ast.Visibility) (ast.ItemID, bool) {
	p.advance() // typedef
	typ, ok := p.parseType()
	if !ok {
		return ast.NoItemID, false
	}
	name, _, ok := p.parseIdent("typedef name")
	if !ok {
		return ast.NoItemID, false
	}
	if _, ok = p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after typedef"); !ok {
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewTypedef(start.Cover(p.lastSpan), name, vis, typ), true
}

// parseConstItem: `const Type NAME = expr;`
func (p *Parser) parseConstItem(start source.Span, vis ast.Visibility) (ast.ItemID, bool) {
	p.advance() // const
	typ, ok := p.parseType()
	if !ok {
		return ast.NoItemID, false
	}
	name, _, ok := p.parseIdent("constant name")
	if !ok {
		return ast.NoItemID, false
	}
	if _, ok = p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in constant declaration"); !ok {
		return ast.NoItemID, false
	}
	value, ok := p.parseExpr()
	if !ok {
		return ast.NoItemID, false
	}
	if _, ok = p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after constant"); !ok {
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewConst(start.Cover(p.lastSpan), name, vis, ast.ConstItem{Type: typ, Value: value}), true
}
