package parser

import (
	"fmt"
	"strings"

	"cinder/internal/ast"
	"cinder/internal/diag"
	"cinder/internal/source"
	"cinder/internal/token"
)

// MacroEntry is what the registry remembers about a #define.
type MacroEntry struct {
	Name   string
	Delim  ast.MacroDelim
	Params []string
	Item   ast.ItemID
	Span   source.Span
}

// Registry holds the macros of one compilation unit. Entries are never mutated
// after insertion.
type Registry struct {
	entries map[string]MacroEntry
	order   []string
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]MacroEntry)}
}

func (r *Registry) Lookup(name string) (MacroEntry, bool) {
	if r == nil {
		return MacroEntry{}, false
	}
	e, ok := r.entries[name]
	return e, ok
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// Names returns macro names in definition order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	return r.order
}

func (r *Registry) insert(e MacroEntry) {
	r.entries[e.Name] = e
	r.order = append(r.order, e.Name)
}

// checkMacroName validates the __NAME__ form; prefix and suffix are checked separately.
func checkMacroName(name string) string {
	hasPrefix := strings.HasPrefix(name, "__")
	hasSuffix := len(name) > 2 && strings.HasSuffix(name, "__")
	if hasPrefix && hasSuffix && len(name) <= 4 {
		return fmt.Sprintf("macro name '%s' needs a body between its double-underscore prefix and suffix", name)
	}
	switch {
	case !hasPrefix && !hasSuffix:
		return fmt.Sprintf("macro name '%s' must start and end with a double-underscore (write __%s__)", name, name)
	case !hasPrefix:
		return fmt.Sprintf("macro name '%s' is missing the double-underscore prefix", name)
	case !hasSuffix:
		return fmt.Sprintf("macro name '%s' is missing the double-underscore suffix", name)
	}
	return ""
}

// IsMacroName reports whether name follows the macro double-underscore convention.
func IsMacroName(name string) bool {
	return checkMacroName(name) == ""
}

func delimOf(k token.Kind) ast.MacroDelim {
	switch k {
	case token.LParen:
		return ast.DelimParens
	case token.LBracket:
		return ast.DelimBrackets
	case token.LBrace:
		return ast.DelimBraces
	}
	return ast.DelimNone
}

func closeOf(d ast.MacroDelim) token.Kind {
	switch d {
	case ast.DelimBrackets:
		return token.RBracket
	case ast.DelimBraces:
		return token.RBrace
	}
	return token.RParen
}

// parseMacroDef разбирает `#define __NAME__[(a, b)] body`.
// Скобка параметров должна идти вплотную к имени, иначе это часть тела.
func (p *Parser) parseMacroDef() (ast.ItemID, bool) {
	hashTok := p.advance()
	if kw := p.peek(); kw.Kind != token.Ident || kw.Text != "define" {
		return ast.NoItemID, p.failHere(diag.SynUnexpectedToken, "expected 'define' after '#'", "'define'")
	}
	p.advance()

	nameTok := p.peek()
	if nameTok.Kind != token.Ident || nameTok.HasNewlineBefore() {
		return ast.NoItemID, p.failHere(diag.SynExpectIdentifier, "expected macro name after #define", "identifier")
	}
	p.advance()
	if msg := checkMacroName(nameTok.Text); msg != "" {
		return ast.NoItemID, p.fail(diag.SynMacroBadName, nameTok.Span, msg)
	}
	if _, dup := p.macros.Lookup(nameTok.Text); dup {
		return ast.NoItemID, p.fail(diag.SynMacroRedefined, nameTok.Span, fmt.Sprintf("macro '%s' is already defined", nameTok.Text))
	}

	delim := ast.DelimNone
	var params []string
	var paramIDs []source.StringID
	if next := p.peek(); len(next.Leading) == 0 {
		delim = delimOf(next.Kind)
	}
	if delim != ast.DelimNone {
		p.advance()
		closeKind := closeOf(delim)
		for !p.at(closeKind) {
			tok, ok := p.expect(token.Ident, diag.SynMacroBadParams, "expected macro parameter name")
			if !ok {
				return ast.NoItemID, false
			}
			params = append(params, tok.Text)
			paramIDs = append(paramIDs, p.intern(tok))
			if !p.eat(token.Comma) {
				break
			}
		}
		if _, ok := p.expect(closeKind, diag.SynMacroBadParams, "expected '"+delim.Close()+"' to close macro parameters"); !ok {
			return ast.NoItemID, false
		}
	}

	// тело — до конца строки или ';'
	var body []token.Token
	for {
		tok := p.peek()
		if tok.Kind == token.EOF || tok.HasNewlineBefore() {
			break
		}
		p.advance()
		if tok.Kind == token.Semicolon {
			break
		}
		if tok.Kind == token.Invalid {
			return ast.NoItemID, p.fail(diag.SynUnexpectedToken, tok.Span, "invalid token in macro body")
		}
		body = append(body, tok)
	}

	span := hashTok.Span.Cover(p.lastSpan)
	name := p.intern(nameTok)
	item := p.arenas.Items.NewMacro(span, name, ast.MacroItem{Delim: delim, Params: paramIDs, Body: body})
	p.macros.insert(MacroEntry{Name: nameTok.Text, Delim: delim, Params: params, Item: item, Span: span})
	return item, true
}

// parseMacroCall разбирает вызов зарегистрированного макроса; имя уже съедено.
func (p *Parser) parseMacroCall(nameTok token.Token, entry MacroEntry) (ast.ExprID, bool) {
	used := delimOf(p.peek().Kind)
	if used != entry.Delim {
		return ast.NoExprID, p.fail(diag.SynMacroDelimiter, nameTok.Span.Cover(p.peek().Span),
			fmt.Sprintf("macro '%s' is defined with %s but invoked with %s", entry.Name, entry.Delim, used),
			entry.Delim.String())
	}
	name := p.intern(nameTok)
	if used == ast.DelimNone {
		return p.arenas.Exprs.NewMacroCall(nameTok.Span, name, used, nil), true
	}
	p.advance()
	args, ok := p.parseExprList(closeOf(used))
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewMacroCall(nameTok.Span.Cover(p.lastSpan), name, used, args), true
}
