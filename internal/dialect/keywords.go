package dialect

import (
	"strings"

	"cinder/internal/ast"
)

// closureReserved lists words that are plain identifiers in the input but
// keywords of the closure dialect. They are emitted as raw identifiers.
var closureReserved = map[string]struct{}{
	"abstract": {}, "as": {}, "async": {}, "await": {}, "become": {},
	"box": {}, "do": {}, "dyn": {}, "extern": {}, "final": {},
	"impl": {}, "loop": {}, "macro": {}, "match": {}, "mod": {},
	"move": {}, "mut": {}, "override": {}, "priv": {}, "ref": {},
	"trait": {}, "try": {}, "type": {}, "typeof": {}, "unsafe": {},
	"unsized": {}, "use": {}, "virtual": {}, "where": {}, "yield": {},
}

// closureUnescapable cannot be written as raw identifiers and get a suffix.
var closureUnescapable = map[string]struct{}{
	"self": {}, "Self": {}, "super": {}, "crate": {}, "_": {},
}

// Ident renders a user identifier so it cannot collide with a target keyword.
func (t Target) Ident(name string) string {
	if t != Closure {
		return name
	}
	if _, ok := closureReserved[name]; ok {
		return "r#" + name
	}
	if _, ok := closureUnescapable[name]; ok {
		return name + "_"
	}
	return name
}

// IsReserved reports whether name needs escaping in t.
func (t Target) IsReserved(name string) bool {
	return t.Ident(name) != name
}

// Visibility returns the keyword prefix for an item, trailing space included,
// or "" when the target's default already matches.
func (t Target) Visibility(v ast.Visibility) string {
	switch t {
	case Closure:
		if v == ast.VisPublic {
			return "pub "
		}
	case CStyle:
		if v == ast.VisPrivate {
			return "static "
		}
	}
	return ""
}

// LetKeyword is the declaration keyword for a local in the closure dialect.
func LetKeyword(mutable bool) string {
	if mutable {
		return "let mut"
	}
	return "let"
}

// MacroName renders a macro invocation head: __SQ__! or __SQ__.
func (t Target) MacroName(name string) string {
	if t == Closure {
		return name + "!"
	}
	return name
}

// MacroParam renders a macro metavariable reference inside a body.
func (t Target) MacroParam(name string) string {
	if t == Closure {
		return "$" + name
	}
	return name
}

// NullLiteral is the spelling of the null pointer constant.
func (t Target) NullLiteral() string {
	if t == Closure {
		return "std::ptr::null_mut()"
	}
	return "null"
}

// Wildcard is the catch-all switch arm head.
func (t Target) Wildcard() string {
	if t == Closure {
		return "_"
	}
	return "default"
}

// PatternSeparator joins merged arm patterns.
func (t Target) PatternSeparator() string {
	if t == Closure {
		return " | "
	}
	return ", "
}

// HasLeadingDigit reports whether a float literal is written the way the
// closure dialect requires: digits on both sides of the dot.
func HasLeadingDigit(lit string) bool {
	return lit != "" && !strings.HasPrefix(lit, ".")
}
