package dialect

import "cinder/internal/ast"

var closurePrimitives = map[ast.PrimKind]string{
	ast.PrimInt:    "i32",
	ast.PrimUint:   "u32",
	ast.PrimLong:   "i64",
	ast.PrimUlong:  "u64",
	ast.PrimShort:  "i16",
	ast.PrimChar:   "char",
	ast.PrimByte:   "u8",
	ast.PrimFloat:  "f64",
	ast.PrimDouble: "f64",
	ast.PrimBool:   "bool",
	ast.PrimVoid:   "()",
	ast.PrimString: "String",
	ast.PrimSizeT:  "usize",
	ast.PrimI8:     "i8",
	ast.PrimI16:    "i16",
	ast.PrimI32:    "i32",
	ast.PrimI64:    "i64",
	ast.PrimU8:     "u8",
	ast.PrimU16:    "u16",
	ast.PrimU32:    "u32",
	ast.PrimU64:    "u64",
	ast.PrimF32:    "f32",
	ast.PrimF64:    "f64",
}

// Primitive returns the spelling of a primitive type. CStyle keeps the
// spelling the source used (unsigned stays unsigned).
func (t Target) Primitive(kind ast.PrimKind, spelled string) string {
	if t == CStyle {
		return spelled
	}
	if s, ok := closurePrimitives[kind]; ok {
		return s
	}
	return spelled
}

// literalSuffixes maps C integer/float suffixes to closure suffixes.
var literalSuffixes = []struct {
	c, closure string
}{
	{"ull", "u64"}, {"llu", "u64"}, {"ul", "u64"}, {"lu", "u64"},
	{"ll", "i64"}, {"u", "u32"}, {"l", "i64"},
}

// IntLiteral rewrites a numeric literal's C suffix for t.
func (t Target) IntLiteral(lit string) string {
	if t == CStyle {
		return lit
	}
	if !isHex(lit) && len(lit) > 1 && (lit[len(lit)-1] == 'f' || lit[len(lit)-1] == 'F') {
		return lit[:len(lit)-1] + "f32"
	}
	for _, s := range literalSuffixes {
		if n := len(lit) - len(s.c); n > 0 && equalFold(lit[n:], s.c) {
			return lit[:n] + s.closure
		}
	}
	return lit
}

// FloatLiteral rewrites `.5`, `1.` and a trailing `f` for t.
func (t Target) FloatLiteral(lit string) string {
	if t == CStyle {
		return lit
	}
	suffix := ""
	if n := len(lit); n > 1 {
		switch lit[n-1] {
		case 'f', 'F':
			lit, suffix = lit[:n-1], "f32"
		case 'l', 'L':
			lit, suffix = lit[:n-1], "f64"
		}
	}
	if !HasLeadingDigit(lit) {
		lit = "0" + lit
	}
	if lit[len(lit)-1] == '.' {
		lit += "0"
	}
	return lit + suffix
}

func isHex(lit string) bool {
	return len(lit) > 1 && lit[0] == '0' && (lit[1] == 'x' || lit[1] == 'X')
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
