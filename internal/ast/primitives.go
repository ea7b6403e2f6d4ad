package ast

// PrimKind names a built-in scalar type of the C-style surface.
type PrimKind uint8

const (
	PrimInvalid PrimKind = iota
	PrimInt
	PrimUint
	PrimLong
	PrimUlong
	PrimShort
	PrimChar
	PrimByte
	PrimFloat
	PrimDouble
	PrimBool
	PrimVoid
	PrimString
	PrimSizeT
	PrimI8
	PrimI16
	PrimI32
	PrimI64
	PrimU8
	PrimU16
	PrimU32
	PrimU64
	PrimF32
	PrimF64
)

var primitiveByName = map[string]PrimKind{
	"int":      PrimInt,
	"uint":     PrimUint,
	"unsigned": PrimUint,
	"long":     PrimLong,
	"ulong":    PrimUlong,
	"short":    PrimShort,
	"char":     PrimChar,
	"byte":     PrimByte,
	"float":    PrimFloat,
	"double":   PrimDouble,
	"bool":     PrimBool,
	"void":     PrimVoid,
	"string":   PrimString,
	"size_t":   PrimSizeT,
	"i8":       PrimI8,
	"i16":      PrimI16,
	"i32":      PrimI32,
	"i64":      PrimI64,
	"u8":       PrimU8,
	"u16":      PrimU16,
	"u32":      PrimU32,
	"u64":      PrimU64,
	"f32":      PrimF32,
	"f64":      PrimF64,
}

// LookupPrimitive reports whether name spells a primitive type.
func LookupPrimitive(name string) (PrimKind, bool) {
	k, ok := primitiveByName[name]
	return k, ok
}

// PrimClass groups primitives for structural return-type checks.
type PrimClass uint8

const (
	ClassNone PrimClass = iota
	ClassInteger
	ClassFloat
	ClassBool
	ClassChar
	ClassString
	ClassVoid
)

func (k PrimKind) Class() PrimClass {
	switch k {
	case PrimInt, PrimUint, PrimLong, PrimUlong, PrimShort, PrimByte, PrimSizeT,
		PrimI8, PrimI16, PrimI32, PrimI64, PrimU8, PrimU16, PrimU32, PrimU64:
		return ClassInteger
	case PrimFloat, PrimDouble, PrimF32, PrimF64:
		return ClassFloat
	case PrimBool:
		return ClassBool
	case PrimChar:
		return ClassChar
	case PrimString:
		return ClassString
	case PrimVoid:
		return ClassVoid
	}
	return ClassNone
}

func (c PrimClass) String() string {
	switch c {
	case ClassInteger:
		return "integer"
	case ClassFloat:
		return "float"
	case ClassBool:
		return "bool"
	case ClassChar:
		return "char"
	case ClassString:
		return "string"
	case ClassVoid:
		return "void"
	}
	return "unknown"
}
