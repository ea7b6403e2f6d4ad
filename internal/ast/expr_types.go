package ast

import (
	"cinder/internal/source"
)

// ExprKind enumerates the different kinds of expressions.
type ExprKind uint8

const (
	ExprIdent ExprKind = iota
	ExprLit
	ExprBinary
	ExprUnary
	ExprCall
	ExprIndex
	// ExprMember covers both a.b and p->b.
	ExprMember
	// ExprPath is a scoped name A::b, optionally with generic args.
	ExprPath
	ExprCast
	ExprTernary
	ExprTuple
	ExprArray
	ExprStructInit
	ExprMacroCall
)

// Expr represents an expression node in the AST.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// ExprBinaryOp enumerates binary operator kinds.
type ExprBinaryOp uint8

const (
	// Арифметические
	ExprBinaryAdd ExprBinaryOp = iota
	ExprBinarySub
	ExprBinaryMul
	ExprBinaryDiv
	ExprBinaryMod

	// Битовые
	ExprBinaryBitAnd
	ExprBinaryBitOr
	ExprBinaryBitXor
	ExprBinaryShiftLeft
	ExprBinaryShiftRight

	// Логические
	ExprBinaryLogicalAnd
	ExprBinaryLogicalOr

	// Сравнения
	ExprBinaryEq
	ExprBinaryNotEq
	ExprBinaryLess
	ExprBinaryLessEq
	ExprBinaryGreater
	ExprBinaryGreaterEq

	// Присваивание
	ExprBinaryAssign
	ExprBinaryAddAssign
	ExprBinarySubAssign
	ExprBinaryMulAssign
	ExprBinaryDivAssign
	ExprBinaryModAssign
	ExprBinaryBitAndAssign
	ExprBinaryBitOrAssign
	ExprBinaryBitXorAssign
	ExprBinaryShlAssign
	ExprBinaryShrAssign
)

var binaryOpText = [...]string{
	ExprBinaryAdd:          "+",
	ExprBinarySub:          "-",
	ExprBinaryMul:          "*",
	ExprBinaryDiv:          "/",
	ExprBinaryMod:          "%",
	ExprBinaryBitAnd:       "&",
	ExprBinaryBitOr:        "|",
	ExprBinaryBitXor:       "^",
	ExprBinaryShiftLeft:    "<<",
	ExprBinaryShiftRight:   ">>",
	ExprBinaryLogicalAnd:   "&&",
	ExprBinaryLogicalOr:    "||",
	ExprBinaryEq:           "==",
	ExprBinaryNotEq:        "!=",
	ExprBinaryLess:         "<",
	ExprBinaryLessEq:       "<=",
	ExprBinaryGreater:      ">",
	ExprBinaryGreaterEq:    ">=",
	ExprBinaryAssign:       "=",
	ExprBinaryAddAssign:    "+=",
	ExprBinarySubAssign:    "-=",
	ExprBinaryMulAssign:    "*=",
	ExprBinaryDivAssign:    "/=",
	ExprBinaryModAssign:    "%=",
	ExprBinaryBitAndAssign: "&=",
	ExprBinaryBitOrAssign:  "|=",
	ExprBinaryBitXorAssign: "^=",
	ExprBinaryShlAssign:    "<<=",
	ExprBinaryShrAssign:    ">>=",
}

// String returns the symbol representation of a binary operator.
func (op ExprBinaryOp) String() string {
	if int(op) < len(binaryOpText) {
		return binaryOpText[op]
	}
	return "?"
}

// IsAssign reports whether op writes its left operand.
func (op ExprBinaryOp) IsAssign() bool {
	return op >= ExprBinaryAssign && op <= ExprBinaryShrAssign
}

// IsComparison reports whether op yields a bool from two operands.
func (op ExprBinaryOp) IsComparison() bool {
	return op >= ExprBinaryEq && op <= ExprBinaryGreaterEq
}

// ExprUnaryOp enumerates unary operator kinds.
type ExprUnaryOp uint8

const (
	ExprUnaryPlus ExprUnaryOp = iota
	ExprUnaryMinus
	ExprUnaryNot
	ExprUnaryBitNot
	ExprUnaryDeref
	ExprUnaryAddr
	ExprUnaryPreInc
	ExprUnaryPreDec
	ExprUnaryPostInc
	ExprUnaryPostDec
)

func (op ExprUnaryOp) String() string {
	switch op {
	case ExprUnaryPlus:
		return "+"
	case ExprUnaryMinus:
		return "-"
	case ExprUnaryNot:
		return "!"
	case ExprUnaryBitNot:
		return "~"
	case ExprUnaryDeref:
		return "*"
	case ExprUnaryAddr:
		return "&"
	case ExprUnaryPreInc, ExprUnaryPostInc:
		return "++"
	case ExprUnaryPreDec, ExprUnaryPostDec:
		return "--"
	}
	return "?"
}

// IsIncDec reports ++/-- in either position.
func (op ExprUnaryOp) IsIncDec() bool {
	return op >= ExprUnaryPreInc
}

// IsPostfix reports x++ and x--.
func (op ExprUnaryOp) IsPostfix() bool {
	return op == ExprUnaryPostInc || op == ExprUnaryPostDec
}

type ExprLitKind uint8

const (
	ExprLitInt ExprLitKind = iota
	ExprLitFloat
	ExprLitString
	ExprLitChar
	ExprLitTrue
	ExprLitFalse
	ExprLitNull
)

type ExprIdentData struct {
	Name source.StringID
}

// ExprLiteralData keeps the literal exactly as written.
type ExprLiteralData struct {
	Kind  ExprLitKind
	Value source.StringID
}

type ExprBinaryData struct {
	Op    ExprBinaryOp
	Left  ExprID
	Right ExprID
}

type ExprUnaryData struct {
	Op      ExprUnaryOp
	Operand ExprID
}

type ExprCallData struct {
	Target ExprID
	Args   []ExprID
}

type ExprIndexData struct {
	Target ExprID
	Index  ExprID
}

type ExprMemberData struct {
	Target ExprID
	Field  source.StringID
	Arrow  bool // p->f
}

type ExprPathData struct {
	Segments []source.StringID
	// TypeArgs apply to the first segment: Vec<int>::new.
	TypeArgs []TypeID
}

type ExprCastData struct {
	Type  TypeID
	Value ExprID
}

type ExprTernaryData struct {
	Cond ExprID
	Then ExprID
	Else ExprID
}

type ExprTupleData struct {
	Elements []ExprID
}

type ExprArrayData struct {
	Elements []ExprID
}

type StructFieldInit struct {
	Name  source.StringID
	Value ExprID
	Span  source.Span
}

type ExprStructInitData struct {
	Type   TypeID
	Fields []StructFieldInit
}

// MacroDelim is the bracket family of a macro's parameter list.
type MacroDelim uint8

const (
	DelimNone MacroDelim = iota
	DelimParens
	DelimBrackets
	DelimBraces
)

func (d MacroDelim) String() string {
	switch d {
	case DelimParens:
		return "parentheses"
	case DelimBrackets:
		return "square brackets"
	case DelimBraces:
		return "braces"
	}
	return "no delimiter"
}

// Open returns the opening bracket, "" for DelimNone.
func (d MacroDelim) Open() string {
	switch d {
	case DelimParens:
		return "("
	case DelimBrackets:
		return "["
	case DelimBraces:
		return "{"
	}
	return ""
}

func (d MacroDelim) Close() string {
	switch d {
	case DelimParens:
		return ")"
	case DelimBrackets:
		return "]"
	case DelimBraces:
		return "}"
	}
	return ""
}

type ExprMacroCallData struct {
	Name  source.StringID
	Delim MacroDelim
	Args  []ExprID
}
