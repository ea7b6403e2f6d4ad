package dialect

import "cinder/internal/ast"

// Assoc is the associativity of a binary operator.
type Assoc uint8

const (
	AssocLeft Assoc = iota
	AssocRight
	// AssocNone operators cannot be chained without parentheses.
	AssocNone
)

// Precedence levels shared by both targets. Higher binds tighter.
const (
	PrecLowest  = 0
	PrecAssign  = 1
	PrecTernary = 2
	PrecUnary   = 13
	PrecPostfix = 14
	PrecPrimary = 15
)

type opInfo struct {
	prec  int
	assoc Assoc
}

// closureBinary: comparisons share one non-associative level.
var closureBinary = map[ast.ExprBinaryOp]opInfo{
	ast.ExprBinaryLogicalOr:  {3, AssocLeft},
	ast.ExprBinaryLogicalAnd: {4, AssocLeft},
	ast.ExprBinaryEq:         {5, AssocNone},
	ast.ExprBinaryNotEq:      {5, AssocNone},
	ast.ExprBinaryLess:       {5, AssocNone},
	ast.ExprBinaryLessEq:     {5, AssocNone},
	ast.ExprBinaryGreater:    {5, AssocNone},
	ast.ExprBinaryGreaterEq:  {5, AssocNone},
	ast.ExprBinaryBitOr:      {6, AssocLeft},
	ast.ExprBinaryBitXor:     {7, AssocLeft},
	ast.ExprBinaryBitAnd:     {8, AssocLeft},
	ast.ExprBinaryShiftLeft:  {9, AssocLeft},
	ast.ExprBinaryShiftRight: {9, AssocLeft},
	ast.ExprBinaryAdd:        {10, AssocLeft},
	ast.ExprBinarySub:        {10, AssocLeft},
	ast.ExprBinaryMul:        {11, AssocLeft},
	ast.ExprBinaryDiv:        {11, AssocLeft},
	ast.ExprBinaryMod:        {11, AssocLeft},
}

var cstyleBinary = map[ast.ExprBinaryOp]opInfo{
	ast.ExprBinaryLogicalOr:  {3, AssocLeft},
	ast.ExprBinaryLogicalAnd: {4, AssocLeft},
	ast.ExprBinaryBitOr:      {5, AssocLeft},
	ast.ExprBinaryBitXor:     {6, AssocLeft},
	ast.ExprBinaryBitAnd:     {7, AssocLeft},
	ast.ExprBinaryEq:         {8, AssocLeft},
	ast.ExprBinaryNotEq:      {8, AssocLeft},
	ast.ExprBinaryLess:       {9, AssocLeft},
	ast.ExprBinaryLessEq:     {9, AssocLeft},
	ast.ExprBinaryGreater:    {9, AssocLeft},
	ast.ExprBinaryGreaterEq:  {9, AssocLeft},
	ast.ExprBinaryShiftLeft:  {10, AssocLeft},
	ast.ExprBinaryShiftRight: {10, AssocLeft},
	ast.ExprBinaryAdd:        {11, AssocLeft},
	ast.ExprBinarySub:        {11, AssocLeft},
	ast.ExprBinaryMul:        {12, AssocLeft},
	ast.ExprBinaryDiv:        {12, AssocLeft},
	ast.ExprBinaryMod:        {12, AssocLeft},
}

// Binary returns the precedence and associativity of op in t.
// Assignment operators are right-associative at PrecAssign.
func (t Target) Binary(op ast.ExprBinaryOp) (int, Assoc) {
	if op.IsAssign() {
		return PrecAssign, AssocRight
	}
	table := closureBinary
	if t == CStyle {
		table = cstyleBinary
	}
	if info, ok := table[op]; ok {
		return info.prec, info.assoc
	}
	return PrecLowest, AssocLeft
}

// CastOperand is the minimum precedence a cast operand may have without
// parentheses.
func (t Target) CastOperand() int {
	return PrecUnary
}

// Ternary is the precedence of a conditional expression. The closure form is
// an if-expression and is parenthesized wherever an operand is expected.
func (t Target) Ternary() int {
	if t == Closure {
		return PrecLowest
	}
	return PrecTernary
}

// NeedsParens reports whether a child of precedence child must be wrapped
// when it appears as the left or right operand of a parent operator.
func NeedsParens(child, parent int, assoc Assoc, right bool) bool {
	if child < parent {
		return true
	}
	if child > parent {
		return false
	}
	switch assoc {
	case AssocNone:
		return true
	case AssocRight:
		return !right
	}
	return right
}
