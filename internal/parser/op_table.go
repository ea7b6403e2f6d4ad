package parser

import (
	"cinder/internal/ast"
	"cinder/internal/token"
)

// Таблица приоритетов для бинарных операторов
// Чем больше число, тем выше приоритет. Присваивание и ?: разбираются отдельно.
const (
	precLogicalOr      = 1 // ||
	precLogicalAnd     = 2 // &&
	precBitwiseOr      = 3 // |
	precBitwiseXor     = 4 // ^
	precBitwiseAnd     = 5 // &
	precEquality       = 6 // == !=
	precComparison     = 7 // < <= > >=
	precShift          = 8 // << >>
	precAdditive       = 9 // + -
	precMultiplicative = 10
)

var binaryOps = map[token.Kind]struct {
	prec int
	op   ast.ExprBinaryOp
}{
	token.OrOr:    {precLogicalOr, ast.ExprBinaryLogicalOr},
	token.AndAnd:  {precLogicalAnd, ast.ExprBinaryLogicalAnd},
	token.Pipe:    {precBitwiseOr, ast.ExprBinaryBitOr},
	token.Caret:   {precBitwiseXor, ast.ExprBinaryBitXor},
	token.Amp:     {precBitwiseAnd, ast.ExprBinaryBitAnd},
	token.EqEq:    {precEquality, ast.ExprBinaryEq},
	token.BangEq:  {precEquality, ast.ExprBinaryNotEq},
	token.Lt:      {precComparison, ast.ExprBinaryLess},
	token.LtEq:    {precComparison, ast.ExprBinaryLessEq},
	token.Gt:      {precComparison, ast.ExprBinaryGreater},
	token.GtEq:    {precComparison, ast.ExprBinaryGreaterEq},
	token.Shl:     {precShift, ast.ExprBinaryShiftLeft},
	token.Shr:     {precShift, ast.ExprBinaryShiftRight},
	token.Plus:    {precAdditive, ast.ExprBinaryAdd},
	token.Minus:   {precAdditive, ast.ExprBinarySub},
	token.Star:    {precMultiplicative, ast.ExprBinaryMul},
	token.Slash:   {precMultiplicative, ast.ExprBinaryDiv},
	token.Percent: {precMultiplicative, ast.ExprBinaryMod},
}

var assignOps = map[token.Kind]ast.ExprBinaryOp{
	token.Assign:        ast.ExprBinaryAssign,
	token.PlusAssign:    ast.ExprBinaryAddAssign,
	token.MinusAssign:   ast.ExprBinarySubAssign,
	token.StarAssign:    ast.ExprBinaryMulAssign,
	token.SlashAssign:   ast.ExprBinaryDivAssign,
	token.PercentAssign: ast.ExprBinaryModAssign,
	token.AmpAssign:     ast.ExprBinaryBitAndAssign,
	token.PipeAssign:    ast.ExprBinaryBitOrAssign,
	token.CaretAssign:   ast.ExprBinaryBitXorAssign,
	token.ShlAssign:     ast.ExprBinaryShlAssign,
	token.ShrAssign:     ast.ExprBinaryShrAssign,
}

// getUnaryOperator возвращает тип префиксного оператора для токена
func getUnaryOperator(kind token.Kind) (ast.ExprUnaryOp, bool) {
	switch kind {
	case token.Plus:
		return ast.ExprUnaryPlus, true
	case token.Minus:
		return ast.ExprUnaryMinus, true
	case token.Bang:
		return ast.ExprUnaryNot, true
	case token.Tilde:
		return ast.ExprUnaryBitNot, true
	case token.Star:
		return ast.ExprUnaryDeref, true
	case token.Amp:
		return ast.ExprUnaryAddr, true
	case token.PlusPlus:
		return ast.ExprUnaryPreInc, true
	case token.MinusMinus:
		return ast.ExprUnaryPreDec, true
	}
	return ast.ExprUnaryPlus, false
}
