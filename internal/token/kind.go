package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident

	KwLet      // let
	KwVar      // var
	KwConst    // const
	KwIf       // if
	KwElse     // else
	KwWhile    // while
	KwFor      // for
	KwIn       // in
	KwSwitch   // switch
	KwCase     // case
	KwDefault  // default
	KwBreak    // break
	KwContinue // continue
	KwReturn   // return
	KwStruct   // struct
	KwEnum     // enum
	KwTypedef  // typedef
	KwStatic   // static
	KwPub      // pub
	KwTrue     // true
	KwFalse    // false
	KwNull     // null
	KwAuto     // auto
	KwFn       // fn

	IntLit
	FloatLit
	StringLit
	CharLit

	Plus          // +
	Minus         // -
	Star          // *
	Slash         // /
	Percent       // %
	Assign        // =
	PlusAssign    // +=
	MinusAssign   // -=
	StarAssign    // *=
	SlashAssign   // /=
	PercentAssign // %=
	AmpAssign     // &=
	PipeAssign    // |=
	CaretAssign   // ^=
	ShlAssign     // <<=
	ShrAssign     // >>=
	EqEq          // ==
	Bang          // !
	BangEq        // !=
	Lt            // <
	LtEq          // <=
	Gt            // >
	GtEq          // >=
	Shl           // <<
	Shr           // >>
	Amp           // &
	Pipe          // |
	Caret         // ^
	Tilde         // ~
	AndAnd        // &&
	OrOr          // ||
	PlusPlus      // ++
	MinusMinus    // --
	Question      // ?
	Colon         // :
	ColonColon    // ::
	Semicolon     // ;
	Comma         // ,
	Dot           // .
	Arrow         // ->
	LParen        // (
	RParen        // )
	LBrace        // {
	RBrace        // }
	LBracket      // [
	RBracket      // ]
	Hash          // #

	kindCount
)

var kindText = [kindCount]string{
	Invalid:       "invalid token",
	EOF:           "end of file",
	Ident:         "identifier",
	KwLet:         "let",
	KwVar:         "var",
	KwConst:       "const",
	KwIf:          "if",
	KwElse:        "else",
	KwWhile:       "while",
	KwFor:         "for",
	KwIn:          "in",
	KwSwitch:      "switch",
	KwCase:        "case",
	KwDefault:     "default",
	KwBreak:       "break",
	KwContinue:    "continue",
	KwReturn:      "return",
	KwStruct:      "struct",
	KwEnum:        "enum",
	KwTypedef:     "typedef",
	KwStatic:      "static",
	KwPub:         "pub",
	KwTrue:        "true",
	KwFalse:       "false",
	KwNull:        "null",
	KwAuto:        "auto",
	KwFn:          "fn",
	IntLit:        "integer literal",
	FloatLit:      "float literal",
	StringLit:     "string literal",
	CharLit:       "char literal",
	Plus:          "+",
	Minus:         "-",
	Star:          "*",
	Slash:         "/",
	Percent:       "%",
	Assign:        "=",
	PlusAssign:    "+=",
	MinusAssign:   "-=",
	StarAssign:    "*=",
	SlashAssign:   "/=",
	PercentAssign: "%=",
	AmpAssign:     "&=",
	PipeAssign:    "|=",
	CaretAssign:   "^=",
	ShlAssign:     "<<=",
	ShrAssign:     ">>=",
	EqEq:          "==",
	Bang:          "!",
	BangEq:        "!=",
	Lt:            "<",
	LtEq:          "<=",
	Gt:            ">",
	GtEq:          ">=",
	Shl:           "<<",
	Shr:           ">>",
	Amp:           "&",
	Pipe:          "|",
	Caret:         "^",
	Tilde:         "~",
	AndAnd:        "&&",
	OrOr:          "||",
	PlusPlus:      "++",
	MinusMinus:    "--",
	Question:      "?",
	Colon:         ":",
	ColonColon:    "::",
	Semicolon:     ";",
	Comma:         ",",
	Dot:           ".",
	Arrow:         "->",
	LParen:        "(",
	RParen:        ")",
	LBrace:        "{",
	RBrace:        "}",
	LBracket:      "[",
	RBracket:      "]",
	Hash:          "#",
}

// String returns the spelling used in diagnostics: punctuation and keywords
// verbatim, everything else as a short description.
func (k Kind) String() string {
	if k < kindCount {
		return kindText[k]
	}
	return "unknown token"
}

// IsAssignOp reports whether k is '=' or a compound assignment.
func (k Kind) IsAssignOp() bool {
	return k >= Assign && k <= ShrAssign
}
