package token

var keywords = map[string]Kind{
	"let":      KwLet,
	"var":      KwVar,
	"const":    KwConst,
	"if":       KwIf,
	"else":     KwElse,
	"while":    KwWhile,
	"for":      KwFor,
	"in":       KwIn,
	"switch":   KwSwitch,
	"case":     KwCase,
	"default":  KwDefault,
	"break":    KwBreak,
	"continue": KwContinue,
	"return":   KwReturn,
	"struct":   KwStruct,
	"enum":     KwEnum,
	"typedef":  KwTypedef,
	"static":   KwStatic,
	"pub":      KwPub,
	"true":     KwTrue,
	"false":    KwFalse,
	"null":     KwNull,
	"auto":     KwAuto,
	"fn":       KwFn,
}

// LookupKeyword возвращает Kind ключевого слова; регистр важен.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
