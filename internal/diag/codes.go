package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedChar         Code = 1005

	// Парсерные
	SynUnexpectedToken    Code = 2001
	SynExpectSemicolon    Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectType         Code = 2004
	SynExpectExpression   Code = 2005
	SynUnexpectedTopLevel Code = 2006
	SynUnclosedDelimiter  Code = 2007
	SynForBadHeader       Code = 2008
	SynSwitchBadArm       Code = 2009
	SynLabelNotLoop       Code = 2010
	SynMacroBadName       Code = 2101
	SynMacroDelimiter     Code = 2102
	SynMacroBadParams     Code = 2103
	SynMacroRedefined     Code = 2104

	// Семантические
	SemUndefinedVariable   Code = 3001
	SemTypeMismatch        Code = 3002
	SemDuplicateDefinition Code = 3003
	SemInvalidOperation    Code = 3004
	SemUnsupportedFeature  Code = 3005

	// Генерация
	GenUnsupported Code = 4001

	// Ошибки I/O
	IOLoadFileError  Code = 5001
	IOWriteFileError Code = 5002
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Bad number",
	LexUnterminatedChar:         "Unterminated char literal",
	SynUnexpectedToken:          "Unexpected token",
	SynExpectSemicolon:          "Expect semicolon",
	SynExpectIdentifier:         "Expect identifier",
	SynExpectType:               "Expect type",
	SynExpectExpression:         "Expect expression",
	SynUnexpectedTopLevel:       "Unexpected top level",
	SynUnclosedDelimiter:        "Unclosed delimiter",
	SynForBadHeader:             "Malformed for-loop header",
	SynSwitchBadArm:             "Malformed switch arm",
	SynLabelNotLoop:             "Label must precede a loop",
	SynMacroBadName:             "Macro name must use the double-underscore form",
	SynMacroDelimiter:           "Macro invoked with the wrong delimiter",
	SynMacroBadParams:           "Malformed macro parameter list",
	SynMacroRedefined:           "Macro defined twice",
	SemUndefinedVariable:        "Undefined variable",
	SemTypeMismatch:             "Type mismatch",
	SemDuplicateDefinition:      "Duplicate definition",
	SemInvalidOperation:         "Invalid operation",
	SemUnsupportedFeature:       "Unsupported feature",
	GenUnsupported:              "Unsupported construct in code generation",
	IOLoadFileError:             "I/O load file error",
	IOWriteFileError:            "I/O write file error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("GEN%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
