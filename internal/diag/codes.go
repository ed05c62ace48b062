package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedTemplate     Code = 1005
	LexUnterminatedRegex        Code = 1006

	// Парсерные
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynExpectIdentifier   Code = 2002
	SynExpectExpression   Code = 2003
	SynExpectSemicolon    Code = 2004
	SynUnclosedParen      Code = 2005
	SynUnclosedBrace      Code = 2006
	SynUnclosedBracket    Code = 2007
	SynExpectColon        Code = 2008
	SynExpectType         Code = 2009
	SynBadDestructuring   Code = 2010
	SynBadClassMember     Code = 2011
	SynBadInterfaceMember Code = 2012
	SynExpectTemplatePart Code = 2013
	SynBadAssignTarget    Code = 2014

	// Lint rules
	LintInfo Code = 4000
	// LintUnboundMethod flags a method reference detached from its receiver.
	LintUnboundMethod Code = 4001
	// LintUnboundMethodNoThis additionally suggests declaring a `this` parameter.
	LintUnboundMethodNoThis Code = 4002

	// IO errors (driver)
	IOLoadFileError Code = 9001
)

var codeNames = map[Code]string{
	UnknownCode: "E0000",

	LexInfo:                     "LEX1000",
	LexUnknownChar:              "LEX1001",
	LexUnterminatedString:       "LEX1002",
	LexUnterminatedBlockComment: "LEX1003",
	LexBadNumber:                "LEX1004",
	LexUnterminatedTemplate:     "LEX1005",
	LexUnterminatedRegex:        "LEX1006",

	SynInfo:               "SYN2000",
	SynUnexpectedToken:    "SYN2001",
	SynExpectIdentifier:   "SYN2002",
	SynExpectExpression:   "SYN2003",
	SynExpectSemicolon:    "SYN2004",
	SynUnclosedParen:      "SYN2005",
	SynUnclosedBrace:      "SYN2006",
	SynUnclosedBracket:    "SYN2007",
	SynExpectColon:        "SYN2008",
	SynExpectType:         "SYN2009",
	SynBadDestructuring:   "SYN2010",
	SynBadClassMember:     "SYN2011",
	SynBadInterfaceMember: "SYN2012",
	SynExpectTemplatePart: "SYN2013",
	SynBadAssignTarget:    "SYN2014",

	LintInfo:                "LINT4000",
	LintUnboundMethod:       "LINT4001",
	LintUnboundMethodNoThis: "LINT4002",

	IOLoadFileError: "IO9001",
}

func (c Code) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("E%04d", uint16(c))
}
