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
	LexUnterminatedChar         Code = 1005

	// Парсерные
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnclosedDelimiter  Code = 2002
	SynUnclosedParen      Code = 2003
	SynUnclosedBrace      Code = 2004
	SynExpectSemicolon    Code = 2005
	SynExpectIdentifier   Code = 2006
	SynExpectType         Code = 2007
	SynUnexpectedTopLevel Code = 2008
	SynExpectRightBracket Code = 2009
	SynModifierNotAllowed Code = 2010
	SynExpectAnnotation   Code = 2011

	// Семантические
	SemaInfo           Code = 3000
	SemaError          Code = 3001
	SemaUnresolvedType Code = 3002
	SemaDuplicateType  Code = 3003

	// Event-bus listeners (3100-3199)
	BusListenerNotPublic Code = 3100
	BusListenerArity     Code = 3101
	BusEventTypeNotEvent Code = 3102
	BusWrongForgeBus     Code = 3103
	BusWrongModBus       Code = 3104

	// Ошибки I/O
	IOLoadFileError Code = 4001
	IONoSources     Code = 4002

	// Annotation processors
	ProcInfo    Code = 5000
	ProcFailure Code = 5001

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Bad number",
		LexUnterminatedChar:         "Unterminated character literal",
		SynInfo:                     "Syntax information",
		SynUnexpectedToken:          "Unexpected token",
		SynUnclosedDelimiter:        "Unclosed delimiter",
		SynUnclosedParen:            "Unclosed parenthesis",
		SynUnclosedBrace:            "Unclosed brace",
		SynExpectSemicolon:          "Expect semicolon",
		SynExpectIdentifier:         "Expect identifier",
		SynExpectType:               "Expect type",
		SynUnexpectedTopLevel:       "Unexpected top level",
		SynExpectRightBracket:       "Expect right bracket",
		SynModifierNotAllowed:       "Modifier not allowed here",
		SynExpectAnnotation:         "Expect annotation name",
		SemaInfo:                    "Semantic information",
		SemaError:                   "Semantic error",
		SemaUnresolvedType:          "Unresolved type",
		SemaDuplicateType:           "Duplicate type declaration",
		BusListenerNotPublic:        "Listener visibility",
		BusListenerArity:            "Listener parameter count",
		BusEventTypeNotEvent:        "Listener parameter is not an event",
		BusWrongForgeBus:            "Mod-bus event on the Forge bus",
		BusWrongModBus:              "Forge-bus event on the Mod bus",
		IOLoadFileError:             "I/O load file error",
		IONoSources:                 "No source files",
		ProcInfo:                    "Annotation processor information",
		ProcFailure:                 "Annotation processor failure",
		ObsInfo:                     "Observability information",
		ObsTimings:                  "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRC%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
