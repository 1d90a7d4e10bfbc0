package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident

	// литералы
	IntLit
	FloatLit
	CharLit
	StringLit // "..." и текстовые блоки """..."""
	BoolLit   // true/false
	NullLit   // null

	// ключевые слова, значимые для объявлений
	KwPackage
	KwImport
	KwClass
	KwInterface
	KwEnum
	KwExtends
	KwImplements
	KwThrows
	KwDefault
	KwVoid
	KwThis
	KwSuper
	KwNew

	// модификаторы
	KwPublic
	KwProtected
	KwPrivate
	KwStatic
	KwFinal
	KwAbstract
	KwSynchronized
	KwNative
	KwTransient
	KwVolatile
	KwStrictfp

	// примитивные типы
	KwBoolean
	KwByte
	KwShort
	KwChar
	KwInt
	KwLong
	KwFloat
	KwDouble

	// Keyword covers the remaining reserved words (if, for, return, ...).
	// They only occur inside bodies, which the parser skips.
	Keyword

	// пунктуация
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Semicolon
	Comma
	Dot
	Ellipsis // ...
	At
	Lt
	Gt
	Question
	Assign
	Colon
	ColonColon
	Arrow // ->
	Amp
	// Operator is any other operator (+, ==, &&, ...); Text holds the spelling.
	Operator
)

var kindNames = [...]string{
	Invalid:        "Invalid",
	EOF:            "EOF",
	Ident:          "Ident",
	IntLit:         "IntLit",
	FloatLit:       "FloatLit",
	CharLit:        "CharLit",
	StringLit:      "StringLit",
	BoolLit:        "BoolLit",
	NullLit:        "NullLit",
	KwPackage:      "package",
	KwImport:       "import",
	KwClass:        "class",
	KwInterface:    "interface",
	KwEnum:         "enum",
	KwExtends:      "extends",
	KwImplements:   "implements",
	KwThrows:       "throws",
	KwDefault:      "default",
	KwVoid:         "void",
	KwThis:         "this",
	KwSuper:        "super",
	KwNew:          "new",
	KwPublic:       "public",
	KwProtected:    "protected",
	KwPrivate:      "private",
	KwStatic:       "static",
	KwFinal:        "final",
	KwAbstract:     "abstract",
	KwSynchronized: "synchronized",
	KwNative:       "native",
	KwTransient:    "transient",
	KwVolatile:     "volatile",
	KwStrictfp:     "strictfp",
	KwBoolean:      "boolean",
	KwByte:         "byte",
	KwShort:        "short",
	KwChar:         "char",
	KwInt:          "int",
	KwLong:         "long",
	KwFloat:        "float",
	KwDouble:       "double",
	Keyword:        "Keyword",
	LParen:         "(",
	RParen:         ")",
	LBrace:         "{",
	RBrace:         "}",
	LBracket:       "[",
	RBracket:       "]",
	Semicolon:      ";",
	Comma:          ",",
	Dot:            ".",
	Ellipsis:       "...",
	At:             "@",
	Lt:             "<",
	Gt:             ">",
	Question:       "?",
	Assign:         "=",
	Colon:          ":",
	ColonColon:     "::",
	Arrow:          "->",
	Amp:            "&",
	Operator:       "Operator",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
