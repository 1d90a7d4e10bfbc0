package token

var keywords = map[string]Kind{
	"package":      KwPackage,
	"import":       KwImport,
	"class":        KwClass,
	"interface":    KwInterface,
	"enum":         KwEnum,
	"extends":      KwExtends,
	"implements":   KwImplements,
	"throws":       KwThrows,
	"default":      KwDefault,
	"void":         KwVoid,
	"this":         KwThis,
	"super":        KwSuper,
	"new":          KwNew,
	"public":       KwPublic,
	"protected":    KwProtected,
	"private":      KwPrivate,
	"static":       KwStatic,
	"final":        KwFinal,
	"abstract":     KwAbstract,
	"synchronized": KwSynchronized,
	"native":       KwNative,
	"transient":    KwTransient,
	"volatile":     KwVolatile,
	"strictfp":     KwStrictfp,
	"boolean":      KwBoolean,
	"byte":         KwByte,
	"short":        KwShort,
	"char":         KwChar,
	"int":          KwInt,
	"long":         KwLong,
	"float":        KwFloat,
	"double":       KwDouble,
	"true":         BoolLit,
	"false":        BoolLit,
	"null":         NullLit,
	// остальные зарезервированные слова встречаются только в телах методов
	"assert":     Keyword,
	"break":      Keyword,
	"case":       Keyword,
	"catch":      Keyword,
	"const":      Keyword,
	"continue":   Keyword,
	"do":         Keyword,
	"else":       Keyword,
	"finally":    Keyword,
	"for":        Keyword,
	"goto":       Keyword,
	"if":         Keyword,
	"instanceof": Keyword,
	"return":     Keyword,
	"switch":     Keyword,
	"throw":      Keyword,
	"try":        Keyword,
	"while":      Keyword,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые - только lowercase версии распознаются.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
