package symbols

import "busguard/internal/decl"

// javaLang holds the java.lang types that are in scope in every unit without
// an import. Only names that can appear in declarations matter here.
var javaLang = []struct {
	name string
	kind SymbolKind
}{
	{"Object", SymbolClass},
	{"String", SymbolClass},
	{"CharSequence", SymbolInterface},
	{"Class", SymbolClass},
	{"Enum", SymbolClass},
	{"Record", SymbolClass},
	{"Number", SymbolClass},
	{"Boolean", SymbolClass},
	{"Character", SymbolClass},
	{"Byte", SymbolClass},
	{"Short", SymbolClass},
	{"Integer", SymbolClass},
	{"Long", SymbolClass},
	{"Float", SymbolClass},
	{"Double", SymbolClass},
	{"Void", SymbolClass},
	{"Math", SymbolClass},
	{"System", SymbolClass},
	{"Thread", SymbolClass},
	{"Runnable", SymbolInterface},
	{"Iterable", SymbolInterface},
	{"Comparable", SymbolInterface},
	{"Cloneable", SymbolInterface},
	{"AutoCloseable", SymbolInterface},
	{"Throwable", SymbolClass},
	{"Exception", SymbolClass},
	{"RuntimeException", SymbolClass},
	{"Error", SymbolClass},
	{"StringBuilder", SymbolClass},
	{"Override", SymbolAnnotation},
	{"Deprecated", SymbolAnnotation},
	{"SuppressWarnings", SymbolAnnotation},
	{"FunctionalInterface", SymbolAnnotation},
	{"SafeVarargs", SymbolAnnotation},
}

// DeclarePrelude registers java.lang types and the implicit supertypes of
// enums, records and annotation types.
func DeclarePrelude(t *Table) {
	for _, e := range javaLang {
		t.DeclareExternal("java.lang."+e.name, e.kind, SymbolFlagBuiltin, nil)
	}
	t.DeclareExternal("java.lang.annotation.Annotation", SymbolInterface, SymbolFlagBuiltin, nil)
	t.DeclareExternal("java.io.Serializable", SymbolInterface, SymbolFlagBuiltin, nil)

	t.DeclareExternal("java.lang.String", SymbolClass, SymbolFlagBuiltin, []string{"java.lang.CharSequence", "java.lang.Comparable", "java.io.Serializable"})
	t.DeclareExternal("java.lang.Enum", SymbolClass, SymbolFlagBuiltin, []string{"java.lang.Comparable", "java.io.Serializable"})
	t.DeclareExternal("java.lang.Exception", SymbolClass, SymbolFlagBuiltin, []string{"java.lang.Throwable"})
	t.DeclareExternal("java.lang.RuntimeException", SymbolClass, SymbolFlagBuiltin, []string{"java.lang.Exception"})
	t.DeclareExternal("java.lang.Error", SymbolClass, SymbolFlagBuiltin, []string{"java.lang.Throwable"})
	t.DeclareExternal("java.lang.Throwable", SymbolClass, SymbolFlagBuiltin, []string{"java.io.Serializable"})
	for _, boxed := range []string{"Byte", "Short", "Integer", "Long", "Float", "Double"} {
		t.DeclareExternal("java.lang."+boxed, SymbolClass, SymbolFlagBuiltin, []string{"java.lang.Number", "java.lang.Comparable"})
	}
}

// implicitSuper returns the supertype a declaration of kind k gets without
// an explicit extends clause.
func implicitSuper(k decl.Kind) string {
	switch k {
	case decl.KindEnum:
		return "java.lang.Enum"
	case decl.KindRecord:
		return "java.lang.Record"
	case decl.KindAnnotationType:
		return "java.lang.annotation.Annotation"
	default:
		return ""
	}
}
