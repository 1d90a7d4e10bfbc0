package decl

import (
	"strings"

	"busguard/internal/source"
)

var primitives = map[string]struct{}{
	"boolean": {}, "byte": {}, "short": {}, "char": {},
	"int": {}, "long": {}, "float": {}, "double": {}, "void": {},
}

// IsPrimitive reports whether name is a primitive type keyword (void included).
func IsPrimitive(name string) bool {
	_, ok := primitives[name]
	return ok
}

// TypeRef is a reference to a type as written in a declaration.
type TypeRef struct {
	// Text is the type as written, including type arguments and array brackets.
	Text string
	// Name is the resolved canonical name of the erasure, "" when unresolved.
	Name string
	Dims int
	Span source.Span
}

// Base returns the written type without type arguments, array dimensions
// and varargs dots: "Map.Entry<K, V>[]" -> "Map.Entry".
func (t TypeRef) Base() string {
	var b strings.Builder
	depth := 0
	for _, r := range t.Text {
		switch {
		case r == '<':
			depth++
		case r == '>':
			depth--
		case depth > 0:
		case r == '[':
			return strings.TrimSpace(b.String())
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(strings.TrimSuffix(b.String(), "..."))
}

func (t TypeRef) IsArray() bool { return t.Dims > 0 }

func (t TypeRef) IsPrimitive() bool { return t.Dims == 0 && IsPrimitive(t.Base()) }

// Resolved reports whether the reference was bound to a canonical name.
func (t TypeRef) Resolved() bool { return t.Name != "" }

// Erasure returns the name used for subtype queries: the canonical name when
// resolved, the written base name otherwise. Arrays get "[]" per dimension.
func (t TypeRef) Erasure() string {
	name := t.Name
	if name == "" {
		name = t.Base()
	}
	return name + strings.Repeat("[]", t.Dims)
}

func (t TypeRef) String() string {
	return t.Text
}
