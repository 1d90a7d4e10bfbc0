package decl

// TypeOracle answers type-relation queries over canonical names.
// IsSubtype is reflexive: a type is a subtype of itself.
type TypeOracle interface {
	IsSubtype(sub, super string) bool
}

// KnownTypes is an optional TypeOracle capability: it tells whether the
// oracle has any information about a type name.
type KnownTypes interface {
	Known(name string) bool
}

// OracleFunc adapts a function to TypeOracle.
type OracleFunc func(sub, super string) bool

func (f OracleFunc) IsSubtype(sub, super string) bool { return f(sub, super) }
