// Package symbols indexes the types declared in parsed compilation units and
// binds written type names (parameter types, supertypes, annotation names) to
// canonical names following Java's scoping rules for types.
package symbols
