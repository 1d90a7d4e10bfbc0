package symbols

import (
	"strings"

	"busguard/internal/decl"
	"busguard/internal/source"
)

// SymbolID identifies a type symbol inside a Table. Zero is reserved.
type SymbolID uint32

// NoSymbolID marks the absence of a symbol.
const NoSymbolID SymbolID = 0

func (id SymbolID) IsValid() bool { return id != NoSymbolID }

// SymbolKind classifies a type symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolClass
	SymbolInterface
	SymbolEnum
	SymbolRecord
	SymbolAnnotation
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolClass:
		return "class"
	case SymbolInterface:
		return "interface"
	case SymbolEnum:
		return "enum"
	case SymbolRecord:
		return "record"
	case SymbolAnnotation:
		return "annotation"
	default:
		return "invalid"
	}
}

// KindOf maps a declaration kind to a symbol kind.
func KindOf(k decl.Kind) SymbolKind {
	switch k {
	case decl.KindClass:
		return SymbolClass
	case decl.KindInterface:
		return SymbolInterface
	case decl.KindEnum:
		return SymbolEnum
	case decl.KindRecord:
		return SymbolRecord
	case decl.KindAnnotationType:
		return SymbolAnnotation
	default:
		return SymbolInvalid
	}
}

// SymbolFlags encode where a symbol came from.
type SymbolFlags uint8

const (
	// SymbolFlagSource: declared in a parsed compilation unit.
	SymbolFlagSource SymbolFlags = 1 << iota
	// SymbolFlagExternal: described by the manifest or the built-in table.
	SymbolFlagExternal
	// SymbolFlagBuiltin: java.lang and friends.
	SymbolFlagBuiltin
)

// Strings returns a slice of textual flag labels.
func (f SymbolFlags) Strings() []string {
	if f == 0 {
		return nil
	}
	labels := make([]string, 0, 3)
	if f&SymbolFlagSource != 0 {
		labels = append(labels, "source")
	}
	if f&SymbolFlagExternal != 0 {
		labels = append(labels, "external")
	}
	if f&SymbolFlagBuiltin != 0 {
		labels = append(labels, "builtin")
	}
	return labels
}

// Symbol is one known type.
type Symbol struct {
	// Name is the canonical name: a.b.Outer.Inner.
	Name  string
	Kind  SymbolKind
	Flags SymbolFlags
	// Decl is set for source types only.
	Decl *decl.Type
	// Supers lists canonical names of direct supertypes. For source types it
	// is filled by the resolver; unresolved supertypes are left out.
	Supers []string
	Span   source.Span
}

// SimpleName returns the last segment of the canonical name.
func (s *Symbol) SimpleName() string {
	if i := strings.LastIndexByte(s.Name, '.'); i >= 0 {
		return s.Name[i+1:]
	}
	return s.Name
}

func (s *Symbol) IsSource() bool { return s.Flags&SymbolFlagSource != 0 }
