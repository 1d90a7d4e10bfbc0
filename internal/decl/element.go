package decl

import "busguard/internal/source"

// Element is a read-only view over one declaration.
type Element interface {
	Kind() Kind
	SimpleName() string
	// Enclosing returns the declaration that directly contains this one
	// (nil for top-level types).
	Enclosing() Element
	Modifiers() Modifiers
	Annotations() []*Annotation
	Pos() source.Span
}

// Header holds the attributes every element shares.
type Header struct {
	Name   string
	Mods   Modifiers
	Annots []*Annotation
	Span   source.Span
	// NameSpan points at the identifier only.
	NameSpan source.Span
	Parent   Element
}

func (h *Header) SimpleName() string         { return h.Name }
func (h *Header) Enclosing() Element         { return h.Parent }
func (h *Header) Modifiers() Modifiers       { return h.Mods }
func (h *Header) Annotations() []*Annotation { return h.Annots }

// Pos returns the identifier span when known, the whole declaration otherwise.
func (h *Header) Pos() source.Span {
	if h.NameSpan.IsValid() {
		return h.NameSpan
	}
	return h.Span
}

// TypeParam is a declared type variable: <T extends Event & Marker>.
type TypeParam struct {
	Name   string
	Bounds []TypeRef
	Span   source.Span
}

// Erasure returns the canonical erasure of the type variable: its first
// resolved bound, or java.lang.Object.
func (tp TypeParam) Erasure() string {
	if len(tp.Bounds) > 0 && tp.Bounds[0].Name != "" {
		return tp.Bounds[0].Name
	}
	return ObjectName
}

// ObjectName is the root of the class hierarchy.
const ObjectName = "java.lang.Object"

// Type is a class, interface, enum, record or annotation type declaration.
type Type struct {
	Header
	TypeKind   Kind
	TypeParams []TypeParam
	// Qualified is the canonical name: package + enclosing types + simple name.
	Qualified  string
	Super      *TypeRef
	Interfaces []TypeRef
	Members    []Element
	Unit       *Unit
}

func (t *Type) Kind() Kind { return t.TypeKind }

// AddMember appends m and makes t its enclosing declaration.
func (t *Type) AddMember(m Element) {
	switch v := m.(type) {
	case *Type:
		v.Parent = t
	case *Method:
		v.Parent = t
	case *Field:
		v.Parent = t
	}
	t.Members = append(t.Members, m)
}

// Methods returns the methods and constructors of t in source order.
func (t *Type) Methods() []*Method {
	var out []*Method
	for _, m := range t.Members {
		if mm, ok := m.(*Method); ok {
			out = append(out, mm)
		}
	}
	return out
}

// NestedTypes returns member types of t in source order.
func (t *Type) NestedTypes() []*Type {
	var out []*Type
	for _, m := range t.Members {
		if nt, ok := m.(*Type); ok {
			out = append(out, nt)
		}
	}
	return out
}

// Supertypes returns the declared direct supertypes (superclass first).
func (t *Type) Supertypes() []TypeRef {
	out := make([]TypeRef, 0, len(t.Interfaces)+1)
	if t.Super != nil {
		out = append(out, *t.Super)
	}
	return append(out, t.Interfaces...)
}

// Method is a method or constructor declaration.
type Method struct {
	Header
	TypeParams  []TypeParam
	Constructor bool
	Result      TypeRef
	params      []*Param
}

func (m *Method) Kind() Kind {
	if m.Constructor {
		return KindConstructor
	}
	return KindMethod
}

// Params returns the ordered parameter list.
func (m *Method) Params() []*Param { return m.params }

// AddParam appends p and makes m its enclosing declaration.
func (m *Method) AddParam(p *Param) {
	p.Parent = m
	m.params = append(m.params, p)
}

// Type returns the enclosing type declaration.
func (m *Method) Type() *Type {
	t, _ := m.Parent.(*Type)
	return t
}

// Field is a field or enum constant declaration.
type Field struct {
	Header
	Type         TypeRef
	EnumConstant bool
}

func (f *Field) Kind() Kind { return KindField }

// Param is a formal parameter of a method.
type Param struct {
	Header
	Type    TypeRef
	Varargs bool
}

func (p *Param) Kind() Kind { return KindParameter }

// EnclosingType walks up from e to the nearest type declaration.
func EnclosingType(e Element) *Type {
	for cur := e; cur != nil; cur = cur.Enclosing() {
		if t, ok := cur.(*Type); ok && cur != e {
			return t
		}
	}
	return nil
}
