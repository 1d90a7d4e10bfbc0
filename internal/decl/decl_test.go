package decl

import (
	"testing"
)

func TestModifiers(t *testing.T) {
	m := ModPrivate | ModStatic | ModFinal
	if !m.Has(ModStatic) || m.Has(ModPublic) {
		t.Fatalf("Has misbehaves for %v", m)
	}
	if got := m.String(); got != "private static final" {
		t.Fatalf("String = %q", got)
	}
	if mod, ok := ModifierByKeyword("non-sealed"); !ok || mod != ModNonSealed {
		t.Fatalf("ModifierByKeyword(non-sealed) = %v,%v", mod, ok)
	}
	if _, ok := ModifierByKeyword("record"); ok {
		t.Fatalf("record is not a modifier")
	}
}

func TestValueSymbol(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Value{Kind: ValName, Text: "Mod.EventBusSubscriber.Bus.MOD"}, "MOD"},
		{Value{Kind: ValName, Text: "MOD"}, "MOD"},
		{Value{Kind: ValString, Text: `"examplemod"`}, "examplemod"},
		{Value{Kind: ValClass, Text: "Dist.class"}, "Dist"},
		{Value{Kind: ValNumber, Text: "42"}, "42"},
	}
	for _, tt := range tests {
		if got := tt.v.Symbol(); got != tt.want {
			t.Errorf("Symbol(%q) = %q, want %q", tt.v.Text, got, tt.want)
		}
	}
}

func TestTypeRefErasure(t *testing.T) {
	r := TypeRef{Text: "List<String>[]", Dims: 1}
	if r.Base() != "List" {
		t.Fatalf("Base = %q", r.Base())
	}
	if r.Erasure() != "List[]" {
		t.Fatalf("Erasure = %q", r.Erasure())
	}
	r.Name = "java.util.List"
	if r.Erasure() != "java.util.List[]" {
		t.Fatalf("Erasure resolved = %q", r.Erasure())
	}
	if !(TypeRef{Text: "int"}).IsPrimitive() {
		t.Fatalf("int must be primitive")
	}
}

func buildUnit() (*Unit, *Type, *Method) {
	u := &Unit{Path: "Sample.java", Package: "demo"}
	outer := &Type{Header: Header{Name: "Outer"}, TypeKind: KindClass, Qualified: "demo.Outer", Unit: u}
	inner := &Type{Header: Header{Name: "Inner"}, TypeKind: KindClass, Qualified: "demo.Outer.Inner", Unit: u}
	m := &Method{Header: Header{Name: "onEvent", Mods: ModPublic | ModStatic}}
	m.AddParam(&Param{Header: Header{Name: "e"}, Type: TypeRef{Text: "Event"}})
	inner.AddMember(m)
	outer.AddMember(&Field{Header: Header{Name: "x"}, Type: TypeRef{Text: "int"}})
	outer.AddMember(inner)
	u.Types = append(u.Types, outer)
	return u, inner, m
}

func TestWalkOrderAndEnclosing(t *testing.T) {
	u, inner, m := buildUnit()

	var names []string
	u.Walk(func(e Element) bool {
		names = append(names, e.Kind().String()+":"+e.SimpleName())
		return true
	})
	want := []string{"class:Outer", "field:x", "class:Inner", "method:onEvent", "parameter:e"}
	if len(names) != len(want) {
		t.Fatalf("walk = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("walk[%d] = %s, want %s", i, names[i], want[i])
		}
	}

	if m.Enclosing() != Element(inner) || m.Type() != inner {
		t.Fatalf("method enclosing mismatch")
	}
	p := m.Params()[0]
	if EnclosingType(p) != inner {
		t.Fatalf("EnclosingType(param) mismatch")
	}
	if EnclosingType(inner).Qualified != "demo.Outer" {
		t.Fatalf("EnclosingType(inner) mismatch")
	}
	if len(u.AllTypes()) != 2 {
		t.Fatalf("AllTypes = %d", len(u.AllTypes()))
	}
}

func TestAnnotationLookup(t *testing.T) {
	a := &Annotation{
		Name: "net.minecraftforge.fml.common.Mod.EventBusSubscriber",
		Args: []Arg{{Key: "bus", Value: Value{Kind: ValName, Text: "Bus.MOD"}}},
	}
	typ := &Type{Header: Header{Name: "Subs", Annots: []*Annotation{a}}, TypeKind: KindClass}
	if !HasAnnotation(typ, a.Name) || len(FindAnnotations(typ, a.Name)) != 1 {
		t.Fatalf("annotation lookup failed")
	}
	if v, ok := a.Arg("bus"); !ok || v.Symbol() != "MOD" {
		t.Fatalf("Arg(bus) = %+v,%v", v, ok)
	}
	if _, ok := a.Arg("modid"); ok {
		t.Fatalf("unexpected modid arg")
	}
	if a.SimpleName() != "EventBusSubscriber" {
		t.Fatalf("SimpleName = %q", a.SimpleName())
	}
}

func TestSnapshot(t *testing.T) {
	u, _, _ := buildUnit()
	s := Snapshot(u)
	if len(s.Types) != 1 || s.Types[0].Name != "demo.Outer" {
		t.Fatalf("unexpected snapshot: %+v", s)
	}
	nested := s.Types[0].Nested
	if len(nested) != 1 || len(nested[0].Methods) != 1 {
		t.Fatalf("nested snapshot: %+v", nested)
	}
	ms := nested[0].Methods[0]
	if ms.Params[0].Type != "Event" || len(ms.Modifiers) != 2 {
		t.Fatalf("method snapshot: %+v", ms)
	}
}
