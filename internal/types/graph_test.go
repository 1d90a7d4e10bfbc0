package types

import (
	"sync"
	"testing"

	"busguard/internal/decl"
	"busguard/internal/symbols"
)

func newTestGraph(extra ...External) *Graph {
	table := symbols.NewTable(symbols.Hints{Types: 64})
	symbols.DeclarePrelude(table)
	DeclareExternals(table, Builtins())
	DeclareExternals(table, extra)
	return NewGraph(table)
}

func TestIsSubtype(t *testing.T) {
	g := newTestGraph(External{Name: "com.example.MyEvent", Kind: symbols.SymbolClass, Supers: []string{tickEv + ".PlayerTickEvent"}})
	tests := []struct {
		sub, super string
		want       bool
	}{
		{eventBase, eventBase, true},
		{lifecycle + "FMLCommonSetupEvent", eventBase, true},
		{lifecycle + "FMLCommonSetupEvent", modBusEvent, true},
		{tickEv + ".PlayerTickEvent", modBusEvent, false},
		{"com.example.MyEvent", eventBase, true},
		{"com.example.MyEvent", modBusEvent, false},
		{"net.minecraftforge.event.RegistryEvent.Register", modBusEvent, true},
		{"java.lang.String", eventBase, false},
		{"java.lang.String", decl.ObjectName, true},
		{"com.unknown.Thing", decl.ObjectName, true},
		{"com.unknown.Thing", eventBase, false},
		{"int", eventBase, false},
		{"int", decl.ObjectName, false},
		{"int", "int", true},
		{eventBase + "[]", eventBase, false},
		{eventBase + "[]", decl.ObjectName, true},
		{tickEv + "[]", eventBase + "[]", true},
		{"int[]", "long[]", false},
		{"", eventBase, false},
	}
	for _, tt := range tests {
		if got := g.IsSubtype(tt.sub, tt.super); got != tt.want {
			t.Errorf("IsSubtype(%q, %q) = %v, want %v", tt.sub, tt.super, got, tt.want)
		}
	}
}

func TestIsSubtypeHandlesCycles(t *testing.T) {
	g := newTestGraph(
		External{Name: "c.A", Kind: symbols.SymbolClass, Supers: []string{"c.B"}},
		External{Name: "c.B", Kind: symbols.SymbolClass, Supers: []string{"c.A"}},
	)
	if g.IsSubtype("c.A", eventBase) {
		t.Fatalf("cycle must not reach Event")
	}
	if !g.IsSubtype("c.A", "c.B") || !g.IsSubtype("c.B", "c.A") {
		t.Fatalf("cycle members should reach each other")
	}
}

func TestKnown(t *testing.T) {
	g := newTestGraph()
	for _, name := range []string{"int", decl.ObjectName, eventBase, eventBase + "[]", "java.lang.String"} {
		if !g.Known(name) {
			t.Errorf("expected %q to be known", name)
		}
	}
	if g.Known("com.unknown.Thing") {
		t.Errorf("unexpected known type")
	}
}

func TestAncestors(t *testing.T) {
	g := newTestGraph()
	got := g.Ancestors(lifecycle + "FMLClientSetupEvent")
	want := []string{parallel, lifecycle + "ModLifecycleEvent", eventBase, modBusEvent}
	if len(got) != len(want) {
		t.Fatalf("ancestors = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ancestors = %v, want %v", got, want)
		}
	}
}

func TestIsSubtypeConcurrent(t *testing.T) {
	g := newTestGraph()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if !g.IsSubtype(playerEv+".PlayerLoggedInEvent", eventBase) {
					t.Error("expected subtype")
					return
				}
			}
		}()
	}
	wg.Wait()
}
