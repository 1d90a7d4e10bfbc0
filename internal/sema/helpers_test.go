package sema

import (
	"fmt"
	"strings"

	"busguard/internal/decl"
	"busguard/internal/diag"
	"busguard/internal/source"
)

const (
	forgeEvent = "net.minecraftforge.event.TickEvent.PlayerTickEvent"
	modEvent   = "net.minecraftforge.fml.event.lifecycle.FMLCommonSetupEvent"
	notEvent   = "java.lang.String"
)

// fakeOracle knows a tiny hierarchy: forgeEvent <: Event, modEvent <: Event & IModBusEvent.
type fakeOracle struct{ names Names }

func (o fakeOracle) IsSubtype(sub, super string) bool {
	if sub == super {
		return true
	}
	switch sub {
	case forgeEvent:
		return super == o.names.EventBase
	case modEvent:
		return super == o.names.EventBase || super == o.names.ModBusMarker
	}
	return false
}

func (o fakeOracle) Known(name string) bool {
	return name == forgeEvent || name == modEvent || name == notEvent
}

var spanSeq uint32

func nextSpan() source.Span {
	spanSeq += 10
	return source.Span{File: 1, Start: spanSeq, End: spanSeq + 5}
}

func marker(name string, args ...decl.Arg) *decl.Annotation {
	return &decl.Annotation{Name: name, Written: name, Args: args, Span: nextSpan()}
}

func busArg(token string) decl.Arg {
	return decl.Arg{Key: "bus", Value: decl.Value{Kind: decl.ValName, Text: "Mod.EventBusSubscriber.Bus." + token}}
}

func subscriberType(annots ...*decl.Annotation) *decl.Type {
	t := &decl.Type{TypeKind: decl.KindClass, Qualified: "com.example.Events"}
	t.Name = "Events"
	t.Annots = annots
	t.NameSpan = nextSpan()
	return t
}

func listener(owner *decl.Type, name string, mods decl.Modifiers, paramTypes ...string) *decl.Method {
	m := &decl.Method{Result: decl.TypeRef{Text: "void", Name: "void"}}
	m.Name = name
	m.Mods = mods
	m.NameSpan = nextSpan()
	m.Annots = []*decl.Annotation{marker(DefaultNames().Listener)}
	for i, pt := range paramTypes {
		p := &decl.Param{Type: decl.TypeRef{Text: pt, Name: pt, Span: nextSpan()}}
		p.Name = fmt.Sprintf("arg%d", i)
		p.NameSpan = nextSpan()
		m.AddParam(p)
	}
	owner.AddMember(m)
	return m
}

func validate(m *decl.Method) []diag.Diagnostic {
	names := DefaultNames()
	bag := diag.NewBag(0)
	env := Env{Names: names, Types: fakeOracle{names: names}, Reporter: diag.BagReporter{Bag: bag}}
	ValidateListener(m, Classify(m.Enclosing(), names), env)
	return bag.Items()
}

func summary(diags []diag.Diagnostic) string {
	parts := make([]string, len(diags))
	for i, d := range diags {
		parts[i] = d.Code.ID() + " " + d.Message
	}
	return strings.Join(parts, "; ")
}
