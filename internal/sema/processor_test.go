package sema

import (
	"context"
	"reflect"
	"testing"

	"github.com/panjf2000/ants/v2"

	"busguard/internal/decl"
	"busguard/internal/diag"
	"busguard/internal/parser"
	"busguard/internal/processor"
	"busguard/internal/source"
	"busguard/internal/symbols"
	"busguard/internal/types"
)

const modEventsSrc = `
package com.example;

import net.minecraftforge.eventbus.api.SubscribeEvent;
import net.minecraftforge.fml.common.Mod;
import net.minecraftforge.fml.event.lifecycle.FMLCommonSetupEvent;
import net.minecraftforge.event.TickEvent;

@Mod.EventBusSubscriber(modid = "example", bus = Mod.EventBusSubscriber.Bus.MOD)
public class ModEvents {
    @SubscribeEvent
    public static void setup(FMLCommonSetupEvent event) {}

    @SubscribeEvent
    public static void tick(TickEvent.PlayerTickEvent event) {}

    @SubscribeEvent
    private static void hidden(FMLCommonSetupEvent event) {}

    @SubscribeEvent
    public static void two(FMLCommonSetupEvent a, FMLCommonSetupEvent b) {}

    @SubscribeEvent
    public void instance(String notAnEvent) {}
}
`

const forgeEventsSrc = `
package com.example;

import net.minecraftforge.eventbus.api.*;
import net.minecraftforge.fml.common.Mod;
import net.minecraftforge.fml.event.lifecycle.FMLClientSetupEvent;

@Mod("example")
@Mod.EventBusSubscriber
public class ExampleMod {
    @SubscribeEvent
    public static void custom(CustomEvent event) {}

    @SubscribeEvent
    static void notPublic(CustomEvent event) {}

    @SubscribeEvent
    public static void client(FMLClientSetupEvent event) {}

    @SubscribeEvent
    public static void text(String s) {}

    @SubscribeEvent
    public ExampleMod() {}

    public static class CustomEvent extends Event {}
}
`

const plainSrc = `
package com.example;

import net.minecraftforge.eventbus.api.SubscribeEvent;

public class Plain {
    @SubscribeEvent
    private static void ignored(String a, String b) {}
}
`

type fixture struct {
	units []*decl.Unit
	graph *types.Graph
	fs    *source.FileSet
}

func buildFixture(t *testing.T) fixture {
	t.Helper()
	fs := source.NewFileSet()
	bag := diag.NewBag(0)
	var units []*decl.Unit
	sources := []struct{ name, src string }{
		{"ModEvents.java", modEventsSrc},
		{"ExampleMod.java", forgeEventsSrc},
		{"Plain.java", plainSrc},
	}
	for _, s := range sources {
		id := fs.AddVirtual(s.name, []byte(s.src))
		res := parser.ParseSource(fs, id, diag.BagReporter{Bag: bag})
		units = append(units, res.Unit)
	}
	if bag.Len() != 0 {
		t.Fatalf("parse diagnostics: %s", summary(bag.Items()))
	}
	table := symbols.NewTable(symbols.Hints{Types: 128})
	symbols.DeclarePrelude(table)
	types.DeclareExternals(table, types.Builtins())
	symbols.Index(table, units, diag.BagReporter{Bag: bag})
	symbols.NewResolver(table, symbols.ResolverOptions{}).ResolveAll(units)
	return fixture{units: units, graph: types.NewGraph(table), fs: fs}
}

func runPass(t *testing.T, fx fixture, exec processor.Executor) ([]diag.Diagnostic, *EventProcessor) {
	t.Helper()
	bag := diag.NewBag(0)
	p := NewEventProcessor(Names{})
	host := processor.NewHost(&processor.Env{
		Reporter: diag.BagReporter{Bag: bag},
		Types:    fx.graph,
		Exec:     exec,
	}, p)
	if _, err := host.Run(context.Background(), fx.units); err != nil {
		t.Fatalf("run: %v", err)
	}
	bag.Sort()
	return bag.Items(), p
}

type finding struct {
	code diag.Code
	text string
}

func findings(fx fixture, diags []diag.Diagnostic) []finding {
	out := make([]finding, 0, len(diags))
	for _, d := range diags {
		out = append(out, finding{code: d.Code, text: fx.fs.Text(d.Primary)})
	}
	return out
}

func TestEventProcessorEndToEnd(t *testing.T) {
	fx := buildFixture(t)
	diags, p := runPass(t, fx, nil)

	var info int
	var errs []diag.Diagnostic
	for _, d := range diags {
		if d.Code == diag.ProcInfo {
			info++
			if d.Message != "Annotation Processor: ForgeEventBusSubscriber Version: 1.0.0" {
				t.Fatalf("info = %q", d.Message)
			}
			continue
		}
		errs = append(errs, d)
	}
	if info != 1 {
		t.Fatalf("expected one info note, got %d", info)
	}

	got := map[finding]bool{}
	for _, f := range findings(fx, errs) {
		got[f] = true
	}
	want := []finding{
		{diag.BusWrongModBus, "event"},
		{diag.BusListenerNotPublic, "hidden"},
		{diag.BusListenerArity, "two"},
		{diag.BusListenerNotPublic, "notPublic"},
		{diag.BusWrongForgeBus, "event"},
		{diag.BusEventTypeNotEvent, "s"},
	}
	if len(errs) != len(want) {
		t.Fatalf("got %d errors: %s", len(errs), summary(errs))
	}
	for _, w := range want {
		if !got[w] {
			t.Errorf("missing %s at %q; got %s", w.code.ID(), w.text, summary(errs))
		}
	}

	st := p.Stats()
	// ModEvents 5, ExampleMod 4 (constructors are not candidates), Plain 1
	if st.Candidates != 10 || st.Reported != 6 || st.Failed != 0 {
		t.Fatalf("stats = %+v", st)
	}
}

func TestEventProcessorIdempotent(t *testing.T) {
	fx := buildFixture(t)
	first, _ := runPass(t, fx, nil)
	second, _ := runPass(t, fx, nil)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("runs differ:\n%s\n%s", summary(first), summary(second))
	}
}

func TestEventProcessorParallelMatchesSequential(t *testing.T) {
	fx := buildFixture(t)
	pool, err := ants.NewPool(4)
	if err != nil {
		t.Fatalf("pool: %v", err)
	}
	defer pool.Release()

	seq, _ := runPass(t, fx, nil)
	par, _ := runPass(t, fx, pool)
	if !reflect.DeepEqual(seq, par) {
		t.Fatalf("parallel run differs:\n%s\n%s", summary(seq), summary(par))
	}
}

func TestEventProcessorContract(t *testing.T) {
	p := NewEventProcessor(Names{})
	if p.ID() != "ForgeEventBusSubscriber" || p.Version() != "1.0.0" {
		t.Fatalf("identity = %s %s", p.ID(), p.Version())
	}
	if got := p.SupportedAnnotationTypes(); !reflect.DeepEqual(got, []string{"net.minecraftforge.eventbus.api.SubscribeEvent"}) {
		t.Fatalf("supported = %v", got)
	}
	if got := p.SupportedOptions(); got == nil || len(got) != 0 {
		t.Fatalf("options = %v", got)
	}
	// terminal round without elements
	if !p.Process(nil, processor.NewRound(1, nil, true)) {
		t.Fatalf("Process must claim")
	}
}

type panicOracle struct{}

func (panicOracle) IsSubtype(string, string) bool { panic("broken oracle") }

func TestEventProcessorRecoversPerCandidate(t *testing.T) {
	fx := buildFixture(t)
	bag := diag.NewBag(0)
	p := NewEventProcessor(Names{})
	p.Init(&processor.Env{Reporter: diag.BagReporter{Bag: bag}, Types: panicOracle{}})
	p.Process(nil, processor.NewRound(1, fx.units, false))

	st := p.Stats()
	// setup, tick, custom, client, text reach the subtype check and fail
	if st.Failed != 5 {
		t.Fatalf("expected 5 failed candidates, stats = %+v", st)
	}
	// hidden, two and notPublic fail before the oracle is consulted
	if st.Reported != 3 {
		t.Fatalf("stats = %+v; diags %s", st, summary(bag.Items()))
	}
}
