package parser

import (
	"fmt"
	"strings"
	"testing"

	"busguard/internal/decl"
	"busguard/internal/diag"
	"busguard/internal/source"
	"busguard/internal/testkit"
)

func diagnosticsSummary(bag *diag.Bag) string {
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func parseString(t *testing.T, src string) (*decl.Unit, *diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("Test.java", []byte(src))
	bag := diag.NewBag(100)
	res := ParseSource(fs, id, diag.BagReporter{Bag: bag})
	return res.Unit, bag, fs
}

func mustParse(t *testing.T, src string) *decl.Unit {
	t.Helper()
	u, bag, _ := parseString(t, src)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	return u
}

const forgeSubscriber = `
package com.example.examplemod;

import net.minecraftforge.eventbus.api.SubscribeEvent;
import net.minecraftforge.fml.common.Mod;
import net.minecraftforge.fml.event.lifecycle.FMLCommonSetupEvent;
import static java.util.Objects.*;

/** Listens to lifecycle events. */
@Mod.EventBusSubscriber(modid = "examplemod", bus = Mod.EventBusSubscriber.Bus.MOD)
public final class ModEvents {
    private static final int LIMIT = 3, OTHER[] = {1, 2};

    static {
        System.out.println("init");
    }

    @SubscribeEvent
    public static void onSetup(final FMLCommonSetupEvent event) {
        if (event != null) { requireNonNull(event); }
    }

    @SubscribeEvent(priority = EventPriority.HIGH, receiveCanceled = true)
    static <T extends Comparable<T>> void generic(java.util.List<? extends T> items, String... rest) throws Exception {}

    private ModEvents() {}
}
`

func TestParseSubscriberClass(t *testing.T) {
	u := mustParse(t, forgeSubscriber)

	if u.Package != "com.example.examplemod" {
		t.Fatalf("package = %q", u.Package)
	}
	if len(u.Imports) != 4 {
		t.Fatalf("imports = %+v", u.Imports)
	}
	last := u.Imports[3]
	if !last.Static || !last.Wildcard || last.Path != "java.util.Objects" {
		t.Fatalf("static wildcard import = %+v", last)
	}

	if len(u.Types) != 1 {
		t.Fatalf("types = %d", len(u.Types))
	}
	typ := u.Types[0]
	if typ.Qualified != "com.example.examplemod.ModEvents" || typ.Kind() != decl.KindClass {
		t.Fatalf("type = %s %s", typ.Kind(), typ.Qualified)
	}
	if !typ.Mods.Has(decl.ModPublic | decl.ModFinal) {
		t.Fatalf("type modifiers = %s", typ.Mods)
	}
	if len(typ.Annots) != 1 {
		t.Fatalf("type annotations = %d", len(typ.Annots))
	}
	sub := typ.Annots[0]
	if sub.Written != "Mod.EventBusSubscriber" || len(sub.Args) != 2 {
		t.Fatalf("subscriber annotation = %+v", sub)
	}
	bus, ok := sub.Arg("bus")
	if !ok || bus.Kind != decl.ValName || bus.Symbol() != "MOD" {
		t.Fatalf("bus arg = %+v", bus)
	}
	modid, _ := sub.Arg("modid")
	if modid.Kind != decl.ValString || modid.Symbol() != "examplemod" {
		t.Fatalf("modid arg = %+v", modid)
	}

	var fields []string
	for _, m := range typ.Members {
		if f, ok := m.(*decl.Field); ok {
			fields = append(fields, f.Name+":"+f.Type.Text)
		}
	}
	if strings.Join(fields, ",") != "LIMIT:int,OTHER:int[]" {
		t.Fatalf("fields = %v", fields)
	}

	methods := typ.Methods()
	if len(methods) != 3 {
		t.Fatalf("methods = %d", len(methods))
	}
	setup := methods[0]
	if setup.Name != "onSetup" || !setup.Mods.Has(decl.ModPublic|decl.ModStatic) {
		t.Fatalf("onSetup = %s %s", setup.Mods, setup.Name)
	}
	if len(setup.Params()) != 1 {
		t.Fatalf("onSetup params = %d", len(setup.Params()))
	}
	param := setup.Params()[0]
	if param.Type.Text != "FMLCommonSetupEvent" || !param.Mods.Has(decl.ModFinal) || param.Name != "event" {
		t.Fatalf("param = %+v", param)
	}
	if param.Enclosing() != decl.Element(setup) || setup.Enclosing() != decl.Element(typ) {
		t.Fatalf("enclosing links broken")
	}

	gen := methods[1]
	if gen.Mods.Has(decl.ModPublic) || !gen.Mods.Has(decl.ModStatic) {
		t.Fatalf("generic modifiers = %s", gen.Mods)
	}
	if len(gen.Params()) != 2 {
		t.Fatalf("generic params = %d", len(gen.Params()))
	}
	if got := gen.Params()[0].Type; got.Text != "java.util.List<? extends T>" || got.Base() != "java.util.List" {
		t.Fatalf("generic param type = %q base %q", got.Text, got.Base())
	}
	rest := gen.Params()[1]
	if !rest.Varargs || rest.Type.Dims != 1 || rest.Type.Base() != "String" {
		t.Fatalf("varargs param = %+v", rest)
	}
	prio, _ := gen.Annots[0].Arg("priority")
	if prio.Symbol() != "HIGH" {
		t.Fatalf("priority = %+v", prio)
	}
	if recv, _ := gen.Annots[0].Arg("receiveCanceled"); recv.Kind != decl.ValBool {
		t.Fatalf("receiveCanceled = %+v", recv)
	}

	ctor := methods[2]
	if !ctor.Constructor || ctor.Kind() != decl.KindConstructor || !ctor.Mods.Has(decl.ModPrivate) {
		t.Fatalf("ctor = %+v", ctor)
	}
}

func TestMethodSpanPointsAtName(t *testing.T) {
	u, _, fs := parseString(t, "class A {\n  @SubscribeEvent\n  private static void handler(Object e) {}\n}\n")
	m := u.Types[0].Methods()[0]
	if got := fs.Text(m.Pos()); got != "handler" {
		t.Fatalf("method Pos text = %q", got)
	}
	if got := fs.Text(m.Params()[0].Pos()); got != "e" {
		t.Fatalf("param Pos text = %q", got)
	}
	start, _ := fs.Resolve(m.Pos())
	if start.Line != 3 || start.Col != 23 {
		t.Fatalf("method position = %+v", start)
	}
	if !strings.HasPrefix(fs.Text(m.Span), "@SubscribeEvent") {
		t.Fatalf("method span should start at the annotation: %q", fs.Text(m.Span))
	}
}

func TestNestedTypesAndImplicitModifiers(t *testing.T) {
	src := `
package demo;
public interface Api {
    int VERSION = 1;
    void run();
    default void stop() {}
    static Api create() { return null; }
    enum Mode { ON, OFF(2) { }, ; Mode() {} Mode(int x) {} }
    record Pair<A, B>(A left, B right) implements Comparable<Pair<A, B>> {
        public Pair { }
    }
    @interface Marker { String value() default ""; Class<?>[] types() default {}; }
    class Impl extends Base implements Api, Cloneable {}
}
`
	u := mustParse(t, src)
	api := u.Types[0]
	if api.Kind() != decl.KindInterface {
		t.Fatalf("kind = %s", api.Kind())
	}

	var version *decl.Field
	for _, m := range api.Members {
		if f, ok := m.(*decl.Field); ok && f.Name == "VERSION" {
			version = f
		}
	}
	if version == nil || !version.Mods.Has(decl.ModPublic|decl.ModStatic|decl.ModFinal) {
		t.Fatalf("interface field modifiers: %+v", version)
	}

	methods := api.Methods()
	if len(methods) != 3 {
		t.Fatalf("methods = %d", len(methods))
	}
	if !methods[0].Mods.Has(decl.ModPublic | decl.ModAbstract) {
		t.Fatalf("run modifiers = %s", methods[0].Mods)
	}
	if !methods[1].Mods.Has(decl.ModPublic|decl.ModDefault) || methods[1].Mods.Has(decl.ModAbstract) {
		t.Fatalf("stop modifiers = %s", methods[1].Mods)
	}
	if !methods[2].Mods.Has(decl.ModPublic|decl.ModStatic) || methods[2].Mods.Has(decl.ModAbstract) {
		t.Fatalf("create modifiers = %s", methods[2].Mods)
	}

	nested := api.NestedTypes()
	if len(nested) != 4 {
		t.Fatalf("nested = %d", len(nested))
	}
	mode, pair, marker, impl := nested[0], nested[1], nested[2], nested[3]

	if mode.Kind() != decl.KindEnum || mode.Qualified != "demo.Api.Mode" || !mode.Mods.Has(decl.ModStatic|decl.ModPublic) {
		t.Fatalf("mode = %s %s %s", mode.Kind(), mode.Qualified, mode.Mods)
	}
	constants := 0
	for _, m := range mode.Members {
		if f, ok := m.(*decl.Field); ok && f.EnumConstant {
			constants++
			if f.Type.Name != "demo.Api.Mode" {
				t.Fatalf("enum constant type = %+v", f.Type)
			}
		}
	}
	if constants != 2 || len(mode.Methods()) != 2 || !mode.Methods()[0].Mods.Has(decl.ModPrivate) {
		t.Fatalf("enum members: constants=%d methods=%d", constants, len(mode.Methods()))
	}

	if pair.Kind() != decl.KindRecord || len(pair.Interfaces) != 1 {
		t.Fatalf("pair = %+v", pair)
	}
	if len(pair.Methods()) != 1 || !pair.Methods()[0].Constructor {
		t.Fatalf("compact constructor missing")
	}
	fields := 0
	for _, m := range pair.Members {
		if _, ok := m.(*decl.Field); ok {
			fields++
		}
	}
	if fields != 2 {
		t.Fatalf("record components = %d", fields)
	}

	if marker.Kind() != decl.KindAnnotationType || len(marker.Methods()) != 2 {
		t.Fatalf("marker = %s methods=%d", marker.Kind(), len(marker.Methods()))
	}

	if impl.Super == nil || impl.Super.Text != "Base" || len(impl.Interfaces) != 2 {
		t.Fatalf("impl supertypes = %+v %+v", impl.Super, impl.Interfaces)
	}
	if !impl.Mods.Has(decl.ModPublic | decl.ModStatic) {
		t.Fatalf("class in interface should be public static: %s", impl.Mods)
	}
}

func TestSealedAndNonSealed(t *testing.T) {
	u := mustParse(t, `
sealed interface Shape permits Circle, Square {}
final class Circle implements Shape {}
non-sealed class Square implements Shape { sealed x; }
`)
	if len(u.Types) != 3 {
		t.Fatalf("types = %d", len(u.Types))
	}
	if !u.Types[0].Mods.Has(decl.ModSealed) {
		t.Fatalf("Shape should be sealed: %s", u.Types[0].Mods)
	}
	sq := u.Types[2]
	if !sq.Mods.Has(decl.ModNonSealed) {
		t.Fatalf("Square should be non-sealed: %s", sq.Mods)
	}
	// поле типа "sealed" - не модификатор
	f, ok := sq.Members[0].(*decl.Field)
	if !ok || f.Type.Text != "sealed" || f.Name != "x" {
		t.Fatalf("field = %+v", sq.Members[0])
	}
}

func TestAnnotationValues(t *testing.T) {
	u := mustParse(t, `
@A(1)
@B({"x", "y",})
@C(value = String.class, neg = -1, nested = @D, expr = 1 + 2, ch = 'c', prim = int.class)
@E()
@F(MOD)
class T {}
`)
	an := u.Types[0].Annots
	// @D is a value of C.nested, not an annotation of T
	var written []string
	for _, a := range an {
		written = append(written, a.Written)
	}
	if got := strings.Join(written, " "); got != "A B C E F" {
		t.Fatalf("annotations = %q", got)
	}
	if v, _ := an[0].Arg("value"); v.Kind != decl.ValNumber || v.Text != "1" {
		t.Fatalf("A = %+v", v)
	}
	if v, _ := an[1].Arg("value"); v.Kind != decl.ValArray || len(v.Elems) != 2 || v.Elems[1].Symbol() != "y" {
		t.Fatalf("B = %+v", v)
	}
	c := an[2]
	expect := map[string]decl.ValueKind{
		"value":  decl.ValClass,
		"neg":    decl.ValNumber,
		"nested": decl.ValOther,
		"expr":   decl.ValOther,
		"ch":     decl.ValChar,
		"prim":   decl.ValClass,
	}
	for key, kind := range expect {
		v, ok := c.Arg(key)
		if !ok || v.Kind != kind {
			t.Errorf("C.%s = %+v, want kind %s", key, v, kind)
		}
	}
	if v, _ := c.Arg("value"); v.Symbol() != "String" {
		t.Errorf("class literal symbol = %q", v.Symbol())
	}
	if v, _ := c.Arg("neg"); v.Text != "-1" {
		t.Errorf("neg text = %q", v.Text)
	}
	if v, _ := c.Arg("nested"); v.Text != "@D" {
		t.Errorf("nested text = %q", v.Text)
	}
	if len(an[3].Args) != 0 {
		t.Errorf("E args = %+v", an[3].Args)
	}
	if v, _ := an[4].Arg("value"); v.Kind != decl.ValName || v.Symbol() != "MOD" {
		t.Errorf("F = %+v", v)
	}
}

func TestReceiverParameterAndArrays(t *testing.T) {
	u := mustParse(t, `class R { void m(R this, int a[], String[]... b) {} int[] n()[] { return null; } }`)
	ms := u.Types[0].Methods()
	ps := ms[0].Params()
	if len(ps) != 2 {
		t.Fatalf("params = %d (receiver must be skipped)", len(ps))
	}
	if ps[0].Type.Dims != 1 || ps[0].Type.Erasure() != "int[]" {
		t.Fatalf("a = %+v", ps[0].Type)
	}
	if ps[1].Type.Dims != 2 || !ps[1].Varargs {
		t.Fatalf("b = %+v", ps[1].Type)
	}
	if ms[1].Result.Dims != 2 {
		t.Fatalf("n result dims = %d", ms[1].Result.Dims)
	}
}

func TestRecoveryKeepsLaterMembers(t *testing.T) {
	src := `
class Broken {
    void bad(int a b) { }
    int = 5;
    @SubscribeEvent
    public static void good(Event e) {}
}
class After {}
`
	u, bag, _ := parseString(t, src)
	if !bag.HasErrors() {
		t.Fatalf("expected syntax errors")
	}
	if len(u.Types) != 2 {
		t.Fatalf("types = %d; %s", len(u.Types), diagnosticsSummary(bag))
	}
	var names []string
	for _, m := range u.Types[0].Methods() {
		names = append(names, m.Name)
	}
	if len(names) == 0 || names[len(names)-1] != "good" {
		t.Fatalf("methods after recovery = %v; %s", names, diagnosticsSummary(bag))
	}
}

func TestUnclosedBody(t *testing.T) {
	u, bag, _ := parseString(t, "class Open { void m() {} ")
	if len(u.Types) != 1 {
		t.Fatalf("types = %d", len(u.Types))
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynUnclosedBrace {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected SynUnclosedBrace, got %s", diagnosticsSummary(bag))
	}
}

func TestUnexpectedTopLevel(t *testing.T) {
	u, bag, _ := parseString(t, "int x; class Ok {}")
	if len(u.Types) != 1 || u.Types[0].Name != "Ok" {
		t.Fatalf("types = %+v", u.Types)
	}
	if bag.Len() == 0 || bag.Items()[0].Code != diag.SynUnexpectedTopLevel {
		t.Fatalf("diagnostics = %s", diagnosticsSummary(bag))
	}
}

func TestDeclarationSpansNest(t *testing.T) {
	for name, src := range map[string]string{
		"subscriber": forgeSubscriber,
		"nested": `
package demo;
public interface Api {
    enum Mode { ON, OFF(2) { }, ; Mode() {} }
    record Pair<A, B>(A left, B right) {}
    class Impl { @Deprecated void run(int a, String... b) {} }
}
`,
	} {
		u, bag, fs := parseString(t, src)
		if bag.Len() != 0 {
			t.Fatalf("%s: unexpected diagnostics: %s", name, diagnosticsSummary(bag))
		}
		if err := testkit.CheckSpanInvariants(u, fs.Get(u.File)); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}
}

func TestRecoveredSpansStayInBounds(t *testing.T) {
	u, bag, fs := parseString(t, "class A { void m(int a, { int x = ; } class B { void n(")
	if !bag.HasErrors() {
		t.Fatalf("expected syntax errors")
	}
	if err := testkit.CheckSpanBounds(u, fs.Get(u.File)); err != nil {
		t.Fatal(err)
	}
}
