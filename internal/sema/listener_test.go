package sema

import (
	"testing"

	"busguard/internal/decl"
	"busguard/internal/diag"
)

func TestValidateListener(t *testing.T) {
	names := DefaultNames()
	pubStatic := decl.ModPublic | decl.ModStatic

	tests := []struct {
		name    string
		annots  []*decl.Annotation
		mods    decl.Modifiers
		params  []string
		want    []diag.Code
		wantMsg string
		atParam bool
		outcome Outcome
	}{
		{
			name:    "no subscriber marker skips everything",
			mods:    decl.ModPrivate | decl.ModStatic,
			params:  []string{notEvent, notEvent},
			outcome: OutcomeSkipped,
		},
		{
			name:    "valid public listener under entry point on forge bus",
			annots:  []*decl.Annotation{marker(names.EntryPoint), marker(names.Subscriber)},
			mods:    decl.ModPublic,
			params:  []string{forgeEvent},
			outcome: OutcomeValid,
		},
		{
			name:    "valid static listener on mod bus",
			annots:  []*decl.Annotation{marker(names.Subscriber, busArg("MOD"))},
			mods:    pubStatic,
			params:  []string{modEvent},
			outcome: OutcomeValid,
		},
		{
			name:    "private static listener",
			annots:  []*decl.Annotation{marker(names.Subscriber)},
			mods:    decl.ModPrivate | decl.ModStatic,
			params:  []string{forgeEvent},
			want:    []diag.Code{diag.BusListenerNotPublic},
			wantMsg: "Listener needs to be public",
			outcome: OutcomeReported,
		},
		{
			name:    "package-private listener under entry point",
			annots:  []*decl.Annotation{marker(names.EntryPoint), marker(names.Subscriber)},
			mods:    decl.ModStatic,
			params:  []string{forgeEvent},
			want:    []diag.Code{diag.BusListenerNotPublic},
			wantMsg: "Listener needs to be public",
			outcome: OutcomeReported,
		},
		{
			name:    "non-static listener without entry point is not checked",
			annots:  []*decl.Annotation{marker(names.Subscriber, busArg("MOD"))},
			mods:    decl.ModPublic,
			params:  []string{notEvent, forgeEvent},
			outcome: OutcomeSkipped,
		},
		{
			name:    "private instance listener without entry point is not checked",
			annots:  []*decl.Annotation{marker(names.Subscriber)},
			mods:    decl.ModPrivate,
			params:  []string{notEvent},
			outcome: OutcomeSkipped,
		},
		{
			name:    "two parameters",
			annots:  []*decl.Annotation{marker(names.Subscriber, busArg("MOD"))},
			mods:    pubStatic,
			params:  []string{notEvent, forgeEvent},
			want:    []diag.Code{diag.BusListenerArity},
			wantMsg: "Event Listener can only have one Parameter",
			outcome: OutcomeReported,
		},
		{
			name:    "no parameters",
			annots:  []*decl.Annotation{marker(names.Subscriber)},
			mods:    pubStatic,
			want:    []diag.Code{diag.BusListenerArity},
			wantMsg: "Event Listener can only have one Parameter",
			outcome: OutcomeReported,
		},
		{
			name:    "unrelated parameter type on mod bus",
			annots:  []*decl.Annotation{marker(names.Subscriber, busArg("MOD"))},
			mods:    pubStatic,
			params:  []string{notEvent},
			want:    []diag.Code{diag.BusEventTypeNotEvent},
			wantMsg: "EventType does not extend or inherit net.minecraftforge.eventbus.api.Event",
			atParam: true,
			outcome: OutcomeReported,
		},
		{
			name:    "mod event on forge bus",
			annots:  []*decl.Annotation{marker(names.Subscriber)},
			mods:    pubStatic,
			params:  []string{modEvent},
			want:    []diag.Code{diag.BusWrongForgeBus},
			wantMsg: "EventType does not belong on the Forge Bus, belongs on ModBus",
			atParam: true,
			outcome: OutcomeReported,
		},
		{
			name:    "forge event on mod bus",
			annots:  []*decl.Annotation{marker(names.Subscriber, busArg("MOD"))},
			mods:    pubStatic,
			params:  []string{forgeEvent},
			want:    []diag.Code{diag.BusWrongModBus},
			wantMsg: "EventType does not belong on the Mod Bus, belongs on Forge Bus",
			atParam: true,
			outcome: OutcomeReported,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner := subscriberType(tt.annots...)
			m := listener(owner, "on", tt.mods, tt.params...)

			bag := diag.NewBag(0)
			env := Env{Names: names, Types: fakeOracle{names: names}, Reporter: diag.BagReporter{Bag: bag}}
			outcome := ValidateListener(m, Classify(owner, names), env)
			got := bag.Items()

			if outcome != tt.outcome {
				t.Errorf("outcome = %v, want %v", outcome, tt.outcome)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("diagnostics: got %q, want codes %v", summary(got), tt.want)
			}
			if len(got) == 0 {
				return
			}
			d := got[0]
			if d.Code != tt.want[0] || d.Severity != diag.SevError {
				t.Fatalf("got %s (%v), want %s", d.Code.ID(), d.Severity, tt.want[0].ID())
			}
			if d.Message != tt.wantMsg {
				t.Fatalf("message = %q, want %q", d.Message, tt.wantMsg)
			}
			wantSpan := m.Pos()
			if tt.atParam {
				wantSpan = m.Params()[0].Pos()
			}
			if d.Primary != wantSpan {
				t.Fatalf("span = %v, want %v", d.Primary, wantSpan)
			}
		})
	}
}

func TestValidateListenerUnknownTypeNote(t *testing.T) {
	names := DefaultNames()
	owner := subscriberType(marker(names.Subscriber))
	m := listener(owner, "on", decl.ModPublic|decl.ModStatic, "com.example.MysteryEvent")

	got := validate(m)
	if len(got) != 1 || got[0].Code != diag.BusEventTypeNotEvent {
		t.Fatalf("diagnostics = %s", summary(got))
	}
	if len(got[0].Notes) != 1 || got[0].Notes[0].Span != m.Params()[0].Type.Span {
		t.Fatalf("expected a note at the parameter type, got %+v", got[0].Notes)
	}

	// a known non-event type gets no note
	m2 := listener(owner, "on2", decl.ModPublic|decl.ModStatic, notEvent)
	if got := validate(m2); len(got) != 1 || len(got[0].Notes) != 0 {
		t.Fatalf("diagnostics = %+v", got)
	}
}

func TestValidateListenerArrayParam(t *testing.T) {
	names := DefaultNames()
	owner := subscriberType(marker(names.Subscriber))
	m := listener(owner, "on", decl.ModPublic|decl.ModStatic, forgeEvent)
	m.Params()[0].Type.Dims = 1 // varargs / array of events

	got := validate(m)
	if len(got) != 1 || got[0].Code != diag.BusEventTypeNotEvent {
		t.Fatalf("diagnostics = %s", summary(got))
	}
}

func TestValidateListenerWithoutOracleOrReporter(t *testing.T) {
	names := DefaultNames()
	owner := subscriberType(marker(names.Subscriber))
	m := listener(owner, "on", decl.ModPublic|decl.ModStatic, names.EventBase)
	if out := ValidateListener(m, BusForge, Env{Names: names}); out != OutcomeValid {
		t.Fatalf("outcome = %v", out)
	}
	if out := ValidateListener(nil, BusForge, Env{Names: names}); out != OutcomeSkipped {
		t.Fatalf("nil method outcome = %v", out)
	}
}
