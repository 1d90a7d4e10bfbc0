package sema

import (
	"fmt"

	"busguard/internal/decl"
	"busguard/internal/diag"
)

const (
	msgNotPublic = "Listener needs to be public"
	msgArity     = "Event Listener can only have one Parameter"
	msgForgeBus  = "EventType does not belong on the Forge Bus, belongs on ModBus"
	msgModBus    = "EventType does not belong on the Mod Bus, belongs on Forge Bus"
)

func msgNotEvent(base string) string {
	return "EventType does not extend or inherit " + base
}

// Env carries what ValidateListener needs.
type Env struct {
	Names    Names
	Types    decl.TypeOracle
	Reporter diag.Reporter
}

// Outcome tells what ValidateListener did with a candidate.
type Outcome uint8

const (
	// OutcomeSkipped: outside the checks' jurisdiction.
	OutcomeSkipped Outcome = iota
	OutcomeValid
	OutcomeReported
)

func (o Outcome) String() string {
	switch o {
	case OutcomeValid:
		return "valid"
	case OutcomeReported:
		return "reported"
	default:
		return "skipped"
	}
}

// ValidateListener checks one listener method against the bus of its
// enclosing type. Rules run in a fixed order and stop at the first
// violation, except that the bus consistency check is the last one.
func ValidateListener(m *decl.Method, bus Bus, env Env) Outcome {
	if m == nil || bus == BusUnknown {
		return OutcomeSkipped
	}
	rep := env.Reporter
	if rep == nil {
		rep = diag.NopReporter{}
	}
	oracle := env.Types
	if oracle == nil {
		oracle = decl.OracleFunc(func(sub, super string) bool { return sub == super })
	}

	mods := m.Modifiers()
	if decl.HasAnnotation(m.Enclosing(), env.Names.EntryPoint) {
		if !mods.Has(decl.ModPublic) {
			report(rep, diag.BusListenerNotPublic, m, msgNotPublic)
			return OutcomeReported
		}
	} else {
		if mods.Has(decl.ModStatic) && mods.Has(decl.ModPrivate) {
			report(rep, diag.BusListenerNotPublic, m, msgNotPublic)
			return OutcomeReported
		}
		if !mods.Has(decl.ModStatic) {
			// instance listeners are registered by hand
			return OutcomeSkipped
		}
	}

	params := m.Params()
	if len(params) != 1 {
		report(rep, diag.BusListenerArity, m, msgArity)
		return OutcomeReported
	}
	param := params[0]
	eventType := param.Type.Erasure()

	if !oracle.IsSubtype(eventType, env.Names.EventBase) {
		b := diag.ReportError(rep, diag.BusEventTypeNotEvent, param.Pos(), msgNotEvent(env.Names.EventBase))
		if known, ok := oracle.(decl.KnownTypes); ok && !known.Known(eventType) {
			b.WithNote(param.Type.Span, fmt.Sprintf("type %s is unknown here; declare its supertypes with a [[types]] entry in busguard.toml", eventType))
		}
		b.Emit()
		return OutcomeReported
	}

	isMod := oracle.IsSubtype(eventType, env.Names.ModBusMarker)
	switch {
	case isMod && bus == BusForge:
		report(rep, diag.BusWrongForgeBus, param, msgForgeBus)
		return OutcomeReported
	case !isMod && bus == BusMod:
		report(rep, diag.BusWrongModBus, param, msgModBus)
		return OutcomeReported
	}
	return OutcomeValid
}

func report(r diag.Reporter, code diag.Code, at decl.Element, msg string) {
	diag.ReportError(r, code, at.Pos(), msg).Emit()
}
