package sema

import "busguard/internal/decl"

// Bus is the event bus a subscriber type registers its listeners on.
type Bus uint8

const (
	// BusUnknown: the type does not opt in to automatic registration.
	BusUnknown Bus = iota
	// BusForge is the default game event bus.
	BusForge
	// BusMod is the per-mod lifecycle bus.
	BusMod
)

func (b Bus) String() string {
	switch b {
	case BusForge:
		return "FORGE"
	case BusMod:
		return "MOD"
	default:
		return "UNKNOWN"
	}
}

// Classify derives the bus of an enclosing declaration from its subscriber
// markers. Markers are scanned in source order; the first one whose bus
// argument names the mod bus wins.
func Classify(enclosing decl.Element, names Names) Bus {
	markers := decl.FindAnnotations(enclosing, names.Subscriber)
	if len(markers) == 0 {
		return BusUnknown
	}
	for _, m := range markers {
		if v, ok := m.Arg(names.BusKey); ok && v.Symbol() == names.ModBusToken {
			return BusMod
		}
	}
	return BusForge
}
