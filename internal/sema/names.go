package sema

// Names are the canonical names and tokens the listener checks look for.
// They default to the Forge event bus API and can be overridden per project.
type Names struct {
	// Listener marks a method as an event listener.
	Listener string
	// Subscriber marks a type whose static listeners are registered on a bus.
	Subscriber string
	// EntryPoint marks the mod's main type.
	EntryPoint string
	// BusKey is the Subscriber argument selecting the bus.
	BusKey string
	// ModBusToken is the BusKey value naming the mod bus.
	ModBusToken string
	// EventBase is the type every event extends.
	EventBase string
	// ModBusMarker is implemented by events dispatched on the mod bus.
	ModBusMarker string
}

// DefaultNames returns the Forge names.
func DefaultNames() Names {
	return Names{
		Listener:     "net.minecraftforge.eventbus.api.SubscribeEvent",
		Subscriber:   "net.minecraftforge.fml.common.Mod.EventBusSubscriber",
		EntryPoint:   "net.minecraftforge.fml.common.Mod",
		BusKey:       "bus",
		ModBusToken:  "MOD",
		EventBase:    "net.minecraftforge.eventbus.api.Event",
		ModBusMarker: "net.minecraftforge.fml.event.IModBusEvent",
	}
}

// WithDefaults fills empty fields from DefaultNames.
func (n Names) WithDefaults() Names {
	d := DefaultNames()
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&n.Listener, d.Listener)
	fill(&n.Subscriber, d.Subscriber)
	fill(&n.EntryPoint, d.EntryPoint)
	fill(&n.BusKey, d.BusKey)
	fill(&n.ModBusToken, d.ModBusToken)
	fill(&n.EventBase, d.EventBase)
	fill(&n.ModBusMarker, d.ModBusMarker)
	return n
}
