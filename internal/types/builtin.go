package types

import "busguard/internal/symbols"

// External describes a type that is not declared in the checked sources.
type External struct {
	Name   string
	Kind   symbols.SymbolKind
	Supers []string
}

const (
	eventBase   = "net.minecraftforge.eventbus.api.Event"
	genericEv   = "net.minecraftforge.eventbus.api.GenericEvent"
	modBusEvent = "net.minecraftforge.fml.event.IModBusEvent"
	lifecycle   = "net.minecraftforge.fml.event.lifecycle."
	parallel    = lifecycle + "ParallelDispatchEvent"
	entityEv    = "net.minecraftforge.event.entity.EntityEvent"
	livingEv    = "net.minecraftforge.event.entity.living.LivingEvent"
	playerEv    = "net.minecraftforge.event.entity.player.PlayerEvent"
	tickEv      = "net.minecraftforge.event.TickEvent"
)

// forgeTypes is the hierarchy of the Forge event types mods subscribe to most.
// Project manifests extend it with [[types]] entries.
var forgeTypes = []External{
	// markers
	{Name: "net.minecraftforge.eventbus.api.SubscribeEvent", Kind: symbols.SymbolAnnotation},
	{Name: "net.minecraftforge.eventbus.api.EventPriority", Kind: symbols.SymbolEnum},
	{Name: "net.minecraftforge.eventbus.api.Cancelable", Kind: symbols.SymbolAnnotation},
	{Name: "net.minecraftforge.fml.common.Mod", Kind: symbols.SymbolAnnotation},
	{Name: "net.minecraftforge.fml.common.Mod.EventBusSubscriber", Kind: symbols.SymbolAnnotation},
	{Name: "net.minecraftforge.fml.common.Mod.EventBusSubscriber.Bus", Kind: symbols.SymbolEnum},
	{Name: "net.minecraftforge.api.distmarker.Dist", Kind: symbols.SymbolEnum},

	// base types
	{Name: eventBase, Kind: symbols.SymbolClass},
	{Name: genericEv, Kind: symbols.SymbolClass, Supers: []string{eventBase}},
	{Name: modBusEvent, Kind: symbols.SymbolInterface},

	// mod bus
	{Name: lifecycle + "ModLifecycleEvent", Kind: symbols.SymbolClass, Supers: []string{eventBase, modBusEvent}},
	{Name: parallel, Kind: symbols.SymbolClass, Supers: []string{lifecycle + "ModLifecycleEvent"}},
	{Name: lifecycle + "FMLConstructModEvent", Kind: symbols.SymbolClass, Supers: []string{parallel}},
	{Name: lifecycle + "FMLCommonSetupEvent", Kind: symbols.SymbolClass, Supers: []string{parallel}},
	{Name: lifecycle + "FMLClientSetupEvent", Kind: symbols.SymbolClass, Supers: []string{parallel}},
	{Name: lifecycle + "FMLDedicatedServerSetupEvent", Kind: symbols.SymbolClass, Supers: []string{parallel}},
	{Name: lifecycle + "InterModEnqueueEvent", Kind: symbols.SymbolClass, Supers: []string{parallel}},
	{Name: lifecycle + "InterModProcessEvent", Kind: symbols.SymbolClass, Supers: []string{parallel}},
	{Name: lifecycle + "FMLLoadCompleteEvent", Kind: symbols.SymbolClass, Supers: []string{parallel}},
	{Name: "net.minecraftforge.fml.event.config.ModConfigEvent", Kind: symbols.SymbolClass, Supers: []string{eventBase, modBusEvent}},
	{Name: "net.minecraftforge.fml.event.config.ModConfigEvent.Loading", Kind: symbols.SymbolClass, Supers: []string{"net.minecraftforge.fml.event.config.ModConfigEvent"}},
	{Name: "net.minecraftforge.fml.event.config.ModConfigEvent.Reloading", Kind: symbols.SymbolClass, Supers: []string{"net.minecraftforge.fml.event.config.ModConfigEvent"}},
	{Name: "net.minecraftforge.event.RegistryEvent", Kind: symbols.SymbolClass, Supers: []string{genericEv, modBusEvent}},
	{Name: "net.minecraftforge.event.RegistryEvent.Register", Kind: symbols.SymbolClass, Supers: []string{"net.minecraftforge.event.RegistryEvent"}},
	{Name: "net.minecraftforge.registries.RegisterEvent", Kind: symbols.SymbolClass, Supers: []string{eventBase, modBusEvent}},
	{Name: "net.minecraftforge.event.entity.EntityAttributeCreationEvent", Kind: symbols.SymbolClass, Supers: []string{eventBase, modBusEvent}},
	{Name: "net.minecraftforge.event.BuildCreativeModeTabContentsEvent", Kind: symbols.SymbolClass, Supers: []string{eventBase, modBusEvent}},
	{Name: "net.minecraftforge.data.event.GatherDataEvent", Kind: symbols.SymbolClass, Supers: []string{eventBase, modBusEvent}},
	{Name: "net.minecraftforge.client.event.RegisterKeyMappingsEvent", Kind: symbols.SymbolClass, Supers: []string{eventBase, modBusEvent}},
	{Name: "net.minecraftforge.client.event.EntityRenderersEvent", Kind: symbols.SymbolClass, Supers: []string{eventBase, modBusEvent}},
	{Name: "net.minecraftforge.client.event.EntityRenderersEvent.RegisterRenderers", Kind: symbols.SymbolClass, Supers: []string{"net.minecraftforge.client.event.EntityRenderersEvent"}},

	// forge bus
	{Name: tickEv, Kind: symbols.SymbolClass, Supers: []string{eventBase}},
	{Name: tickEv + ".ServerTickEvent", Kind: symbols.SymbolClass, Supers: []string{tickEv}},
	{Name: tickEv + ".ClientTickEvent", Kind: symbols.SymbolClass, Supers: []string{tickEv}},
	{Name: tickEv + ".PlayerTickEvent", Kind: symbols.SymbolClass, Supers: []string{tickEv}},
	{Name: tickEv + ".LevelTickEvent", Kind: symbols.SymbolClass, Supers: []string{tickEv}},
	{Name: tickEv + ".Phase", Kind: symbols.SymbolEnum},
	{Name: entityEv, Kind: symbols.SymbolClass, Supers: []string{eventBase}},
	{Name: "net.minecraftforge.event.entity.EntityJoinLevelEvent", Kind: symbols.SymbolClass, Supers: []string{entityEv}},
	{Name: livingEv, Kind: symbols.SymbolClass, Supers: []string{entityEv}},
	{Name: livingEv + ".LivingTickEvent", Kind: symbols.SymbolClass, Supers: []string{livingEv}},
	{Name: "net.minecraftforge.event.entity.living.LivingHurtEvent", Kind: symbols.SymbolClass, Supers: []string{livingEv}},
	{Name: "net.minecraftforge.event.entity.living.LivingDeathEvent", Kind: symbols.SymbolClass, Supers: []string{livingEv}},
	{Name: playerEv, Kind: symbols.SymbolClass, Supers: []string{livingEv}},
	{Name: playerEv + ".PlayerLoggedInEvent", Kind: symbols.SymbolClass, Supers: []string{playerEv}},
	{Name: playerEv + ".PlayerLoggedOutEvent", Kind: symbols.SymbolClass, Supers: []string{playerEv}},
	{Name: playerEv + ".PlayerRespawnEvent", Kind: symbols.SymbolClass, Supers: []string{playerEv}},
	{Name: "net.minecraftforge.event.entity.player.PlayerInteractEvent", Kind: symbols.SymbolClass, Supers: []string{playerEv}},
	{Name: "net.minecraftforge.event.entity.player.PlayerInteractEvent.RightClickBlock", Kind: symbols.SymbolClass, Supers: []string{"net.minecraftforge.event.entity.player.PlayerInteractEvent"}},
	{Name: "net.minecraftforge.event.level.BlockEvent", Kind: symbols.SymbolClass, Supers: []string{eventBase}},
	{Name: "net.minecraftforge.event.level.BlockEvent.BreakEvent", Kind: symbols.SymbolClass, Supers: []string{"net.minecraftforge.event.level.BlockEvent"}},
	{Name: "net.minecraftforge.event.level.LevelEvent", Kind: symbols.SymbolClass, Supers: []string{eventBase}},
	{Name: "net.minecraftforge.event.level.LevelEvent.Load", Kind: symbols.SymbolClass, Supers: []string{"net.minecraftforge.event.level.LevelEvent"}},
	{Name: "net.minecraftforge.event.level.LevelEvent.Unload", Kind: symbols.SymbolClass, Supers: []string{"net.minecraftforge.event.level.LevelEvent"}},
	{Name: "net.minecraftforge.event.RegisterCommandsEvent", Kind: symbols.SymbolClass, Supers: []string{eventBase}},
	{Name: "net.minecraftforge.event.AddReloadListenerEvent", Kind: symbols.SymbolClass, Supers: []string{eventBase}},
	{Name: "net.minecraftforge.event.AttachCapabilitiesEvent", Kind: symbols.SymbolClass, Supers: []string{genericEv}},
	{Name: "net.minecraftforge.event.server.ServerLifecycleEvent", Kind: symbols.SymbolClass, Supers: []string{eventBase}},
	{Name: "net.minecraftforge.event.server.ServerStartingEvent", Kind: symbols.SymbolClass, Supers: []string{"net.minecraftforge.event.server.ServerLifecycleEvent"}},
	{Name: "net.minecraftforge.event.server.ServerStoppingEvent", Kind: symbols.SymbolClass, Supers: []string{"net.minecraftforge.event.server.ServerLifecycleEvent"}},
	{Name: "net.minecraftforge.client.event.InputEvent", Kind: symbols.SymbolClass, Supers: []string{eventBase}},
	{Name: "net.minecraftforge.client.event.InputEvent.Key", Kind: symbols.SymbolClass, Supers: []string{"net.minecraftforge.client.event.InputEvent"}},
	{Name: "net.minecraftforge.client.event.RenderLevelStageEvent", Kind: symbols.SymbolClass, Supers: []string{eventBase}},
}

// Builtins returns a copy of the built-in external type table.
func Builtins() []External {
	out := make([]External, len(forgeTypes))
	copy(out, forgeTypes)
	return out
}

// DeclareExternals registers ext in table. Later entries for the same name
// merge their supertypes into earlier ones.
func DeclareExternals(table *symbols.Table, ext []External) {
	for _, e := range ext {
		if e.Name == "" {
			continue
		}
		table.DeclareExternal(e.Name, e.Kind, symbols.SymbolFlagExternal, e.Supers)
	}
}
