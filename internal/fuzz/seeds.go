package fuzztests

import (
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB - ограничение для тестового корпуса
)

var javaSeeds = []string{
	"",
	"class A {}",
	`package com.example;

import net.minecraftforge.eventbus.api.SubscribeEvent;
import net.minecraftforge.fml.common.Mod;

@Mod.EventBusSubscriber(modid = "example", bus = Mod.EventBusSubscriber.Bus.MOD)
public class ModEvents {
    @SubscribeEvent
    public static void setup(FMLCommonSetupEvent event) {}
}
`,
	`@Mod("example")
public final class Example {
    @SubscribeEvent(priority = EventPriority.HIGH, receiveCanceled = true)
    public void onTick(TickEvent.ServerTickEvent e) { if (e != null) { return; } }
    private static final String[] NAMES = {"a", "b"};
}`,
	`public record Point(int x, int y) implements Comparable<Point> {
    public Point { assert x >= 0; }
    public int compareTo(Point o) { return 0; }
}`,
	`enum Bus { FORGE, MOD { @Override public String toString() { return "mod"; } }; Bus() {} }`,
	`@interface Marker { String value() default "x"; int[] ids() default {1, 2}; }`,
	`sealed interface Shape permits Circle, Square {}
non-sealed class Square implements Shape {}`,
	`class G<T extends Event & Marker> { <E extends T> void on(E event, java.util.List<? super E>... rest) {} }`,
	`class S { String t = """
    text block "with" quotes
    """; char c = '\''; long n = 0x1F_FFL; double d = 1e-3; }`,
	"class Unclosed { void m( {",
	"@SubscribeEvent(",
	"/* unterminated comment",
	"class Ü { void ñ(Évent é) {} }",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range javaSeeds {
		f.Add(clampSeed([]byte(s)))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
