package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"busguard/internal/config"
	"busguard/internal/diagfmt"
)

const listenerSrc = `package com.example;

import net.minecraftforge.eventbus.api.SubscribeEvent;
import net.minecraftforge.fml.common.Mod;
import net.minecraftforge.fml.event.lifecycle.FMLCommonSetupEvent;

@Mod.EventBusSubscriber(modid = "example", bus = Mod.EventBusSubscriber.Bus.MOD)
public class ModEvents {
    @SubscribeEvent
    public static void setup(FMLCommonSetupEvent event) {}

    @SubscribeEvent
    public static void two(FMLCommonSetupEvent a, FMLCommonSetupEvent b) {}
}
`

const cleanSrc = `package com.example;

import net.minecraftforge.eventbus.api.SubscribeEvent;
import net.minecraftforge.fml.common.Mod;
import net.minecraftforge.fml.event.lifecycle.FMLCommonSetupEvent;

@Mod.EventBusSubscriber(modid = "example", bus = Mod.EventBusSubscriber.Bus.MOD)
public class ModEvents {
    @SubscribeEvent
    public static void setup(FMLCommonSetupEvent event) {}
}
`

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")

	a := &app{}
	cmd := newRootCmd(a)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	a.close()
	return stdout.String(), stderr.String(), err
}

func writeSource(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ModEvents.java"), []byte(src), 0o600))
	return dir
}

func TestCheckShortReportsFindings(t *testing.T) {
	dir := writeSource(t, listenerSrc)
	stdout, _, err := execute(t, "check", "--format", "short", "--ui", "off", "--no-info", dir)
	require.ErrorIs(t, err, errFindings)
	assert.Contains(t, stdout, "ModEvents.java:")
	assert.Contains(t, stdout, "ERROR SEM3101: Event Listener can only have one Parameter")
	assert.NotContains(t, stdout, "PRC5000")
}

func TestCheckJSONClean(t *testing.T) {
	dir := writeSource(t, cleanSrc)
	stdout, _, err := execute(t, "check", "--format", "json", dir)
	require.NoError(t, err)

	var out diagfmt.DiagnosticsOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, 0, out.Errors)
	// the processor banner is the only diagnostic
	require.Len(t, out.Diagnostics, 1)
	assert.Equal(t, "PRC5000", out.Diagnostics[0].Code)
}

func TestCheckQuietDropsInfo(t *testing.T) {
	dir := writeSource(t, cleanSrc)
	stdout, stderr, err := execute(t, "check", "--quiet", "--timings", "--format", "short", dir)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Empty(t, stderr)
}

func TestCheckTimingsSummary(t *testing.T) {
	dir := writeSource(t, cleanSrc)
	_, stderr, err := execute(t, "check", "--timings", "--ui", "off", "--format", "short", dir)
	require.NoError(t, err)
	assert.Contains(t, stderr, "timings:")
	assert.Contains(t, stderr, "process")
}

func TestCheckRejectsBadFlags(t *testing.T) {
	dir := writeSource(t, cleanSrc)
	_, _, err := execute(t, "check", "--format", "xml", dir)
	require.Error(t, err)
	assert.NotErrorIs(t, err, errFindings)

	_, _, err = execute(t, "check", "--ui", "maybe", dir)
	require.Error(t, err)

	_, _, err = execute(t, "--color", "sometimes", "check", dir)
	require.Error(t, err)
}

func TestCheckMissingInput(t *testing.T) {
	_, _, err := execute(t, "check", "--ui", "off", filepath.Join(t.TempDir(), "nope"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDeclsJSON(t *testing.T) {
	dir := writeSource(t, listenerSrc)
	stdout, _, err := execute(t, "decls", dir)
	require.NoError(t, err)

	var units []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &units))
	require.Len(t, units, 1)
}

func TestDeclsUnknownFormat(t *testing.T) {
	dir := writeSource(t, listenerSrc)
	_, _, err := execute(t, "decls", "--format", "yaml", dir)
	require.Error(t, err)
}

func TestInitWritesManifestOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "mod")
	stdout, _, err := execute(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, config.ManifestName)

	m, err := config.LoadManifest(filepath.Join(dir, config.ManifestName))
	require.NoError(t, err)
	assert.Equal(t, []string{"src/main/java"}, m.Check.Sources)

	_, _, err = execute(t, "init", dir)
	require.Error(t, err)
}

func TestCheckUsesDiscoveredManifest(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, config.ManifestName), []byte(config.ManifestTemplate), 0o600))
	src := filepath.Join(root, "src", "main", "java")
	require.NoError(t, os.MkdirAll(src, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "ModEvents.java"), []byte(listenerSrc), 0o600))

	m, err := resolveManifest("", []string{src})
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, root, m.Root)

	none, err := resolveManifest("", []string{t.TempDir()})
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestVersionJSON(t *testing.T) {
	stdout, _, err := execute(t, "version", "--format", "json", "--full")
	require.NoError(t, err)

	var payload versionPayload
	require.NoError(t, json.Unmarshal([]byte(stdout), &payload))
	assert.Equal(t, "busguard", payload.Tool)
	assert.Equal(t, "ForgeEventBusSubscriber", payload.Processor)
	assert.Equal(t, "1.0.0", payload.ProcessorVersion)
	assert.Equal(t, "unknown", payload.GitCommit)
}

func TestVersionPretty(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "busguard ")
	assert.Contains(t, stdout, "ForgeEventBusSubscriber 1.0.0")
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, "on": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := readUIMode("sometimes")
	require.Error(t, err)
	assert.False(t, shouldUseTUI(uiModeAuto, true))
	assert.True(t, shouldUseTUI(uiModeOn, true))
}

func TestCheckWritesProfiles(t *testing.T) {
	dir := writeSource(t, cleanSrc)
	out := t.TempDir()
	cpu := filepath.Join(out, "cpu.pprof")
	mem := filepath.Join(out, "mem.pprof")
	_, _, err := execute(t, "--cpuprofile", cpu, "--memprofile", mem, "check", "--ui", "off", dir)
	require.NoError(t, err)
	assert.FileExists(t, cpu)
	assert.FileExists(t, mem)
}

func TestCheckWritesTrace(t *testing.T) {
	dir := writeSource(t, cleanSrc)
	path := filepath.Join(t.TempDir(), "run.ndjson")
	_, _, err := execute(t, "--trace", path, "check", "--ui", "off", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name":"process"`)
}
