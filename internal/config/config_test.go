package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"busguard/internal/sema"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestTemplateDecodesToDefaults(t *testing.T) {
	m := Manifest{}
	_, err := toml.Decode(ManifestTemplate, &m)
	require.NoError(t, err)
	want := DefaultManifest()
	assert.Equal(t, want.Annotations, m.Annotations)
	assert.Equal(t, want.Events, m.Events)
	assert.Equal(t, want.Check.Sources, m.Check.Sources)
	assert.Empty(t, m.Check.Exclude)
	assert.Empty(t, m.Types)
	assert.NoError(t, m.Validate())
}

func TestDiscoverManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), `
[annotations]
subscriber = "net.neoforged.fml.common.EventBusSubscriber"

[[types]]
name = "com.lib.LibEvent"
supertypes = ["net.minecraftforge.eventbus.api.Event"]

[check]
sources = ["src"]
exclude = ["**/gen/*", "Generated*.java"]
`)
	nested := filepath.Join(root, "src", "com", "example")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	m, err := DiscoverManifest(nested)
	require.NoError(t, err)

	assert.Equal(t, resolved(t, root), resolved(t, m.Root))
	names := m.Names()
	assert.Equal(t, "net.neoforged.fml.common.EventBusSubscriber", names.Subscriber)
	assert.Equal(t, sema.DefaultNames().Listener, names.Listener, "unset keys keep defaults")
	assert.Equal(t, []string{filepath.Join(m.Root, "src")}, m.SourceDirs())

	ext := m.ExternalTypes()
	last := ext[len(ext)-1]
	assert.Equal(t, "com.lib.LibEvent", last.Name)
	assert.Equal(t, []string{"net.minecraftforge.eventbus.api.Event"}, last.Supers)

	assert.True(t, m.Excluded(filepath.Join(m.Root, "src", "GeneratedStuff.java")))
	assert.False(t, m.Excluded(filepath.Join(m.Root, "src", "Events.java")))
}

func resolved(t *testing.T, p string) string {
	t.Helper()
	r, err := filepath.EvalSymlinks(p)
	require.NoError(t, err)
	return r
}

func TestDiscoverManifestMissing(t *testing.T) {
	// t.TempDir is under the system temp dir, which has no manifest above it
	// in any sane environment
	_, err := DiscoverManifest(t.TempDir())
	if err != nil {
		assert.True(t, errors.Is(err, ErrNoManifest), "got %v", err)
	}
}

func TestLoadManifestErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad toml", "[annotations\n", "failed to parse TOML"},
		{"unknown key", "[events]\nbase = \"a.B\"\nextra = 1\n", "unknown keys: events.extra"},
		{"bad canonical name", "[events]\nbase = \"not a name\"\n", "base"},
		{"duplicate types", "[[types]]\nname = \"a.B\"\n[[types]]\nname = \"a.B\"\n", "duplicate type a.B"},
		{"bad kind", "[[types]]\nname = \"a.B\"\nkind = \"struct\"\n", "kind"},
		{"empty bus key", "[annotations]\nbus_key = \"\"\n", "bus_key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ManifestName)
			writeFile(t, path, tt.content)
			_, err := LoadManifest(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestWriteTemplate(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteTemplate(dir)
	require.NoError(t, err)

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, sema.DefaultNames(), m.Names())

	_, err = WriteTemplate(dir)
	assert.Error(t, err, "must not overwrite")
}

func TestLoadSettingsLayers(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.toml"), "log-level = \"info\"\nworkers = 2\n")
	t.Setenv("BUSGUARD_WORKERS", "3")
	t.Setenv("BUSGUARD_MAX_DIAGNOSTICS", "7")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("workers", 0, "")
	flags.String("color", "auto", "")
	flags.Int("max-diagnostics", 100, "")
	require.NoError(t, flags.Parse([]string{"--color=off"}))

	s, err := LoadSettings(flags, dir)
	require.NoError(t, err)
	assert.Equal(t, "info", s.LogLevel, "config file over default")
	assert.Equal(t, 3, s.Workers, "env over config file")
	assert.Equal(t, 7, s.MaxDiagnostics, "env over unset flag")
	assert.Equal(t, "off", s.Color, "set flag wins")
	assert.Positive(t, s.Jobs)
}

func TestLoadSettingsValidation(t *testing.T) {
	t.Setenv("BUSGUARD_LOG_LEVEL", "chatty")
	_, err := LoadSettings(nil, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log-level")
}
