package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestTemplate is written by `busguard init`.
const ManifestTemplate = `# busguard project manifest

[annotations]
listener = "net.minecraftforge.eventbus.api.SubscribeEvent"
subscriber = "net.minecraftforge.fml.common.Mod.EventBusSubscriber"
entrypoint = "net.minecraftforge.fml.common.Mod"
bus_key = "bus"
mod_bus_token = "MOD"

[events]
base = "net.minecraftforge.eventbus.api.Event"
mod_bus_marker = "net.minecraftforge.fml.event.IModBusEvent"

[check]
sources = ["src/main/java"]
exclude = []

# Event types from libraries that are not part of the checked sources.
# [[types]]
# name = "com.example.api.MyEvent"
# supertypes = ["net.minecraftforge.eventbus.api.Event"]
`

// WriteTemplate creates dir/busguard.toml. It refuses to overwrite an existing file.
func WriteTemplate(dir string) (string, error) {
	path := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return path, fmt.Errorf("failed to stat %q: %w", path, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return path, fmt.Errorf("failed to create %q: %w", dir, err)
	}
	if err := os.WriteFile(path, []byte(ManifestTemplate), 0o600); err != nil {
		return path, fmt.Errorf("failed to write %q: %w", path, err)
	}
	return path, nil
}
