package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"busguard/internal/sema"
	"busguard/internal/symbols"
	"busguard/internal/types"
)

// ManifestName is the project manifest file name.
const ManifestName = "busguard.toml"

// ErrNoManifest is returned when no manifest is found walking up from the start dir.
var ErrNoManifest = errors.New("no " + ManifestName + " found")

var canonicalName = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*(\.[A-Za-z_$][A-Za-z0-9_$]*)*$`)
var identifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Manifest is the decoded busguard.toml.
type Manifest struct {
	// Path and Root are set by LoadManifest.
	Path string `toml:"-"`
	Root string `toml:"-"`

	Annotations AnnotationsConfig `toml:"annotations" json:"annotations"`
	Events      EventsConfig      `toml:"events" json:"events"`
	Types       []TypeEntry       `toml:"types" json:"types"`
	Check       CheckConfig       `toml:"check" json:"check"`
}

type AnnotationsConfig struct {
	Listener    string `toml:"listener" json:"listener"`
	Subscriber  string `toml:"subscriber" json:"subscriber"`
	EntryPoint  string `toml:"entrypoint" json:"entrypoint"`
	BusKey      string `toml:"bus_key" json:"bus_key"`
	ModBusToken string `toml:"mod_bus_token" json:"mod_bus_token"`
}

type EventsConfig struct {
	Base         string `toml:"base" json:"base"`
	ModBusMarker string `toml:"mod_bus_marker" json:"mod_bus_marker"`
}

// TypeEntry describes an external type: its canonical name and direct supertypes.
type TypeEntry struct {
	Name       string   `toml:"name" json:"name"`
	Kind       string   `toml:"kind" json:"kind"`
	Supertypes []string `toml:"supertypes" json:"supertypes"`
}

type CheckConfig struct {
	// Sources are paths relative to the manifest directory.
	Sources []string `toml:"sources" json:"sources"`
	// Exclude holds filepath.Match patterns matched against slash paths relative to Root.
	Exclude []string `toml:"exclude" json:"exclude"`
}

// TypeKinds lists accepted [[types]] kinds.
var TypeKinds = []string{"class", "interface", "enum", "record", "annotation"}

// DefaultManifest returns the manifest used when no busguard.toml exists.
func DefaultManifest() Manifest {
	n := sema.DefaultNames()
	return Manifest{
		Annotations: AnnotationsConfig{
			Listener:    n.Listener,
			Subscriber:  n.Subscriber,
			EntryPoint:  n.EntryPoint,
			BusKey:      n.BusKey,
			ModBusToken: n.ModBusToken,
		},
		Events: EventsConfig{
			Base:         n.EventBase,
			ModBusMarker: n.ModBusMarker,
		},
		Check: CheckConfig{Sources: []string{"src/main/java"}},
	}
}

func (a AnnotationsConfig) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Listener, validation.Required, validation.Match(canonicalName)),
		validation.Field(&a.Subscriber, validation.Required, validation.Match(canonicalName)),
		validation.Field(&a.EntryPoint, validation.Required, validation.Match(canonicalName)),
		validation.Field(&a.BusKey, validation.Required, validation.Match(identifier)),
		validation.Field(&a.ModBusToken, validation.Required, validation.Match(identifier)),
	)
}

func (e EventsConfig) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Base, validation.Required, validation.Match(canonicalName)),
		validation.Field(&e.ModBusMarker, validation.Required, validation.Match(canonicalName)),
	)
}

func (t TypeEntry) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Name, validation.Required, validation.Match(canonicalName)),
		validation.Field(&t.Kind, validation.In(stringsToAny(TypeKinds)...)),
		validation.Field(&t.Supertypes, validation.Each(validation.Required, validation.Match(canonicalName))),
	)
}

func (c CheckConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Exclude, validation.Each(validation.By(validPattern))),
	)
}

// Validate checks the whole manifest.
func (m Manifest) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Annotations),
		validation.Field(&m.Events),
		validation.Field(&m.Types, validation.By(uniqueTypeNames)),
		validation.Field(&m.Check),
	)
}

func uniqueTypeNames(value any) error {
	entries, _ := value.([]TypeEntry)
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.Name]; dup {
			return fmt.Errorf("duplicate type %s", e.Name)
		}
		seen[e.Name] = struct{}{}
	}
	return nil
}

func validPattern(value any) error {
	p, _ := value.(string)
	if _, err := filepath.Match(p, ""); err != nil {
		return fmt.Errorf("bad pattern %q: %w", p, err)
	}
	return nil
}

func stringsToAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

// FindManifest walks up from startDir looking for busguard.toml.
func FindManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadManifest decodes and validates the manifest at path. Keys left out
// keep their default values; unknown keys are an error.
func LoadManifest(path string) (*Manifest, error) {
	m := DefaultManifest()
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	m.Path = abs
	m.Root = filepath.Dir(abs)
	return &m, nil
}

// DiscoverManifest finds and loads the manifest for startDir.
// It returns ErrNoManifest when there is none.
func DiscoverManifest(startDir string) (*Manifest, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoManifest
	}
	return LoadManifest(path)
}

// Names converts the manifest to the names the listener checks use.
func (m *Manifest) Names() sema.Names {
	return sema.Names{
		Listener:     m.Annotations.Listener,
		Subscriber:   m.Annotations.Subscriber,
		EntryPoint:   m.Annotations.EntryPoint,
		BusKey:       m.Annotations.BusKey,
		ModBusToken:  m.Annotations.ModBusToken,
		EventBase:    m.Events.Base,
		ModBusMarker: m.Events.ModBusMarker,
	}.WithDefaults()
}

// ExternalTypes returns the [[types]] entries merged over the built-in table.
func (m *Manifest) ExternalTypes() []types.External {
	out := types.Builtins()
	for _, e := range m.Types {
		out = append(out, types.External{Name: e.Name, Kind: kindOf(e.Kind), Supers: e.Supertypes})
	}
	return out
}

// SourceDirs returns the configured source roots as absolute paths.
func (m *Manifest) SourceDirs() []string {
	out := make([]string, 0, len(m.Check.Sources))
	for _, s := range m.Check.Sources {
		p := filepath.FromSlash(s)
		if !filepath.IsAbs(p) && m.Root != "" {
			p = filepath.Join(m.Root, p)
		}
		out = append(out, p)
	}
	return out
}

// Excluded reports whether path matches one of the exclude patterns.
func (m *Manifest) Excluded(path string) bool {
	if len(m.Check.Exclude) == 0 {
		return false
	}
	rel := path
	if m.Root != "" {
		if r, err := filepath.Rel(m.Root, path); err == nil {
			rel = r
		}
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(path)
	for _, pat := range m.Check.Exclude {
		if ok, _ := filepath.Match(pat, rel); ok {
			return true
		}
		if ok, _ := filepath.Match(pat, base); ok {
			return true
		}
	}
	return false
}

func kindOf(kind string) symbols.SymbolKind {
	switch kind {
	case "interface":
		return symbols.SymbolInterface
	case "enum":
		return symbols.SymbolEnum
	case "record":
		return symbols.SymbolRecord
	case "annotation":
		return symbols.SymbolAnnotation
	default:
		return symbols.SymbolClass
	}
}
