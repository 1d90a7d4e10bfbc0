package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"busguard/internal/logging"
)

// EnvPrefix prefixes environment overrides: BUSGUARD_LOG_LEVEL, BUSGUARD_JOBS, ...
const EnvPrefix = "BUSGUARD"

// Settings are the tool settings, as opposed to the per-project manifest.
// Keys match command-line flag names.
type Settings struct {
	LogLevel       string `mapstructure:"log-level" json:"log-level"`
	LogFormat      string `mapstructure:"log-format" json:"log-format"`
	LogFile        string `mapstructure:"log-file" json:"log-file"`
	Color          string `mapstructure:"color" json:"color"`
	Quiet          bool   `mapstructure:"quiet" json:"quiet"`
	Timings        bool   `mapstructure:"timings" json:"timings"`
	Jobs           int    `mapstructure:"jobs" json:"jobs"`
	Workers        int    `mapstructure:"workers" json:"workers"`
	MaxDiagnostics int    `mapstructure:"max-diagnostics" json:"max-diagnostics"`
}

// ColorModes lists accepted --color values.
var ColorModes = []string{"auto", "on", "off"}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		LogLevel:       "warn",
		LogFormat:      "console",
		Color:          "auto",
		Jobs:           runtime.GOMAXPROCS(0),
		Workers:        0,
		MaxDiagnostics: 100,
	}
}

func (s Settings) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.LogLevel, validation.In(stringsToAny(logging.Levels)...)),
		validation.Field(&s.LogFormat, validation.In(stringsToAny(logging.Encodings)...)),
		validation.Field(&s.Color, validation.In(stringsToAny(ColorModes)...)),
		validation.Field(&s.Jobs, validation.Min(0)),
		validation.Field(&s.Workers, validation.Min(0)),
		validation.Field(&s.MaxDiagnostics, validation.Min(0)),
	)
}

// Logging returns the logger configuration derived from s.
func (s Settings) Logging() logging.Config {
	return logging.Config{
		Level:      s.LogLevel,
		Encoding:   s.LogFormat,
		File:       s.LogFile,
		MaxSizeMB:  10,
		MaxBackups: 3,
	}
}

// LoadSettings layers defaults, an optional config.toml in configDir,
// BUSGUARD_* environment variables and explicitly set flags, in increasing
// priority. configDir may be empty.
func LoadSettings(flags *pflag.FlagSet, configDir string) (Settings, error) {
	v := viper.New()
	def := DefaultSettings()
	v.SetDefault("log-level", def.LogLevel)
	v.SetDefault("log-format", def.LogFormat)
	v.SetDefault("log-file", def.LogFile)
	v.SetDefault("color", def.Color)
	v.SetDefault("quiet", def.Quiet)
	v.SetDefault("timings", def.Timings)
	v.SetDefault("jobs", def.Jobs)
	v.SetDefault("workers", def.Workers)
	v.SetDefault("max-diagnostics", def.MaxDiagnostics)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configDir != "" {
		v.SetConfigFile(filepath.Join(configDir, "config.toml"))
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return Settings{}, fmt.Errorf("reading settings: %w", err)
			}
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Settings{}, fmt.Errorf("binding flags: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("unmarshalling settings: %w", err)
	}
	if s.Jobs == 0 {
		s.Jobs = def.Jobs
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}
