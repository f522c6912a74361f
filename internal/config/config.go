package config

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Log level names.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Config is the root configuration of a host application.
type Config struct {
	Logging   LoggingConfig    `yaml:"logging" toml:"logging"`
	Metrics   MetricsConfig    `yaml:"metrics" toml:"metrics"`
	Overrides []OverrideConfig `yaml:"overrides" toml:"overrides"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`   // debug, info, warn, error
	Format string `yaml:"format" toml:"format"` // json, console, pretty
	Output string `yaml:"output" toml:"output"` // stdout, stderr, or file path
	Pretty bool   `yaml:"pretty" toml:"pretty"` // force colored console output
}

// ParseLevel converts the configured level to a zerolog.Level.
// Unknown or empty levels map to info.
func (l *LoggingConfig) ParseLevel() zerolog.Level {
	switch strings.ToLower(l.Level) {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// MetricsConfig controls the Prometheus collector attached to the registry.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled" toml:"enabled"`
	Namespace string `yaml:"namespace" toml:"namespace"`
}

// DefaultMetricsNamespace is used when metrics are enabled without a namespace.
const DefaultMetricsNamespace = "classhelper"

// GetNamespaceOption returns the namespace when one is configured.
func (m *MetricsConfig) GetNamespaceOption() mo.Option[string] {
	if strings.TrimSpace(m.Namespace) == "" {
		return mo.None[string]()
	}
	return mo.Some(m.Namespace)
}

// NamespaceOrDefault returns the configured namespace or DefaultMetricsNamespace.
func (m *MetricsConfig) NamespaceOrDefault() string {
	return m.GetNamespaceOption().OrElse(DefaultMetricsNamespace)
}

// OverrideConfig is one override registered at startup.
type OverrideConfig struct {
	Original    string `yaml:"original" toml:"original"`
	Replacement string `yaml:"replacement" toml:"replacement"`
	Force       bool   `yaml:"force" toml:"force"`
}

// Valid logging levels and formats. Empty selects the default.
var (
	validLogLevels  = map[string]bool{"": true, LevelDebug: true, LevelInfo: true, LevelWarn: true, LevelError: true}
	validLogFormats = map[string]bool{"": true, "json": true, "console": true, "text": true, "pretty": true}
)

// Validate checks the configuration and returns a ValidationError holding every
// problem found, or nil.
func (c *Config) Validate() error {
	errs := &ValidationError{}

	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs.Addf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	if !validLogFormats[strings.ToLower(c.Logging.Format)] {
		errs.Addf("logging.format must be one of json, console, pretty; got %q", c.Logging.Format)
	}

	for i, o := range c.Overrides {
		if strings.TrimSpace(o.Original) == "" {
			errs.Addf("overrides[%d].original is required", i)
		}
		if strings.TrimSpace(o.Replacement) == "" {
			errs.Addf("overrides[%d].replacement is required", i)
		}
	}

	dups := lo.FindDuplicates(lo.FilterMap(c.Overrides, func(o OverrideConfig, _ int) (string, bool) {
		return o.Original, o.Original != ""
	}))
	for _, name := range dups {
		errs.Addf("overrides: %q is overridden more than once", name)
	}

	return errs.ToError()
}
