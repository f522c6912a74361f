package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sghaida/classhelper/internal/config"
)

const yamlConfig = `
logging:
  level: debug
  format: json
  output: stderr
metrics:
  enabled: true
  namespace: shop
overrides:
  - original: shop.BasicCart
    replacement: shop.PromoCart
  - original: shop.Ledger
    replacement: ${LEDGER_CLASS}
    force: true
`

const tomlConfig = `
[logging]
level = "warn"
format = "console"

[metrics]
enabled = false

[[overrides]]
original = "shop.BasicCart"
replacement = "shop.PromoCart"
force = true
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

//
// -----------------------------------------------------------------------------
// Load
// -----------------------------------------------------------------------------

// TestLoad_YAML verifies YAML parsing and ${VAR} expansion.
func TestLoad_YAML(t *testing.T) {
	t.Setenv("LEDGER_CLASS", "shop.AuditLedger")

	cfg, err := config.Load(writeConfig(t, "config.yaml", yamlConfig))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "shop", cfg.Metrics.NamespaceOrDefault())
	assert.Equal(t, []config.OverrideConfig{
		{Original: "shop.BasicCart", Replacement: "shop.PromoCart"},
		{Original: "shop.Ledger", Replacement: "shop.AuditLedger", Force: true},
	}, cfg.Overrides)
}

// TestLoad_TOML verifies the format is picked from the extension.
func TestLoad_TOML(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(writeConfig(t, "config.toml", tomlConfig))
	require.NoError(t, err)

	assert.Equal(t, zerolog.WarnLevel, cfg.Logging.ParseLevel())
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.False(t, cfg.Metrics.Enabled)
	require.Len(t, cfg.Overrides, 1)
	assert.True(t, cfg.Overrides[0].Force)
}

// TestLoad_Errors verifies open, parse and validation failures.
func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open config file")
	})

	t.Run("bad yaml", func(t *testing.T) {
		t.Parallel()
		_, err := config.Load(writeConfig(t, "c.yaml", "logging: [unclosed"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config YAML")
	})

	t.Run("bad toml", func(t *testing.T) {
		t.Parallel()
		_, err := config.Load(writeConfig(t, "c.toml", "[logging\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config TOML")
	})

	t.Run("invalid values", func(t *testing.T) {
		t.Parallel()
		_, err := config.Load(writeConfig(t, "c.yaml", "logging:\n  level: loud\n"))
		var ve *config.ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Len(t, ve.Errors, 1)
	})
}

// TestLoadFromReader_Empty verifies an empty document yields the zero config.
func TestLoadFromReader_Empty(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadFromReader(strings.NewReader(""), config.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, &config.Config{}, cfg)
	assert.Equal(t, config.DefaultMetricsNamespace, cfg.Metrics.NamespaceOrDefault())
}

// TestFormatFromPath verifies extension handling.
func TestFormatFromPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, config.FormatTOML, config.FormatFromPath("a/b.toml"))
	assert.Equal(t, config.FormatTOML, config.FormatFromPath("B.TOML"))
	assert.Equal(t, config.FormatYAML, config.FormatFromPath("c.yaml"))
	assert.Equal(t, config.FormatYAML, config.FormatFromPath("c.yml"))
	assert.Equal(t, config.FormatYAML, config.FormatFromPath("noext"))
}

//
// -----------------------------------------------------------------------------
// Validate
// -----------------------------------------------------------------------------

// TestValidate collects every problem in one error.
func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		Logging: config.LoggingConfig{Level: "loud", Format: "xml"},
		Overrides: []config.OverrideConfig{
			{Original: "a", Replacement: "b"},
			{Original: "", Replacement: ""},
			{Original: "a", Replacement: "c"},
		},
	}

	err := cfg.Validate()
	var ve *config.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Errors, 5)
	assert.Contains(t, err.Error(), "config validation failed with 5 errors")
	assert.Contains(t, err.Error(), `"a" is overridden more than once`)
}

// TestValidate_OK verifies a valid config passes.
func TestValidate_OK(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		Logging:   config.LoggingConfig{Level: "INFO", Format: "pretty"},
		Overrides: []config.OverrideConfig{{Original: "a", Replacement: "b"}},
	}
	assert.NoError(t, cfg.Validate())
}

// TestValidationError_Messages verifies the message shapes.
func TestValidationError_Messages(t *testing.T) {
	t.Parallel()

	e := &config.ValidationError{}
	assert.False(t, e.HasErrors())
	assert.NoError(t, e.ToError())
	assert.Equal(t, "config validation failed", e.Error())

	e.Add("one")
	assert.Equal(t, "config validation failed: one", e.Error())

	e.Addf("two %d", 2)
	assert.Equal(t, "config validation failed with 2 errors:\n  - one\n  - two 2", e.Error())
	assert.Error(t, e.ToError())
}

// TestParseLevel covers every level and the fallback.
func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zerolog.Level{
		"debug": zerolog.DebugLevel,
		"INFO":  zerolog.InfoLevel,
		"warn":  zerolog.WarnLevel,
		"error": zerolog.ErrorLevel,
		"":      zerolog.InfoLevel,
		"loud":  zerolog.InfoLevel,
	}
	for in, want := range cases {
		l := config.LoggingConfig{Level: in}
		assert.Equal(t, want, l.ParseLevel(), in)
	}
}

// TestMetricsConfig_NamespaceOption verifies blank namespaces are absent.
func TestMetricsConfig_NamespaceOption(t *testing.T) {
	t.Parallel()

	m := config.MetricsConfig{Namespace: "  "}
	assert.True(t, m.GetNamespaceOption().IsAbsent())

	m.Namespace = "x"
	assert.Equal(t, "x", m.GetNamespaceOption().MustGet())
}
