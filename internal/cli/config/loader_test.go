package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapcheck/pkg/rules"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "leapcheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "table", cfg.Output)
	assert.Equal(t, 95.0, cfg.CompletenessThreshold)
	assert.Equal(t, rules.OutlierMethodIQR, cfg.OutlierMethod)
	assert.True(t, cfg.AllowEmpty)
	assert.True(t, cfg.AutoDetect)
	assert.False(t, cfg.Verbose)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := writeConfig(t, `
output: json
completeness_threshold: 90
rules:
  - referential_integrity
fixed_ranges:
  amount:
    min: 0
    max: 100
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, 90.0, cfg.CompletenessThreshold)
	assert.Equal(t, []string{"referential_integrity"}, cfg.Rules)
	require.Contains(t, cfg.FixedRanges, "amount")
	require.NotNil(t, cfg.FixedRanges["amount"].Min)
	assert.Equal(t, 0.0, *cfg.FixedRanges["amount"].Min)
	require.NotNil(t, cfg.FixedRanges["amount"].Max)
	assert.Equal(t, 100.0, *cfg.FixedRanges["amount"].Max)

	assert.Equal(t, path, GetConfigFileUsed())
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "output: json\n")
	t.Setenv("LEAPCHECK_OUTPUT", "table")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "table", cfg.Output)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("LEAPCHECK_OUTPUT", "json")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", "table", "")
	require.NoError(t, flags.Set("output", "table"))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "table", cfg.Output)
}

func TestRuleOptions(t *testing.T) {
	cfg := &Config{
		AutoDetect:            true,
		AllowEmpty:            true,
		CaseSensitive:         true,
		RequiredColumns:       []string{"email"},
		CompletenessThreshold: 90,
		OutlierMethod:         rules.OutlierMethodZScore,
		OutlierThreshold:      2.0,
	}

	opts := cfg.RuleOptions()
	assert.True(t, opts.AutoDetect)
	assert.True(t, opts.CaseSensitive)
	assert.Equal(t, []string{"email"}, opts.RequiredColumns)
	assert.Equal(t, 90.0, opts.CompletenessThreshold)
	assert.Equal(t, rules.OutlierMethodZScore, opts.OutlierMethod)
	assert.Equal(t, 2.0, opts.OutlierThreshold)
}
