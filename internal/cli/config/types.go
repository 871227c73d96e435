// Package config provides configuration management for the leapcheck CLI.
//
// Configuration is layered: built-in defaults, then leapcheck.yaml (or
// .yml), then LEAPCHECK_* environment variables, then command-line flags.
package config

import "github.com/leapstack-labs/leapcheck/pkg/rules"

// Config holds all CLI configuration options.
type Config struct {
	Verbose     bool     `koanf:"verbose"`
	Output      string   `koanf:"output"` // table or json
	SummaryOnly bool     `koanf:"summary_only"`
	Rules       []string `koanf:"rules"`

	// Rule defaults, overridable per run.
	CompletenessThreshold float64                `koanf:"completeness_threshold"`
	CheckAllColumns       bool                   `koanf:"check_all_columns"`
	RequiredColumns       []string               `koanf:"required_columns"`
	ColumnsToCheck        []string               `koanf:"columns_to_check"`
	OutlierMethod         string                 `koanf:"outlier_method"`
	OutlierThreshold      float64                `koanf:"outlier_threshold"`
	FixedRanges           map[string]rules.Range `koanf:"fixed_ranges"`
	CaseSensitive         bool                   `koanf:"case_sensitive"`
	AllowEmpty            bool                   `koanf:"allow_empty"`
	AutoDetect            bool                   `koanf:"auto_detect"`
}

// Defaults returns the built-in configuration values.
func Defaults() map[string]any {
	base := rules.DefaultOptions()
	return map[string]any{
		"output":                 "table",
		"completeness_threshold": base.CompletenessThreshold,
		"outlier_method":         base.OutlierMethod,
		"allow_empty":            base.AllowEmpty,
		"auto_detect":            base.AutoDetect,
	}
}

// RuleOptions converts the configuration into per-call rule options.
func (c *Config) RuleOptions() rules.Options {
	return rules.Options{
		AutoDetect:            c.AutoDetect,
		CaseSensitive:         c.CaseSensitive,
		AllowEmpty:            c.AllowEmpty,
		RequiredColumns:       c.RequiredColumns,
		CheckAllColumns:       c.CheckAllColumns,
		CompletenessThreshold: c.CompletenessThreshold,
		ColumnsToCheck:        c.ColumnsToCheck,
		OutlierMethod:         c.OutlierMethod,
		OutlierThreshold:      c.OutlierThreshold,
		FixedRanges:           c.FixedRanges,
	}
}
