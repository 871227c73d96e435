// Package validate orchestrates the validation pipeline: context
// construction, index building, rule execution, and report rendering.
//
// A single call is a synchronous pipeline with one parallel fan-out
// point: the selected rules run concurrently against the same immutable
// (context, indexes) pair, and their issues are merged deterministically
// in rule-selection order.
package validate

import (
	"time"

	"github.com/leapstack-labs/leapcheck/pkg/core"
)

// Options holds per-call validation options.
type Options struct {
	// ValidationRules selects the rules to run by id; empty means the
	// engine-level configured list, or all registered rules.
	ValidationRules []string

	// KeyColumns switches the referential integrity rule to manual
	// relationships and disables auto-detection for this call.
	KeyColumns []string

	// Sheet selects a sheet by name in multi-sheet formats.
	Sheet string

	// AutoDetectRelationships overrides automatic relationship usage.
	// Nil leaves the engine default in place.
	AutoDetectRelationships *bool

	// Tolerance overrides the outlier threshold multiplier when > 0.
	Tolerance float64
}

// Summary aggregates counts for one validation call.
type Summary struct {
	TotalFiles    int           `json:"total_files"`
	TotalRows     int           `json:"total_rows"`
	Critical      int           `json:"critical_issues"`
	Warnings      int           `json:"warnings"`
	Info          int           `json:"info"`
	FilesAffected []string      `json:"files_affected,omitempty"`
	Elapsed       time.Duration `json:"elapsed"`
}

// Result is the logical outcome of one validation call.
// Success is true iff there are zero critical issues.
type Result struct {
	Success         bool         `json:"success"`
	Summary         Summary      `json:"summary"`
	Issues          []core.Issue `json:"issues"`
	Report          string       `json:"report,omitempty"`
	Recommendations []string     `json:"recommendations,omitempty"`
}
