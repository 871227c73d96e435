// Package rules defines the validation rule contract and the three
// built-in rules: referential integrity, data completeness, and value
// range. Rules are data-driven definitions registered in an id-keyed
// registry; each consumes a shared read-only (context, indexes) pair and
// returns issues.
package rules

import (
	"log/slog"

	"github.com/leapstack-labs/leapcheck/pkg/core"
	"github.com/leapstack-labs/leapcheck/pkg/dataset"
	"github.com/leapstack-labs/leapcheck/pkg/index"
)

// Rule IDs for the built-in rules.
const (
	RuleReferentialIntegrity = "referential_integrity"
	RuleDataCompleteness     = "data_completeness"
	RuleValueRange           = "value_range"
)

// DefaultRuleIDs lists the built-in rules in their canonical execution
// order. Issue merging follows this order when no explicit selection is
// given.
var DefaultRuleIDs = []string{
	RuleReferentialIntegrity,
	RuleDataCompleteness,
	RuleValueRange,
}

// Def is a data-driven rule definition. Rules are stateless: all context
// arrives via the Check function parameters, so the same Def can serve
// overlapping concurrent calls.
type Def struct {
	ID          string        // Unique identifier, e.g. "referential_integrity"
	Severity    core.Severity // Default severity before per-issue escalation
	Description string        // Human-readable description
	Check       CheckFunc     // The check function
}

// Info returns rule metadata for documentation/tooling.
func (d Def) Info() core.RuleInfo {
	return core.RuleInfo{
		ID:              d.ID,
		Description:     d.Description,
		DefaultSeverity: d.Severity,
	}
}

// CheckFunc analyzes the validation context and returns issues.
// Implementations never return errors: recoverable problems such as
// unresolvable columns become critical issues instead.
type CheckFunc func(rctx *Context) []core.Issue

// Context carries everything a rule may read during one validation call.
// Data and Indexes are shared across concurrently running rules and must
// be treated as immutable.
type Context struct {
	Data    *dataset.Context
	Indexes *index.Set
	Options Options
	Logger  *slog.Logger
}

// Range is a fixed per-column bound override. A nil side is unbounded.
type Range struct {
	Min *float64 `koanf:"min" json:"min,omitempty"`
	Max *float64 `koanf:"max" json:"max,omitempty"`
}

// Outlier bound methods for the value range rule.
const (
	OutlierMethodIQR    = "iqr"
	OutlierMethodZScore = "zscore"
	OutlierMethodFixed  = "fixed"
)

// Options is the immutable per-call rule configuration. It is assembled
// by the engine for each call; rules never mutate shared state.
type Options struct {
	// KeyColumns switches the referential integrity rule to manually
	// configured relationships built from these column names.
	KeyColumns []string

	// AutoDetect enables auto-detected relationships when no key
	// columns are configured.
	AutoDetect bool

	// CaseSensitive disables case folding for key membership checks.
	CaseSensitive bool

	// AllowEmpty skips empty primary values during key checks.
	AllowEmpty bool

	// RequiredColumns is the explicit completeness column list; when
	// empty, CheckAllColumns or the importance patterns decide.
	RequiredColumns []string
	CheckAllColumns bool

	// CompletenessThreshold is the minimum completeness percentage
	// before an issue is raised (default 95).
	CompletenessThreshold float64

	// ColumnsToCheck is the explicit value range column list; when
	// empty, all numeric primary columns are checked.
	ColumnsToCheck []string

	// OutlierMethod selects the bound computation: iqr (default),
	// zscore, or fixed.
	OutlierMethod string

	// OutlierThreshold is the k multiplier for iqr/zscore bounds;
	// 0 means the method default (1.5 for iqr, 2.5 for zscore).
	OutlierThreshold float64

	// FixedRanges holds per-column overrides for the fixed method.
	FixedRanges map[string]Range
}

// DefaultOptions returns the baseline per-call options.
func DefaultOptions() Options {
	return Options{
		AutoDetect:            true,
		AllowEmpty:            true,
		CompletenessThreshold: 95,
		OutlierMethod:         OutlierMethodIQR,
	}
}

// EffectiveOutlierThreshold resolves the k multiplier, falling back to
// the per-method default.
func (o Options) EffectiveOutlierThreshold() float64 {
	if o.OutlierThreshold > 0 {
		return o.OutlierThreshold
	}
	if o.OutlierMethod == OutlierMethodZScore {
		return 2.5
	}
	return 1.5
}
