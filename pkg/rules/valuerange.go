package rules

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapcheck/pkg/core"
	"github.com/leapstack-labs/leapcheck/pkg/dataset"
	"github.com/leapstack-labs/leapcheck/pkg/index"
)

func init() {
	Register(ValueRange)
}

// ValueRange flags numeric values outside computed or configured bounds.
var ValueRange = Def{
	ID:          RuleValueRange,
	Severity:    core.SeverityWarning,
	Description: "Flags numeric values outside statistical or configured bounds.",
	Check:       checkValueRange,
}

// Caps and cutoffs for value range issues.
const (
	maxRangeRows    = 50
	maxSampleValues = 3
	// zScoreCritical escalates an issue to critical when any outlier
	// deviates more than this many true standard deviations.
	zScoreCritical = 3.0
	// densityWarning keeps an issue at warning when the outlier count
	// exceeds this share of the column's distinct values.
	densityWarning = 0.1
	// iqrScale converts a standard deviation into an approximate
	// quartile offset (Q1/Q3 = median -/+ 0.6745 sigma).
	iqrScale = 0.6745
)

func checkValueRange(rctx *Context) []core.Issue {
	primary := rctx.Data.Primary

	var issues []core.Issue
	for _, column := range rangeColumns(rctx, primary) {
		if column.index < 0 {
			issues = append(issues, core.Issue{
				Rule:     RuleValueRange,
				Severity: core.SeverityCritical,
				Message:  fmt.Sprintf("Column %q not found in %s", column.name, primary.Path),
				Location: core.Location{File: primary.Path, Column: column.name},
				Suggestion: fmt.Sprintf("Check the column name; available columns: %s",
					strings.Join(primary.Headers, ", ")),
			})
			continue
		}
		if issue := checkColumnRange(rctx, column); issue != nil {
			issues = append(issues, *issue)
		}
	}
	return issues
}

// rangeColumns selects the columns to scan: the explicit configured
// list, or every primary column whose computed data type is numeric.
func rangeColumns(rctx *Context, primary *dataset.FileContext) []checkedColumn {
	if len(rctx.Options.ColumnsToCheck) > 0 {
		columns := make([]checkedColumn, 0, len(rctx.Options.ColumnsToCheck))
		for _, name := range rctx.Options.ColumnsToCheck {
			columns = append(columns, checkedColumn{name: name, index: resolveColumn(primary.Headers, name)})
		}
		return columns
	}

	var columns []checkedColumn
	for i, header := range primary.Headers {
		stats, ok := rctx.Indexes.RangeStats[index.Key(primary.Path, header)]
		if ok && stats.DataType == dataset.DataTypeNumber {
			columns = append(columns, checkedColumn{name: header, index: i})
		}
	}
	return columns
}

// outlierBounds computes the [lower, upper] cutoff for a column under
// the configured method.
func outlierBounds(rctx *Context, column string, stats dataset.ColumnStats) (lower, upper float64) {
	k := rctx.Options.EffectiveOutlierThreshold()

	switch rctx.Options.OutlierMethod {
	case OutlierMethodFixed:
		if r, ok := rctx.Options.FixedRanges[column]; ok {
			lower, upper = math.Inf(-1), math.Inf(1)
			if r.Min != nil {
				lower = *r.Min
			}
			if r.Max != nil {
				upper = *r.Max
			}
			return lower, upper
		}
		return stats.Min, stats.Max
	case OutlierMethodZScore:
		return stats.Mean - k*stats.StdDev, stats.Mean + k*stats.StdDev
	default: // iqr
		q1 := stats.Median - iqrScale*stats.StdDev
		q3 := stats.Median + iqrScale*stats.StdDev
		iqr := q3 - q1
		return q1 - k*iqr, q3 + k*iqr
	}
}

// checkColumnRange scans one numeric column and emits an issue when any
// values fall outside the bounds.
func checkColumnRange(rctx *Context, column checkedColumn) *core.Issue {
	primary := rctx.Data.Primary
	stats, ok := rctx.Indexes.RangeStats[index.Key(primary.Path, column.name)]
	if !ok {
		stats = dataset.ColumnStatsFor(primary, column.index)
	}

	lower, upper := outlierBounds(rctx, column.name, stats)

	var outlierRows []int
	var below, above []float64
	maxZ := 0.0
	for i, row := range primary.Rows {
		raw := strings.TrimSpace(cellAt(row, column.index))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		if v >= lower && v <= upper {
			continue
		}

		outlierRows = append(outlierRows, i+1)
		if v < lower {
			below = append(below, v)
		} else {
			above = append(above, v)
		}
		// z-score against the true mean/stdDev, independent of the
		// bound method in use.
		if stats.StdDev > 0 {
			if z := math.Abs(v-stats.Mean) / stats.StdDev; z > maxZ {
				maxZ = z
			}
		}
	}

	if len(outlierRows) == 0 {
		return nil
	}

	severity := core.SeverityInfo
	switch {
	case maxZ > zScoreCritical:
		severity = core.SeverityCritical
	case stats.UniqueCount > 0 && float64(len(outlierRows))/float64(stats.UniqueCount) > densityWarning:
		severity = core.SeverityWarning
	}

	affected := outlierRows
	if len(affected) > maxRangeRows {
		affected = affected[:maxRangeRows]
	}

	return &core.Issue{
		Rule:         RuleValueRange,
		Severity:     severity,
		Message:      rangeMessage(column.name, below, above, lower, upper),
		Location:     core.Location{File: primary.Path, Column: column.name},
		Suggestion:   rangeSuggestion(below, above),
		AffectedRows: affected,
		Metadata: map[string]any{
			"method":        rctx.Options.OutlierMethod,
			"threshold":     rctx.Options.EffectiveOutlierThreshold(),
			"lower_bound":   lower,
			"upper_bound":   upper,
			"mean":          stats.Mean,
			"std_dev":       stats.StdDev,
			"median":        stats.Median,
			"outlier_count": len(outlierRows),
		},
	}
}

// rangeMessage differentiates below-minimum, above-maximum and
// both-sided findings.
func rangeMessage(column string, below, above []float64, lower, upper float64) string {
	bounds := fmt.Sprintf("[%s, %s]", formatBound(lower), formatBound(upper))
	switch {
	case len(below) > 0 && len(above) > 0:
		return fmt.Sprintf("Column %q has %d values below minimum and %d above maximum of expected range %s",
			column, len(below), len(above), bounds)
	case len(below) > 0:
		return fmt.Sprintf("Column %q has %d values below minimum of expected range %s",
			column, len(below), bounds)
	default:
		return fmt.Sprintf("Column %q has %d values above maximum of expected range %s",
			column, len(above), bounds)
	}
}

// rangeSuggestion samples up to three extreme values per side.
func rangeSuggestion(below, above []float64) string {
	var parts []string
	if len(below) > 0 {
		parts = append(parts, "low values: "+sampleValues(below))
	}
	if len(above) > 0 {
		parts = append(parts, "high values: "+sampleValues(above))
	}
	return "Review outliers (" + strings.Join(parts, "; ") + ") and correct or confirm them"
}

// sampleValues renders up to maxSampleValues numbers.
func sampleValues(values []float64) string {
	n := len(values)
	if n > maxSampleValues {
		n = maxSampleValues
	}
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = formatBound(values[i])
	}
	if len(values) > n {
		return strings.Join(parts, ", ") + ", ..."
	}
	return strings.Join(parts, ", ")
}

// formatBound renders a float compactly, handling infinities.
func formatBound(v float64) string {
	switch {
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsInf(v, 1):
		return "+inf"
	default:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
}
