package rules

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapcheck/pkg/core"
	"github.com/leapstack-labs/leapcheck/pkg/dataset"
)

func init() {
	Register(DataCompleteness)
}

// DataCompleteness checks that important columns are sufficiently
// populated.
var DataCompleteness = Def{
	ID:          RuleDataCompleteness,
	Severity:    core.SeverityWarning,
	Description: "Checks that important columns meet the configured completeness threshold.",
	Check:       checkDataCompleteness,
}

// Caps and cutoffs for completeness issues.
const (
	maxCompletenessRows  = 100
	criticalCompleteness = 50
	minorGapLimit        = 5
)

// importanceTokens are the exact header names considered important when
// no explicit column list is configured.
var importanceTokens = map[string]struct{}{
	"id": {}, "name": {}, "code": {}, "email": {}, "phone": {},
	"amount": {}, "price": {}, "revenue": {}, "total": {},
	"status": {}, "date": {},
}

// importanceSuffixes are the header suffixes considered important.
var importanceSuffixes = []string{"_id", "_name", "_code", "_date"}

// nullTokens are literal cell values treated as empty, in addition to
// blank/whitespace-only cells.
var nullTokens = map[string]struct{}{
	"NULL": {}, "null": {}, "N/A": {}, "n/a": {},
}

func checkDataCompleteness(rctx *Context) []core.Issue {
	primary := rctx.Data.Primary
	if primary.RowCount == 0 {
		return nil
	}

	var issues []core.Issue
	for _, column := range columnsUnderCheck(rctx, primary) {
		if column.index < 0 {
			issues = append(issues, core.Issue{
				Rule:     RuleDataCompleteness,
				Severity: core.SeverityCritical,
				Message:  fmt.Sprintf("Column %q not found in %s", column.name, primary.Path),
				Location: core.Location{File: primary.Path, Column: column.name},
				Suggestion: fmt.Sprintf("Check the column name; available columns: %s",
					strings.Join(primary.Headers, ", ")),
			})
			continue
		}
		issues = append(issues, checkColumnCompleteness(rctx, column)...)
	}
	return issues
}

// checkedColumn pairs a requested column name with its resolved index
// (-1 when unresolved).
type checkedColumn struct {
	name  string
	index int
}

// columnsUnderCheck selects the columns to verify: the explicit
// configured list, all headers when CheckAllColumns is set, or headers
// matching the importance patterns.
func columnsUnderCheck(rctx *Context, primary *dataset.FileContext) []checkedColumn {
	if len(rctx.Options.RequiredColumns) > 0 {
		columns := make([]checkedColumn, 0, len(rctx.Options.RequiredColumns))
		for _, name := range rctx.Options.RequiredColumns {
			columns = append(columns, checkedColumn{name: name, index: resolveColumn(primary.Headers, name)})
		}
		return columns
	}

	var columns []checkedColumn
	for i, header := range primary.Headers {
		if rctx.Options.CheckAllColumns || isImportantColumn(header) {
			columns = append(columns, checkedColumn{name: header, index: i})
		}
	}
	return columns
}

// isImportantColumn reports whether a header matches the curated
// importance patterns.
func isImportantColumn(header string) bool {
	normalized := dataset.Normalize(header)
	if _, ok := importanceTokens[normalized]; ok {
		return true
	}
	for _, suffix := range importanceSuffixes {
		if strings.HasSuffix(normalized, suffix) {
			return true
		}
	}
	return false
}

// isEmptyCell reports whether a cell counts as empty: blank,
// whitespace-only, or a literal null token.
func isEmptyCell(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return true
	}
	_, ok := nullTokens[trimmed]
	return ok
}

// checkColumnCompleteness evaluates one column. Below the threshold it
// emits a completeness issue, critical when under 50%. At or above the
// threshold with 1-5 empty cells it emits a separate minor issue
// enumerating exactly those rows; the two paths are deliberately
// distinct and must stay that way.
func checkColumnCompleteness(rctx *Context, column checkedColumn) []core.Issue {
	primary := rctx.Data.Primary

	var emptyRows []int
	for i, row := range primary.Rows {
		if isEmptyCell(cellAt(row, column.index)) {
			emptyRows = append(emptyRows, i+1)
		}
	}

	total := primary.RowCount
	nonEmpty := total - len(emptyRows)
	completeness := float64(nonEmpty) / float64(total) * 100
	threshold := rctx.Options.CompletenessThreshold

	if completeness < threshold {
		severity := core.SeverityWarning
		if completeness < criticalCompleteness {
			severity = core.SeverityCritical
		}

		affected := emptyRows
		if len(affected) > maxCompletenessRows {
			affected = affected[:maxCompletenessRows]
		}
		return []core.Issue{{
			Rule:     RuleDataCompleteness,
			Severity: severity,
			Message: fmt.Sprintf("Column %q is %.1f%% complete (%d of %d rows), below the %.0f%% threshold",
				column.name, completeness, nonEmpty, total, threshold),
			Location:     core.Location{File: primary.Path, Column: column.name},
			Suggestion:   fmt.Sprintf("Fill in the %d missing values in %q", len(emptyRows), column.name),
			AffectedRows: affected,
			Metadata: map[string]any{
				"completeness_pct": completeness,
				"empty_count":      len(emptyRows),
				"threshold":        threshold,
			},
		}}
	}

	if len(emptyRows) >= 1 && len(emptyRows) <= minorGapLimit {
		return []core.Issue{{
			Rule:     RuleDataCompleteness,
			Severity: core.SeverityInfo,
			Message: fmt.Sprintf("Column %q has %d empty cells (rows %s)",
				column.name, len(emptyRows), joinRows(emptyRows)),
			Location:     core.Location{File: primary.Path, Column: column.name},
			Suggestion:   fmt.Sprintf("Review the listed rows and fill in %q where applicable", column.name),
			AffectedRows: emptyRows,
			Metadata: map[string]any{
				"completeness_pct": completeness,
				"empty_count":      len(emptyRows),
			},
		}}
	}

	return nil
}

// joinRows renders row numbers as a comma-separated list.
func joinRows(rows []int) string {
	parts := make([]string, len(rows))
	for i, r := range rows {
		parts[i] = fmt.Sprintf("%d", r)
	}
	return strings.Join(parts, ", ")
}
