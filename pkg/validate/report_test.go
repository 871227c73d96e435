package validate

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapcheck/pkg/core"
)

func TestTopIssues_Ordering(t *testing.T) {
	issues := []core.Issue{
		{Rule: "a", Severity: core.SeverityInfo},
		{Rule: "b", Severity: core.SeverityCritical, AffectedRows: []int{1}},
		{Rule: "c", Severity: core.SeverityWarning, AffectedRows: []int{1, 2, 3}},
		{Rule: "d", Severity: core.SeverityCritical, AffectedRows: []int{1, 2}},
		{Rule: "e", Severity: core.SeverityWarning, AffectedRows: []int{1}},
	}

	top := TopIssues(issues, 3)
	require.Len(t, top, 3)
	assert.Equal(t, "d", top[0].Rule)
	assert.Equal(t, "b", top[1].Rule)
	assert.Equal(t, "c", top[2].Rule)

	// Input is never mutated.
	assert.Equal(t, "a", issues[0].Rule)
}

func TestTopIssues_StableWithinRank(t *testing.T) {
	issues := []core.Issue{
		{Rule: "first", Severity: core.SeverityWarning, AffectedRows: []int{1}},
		{Rule: "second", Severity: core.SeverityWarning, AffectedRows: []int{2}},
	}

	top := TopIssues(issues, -1)
	require.Len(t, top, 2)
	assert.Equal(t, "first", top[0].Rule)
	assert.Equal(t, "second", top[1].Rule)
}

func TestTopIssues_LimitLargerThanInput(t *testing.T) {
	issues := []core.Issue{{Rule: "only", Severity: core.SeverityInfo}}
	assert.Len(t, TopIssues(issues, 10), 1)
	assert.Empty(t, TopIssues(nil, 5))
}

func TestStatusBanner(t *testing.T) {
	assert.Equal(t, "CRITICAL ISSUES FOUND", statusBanner(Summary{Critical: 1, Warnings: 2}))
	assert.Equal(t, "WARNINGS FOUND", statusBanner(Summary{Warnings: 1}))
	assert.Equal(t, "PASSED", statusBanner(Summary{Info: 3}))
	assert.Equal(t, "PASSED", statusBanner(Summary{}))
}

func TestSummaryReport(t *testing.T) {
	result := &Result{
		Success: false,
		Summary: Summary{
			TotalFiles:    2,
			TotalRows:     13,
			Critical:      1,
			Elapsed:       12 * time.Millisecond,
			FilesAffected: []string{"orders.csv"},
		},
		Issues: []core.Issue{{
			Rule:     "referential_integrity",
			Severity: core.SeverityCritical,
			Location: core.Location{File: "orders.csv", Column: "branch_id"},
		}},
	}

	report := SummaryReport(result)
	assert.Contains(t, report, "=== Validation Summary ===")
	assert.Contains(t, report, "CRITICAL ISSUES FOUND")
	assert.Contains(t, report, "Files checked")
	assert.Contains(t, report, "orders.csv")
	assert.Contains(t, report, "12ms")
}

func TestDetailedReport(t *testing.T) {
	result := &Result{
		Summary: Summary{
			TotalFiles:    1,
			TotalRows:     10,
			Warnings:      1,
			FilesAffected: []string{"sales.csv"},
		},
		Issues: []core.Issue{{
			Rule:         "value_range",
			Severity:     core.SeverityWarning,
			Message:      `Column "amount" has 1 values above maximum of expected range [0, 100]`,
			Location:     core.Location{File: "sales.csv", Column: "amount"},
			Suggestion:   "Review outliers",
			AffectedRows: []int{4},
			Metadata: map[string]any{
				"lower_bound": 0.0,
				"upper_bound": 100.0,
			},
		}},
		Recommendations: []string{"Review the 1 warning(s) and decide whether action is needed"},
	}

	report := DetailedReport(result)
	assert.Contains(t, report, "=== Issues ===")
	assert.Contains(t, report, "sales.csv")
	assert.Contains(t, report, "[warning] value_range")
	assert.Contains(t, report, "Column: amount")
	assert.Contains(t, report, "Rows: 4")
	assert.Contains(t, report, "Suggestion: Review outliers")
	assert.Contains(t, report, "Expected range: [0, 100]")
	assert.Contains(t, report, "=== Recommendations ===")
	assert.Contains(t, report, "1. Review the 1 warning(s)")
}

func TestDetailedReport_GroupsBySeverity(t *testing.T) {
	result := &Result{
		Summary: Summary{Critical: 1, Warnings: 1, FilesAffected: []string{"a.csv"}},
		Issues: []core.Issue{
			{Rule: "data_completeness", Severity: core.SeverityWarning,
				Message: "warning first in input", Location: core.Location{File: "a.csv"}},
			{Rule: "referential_integrity", Severity: core.SeverityCritical,
				Message: "critical second in input", Location: core.Location{File: "a.csv"}},
		},
	}

	report := DetailedReport(result)
	criticalAt := strings.Index(report, "critical second in input")
	warningAt := strings.Index(report, "warning first in input")
	require.GreaterOrEqual(t, criticalAt, 0)
	require.GreaterOrEqual(t, warningAt, 0)
	assert.Less(t, criticalAt, warningAt)
}

func TestSampleRows(t *testing.T) {
	assert.Equal(t, "1, 2, 3", sampleRows([]int{1, 2, 3}))

	long := make([]int, 15)
	for i := range long {
		long[i] = i + 1
	}
	assert.Equal(t, "1, 2, 3, 4, 5, 6, 7, 8, 9, 10 (and 5 more)", sampleRows(long))
}

func TestWriteMetadata_MissingValues(t *testing.T) {
	result := &Result{
		Summary: Summary{Critical: 1, FilesAffected: []string{"orders.csv"}},
		Issues: []core.Issue{{
			Rule:     "referential_integrity",
			Severity: core.SeverityCritical,
			Message:  "missing references",
			Location: core.Location{File: "orders.csv", Column: "branch_id"},
			Metadata: map[string]any{"missing_values": []string{"b99", "b42"}},
		}},
	}

	report := DetailedReport(result)
	assert.Contains(t, report, "Missing values: b99, b42")
}
