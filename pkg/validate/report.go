package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/leapcheck/pkg/core"
)

// maxReportRows caps the sample row numbers rendered per issue.
const maxReportRows = 10

// severityOrder is the fixed rendering order for grouped issues.
var severityOrder = []core.Severity{
	core.SeverityCritical,
	core.SeverityWarning,
	core.SeverityInfo,
}

// SummaryReport renders the status banner, file/row/time counts,
// per-severity issue counts, and a per-file breakdown.
func SummaryReport(result *Result) string {
	var sb strings.Builder
	sb.WriteString("=== Validation Summary ===\n")
	sb.WriteString("Status: " + statusBanner(result.Summary) + "\n\n")

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendRows([]table.Row{
		{"Files checked", result.Summary.TotalFiles},
		{"Rows checked", result.Summary.TotalRows},
		{"Elapsed", result.Summary.Elapsed.String()},
		{"Critical issues", result.Summary.Critical},
		{"Warnings", result.Summary.Warnings},
		{"Info", result.Summary.Info},
	})
	sb.WriteString(t.Render())
	sb.WriteString("\n")

	if len(result.Summary.FilesAffected) > 0 {
		counts := issueCountsByFile(result.Issues)
		ft := table.NewWriter()
		ft.SetStyle(table.StyleLight)
		ft.AppendHeader(table.Row{"File", "Issues"})
		for _, file := range result.Summary.FilesAffected {
			ft.AppendRow(table.Row{file, counts[file]})
		}
		sb.WriteString("\n")
		sb.WriteString(ft.Render())
		sb.WriteString("\n")
	}
	return sb.String()
}

// DetailedReport renders the summary followed by issues grouped by file
// and severity, and the numbered recommendations.
func DetailedReport(result *Result) string {
	var sb strings.Builder
	sb.WriteString(SummaryReport(result))

	if len(result.Issues) > 0 {
		sb.WriteString("\n=== Issues ===\n")
		for _, file := range filesInOrder(result.Issues) {
			sb.WriteString("\n" + file + "\n")
			for _, severity := range severityOrder {
				for _, issue := range result.Issues {
					if issue.Location.File == file && issue.Severity == severity {
						writeIssue(&sb, issue)
					}
				}
			}
		}
	}

	if len(result.Recommendations) > 0 {
		sb.WriteString("\n=== Recommendations ===\n")
		for i, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, rec))
		}
	}
	return sb.String()
}

// TopIssues returns the most severe issues: stable sort by severity
// rank descending, ties broken by affected-row count descending,
// truncated to limit.
func TopIssues(issues []core.Issue, limit int) []core.Issue {
	sorted := make([]core.Issue, len(issues))
	copy(sorted, issues)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := sorted[i].Severity.Rank(), sorted[j].Severity.Rank()
		if ri != rj {
			return ri > rj
		}
		return len(sorted[i].AffectedRows) > len(sorted[j].AffectedRows)
	})
	if limit >= 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// statusBanner maps the summary to the report status line.
func statusBanner(summary Summary) string {
	switch {
	case summary.Critical > 0:
		return "CRITICAL ISSUES FOUND"
	case summary.Warnings > 0:
		return "WARNINGS FOUND"
	default:
		return "PASSED"
	}
}

// issueCountsByFile tallies issues per file path.
func issueCountsByFile(issues []core.Issue) map[string]int {
	counts := make(map[string]int)
	for _, issue := range issues {
		if issue.Location.File != "" {
			counts[issue.Location.File]++
		}
	}
	return counts
}

// filesInOrder returns the distinct issue files in first-seen order.
func filesInOrder(issues []core.Issue) []string {
	var files []string
	seen := make(map[string]struct{})
	for _, issue := range issues {
		file := issue.Location.File
		if file == "" {
			file = "(no file)"
		}
		if _, ok := seen[file]; !ok {
			seen[file] = struct{}{}
			files = append(files, file)
		}
	}
	return files
}

// writeIssue renders one issue with its location, suggestion, sample
// rows, and selected metadata.
func writeIssue(sb *strings.Builder, issue core.Issue) {
	sb.WriteString(fmt.Sprintf("  [%s] %s %s\n", issue.Severity, issue.Rule, issue.Message))
	if issue.Location.Column != "" {
		sb.WriteString("    Column: " + issue.Location.Column + "\n")
	}
	if len(issue.AffectedRows) > 0 {
		sb.WriteString("    Rows: " + sampleRows(issue.AffectedRows) + "\n")
	}
	if issue.Suggestion != "" {
		sb.WriteString("    Suggestion: " + issue.Suggestion + "\n")
	}
	writeMetadata(sb, issue.Metadata)
}

// writeMetadata renders the metadata fields worth surfacing in text.
func writeMetadata(sb *strings.Builder, metadata map[string]any) {
	if metadata == nil {
		return
	}
	if values, ok := metadata["missing_values"].([]string); ok && len(values) > 0 {
		sb.WriteString("    Missing values: " + strings.Join(values, ", ") + "\n")
	}
	lower, hasLower := metadata["lower_bound"]
	upper, hasUpper := metadata["upper_bound"]
	if hasLower && hasUpper {
		sb.WriteString(fmt.Sprintf("    Expected range: [%v, %v]\n", lower, upper))
	}
}

// sampleRows renders up to maxReportRows row numbers with an overflow note.
func sampleRows(rows []int) string {
	n := len(rows)
	if n > maxReportRows {
		n = maxReportRows
	}
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = fmt.Sprintf("%d", rows[i])
	}
	out := strings.Join(parts, ", ")
	if len(rows) > n {
		out += fmt.Sprintf(" (and %d more)", len(rows)-n)
	}
	return out
}
