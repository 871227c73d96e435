package validate

import (
	"fmt"

	"github.com/leapstack-labs/leapcheck/pkg/core"
	"github.com/leapstack-labs/leapcheck/pkg/rules"
)

// recommendations derives actionable guidance from the summary and the
// merged issue list: one entry per salient condition, plus a closing
// re-run note whenever issues exist.
func recommendations(summary Summary, issues []core.Issue) []string {
	byRule := make(map[string]bool, len(issues))
	for _, issue := range issues {
		byRule[issue.Rule] = true
	}

	var recs []string
	if summary.Critical > 0 {
		recs = append(recs, fmt.Sprintf("Address the %d critical issue(s) before relying on this data", summary.Critical))
		if byRule[rules.RuleReferentialIntegrity] {
			recs = append(recs, "Ensure every key value in the primary file exists in its reference file")
		}
	}
	if summary.Warnings > 0 {
		recs = append(recs, fmt.Sprintf("Review the %d warning(s) and decide whether action is needed", summary.Warnings))
		if byRule[rules.RuleDataCompleteness] {
			recs = append(recs, "Fill in missing values in the incomplete columns")
		}
		if byRule[rules.RuleValueRange] {
			recs = append(recs, "Verify the flagged outlier values; correct data entry errors")
		}
	}
	if len(issues) == 0 {
		return []string{"All validation checks passed; no action needed"}
	}
	return append(recs, "Re-run validation after applying fixes to confirm the issues are resolved")
}
