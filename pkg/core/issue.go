package core

// =============================================================================
// Issue
// =============================================================================

// Location identifies where in a dataset an issue was found.
// Row is 1-based and excludes the header row; 0 means the issue applies
// to the whole file or column rather than a single row.
type Location struct {
	File   string `json:"file"`
	Row    int    `json:"row,omitempty"`
	Column string `json:"column,omitempty"`
}

// Issue represents a single validation finding.
type Issue struct {
	Rule         string         `json:"rule"`
	Severity     Severity       `json:"severity"`
	Message      string         `json:"message"`
	Location     Location       `json:"location"`
	Suggestion   string         `json:"suggestion,omitempty"`
	AffectedRows []int          `json:"affected_rows,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// RuleInfo provides metadata about a validation rule for documentation/tooling.
// This is a DTO (Data Transfer Object) - it carries data without behavior.
type RuleInfo struct {
	ID              string   `json:"id"`
	Description     string   `json:"description"`
	DefaultSeverity Severity `json:"default_severity"`
}
