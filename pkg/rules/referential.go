package rules

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapcheck/pkg/core"
	"github.com/leapstack-labs/leapcheck/pkg/dataset"
	"github.com/leapstack-labs/leapcheck/pkg/index"
)

func init() {
	Register(ReferentialIntegrity)
}

// ReferentialIntegrity checks that key values in the primary file exist
// in the corresponding reference file columns.
var ReferentialIntegrity = Def{
	ID:          RuleReferentialIntegrity,
	Severity:    core.SeverityCritical,
	Description: "Checks that key values in the primary file exist in the referenced files.",
	Check:       checkReferentialIntegrity,
}

// Caps for referential integrity issue payloads.
const (
	maxMissingExamples = 5
	maxReferentialRows = 50
)

func checkReferentialIntegrity(rctx *Context) []core.Issue {
	relationships := activeRelationships(rctx)
	if len(relationships) == 0 {
		return nil
	}

	var issues []core.Issue
	primary := rctx.Data.Primary
	for _, rel := range relationships {
		col := resolveColumn(primary.Headers, rel.PrimaryColumn)
		if col < 0 {
			issues = append(issues, core.Issue{
				Rule:     RuleReferentialIntegrity,
				Severity: core.SeverityCritical,
				Message:  fmt.Sprintf("Column %q not found in %s", rel.PrimaryColumn, primary.Path),
				Location: core.Location{File: primary.Path, Column: rel.PrimaryColumn},
				Suggestion: fmt.Sprintf("Check the column name; available columns: %s",
					strings.Join(primary.Headers, ", ")),
			})
			continue
		}

		keys, ok := rctx.Indexes.KeyIndexes[index.Key(rel.ReferenceFile, rel.ReferenceColumn)]
		if !ok {
			issues = append(issues, core.Issue{
				Rule:     RuleReferentialIntegrity,
				Severity: core.SeverityCritical,
				Message: fmt.Sprintf("Reference column %q not found in %s",
					rel.ReferenceColumn, rel.ReferenceFile),
				Location:   core.Location{File: rel.ReferenceFile, Column: rel.ReferenceColumn},
				Suggestion: "Check that the reference file contains the expected column",
			})
			continue
		}

		if issue := checkRelationship(rctx, rel, col, keys); issue != nil {
			issues = append(issues, *issue)
		}
	}
	return issues
}

// activeRelationships returns the relationships to verify: manually
// configured ones when key columns are supplied, otherwise the
// auto-detected set if enabled.
func activeRelationships(rctx *Context) []dataset.Relationship {
	if len(rctx.Options.KeyColumns) > 0 {
		return manualRelationships(rctx.Data, rctx.Options.KeyColumns)
	}
	if rctx.Options.AutoDetect {
		return rctx.Data.Relationships
	}
	return nil
}

// manualRelationships builds relationships from caller-supplied key
// columns, matching reference headers by simple pattern rules: exact
// name, then the _id/id, _code/code and _name/name conventions.
func manualRelationships(dc *dataset.Context, keyColumns []string) []dataset.Relationship {
	var relationships []dataset.Relationship
	for _, keyColumn := range keyColumns {
		normalized := dataset.Normalize(keyColumn)
		for _, ref := range dc.References {
			refColumn, ok := matchReferenceHeader(normalized, ref.Headers)
			if !ok {
				continue
			}
			relationships = append(relationships, dataset.Relationship{
				PrimaryColumn:   keyColumn,
				ReferenceFile:   ref.Path,
				ReferenceColumn: refColumn,
				Confidence:      1.0,
				MatchType:       dataset.MatchManual,
			})
		}
	}
	return relationships
}

// matchReferenceHeader finds the first reference header the key column
// maps to under the pattern rules.
func matchReferenceHeader(keyColumn string, headers []string) (string, bool) {
	for _, h := range headers {
		if dataset.Normalize(h) == keyColumn {
			return h, true
		}
	}
	for _, suffix := range []string{"_id", "_code", "_name"} {
		if !strings.HasSuffix(keyColumn, suffix) {
			continue
		}
		bare := strings.TrimPrefix(suffix, "_")
		for _, h := range headers {
			if dataset.Normalize(h) == bare {
				return h, true
			}
		}
	}
	return "", false
}

// checkRelationship scans every primary row against the reference key
// set and emits one issue when any values are missing.
func checkRelationship(rctx *Context, rel dataset.Relationship, col int, keys map[string]struct{}) *core.Issue {
	var missingRows []int
	var missingValues []string
	seenValues := make(map[string]struct{})

	for i, row := range rctx.Data.Primary.Rows {
		raw := strings.TrimSpace(cellAt(row, col))
		if raw == "" {
			if rctx.Options.AllowEmpty {
				continue
			}
			missingRows = append(missingRows, i+1)
			continue
		}

		value := raw
		if !rctx.Options.CaseSensitive {
			value = strings.ToLower(value)
		}
		if _, ok := keys[value]; ok {
			continue
		}

		missingRows = append(missingRows, i+1)
		if _, ok := seenValues[value]; !ok {
			seenValues[value] = struct{}{}
			missingValues = append(missingValues, raw)
		}
	}

	if len(missingRows) == 0 {
		return nil
	}

	examples := missingValues
	if len(examples) > maxMissingExamples {
		examples = examples[:maxMissingExamples]
	}
	exampleText := strings.Join(examples, ", ")
	if extra := len(missingValues) - len(examples); extra > 0 {
		exampleText += fmt.Sprintf(" (and %d more)", extra)
	}

	message := fmt.Sprintf("%d rows in %q reference values missing from %s:%s (e.g. %s)",
		len(missingRows), rel.PrimaryColumn, rel.ReferenceFile, rel.ReferenceColumn, exampleText)

	affected := missingRows
	if len(affected) > maxReferentialRows {
		message += fmt.Sprintf("; showing first %d of %d affected rows", maxReferentialRows, len(missingRows))
		affected = affected[:maxReferentialRows]
	}

	return &core.Issue{
		Rule:     RuleReferentialIntegrity,
		Severity: core.SeverityCritical,
		Message:  message,
		Location: core.Location{File: rctx.Data.Primary.Path, Column: rel.PrimaryColumn},
		Suggestion: fmt.Sprintf("Add the missing values to %s:%s or correct the primary data",
			rel.ReferenceFile, rel.ReferenceColumn),
		AffectedRows: affected,
		Metadata: map[string]any{
			"reference_file":   rel.ReferenceFile,
			"reference_column": rel.ReferenceColumn,
			"match_type":       rel.MatchType,
			"confidence":       rel.Confidence,
			"missing_values":   examples,
			"missing_count":    len(missingRows),
		},
	}
}
