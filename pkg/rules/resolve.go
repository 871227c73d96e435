package rules

import "github.com/leapstack-labs/leapcheck/pkg/dataset"

// resolveFuzzyFloor is the minimum normalized similarity for a fuzzy
// header match during column resolution.
const resolveFuzzyFloor = 0.8

// resolveColumn finds a header index by exact match, then
// case-insensitive match, then fuzzy match. Returns -1 if none succeed.
func resolveColumn(headers []string, name string) int {
	for i, h := range headers {
		if h == name {
			return i
		}
	}

	normalized := dataset.Normalize(name)
	for i, h := range headers {
		if dataset.Normalize(h) == normalized {
			return i
		}
	}

	for i, h := range headers {
		if dataset.Similarity(dataset.Normalize(h), normalized) > resolveFuzzyFloor {
			return i
		}
	}
	return -1
}

// cellAt returns the cell at col, or "" when the row is ragged.
func cellAt(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return row[col]
}
