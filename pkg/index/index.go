// Package index builds the read-only lookup structures consumed by
// validation rules: value-to-row maps, reference key sets, per-column
// statistics, and duplicate-row hashes.
package index

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapcheck/pkg/dataset"
)

// Set holds all indexes for one validation call. A Set is built fresh
// per call and must not be mutated after construction; rules share it
// concurrently.
type Set struct {
	// ColumnMaps maps "file:column" to normalized value -> ordered
	// 1-based row numbers. Empty cells are indexed under "".
	ColumnMaps map[string]map[string][]int

	// KeyIndexes maps "refFile:refColumn" to the set of normalized
	// non-empty values. Built for reference files only; this is the
	// O(1) membership surface for foreign-key checks.
	KeyIndexes map[string]map[string]struct{}

	// RangeStats maps "file:column" to descriptive column statistics.
	RangeStats map[string]dataset.ColumnStats

	// DuplicateHashes maps the primary file path to the set of row
	// hashes seen more than once.
	DuplicateHashes map[string]map[string]struct{}
}

// Key formats the index key for a file/column pair.
func Key(file, column string) string {
	return file + ":" + column
}

// Build constructs all indexes from a validation context. It is a pure
// function of the context: no hidden state, no mutation of its input.
func Build(dc *dataset.Context) *Set {
	set := &Set{
		ColumnMaps:      make(map[string]map[string][]int),
		KeyIndexes:      make(map[string]map[string]struct{}),
		RangeStats:      make(map[string]dataset.ColumnStats),
		DuplicateHashes: make(map[string]map[string]struct{}),
	}

	for _, fc := range dc.AllFiles() {
		indexColumns(set, fc)
	}
	for _, ref := range dc.References {
		indexKeys(set, ref)
	}
	if dc.Primary != nil {
		set.DuplicateHashes[dc.Primary.Path] = duplicateHashes(dc.Primary)
	}
	return set
}

// indexColumns fills ColumnMaps and RangeStats for every column of a file.
func indexColumns(set *Set, fc *dataset.FileContext) {
	for col, header := range fc.Headers {
		key := Key(fc.Path, header)

		valueMap := make(map[string][]int)
		for i, row := range fc.Rows {
			value := dataset.Normalize(cellAt(row, col))
			valueMap[value] = append(valueMap[value], i+1)
		}
		set.ColumnMaps[key] = valueMap
		set.RangeStats[key] = dataset.ColumnStatsFor(fc, col)
	}
}

// indexKeys fills KeyIndexes for every column of a reference file.
func indexKeys(set *Set, fc *dataset.FileContext) {
	for col, header := range fc.Headers {
		keys := make(map[string]struct{})
		for _, row := range fc.Rows {
			value := dataset.Normalize(cellAt(row, col))
			if value != "" {
				keys[value] = struct{}{}
			}
		}
		set.KeyIndexes[Key(fc.Path, header)] = keys
	}
}

// duplicateHashes returns the set of row hashes that occur more than
// once in the file. Not consumed by the shipped rules yet, but computed
// so downstream duplicate detection sees stable hashes.
func duplicateHashes(fc *dataset.FileContext) map[string]struct{} {
	seen := make(map[string]int, fc.RowCount)
	duplicates := make(map[string]struct{})
	for _, row := range fc.Rows {
		h := rowHash(row)
		seen[h]++
		if seen[h] > 1 {
			duplicates[h] = struct{}{}
		}
	}
	return duplicates
}

// rowHash hashes a row by joining its non-empty normalized cells with a
// separator and folding through a 32-bit multiply-add rolling hash with
// overflow wraparound, rendered as the base-36 absolute value.
func rowHash(row []string) string {
	var cells []string
	for _, cell := range row {
		if v := dataset.Normalize(cell); v != "" {
			cells = append(cells, v)
		}
	}
	joined := strings.Join(cells, "|")

	var h int32
	for _, b := range []byte(joined) {
		h = h*31 + int32(b)
	}
	abs := int64(h)
	if abs < 0 {
		abs = -abs
	}
	return strconv.FormatInt(abs, 36)
}

// cellAt returns the cell at col, or "" when the row is ragged.
func cellAt(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return row[col]
}
