package dataset

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DataType classifies the dominant value type of a column.
type DataType string

// Column data types.
const (
	DataTypeNumber DataType = "number"
	DataTypeText   DataType = "text"
	DataTypeDate   DataType = "date"
	// DataTypeMixed is reserved for columns with no dominant type.
	DataTypeMixed DataType = "mixed"
)

// typeThreshold is the share of non-empty values that must parse as a
// type for the column to be classified as that type.
const typeThreshold = 0.8

// dateLayouts are the layouts tried when classifying date columns.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"02-Jan-2006",
	time.RFC3339,
}

// ColumnStats holds descriptive statistics for a single column.
// Min/Max/Mean/Median/StdDev are populated for numeric columns only;
// Median is the value at position floor(n/2) of the ascending sort, an
// approximation that is not statistically exact for even n.
type ColumnStats struct {
	Min         float64  `json:"min"`
	Max         float64  `json:"max"`
	Mean        float64  `json:"mean"`
	Median      float64  `json:"median"`
	StdDev      float64  `json:"std_dev"`
	NullCount   int      `json:"null_count"`
	UniqueCount int      `json:"unique_count"`
	DataType    DataType `json:"data_type"`
}

// ColumnStatsFor computes descriptive statistics for one column of a
// file. Null/empty cells are ignored for classification and numeric
// statistics but counted in NullCount.
func ColumnStatsFor(fc *FileContext, col int) ColumnStats {
	stats := ColumnStats{DataType: DataTypeText}
	if col < 0 || col >= fc.ColumnCount {
		return stats
	}

	var numbers []float64
	dateCount := 0
	unique := make(map[string]struct{})

	for _, row := range fc.Rows {
		raw := cellAt(row, col)
		if strings.TrimSpace(raw) == "" {
			stats.NullCount++
			continue
		}
		unique[raw] = struct{}{}

		if v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			numbers = append(numbers, v)
		} else if isDate(raw) {
			dateCount++
		}
	}

	stats.UniqueCount = len(unique)
	nonEmpty := fc.RowCount - stats.NullCount
	if nonEmpty == 0 {
		return stats
	}

	switch {
	case float64(len(numbers))/float64(nonEmpty) > typeThreshold:
		stats.DataType = DataTypeNumber
		fillNumericStats(&stats, numbers)
	case float64(dateCount)/float64(nonEmpty) > typeThreshold:
		stats.DataType = DataTypeDate
	default:
		stats.DataType = DataTypeText
	}
	return stats
}

// fillNumericStats computes min/max/mean/median/population stdDev over
// the parsed numeric values. Mean and stdDev are rounded to 2 decimals.
func fillNumericStats(stats *ColumnStats, values []float64) {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	stats.Min = sorted[0]
	stats.Max = sorted[len(sorted)-1]
	stats.Median = sorted[len(sorted)/2]

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(len(sorted))

	var variance float64
	for _, v := range sorted {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(sorted))

	stats.Mean = round2(mean)
	stats.StdDev = round2(math.Sqrt(variance))
}

// cellAt returns the cell at col, or "" when the row is ragged.
func cellAt(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return row[col]
}

// isDate reports whether a value parses under any known date layout.
func isDate(s string) bool {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
