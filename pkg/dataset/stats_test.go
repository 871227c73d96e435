package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newStatsFC(t *testing.T, headers []string, rows [][]string) *FileContext {
	t.Helper()
	return &FileContext{
		Path:        "test.csv",
		Headers:     headers,
		Rows:        rows,
		RowCount:    len(rows),
		ColumnCount: len(headers),
	}
}

func TestColumnStatsFor_Numeric(t *testing.T) {
	fc := newStatsFC(t, []string{"amount"}, [][]string{
		{"10"}, {"20"}, {"30"}, {"40"}, {""},
	})

	stats := ColumnStatsFor(fc, 0)

	assert.Equal(t, DataTypeNumber, stats.DataType)
	assert.Equal(t, 10.0, stats.Min)
	assert.Equal(t, 40.0, stats.Max)
	assert.Equal(t, 25.0, stats.Mean)
	// Median is the value at floor(n/2) of the ascending sort: index 2.
	assert.Equal(t, 30.0, stats.Median)
	// Population stdDev of {10,20,30,40} is sqrt(125) ~ 11.18.
	assert.InDelta(t, 11.18, stats.StdDev, 0.001)
	assert.Equal(t, 1, stats.NullCount)
	assert.Equal(t, 4, stats.UniqueCount)
}

func TestColumnStatsFor_Text(t *testing.T) {
	fc := newStatsFC(t, []string{"name"}, [][]string{
		{"alice"}, {"bob"}, {"alice"}, {""},
	})

	stats := ColumnStatsFor(fc, 0)

	assert.Equal(t, DataTypeText, stats.DataType)
	assert.Equal(t, 1, stats.NullCount)
	assert.Equal(t, 2, stats.UniqueCount)
	assert.Zero(t, stats.Mean)
	assert.Zero(t, stats.StdDev)
}

func TestColumnStatsFor_Date(t *testing.T) {
	fc := newStatsFC(t, []string{"created"}, [][]string{
		{"2024-01-01"}, {"2024-02-15"}, {"2024/03/20"}, {"01/05/2024"}, {""},
	})

	stats := ColumnStatsFor(fc, 0)

	assert.Equal(t, DataTypeDate, stats.DataType)
	assert.Equal(t, 1, stats.NullCount)
	assert.Equal(t, 4, stats.UniqueCount)
}

func TestColumnStatsFor_MostlyNumeric(t *testing.T) {
	// 4 of 5 non-empty values parse as numbers: 80% is not strictly
	// greater than the threshold, so the column stays text.
	fc := newStatsFC(t, []string{"v"}, [][]string{
		{"1"}, {"2"}, {"3"}, {"4"}, {"x"},
	})
	assert.Equal(t, DataTypeText, ColumnStatsFor(fc, 0).DataType)

	// 5 of 6 is above 80%.
	fc = newStatsFC(t, []string{"v"}, [][]string{
		{"1"}, {"2"}, {"3"}, {"4"}, {"5"}, {"x"},
	})
	assert.Equal(t, DataTypeNumber, ColumnStatsFor(fc, 0).DataType)
}

func TestColumnStatsFor_NullAccounting(t *testing.T) {
	// NullCount plus values used for statistics plus non-numeric count
	// always equals the total row count.
	fc := newStatsFC(t, []string{"v"}, [][]string{
		{"1"}, {""}, {"2"}, {"  "}, {"3"}, {"oops"}, {"4"}, {"5"},
	})

	stats := ColumnStatsFor(fc, 0)

	assert.Equal(t, 2, stats.NullCount)
	assert.Equal(t, 6, stats.UniqueCount)
	assert.Equal(t, fc.RowCount, stats.NullCount+6)
}

func TestColumnStatsFor_EmptyColumn(t *testing.T) {
	fc := newStatsFC(t, []string{"v"}, [][]string{{""}, {""}})

	stats := ColumnStatsFor(fc, 0)

	assert.Equal(t, DataTypeText, stats.DataType)
	assert.Equal(t, 2, stats.NullCount)
	assert.Equal(t, 0, stats.UniqueCount)
}

func TestColumnStatsFor_OutOfRangeColumn(t *testing.T) {
	fc := newStatsFC(t, []string{"v"}, [][]string{{"1"}})

	assert.Equal(t, DataTypeText, ColumnStatsFor(fc, 5).DataType)
	assert.Equal(t, DataTypeText, ColumnStatsFor(fc, -1).DataType)
}

func TestColumnStatsFor_RoundsMeanAndStdDev(t *testing.T) {
	fc := newStatsFC(t, []string{"v"}, [][]string{
		{"1"}, {"2"}, {"2"},
	})

	stats := ColumnStatsFor(fc, 0)

	assert.Equal(t, 1.67, stats.Mean)
	assert.Equal(t, 0.47, stats.StdDev)
}
