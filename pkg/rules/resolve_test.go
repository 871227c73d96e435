package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveColumn(t *testing.T) {
	headers := []string{"order_id", "Customer Name", "amount"}

	tests := []struct {
		name   string
		column string
		want   int
	}{
		{name: "exact match", column: "order_id", want: 0},
		{name: "case-insensitive match", column: "AMOUNT", want: 2},
		{name: "trimmed match", column: " amount ", want: 2},
		{name: "fuzzy match", column: "amounts", want: 2},
		{name: "not found", column: "revenue", want: -1},
		{name: "exact beats fuzzy", column: "Customer Name", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveColumn(headers, tt.column))
		})
	}
}

func TestCellAt(t *testing.T) {
	row := []string{"a", "b"}
	assert.Equal(t, "a", cellAt(row, 0))
	assert.Equal(t, "", cellAt(row, 5))
}
