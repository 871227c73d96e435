package rules

import (
	"testing"

	"github.com/leapstack-labs/leapcheck/internal/testutil"
	"github.com/leapstack-labs/leapcheck/pkg/dataset"
	"github.com/leapstack-labs/leapcheck/pkg/index"
)

// newFC builds a FileContext for rule tests.
func newFC(path string, headers []string, rows [][]string) *dataset.FileContext {
	return &dataset.FileContext{
		Path:        path,
		Headers:     headers,
		Rows:        rows,
		RowCount:    len(rows),
		ColumnCount: len(headers),
	}
}

// newRuleContext assembles a rule context with freshly built indexes.
func newRuleContext(t *testing.T, dc *dataset.Context, opts Options) *Context {
	t.Helper()
	return &Context{
		Data:    dc,
		Indexes: index.Build(dc),
		Options: opts,
		Logger:  testutil.NewTestLogger(t),
	}
}
