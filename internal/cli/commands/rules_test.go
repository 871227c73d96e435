package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapcheck/internal/cli/config"
	"github.com/leapstack-labs/leapcheck/pkg/core"
)

func TestRulesCommand_Table(t *testing.T) {
	cmd := NewRulesCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetContext(WithConfig(context.Background(), &config.Config{Output: "table"}))

	require.NoError(t, cmd.RunE(cmd, nil))

	assert.Contains(t, out.String(), "referential_integrity")
	assert.Contains(t, out.String(), "data_completeness")
	assert.Contains(t, out.String(), "value_range")
}

func TestRulesCommand_JSON(t *testing.T) {
	cmd := NewRulesCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetContext(WithConfig(context.Background(), &config.Config{Output: "json"}))

	require.NoError(t, cmd.RunE(cmd, nil))

	var infos []core.RuleInfo
	require.NoError(t, json.Unmarshal(out.Bytes(), &infos))
	require.GreaterOrEqual(t, len(infos), 3)
	assert.Equal(t, "referential_integrity", infos[0].ID)
}
