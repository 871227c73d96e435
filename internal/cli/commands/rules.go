package commands

import (
	"encoding/json"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapcheck/pkg/core"
	"github.com/leapstack-labs/leapcheck/pkg/rules"
)

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List available validation rules",
		Long:  `List all registered validation rules with their default severity and description.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			infos := make([]core.RuleInfo, 0, rules.Count())
			for _, def := range rules.All() {
				infos = append(infos, def.Info())
			}

			if GetConfig(cmd.Context()).Output == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(infos)
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"ID", "Severity", "Description"})
			for _, info := range infos {
				t.AppendRow(table.Row{info.ID, info.DefaultSeverity, info.Description})
			}
			t.Render()
			return nil
		},
	}
}
