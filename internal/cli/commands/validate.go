package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapcheck/internal/loader"
	"github.com/leapstack-labs/leapcheck/pkg/validate"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	Rules      []string
	KeyColumns []string
	Sheet      string
	Tolerance  float64
	NoAuto     bool
	Summary    bool
}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	opts := &ValidateOptions{}
	cmd := &cobra.Command{
		Use:   "validate <primary-file> [reference-files...]",
		Short: "Cross-validate a primary file against reference files",
		Long: `Validate a primary tabular file against zero or more reference files.

Checks referential integrity between detected or configured key columns,
completeness of important columns, and statistical value ranges. Exits
non-zero when critical issues are found.`,
		Example: `  # Validate with auto-detected relationships
  leapcheck validate orders.csv customers.csv branches.csv

  # Validate specific key columns
  leapcheck validate orders.csv customers.csv --key-columns customer_id

  # Machine-readable output
  leapcheck validate orders.csv -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0], args[1:], opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Rules, "rules", nil, "Rule ids to run (default: all)")
	cmd.Flags().StringSliceVar(&opts.KeyColumns, "key-columns", nil, "Key columns for manual referential checks")
	cmd.Flags().StringVar(&opts.Sheet, "sheet", "", "Sheet name for XLSX files")
	cmd.Flags().Float64Var(&opts.Tolerance, "tolerance", 0, "Outlier threshold multiplier override")
	cmd.Flags().BoolVar(&opts.NoAuto, "no-auto-detect", false, "Disable automatic relationship detection")
	cmd.Flags().BoolVar(&opts.Summary, "summary", false, "Render the summary report only")

	return cmd
}

func runValidate(cmd *cobra.Command, primary string, references []string, opts *ValidateOptions) error {
	ctx := cmd.Context()
	cfg := GetConfig(ctx)
	logger := GetLogger(ctx)

	ruleDefaults := cfg.RuleOptions()
	engine, err := validate.New(validate.Config{
		Loader:       loader.New(logger),
		Logger:       logger,
		Rules:        cfg.Rules,
		RuleDefaults: &ruleDefaults,
		SummaryOnly:  cfg.SummaryOnly || opts.Summary,
	})
	if err != nil {
		return err
	}

	callOpts := validate.Options{
		ValidationRules: opts.Rules,
		KeyColumns:      opts.KeyColumns,
		Sheet:           opts.Sheet,
		Tolerance:       opts.Tolerance,
	}
	if opts.NoAuto {
		autoDetect := false
		callOpts.AutoDetectRelationships = &autoDetect
	}

	result := engine.ValidateDataConsistency(ctx, primary, references, callOpts)

	if cfg.Output == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), result.Report)
	}

	if !result.Success {
		return fmt.Errorf("validation found %d critical issue(s)", result.Summary.Critical)
	}
	return nil
}
