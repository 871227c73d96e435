package validate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leapcheck/pkg/core"
	"github.com/leapstack-labs/leapcheck/pkg/dataset"
	"github.com/leapstack-labs/leapcheck/pkg/index"
	"github.com/leapstack-labs/leapcheck/pkg/rules"
)

// Engine runs the validation pipeline.
type Engine struct {
	loader      dataset.Loader
	logger      *slog.Logger
	ruleIDs     []string
	defaults    rules.Options
	summaryOnly bool
}

// Config holds engine configuration.
type Config struct {
	// Loader reads tabular files; required.
	Loader dataset.Loader
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
	// Rules is the engine-level rule selection; empty means all
	// registered rules in canonical order.
	Rules []string
	// RuleDefaults seeds the per-call rule options; nil means
	// rules.DefaultOptions().
	RuleDefaults *rules.Options
	// SummaryOnly renders the summary report instead of the detailed one.
	SummaryOnly bool
}

// New creates a validation engine.
func New(cfg Config) (*Engine, error) {
	if cfg.Loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	defaults := rules.DefaultOptions()
	if cfg.RuleDefaults != nil {
		defaults = *cfg.RuleDefaults
	}
	return &Engine{
		loader:      cfg.Loader,
		logger:      logger,
		ruleIDs:     cfg.Rules,
		defaults:    defaults,
		summaryOnly: cfg.SummaryOnly,
	}, nil
}

// ValidateDataConsistency cross-validates the primary file against the
// reference files and returns a severity-ranked issue report. The call
// never returns an error: context-construction failures and unexpected
// internal errors are folded into a single synthetic critical issue with
// Success set to false.
func (e *Engine) ValidateDataConsistency(ctx context.Context, primaryPath string, referencePaths []string, opts Options) *Result {
	start := time.Now()
	e.logger.Debug("starting validation",
		"primary", primaryPath, "references", len(referencePaths))

	result, err := e.run(ctx, primaryPath, referencePaths, opts, start)
	if err != nil {
		e.logger.Error("validation failed", "error", err)
		return failureResult(err, time.Since(start))
	}

	e.logger.Debug("validation finished",
		"success", result.Success,
		"issues", len(result.Issues),
		"elapsed", result.Summary.Elapsed)
	return result
}

// run executes the pipeline; any panic is converted into an error so
// the caller can produce the synthetic failure result.
func (e *Engine) run(ctx context.Context, primaryPath string, referencePaths []string, opts Options, start time.Time) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal validation error: %v", r)
		}
	}()

	builder := dataset.NewBuilder(e.loader, e.logger)
	dc, err := builder.Build(ctx, primaryPath, referencePaths, opts.Sheet)
	if err != nil {
		return nil, err
	}

	indexes := index.Build(dc)
	selected := e.selectRules(opts)
	rctx := &rules.Context{
		Data:    dc,
		Indexes: indexes,
		Options: e.callOptions(opts),
		Logger:  e.logger,
	}

	issues, err := runRules(selected, rctx)
	if err != nil {
		return nil, err
	}

	summary := buildSummary(dc, issues, time.Since(start))
	result = &Result{
		Success:         summary.Critical == 0,
		Summary:         summary,
		Issues:          issues,
		Recommendations: recommendations(summary, issues),
	}
	if e.summaryOnly {
		result.Report = SummaryReport(result)
	} else {
		result.Report = DetailedReport(result)
	}
	return result, nil
}

// selectRules resolves the rules to run: explicit per-call list, then
// the engine-level list, then all registered rules. Unknown ids are
// skipped with a warning.
func (e *Engine) selectRules(opts Options) []rules.Def {
	ids := opts.ValidationRules
	if len(ids) == 0 {
		ids = e.ruleIDs
	}
	if len(ids) == 0 {
		return rules.All()
	}

	selected := make([]rules.Def, 0, len(ids))
	for _, id := range ids {
		def, ok := rules.Get(id)
		if !ok {
			e.logger.Warn("unknown validation rule", "rule", id)
			continue
		}
		selected = append(selected, def)
	}
	return selected
}

// callOptions assembles the immutable per-call rule options from the
// engine defaults and the caller's overrides. Supplying key columns
// forces manual relationships and disables auto-detection for the call.
func (e *Engine) callOptions(opts Options) rules.Options {
	ro := e.defaults
	if len(opts.KeyColumns) > 0 {
		ro.KeyColumns = opts.KeyColumns
		ro.AutoDetect = false
	}
	if opts.AutoDetectRelationships != nil {
		ro.AutoDetect = *opts.AutoDetectRelationships
	}
	if opts.Tolerance > 0 {
		ro.OutlierThreshold = opts.Tolerance
	}
	return ro
}

// runRules executes the selected rules concurrently and merges their
// issues in selection order, so output is reproducible regardless of
// scheduling. A panicking rule fails the whole call.
func runRules(selected []rules.Def, rctx *rules.Context) ([]core.Issue, error) {
	perRule := make([][]core.Issue, len(selected))
	g := new(errgroup.Group)
	for i, def := range selected {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("rule %s: %v", def.ID, r)
				}
			}()
			perRule[i] = def.Check(rctx)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var issues []core.Issue
	for _, ri := range perRule {
		issues = append(issues, ri...)
	}
	return issues, nil
}

// buildSummary computes per-call totals and severity counts.
func buildSummary(dc *dataset.Context, issues []core.Issue, elapsed time.Duration) Summary {
	summary := Summary{
		TotalFiles: 1 + len(dc.References),
		TotalRows:  dc.Primary.RowCount,
		Elapsed:    elapsed,
	}
	for _, ref := range dc.References {
		summary.TotalRows += ref.RowCount
	}

	seen := make(map[string]struct{})
	for _, issue := range issues {
		switch issue.Severity {
		case core.SeverityCritical:
			summary.Critical++
		case core.SeverityWarning:
			summary.Warnings++
		case core.SeverityInfo:
			summary.Info++
		}
		if file := issue.Location.File; file != "" {
			if _, ok := seen[file]; !ok {
				seen[file] = struct{}{}
				summary.FilesAffected = append(summary.FilesAffected, file)
			}
		}
	}
	return summary
}

// failureResult is the single synthetic-error result: one critical
// issue carrying the underlying cause, plus fixed recovery guidance.
// No partial issue list is surfaced on this path.
func failureResult(err error, elapsed time.Duration) *Result {
	issue := core.Issue{
		Rule:       "validation_engine",
		Severity:   core.SeverityCritical,
		Message:    fmt.Sprintf("Validation could not be completed: %v", err),
		Suggestion: "Resolve the underlying problem and re-run validation",
	}
	result := &Result{
		Success: false,
		Summary: Summary{Critical: 1, Elapsed: elapsed},
		Issues:  []core.Issue{issue},
		Recommendations: []string{
			"Verify that all file paths are correct and accessible",
			"Check that the files are in a supported format (CSV, TSV, XLSX)",
			"Ensure the files are not corrupted or locked by another process",
		},
	}
	result.Report = SummaryReport(result)
	return result
}
