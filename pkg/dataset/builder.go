package dataset

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Builder loads files through a Loader and assembles validation contexts.
type Builder struct {
	loader Loader
	logger *slog.Logger
}

// NewBuilder creates a context builder. A nil logger discards output.
func NewBuilder(loader Loader, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Builder{loader: loader, logger: logger}
}

// Build loads the primary file and each reference file, derives per-file
// metadata, and detects cross-file column relationships. Reference files
// are loaded concurrently but kept in request order. Any load failure
// aborts the whole build.
func (b *Builder) Build(ctx context.Context, primaryPath string, referencePaths []string, sheet string) (*Context, error) {
	b.logger.Debug("building validation context",
		"primary", primaryPath, "references", len(referencePaths))

	primaryGrid, err := b.loader.Load(ctx, primaryPath, sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to load primary file %s: %w", primaryPath, err)
	}

	references := make([]*FileContext, len(referencePaths))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range referencePaths {
		g.Go(func() error {
			grid, err := b.loader.Load(gctx, path, sheet)
			if err != nil {
				return fmt.Errorf("failed to load reference file %s: %w", path, err)
			}
			references[i] = newFileContext(path, grid)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dc := &Context{
		Primary:    newFileContext(primaryPath, primaryGrid),
		References: references,
		byPath:     make(map[string]*FileContext, len(references)),
	}
	for _, ref := range references {
		dc.byPath[ref.Path] = ref
	}

	dc.Relationships = b.detectRelationships(dc)

	b.logger.Debug("validation context built",
		"primary_rows", dc.Primary.RowCount,
		"relationships", len(dc.Relationships))
	return dc, nil
}

// detectRelationships scores every primary x reference header pair and
// keeps those above the confidence cutoff.
func (b *Builder) detectRelationships(dc *Context) []Relationship {
	var relationships []Relationship
	for _, primaryHeader := range dc.Primary.Headers {
		for _, ref := range dc.References {
			for _, refHeader := range ref.Headers {
				confidence := MatchConfidence(primaryHeader, refHeader)
				if confidence <= MinConfidence {
					continue
				}
				relationships = append(relationships, Relationship{
					PrimaryColumn:   primaryHeader,
					ReferenceFile:   ref.Path,
					ReferenceColumn: refHeader,
					Confidence:      confidence,
					MatchType:       matchTypeFor(confidence),
				})
				b.logger.Debug("detected relationship",
					"primary_column", primaryHeader,
					"reference_file", ref.Path,
					"reference_column", refHeader,
					"confidence", confidence)
			}
		}
	}
	return relationships
}
