// Package loader reads tabular files (CSV, TSV, XLSX) into grids for
// the validation core. It implements the dataset.Loader contract.
package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/leapcheck/pkg/dataset"
)

// Loader reads files from the local filesystem.
type Loader struct {
	logger *slog.Logger
}

// New creates a file loader. A nil logger discards output.
func New(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{logger: logger}
}

// Load reads the file at path into a grid. The first row becomes the
// header row; remaining rows are padded or trimmed to the header width.
func (l *Loader) Load(ctx context.Context, path, sheet string) (*dataset.Grid, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%s: %w", path, dataset.ErrFileNotFound)
	}

	var records [][]string
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		records, err = l.readDelimited(ctx, path, ',')
	case ".tsv":
		records, err = l.readDelimited(ctx, path, '\t')
	case ".xlsx":
		records, err = l.readExcel(path, sheet)
	default:
		return nil, fmt.Errorf("%s: %w: %s", path, dataset.ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", path, dataset.ErrEmptyFile)
	}

	headers := records[0]
	rows := make([][]string, len(records)-1)
	for i, record := range records[1:] {
		rows[i] = fitRow(record, len(headers))
	}

	l.logger.Debug("loaded file", "path", path, "rows", len(rows), "columns", len(headers))
	return &dataset.Grid{Headers: headers, Rows: rows}, nil
}

// readDelimited parses a CSV or TSV file. Ragged records are accepted
// and padded later.
func (l *Loader) readDelimited(ctx context.Context, path string, delimiter rune) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, dataset.ErrFileNotFound)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return records, nil
}

// fitRow pads a short record with empty cells and trims cells beyond
// the header width, so every row has exactly width cells.
func fitRow(record []string, width int) []string {
	if len(record) == width {
		return record
	}
	if len(record) > width {
		return record[:width]
	}
	padded := make([]string, width)
	copy(padded, record)
	return padded
}
