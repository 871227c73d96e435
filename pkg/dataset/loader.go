package dataset

import (
	"context"
	"errors"
)

// Loader errors. Loader implementations wrap these sentinels so callers
// can classify failures with errors.Is.
var (
	// ErrFileNotFound indicates the path does not exist or is not readable.
	ErrFileNotFound = errors.New("file not found")
	// ErrUnsupportedFormat indicates the file extension is not supported.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrEmptyFile indicates the file parsed to zero rows.
	ErrEmptyFile = errors.New("file is empty")
)

// Grid is a raw 2-D view of a tabular file: a header row plus data rows.
// Rows are padded or trimmed to the header width, so every row has
// exactly len(Headers) cells.
type Grid struct {
	Headers []string
	Rows    [][]string
}

// Loader reads a tabular file into a Grid.
// Implemented by internal/loader; defined here so the validation core
// depends only on the contract.
type Loader interface {
	// Load reads the file at path. For multi-sheet formats, sheet selects
	// the sheet by name; empty means the first sheet.
	Load(ctx context.Context, path, sheet string) (*Grid, error)
}
