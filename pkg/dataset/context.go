// Package dataset builds the validation context: loaded file grids,
// per-file metadata, detected cross-file column relationships, and
// per-column descriptive statistics.
package dataset

// MatchType describes how a cross-file column relationship was detected.
type MatchType string

// Match types for detected relationships.
const (
	MatchExact    MatchType = "exact"
	MatchFuzzy    MatchType = "fuzzy"
	MatchInferred MatchType = "inferred"
	MatchManual   MatchType = "manual"
)

// FileContext holds one loaded file and its derived metadata.
// Rows excludes the header row; RowCount == len(Rows).
type FileContext struct {
	Path        string
	Headers     []string
	Rows        [][]string
	RowCount    int
	ColumnCount int
}

// Relationship links a primary-file column to a reference-file column.
// Only relationships with Confidence > 0.7 are retained by detection.
type Relationship struct {
	PrimaryColumn   string    `json:"primary_column"`
	ReferenceFile   string    `json:"reference_file"`
	ReferenceColumn string    `json:"reference_column"`
	Confidence      float64   `json:"confidence"`
	MatchType       MatchType `json:"match_type"`
}

// Context is the per-call validation context: one primary file, zero or
// more reference files in request order, and the detected relationships.
// It is built fresh for every validation call and never mutated after
// construction.
type Context struct {
	Primary       *FileContext
	References    []*FileContext
	Relationships []Relationship

	byPath map[string]*FileContext
}

// Reference returns the reference FileContext for a path, or nil.
func (c *Context) Reference(path string) *FileContext {
	return c.byPath[path]
}

// File returns the FileContext for a path, checking the primary file
// first, then the references. Returns nil if the path is unknown.
func (c *Context) File(path string) *FileContext {
	if c.Primary != nil && c.Primary.Path == path {
		return c.Primary
	}
	return c.byPath[path]
}

// AllFiles returns the primary file followed by the references in
// request order.
func (c *Context) AllFiles() []*FileContext {
	files := make([]*FileContext, 0, len(c.References)+1)
	if c.Primary != nil {
		files = append(files, c.Primary)
	}
	return append(files, c.References...)
}

// newFileContext derives per-file metadata from a loaded grid.
func newFileContext(path string, grid *Grid) *FileContext {
	return &FileContext{
		Path:        path,
		Headers:     grid.Headers,
		Rows:        grid.Rows,
		RowCount:    len(grid.Rows),
		ColumnCount: len(grid.Headers),
	}
}
