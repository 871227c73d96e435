package loader

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/leapstack-labs/leapcheck/pkg/dataset"
)

// readExcel reads one sheet of an XLSX workbook. An empty sheet name
// selects the first sheet.
func (l *Loader) readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%s: %w", path, dataset.ErrEmptyFile)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q of %s: %w", sheet, path, err)
	}
	return rows, nil
}
