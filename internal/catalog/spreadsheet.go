package catalog

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// workbookRows extracts the first sheet of an xlsx workbook as raw rows.
// Rows with no content are dropped; ragged trailing cells are preserved as
// returned by the reader and padded later during ingestion.
func workbookRows(r io.Reader) ([][]string, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	kept := rows[:0]
	for _, row := range rows {
		if rowHasContent(row) {
			kept = append(kept, row)
		}
	}
	return kept, nil
}

func rowHasContent(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return true
		}
	}
	return false
}
