package dataset

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

type xlsxReader struct{}

func (xlsxReader) CanRead(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".xlsx")
}

// Read loads one worksheet. If SheetName is empty, SheetIndex (1-based)
// selects the sheet, defaulting to the first one.
func (xlsxReader) Read(path string, opt LoadOptions) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheet, err := pickSheet(f.GetSheetList(), opt.SheetName, opt.SheetIndex)
	if err != nil {
		return nil, err
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	// Leading blank rows are common in hand-made workbooks.
	for len(rows) > 0 && blankRow(rows[0]) {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return nil, ErrEmpty
	}
	width := len(rows[0])
	records := make([][]string, 0, len(rows))
	for i, row := range rows {
		if i > 0 && blankRow(row) {
			continue
		}
		if len(row) > width {
			return nil, fmt.Errorf("read sheet %q row %d: %d cells, header has %d", sheet, i+1, len(row), width)
		}
		rec := make([]string, width)
		for j, v := range row {
			rec[j] = strings.TrimSpace(v)
		}
		records = append(records, rec)
	}
	return records, nil
}

func pickSheet(sheets []string, name string, index int) (string, error) {
	if len(sheets) == 0 {
		return "", ErrEmpty
	}
	if name != "" {
		for _, s := range sheets {
			if strings.EqualFold(s, name) {
				return s, nil
			}
		}
		return "", fmt.Errorf("sheet %q not found (available: %s)", name, strings.Join(sheets, ", "))
	}
	if index <= 0 {
		index = 1
	}
	if index > len(sheets) {
		return "", fmt.Errorf("sheet index %d out of range (workbook has %d)", index, len(sheets))
	}
	return sheets[index-1], nil
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
