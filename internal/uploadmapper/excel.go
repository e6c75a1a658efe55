package uploadmapper

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadSheet reads the first sheet of an xlsx stream into header-keyed rows.
// The first row is the header; short rows are padded with empty cells.
func ReadSheet(r io.Reader) (cols []string, rows []Row, err error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}

	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("could not read sheet %q: %w", sheets[0], err)
	}
	if len(raw) == 0 {
		return nil, nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	for _, h := range raw[0] {
		cols = append(cols, strings.TrimSpace(h))
	}

	rows = make([]Row, 0, len(raw)-1)
	for _, rawRow := range raw[1:] {
		row := make(Row, len(cols))
		empty := true
		for i, col := range cols {
			v := ""
			if i < len(rawRow) {
				v = rawRow[i]
			}
			if strings.TrimSpace(v) != "" {
				empty = false
			}
			row[col] = v
		}
		if !empty {
			rows = append(rows, row)
		}
	}

	return cols, rows, nil
}

// WriteSheet writes rows under the given header into a new workbook at path.
func WriteSheet(path string, cols []string, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	for i, col := range cols {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("bad header coordinate: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return fmt.Errorf("could not write header: %w", err)
		}
	}

	for r, row := range rows {
		for i, col := range cols {
			v := row[col]
			if v == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			if err != nil {
				return fmt.Errorf("bad cell coordinate: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("could not write cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("could not save workbook: %w", err)
	}
	return nil
}
