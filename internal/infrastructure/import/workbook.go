package sheetimport

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// readWorkbook reads the first (or the configured) worksheet of an xlsx workbook.
// Cells are read raw so date cells arrive as serial numbers rather than display strings.
func readWorkbook(data []byte, o *readerOptions) (*Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptWorkbook, err)
	}
	defer func() {
		_ = f.Close()
	}()

	name := o.sheetName
	if name == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrMissingHeader
		}
		name = sheets[0]
	}

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %v", ErrCorruptWorkbook, name, err)
	}

	sheet, err := buildSheet(name, FormatXLSX, rows, func(i int) int { return i + 1 })
	if err != nil {
		return nil, err
	}
	sheet.Encoding = EncodingUTF8
	return sheet, nil
}
