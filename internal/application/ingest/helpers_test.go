package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

// csvFile joins lines into CSV bytes
func csvFile(lines ...string) []byte {
	return []byte(strings.Join(lines, "\n") + "\n")
}

// windows874 encodes text the way Thai Excel saves "CSV (Comma delimited)"
func windows874(t *testing.T, text string) []byte {
	t.Helper()
	out, err := charmap.Windows874.NewEncoder().String(text)
	require.NoError(t, err)
	return []byte(out)
}

// workbook builds an xlsx file whose first sheet holds rows
func workbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}
