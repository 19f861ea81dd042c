package sheetimport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, v))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestReadDelimited(t *testing.T) {
	t.Run("Header and rows", func(t *testing.T) {
		sheet, err := Read([]byte("Order ID,Amount\n\n1001, 250.00 \n1002,75"))

		require.NoError(t, err)
		assert.Equal(t, FormatDelimited, sheet.Format)
		assert.Equal(t, EncodingUTF8, sheet.Encoding)
		assert.Equal(t, []string{"Order ID", "Amount"}, sheet.Headers)
		require.Len(t, sheet.Rows, 2)
		assert.Equal(t, "250.00", sheet.Rows[0].Get("Amount"))
		assert.Equal(t, 3, sheet.Rows[0].LineNumber)
		assert.Equal(t, 4, sheet.Rows[1].LineNumber)
	})

	t.Run("Blank and duplicate headers are named", func(t *testing.T) {
		sheet, err := Read([]byte("SKU,,SKU\na,b,c"))

		require.NoError(t, err)
		assert.Equal(t, []string{"SKU", "column_2", "SKU_2"}, sheet.Headers)
		assert.Equal(t, "c", sheet.Rows[0].Get("SKU_2"))
	})

	t.Run("Short rows are padded", func(t *testing.T) {
		sheet, err := Read([]byte("a\tb\tc\n1"))

		require.NoError(t, err)
		assert.Equal(t, "", sheet.Rows[0].Get("c"))
		assert.Equal(t, "x", sheet.Rows[0].GetOrDefault("c", "x"))
	})

	t.Run("Header only", func(t *testing.T) {
		sheet, err := Read([]byte("a,b,c\n"))

		require.NoError(t, err)
		assert.Empty(t, sheet.Rows)
		assert.Equal(t, []string{"d"}, sheet.ValidateHeaders([]string{"a", "d"}))
	})

	t.Run("Blank content", func(t *testing.T) {
		_, err := Read([]byte("\xEF\xBB\xBF \n\n"))

		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("Only separators", func(t *testing.T) {
		_, err := Read([]byte(",,,\n,,"))

		assert.ErrorIs(t, err, ErrMissingHeader)
	})

	t.Run("Size limit", func(t *testing.T) {
		_, err := Read([]byte("a,b\n1,2"), WithMaxSize(4))

		assert.ErrorIs(t, err, ErrFileTooLarge)
	})

	t.Run("Forced delimiter", func(t *testing.T) {
		sheet, err := Read([]byte("Name;Note\nA;x,y,z"), WithDelimiter(';'))

		require.NoError(t, err)
		assert.Equal(t, []string{"Name", "Note"}, sheet.Headers)
		assert.Equal(t, "x,y,z", sheet.Rows[0].Get("Note"))
	})
}

func TestReadWorkbook(t *testing.T) {
	t.Run("First sheet with raw values", func(t *testing.T) {
		data := buildWorkbook(t, [][]any{
			{"Order ID", "Order Date", "Amount"},
			{"A-1", 45306, 1200.5},
			{},
			{"A-2", 45351, -10},
		})

		sheet, err := Read(data)

		require.NoError(t, err)
		assert.Equal(t, FormatXLSX, sheet.Format)
		assert.Equal(t, "Sheet1", sheet.Name)
		assert.Equal(t, []string{"Order ID", "Order Date", "Amount"}, sheet.Headers)
		require.Len(t, sheet.Rows, 2)
		assert.Equal(t, "45306", sheet.Rows[0].Get("Order Date"))
		assert.Equal(t, "1200.5", sheet.Rows[0].Get("Amount"))
		assert.Equal(t, 2, sheet.Rows[0].LineNumber)
		assert.Equal(t, 4, sheet.Rows[1].LineNumber)
	})

	t.Run("Named sheet missing", func(t *testing.T) {
		data := buildWorkbook(t, [][]any{{"a"}, {"1"}})

		_, err := Read(data, WithSheetName("Orders"))

		assert.ErrorIs(t, err, ErrCorruptWorkbook)
	})

	t.Run("Truncated zip", func(t *testing.T) {
		_, err := Read([]byte("PK\x03\x04garbage"))

		assert.ErrorIs(t, err, ErrCorruptWorkbook)
	})

	t.Run("Legacy xls rejected", func(t *testing.T) {
		_, err := Read([]byte("\xD0\xCF\x11\xE0\xA1\xB1\x1A\xE1rest"))

		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})
}
