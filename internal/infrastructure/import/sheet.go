// Package sheetimport reads marketplace export files into header-keyed rows.
//
// Two input shapes are supported: xlsx workbooks (first sheet, raw cell values) and delimited
// text. Text content is decoded with the first encoding that fits, trying UTF-8, then
// Windows-874, then a lenient TIS-620 reading through the Windows-874 table.
package sheetimport

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Format identifies the container format of an input file
type Format string

const (
	// FormatXLSX is an Office Open XML workbook
	FormatXLSX Format = "xlsx"
	// FormatDelimited is delimited text (comma, tab or semicolon separated)
	FormatDelimited Format = "delimited"
)

var (
	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte("\xD0\xCF\x11\xE0\xA1\xB1\x1A\xE1")
	utf8BOM  = []byte("\xEF\xBB\xBF")
)

// Sheet is the header row and the non-blank data rows of one spreadsheet
type Sheet struct {
	Name      string
	Format    Format
	Encoding  string
	Headers   []string
	Rows      []*Row
	headerMap map[string]int
}

// Row represents a parsed row with its data and 1-based source line number
type Row struct {
	LineNumber int
	Data       map[string]string
}

// Get returns the value for a column by header name
func (r *Row) Get(header string) string {
	return r.Data[header]
}

// GetOrDefault returns the value for a column, or default if not present
func (r *Row) GetOrDefault(header, defaultVal string) string {
	if val, ok := r.Data[header]; ok && val != "" {
		return val
	}
	return defaultVal
}

// HasHeader checks if a header exists
func (s *Sheet) HasHeader(name string) bool {
	_, ok := s.headerMap[name]
	return ok
}

// ValidateHeaders returns the required headers that are not present
func (s *Sheet) ValidateHeaders(required []string) []string {
	var missing []string
	for _, h := range required {
		if !s.HasHeader(h) {
			missing = append(missing, h)
		}
	}
	return missing
}

// readerOptions configures Read
type readerOptions struct {
	delimiter rune
	sheetName string
	maxSize   int64
}

// Option is a functional option for Read
type Option func(*readerOptions)

// WithDelimiter forces the field delimiter for delimited text instead of sniffing it
func WithDelimiter(d rune) Option {
	return func(o *readerOptions) {
		o.delimiter = d
	}
}

// WithSheetName reads the named worksheet instead of the first one
func WithSheetName(name string) Option {
	return func(o *readerOptions) {
		o.sheetName = name
	}
}

// WithMaxSize rejects inputs larger than n bytes (0 disables the check)
func WithMaxSize(n int64) Option {
	return func(o *readerOptions) {
		o.maxSize = n
	}
}

// Read detects the input format and returns its first sheet
func Read(data []byte, opts ...Option) (*Sheet, error) {
	o := &readerOptions{}
	for _, opt := range opts {
		opt(o)
	}

	if o.maxSize > 0 && int64(len(data)) > o.maxSize {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrFileTooLarge, len(data), o.maxSize)
	}
	if len(bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM))) == 0 {
		return nil, ErrEmptyFile
	}

	switch {
	case bytes.HasPrefix(data, zipMagic):
		return readWorkbook(data, o)
	case bytes.HasPrefix(data, oleMagic):
		return nil, fmt.Errorf("%w: legacy binary .xls, re-export as .xlsx or .csv", ErrUnsupportedFormat)
	default:
		return readDelimited(data, o)
	}
}

// buildSheet turns raw records into a Sheet. lineOf maps a record index to its source line.
func buildSheet(name string, format Format, records [][]string, lineOf func(int) int) (*Sheet, error) {
	headerIdx := -1
	for i, record := range records {
		if !isBlankRecord(record) {
			headerIdx = i
			break
		}
	}
	if headerIdx == -1 {
		return nil, ErrMissingHeader
	}

	sheet := &Sheet{
		Name:      name,
		Format:    format,
		headerMap: make(map[string]int),
	}

	seen := make(map[string]int)
	for i, h := range records[headerIdx] {
		header := trimSpaces(strings.TrimPrefix(h, "\ufeff"))
		if header == "" {
			header = fmt.Sprintf("column_%d", i+1)
		}
		if n := seen[header]; n > 0 {
			seen[header] = n + 1
			header = fmt.Sprintf("%s_%d", header, n+1)
		} else {
			seen[header] = 1
		}
		sheet.Headers = append(sheet.Headers, header)
		sheet.headerMap[header] = i
	}

	for i := headerIdx + 1; i < len(records); i++ {
		record := records[i]
		if isBlankRecord(record) {
			continue
		}
		row := &Row{
			LineNumber: lineOf(i),
			Data:       make(map[string]string, len(sheet.Headers)),
		}
		for col, header := range sheet.Headers {
			if col < len(record) {
				row.Data[header] = trimSpaces(record[col])
			} else {
				row.Data[header] = ""
			}
		}
		sheet.Rows = append(sheet.Rows, row)
	}

	return sheet, nil
}

func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if trimSpaces(cell) != "" {
			return false
		}
	}
	return true
}

// trimSpaces trims whitespace from a string
func trimSpaces(s string) string {
	start := 0
	end := len(s)

	for start < end {
		r, size := utf8.DecodeRuneInString(s[start:])
		if !isWhitespace(r) {
			break
		}
		start += size
	}

	for end > start {
		r, size := utf8.DecodeLastRuneInString(s[:end])
		if !isWhitespace(r) {
			break
		}
		end -= size
	}

	return s[start:end]
}

// isWhitespace checks if a rune is whitespace
func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f', '\u00a0', '\u200b', '\ufeff':
		return true
	}
	return false
}
