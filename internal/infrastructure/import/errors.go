package sheetimport

import (
	"errors"
	"fmt"
	"strings"
)

// Import error codes
const (
	// General import errors
	ErrCodeImportUnknown       = "ERR_IMPORT_UNKNOWN"
	ErrCodeImportEmptyFile     = "ERR_IMPORT_EMPTY_FILE"
	ErrCodeImportUnsupported   = "ERR_IMPORT_UNSUPPORTED_FORMAT"
	ErrCodeImportCorruptFile   = "ERR_IMPORT_CORRUPT_FILE"
	ErrCodeImportFileTooLarge  = "ERR_IMPORT_FILE_TOO_LARGE"
	ErrCodeImportInvalidEncode = "ERR_IMPORT_INVALID_ENCODING"

	// Sheet structure errors
	ErrCodeImportMissingHeader = "ERR_IMPORT_MISSING_HEADER"
	ErrCodeImportMalformedRow  = "ERR_IMPORT_MALFORMED_ROW"

	// Row-level issues, reported as warnings
	ErrCodeImportMissingColumn = "ERR_IMPORT_MISSING_COLUMN"
	ErrCodeImportInvalidDate   = "ERR_IMPORT_INVALID_DATE"
	ErrCodeImportInvalidAmount = "ERR_IMPORT_INVALID_AMOUNT"
	ErrCodeImportNoDataRows    = "ERR_IMPORT_NO_DATA_ROWS"
)

// Common import errors
var (
	// ErrEmptyFile is returned when the uploaded bytes are empty
	ErrEmptyFile = errors.New("import: file is empty")

	// ErrInvalidEncoding is returned when text content cannot be decoded by any candidate encoding
	ErrInvalidEncoding = errors.New("import: invalid file encoding")

	// ErrMissingHeader is returned when the sheet has no header row
	ErrMissingHeader = errors.New("import: sheet has no header row")

	// ErrUnsupportedFormat is returned for binary formats the reader does not handle (legacy .xls)
	ErrUnsupportedFormat = errors.New("import: unsupported spreadsheet format")

	// ErrCorruptWorkbook is returned when workbook bytes cannot be opened or read
	ErrCorruptWorkbook = errors.New("import: workbook is unreadable")

	// ErrFileTooLarge is returned when the file exceeds the configured maximum size
	ErrFileTooLarge = errors.New("import: file exceeds maximum allowed size")

	// ErrMalformedRow is returned when delimited text cannot be split into records
	ErrMalformedRow = errors.New("import: malformed row")
)

// Code returns the import error code for err
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyFile):
		return ErrCodeImportEmptyFile
	case errors.Is(err, ErrInvalidEncoding):
		return ErrCodeImportInvalidEncode
	case errors.Is(err, ErrMissingHeader):
		return ErrCodeImportMissingHeader
	case errors.Is(err, ErrUnsupportedFormat):
		return ErrCodeImportUnsupported
	case errors.Is(err, ErrCorruptWorkbook):
		return ErrCodeImportCorruptFile
	case errors.Is(err, ErrFileTooLarge):
		return ErrCodeImportFileTooLarge
	case errors.Is(err, ErrMalformedRow):
		return ErrCodeImportMalformedRow
	default:
		return ErrCodeImportUnknown
	}
}

// RowIssue is a recoverable defect found in a specific row or column
type RowIssue struct {
	Row     int    `json:"row,omitempty"`
	Column  string `json:"column,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// Error implements the error interface
func (e RowIssue) Error() string {
	switch {
	case e.Row > 0 && e.Column != "":
		return fmt.Sprintf("row %d, column '%s': %s", e.Row, e.Column, e.Message)
	case e.Row > 0:
		return fmt.Sprintf("row %d: %s", e.Row, e.Message)
	case e.Column != "":
		return fmt.Sprintf("column '%s': %s", e.Column, e.Message)
	default:
		return e.Message
	}
}

// IssueCollection gathers recoverable issues up to a maximum.
// Issues past the limit are counted but not kept.
type IssueCollection struct {
	issues     []RowIssue
	maxIssues  int
	totalCount int
}

// NewIssueCollection creates a new IssueCollection with a maximum issue limit
func NewIssueCollection(maxIssues int) *IssueCollection {
	if maxIssues <= 0 {
		maxIssues = 100 // Default limit
	}
	return &IssueCollection{
		issues:    make([]RowIssue, 0),
		maxIssues: maxIssues,
	}
}

// Add adds an issue to the collection
func (c *IssueCollection) Add(issue RowIssue) {
	c.totalCount++
	if len(c.issues) < c.maxIssues {
		c.issues = append(c.issues, issue)
	}
}

// AddSheetIssue adds an issue that concerns the sheet as a whole
func (c *IssueCollection) AddSheetIssue(code, message string) {
	c.Add(RowIssue{Code: code, Message: message})
}

// AddMissingColumn records a semantic field for which no header synonym was found
func (c *IssueCollection) AddMissingColumn(field string) {
	c.Add(RowIssue{
		Column:  field,
		Code:    ErrCodeImportMissingColumn,
		Message: "no matching column found, defaulted",
	})
}

// AddInvalidDate records a non-blank date cell that could not be parsed
func (c *IssueCollection) AddInvalidDate(row int, column, value string) {
	c.Add(RowIssue{
		Row:     row,
		Column:  column,
		Code:    ErrCodeImportInvalidDate,
		Message: fmt.Sprintf("unparsable date %q, left empty", value),
		Value:   value,
	})
}

// AddInvalidAmount records a non-blank amount cell that parsed to zero only because it was garbage
func (c *IssueCollection) AddInvalidAmount(row int, column, value string) {
	c.Add(RowIssue{
		Row:     row,
		Column:  column,
		Code:    ErrCodeImportInvalidAmount,
		Message: fmt.Sprintf("unparsable amount %q, treated as 0", value),
		Value:   value,
	})
}

// Count returns the number of collected issues (up to maxIssues)
func (c *IssueCollection) Count() int {
	return len(c.issues)
}

// TotalCount returns the total number of issues including those not collected
func (c *IssueCollection) TotalCount() int {
	return c.totalCount
}

// HasIssues returns true if there are any issues
func (c *IssueCollection) HasIssues() bool {
	return c.totalCount > 0
}

// IsTruncated returns true if some issues were not collected due to the limit
func (c *IssueCollection) IsTruncated() bool {
	return c.totalCount > c.maxIssues
}

// Summary returns the number of collected issues by code
func (c *IssueCollection) Summary() map[string]int {
	summary := make(map[string]int)
	for _, issue := range c.issues {
		summary[issue.Code]++
	}
	return summary
}

// Warnings renders the issues as human-readable warning strings.
// A trailing entry notes how many issues were dropped past the limit.
func (c *IssueCollection) Warnings() []string {
	out := make([]string, 0, len(c.issues)+1)
	for _, issue := range c.issues {
		out = append(out, issue.Error())
	}
	if c.IsTruncated() {
		out = append(out, fmt.Sprintf("%d more issue(s) not shown", c.totalCount-c.maxIssues))
	}
	return out
}

// String returns a string representation of all issues
func (c *IssueCollection) String() string {
	if !c.HasIssues() {
		return "no issues"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d issue(s) found", c.totalCount))
	if c.IsTruncated() {
		sb.WriteString(fmt.Sprintf(" (showing first %d)", c.maxIssues))
	}
	sb.WriteString(":\n")

	for _, issue := range c.issues {
		sb.WriteString(fmt.Sprintf("  - %s\n", issue.Error()))
	}

	return sb.String()
}
