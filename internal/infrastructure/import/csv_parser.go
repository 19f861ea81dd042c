package sheetimport

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Encoding names reported on Sheet.Encoding
const (
	EncodingUTF8       = "utf-8"
	EncodingWindows874 = "windows-874"
	EncodingTIS620     = "tis-620"
)

// candidate delimiters in tie-break order
var delimiters = []rune{',', '\t', ';'}

// CSVParser handles parsing of delimited text with encoding detection
type CSVParser struct {
	delimiter  rune
	lazyQuotes bool
	encoding   string
	reader     *csv.Reader
}

// ParserOption is a functional option for CSVParser configuration
type ParserOption func(*CSVParser)

// WithParserDelimiter sets the field delimiter instead of sniffing it from the header line
func WithParserDelimiter(d rune) ParserOption {
	return func(p *CSVParser) {
		p.delimiter = d
	}
}

// WithLazyQuotes enables lazy quote handling
func WithLazyQuotes(lazy bool) ParserOption {
	return func(p *CSVParser) {
		p.lazyQuotes = lazy
	}
}

// NewCSVParser decodes raw bytes and prepares a CSV reader over the text
func NewCSVParser(data []byte, opts ...ParserOption) (*CSVParser, error) {
	parser := &CSVParser{
		lazyQuotes: true,
	}
	for _, opt := range opts {
		opt(parser)
	}

	text, enc, err := DecodeText(data)
	if err != nil {
		return nil, err
	}
	parser.encoding = enc

	if parser.delimiter == 0 {
		parser.delimiter = SniffDelimiter(text)
	}

	parser.reader = csv.NewReader(bufio.NewReader(strings.NewReader(text)))
	parser.reader.Comma = parser.delimiter
	parser.reader.LazyQuotes = parser.lazyQuotes
	parser.reader.FieldsPerRecord = -1 // Allow variable number of fields

	return parser, nil
}

// Encoding returns the name of the encoding the content was decoded with
func (p *CSVParser) Encoding() string {
	return p.encoding
}

// Delimiter returns the field delimiter in use
func (p *CSVParser) Delimiter() rune {
	return p.delimiter
}

// ReadAll reads every record along with the 1-based source line it starts on
func (p *CSVParser) ReadAll() ([][]string, []int, error) {
	var (
		records [][]string
		lines   []int
	)
	for {
		record, err := p.reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: record %d: %v", ErrMalformedRow, len(records)+1, err)
		}
		line, _ := p.reader.FieldPos(0)
		records = append(records, record)
		lines = append(lines, line)
	}
	return records, lines, nil
}

// DecodeText converts raw bytes to UTF-8 text. UTF-8 (with or without BOM) is tried first,
// then Windows-874 which must decode every byte, then TIS-620 read through the same table
// with undecodable bytes dropped.
func DecodeText(data []byte) (string, string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(data) == 0 {
		return "", "", ErrEmptyFile
	}

	if utf8.Valid(data) {
		return string(data), EncodingUTF8, nil
	}

	decoded, err := charmap.Windows874.NewDecoder().Bytes(data)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	if !bytes.ContainsRune(decoded, utf8.RuneError) {
		return string(decoded), EncodingWindows874, nil
	}

	lenient := strings.ReplaceAll(string(decoded), string(utf8.RuneError), "")
	if strings.TrimSpace(lenient) == "" {
		return "", "", ErrInvalidEncoding
	}
	return lenient, EncodingTIS620, nil
}

// SniffDelimiter picks the delimiter that occurs most often on the first non-blank line.
// Occurrences inside double quotes are ignored. Comma wins ties and empty input.
func SniffDelimiter(text string) rune {
	var header string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			header = line
			break
		}
	}

	counts := make(map[rune]int, len(delimiters))
	inQuotes := false
	for _, r := range header {
		if r == '"' {
			inQuotes = !inQuotes
			continue
		}
		if !inQuotes {
			counts[r]++
		}
	}

	best := delimiters[0]
	for _, d := range delimiters[1:] {
		if counts[d] > counts[best] {
			best = d
		}
	}
	return best
}

func readDelimited(data []byte, o *readerOptions) (*Sheet, error) {
	var popts []ParserOption
	if o.delimiter != 0 {
		popts = append(popts, WithParserDelimiter(o.delimiter))
	}

	parser, err := NewCSVParser(data, popts...)
	if err != nil {
		return nil, err
	}

	records, lines, err := parser.ReadAll()
	if err != nil {
		return nil, err
	}

	sheet, err := buildSheet("", FormatDelimited, records, func(i int) int { return lines[i] })
	if err != nil {
		return nil, err
	}
	sheet.Encoding = parser.Encoding()
	return sheet, nil
}
