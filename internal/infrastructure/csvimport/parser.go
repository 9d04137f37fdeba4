// Package csvimport reads admin CSV uploads into header-keyed rows and
// validates them column by column before anything touches the database.
package csvimport

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// encodingSniffSize is how much of the file is checked for valid UTF-8
const encodingSniffSize = 4096

// Parser reads a CSV upload whose first record is the header
type Parser struct {
	reader    *csv.Reader
	headers   []string
	headerIdx map[string]int
	line      int
	dataRows  int
	maxRows   int
}

// ParserOption configures a Parser
type ParserOption func(*Parser, *csv.Reader)

// WithDelimiter sets the field delimiter (default is comma)
func WithDelimiter(d rune) ParserOption {
	return func(_ *Parser, r *csv.Reader) {
		r.Comma = d
	}
}

// WithMaxRows caps the number of data rows; zero means unlimited
func WithMaxRows(n int) ParserOption {
	return func(p *Parser, _ *csv.Reader) {
		p.maxRows = n
	}
}

// NewParser strips a UTF-8 BOM, rejects non UTF-8 input and reads the header.
// Header names are trimmed and lower-cased.
func NewParser(r io.Reader, opts ...ParserOption) (*Parser, error) {
	buf := bufio.NewReader(r)

	// UTF-8 BOM: 0xEF, 0xBB, 0xBF
	if bom, err := buf.Peek(3); err == nil && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		_, _ = buf.Discard(3)
	}

	head, err := buf.Peek(encodingSniffSize)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(head) == 0 {
		return nil, ErrEmptyFile
	}
	if !validUTF8Prefix(head) {
		return nil, ErrInvalidEncoding
	}

	reader := csv.NewReader(buf)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	p := &Parser{reader: reader, headerIdx: make(map[string]int)}
	for _, opt := range opts {
		opt(p, reader)
	}
	if err := p.readHeader(); err != nil {
		return nil, err
	}
	return p, nil
}

// validUTF8Prefix accepts a buffer that may end mid-rune
func validUTF8Prefix(b []byte) bool {
	if utf8.Valid(b) {
		return true
	}
	// A multi-byte rune cut off by the sniff window is fine
	for i := 1; i < utf8.UTFMax && i < len(b); i++ {
		if utf8.Valid(b[:len(b)-i]) {
			return !utf8.FullRune(b[len(b)-i:])
		}
	}
	return false
}

func (p *Parser) readHeader() error {
	record, err := p.reader.Read()
	if errors.Is(err, io.EOF) {
		return ErrMissingHeader
	}
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}
	p.line = 1

	p.headers = make([]string, len(record))
	for i, h := range record {
		name := strings.ToLower(strings.TrimSpace(h))
		p.headers[i] = name
		if name != "" {
			p.headerIdx[name] = i
		}
	}
	if len(p.headerIdx) == 0 {
		return ErrMissingHeader
	}
	return nil
}

// Headers returns the normalized header names in file order
func (p *Parser) Headers() []string {
	return p.headers
}

// RequireColumns fails with a MissingColumnsError naming every absent column
func (p *Parser) RequireColumns(columns ...string) error {
	var missing []string
	for _, c := range columns {
		if _, ok := p.headerIdx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Columns: missing}
	}
	return nil
}

// Row is one data record keyed by header name
type Row struct {
	Line int
	Data map[string]string
}

// Get returns the trimmed value of column, or "" when absent
func (r *Row) Get(column string) string {
	return r.Data[column]
}

// IsEmpty reports whether every cell is blank
func (r *Row) IsEmpty() bool {
	for _, v := range r.Data {
		if v != "" {
			return false
		}
	}
	return true
}

// Next returns the next record, io.EOF at the end, or a RowError for a
// record the CSV reader cannot split
func (p *Parser) Next() (*Row, error) {
	record, err := p.reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	}
	p.line++
	if err != nil {
		return nil, RowError{Row: p.line, Code: ErrCodeMalformed, Message: err.Error()}
	}

	row := &Row{Line: p.line, Data: make(map[string]string, len(p.headerIdx))}
	for name, i := range p.headerIdx {
		if i < len(record) {
			row.Data[name] = strings.TrimSpace(record[i])
		} else {
			row.Data[name] = ""
		}
	}
	if !row.IsEmpty() {
		p.dataRows++
		if p.maxRows > 0 && p.dataRows > p.maxRows {
			return nil, fmt.Errorf("%w: limit is %d", ErrTooManyRows, p.maxRows)
		}
	}
	return row, nil
}

// ReadAll returns every non-blank row. Malformed records are added to errs
// and skipped; ErrNoDataRows is returned when nothing usable remains.
func (p *Parser) ReadAll(errs *ErrorCollection) ([]*Row, error) {
	var rows []*Row
	malformed := 0
	for {
		row, err := p.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		var rowErr RowError
		if errors.As(err, &rowErr) {
			errs.Add(rowErr)
			malformed++
			continue
		}
		if err != nil {
			return nil, err
		}
		if row.IsEmpty() {
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 && malformed == 0 {
		return nil, ErrNoDataRows
	}
	return rows, nil
}
