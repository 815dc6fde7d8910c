package dataprocessing

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"dwellcli/pkg/contracts/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// RowSource yields the raw rows of a table
type RowSource interface {
	Rows(ctx context.Context) ([]domain.RawRow, error)
}

// CSVSource reads delimited text. Records may have any number of fields and
// quotes are handled leniently; a record the csv reader cannot parse at all is
// returned with no cells so the filter drops it.
type CSVSource struct {
	reader io.Reader
	comma  rune
}

// NewCSVSource creates a source over r using comma as the field delimiter.
func NewCSVSource(r io.Reader, comma rune) *CSVSource {
	if comma == 0 {
		comma = ','
	}
	return &CSVSource{reader: r, comma: comma}
}

// Rows reads every record. Line numbers are 1-based source lines.
func (s *CSVSource) Rows(ctx context.Context) ([]domain.RawRow, error) {
	br := bufio.NewReader(s.reader)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.Comma = s.comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows []domain.RawRow
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if stderrors.As(err, &parseErr) {
				rows = append(rows, domain.RawRow{Line: parseErr.StartLine})
				continue
			}
			return nil, fmt.Errorf("failed to read delimited input: %w", err)
		}

		line, _ := reader.FieldPos(0)
		rows = append(rows, domain.RawRow{Line: line, Cells: record})
	}

	return rows, nil
}

// XLSXSource reads the rows of one worksheet. An empty sheet name selects the
// first sheet of the workbook.
type XLSXSource struct {
	open  func() (*excelize.File, error)
	sheet string
}

// NewXLSXFileSource reads the workbook at path.
func NewXLSXFileSource(path, sheet string) *XLSXSource {
	return &XLSXSource{
		open:  func() (*excelize.File, error) { return excelize.OpenFile(path) },
		sheet: sheet,
	}
}

// NewXLSXReaderSource reads a workbook from r.
func NewXLSXReaderSource(r io.Reader, sheet string) *XLSXSource {
	return &XLSXSource{
		open:  func() (*excelize.File, error) { return excelize.OpenReader(r) },
		sheet: sheet,
	}
}

// Rows returns the formatted cell text of every row of the sheet.
func (s *XLSXSource) Rows(ctx context.Context) ([]domain.RawRow, error) {
	f, err := s.open()
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := s.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	rows := make([]domain.RawRow, 0, len(records))
	for i, record := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows = append(rows, domain.RawRow{Line: i + 1, Cells: record})
	}
	return rows, nil
}
