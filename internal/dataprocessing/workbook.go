package dataprocessing

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook wraps an excelize file and serves rectangular tables at
// caller-chosen header rows. Sheet contents are read once and cached, so
// re-reading the same sheet with a different header-row guess is cheap.
type Workbook struct {
	file  *excelize.File
	cache map[string][][]string
}

// OpenWorkbook parses workbook bytes (.xlsx and friends).
func OpenWorkbook(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return &Workbook{file: f, cache: make(map[string][][]string)}, nil
}

// Close releases the underlying file resources.
func (wb *Workbook) Close() error {
	return wb.file.Close()
}

// SheetNames returns the workbook's sheet names in order.
func (wb *Workbook) SheetNames() []string {
	return wb.file.GetSheetList()
}

// rows returns all cell rows of a sheet, cached after the first read.
func (wb *Workbook) rows(sheet string) ([][]string, error) {
	if cached, ok := wb.cache[sheet]; ok {
		return cached, nil
	}
	rows, err := wb.file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	wb.cache[sheet] = rows
	return rows, nil
}

// RawRows returns up to limit raw cell rows of a sheet, before any
// header interpretation. The brute-force layout scan inspects these.
func (wb *Workbook) RawRows(sheet string, limit int) ([][]string, error) {
	rows, err := wb.rows(sheet)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// ReadTable interprets a sheet with the given zero-based header row:
// that row supplies the column names, every row below it is data.
func (wb *Workbook) ReadTable(sheet string, headerRow int) (*RawTable, error) {
	rows, err := wb.rows(sheet)
	if err != nil {
		return nil, err
	}
	if headerRow < 0 || headerRow >= len(rows) {
		return nil, fmt.Errorf("sheet %q: header row %d out of range (%d rows)", sheet, headerRow, len(rows))
	}
	headers := make([]string, len(rows[headerRow]))
	for i, h := range rows[headerRow] {
		headers[i] = cleanHeader(h)
	}
	return &RawTable{
		Sheet:   sheet,
		Headers: headers,
		Rows:    rows[headerRow+1:],
	}, nil
}

// cleanHeader strips newlines and collapses runs of whitespace, keeping
// the header text otherwise as-is.
func cleanHeader(h string) string {
	h = strings.ReplaceAll(h, "\n", " ")
	h = strings.ReplaceAll(h, "\r", " ")
	return strings.Join(strings.Fields(h), " ")
}

// RawTable is a rectangular grid of cells with named columns, produced
// per sheet at a chosen header row. It is consumed once and discarded
// after normalization.
type RawTable struct {
	Sheet   string
	Headers []string
	Rows    [][]string
}

// NumRows returns the number of data rows.
func (t *RawTable) NumRows() int {
	return len(t.Rows)
}

// Cell returns the trimmed text of the cell at (row, col). Cells beyond
// a short row read as empty.
func (t *RawTable) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// ColumnIndex returns the position of the column whose cleaned header
// equals name (case-insensitive). ok is false when absent.
func (t *RawTable) ColumnIndex(name string) (int, bool) {
	for i, h := range t.Headers {
		if strings.EqualFold(h, name) {
			return i, true
		}
	}
	return 0, false
}

// Numeric parses the cell at (row, col) as a number, tolerating digit
// grouping commas. ok is false for empty or non-numeric cells.
func (t *RawTable) Numeric(row, col int) (float64, bool) {
	return parseNumeric(t.Cell(row, col))
}

// parseNumeric converts cell text to a float, stripping grouping commas.
func parseNumeric(text string) (float64, bool) {
	text = strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	if text == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
