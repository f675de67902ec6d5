package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var ErrUnsupportedFormat = errors.New("unsupported tabular file format")

const (
	previewMaxRows = 50
	previewMaxCols = 10
)

// Table is a fully materialized tabular file. Every cell is already in its
// string representation; rows are normalized to the header width.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Load parses the file at path into a Table. The format is chosen by file
// extension: .csv, .xlsx and .xls are recognized.
func Load(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadCSV(path)
	case ".xlsx", ".xls":
		return loadExcel(path)
	default:
		return nil, ErrUnsupportedFormat
	}
}

// Extract loads the file and returns a preview plus the row count for upload
// handling. Parse failures are logged and degraded to an empty preview and a
// zero row count so the surrounding upload still succeeds.
func Extract(path string) (string, int) {
	table, err := Load(path)
	if err != nil {
		log.Printf("extract tabular data from %s failed: %v", path, err)
		return "", 0
	}
	return table.PreviewText(), table.RowCount()
}

func loadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv failed: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv failed: %w", err)
	}
	return fromRecords(records), nil
}

func loadExcel(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook failed: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return &Table{}, nil
	}
	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet rows failed: %w", err)
	}
	return fromRecords(records), nil
}

// fromRecords treats the first record as the header and pads or truncates
// every following record to the header width.
func fromRecords(records [][]string) *Table {
	if len(records) == 0 {
		return &Table{}
	}

	columns := records[0]
	rows := make([][]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make([]string, len(columns))
		for i := range columns {
			if i < len(record) {
				row[i] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return &Table{Columns: columns, Rows: rows}
}

func (t *Table) RowCount() int {
	return len(t.Rows)
}

// Record returns row i as a column-to-value map. Callers that need column
// order must iterate t.Columns, not the map.
func (t *Table) Record(i int) map[string]string {
	record := make(map[string]string, len(t.Columns))
	for c, name := range t.Columns {
		record[name] = t.Rows[i][c]
	}
	return record
}

// PreviewRecords returns the first n rows as structured records for API
// responses.
func (t *Table) PreviewRecords(n int) []map[string]string {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	records := make([]map[string]string, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, t.Record(i))
	}
	return records
}

// PreviewText renders at most the first 50 rows and 10 columns as a
// fixed-width text table for prompt grounding.
func (t *Table) PreviewText() string {
	cols := len(t.Columns)
	if cols > previewMaxCols {
		cols = previewMaxCols
	}
	rows := len(t.Rows)
	if rows > previewMaxRows {
		rows = previewMaxRows
	}
	if cols == 0 {
		return ""
	}

	widths := make([]int, cols)
	for c := 0; c < cols; c++ {
		widths[c] = len(t.Columns[c])
		for r := 0; r < rows; r++ {
			if l := len(t.Rows[r][c]); l > widths[c] {
				widths[c] = l
			}
		}
	}

	var b strings.Builder
	for c := 0; c < cols; c++ {
		if c > 0 {
			b.WriteString("  ")
		}
		fmt.Fprintf(&b, "%-*s", widths[c], t.Columns[c])
	}
	for r := 0; r < rows; r++ {
		b.WriteString("\n")
		for c := 0; c < cols; c++ {
			if c > 0 {
				b.WriteString("  ")
			}
			fmt.Fprintf(&b, "%-*s", widths[c], t.Rows[r][c])
		}
	}
	return b.String()
}
