package tabular

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeTempFile(t, "cities.csv", "city,country,population\nJakarta,Indonesia,10500000\nBandung,Indonesia,2500000\n")

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if got := table.RowCount(); got != 2 {
		t.Errorf("RowCount() = %d, want 2", got)
	}
	if len(table.Columns) != 3 || table.Columns[0] != "city" {
		t.Errorf("Columns = %v, want [city country population]", table.Columns)
	}
	if table.Rows[0][0] != "Jakarta" {
		t.Errorf("Rows[0][0] = %q, want Jakarta", table.Rows[0][0])
	}
}

func TestLoadCSVPadsShortRows(t *testing.T) {
	path := writeTempFile(t, "ragged.csv", "a,b,c\n1,2\n")

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if len(table.Rows[0]) != 3 {
		t.Fatalf("row width = %d, want 3", len(table.Rows[0]))
	}
	if table.Rows[0][2] != "" {
		t.Errorf("padded cell = %q, want empty", table.Rows[0][2])
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := writeTempFile(t, "notes.txt", "hello")

	_, err := Load(path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Load() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoadEmptyCSV(t *testing.T) {
	path := writeTempFile(t, "empty.csv", "")

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if table.RowCount() != 0 {
		t.Errorf("RowCount() = %d, want 0", table.RowCount())
	}
}

func TestExtractDegradesOnFailure(t *testing.T) {
	preview, rowCount := Extract(filepath.Join(t.TempDir(), "missing.csv"))
	if preview != "" || rowCount != 0 {
		t.Errorf("Extract() = (%q, %d), want empty preview and 0 rows", preview, rowCount)
	}

	// Broken workbook content parses as neither zip nor xlsx.
	path := writeTempFile(t, "broken.xlsx", "not a workbook")
	preview, rowCount = Extract(path)
	if preview != "" || rowCount != 0 {
		t.Errorf("Extract() = (%q, %d), want empty preview and 0 rows", preview, rowCount)
	}
}

func TestPreviewRecords(t *testing.T) {
	path := writeTempFile(t, "cities.csv", "city,country\nJakarta,Indonesia\nBandung,Indonesia\nSurabaya,Indonesia\n")

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	records := table.PreviewRecords(5)
	if len(records) != 3 {
		t.Fatalf("PreviewRecords(5) on 3 rows = %d records, want 3", len(records))
	}
	if records[0]["city"] != "Jakarta" {
		t.Errorf("records[0][city] = %q, want Jakarta", records[0]["city"])
	}

	records = table.PreviewRecords(2)
	if len(records) != 2 {
		t.Errorf("PreviewRecords(2) = %d records, want 2", len(records))
	}
}

func TestPreviewTextBounds(t *testing.T) {
	var b strings.Builder
	for c := 1; c <= 12; c++ {
		if c > 1 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, "col%02d", c)
	}
	b.WriteString("\n")
	for r := 0; r < 60; r++ {
		for c := 1; c <= 12; c++ {
			if c > 1 {
				b.WriteString(",")
			}
			fmt.Fprintf(&b, "v%d_%d", r, c)
		}
		b.WriteString("\n")
	}
	path := writeTempFile(t, "wide.csv", b.String())

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	preview := table.PreviewText()
	lines := strings.Split(preview, "\n")
	if len(lines) != 51 {
		t.Errorf("preview has %d lines, want 51 (header + 50 rows)", len(lines))
	}
	if !strings.Contains(preview, "col10") {
		t.Errorf("preview should include the 10th column")
	}
	if strings.Contains(preview, "col11") {
		t.Errorf("preview should cut off after 10 columns")
	}
}
