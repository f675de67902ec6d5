package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"datachat/internal/model"
)

type fakeDatasetFinder struct {
	datasets map[string]*model.Dataset
}

func (f *fakeDatasetFinder) GetByID(id string) (*model.Dataset, error) {
	return f.datasets[id], nil
}

func newCSVDataset(t *testing.T, id, fileName, content string) *fakeDatasetFinder {
	t.Helper()
	path := filepath.Join(t.TempDir(), fileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return &fakeDatasetFinder{datasets: map[string]*model.Dataset{
		id: {ID: id, FileName: fileName, FilePath: path, RowCount: strings.Count(content, "\n") - 1},
	}}
}

const salesCSV = "order_id,city,amount\n1001,Surabaya,250\n1002,Jakarta,975\n1003,Medan,130\n"

func TestSearchFindsMatchingRow(t *testing.T) {
	finder := newCSVDataset(t, "ds-1", "sales.csv", salesCSV)
	service := NewSearchService(finder, nil)

	summary, rows, err := service.Search(context.Background(), "ds-1", "Jakarta")
	if err != nil {
		t.Fatalf("Search() unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Search() returned %d rows, want 1", len(rows))
	}
	if rows[0]["city"] != "Jakarta" {
		t.Errorf("matched row city = %q, want Jakarta", rows[0]["city"])
	}
	if !strings.HasPrefix(summary, searchFoundHeader) {
		t.Errorf("summary should start with the found header, got %q", summary)
	}
	if !strings.Contains(summary, "Row 1: order_id: 1002, city: Jakarta, amount: 975") {
		t.Errorf("summary missing rendered row, got %q", summary)
	}
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	finder := newCSVDataset(t, "ds-1", "sales.csv", salesCSV)
	service := NewSearchService(finder, nil)

	_, rows, err := service.Search(context.Background(), "ds-1", "jakarta")
	if err != nil {
		t.Fatalf("Search() unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("Search() returned %d rows, want 1", len(rows))
	}
}

func TestSearchEmptyQueryReturnsFirstRows(t *testing.T) {
	finder := newCSVDataset(t, "ds-1", "sales.csv", salesCSV)
	service := NewSearchService(finder, nil)

	_, rows, err := service.Search(context.Background(), "ds-1", "")
	if err != nil {
		t.Fatalf("Search() unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("empty query on 3 rows returned %d rows, want 3", len(rows))
	}
}

func TestSearchStopsAtFiveMatches(t *testing.T) {
	var b strings.Builder
	b.WriteString("id,name\n")
	for i := 1; i <= 8; i++ {
		fmt.Fprintf(&b, "%d,item\n", i)
	}
	finder := newCSVDataset(t, "ds-1", "items.csv", b.String())
	service := NewSearchService(finder, nil)

	summary, rows, err := service.Search(context.Background(), "ds-1", "item")
	if err != nil {
		t.Fatalf("Search() unexpected error: %v", err)
	}
	if len(rows) != 5 {
		t.Errorf("Search() returned %d rows, want 5", len(rows))
	}
	if !strings.Contains(summary, "Row 5:") {
		t.Errorf("summary should contain Row 5, got %q", summary)
	}
	if strings.Contains(summary, "Row 6:") {
		t.Errorf("summary must not go past 5 matches, got %q", summary)
	}
}

func TestSearchNoMatches(t *testing.T) {
	finder := newCSVDataset(t, "ds-1", "sales.csv", salesCSV)
	service := NewSearchService(finder, nil)

	summary, rows, err := service.Search(context.Background(), "ds-1", "Singapore")
	if err != nil {
		t.Fatalf("Search() unexpected error: %v", err)
	}
	if summary != searchNotFoundMessage {
		t.Errorf("summary = %q, want %q", summary, searchNotFoundMessage)
	}
	if rows == nil || len(rows) != 0 {
		t.Errorf("rows = %v, want empty non-nil slice", rows)
	}
}

func TestSearchDatasetNotFound(t *testing.T) {
	service := NewSearchService(&fakeDatasetFinder{datasets: map[string]*model.Dataset{}}, nil)

	_, _, err := service.Search(context.Background(), "missing", "query")
	if !errors.Is(err, ErrDatasetNotFound) {
		t.Errorf("Search() error = %v, want ErrDatasetNotFound", err)
	}
}

func TestSearchParseFailureDegradesToText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	if err := os.WriteFile(path, []byte("not a workbook"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	finder := &fakeDatasetFinder{datasets: map[string]*model.Dataset{
		"ds-1": {ID: "ds-1", FileName: "broken.xlsx", FilePath: path},
	}}
	service := NewSearchService(finder, nil)

	summary, _, err := service.Search(context.Background(), "ds-1", "anything")
	if err != nil {
		t.Fatalf("Search() unexpected error: %v", err)
	}
	if !strings.HasPrefix(summary, "Failed to search the structured document:") {
		t.Errorf("summary = %q, want degraded failure message", summary)
	}
}
