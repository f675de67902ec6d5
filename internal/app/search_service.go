package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"datachat/internal/model"
	"datachat/internal/pkg/tabular"
)

const maxSearchResults = 5

const (
	searchFoundHeader     = "Found relevant data in your structured document:"
	searchNotFoundMessage = "No relevant data found in the structured document."
	searchUnsupportedFile = "This structured document type is not supported for search."
)

type DatasetFinder interface {
	GetByID(id string) (*model.Dataset, error)
}

// TableCache caches parsed tables between search calls. Optional; a nil
// cache means every search re-parses the source file.
type TableCache interface {
	Get(ctx context.Context, datasetID string) (*tabular.Table, bool, error)
	Set(ctx context.Context, datasetID string, table *tabular.Table) error
}

// SearchService scans a dataset's cells for a case-insensitive substring of
// the query, in file order, collecting at most five matching rows.
type SearchService struct {
	datasets DatasetFinder
	cache    TableCache
}

func NewSearchService(datasets DatasetFinder, cache TableCache) *SearchService {
	return &SearchService{
		datasets: datasets,
		cache:    cache,
	}
}

// Search returns a human-readable summary plus the matching rows as
// structured records. Parse failures degrade to a message in the summary;
// only a missing dataset is a real error.
func (s *SearchService) Search(ctx context.Context, datasetID, query string) (string, []map[string]string, error) {
	dataset, err := s.datasets.GetByID(datasetID)
	if err != nil {
		return "", nil, err
	}
	if dataset == nil {
		return "", nil, ErrDatasetNotFound
	}

	table, err := s.loadTable(ctx, datasetID, dataset.FilePath)
	if err != nil {
		if errors.Is(err, tabular.ErrUnsupportedFormat) {
			return searchUnsupportedFile, nil, nil
		}
		log.Printf("search structured document %s failed: %v", datasetID, err)
		return fmt.Sprintf("Failed to search the structured document: %v", err), nil, nil
	}

	queryLower := strings.ToLower(query)

	var matched []int
	for i, row := range table.Rows {
		for _, cell := range row {
			if strings.Contains(strings.ToLower(cell), queryLower) {
				matched = append(matched, i)
				break
			}
		}
		if len(matched) >= maxSearchResults {
			break
		}
	}

	if len(matched) == 0 {
		return searchNotFoundMessage, []map[string]string{}, nil
	}

	records := make([]map[string]string, 0, len(matched))
	lines := make([]string, 0, len(matched))
	for n, i := range matched {
		records = append(records, table.Record(i))

		parts := make([]string, 0, len(table.Columns))
		for c, name := range table.Columns {
			parts = append(parts, name+": "+table.Rows[i][c])
		}
		lines = append(lines, fmt.Sprintf("Row %d: %s", n+1, strings.Join(parts, ", ")))
	}

	summary := searchFoundHeader + "\n" + strings.Join(lines, "\n")
	return summary, records, nil
}

func (s *SearchService) loadTable(ctx context.Context, datasetID, path string) (*tabular.Table, error) {
	if s.cache != nil {
		if table, hit, err := s.cache.Get(ctx, datasetID); err == nil && hit {
			return table, nil
		}
	}

	table, err := tabular.Load(path)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, datasetID, table)
	}
	return table, nil
}
