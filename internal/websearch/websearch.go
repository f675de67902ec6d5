package websearch

import (
	"context"
	"log"
)

// Searcher is a placeholder for a real internet search integration. It keeps
// the controller-facing contract (summary + metadata) so a real backend can
// be swapped in without touching callers.
type Searcher struct{}

func New() *Searcher {
	return &Searcher{}
}

func (s *Searcher) Search(ctx context.Context, query string) (string, map[string]string) {
	log.Printf("performing internet search for: %s", query)

	summary := "This is an internet search result (placeholder): information about '" + query +
		"' can be found through various online sources."
	return summary, map[string]string{"dummy_result": "internet_search_placeholder"}
}
