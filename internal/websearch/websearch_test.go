package websearch

import (
	"context"
	"strings"
	"testing"
)

func TestSearchReturnsPlaceholder(t *testing.T) {
	searcher := New()

	summary, meta := searcher.Search(context.Background(), "weather in Jakarta")

	if !strings.Contains(summary, "internet search result") {
		t.Errorf("summary = %q, want placeholder text", summary)
	}
	if !strings.Contains(summary, "'weather in Jakarta'") {
		t.Errorf("summary should embed the query, got %q", summary)
	}
	if meta["dummy_result"] != "internet_search_placeholder" {
		t.Errorf("meta = %v, want dummy_result marker", meta)
	}
}
