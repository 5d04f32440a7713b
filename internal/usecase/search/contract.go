package search

import (
	"context"

	"github.com/notevault/notevault-go/internal/domain"
)

// Fetcher retrieves scored candidates for one query. The backend returns
// each kind sorted descending by similarity.
type Fetcher interface {
	Search(ctx context.Context, query string, includeNotes, includeDocs bool) (domain.SearchResult, error)
}

// Expander turns a raw query into an expanded term list (original first).
// Expansion may take arbitrarily long and may fail; the aggregator treats
// both as a reason to degrade, never to abort the search.
type Expander interface {
	Expand(ctx context.Context, query string) ([]string, error)
}
