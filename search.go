package notevault

import (
	"context"
	"time"

	"github.com/notevault/notevault-go/internal/domain"
	searchuc "github.com/notevault/notevault-go/internal/usecase/search"
)

// SearchOptions selects content kinds and the AI expansion step. With both
// include flags false, both kinds are searched.
type SearchOptions struct {
	IncludeNotes bool
	IncludeDocs  bool
	AIBoost      bool
}

// SearchService runs hybrid keyword/AI searches across notes and documents.
type SearchService struct {
	svc searchUseCase
	obs *observer
}

// Search runs one search. With AIBoost the query is expanded into related
// terms first; when expansion is unavailable the search silently degrades to
// the raw query.
func (s *SearchService) Search(
	ctx context.Context, query string, opts SearchOptions,
) (_ SearchResult, err error) {
	start := time.Now()
	defer func() { s.obs.observe("search", start, err) }()

	res, err := s.svc.Search(ctx, query, searchuc.Options{
		IncludeNotes: opts.IncludeNotes,
		IncludeDocs:  opts.IncludeDocs,
		AIBoost:      opts.AIBoost,
	})
	if err != nil {
		return domain.SearchResult{}, err
	}
	return res, nil
}
