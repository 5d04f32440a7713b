// Package search composes one free-text query into one ranked, mixed-kind
// result set: optional AI expansion, independent per-kind retrieval, and a
// merge that never reorders what the backend ranked.
package search

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/notevault/notevault-go/internal/domain"
	"github.com/notevault/notevault-go/internal/metrics"
)

// Options selects the content kinds and the expansion step.
type Options struct {
	IncludeNotes bool
	IncludeDocs  bool
	AIBoost      bool
}

// Service is the search aggregator.
type Service struct {
	fetcher  Fetcher
	expander Expander // nil when no provider is configured
	logger   *zap.Logger
}

// New creates a search service. expander may be nil; AI boost then degrades
// to the raw query.
func New(fetcher Fetcher, expander Expander, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{fetcher: fetcher, expander: expander, logger: logger}
}

// Search runs one search invocation. Results are built fresh per call and
// never cached across queries.
func (s *Service) Search(ctx context.Context, query string, opts Options) (domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.SearchResult{}, fmt.Errorf("%w: query is required", domain.ErrValidation)
	}
	if !opts.IncludeNotes && !opts.IncludeDocs {
		opts.IncludeNotes = true
		opts.IncludeDocs = true
	}

	expandedTerms, fetchQuery := s.expand(ctx, query, opts.AIBoost)

	var notesRes, docsRes domain.SearchResult
	g, gctx := errgroup.WithContext(ctx)
	if opts.IncludeNotes {
		g.Go(func() error {
			var err error
			notesRes, err = s.fetcher.Search(gctx, fetchQuery, true, false)
			return err
		})
	}
	if opts.IncludeDocs {
		g.Go(func() error {
			var err error
			docsRes, err = s.fetcher.Search(gctx, fetchQuery, false, true)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return domain.SearchResult{}, err
	}

	result := domain.SearchResult{
		Query:         query,
		AIBoost:       opts.AIBoost,
		ExpandedTerms: expandedTerms,
		Notes:         notesRes.Notes,
		Documents:     docsRes.Documents,
	}
	if result.ExpandedTerms == nil {
		result.ExpandedTerms = []string{}
	}
	if result.Notes == nil {
		result.Notes = []domain.ScoredItem{}
	}
	if result.Documents == nil {
		result.Documents = []domain.ScoredItem{}
	}
	result.Total = len(result.Notes) + len(result.Documents)

	s.logger.Debug("search merged",
		zap.String("query", query),
		zap.Bool("ai_boost", opts.AIBoost),
		zap.Int("notes", len(result.Notes)),
		zap.Int("documents", len(result.Documents)))

	return result, nil
}

// expand runs the optional expansion step. On any failure the search
// proceeds with the raw query alone: degradation, not a hard error.
func (s *Service) expand(ctx context.Context, query string, boost bool) (terms []string, fetchQuery string) {
	if !boost {
		return nil, query
	}
	if s.expander == nil {
		s.logger.Warn("ai boost requested but no expansion provider configured")
		metrics.ExpansionRequestsTotal.WithLabelValues("degraded").Inc()
		return nil, query
	}

	expanded, err := s.expander.Expand(ctx, query)
	if err != nil || len(expanded) == 0 {
		s.logger.Warn("query expansion failed, searching unexpanded",
			zap.String("query", query), zap.Error(err))
		metrics.ExpansionRequestsTotal.WithLabelValues("degraded").Inc()
		return nil, query
	}

	metrics.ExpansionRequestsTotal.WithLabelValues("success").Inc()
	return expanded, strings.Join(expanded, " ")
}
