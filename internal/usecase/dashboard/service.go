// Package dashboard serves the aggregate stats view.
package dashboard

import (
	"context"

	"github.com/notevault/notevault-go/internal/domain"
	"github.com/notevault/notevault-go/internal/viewcache"
)

// Gateway is the backend surface the dashboard consumes.
type Gateway interface {
	Stats(ctx context.Context) (domain.Stats, error)
}

// ViewCache is the read side of the view cache.
type ViewCache interface {
	Get(ctx context.Context, key domain.ViewKey, fetch func(context.Context) (any, error)) (any, error)
}

// Service serves dashboard stats through the dashboard-stats view.
type Service struct {
	gw    Gateway
	cache ViewCache
}

// New creates a dashboard service.
func New(gw Gateway, cache ViewCache) *Service {
	return &Service{gw: gw, cache: cache}
}

// Stats returns the dashboard aggregate, cached under dashboard-stats and
// invalidated by note and document create/delete mutations.
func (s *Service) Stats(ctx context.Context) (domain.Stats, error) {
	return viewcache.GetAs(ctx, s.cache, domain.ViewDashboardStats, s.gw.Stats)
}
