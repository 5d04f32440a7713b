package notevault

import (
	"context"
	"time"

	"github.com/notevault/notevault-go/internal/domain"
)

// DashboardService serves the aggregate stats view.
type DashboardService struct {
	svc dashboardUseCase
	obs *observer
}

// Stats returns the dashboard aggregate. Served from the view cache when
// fresh; invalidated by note and document create/delete operations.
func (s *DashboardService) Stats(ctx context.Context) (_ Stats, err error) {
	start := time.Now()
	defer func() { s.obs.observe("dashboard.stats", start, err) }()

	st, err := s.svc.Stats(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	return st, nil
}
