package dashboard

import (
	"context"
	"testing"

	"github.com/notevault/notevault-go/internal/domain"
	"github.com/notevault/notevault-go/internal/viewcache"
)

type mockGateway struct {
	stats domain.Stats
	calls int
}

func (m *mockGateway) Stats(_ context.Context) (domain.Stats, error) {
	m.calls++
	return m.stats, nil
}

func TestStatsCachedUnderDashboardView(t *testing.T) {
	gw := &mockGateway{stats: domain.Stats{TotalNotes: 4, TotalDocuments: 2}}
	cache := viewcache.New(viewcache.DefaultStaleAfter, 0, nil)
	svc := New(gw, cache)

	for i := 0; i < 3; i++ {
		stats, err := svc.Stats(context.Background())
		if err != nil {
			t.Fatalf("Stats: %v", err)
		}
		if stats.TotalNotes != 4 {
			t.Errorf("unexpected stats %+v", stats)
		}
	}
	if gw.calls != 1 {
		t.Errorf("expected one backend call, got %d", gw.calls)
	}

	cache.Invalidate(domain.ViewDashboardStats)
	if _, err := svc.Stats(context.Background()); err != nil {
		t.Fatalf("Stats after invalidate: %v", err)
	}
	if gw.calls != 2 {
		t.Errorf("expected refetch after invalidation, got %d", gw.calls)
	}
}
