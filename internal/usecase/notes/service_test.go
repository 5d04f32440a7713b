package notes

import (
	"context"
	"errors"
	"testing"

	"github.com/notevault/notevault-go/internal/domain"
	"github.com/notevault/notevault-go/internal/viewcache"
)

// --- Mocks ---

type mockGateway struct {
	notes      []domain.Note
	note       domain.Note
	createErr  error
	listCalls  int
	lastPatch  domain.NotePatch
	deletedIDs []int
}

func (m *mockGateway) ListNotes(_ context.Context) ([]domain.Note, error) {
	m.listCalls++
	return m.notes, nil
}

func (m *mockGateway) GetNote(_ context.Context, id int) (domain.Note, error) {
	return m.note, nil
}

func (m *mockGateway) CreateNote(_ context.Context, draft domain.NoteDraft) (domain.Note, error) {
	if m.createErr != nil {
		return domain.Note{}, m.createErr
	}
	return domain.Note{ID: 10, Title: draft.Title, Tags: draft.Tags}, nil
}

func (m *mockGateway) UpdateNote(_ context.Context, id int, patch domain.NotePatch) (domain.Note, error) {
	m.lastPatch = patch
	return domain.Note{ID: id}, nil
}

func (m *mockGateway) DeleteNote(_ context.Context, id int) error {
	m.deletedIDs = append(m.deletedIDs, id)
	return nil
}

func (m *mockGateway) RelatedNotes(_ context.Context, id int) ([]domain.RelatedNote, error) {
	return []domain.RelatedNote{{ID: 2, Similarity: 0.5}}, nil
}

func (m *mockGateway) SummarizeNote(_ context.Context, id int) (string, error) {
	return "summary", nil
}

func newTestService(t *testing.T) (*Service, *mockGateway, *viewcache.Coordinator) {
	t.Helper()
	gw := &mockGateway{}
	cache := viewcache.New(viewcache.DefaultStaleAfter, 0, nil)
	return New(gw, cache, nil), gw, cache
}

// --- Tests ---

func TestListGoesThroughCache(t *testing.T) {
	svc, gw, _ := newTestService(t)
	gw.notes = []domain.Note{{ID: 1, Title: "Idea"}}

	for i := 0; i < 3; i++ {
		notes, err := svc.List(context.Background())
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(notes) != 1 {
			t.Fatalf("expected 1 note, got %d", len(notes))
		}
	}
	if gw.listCalls != 1 {
		t.Errorf("expected one backend call for repeated fresh lists, got %d", gw.listCalls)
	}
}

func TestCreateRejectsEmptyTitle(t *testing.T) {
	svc, gw, _ := newTestService(t)

	_, err := svc.Create(context.Background(), domain.NoteDraft{Title: "   "})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	// Validation errors never reach the network layer.
	if gw.listCalls != 0 {
		t.Error("no backend call expected")
	}
}

func TestCreateInvalidatesListAndDashboard(t *testing.T) {
	svc, gw, cache := newTestService(t)
	gw.notes = []domain.Note{}

	svc.List(context.Background())
	cache.Get(context.Background(), domain.ViewDashboardStats, func(ctx context.Context) (any, error) {
		return "stats", nil
	})

	note, err := svc.Create(context.Background(), domain.NoteDraft{Title: "Idea", Tags: []string{"x"}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if note.ID != 10 {
		t.Errorf("unexpected note %+v", note)
	}
	if cache.State(domain.ViewNotesList) != viewcache.StateInvalid {
		t.Error("notes-list should be invalid after create")
	}
	if cache.State(domain.ViewDashboardStats) != viewcache.StateInvalid {
		t.Error("dashboard-stats should be invalid after create")
	}

	// Next read triggers exactly one refetch.
	svc.List(context.Background())
	if gw.listCalls != 2 {
		t.Errorf("expected refetch, got %d list calls", gw.listCalls)
	}
}

func TestFailedCreateLeavesViewsFresh(t *testing.T) {
	svc, gw, cache := newTestService(t)
	svc.List(context.Background())

	gw.createErr = errors.New("backend rejected")
	_, err := svc.Create(context.Background(), domain.NoteDraft{Title: "Idea"})
	if err == nil {
		t.Fatal("expected error")
	}
	if cache.State(domain.ViewNotesList) != viewcache.StateFresh {
		t.Error("failed create must not invalidate the notes list")
	}
}

func TestUpdateInvalidatesNoteView(t *testing.T) {
	svc, _, cache := newTestService(t)
	svc.Get(context.Background(), 7)

	title := "New title"
	if _, err := svc.Update(context.Background(), 7, domain.NotePatch{Title: &title}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if cache.State(domain.NoteView(7)) != viewcache.StateInvalid {
		t.Error("note:7 should be invalid after update")
	}
	for _, k := range domain.NewMutation(domain.MutationUpdate, domain.TargetNote).Invalidates {
		if k == domain.ViewDashboardStats {
			t.Error("update must not invalidate dashboard-stats")
		}
	}
}

func TestUpdateRejectsBlankTitle(t *testing.T) {
	svc, _, _ := newTestService(t)
	blank := ""
	_, err := svc.Update(context.Background(), 1, domain.NotePatch{Title: &blank})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestTogglePinSendsPatch(t *testing.T) {
	svc, gw, cache := newTestService(t)
	svc.List(context.Background())

	if _, err := svc.TogglePin(context.Background(), 4, true); err != nil {
		t.Fatalf("TogglePin: %v", err)
	}
	if gw.lastPatch.IsPinned == nil || !*gw.lastPatch.IsPinned {
		t.Errorf("expected is_pinned=true patch, got %+v", gw.lastPatch)
	}
	if cache.State(domain.ViewNotesList) != viewcache.StateInvalid {
		t.Error("notes-list should be invalid after pin toggle")
	}
}

func TestDeleteInvalidates(t *testing.T) {
	svc, gw, cache := newTestService(t)
	svc.List(context.Background())

	if err := svc.Delete(context.Background(), 3); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(gw.deletedIDs) != 1 || gw.deletedIDs[0] != 3 {
		t.Errorf("unexpected deletes %v", gw.deletedIDs)
	}
	if cache.State(domain.ViewNotesList) != viewcache.StateInvalid {
		t.Error("notes-list should be invalid after delete")
	}
}
