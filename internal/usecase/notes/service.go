package notes

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/notevault/notevault-go/internal/domain"
	"github.com/notevault/notevault-go/internal/viewcache"
)

// Service handles note reads through the view cache and routes note writes
// through the mutation/invalidation table.
type Service struct {
	gw     Gateway
	cache  ViewCache
	logger *zap.Logger
}

// New creates a notes service.
func New(gw Gateway, cache ViewCache, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{gw: gw, cache: cache, logger: logger}
}

// List returns note summaries through the notes-list view.
func (s *Service) List(ctx context.Context) ([]domain.Note, error) {
	return viewcache.GetAs(ctx, s.cache, domain.ViewNotesList, s.gw.ListNotes)
}

// Get returns one note with content through its per-note view.
func (s *Service) Get(ctx context.Context, id int) (domain.Note, error) {
	return viewcache.GetAs(ctx, s.cache, domain.NoteView(id), func(ctx context.Context) (domain.Note, error) {
		return s.gw.GetNote(ctx, id)
	})
}

// Create validates and stores a new note. On success the notes list and the
// dashboard counters are invalidated.
func (s *Service) Create(ctx context.Context, draft domain.NoteDraft) (domain.Note, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return domain.Note{}, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if draft.Tags == nil {
		draft.Tags = []string{}
	}

	var created domain.Note
	m := domain.NewMutation(domain.MutationCreate, domain.TargetNote)
	err := s.cache.Mutate(ctx, m, func(ctx context.Context) error {
		var err error
		created, err = s.gw.CreateNote(ctx, draft)
		return err
	})
	if err != nil {
		return domain.Note{}, err
	}
	s.logger.Debug("note created", zap.Int("id", created.ID))
	return created, nil
}

// Update applies a partial edit. The notes list and the note's own view are
// invalidated.
func (s *Service) Update(ctx context.Context, id int, patch domain.NotePatch) (domain.Note, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return domain.Note{}, fmt.Errorf("%w: title cannot be empty", domain.ErrValidation)
	}

	var updated domain.Note
	m := domain.NewMutation(domain.MutationUpdate, domain.TargetNote, domain.NoteView(id))
	err := s.cache.Mutate(ctx, m, func(ctx context.Context) error {
		var err error
		updated, err = s.gw.UpdateNote(ctx, id, patch)
		return err
	})
	if err != nil {
		return domain.Note{}, err
	}
	return updated, nil
}

// Delete removes a note, invalidating the notes list, the dashboard and the
// note's own view.
func (s *Service) Delete(ctx context.Context, id int) error {
	m := domain.NewMutation(domain.MutationDelete, domain.TargetNote, domain.NoteView(id))
	return s.cache.Mutate(ctx, m, func(ctx context.Context) error {
		return s.gw.DeleteNote(ctx, id)
	})
}

// TogglePin flips the pinned flag. Only the notes list (ordering) and the
// note's own view change; the dashboard shows totals and stays untouched.
func (s *Service) TogglePin(ctx context.Context, id int, pinned bool) (domain.Note, error) {
	var updated domain.Note
	m := domain.NewMutation(domain.MutationTogglePin, domain.TargetNote, domain.NoteView(id))
	err := s.cache.Mutate(ctx, m, func(ctx context.Context) error {
		var err error
		updated, err = s.gw.UpdateNote(ctx, id, domain.NotePatch{IsPinned: &pinned})
		return err
	})
	if err != nil {
		return domain.Note{}, err
	}
	return updated, nil
}

// Related returns tag-overlap neighbours. Not cached: the backend call is
// cheap and the result changes with every edit of any note.
func (s *Service) Related(ctx context.Context, id int) ([]domain.RelatedNote, error) {
	return s.gw.RelatedNotes(ctx, id)
}

// Summarize produces an AI summary of the note content. Never cached.
func (s *Service) Summarize(ctx context.Context, id int) (string, error) {
	return s.gw.SummarizeNote(ctx, id)
}
