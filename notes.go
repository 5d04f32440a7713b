package notevault

import (
	"context"
	"time"

	"github.com/notevault/notevault-go/internal/domain"
)

// NotesService manages notes.
type NotesService struct {
	svc notesUseCase
	obs *observer
}

// List returns note summaries, pinned first. Served from the view cache
// when fresh.
func (s *NotesService) List(ctx context.Context) (_ []Note, err error) {
	start := time.Now()
	defer func() { s.obs.observe("notes.list", start, err) }()

	return s.svc.List(ctx)
}

// Get returns one note with its content.
func (s *NotesService) Get(ctx context.Context, id int) (_ Note, err error) {
	start := time.Now()
	defer func() { s.obs.observe("notes.get", start, err) }()

	n, err := s.svc.Get(ctx, id)
	if err != nil {
		return domain.Note{}, err
	}
	return n, nil
}

// Create stores a new note. The title is required.
func (s *NotesService) Create(ctx context.Context, draft NoteDraft) (_ Note, err error) {
	start := time.Now()
	defer func() { s.obs.observe("notes.create", start, err) }()

	n, err := s.svc.Create(ctx, draft)
	if err != nil {
		return domain.Note{}, err
	}
	return n, nil
}

// Update applies a partial edit. Nil patch fields are left unchanged.
func (s *NotesService) Update(ctx context.Context, id int, patch NotePatch) (_ Note, err error) {
	start := time.Now()
	defer func() { s.obs.observe("notes.update", start, err) }()

	n, err := s.svc.Update(ctx, id, patch)
	if err != nil {
		return domain.Note{}, err
	}
	return n, nil
}

// Delete removes a note.
func (s *NotesService) Delete(ctx context.Context, id int) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("notes.delete", start, err) }()

	return s.svc.Delete(ctx, id)
}

// TogglePin sets the pinned flag, which controls list ordering.
func (s *NotesService) TogglePin(ctx context.Context, id int, pinned bool) (_ Note, err error) {
	start := time.Now()
	defer func() { s.obs.observe("notes.pin", start, err) }()

	n, err := s.svc.TogglePin(ctx, id, pinned)
	if err != nil {
		return domain.Note{}, err
	}
	return n, nil
}

// Related returns tag-overlap neighbours, best match first.
func (s *NotesService) Related(ctx context.Context, id int) (_ []RelatedNote, err error) {
	start := time.Now()
	defer func() { s.obs.observe("notes.related", start, err) }()

	return s.svc.Related(ctx, id)
}

// Summarize produces an AI summary of the note content.
func (s *NotesService) Summarize(ctx context.Context, id int) (_ string, err error) {
	start := time.Now()
	defer func() { s.obs.observe("notes.summarize", start, err) }()

	return s.svc.Summarize(ctx, id)
}
