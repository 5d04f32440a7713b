package notes

import (
	"context"

	"github.com/notevault/notevault-go/internal/domain"
)

// Gateway is the backend surface the notes service consumes.
type Gateway interface {
	ListNotes(ctx context.Context) ([]domain.Note, error)
	GetNote(ctx context.Context, id int) (domain.Note, error)
	CreateNote(ctx context.Context, draft domain.NoteDraft) (domain.Note, error)
	UpdateNote(ctx context.Context, id int, patch domain.NotePatch) (domain.Note, error)
	DeleteNote(ctx context.Context, id int) error
	RelatedNotes(ctx context.Context, id int) ([]domain.RelatedNote, error)
	SummarizeNote(ctx context.Context, id int) (string, error)
}

// ViewCache coordinates reads and mutation effects for derived views.
type ViewCache interface {
	Get(ctx context.Context, key domain.ViewKey, fetch func(context.Context) (any, error)) (any, error)
	Mutate(ctx context.Context, m domain.Mutation, write func(context.Context) error) error
}
