package documents

import (
	"context"
	"io"

	"github.com/notevault/notevault-go/internal/domain"
)

// Gateway is the backend surface the documents service consumes.
type Gateway interface {
	ListDocuments(ctx context.Context) ([]domain.Document, error)
	UploadDocument(ctx context.Context, filename string, content io.Reader) (domain.Document, error)
	DeleteDocument(ctx context.Context, id int) error
	RescanDocument(ctx context.Context, id int) (domain.Document, error)
	DownloadDocument(ctx context.Context, id int) (io.ReadCloser, error)
}

// ViewCache coordinates reads and mutation effects for derived views.
type ViewCache interface {
	Get(ctx context.Context, key domain.ViewKey, fetch func(context.Context) (any, error)) (any, error)
	Mutate(ctx context.Context, m domain.Mutation, write func(context.Context) error) error
}
