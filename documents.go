package notevault

import (
	"context"
	"io"
	"time"

	"github.com/notevault/notevault-go/internal/domain"
)

// DocumentsService manages uploaded documents.
type DocumentsService struct {
	svc documentsUseCase
	obs *observer
}

// List returns document summaries, newest first. Served from the view cache
// when fresh.
func (s *DocumentsService) List(ctx context.Context) (_ []Document, err error) {
	start := time.Now()
	defer func() { s.obs.observe("documents.list", start, err) }()

	return s.svc.List(ctx)
}

// Upload streams a file to the backend. Only .pdf, .docx and .txt files are
// accepted; the check runs before any bytes are sent.
func (s *DocumentsService) Upload(
	ctx context.Context, filename string, content io.Reader,
) (_ Document, err error) {
	start := time.Now()
	defer func() { s.obs.observe("documents.upload", start, err) }()

	d, err := s.svc.Upload(ctx, filename, content)
	if err != nil {
		return domain.Document{}, err
	}
	return d, nil
}

// Delete removes a document and its stored file.
func (s *DocumentsService) Delete(ctx context.Context, id int) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("documents.delete", start, err) }()

	return s.svc.Delete(ctx, id)
}

// Rescan re-runs text extraction and summarization on the backend.
func (s *DocumentsService) Rescan(ctx context.Context, id int) (_ Document, err error) {
	start := time.Now()
	defer func() { s.obs.observe("documents.rescan", start, err) }()

	d, err := s.svc.Rescan(ctx, id)
	if err != nil {
		return domain.Document{}, err
	}
	return d, nil
}

// Download streams the original file. The caller owns the returned reader
// and must close it.
func (s *DocumentsService) Download(ctx context.Context, id int) (_ io.ReadCloser, err error) {
	start := time.Now()
	defer func() { s.obs.observe("documents.download", start, err) }()

	return s.svc.Download(ctx, id)
}
