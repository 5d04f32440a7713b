package documents

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/notevault/notevault-go/internal/domain"
	"github.com/notevault/notevault-go/internal/viewcache"
)

// allowedExtensions mirrors the backend's upload allow-list. Checked on the
// client so an unsupported file never starts a transfer.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".txt":  true,
}

// Service handles document reads through the view cache and document writes
// through the mutation/invalidation table.
type Service struct {
	gw     Gateway
	cache  ViewCache
	logger *zap.Logger
}

// New creates a documents service.
func New(gw Gateway, cache ViewCache, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{gw: gw, cache: cache, logger: logger}
}

// List returns document summaries through the documents-list view.
func (s *Service) List(ctx context.Context) ([]domain.Document, error) {
	return viewcache.GetAs(ctx, s.cache, domain.ViewDocumentsList, s.gw.ListDocuments)
}

// Upload validates the file type and streams the upload. On success the
// documents list and the dashboard counters are invalidated.
func (s *Service) Upload(ctx context.Context, filename string, content io.Reader) (domain.Document, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return domain.Document{}, fmt.Errorf("%w: file type %q not allowed (use .pdf, .docx or .txt)",
			domain.ErrValidation, ext)
	}

	var doc domain.Document
	m := domain.NewMutation(domain.MutationCreate, domain.TargetDocument)
	err := s.cache.Mutate(ctx, m, func(ctx context.Context) error {
		var err error
		doc, err = s.gw.UploadDocument(ctx, filename, content)
		return err
	})
	if err != nil {
		return domain.Document{}, err
	}
	s.logger.Debug("document uploaded",
		zap.Int("id", doc.ID), zap.String("name", doc.OriginalName))
	return doc, nil
}

// Delete removes a document, invalidating the documents list and the
// dashboard counters.
func (s *Service) Delete(ctx context.Context, id int) error {
	m := domain.NewMutation(domain.MutationDelete, domain.TargetDocument)
	return s.cache.Mutate(ctx, m, func(ctx context.Context) error {
		return s.gw.DeleteDocument(ctx, id)
	})
}

// Rescan re-runs text extraction and summarization on the backend. It has
// no list effect: the summary lands asynchronously and is picked up by the
// staleness window.
func (s *Service) Rescan(ctx context.Context, id int) (domain.Document, error) {
	return s.gw.RescanDocument(ctx, id)
}

// Download streams the original file. The caller owns the reader. Cache
// state is never touched: a download racing a delete either completes with
// the pre-delete bytes or fails cleanly at the transport.
func (s *Service) Download(ctx context.Context, id int) (io.ReadCloser, error) {
	return s.gw.DownloadDocument(ctx, id)
}
