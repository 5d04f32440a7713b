package gateway

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/notevault/notevault-go/internal/domain"
)

// authResponse is the login/registration payload.
type authResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        domain.User `json:"user"`
}

// Register creates an account and returns the identity plus bearer token.
func (g *Gateway) Register(ctx context.Context, name, email, password string) (domain.User, string, error) {
	var resp authResponse
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := g.do(ctx, "auth.register", http.MethodPost, "/auth/register", nil, body, &resp); err != nil {
		return domain.User{}, "", err
	}
	return resp.User, resp.AccessToken, nil
}

// Login authenticates and returns the identity plus bearer token.
func (g *Gateway) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	var resp authResponse
	body := map[string]string{"email": email, "password": password}
	if err := g.do(ctx, "auth.login", http.MethodPost, "/auth/login", nil, body, &resp); err != nil {
		return domain.User{}, "", err
	}
	return resp.User, resp.AccessToken, nil
}

// Me returns the identity behind the current credential.
func (g *Gateway) Me(ctx context.Context) (domain.User, error) {
	var u domain.User
	if err := g.do(ctx, "auth.me", http.MethodGet, "/auth/me", nil, nil, &u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// ListNotes returns note summaries, pinned first.
func (g *Gateway) ListNotes(ctx context.Context) ([]domain.Note, error) {
	var notes []domain.Note
	if err := g.do(ctx, "notes.list", http.MethodGet, "/notes/", nil, nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// GetNote returns one note with its decrypted content.
func (g *Gateway) GetNote(ctx context.Context, id int) (domain.Note, error) {
	var note domain.Note
	if err := g.do(ctx, "notes.get", http.MethodGet, notePath(id), nil, nil, &note); err != nil {
		return domain.Note{}, err
	}
	return note, nil
}

// CreateNote stores a new note.
func (g *Gateway) CreateNote(ctx context.Context, draft domain.NoteDraft) (domain.Note, error) {
	var note domain.Note
	if err := g.do(ctx, "notes.create", http.MethodPost, "/notes/", nil, draft, &note); err != nil {
		return domain.Note{}, err
	}
	return note, nil
}

// UpdateNote applies a partial update.
func (g *Gateway) UpdateNote(ctx context.Context, id int, patch domain.NotePatch) (domain.Note, error) {
	var note domain.Note
	if err := g.do(ctx, "notes.update", http.MethodPut, notePath(id), nil, patch, &note); err != nil {
		return domain.Note{}, err
	}
	return note, nil
}

// DeleteNote removes a note.
func (g *Gateway) DeleteNote(ctx context.Context, id int) error {
	return g.do(ctx, "notes.delete", http.MethodDelete, notePath(id), nil, nil, nil)
}

// RelatedNotes returns tag-overlap neighbours, best match first.
func (g *Gateway) RelatedNotes(ctx context.Context, id int) ([]domain.RelatedNote, error) {
	var related []domain.RelatedNote
	if err := g.do(ctx, "notes.related", http.MethodGet, notePath(id)+"/related", nil, nil, &related); err != nil {
		return nil, err
	}
	return related, nil
}

// SummarizeNote asks the backend for an AI summary of the note content.
func (g *Gateway) SummarizeNote(ctx context.Context, id int) (string, error) {
	var resp struct {
		Summary string `json:"summary"`
	}
	if err := g.do(ctx, "notes.summarize", http.MethodPost, notePath(id)+"/summarize", nil, nil, &resp); err != nil {
		return "", err
	}
	return resp.Summary, nil
}

// ListDocuments returns document summaries, newest first.
func (g *Gateway) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	var docs []domain.Document
	if err := g.do(ctx, "documents.list", http.MethodGet, "/documents/", nil, nil, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// UploadDocument streams a file as multipart form data.
func (g *Gateway) UploadDocument(ctx context.Context, filename string, content io.Reader) (doc domain.Document, err error) {
	op := "documents.upload"
	defer g.observeOnly(op, &err)()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, werr := mw.CreateFormFile("file", filename)
		if werr == nil {
			_, werr = io.Copy(part, content)
		}
		if cerr := mw.Close(); werr == nil {
			werr = cerr
		}
		pw.CloseWithError(werr)
	}()

	req, err := g.newRequest(ctx, http.MethodPost, "/documents/upload", nil, pr)
	if err != nil {
		return domain.Document{}, fmt.Errorf("%s: %w", op, err)
	}
	hadToken := req.Header.Get("Authorization") != ""
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := g.http.Do(req)
	if err != nil {
		return domain.Document{}, fmt.Errorf("%s: %w: %v", op, domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return domain.Document{}, fmt.Errorf("%s: %w", op, g.statusError(resp, hadToken))
	}
	if err := decodeJSON(resp.Body, &doc); err != nil {
		return domain.Document{}, fmt.Errorf("%s: %w", op, err)
	}
	return doc, nil
}

// DeleteDocument removes a document and its stored file.
func (g *Gateway) DeleteDocument(ctx context.Context, id int) error {
	return g.do(ctx, "documents.delete", http.MethodDelete, docPath(id), nil, nil, nil)
}

// RescanDocument re-runs text extraction and summarization.
func (g *Gateway) RescanDocument(ctx context.Context, id int) (domain.Document, error) {
	var doc domain.Document
	if err := g.do(ctx, "documents.rescan", http.MethodPost, docPath(id)+"/rescan", nil, nil, &doc); err != nil {
		return domain.Document{}, err
	}
	return doc, nil
}

// DownloadDocument streams the original file. The caller owns the returned
// reader and must close it. The shared client timeout does not apply; cancel
// through the context to bound the transfer.
func (g *Gateway) DownloadDocument(ctx context.Context, id int) (rc io.ReadCloser, err error) {
	op := "documents.download"
	defer g.observeOnly(op, &err)()

	req, err := g.newRequest(ctx, http.MethodGet, docPath(id)+"/download", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	hadToken := req.Header.Get("Authorization") != ""

	resp, err := g.streaming.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, domain.ErrNetwork, err)
	}
	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		return nil, fmt.Errorf("%s: %w", op, g.statusError(resp, hadToken))
	}
	return resp.Body, nil
}

// Search fetches scored candidates for the given query. The backend returns
// each kind already sorted descending by similarity.
func (g *Gateway) Search(ctx context.Context, query string, includeNotes, includeDocs bool) (domain.SearchResult, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("include_notes", strconv.FormatBool(includeNotes))
	q.Set("include_docs", strconv.FormatBool(includeDocs))
	q.Set("ai_boost", "false")

	var result domain.SearchResult
	if err := g.do(ctx, "search", http.MethodGet, "/search/", q, nil, &result); err != nil {
		return domain.SearchResult{}, err
	}
	return result, nil
}

// Stats returns the dashboard aggregate.
func (g *Gateway) Stats(ctx context.Context) (domain.Stats, error) {
	var stats domain.Stats
	if err := g.do(ctx, "dashboard.stats", http.MethodGet, "/dashboard/stats", nil, nil, &stats); err != nil {
		return domain.Stats{}, err
	}
	return stats, nil
}

func notePath(id int) string {
	return "/notes/" + strconv.Itoa(id)
}

func docPath(id int) string {
	return "/documents/" + strconv.Itoa(id)
}
