package notevault

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/notevault/notevault-go/internal/domain"
	"github.com/notevault/notevault-go/internal/gateway"
	"github.com/notevault/notevault-go/internal/metrics"
	"github.com/notevault/notevault-go/internal/session"
	"github.com/notevault/notevault-go/internal/transport/openai"
	authuc "github.com/notevault/notevault-go/internal/usecase/auth"
	dashboarduc "github.com/notevault/notevault-go/internal/usecase/dashboard"
	documentsuc "github.com/notevault/notevault-go/internal/usecase/documents"
	notesuc "github.com/notevault/notevault-go/internal/usecase/notes"
	searchuc "github.com/notevault/notevault-go/internal/usecase/search"
	"github.com/notevault/notevault-go/internal/viewcache"
)

const (
	defaultBaseURL        = "http://localhost:8000/api"
	defaultTimeout        = 15 * time.Second
	defaultExpansionModel = "llama-3.1-8b-instant"
)

// Expander produces related search terms for a query, original query first.
type Expander interface {
	Expand(ctx context.Context, query string) ([]string, error)
}

// Internal interfaces for substitution in tests.
type authUseCase interface {
	Register(ctx context.Context, name, email, password string) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.User, error)
	Me(ctx context.Context) (domain.User, error)
	Logout() error
	Session() domain.Session
	IsAuthenticated() bool
}

type notesUseCase interface {
	List(ctx context.Context) ([]domain.Note, error)
	Get(ctx context.Context, id int) (domain.Note, error)
	Create(ctx context.Context, draft domain.NoteDraft) (domain.Note, error)
	Update(ctx context.Context, id int, patch domain.NotePatch) (domain.Note, error)
	Delete(ctx context.Context, id int) error
	TogglePin(ctx context.Context, id int, pinned bool) (domain.Note, error)
	Related(ctx context.Context, id int) ([]domain.RelatedNote, error)
	Summarize(ctx context.Context, id int) (string, error)
}

type documentsUseCase interface {
	List(ctx context.Context) ([]domain.Document, error)
	Upload(ctx context.Context, filename string, content io.Reader) (domain.Document, error)
	Delete(ctx context.Context, id int) error
	Rescan(ctx context.Context, id int) (domain.Document, error)
	Download(ctx context.Context, id int) (io.ReadCloser, error)
}

type searchUseCase interface {
	Search(ctx context.Context, query string, opts searchuc.Options) (domain.SearchResult, error)
}

type dashboardUseCase interface {
	Stats(ctx context.Context) (domain.Stats, error)
}

// Client is the NoteVault SDK entry point.
type Client struct {
	sessions *session.Store
	gw       *gateway.Gateway
	cache    *viewcache.Coordinator

	authSvc      authUseCase
	notesSvc     notesUseCase
	documentsSvc documentsUseCase
	searchSvc    searchUseCase
	dashboardSvc dashboardUseCase
	obs          *observer
}

// New creates a NoteVault client. The session file is loaded immediately, so
// a client built after a previous login starts authenticated.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		baseURL: defaultBaseURL,
		timeout: defaultTimeout,
		retries: viewcache.DefaultRetries,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.metricsReg != nil {
		metrics.Register(cfg.metricsReg)
	}
	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	sessions, err := session.NewStore(cfg.sessionPath, cfg.logger)
	if err != nil {
		return nil, fmt.Errorf("notevault: open session store: %w", err)
	}

	gw := gateway.New(gateway.Config{
		BaseURL:          cfg.baseURL,
		Timeout:          cfg.timeout,
		Tokens:           sessions,
		Logger:           cfg.logger,
		OnSessionExpired: cfg.onSessionExpired,
	})
	cache := viewcache.New(cfg.staleAfter, cfg.retries, cfg.logger)

	// A new credential re-arms the one-shot teardown; losing the credential
	// drops every cached view so the next login starts clean.
	sessions.Subscribe(func(sess domain.Session) {
		if sess.Valid() {
			gw.Arm()
		} else {
			cache.Flush()
		}
	})

	expander := cfg.expander
	if expander == nil && cfg.expansionAPIKey != "" {
		model := cfg.expansionModel
		if model == "" {
			model = defaultExpansionModel
		}
		expander = openai.NewExpander(&openai.Config{
			APIKey:  cfg.expansionAPIKey,
			BaseURL: cfg.expansionURL,
			Model:   model,
			Logger:  cfg.logger,
		})
	}

	return &Client{
		sessions:     sessions,
		gw:           gw,
		cache:        cache,
		authSvc:      authuc.New(gw, sessions, cfg.logger),
		notesSvc:     notesuc.New(gw, cache, cfg.logger),
		documentsSvc: documentsuc.New(gw, cache, cfg.logger),
		searchSvc:    searchuc.New(gw, expander, cfg.logger),
		dashboardSvc: dashboarduc.New(gw, cache),
		obs:          obs,
	}, nil
}

// Auth returns the authentication service.
func (c *Client) Auth() *AuthService {
	return &AuthService{svc: c.authSvc, obs: c.obs}
}

// Notes returns the notes service.
func (c *Client) Notes() *NotesService {
	return &NotesService{svc: c.notesSvc, obs: c.obs}
}

// Documents returns the documents service.
func (c *Client) Documents() *DocumentsService {
	return &DocumentsService{svc: c.documentsSvc, obs: c.obs}
}

// Search returns the search service.
func (c *Client) Search() *SearchService {
	return &SearchService{svc: c.searchSvc, obs: c.obs}
}

// Dashboard returns the dashboard service.
func (c *Client) Dashboard() *DashboardService {
	return &DashboardService{svc: c.dashboardSvc, obs: c.obs}
}

// SessionExpiry returns the stored credential's expiry time, decoded from
// the token without verification. Zero when logged out or when the token
// carries no expiry.
func (c *Client) SessionExpiry() time.Time {
	return c.sessions.Claims().ExpiresAt
}

// Theme returns the persisted UI theme, defaulting to "dark".
func (c *Client) Theme() string {
	return c.sessions.Theme()
}

// SetTheme persists the UI theme preference. It survives logout.
func (c *Client) SetTheme(theme string) error {
	return c.sessions.SetTheme(theme)
}
