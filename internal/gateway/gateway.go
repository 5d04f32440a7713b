// Package gateway is the single choke point for backend calls: it attaches
// the bearer credential, maps response statuses onto domain errors, and
// tears the session down once when the backend says the credential is dead.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/notevault/notevault-go/internal/domain"
	logpkg "github.com/notevault/notevault-go/internal/logger"
	"github.com/notevault/notevault-go/internal/metrics"
)

// TokenSource provides the current credential and a way to drop it.
// Satisfied by *session.Store.
type TokenSource interface {
	Token() string
	Clear() error
}

// Config holds gateway construction parameters.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Tokens  TokenSource
	Logger  *zap.Logger
	// OnSessionExpired runs once per authorization failure burst, after the
	// session has been cleared. The presentation layer hooks its
	// back-to-login navigation here.
	OnSessionExpired func()
}

// Gateway wraps every outbound call to the NoteVault backend.
type Gateway struct {
	baseURL   string
	http      *http.Client
	streaming *http.Client // no client timeout; used for downloads
	tokens    TokenSource
	logger    *zap.Logger
	onExpired func()

	// tornDown collapses concurrent 401s into one teardown. Re-armed by
	// Arm() when a new session is established.
	tornDown atomic.Bool
}

// New creates a gateway. BaseURL is the API root including the /api prefix.
func New(cfg Config) *Gateway {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Gateway{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		http:      &http.Client{Timeout: timeout},
		streaming: &http.Client{},
		tokens:    cfg.Tokens,
		logger:    logger,
		onExpired: cfg.OnSessionExpired,
	}
}

// Arm re-enables the one-shot teardown. Call after a new session is set.
func (g *Gateway) Arm() {
	g.tornDown.Store(false)
}

// do performs one JSON round trip. out may be nil for 204-style responses.
func (g *Gateway) do(ctx context.Context, op, method, path string, query url.Values, body, out any) (err error) {
	start := time.Now()
	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
		}
		metrics.GatewayRequestsTotal.WithLabelValues(op, status).Inc()
		metrics.GatewayRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}()

	var reqBody io.Reader
	if body != nil {
		data, merr := json.Marshal(body)
		if merr != nil {
			return fmt.Errorf("%s: encode request: %w", op, merr)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := g.newRequest(ctx, method, path, query, reqBody)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	hadToken := req.Header.Get("Authorization") != ""

	resp, err := g.http.Do(req)
	if err != nil {
		// Prefer the caller's request-scoped logger so the failure carries
		// the invocation's fields.
		logpkg.FromContextOr(ctx, g.logger).Debug("request failed",
			zap.String("op", op), zap.Error(err))
		return fmt.Errorf("%s: %w: %v", op, domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s: %w", op, g.statusError(resp, hadToken))
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// newRequest builds a request with the bearer header (when a credential
// exists) and a correlation id.
func (g *Gateway) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := g.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if tok := g.tokens.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

// statusError maps an error response to a domain sentinel. A 401 on an
// authenticated call triggers the global teardown exactly once; the error is
// still returned so the call site's local handling (loading state cleanup)
// runs as usual.
func (g *Gateway) statusError(resp *http.Response, hadToken bool) error {
	detail := extractDetail(resp.Body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if hadToken {
			g.teardownSession()
		}
		return wrapDetail(domain.ErrUnauthorized, detail)
	case resp.StatusCode == http.StatusNotFound:
		return wrapDetail(domain.ErrNotFound, detail)
	case resp.StatusCode == http.StatusBadRequest:
		// The backend reports a duplicate registration as a plain 400.
		if strings.Contains(strings.ToLower(detail), "already registered") {
			return wrapDetail(domain.ErrAlreadyExists, detail)
		}
		return wrapDetail(domain.ErrValidation, detail)
	case resp.StatusCode >= 500:
		return wrapDetail(domain.ErrServer, detail)
	default:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, detail)
	}
}

// teardownSession clears the session and fires the expiry hook. Concurrent
// authorization failures within the same burst collapse to one teardown.
func (g *Gateway) teardownSession() {
	if !g.tornDown.CompareAndSwap(false, true) {
		return
	}
	metrics.SessionTeardownsTotal.Inc()
	g.logger.Warn("authorization failure, clearing session")
	if err := g.tokens.Clear(); err != nil {
		g.logger.Error("clear session", zap.Error(err))
	}
	if g.onExpired != nil {
		g.onExpired()
	}
}

// observeOnly records metrics for calls that bypass do (multipart upload,
// streaming download). Use as: defer g.observeOnly(op, &err)().
func (g *Gateway) observeOnly(op string, err *error) func() {
	start := time.Now()
	return func() {
		status := "ok"
		if *err != nil {
			status = "error"
		}
		metrics.GatewayRequestsTotal.WithLabelValues(op, status).Inc()
		metrics.GatewayRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}

func decodeJSON(r io.Reader, out any) error {
	if err := json.NewDecoder(r).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// extractDetail pulls the "detail" field from a FastAPI-style error body.
func extractDetail(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return strings.TrimSpace(string(body))
}

func wrapDetail(sentinel error, detail string) error {
	if detail == "" {
		return sentinel
	}
	return fmt.Errorf("%w: %s", sentinel, detail)
}
