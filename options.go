package notevault

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	baseURL     string
	timeout     time.Duration
	sessionPath string

	staleAfter time.Duration
	retries    int

	expander        Expander
	expansionAPIKey string
	expansionURL    string
	expansionModel  string

	onSessionExpired func()

	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

// WithBaseURL sets the backend API root, including the /api prefix.
// Default: http://localhost:8000/api.
func WithBaseURL(u string) Option {
	return optionFunc(func(c *clientConfig) {
		c.baseURL = u
	})
}

// WithTimeout bounds every non-streaming backend call. Default: 15s.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithSessionPath sets the session file location.
// Default: <user config dir>/notevault/session.json.
func WithSessionPath(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.sessionPath = path
	})
}

// WithStaleness sets the view cache staleness window. Default: 30s.
func WithStaleness(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.staleAfter = d
	})
}

// WithRetries sets the automatic refetch attempts after a failed view fetch.
// Default: 1.
func WithRetries(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.retries = n
	})
}

// WithExpander sets a custom AI query expansion provider. Without one, and
// without WithExpansion, AI boost degrades to the raw query.
func WithExpander(e Expander) Option {
	return optionFunc(func(c *clientConfig) {
		c.expander = e
	})
}

// WithExpansion configures the built-in OpenAI-compatible query expander.
// baseURL and model may be empty to use the provider defaults.
func WithExpansion(apiKey, baseURL, model string) Option {
	return optionFunc(func(c *clientConfig) {
		c.expansionAPIKey = apiKey
		c.expansionURL = baseURL
		c.expansionModel = model
	})
}

// WithOnSessionExpired registers a hook that runs once per authorization
// failure burst, after the session has been cleared. UIs hook their
// back-to-login navigation here.
func WithOnSessionExpired(fn func()) Option {
	return optionFunc(func(c *clientConfig) {
		c.onSessionExpired = fn
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (request counts, cache outcomes,
// operation durations) on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
