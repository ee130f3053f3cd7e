// Package telegram classifies, scrapes and probes public t.me preview pages.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/codeGROOVE-dev/tglookup/pkg/fetch"
	"github.com/codeGROOVE-dev/tglookup/pkg/profile"
)

// BaseURL is the public preview host; a username is appended as is.
const BaseURL = "https://t.me/"

// Default per call-site timeouts.
const (
	DefaultClassifyTimeout = 8 * time.Second
	DefaultScrapeTimeout   = 10 * time.Second
	DefaultProbeTimeout    = 3 * time.Second
)

// Client handles Telegram requests.
type Client struct {
	classifyClient   *http.Client
	scrapeClient     *http.Client
	probeClient      *http.Client
	logger           *slog.Logger
	baseURL          string
	userAgent        string
	attempts         uint
	probeConcurrency int
}

// Option configures a Client.
type Option func(*config)

type config struct {
	logger           *slog.Logger
	baseURL          string
	proxyURL         string
	userAgent        string
	classifyTimeout  time.Duration
	scrapeTimeout    time.Duration
	probeTimeout     time.Duration
	attempts         uint
	probeConcurrency int
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithBaseURL overrides the preview host, mostly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *config) { c.baseURL = baseURL }
}

// WithProxy routes all outbound requests through a socks5 or http proxy.
func WithProxy(proxyURL string) Option {
	return func(c *config) { c.proxyURL = proxyURL }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *config) { c.userAgent = ua }
}

// WithClassifyTimeout bounds the classification fetch.
func WithClassifyTimeout(d time.Duration) Option {
	return func(c *config) { c.classifyTimeout = d }
}

// WithScrapeTimeout bounds the profile page fetch.
func WithScrapeTimeout(d time.Duration) Option {
	return func(c *config) { c.scrapeTimeout = d }
}

// WithProbeTimeout bounds each candidate probe.
func WithProbeTimeout(d time.Duration) Option {
	return func(c *config) { c.probeTimeout = d }
}

// WithProbeConcurrency sets how many candidate probes run at once. 1 probes sequentially.
func WithProbeConcurrency(n int) Option {
	return func(c *config) { c.probeConcurrency = n }
}

// WithAttempts sets the total tries per outbound request. The default of 1 never retries.
func WithAttempts(n uint) Option {
	return func(c *config) { c.attempts = n }
}

// New creates a Telegram client.
func New(_ context.Context, opts ...Option) (*Client, error) {
	cfg := &config{
		logger:           slog.Default(),
		baseURL:          BaseURL,
		userAgent:        fetch.UserAgent,
		classifyTimeout:  DefaultClassifyTimeout,
		scrapeTimeout:    DefaultScrapeTimeout,
		probeTimeout:     DefaultProbeTimeout,
		attempts:         1,
		probeConcurrency: len(candidatePatterns),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.probeConcurrency < 1 {
		cfg.probeConcurrency = 1
	}

	classifyClient, err := fetch.NewClient(fetch.ClientConfig{
		Timeout: cfg.classifyTimeout, FollowRedirects: true, ProxyURL: cfg.proxyURL,
	})
	if err != nil {
		return nil, fmt.Errorf("classify client: %w", err)
	}
	scrapeClient, err := fetch.NewClient(fetch.ClientConfig{
		Timeout: cfg.scrapeTimeout, FollowRedirects: true, ProxyURL: cfg.proxyURL,
	})
	if err != nil {
		return nil, fmt.Errorf("scrape client: %w", err)
	}
	probeClient, err := fetch.NewClient(fetch.ClientConfig{
		Timeout: cfg.probeTimeout, ProxyURL: cfg.proxyURL,
	})
	if err != nil {
		return nil, fmt.Errorf("probe client: %w", err)
	}

	return &Client{
		classifyClient:   classifyClient,
		scrapeClient:     scrapeClient,
		probeClient:      probeClient,
		logger:           cfg.logger,
		baseURL:          cfg.baseURL,
		userAgent:        cfg.userAgent,
		attempts:         cfg.attempts,
		probeConcurrency: cfg.probeConcurrency,
	}, nil
}

// ProfileURL returns the public preview URL for username.
func (c *Client) ProfileURL(username string) string {
	return c.baseURL + username
}

func (c *Client) fetchOptions() fetch.Options {
	return fetch.Options{
		Logger:    c.logger,
		UserAgent: c.userAgent,
		Attempts:  c.attempts,
	}
}

// Result bundles everything learned about one username.
type Result struct {
	Profile    *profile.Profile
	Type       profile.Type
	Candidates []profile.Candidate
}

// Lookup classifies, scrapes and probes username. The three steps are independent failure domains
// and run concurrently; none of them returns an error.
func (c *Client) Lookup(ctx context.Context, username string) *Result {
	c.logger.InfoContext(ctx, "looking up telegram username", "username", username)

	res := &Result{}
	var g errgroup.Group
	g.Go(func() error {
		res.Type = c.Classify(ctx, username)
		return nil
	})
	g.Go(func() error {
		res.Profile = c.Scrape(ctx, username)
		return nil
	})
	g.Go(func() error {
		res.Candidates = c.Probe(ctx, username)
		return nil
	})
	_ = g.Wait() //nolint:errcheck // steps degrade instead of failing

	return res
}
