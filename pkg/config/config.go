// Package config loads tglookup settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/codeGROOVE-dev/tglookup/pkg/report"
	"github.com/codeGROOVE-dev/tglookup/pkg/telegram"
)

// Config holds all application settings.
type Config struct {
	Addr             string
	BaseURL          string
	PublicHost       string
	Developer        string
	MadeBy           string
	ProxyURL         string
	LogFormat        string
	LogLevel         slog.Level
	ClassifyTimeout  time.Duration
	ScrapeTimeout    time.Duration
	ProbeTimeout     time.Duration
	ProbeConcurrency int
	Attempts         uint
}

// Load reads envFile (if it exists) into the process environment, then builds a Config.
// Variables already set in the environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from a lookup function such as os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	e := &env{lookup: lookup}
	attempts := e.integer("TGLOOKUP_ATTEMPTS", 1)

	cfg := &Config{
		Addr:             e.str("TGLOOKUP_ADDR", ":8080"),
		BaseURL:          e.str("TGLOOKUP_BASE_URL", telegram.BaseURL),
		PublicHost:       e.str("TGLOOKUP_PUBLIC_HOST", report.DefaultPublicHost),
		Developer:        e.str("TGLOOKUP_DEVELOPER", report.DefaultDeveloper),
		MadeBy:           e.str("TGLOOKUP_MADE_BY", report.DefaultMadeBy),
		ProxyURL:         e.str("TGLOOKUP_PROXY", ""),
		LogFormat:        strings.ToLower(e.str("TGLOOKUP_LOG_FORMAT", "text")),
		LogLevel:         e.level("TGLOOKUP_LOG_LEVEL", slog.LevelInfo),
		ClassifyTimeout:  e.duration("TGLOOKUP_CLASSIFY_TIMEOUT", telegram.DefaultClassifyTimeout),
		ScrapeTimeout:    e.duration("TGLOOKUP_SCRAPE_TIMEOUT", telegram.DefaultScrapeTimeout),
		ProbeTimeout:     e.duration("TGLOOKUP_PROBE_TIMEOUT", telegram.DefaultProbeTimeout),
		ProbeConcurrency: e.integer("TGLOOKUP_PROBE_CONCURRENCY", 9),
	}

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		e.fail("TGLOOKUP_LOG_FORMAT", cfg.LogFormat, errors.New("want text or json"))
	}
	if cfg.ProbeConcurrency < 1 {
		e.fail("TGLOOKUP_PROBE_CONCURRENCY", strconv.Itoa(cfg.ProbeConcurrency), errors.New("must be at least 1"))
	}
	if attempts < 1 {
		e.fail("TGLOOKUP_ATTEMPTS", strconv.Itoa(attempts), errors.New("must be at least 1"))
	} else {
		cfg.Attempts = uint(attempts)
	}
	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}

	if len(e.errs) > 0 {
		return nil, errors.Join(e.errs...)
	}
	return cfg, nil
}

// TelegramOptions returns client options matching cfg.
func (c *Config) TelegramOptions(logger *slog.Logger) []telegram.Option {
	opts := []telegram.Option{
		telegram.WithLogger(logger),
		telegram.WithBaseURL(c.BaseURL),
		telegram.WithClassifyTimeout(c.ClassifyTimeout),
		telegram.WithScrapeTimeout(c.ScrapeTimeout),
		telegram.WithProbeTimeout(c.ProbeTimeout),
		telegram.WithProbeConcurrency(c.ProbeConcurrency),
		telegram.WithAttempts(c.Attempts),
	}
	if c.ProxyURL != "" {
		opts = append(opts, telegram.WithProxy(c.ProxyURL))
	}
	return opts
}

// ReportConfig returns assembler settings matching cfg.
func (c *Config) ReportConfig() report.Config {
	return report.Config{
		BaseURL:    c.BaseURL,
		Developer:  c.Developer,
		MadeBy:     c.MadeBy,
		PublicHost: c.PublicHost,
	}
}

type env struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (e *env) fail(key, val string, err error) {
	e.errs = append(e.errs, fmt.Errorf("%s=%q: %w", key, val, err))
}

func (e *env) str(key, fallback string) string {
	if v, ok := e.lookup(key); ok && v != "" {
		return v
	}
	return fallback
}

func (e *env) integer(key string, fallback int) int {
	v := e.str(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(key, v, err)
		return fallback
	}
	return n
}

func (e *env) duration(key string, fallback time.Duration) time.Duration {
	v := e.str(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(key, v, err)
		return fallback
	}
	if d <= 0 {
		e.fail(key, v, errors.New("must be positive"))
		return fallback
	}
	return d
}

func (e *env) level(key string, fallback slog.Level) slog.Level {
	v := e.str(key, "")
	if v == "" {
		return fallback
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(v)); err != nil {
		e.fail(key, v, err)
		return fallback
	}
	return l
}
