// Package fetch performs bounded outbound page fetches and reports failures by kind.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/codeGROOVE-dev/retry"
)

// UserAgent is the browser User-Agent string sent with every request.
const UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:146.0) Gecko/20100101 Firefox/146.0"

// DefaultMaxBodyBytes caps how much of a response body is read.
const DefaultMaxBodyBytes = 2 << 20

// Kind identifies why a fetch failed.
type Kind int

// Failure kinds.
const (
	KindRequest  Kind = iota + 1 // request could not be built (bad URL)
	KindTimeout                  // client or context deadline
	KindCanceled                 // caller canceled
	KindNetwork                  // DNS, dial, TLS, reset
	KindRead                     // body read failed
)

func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindTimeout:
		return "timeout"
	case KindCanceled:
		return "canceled"
	case KindNetwork:
		return "network"
	case KindRead:
		return "read"
	default:
		return "unknown"
	}
}

// Error is returned for every failed fetch.
type Error struct {
	Err  error
	URL  string
	Kind Kind
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error fetching %s: %v", e.Kind, e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the failure kind of err, or 0 if err is not a fetch error.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}

// Page is a fetched response. Any HTTP status counts as a successful fetch.
// Body holds at most MaxBodyBytes; Truncated reports whether the response was longer.
type Page struct {
	URL        string
	Body       []byte
	StatusCode int
	Truncated  bool
}

// Options tunes a single Get call.
type Options struct {
	Logger       *slog.Logger
	UserAgent    string
	MaxBodyBytes int64
	Attempts     uint // total tries; 0 and 1 both mean a single try
}

// Get fetches rawURL with client. Only timeout and network failures are retried, and only when
// opts.Attempts is above one.
func Get(ctx context.Context, client *http.Client, rawURL string, opts Options) (*Page, error) {
	attempts := max(opts.Attempts, 1)

	var last *Error
	page, err := retry.DoWithData(
		func() (*Page, error) {
			p, ferr := do(ctx, client, rawURL, opts)
			if ferr != nil {
				last = ferr
				return nil, ferr
			}
			return p, nil
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(200*time.Millisecond),
		retry.MaxJitter(100*time.Millisecond),
		retry.RetryIf(isRetryableError),
		retry.OnRetry(func(n uint, err error) {
			if opts.Logger != nil {
				opts.Logger.DebugContext(ctx, "retrying HTTP request", "attempt", n+1, "url", rawURL, "error", err)
			}
		}),
	)
	if err != nil {
		if last != nil {
			return nil, last
		}
		return nil, &Error{Kind: kindOf(err), URL: rawURL, Err: err}
	}
	return page, nil
}

func do(ctx context.Context, client *http.Client, rawURL string, opts Options) (*Page, *Error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, &Error{Kind: KindRequest, URL: rawURL, Err: err}
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = UserAgent
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{Kind: kindOf(err), URL: rawURL, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // intentional

	limit := opts.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		k := kindOf(err)
		if k == KindNetwork {
			k = KindRead
		}
		return nil, &Error{Kind: k, URL: rawURL, Err: err}
	}

	truncated := int64(len(body)) > limit
	if truncated {
		body = body[:limit]
		if opts.Logger != nil {
			opts.Logger.DebugContext(ctx, "response body truncated", "url", rawURL, "limit", limit)
		}
	}

	finalURL := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}
	return &Page{URL: finalURL, StatusCode: resp.StatusCode, Body: body, Truncated: truncated}, nil
}

func kindOf(err error) Kind {
	var netErr net.Error
	switch {
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		return KindTimeout
	default:
		return KindNetwork
	}
}

// isRetryableError returns true for transient errors that should be retried.
func isRetryableError(err error) bool {
	switch KindOf(err) {
	case KindTimeout, KindNetwork:
		return true
	default:
		return false
	}
}
