package telegram

import (
	"context"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/codeGROOVE-dev/tglookup/pkg/fetch"
	"github.com/codeGROOVE-dev/tglookup/pkg/profile"
)

// candidatePatterns derive related handles from a username. Order is the output order.
var candidatePatterns = []struct {
	prefix string
	suffix string
}{
	{suffix: "_channel"},
	{suffix: "_chat"},
	{suffix: "s"},
	{prefix: "group_"},
	{prefix: "chat_"},
	{suffix: "_group"},
	{suffix: "_official"},
	{suffix: "_network"},
	{prefix: "official_"},
}

// Candidates returns the nine handles derived from username, in fixed order.
func Candidates(username string) []string {
	out := make([]string, 0, len(candidatePatterns))
	for _, p := range candidatePatterns {
		out = append(out, p.prefix+username+p.suffix)
	}
	return out
}

// Probe checks every derived handle for an existing preview page.
// A handle exists iff its page answers 200 without following redirects; any failure means it does not.
// Results are in Candidates order regardless of completion order.
func (c *Client) Probe(ctx context.Context, username string) []profile.Candidate {
	handles := Candidates(username)
	results := make([]profile.Candidate, len(handles))

	var g errgroup.Group
	g.SetLimit(c.probeConcurrency)
	for i, handle := range handles {
		g.Go(func() error {
			results[i] = c.probe(ctx, handle)
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // probes never fail

	return results
}

func (c *Client) probe(ctx context.Context, handle string) profile.Candidate {
	url := c.ProfileURL(handle)
	exists := false

	page, err := fetch.Get(ctx, c.probeClient, url, c.fetchOptions())
	switch {
	case err != nil:
		c.logger.DebugContext(ctx, "candidate probe failed",
			"handle", handle, "url", url, "kind", fetch.KindOf(err).String(), "error", err)
	default:
		exists = page.StatusCode == http.StatusOK
		c.logger.DebugContext(ctx, "candidate probed", "handle", handle, "status", page.StatusCode, "exists", exists)
	}

	return profile.Candidate{
		Username: handle,
		URL:      url,
		Status:   profile.CandidateStatus(exists),
		Exists:   exists,
	}
}
