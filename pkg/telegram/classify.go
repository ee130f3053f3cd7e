package telegram

import (
	"context"

	"github.com/codeGROOVE-dev/tglookup/pkg/fetch"
	"github.com/codeGROOVE-dev/tglookup/pkg/htmlutil"
	"github.com/codeGROOVE-dev/tglookup/pkg/profile"
)

// Page markers that distinguish channels and groups from user pages.
const (
	channelMarker = "tgme_channel_info"
	groupMarker   = "tgme_group_info"
)

// Classify reports whether username is a channel, group or user.
// It returns profile.TypeUnknown when the page cannot be fetched.
func (c *Client) Classify(ctx context.Context, username string) profile.Type {
	url := c.ProfileURL(username)
	page, err := fetch.Get(ctx, c.classifyClient, url, c.fetchOptions())
	if err != nil {
		c.logger.WarnContext(ctx, "classification fetch failed",
			"username", username, "url", url, "kind", fetch.KindOf(err).String(), "error", err)
		return profile.TypeUnknown
	}

	t := classifyPage(string(page.Body))
	c.logger.DebugContext(ctx, "classified profile", "username", username, "type", t, "status", page.StatusCode)
	return t
}

func classifyPage(html string) profile.Type {
	switch {
	case htmlutil.ContainsMarker(html, channelMarker):
		return profile.TypeChannel
	case htmlutil.ContainsMarker(html, groupMarker):
		return profile.TypeGroup
	default:
		return profile.TypeUser
	}
}
