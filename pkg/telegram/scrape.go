package telegram

import (
	"context"

	"github.com/codeGROOVE-dev/tglookup/pkg/fetch"
	"github.com/codeGROOVE-dev/tglookup/pkg/htmlutil"
	"github.com/codeGROOVE-dev/tglookup/pkg/profile"
)

// Selectors and markers on the t.me preview page.
const (
	titleSelector       = ".tgme_page_title span"
	descriptionSelector = ".tgme_page_description"
	photoSelector       = ".tgme_page_photo_image"
	verifiedMarker      = "tgme_icon_verified"
	premiumMarker       = "premium"
)

// Scrape fetches the preview page for username and extracts its visible fields.
// When the page cannot be fetched it returns profile.Degraded.
func (c *Client) Scrape(ctx context.Context, username string) *profile.Profile {
	url := c.ProfileURL(username)
	c.logger.InfoContext(ctx, "fetching telegram profile", "url", url, "username", username)

	page, err := fetch.Get(ctx, c.scrapeClient, url, c.fetchOptions())
	if err != nil {
		c.logger.WarnContext(ctx, "profile fetch failed",
			"username", username, "url", url, "kind", fetch.KindOf(err).String(), "error", err)
		return profile.Degraded(username)
	}

	return parseProfile(string(page.Body), username)
}

// parseProfile extracts each field independently; a missing element only defaults that field.
func parseProfile(html, username string) *profile.Profile {
	doc := htmlutil.Parse(html)

	p := &profile.Profile{
		Username: username,
		Name:     "@" + username,
		Verified: htmlutil.ContainsMarker(html, verifiedMarker),
		// Crude on purpose: any "premium" in the page counts, including unrelated text.
		Premium: htmlutil.ContainsMarker(html, premiumMarker),
		Public:  true,
	}

	if name, ok := htmlutil.Text(doc, titleSelector); ok {
		p.Name = name
	}
	if bio, ok := htmlutil.Text(doc, descriptionSelector); ok {
		p.Bio = &bio
	}
	if htmlutil.Exists(doc, photoSelector) {
		p.HasPhoto = true
		if src, ok := htmlutil.Attr(doc, photoSelector, "src"); ok {
			p.PhotoURL = &src
		}
	}

	return p
}
