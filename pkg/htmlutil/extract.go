// Package htmlutil provides HTML processing utilities for profile page scraping.
package htmlutil

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Parse builds a queryable document from raw HTML.
// Malformed markup never fails: the tokenizer recovers, and a reader error yields an empty document.
func Parse(htmlContent string) *goquery.Document {
	root, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		root = &html.Node{Type: html.DocumentNode}
	}
	return goquery.NewDocumentFromNode(root)
}

// Text returns the trimmed text of the first element matching selector.
// The boolean reports whether any element matched.
func Text(doc *goquery.Document, selector string) (string, bool) {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", false
	}
	return strings.TrimSpace(sel.Text()), true
}

// Attr returns an attribute of the first element matching selector.
// The boolean is false when no element matched or the attribute is missing.
func Attr(doc *goquery.Document, selector, name string) (string, bool) {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", false
	}
	return sel.Attr(name)
}

// Exists reports whether any element matches selector.
func Exists(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}

// ContainsMarker reports whether marker appears anywhere in the raw page.
// The search is case-sensitive and not scoped to any element.
func ContainsMarker(htmlContent, marker string) bool {
	return marker != "" && strings.Contains(htmlContent, marker)
}
