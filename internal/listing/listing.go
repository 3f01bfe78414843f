// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package listing fetches JOSE listing pages and extracts article records.
package listing

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/jose-harvester/internal/httputil"
	"github.com/pdiddy/jose-harvester/pkg/types"
)

// DefaultBaseURL is the JOSE paper listing endpoint.
const DefaultBaseURL = "https://jose.theoj.org/papers"

// Client fetches listing and article pages from the journal site.
type Client struct {
	HTTPClient *http.Client
	BaseURL    string
	UserAgent  string
}

// Page holds the outcome of parsing one listing page. CardsFound counts
// the article containers seen in the markup, which lets the caller tell
// a legitimately empty page (no cards: pagination exhausted) from a
// page whose cards yielded no usable records (markup drift).
type Page struct {
	// URL is the listing URL that was fetched, set by FetchListing.
	URL        string
	Articles   []types.Article
	CardsFound int
	RawHTML    string
}

// Empty reports whether the page contained no article containers at all.
func (p Page) Empty() bool { return p.CardsFound == 0 }

// Degraded reports whether the page had article containers but none
// produced a record with a URL.
func (p Page) Degraded() bool { return p.CardsFound > 0 && len(p.Articles) == 0 }

// FetchListing retrieves listing page n and parses its article cards.
// A transport failure or non-success status is returned as an error
// carrying the page index; the caller aborts the run on it.
func (c *Client) FetchListing(ctx context.Context, page int) (Page, error) {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	// A trailing slash would otherwise leak into the paper prefix and
	// filter out every card.
	base = strings.TrimRight(base, "/")
	url := fmt.Sprintf("%s?page=%d", base, page)

	resp, err := httputil.Get(ctx, c.HTTPClient, url, c.UserAgent)
	if err != nil {
		return Page{}, fmt.Errorf("fetching listing page %d: %w", page, err)
	}
	defer resp.Body.Close()

	parsed, err := ParseListing(resp.Body, base+"/")
	if err != nil {
		return Page{}, fmt.Errorf("parsing listing page %d: %w", page, err)
	}
	parsed.URL = url
	return parsed, nil
}

// ParseListing extracts article records from listing-page markup. Each
// div.paper-card whose first anchor links under paperPrefix yields one
// record; missing fields become empty strings rather than dropping the
// record. An empty paperPrefix accepts any absolute http(s) link.
func ParseListing(r io.Reader, paperPrefix string) (Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Page{}, fmt.Errorf("parsing HTML: %w", err)
	}

	var page Page
	doc.Find("div.paper-card").Each(func(_ int, card *goquery.Selection) {
		page.CardsFound++

		url := cardURL(card, paperPrefix)
		if url == "" {
			return
		}

		title := strings.TrimSpace(card.Find("h2.paper-title").First().Text())
		if title == "" {
			title = strings.TrimSpace(card.Find("a").First().Text())
		}

		page.Articles = append(page.Articles, types.Article{
			URL:             url,
			Title:           title,
			Authors:         types.SplitAuthors(strings.TrimSpace(card.Find("div.submitted_by").First().Text())),
			PublicationDate: strings.TrimSpace(card.Find("span.time").First().Text()),
			Status:          badgeStatus(card),
		})
	})

	if html, err := doc.Html(); err == nil {
		page.RawHTML = html
	}
	return page, nil
}

// cardURL returns the first anchor href under paperPrefix, or "" when
// the card carries no usable paper link.
func cardURL(card *goquery.Selection, paperPrefix string) string {
	var url string
	card.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, ok := a.Attr("href")
		if !ok {
			return true
		}
		href = strings.TrimSpace(href)
		if paperPrefix != "" {
			if !strings.HasPrefix(href, paperPrefix) {
				return true
			}
		} else if !strings.HasPrefix(href, "http://") && !strings.HasPrefix(href, "https://") {
			return true
		}
		url = href
		return false
	})
	return url
}

// badgeStatus returns the lowercased text of the first badge span that
// is not a language badge ("badge-lang" marks language tags, not review
// status).
func badgeStatus(card *goquery.Selection) string {
	var status string
	card.Find("span.badge").EachWithBreak(func(_ int, badge *goquery.Selection) bool {
		if badge.HasClass("badge-lang") {
			return true
		}
		status = strings.ToLower(strings.TrimSpace(badge.Text()))
		return false
	})
	return status
}
