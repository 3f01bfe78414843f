// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package listing

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/jose-harvester/internal/httputil"
	"github.com/pdiddy/jose-harvester/pkg/types"
)

// FetchArticle retrieves one article page and extracts its citation
// front matter. Used by the enrich pass to refine records harvested
// from listing cards.
func (c *Client) FetchArticle(ctx context.Context, url string) (types.Article, error) {
	resp, err := httputil.Get(ctx, c.HTTPClient, url, c.UserAgent)
	if err != nil {
		return types.Article{}, fmt.Errorf("fetching article %s: %w", url, err)
	}
	defer resp.Body.Close()

	a, err := ParseArticle(resp.Body)
	if err != nil {
		return types.Article{}, fmt.Errorf("parsing article %s: %w", url, err)
	}
	a.URL = url
	return a, nil
}

// ParseArticle extracts a record from article-page markup. It prefers
// the citation_* meta tags and falls back to the visible page elements
// when front matter is absent. Missing fields become empty strings.
func ParseArticle(r io.Reader) (types.Article, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return types.Article{}, fmt.Errorf("parsing HTML: %w", err)
	}

	return types.Article{
		Title:           articleTitle(doc),
		Authors:         articleAuthors(doc),
		PublicationDate: articleDate(doc),
		Status:          badgeStatus(doc.Selection),
	}, nil
}

func articleTitle(doc *goquery.Document) string {
	if content, ok := doc.Find(`meta[name="citation_title"]`).First().Attr("content"); ok {
		if title := strings.TrimSpace(content); title != "" {
			return title
		}
	}
	if title := strings.TrimSpace(doc.Find("h2.paper-title").First().Text()); title != "" {
		return title
	}
	// Page <title> is "Paper Title · Journal of Open Source Education".
	title := doc.Find("title").First().Text()
	title, _, _ = strings.Cut(title, "·")
	return strings.TrimSpace(title)
}

func articleAuthors(doc *goquery.Document) []string {
	var authors []string
	doc.Find(`meta[name="citation_author"]`).Each(func(_ int, tag *goquery.Selection) {
		if content, ok := tag.Attr("content"); ok {
			if name := strings.TrimSpace(content); name != "" {
				authors = append(authors, name)
			}
		}
	})
	if len(authors) > 0 {
		return authors
	}
	return types.SplitAuthors(strings.TrimSpace(doc.Find("div.submitted_by").First().Text()))
}

func articleDate(doc *goquery.Document) string {
	if content, ok := doc.Find(`meta[name="citation_publication_date"]`).First().Attr("content"); ok {
		if date := strings.TrimSpace(content); date != "" {
			return date
		}
	}
	return strings.TrimSpace(doc.Find("span.time").First().Text())
}
