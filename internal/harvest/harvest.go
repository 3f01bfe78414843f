// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package harvest drives the page-by-page scrape of the paper listing.
package harvest

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/jose-harvester/internal/listing"
	"github.com/pdiddy/jose-harvester/pkg/types"
)

// Fetcher retrieves listing and article pages. listing.Client is the
// production implementation; tests substitute fakes.
type Fetcher interface {
	FetchListing(ctx context.Context, page int) (listing.Page, error)
	FetchArticle(ctx context.Context, url string) (types.Article, error)
}

// Recorder persists harvested records. store.Store is the production
// implementation.
type Recorder interface {
	UpsertPage(ctx context.Context, articles []types.Article) error
	UpsertArticle(ctx context.Context, a types.Article) error
	SaveFrontMatter(ctx context.Context, url, html string, page int) error
}

// Summary holds the outcome of one harvest run.
type Summary struct {
	PagesFetched int
	Records      int
	Enriched     int

	// Warnings carries non-fatal degradations: listing pages whose
	// markup yielded no records, and enrich fetches that failed. A run
	// that stops with warnings is distinguishable from clean
	// pagination exhaustion.
	Warnings []string
}

// HasWarnings reports whether the run degraded anywhere.
func (s Summary) HasWarnings() bool { return len(s.Warnings) > 0 }

// Run walks listing pages starting at cfg.StartPage, upserting each
// page's records as one batch, and stops at the first page with no
// article containers. A fetch or persistence failure aborts the run
// with an error naming the failing page. With cfg.Enrich set, every
// harvested URL is refetched afterwards and refined from its citation
// front matter; per-article failures there are warnings, not fatal.
func Run(ctx context.Context, f Fetcher, rec Recorder, cfg types.HarvestConfig, w io.Writer) (Summary, error) {
	start := cfg.StartPage
	if start <= 0 {
		start = 1
	}

	var summary Summary
	var harvested []string

	for page := start; ; page++ {
		if cfg.MaxPages > 0 && summary.PagesFetched >= cfg.MaxPages {
			fmt.Fprintf(w, "page cap reached (%d), stopping\n", cfg.MaxPages)
			break
		}

		result, err := f.FetchListing(ctx, page)
		if err != nil {
			return summary, err
		}
		summary.PagesFetched++

		// Archive every fetched page, matching what actually came over
		// the wire, even when it turns out to be the empty last page.
		if cfg.ArchiveHTML {
			if err := rec.SaveFrontMatter(ctx, result.URL, result.RawHTML, page); err != nil {
				return summary, fmt.Errorf("persisting page %d: %w", page, err)
			}
		}

		if result.Empty() {
			fmt.Fprintf(w, "page %d is empty, pagination exhausted\n", page)
			break
		}
		if result.Degraded() {
			warning := fmt.Sprintf("page %d: %d article containers but no usable records, stopping", page, result.CardsFound)
			summary.Warnings = append(summary.Warnings, warning)
			fmt.Fprintf(w, "warning: %s\n", warning)
			break
		}

		if err := rec.UpsertPage(ctx, result.Articles); err != nil {
			return summary, fmt.Errorf("persisting page %d: %w", page, err)
		}

		summary.Records += len(result.Articles)
		for _, a := range result.Articles {
			harvested = append(harvested, a.URL)
		}
		fmt.Fprintf(w, "page %d: %d records\n", page, len(result.Articles))

		if err := wait(ctx, cfg.PageDelay); err != nil {
			return summary, err
		}
	}

	if cfg.Enrich {
		if err := enrich(ctx, f, rec, cfg, harvested, &summary, w); err != nil {
			return summary, err
		}
	}

	fmt.Fprintf(w, "\npages: %d, records: %d", summary.PagesFetched, summary.Records)
	if cfg.Enrich {
		fmt.Fprintf(w, ", enriched: %d", summary.Enriched)
	}
	if summary.HasWarnings() {
		fmt.Fprintf(w, ", warnings: %d", len(summary.Warnings))
	}
	fmt.Fprintln(w)

	return summary, nil
}

// enrich refetches each harvested article page and upserts the refined
// record. Fetch and parse failures are recorded as warnings so one bad
// article page cannot abort the pass; persistence failures stay fatal.
func enrich(ctx context.Context, f Fetcher, rec Recorder, cfg types.HarvestConfig, urls []string, summary *Summary, w io.Writer) error {
	for i, url := range urls {
		a, err := f.FetchArticle(ctx, url)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			warning := fmt.Sprintf("enrich %s: %v", url, err)
			summary.Warnings = append(summary.Warnings, warning)
			fmt.Fprintf(w, "warning: %s\n", warning)
			continue
		}

		if err := rec.UpsertArticle(ctx, a); err != nil {
			return fmt.Errorf("persisting enriched article: %w", err)
		}
		summary.Enriched++
		fmt.Fprintf(w, "enriched %d/%d: %s\n", i+1, len(urls), url)

		if err := wait(ctx, cfg.PageDelay); err != nil {
			return err
		}
	}
	return nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
