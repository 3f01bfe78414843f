// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/jose-harvester/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "jose.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleArticle(url string) types.Article {
	return types.Article{
		URL:             url,
		Title:           "Teaching Numerical Methods",
		Authors:         []string{"Ada Lovelace", "Charles Babbage"},
		PublicationDate: "2024/03/15",
		Status:          "published",
	}
}

func TestUpsertArticleRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertArticle(ctx, sampleArticle("https://jose.theoj.org/papers/10.21105/jose.00042")))

	articles, err := s.ListArticles(ctx)
	require.NoError(t, err)
	require.Len(t, articles, 1)

	a := articles[0]
	assert.Equal(t, "https://jose.theoj.org/papers/10.21105/jose.00042", a.URL)
	assert.Equal(t, "Teaching Numerical Methods", a.Title)
	assert.Equal(t, []string{"Ada Lovelace", "Charles Babbage"}, a.Authors)
	assert.Equal(t, "2024/03/15", a.PublicationDate)
	assert.Equal(t, "published", a.Status)
}

func TestUpsertArticleIdempotent(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	a := sampleArticle("https://jose.theoj.org/papers/10.21105/jose.00001")
	require.NoError(t, s.UpsertArticle(ctx, a))
	require.NoError(t, s.UpsertArticle(ctx, a))

	n, err := s.CountArticles(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "re-upserting the same URL must not add rows")
}

func TestUpsertArticleOverwritesFields(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	a := sampleArticle("https://jose.theoj.org/papers/10.21105/jose.00002")
	require.NoError(t, s.UpsertArticle(ctx, a))

	a.Title = "Revised Title"
	a.Status = "under review"
	require.NoError(t, s.UpsertArticle(ctx, a))

	articles, err := s.ListArticles(ctx)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "Revised Title", articles[0].Title)
	assert.Equal(t, "under review", articles[0].Status)
}

func TestUpsertArticleEmptyFieldsPersisted(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertArticle(ctx, types.Article{URL: "https://jose.theoj.org/papers/10.21105/jose.00003"}))

	articles, err := s.ListArticles(ctx)
	require.NoError(t, err)
	require.Len(t, articles, 1, "a record with only a URL is still persisted")
	assert.Empty(t, articles[0].Title)
	assert.Nil(t, articles[0].Authors)
}

func TestUpsertArticleRejectsMissingURL(t *testing.T) {
	s := testStore(t)
	assert.Error(t, s.UpsertArticle(context.Background(), types.Article{Title: "no key"}))
}

func TestUpsertPageBatch(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	page := []types.Article{
		sampleArticle("https://jose.theoj.org/papers/10.21105/jose.00010"),
		sampleArticle("https://jose.theoj.org/papers/10.21105/jose.00011"),
		{Title: "skipped: no URL"},
		sampleArticle("https://jose.theoj.org/papers/10.21105/jose.00012"),
	}
	require.NoError(t, s.UpsertPage(ctx, page))

	n, err := s.CountArticles(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// Re-running the batch is a no-op on row count.
	require.NoError(t, s.UpsertPage(ctx, page))
	n, err = s.CountArticles(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestUpsertPageEmptyIsNoOp(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.UpsertPage(context.Background(), nil))
}

func TestCountByStatus(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for i, status := range []string{"published", "published", "under review"} {
		a := sampleArticle("https://jose.theoj.org/papers/10.21105/jose.0002" + string(rune('0'+i)))
		a.Status = status
		require.NoError(t, s.UpsertArticle(ctx, a))
	}

	counts, err := s.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts["published"])
	assert.Equal(t, 1, counts["under review"])
}

func TestSaveFrontMatterAppends(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	// front_matter is an archive, not an upsert target: duplicates append.
	require.NoError(t, s.SaveFrontMatter(ctx, "https://jose.theoj.org/papers?page=1", "<html/>", 1))
	require.NoError(t, s.SaveFrontMatter(ctx, "https://jose.theoj.org/papers?page=1", "<html/>", 1))

	var n int
	require.NoError(t, s.db.QueryRow(`SELECT count(*) FROM front_matter`).Scan(&n))
	assert.Equal(t, 2, n)
}

func TestOpenCreatesSchemaOnce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jose.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.UpsertArticle(context.Background(), sampleArticle("https://jose.theoj.org/papers/10.21105/jose.00030")))
	require.NoError(t, s1.Close())

	// Reopening must keep existing rows.
	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	n, err := s2.CountArticles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
