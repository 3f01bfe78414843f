// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists harvested article records in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/jose-harvester/pkg/types"
)

// Store owns the article database handle for the duration of a run.
// The caller opens it, passes it down, and closes it when done; there
// is no package-level connection.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database at path and creates the
// schema if it does not exist.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS articles (
			url TEXT PRIMARY KEY,
			title TEXT,
			authors TEXT,
			publication_date TEXT,
			status TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS front_matter (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			url TEXT NOT NULL,
			html TEXT NOT NULL,
			page INTEGER NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

const upsertArticleSQL = `INSERT INTO articles (url, title, authors, publication_date, status)
	 VALUES (?, ?, ?, ?, ?)
	 ON CONFLICT(url) DO UPDATE SET
		title=excluded.title, authors=excluded.authors,
		publication_date=excluded.publication_date, status=excluded.status`

// UpsertArticle inserts or updates one record keyed on its URL.
func (s *Store) UpsertArticle(ctx context.Context, a types.Article) error {
	if a.URL == "" {
		return fmt.Errorf("article has no URL")
	}
	_, err := s.db.ExecContext(ctx, upsertArticleSQL,
		a.URL, a.Title, a.AuthorsJoined(), a.PublicationDate, a.Status)
	if err != nil {
		return fmt.Errorf("upserting article %s: %w", a.URL, err)
	}
	return nil
}

// UpsertPage writes one listing page's records in a single transaction.
func (s *Store) UpsertPage(ctx context.Context, articles []types.Article) error {
	if len(articles) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertArticleSQL)
	if err != nil {
		return fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	for _, a := range articles {
		if a.URL == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx,
			a.URL, a.Title, a.AuthorsJoined(), a.PublicationDate, a.Status); err != nil {
			return fmt.Errorf("upserting article %s: %w", a.URL, err)
		}
	}
	return tx.Commit()
}

// SaveFrontMatter archives the raw HTML of one listing page.
func (s *Store) SaveFrontMatter(ctx context.Context, url, html string, page int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO front_matter (url, html, page) VALUES (?, ?, ?)`,
		url, html, page)
	if err != nil {
		return fmt.Errorf("saving front matter for page %d: %w", page, err)
	}
	return nil
}

// CountArticles returns the number of rows in the articles table.
func (s *Store) CountArticles(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM articles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting articles: %w", err)
	}
	return n, nil
}

// CountByStatus returns row counts grouped by status, for the stats command.
func (s *Store) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT status, count(*) FROM articles GROUP BY status ORDER BY count(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("counting by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scanning status count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// ListArticles returns every record ordered by URL, for export.
func (s *Store) ListArticles(ctx context.Context) ([]types.Article, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT url, title, authors, publication_date, status FROM articles ORDER BY url`)
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}
	defer rows.Close()

	var articles []types.Article
	for rows.Next() {
		var a types.Article
		var authors string
		if err := rows.Scan(&a.URL, &a.Title, &authors, &a.PublicationDate, &a.Status); err != nil {
			return nil, fmt.Errorf("scanning article: %w", err)
		}
		a.Authors = types.SplitAuthors(authors)
		articles = append(articles, a)
	}
	return articles, rows.Err()
}
