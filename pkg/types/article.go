// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the entities and configuration shared across stages.
package types

import "strings"

// Article holds the bibliographic record extracted for one paper.
type Article struct {
	// URL is the canonical paper URL and the natural unique key.
	URL string `json:"url" yaml:"url"`

	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// PublicationDate is the publication date as shown by the source
	// site. Kept as text: listing pages show relative dates ("about a
	// month ago") while article front matter carries "2024/03/15".
	PublicationDate string `json:"publication_date" yaml:"publication_date"`

	// Status is the lowercased review badge ("published", "under review", ...).
	Status string `json:"status" yaml:"status"`
}

// AuthorsJoined flattens the author list into the single "; "-delimited
// string used by the articles table.
func (a Article) AuthorsJoined() string {
	return strings.Join(a.Authors, "; ")
}

// SplitAuthors is the inverse of AuthorsJoined for records read back
// from the store. An empty column yields a nil slice.
func SplitAuthors(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "; ")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
