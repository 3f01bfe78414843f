package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "jose-harvester/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// HarvestConfig holds settings for a harvest run.
type HarvestConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the listing endpoint; the page index is appended as
	// a ?page=N query parameter.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// StartPage is the first page index to fetch (default 1).
	StartPage int `json:"start_page" yaml:"start_page"`

	// MaxPages caps the number of listing pages fetched in one run.
	// Zero means no cap; pagination ends at the first empty page.
	MaxPages int `json:"max_pages" yaml:"max_pages"`

	// PageDelay is the delay between consecutive page fetches (default 1s).
	PageDelay time.Duration `json:"page_delay" yaml:"page_delay"`

	// Enrich refetches each harvested article page after pagination and
	// refines the record from its citation front matter.
	Enrich bool `json:"enrich" yaml:"enrich"`

	// ArchiveHTML stores the raw HTML of each listing page in the
	// front_matter table.
	ArchiveHTML bool `json:"archive_html" yaml:"archive_html"`
}

// StoreConfig holds settings for the article store.
type StoreConfig struct {
	// DatabasePath is the SQLite database file (default ./jose.db).
	DatabasePath string `json:"database_path" yaml:"database_path"`
}
