// Package news holds the canonical article record plus the
// normalization and duplicate-detection logic shared by all sources.
package news

import "time"

// Article is the canonical record produced by one scrape pass.
type Article struct {
	Title       string
	Content     string
	SourceURL   string
	ImageURL    string // empty means no image
	Campus      string
	PublishedAt time.Time
}

// Stored is an article row already present in the database.
type Stored struct {
	ID          int64
	Title       string
	Content     string
	SourceURL   string
	ImageURL    string
	PublishedAt time.Time
}

// Candidate is the raw extractor output before normalization. URLs may
// still be relative and the date is a canonical "Month DD, YYYY" string.
type Candidate struct {
	Title     string
	Content   string
	SourceURL string
	ImageURL  string
	Campus    string
	Published string
}
