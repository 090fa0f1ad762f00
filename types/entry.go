// Package types holds the records that flow through one digest run. None of
// them outlive the run.
package types

import (
	"time"
	"unicode/utf8"
)

// SourceType names the kind of a configured source.
type SourceType string

const (
	SourceRSS  SourceType = "rss"
	SourceAtom SourceType = "atom"
)

// IsFeed reports whether the extractor knows how to read this source type.
func (t SourceType) IsFeed() bool {
	return t == SourceRSS || t == SourceAtom
}

// Source is one line of the source list.
type Source struct {
	Type SourceType `json:"type"`
	URL  string     `json:"url"`
}

// FeedEntry is a feed item published on the run's target day.
type FeedEntry struct {
	Title      string     `json:"title"`
	Link       string     `json:"link"`
	Snippet    string     `json:"snippet"`
	Source     string     `json:"source"`
	SourceType SourceType `json:"source_type"`
	Date       time.Time  `json:"date"`
}

// ArticleContent is the scraped AI News issue for the target day.
type ArticleContent struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	// Content is the extracted HTML fragment.
	Content string `json:"content"`
	// Text is a plain-text rendition of Content, empty when none could be made.
	Text   string `json:"text,omitempty"`
	Source string `json:"source"`
}

// DayKey formats t as its UTC calendar day, the only granularity used to match
// items against a run.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Truncate returns the first n characters of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
