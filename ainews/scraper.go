// Package ainews finds the AI News issue for a given day on the buttondown
// archive and extracts the Twitter recap section from it.
package ainews

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"dailyfeed/config"
	"dailyfeed/logger"
	"dailyfeed/types"
)

// ErrNoArticle means the archive lists no issue for the requested day.
var ErrNoArticle = errors.New("no article for date")

// Scraper pulls one AI News issue per day.
type Scraper struct {
	client     *http.Client
	archiveURL string
	startID    string
	endMarker  string
	log        logger.Logger
}

// Option customizes a Scraper.
type Option func(*Scraper)

// WithArchiveURL points the scraper at a different archive listing.
func WithArchiveURL(u string) Option {
	return func(s *Scraper) { s.archiveURL = u }
}

// WithMarkers overrides the start heading id and the end marker text.
func WithMarkers(startID, endMarker string) Option {
	return func(s *Scraper) {
		s.startID = startID
		s.endMarker = endMarker
	}
}

// NewScraper returns a Scraper using client for every fetch.
func NewScraper(client *http.Client, log logger.Logger, opts ...Option) *Scraper {
	s := &Scraper{
		client:     client,
		archiveURL: config.ArchiveURL,
		startID:    config.ArticleStartID,
		endMarker:  config.ArticleEndMarker,
		log:        log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scrape returns the issue published on date, or nil when there is none or
// anything goes wrong along the way.
func (s *Scraper) Scrape(ctx context.Context, date time.Time) *types.ArticleContent {
	article, err := s.scrape(ctx, date)
	if err != nil {
		if errors.Is(err, ErrNoArticle) {
			s.log.Warn("no AI News article found", logger.String("date", types.DayKey(date)))
		} else {
			s.log.Error("error scraping AI News", logger.Error(err))
		}
		return nil
	}
	return article
}

func (s *Scraper) scrape(ctx context.Context, date time.Time) (*types.ArticleContent, error) {
	articleURL, err := s.FindArticleLink(ctx, date)
	if err != nil {
		return nil, err
	}

	content, err := s.ScrapeContent(ctx, articleURL)
	if err != nil {
		return nil, err
	}

	return &types.ArticleContent{
		Title:   fmt.Sprintf("AI News for %s", date.Format("2006-01-02")),
		Link:    articleURL,
		Snippet: Snippet(content),
		Content: content,
		Text:    PlainText(content, articleURL, s.log),
		Source:  config.ArticleSource,
	}, nil
}

// Snippet is the first ArticleSnippetLength characters of content, with an
// ellipsis only when something was cut.
func Snippet(content string) string {
	if utf8.RuneCountInString(content) > config.ArticleSnippetLength {
		return types.Truncate(content, config.ArticleSnippetLength) + "..."
	}
	return content
}

func (s *Scraper) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; dailyfeed/1.0)")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("failed to fetch %s: status code %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}
