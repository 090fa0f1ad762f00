package ainews

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"dailyfeed/logger"
)

// ArchiveDate formats date the way the archive prints it, e.g. "March 7, 2025".
func ArchiveDate(date time.Time) string {
	return date.Format("January 2, 2006")
}

// FindArticleLink scans the archive listing for the issue dated date and
// returns its absolute URL. ErrNoArticle is returned when no issue matches.
func (s *Scraper) FindArticleLink(ctx context.Context, date time.Time) (string, error) {
	doc, err := s.fetchDocument(ctx, s.archiveURL)
	if err != nil {
		return "", fmt.Errorf("archive page: %w", err)
	}

	want := ArchiveDate(date)
	href := MatchArchiveLink(doc, want)
	if href == "" {
		return "", fmt.Errorf("%w: %s", ErrNoArticle, want)
	}

	resolved, err := resolveLink(s.archiveURL, href)
	if err != nil {
		return "", fmt.Errorf("article link %q: %w", href, err)
	}
	s.log.Info("found article", logger.String("date", want), logger.String("url", resolved))
	return resolved, nil
}

// MatchArchiveLink returns the href of the link enclosing the first archive
// item whose metadata mentions dateText, or "".
func MatchArchiveLink(doc *goquery.Document, dateText string) string {
	var href string
	doc.Find("div.email").EachWithBreak(func(_ int, email *goquery.Selection) bool {
		metadata := email.Find("div.email-metadata").First()
		if metadata.Length() == 0 || !strings.Contains(strippedText(metadata), dateText) {
			return true
		}
		link, ok := email.Closest("a").Attr("href")
		if !ok {
			return true
		}
		href = link
		return false
	})
	return href
}

// strippedText concatenates every text node below sel with surrounding
// whitespace removed from each.
func strippedText(sel *goquery.Selection) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(strings.TrimSpace(n.Data))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return b.String()
}

func resolveLink(base, href string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", err
	}
	return baseURL.ResolveReference(ref).String(), nil
}
