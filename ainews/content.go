package ainews

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"dailyfeed/logger"
)

// Fragment is the HTML found between the start heading and the end marker.
type Fragment struct {
	Chunks []string
	// StartFound is false when the start heading is missing from the page.
	StartFound bool
	// EndFound is false when the walk ran off the end of the document.
	EndFound bool
}

// String joins the chunks one per line.
func (f Fragment) String() string {
	return strings.Join(f.Chunks, "\n")
}

// ScrapeContent fetches the article and returns the fragment between the
// configured markers. A missing start heading yields an empty fragment; a
// missing end marker yields everything after the heading.
func (s *Scraper) ScrapeContent(ctx context.Context, articleURL string) (string, error) {
	doc, err := s.fetchDocument(ctx, articleURL)
	if err != nil {
		return "", fmt.Errorf("article page: %w", err)
	}

	frag, err := ExtractFragment(doc, s.startID, s.endMarker)
	if err != nil {
		return "", err
	}
	switch {
	case !frag.StartFound:
		s.log.Error("start marker not found", logger.String("id", s.startID), logger.String("url", articleURL))
	case !frag.EndFound:
		s.log.Warn("end marker not found, content may be incomplete", logger.String("url", articleURL))
	default:
		s.log.Info("content extracted", logger.Int("chunks", len(frag.Chunks)))
	}
	return frag.String(), nil
}

// ExtractFragment walks the siblings following the h1 with id startID,
// collecting their HTML until one contains endMarker.
func ExtractFragment(doc *goquery.Document, startID, endMarker string) (Fragment, error) {
	start := doc.Find("h1#" + startID).First()
	if start.Length() == 0 {
		return Fragment{}, nil
	}

	node := start.Nodes[0]
	first, err := renderNode(node)
	if err != nil {
		return Fragment{}, err
	}
	frag := Fragment{Chunks: []string{first}, StartFound: true}

	for n := node.NextSibling; n != nil; n = n.NextSibling {
		chunk, err := renderNode(n)
		if err != nil {
			return Fragment{}, err
		}
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		if strings.Contains(chunk, endMarker) {
			frag.EndFound = true
			break
		}
		frag.Chunks = append(frag.Chunks, chunk)
	}
	return frag, nil
}

func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", fmt.Errorf("render node: %w", err)
	}
	return buf.String(), nil
}
