package ainews

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"

	"dailyfeed/logger"
)

var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true, "tr": true, "table": true,
	"section": true, "article": true, "header": true, "footer": true,
}

// PlainText renders an HTML fragment as readable text for the plain-text
// digest, one block element per line and list items prefixed with "- ".
// Readability cleans the markup first; short fragments it rejects are
// rendered from the raw markup.
func PlainText(fragment, pageURL string, log logger.Logger) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}

	parsed, err := url.Parse(pageURL)
	if err != nil {
		parsed = &url.URL{}
	}

	article, err := readability.FromReader(strings.NewReader(fragment), parsed)
	if err == nil && article.Node != nil {
		if text := nodeText(article.Node); text != "" {
			return text
		}
	} else if err != nil {
		log.Debug("readability extraction failed", logger.Error(err))
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil || len(doc.Nodes) == 0 {
		return ""
	}
	return nodeText(doc.Nodes[0])
}

// nodeText flattens n to text with a line break at every block boundary.
func nodeText(n *html.Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return collapseBlankLines(b.String())
}

func writeNode(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(strings.NewReplacer("\n", " ", "\r", " ", "\t", " ").Replace(n.Data))
		return
	case html.ElementNode:
		switch n.Data {
		case "script", "style", "noscript":
			return
		}
	}

	block := n.Type == html.ElementNode && blockElements[n.Data]
	if block {
		b.WriteByte('\n')
		if n.Data == "li" {
			b.WriteString("- ")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeNode(b, c)
	}
	if block {
		b.WriteByte('\n')
	}
}

func collapseBlankLines(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" && line != "-" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
