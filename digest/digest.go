// Package digest renders the daily email body in HTML and plain text.
package digest

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"

	"dailyfeed/types"
)

// DateLayout is how the run date appears in the digest.
const DateLayout = "Monday, January 02, 2006"

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	htmlTmpl = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/digest.html.tmpl"))
	textTmpl = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/digest.txt.tmpl"))
)

// Digest is one rendered email body.
type Digest struct {
	HTML string
	Text string
}

type entryView struct {
	Title   string
	Link    string
	Source  string
	Snippet htmltemplate.HTML
}

type articleView struct {
	Title   string
	Link    string
	Source  string
	Content htmltemplate.HTML
	// Body is what the text digest shows.
	Body string
}

type view struct {
	Date    string
	Summary string
	Entries []entryView
	Article *articleView
}

// FormatDate renders date the way the digest headings show it.
func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}

// Render builds both digest documents. Feed snippets and article content are
// HTML fragments and are inserted as-is; every other field is escaped.
func Render(entries []types.FeedEntry, article *types.ArticleContent, summary string, date time.Time) (Digest, error) {
	v := view{
		Date:    FormatDate(date),
		Summary: summary,
		Entries: make([]entryView, 0, len(entries)),
	}
	for _, e := range entries {
		v.Entries = append(v.Entries, entryView{
			Title:   e.Title,
			Link:    e.Link,
			Source:  e.Source,
			Snippet: htmltemplate.HTML(e.Snippet),
		})
	}
	if article != nil {
		body := article.Text
		if body == "" {
			body = article.Content
		}
		v.Article = &articleView{
			Title:   article.Title,
			Link:    article.Link,
			Source:  article.Source,
			Content: htmltemplate.HTML(article.Content),
			Body:    body,
		}
	}

	var htmlBuf, textBuf bytes.Buffer
	if err := htmlTmpl.Execute(&htmlBuf, v); err != nil {
		return Digest{}, fmt.Errorf("render html digest: %w", err)
	}
	if err := textTmpl.Execute(&textBuf, v); err != nil {
		return Digest{}, fmt.Errorf("render text digest: %w", err)
	}
	return Digest{HTML: htmlBuf.String(), Text: textBuf.String()}, nil
}
