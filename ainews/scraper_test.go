package ainews_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailyfeed/ainews"
	"dailyfeed/logger"
)

const archiveHTML = `<!DOCTYPE html>
<html><body>
  <a href="/ainews/archive/ainews-older/">
    <div class="email">
      <div class="email-metadata"><span>March 6, 2025</span></div>
    </div>
  </a>
  <a href="/ainews/archive/ainews-today/">
    <div class="email">
      <div class="email-metadata">
        <span>
          March 7, 2025
        </span>
      </div>
    </div>
  </a>
  <a href="/ainews/archive/ainews-duplicate/">
    <div class="email">
      <div class="email-metadata">March 7, 2025</div>
    </div>
  </a>
</body></html>`

const issueHTML = `<!DOCTYPE html>
<html><body>
  <p>Intro that is not collected.</p>
  <h1 id="ai-twitter-recap">AI Twitter Recap</h1>
  <p>First recap paragraph.</p>
  <ul><li>Model release</li></ul>
  <h1>PART 1: High level Discord summaries</h1>
  <p>Never collected.</p>
</body></html>`

const issueNoEndHTML = `<!DOCTYPE html>
<html><body>
  <h1 id="ai-twitter-recap">AI Twitter Recap</h1>
  <p>Only paragraph.</p>
</body></html>`

var march7 = time.Date(2025, 3, 7, 12, 0, 0, 0, time.UTC)

func newSite(t *testing.T, issue string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ainews/archive/", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ainews/archive/":
			_, _ = w.Write([]byte(archiveHTML))
		case "/ainews/archive/ainews-today/":
			_, _ = w.Write([]byte(issue))
		default:
			http.NotFound(w, r)
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newScraper(srv *httptest.Server, log logger.Logger) *ainews.Scraper {
	return ainews.NewScraper(srv.Client(), log, ainews.WithArchiveURL(srv.URL+"/ainews/archive/"))
}

func TestArchiveDateDropsLeadingZero(t *testing.T) {
	assert.Equal(t, "March 7, 2025", ainews.ArchiveDate(march7))
	assert.Equal(t, "March 17, 2025", ainews.ArchiveDate(march7.AddDate(0, 0, 10)))
}

func TestScrapeFindsIssueAndExtractsRecap(t *testing.T) {
	srv := newSite(t, issueHTML)

	article := newScraper(srv, logger.NewNop()).Scrape(context.Background(), march7)
	require.NotNil(t, article)

	assert.Equal(t, "AI News for 2025-03-07", article.Title)
	assert.Equal(t, srv.URL+"/ainews/archive/ainews-today/", article.Link)
	assert.Equal(t, "buttondown.com/ainews", article.Source)
	assert.True(t, strings.HasPrefix(article.Content, `<h1 id="ai-twitter-recap">AI Twitter Recap</h1>`))
	assert.Contains(t, article.Content, "<p>First recap paragraph.</p>")
	assert.Contains(t, article.Content, "<ul><li>Model release</li></ul>")
	assert.NotContains(t, article.Content, "PART 1")
	assert.NotContains(t, article.Content, "Never collected")
	assert.NotContains(t, article.Content, "Intro")
	assert.Equal(t, article.Content, article.Snippet)
	assert.NotEmpty(t, article.Text)
	assert.NotContains(t, article.Text, "<p>")
}

func TestScrapeWithoutEndMarkerKeepsRest(t *testing.T) {
	srv := newSite(t, issueNoEndHTML)
	log, logs := logger.NewObserved()

	article := newScraper(srv, log).Scrape(context.Background(), march7)
	require.NotNil(t, article)

	assert.Contains(t, article.Content, "<p>Only paragraph.</p>")
	assert.Equal(t, 1, logs.FilterMessage("end marker not found, content may be incomplete").Len())
}

func TestScrapeNoMatchingDate(t *testing.T) {
	srv := newSite(t, issueHTML)
	log, logs := logger.NewObserved()

	article := newScraper(srv, log).Scrape(context.Background(), march7.AddDate(0, 0, 5))

	assert.Nil(t, article)
	assert.Equal(t, 1, logs.FilterMessage("no AI News article found").Len())
}

func TestScrapeArchiveFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	article := ainews.NewScraper(srv.Client(), logger.NewNop(), ainews.WithArchiveURL(srv.URL)).
		Scrape(context.Background(), march7)
	assert.Nil(t, article)
}

func TestScrapeArticleFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ainews/archive/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ainews/archive/" {
			_, _ = w.Write([]byte(archiveHTML))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	assert.Nil(t, newScraper(srv, logger.NewNop()).Scrape(context.Background(), march7))
}

func TestScrapeMissingStartHeadingYieldsEmptyContent(t *testing.T) {
	srv := newSite(t, `<html><body><p>No recap here.</p></body></html>`)

	article := newScraper(srv, logger.NewNop()).Scrape(context.Background(), march7)
	require.NotNil(t, article)
	assert.Empty(t, article.Content)
	assert.Empty(t, article.Snippet)
	assert.Empty(t, article.Text)
}

func TestMatchArchiveLinkFirstMatchWins(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(archiveHTML))
	require.NoError(t, err)

	assert.Equal(t, "/ainews/archive/ainews-today/", ainews.MatchArchiveLink(doc, "March 7, 2025"))
	assert.Empty(t, ainews.MatchArchiveLink(doc, "March 8, 2025"))
}

func TestExtractFragmentSkipsWhitespaceNodes(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(issueHTML))
	require.NoError(t, err)

	frag, err := ainews.ExtractFragment(doc, "ai-twitter-recap", "PART 1: High level Discord summaries")
	require.NoError(t, err)

	assert.True(t, frag.StartFound)
	assert.True(t, frag.EndFound)
	assert.Equal(t, []string{
		`<h1 id="ai-twitter-recap">AI Twitter Recap</h1>`,
		"<p>First recap paragraph.</p>",
		"<ul><li>Model release</li></ul>",
	}, frag.Chunks)
}

func TestSnippetEllipsisOnlyWhenCut(t *testing.T) {
	short := strings.Repeat("a", 500)
	long := strings.Repeat("b", 501)

	assert.Equal(t, short, ainews.Snippet(short))
	assert.Equal(t, strings.Repeat("b", 500)+"...", ainews.Snippet(long))
}

func TestPlainTextEmptyFragment(t *testing.T) {
	assert.Empty(t, ainews.PlainText("  ", "https://example.com", logger.NewNop()))
}

func recapFragment(sections, items int) string {
	var b strings.Builder
	b.WriteString(`<h1 id="ai-twitter-recap">AI Twitter Recap</h1>`)
	for i := 0; i < sections; i++ {
		fmt.Fprintf(&b, "<h2>SECTION%d</h2><ul>", i)
		for j := 0; j < items; j++ {
			fmt.Fprintf(&b, "<li>@user%d said the new release changes how agents are evaluated ITEM%d_%d</li>", j, i, j)
		}
		b.WriteString("</ul>")
	}
	return b.String()
}

func TestPlainTextKeepsListItemsOnSeparateLines(t *testing.T) {
	text := ainews.PlainText(recapFragment(6, 8), "https://buttondown.com/ainews/archive/x/", logger.NewNop())
	lines := strings.Split(text, "\n")

	found := 0
	for _, line := range lines {
		if !strings.Contains(line, "ITEM") {
			continue
		}
		found++
		assert.True(t, strings.HasPrefix(line, "- @user"), line)
		assert.Equal(t, 1, strings.Count(line, "ITEM"), line)
	}
	assert.Equal(t, 48, found)
	assert.Contains(t, lines, "SECTION0")
}

func TestPlainTextShortFragment(t *testing.T) {
	text := ainews.PlainText("<p>One</p><ul><li>A</li><li>B</li></ul>", "https://example.com", logger.NewNop())
	lines := strings.Split(text, "\n")

	assert.Contains(t, lines, "- A")
	assert.Contains(t, lines, "- B")
}

func TestScrapeWithCustomMarkers(t *testing.T) {
	srv := newSite(t, `<html><body>
  <h1 id="ai-reddit-recap">AI Reddit Recap</h1>
  <p>Reddit paragraph.</p>
  <h1>STOP HERE</h1>
  <p>After the stop.</p>
</body></html>`)

	article := ainews.NewScraper(srv.Client(), logger.NewNop(),
		ainews.WithArchiveURL(srv.URL+"/ainews/archive/"),
		ainews.WithMarkers("ai-reddit-recap", "STOP HERE"),
	).Scrape(context.Background(), march7)
	require.NotNil(t, article)

	assert.Contains(t, article.Content, "<p>Reddit paragraph.</p>")
	assert.NotContains(t, article.Content, "After the stop.")
}
