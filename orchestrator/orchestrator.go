// Package orchestrator runs one end-to-end digest cycle: collect, scrape,
// summarize, render and deliver.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"

	"dailyfeed/config"
	"dailyfeed/digest"
	"dailyfeed/logger"
	"dailyfeed/notifier"
	"dailyfeed/summarizer"
	"dailyfeed/types"
)

const (
	BodySuccess   = "Daily Feed Summary process completed successfully"
	BodyNoContent = "Daily Feed Summary - No content found"
)

// FeedCollector gathers the target day's feed entries.
type FeedCollector interface {
	Collect(ctx context.Context, target time.Time, sources []types.Source) []types.FeedEntry
}

// ArticleScraper returns the target day's AI News issue, or nil.
type ArticleScraper interface {
	Scrape(ctx context.Context, date time.Time) *types.ArticleContent
}

// Summarizer condenses the collected text.
type Summarizer interface {
	Summarize(ctx context.Context, text string) summarizer.Result
}

// Notifier delivers a message and reports success.
type Notifier interface {
	Send(ctx context.Context, msg notifier.Message) bool
}

// RenderFunc builds the digest documents.
type RenderFunc func(entries []types.FeedEntry, article *types.ArticleContent, summary string, date time.Time) (digest.Digest, error)

// SourceFunc supplies the source list for a run.
type SourceFunc func() []types.Source

// Response is what every invocation surface reports back.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// Components are the collaborators of a run.
type Components struct {
	Sources    SourceFunc
	Feeds      FeedCollector
	Articles   ArticleScraper
	Summarizer Summarizer
	Render     RenderFunc
	Notifier   Notifier
	// Now defaults to time.Now. The run date is always taken in UTC.
	Now func() time.Time
}

// Orchestrator sequences a run.
type Orchestrator struct {
	c   Components
	log logger.Logger
}

// New returns an Orchestrator. A nil Render uses digest.Render.
func New(c Components, log logger.Logger) *Orchestrator {
	if log == nil {
		log = logger.NewNop()
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.Render == nil {
		c.Render = digest.Render
	}
	if c.Sources == nil {
		c.Sources = func() []types.Source { return nil }
	}
	return &Orchestrator{c: c, log: log}
}

// Report is everything a run produced before delivery.
type Report struct {
	Date    time.Time
	Entries []types.FeedEntry
	Article *types.ArticleContent
	// Empty is true when neither feeds nor AI News had anything for the day.
	// Summary and Digest are left zero in that case.
	Empty   bool
	Summary summarizer.Result
	Digest  digest.Digest
}

// Subject is the email subject for the report.
func (r *Report) Subject() string {
	if r.Empty {
		return fmt.Sprintf("Daily Feed Summary - No Content (%s)", types.DayKey(r.Date))
	}
	return fmt.Sprintf("Daily Feed Summary - %s", types.DayKey(r.Date))
}

// Message is the email carrying the report.
func (r *Report) Message() notifier.Message {
	if r.Empty {
		day := types.DayKey(r.Date)
		return notifier.Message{
			Subject: r.Subject(),
			HTML:    fmt.Sprintf("<p>No new content was found for %s.</p>", day),
			Text:    fmt.Sprintf("No new content was found for %s.", day),
		}
	}
	return notifier.Message{
		Subject: r.Subject(),
		HTML:    r.Digest.HTML,
		Text:    r.Digest.Text,
	}
}

// Today is the run date, in UTC.
func (o *Orchestrator) Today() time.Time {
	return o.c.Now().UTC()
}

// CollectFeeds loads the source list and gathers today's feed entries.
func (o *Orchestrator) CollectFeeds(ctx context.Context, today time.Time) []types.FeedEntry {
	return o.c.Feeds.Collect(ctx, today, o.c.Sources())
}

// ScrapeArticle returns today's AI News issue, or nil.
func (o *Orchestrator) ScrapeArticle(ctx context.Context, today time.Time) *types.ArticleContent {
	return o.c.Articles.Scrape(ctx, today)
}

// Summarize builds the summarizer input and asks for a summary.
func (o *Orchestrator) Summarize(ctx context.Context, entries []types.FeedEntry, article *types.ArticleContent) summarizer.Result {
	return o.c.Summarizer.Summarize(ctx, SummaryInput(entries, article))
}

// Render builds the digest documents.
func (o *Orchestrator) Render(entries []types.FeedEntry, article *types.ArticleContent, summary summarizer.Result, today time.Time) (digest.Digest, error) {
	return o.c.Render(entries, article, summary.String(), today)
}

// Prepare collects, summarizes and renders without delivering anything.
func (o *Orchestrator) Prepare(ctx context.Context) (*Report, error) {
	today := o.Today()
	o.log.Info("processing feeds for date",
		logger.String("date", types.DayKey(today)),
		logger.Time("now", today),
	)
	report := &Report{Date: today}

	// Step 1: feed entries from the source list
	report.Entries = o.CollectFeeds(ctx, today)

	// Step 2: AI News issue
	report.Article = o.ScrapeArticle(ctx, today)

	// skipped sources look like an empty day once the context is gone
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("collection interrupted: %w", err)
	}

	if len(report.Entries) == 0 && report.Article == nil {
		o.log.Warn("no content found for today")
		report.Empty = true
		return report, nil
	}

	// Step 3: summary
	report.Summary = o.Summarize(ctx, report.Entries, report.Article)

	// Step 4: digest
	d, err := o.Render(report.Entries, report.Article, report.Summary, today)
	if err != nil {
		return nil, err
	}
	report.Digest = d
	return report, nil
}

// Run performs one full cycle and never returns an error: failures become a
// 500 response after a best-effort error email. Every log line of the cycle
// carries a fresh run_id.
func (o *Orchestrator) Run(ctx context.Context) Response {
	scoped := *o
	scoped.log = o.log.With(logger.String("run_id", uuid.NewString()))
	return scoped.run(ctx)
}

func (o *Orchestrator) run(ctx context.Context) (resp Response) {
	start := time.Now()
	o.log.Info("starting Daily Feed Summary process")
	today := o.Today()

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic: %v", r)
			resp = o.fail(ctx, today, err, string(debug.Stack()))
		}
	}()

	report, err := o.Prepare(ctx)
	if err != nil {
		return o.fail(ctx, today, err, string(debug.Stack()))
	}

	o.c.Notifier.Send(ctx, report.Message())
	if report.Empty {
		return Response{StatusCode: http.StatusOK, Body: BodyNoContent}
	}

	o.log.Info("Daily Feed Summary completed successfully",
		logger.Int("entries", len(report.Entries)),
		logger.Bool("article", report.Article != nil),
		logger.Bool("summary_ok", report.Summary.OK()),
		logger.Duration("elapsed", time.Since(start)),
	)
	return Response{StatusCode: http.StatusOK, Body: BodySuccess}
}

func (o *Orchestrator) fail(ctx context.Context, today time.Time, err error, stack string) Response {
	detail := fmt.Sprintf("Error in Daily Feed Summary: %v\n%s", err, stack)
	o.log.Error("Daily Feed Summary failed", logger.Error(err), logger.String("stack", stack))

	msg := notifier.Message{
		Subject: fmt.Sprintf("Daily Feed Summary - ERROR (%s)", types.DayKey(today)),
		HTML: "<p>An error occurred during the Daily Feed Summary process:</p><pre>" +
			html.EscapeString(detail) + "</pre>",
		Text: "An error occurred during the Daily Feed Summary process:\n\n" + detail,
	}
	if !o.sendSafely(ctx, msg) {
		o.log.Error("failed to send error notification")
	}
	return Response{StatusCode: http.StatusInternalServerError, Body: fmt.Sprintf("Error: %v", err)}
}

func (o *Orchestrator) sendSafely(ctx context.Context, msg notifier.Message) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			o.log.Error("error notification panicked", logger.Error(errors.New(fmt.Sprint(r))))
			ok = false
		}
	}()
	return o.c.Notifier.Send(context.WithoutCancel(ctx), msg)
}

// SummaryInput is the text handed to the summarizer: every entry's title and
// the first few characters of its body, then the AI News snippet.
func SummaryInput(entries []types.FeedEntry, article *types.ArticleContent) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "Title: %s\n%s...\n\n", e.Title, types.Truncate(e.Snippet, config.BlobSnippetLength))
	}
	if article != nil {
		fmt.Fprintf(&b, "AI News: %s\n%s\n\n", article.Title, article.Snippet)
	}
	return b.String()
}
