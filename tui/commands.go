package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"dailyfeed/summarizer"
	"dailyfeed/types"
)

// collectFeeds creates a command that reads every configured feed
func collectFeeds(ctx context.Context, p Pipeline, today time.Time) tea.Cmd {
	return func() tea.Msg {
		return FeedsCollectedMsg{Entries: p.CollectFeeds(ctx, today)}
	}
}

// scrapeArticle creates a command that looks up today's AI News issue
func scrapeArticle(ctx context.Context, p Pipeline, today time.Time) tea.Cmd {
	return func() tea.Msg {
		return ArticleScrapedMsg{Article: p.ScrapeArticle(ctx, today)}
	}
}

// summarize creates a command that asks the language model for a summary
func summarize(ctx context.Context, p Pipeline, entries []types.FeedEntry, article *types.ArticleContent) tea.Cmd {
	return func() tea.Msg {
		return SummaryReadyMsg{Result: p.Summarize(ctx, entries, article)}
	}
}

// render creates a command that builds the digest documents
func render(p Pipeline, entries []types.FeedEntry, article *types.ArticleContent, summary summarizer.Result, today time.Time) tea.Cmd {
	return func() tea.Msg {
		d, err := p.Render(entries, article, summary, today)
		return DigestRenderedMsg{Digest: d, Err: err}
	}
}
