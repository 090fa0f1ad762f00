package tui

import (
	"dailyfeed/digest"
	"dailyfeed/summarizer"
	"dailyfeed/types"
)

// Messages for the tea program, one per pipeline step.

// FeedsCollectedMsg is sent when the feed sources have been read.
type FeedsCollectedMsg struct {
	Entries []types.FeedEntry
}

// ArticleScrapedMsg is sent when the AI News lookup finishes. Article is nil
// when there is no issue for the day.
type ArticleScrapedMsg struct {
	Article *types.ArticleContent
}

// SummaryReadyMsg carries the summarizer result.
type SummaryReadyMsg struct {
	Result summarizer.Result
}

// DigestRenderedMsg carries the rendered digest.
type DigestRenderedMsg struct {
	Digest digest.Digest
	Err    error
}
