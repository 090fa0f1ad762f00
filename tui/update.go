package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.Height = msg.Height
		return m, nil
	case FeedsCollectedMsg:
		return m.handleFeedsCollected(msg)
	case ArticleScrapedMsg:
		return m.handleArticleScraped(msg)
	case SummaryReadyMsg:
		return m.handleSummaryReady(msg)
	case DigestRenderedMsg:
		return m.handleDigestRendered(msg)
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r", "R":
		if m.State == StateComplete || m.State == StateEmpty || m.State == StateError {
			return m.restart()
		}
	case "down", "j":
		if m.State == StateComplete && m.Scroll < m.maxScroll() {
			m.Scroll++
		}
	case "up", "k":
		if m.State == StateComplete && m.Scroll > 0 {
			m.Scroll--
		}
	}
	return m, nil
}

func (m Model) maxScroll() int {
	if n := len(m.digestLines()) - m.pageSize(); n > 0 {
		return n
	}
	return 0
}

// handleFeedsCollected moves on to the AI News lookup
func (m Model) handleFeedsCollected(msg FeedsCollectedMsg) (tea.Model, tea.Cmd) {
	m.Entries = msg.Entries
	m.State = StateScraping
	m = m.AddLog(fmt.Sprintf("Found %d feed entries", len(msg.Entries)))
	return m, scrapeArticle(m.ctx, m.pipeline, m.Today)
}

// handleArticleScraped stops early when there is nothing to summarize
func (m Model) handleArticleScraped(msg ArticleScrapedMsg) (tea.Model, tea.Cmd) {
	m.Article = msg.Article
	if msg.Article != nil {
		m = m.AddLog("AI News issue found: " + msg.Article.Title)
	} else {
		m = m.AddLog("No AI News issue for today")
	}

	if len(m.Entries) == 0 && m.Article == nil {
		m.State = StateEmpty
		return m, nil
	}
	m.State = StateSummarizing
	return m, summarize(m.ctx, m.pipeline, m.Entries, m.Article)
}

// handleSummaryReady renders the digest whether or not the summary succeeded
func (m Model) handleSummaryReady(msg SummaryReadyMsg) (tea.Model, tea.Cmd) {
	m.Summary = msg.Result
	if msg.Result.OK() {
		m = m.AddLog("Summary generated")
	} else {
		m = m.AddLog(fmt.Sprintf("Summary unavailable: %v", msg.Result.Err))
	}
	m.State = StateRendering
	return m, render(m.pipeline, m.Entries, m.Article, m.Summary, m.Today)
}

// handleDigestRendered shows the digest or the render error
func (m Model) handleDigestRendered(msg DigestRenderedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}
	m.Digest = msg.Digest
	m.State = StateComplete
	m = m.AddLog("Digest rendered")
	return m, nil
}
