// Package tui is a terminal preview of the day's digest. It runs every step of
// a real run except delivery.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"dailyfeed/digest"
	"dailyfeed/summarizer"
	"dailyfeed/types"
)

// Pipeline is the step-by-step view of a run the preview drives.
type Pipeline interface {
	Today() time.Time
	CollectFeeds(ctx context.Context, today time.Time) []types.FeedEntry
	ScrapeArticle(ctx context.Context, today time.Time) *types.ArticleContent
	Summarize(ctx context.Context, entries []types.FeedEntry, article *types.ArticleContent) summarizer.Result
	Render(entries []types.FeedEntry, article *types.ArticleContent, summary summarizer.Result, today time.Time) (digest.Digest, error)
}

// State represents the preview state machine
type State string

const (
	StateCollecting  State = "collecting"
	StateScraping    State = "scraping"
	StateSummarizing State = "summarizing"
	StateRendering   State = "rendering"
	StateEmpty       State = "empty"
	StateComplete    State = "complete"
	StateError       State = "error"
)

// maxLogs bounds the activity list.
const maxLogs = 8

// Model is the preview state.
type Model struct {
	ctx      context.Context
	pipeline Pipeline

	State   State
	Today   time.Time
	Entries []types.FeedEntry
	Article *types.ArticleContent
	Summary summarizer.Result
	Digest  digest.Digest
	Logs    []string
	Err     error

	// Scroll is the first digest line shown.
	Scroll int
	// Height is the terminal height, 0 until the first resize.
	Height int
}

// NewModel creates a preview model. ctx bounds every pipeline call.
func NewModel(ctx context.Context, p Pipeline) Model {
	return Model{
		ctx:      ctx,
		pipeline: p,
		State:    StateCollecting,
		Today:    p.Today(),
		Logs:     make([]string, 0, maxLogs),
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return collectFeeds(m.ctx, m.pipeline, m.Today)
}

// AddLog appends an activity line, keeping the most recent ones.
func (m Model) AddLog(msg string) Model {
	line := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), msg)
	m.Logs = append(m.Logs, line)
	if len(m.Logs) > maxLogs {
		m.Logs = m.Logs[len(m.Logs)-maxLogs:]
	}
	return m
}

// restart resets the model for another pass.
func (m Model) restart() (Model, tea.Cmd) {
	m.State = StateCollecting
	m.Today = m.pipeline.Today()
	m.Entries = nil
	m.Article = nil
	m.Summary = summarizer.Result{}
	m.Digest = digest.Digest{}
	m.Err = nil
	m.Scroll = 0
	m = m.AddLog("Starting over")
	return m, collectFeeds(m.ctx, m.pipeline, m.Today)
}

// getStateText returns the appropriate state message
func (m Model) getStateText() string {
	switch m.State {
	case StateCollecting:
		return StatusStyle.Render("⏳ Reading feeds...")
	case StateScraping:
		return StatusStyle.Render("🔍 Looking for today's AI News issue...")
	case StateSummarizing:
		return StatusStyle.Render("🧠 Summarizing...")
	case StateRendering:
		return StatusStyle.Render("📝 Rendering digest...")
	case StateEmpty:
		return WarningStyle.Render("📭 " + TextNothingToSend)
	case StateComplete:
		return HighlightStyle.Render("✅ Digest ready")
	case StateError:
		errMsg := "Unknown error"
		if m.Err != nil {
			errMsg = m.Err.Error()
		}
		return ErrorStyle.Render(fmt.Sprintf("❌ Error: %v", errMsg))
	default:
		return ""
	}
}

// digestLines is the text digest split for scrolling.
func (m Model) digestLines() []string {
	return strings.Split(strings.TrimRight(m.Digest.Text, "\n"), "\n")
}

// pageSize is how many digest lines fit under the header.
func (m Model) pageSize() int {
	if m.Height <= 0 {
		return 30
	}
	if n := m.Height - 16; n > 5 {
		return n
	}
	return 5
}
