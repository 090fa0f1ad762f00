package tui

import (
	"fmt"
	"strings"

	"dailyfeed/digest"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	// Title
	b.WriteString(TitleStyle.Render(fmt.Sprintf("📰 %s - %s", TextTitle, digest.FormatDate(m.Today))))
	b.WriteString("\n\n")

	// Current state
	b.WriteString(m.getStateText())
	b.WriteString("\n\n")

	// Statistics
	if m.State != StateCollecting {
		stats := fmt.Sprintf("📊 Feed entries: %d", len(m.Entries))
		if m.Article != nil {
			stats += " | AI News: yes"
		} else if m.State != StateScraping {
			stats += " | AI News: no"
		}
		b.WriteString(InfoStyle.Render(stats))
		b.WriteString("\n\n")
	}

	// Logs
	if len(m.Logs) > 0 && m.State != StateComplete {
		b.WriteString(InfoStyle.Render("📝 Recent Activity:"))
		b.WriteString("\n")
		for _, logMsg := range m.Logs {
			b.WriteString(InfoStyle.Render("   " + logMsg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	// Digest
	if m.State == StateComplete {
		b.WriteString(BoxStyle.Render(m.visibleDigest()))
		b.WriteString("\n\n")
	}

	// Help text
	switch m.State {
	case StateComplete, StateEmpty:
		b.WriteString(HighlightStyle.Render(TextFooterComplete))
	case StateError:
		b.WriteString(InfoStyle.Render(TextFooterError))
	default:
		b.WriteString(InfoStyle.Render(TextFooterRunning))
	}

	return b.String()
}

// visibleDigest is the page of the text digest starting at Scroll.
func (m Model) visibleDigest() string {
	lines := m.digestLines()
	start := min(m.Scroll, len(lines))
	end := min(start+m.pageSize(), len(lines))
	return strings.Join(lines[start:end], "\n")
}
