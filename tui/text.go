package tui

// UI Text Constants
const (
	TextTitle = "Daily Feed Preview"

	TextFooterRunning  = "Press 'q' or Ctrl+C to quit"
	TextFooterComplete = "↑/↓ or j/k to scroll | 'r' to run again | 'q' to quit"
	TextFooterError    = "Press 'r' to retry | 'q' to quit"

	TextNothingToSend = "Nothing found for today; the run would send the \"No Content\" notice."
)
