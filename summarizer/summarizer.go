// Package summarizer turns the day's collected text into a short digest
// summary using a hosted language model.
package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"dailyfeed/config"
	"dailyfeed/logger"
)

// ErrNoAPIKey is reported when the selected backend has no credential.
var ErrNoAPIKey = errors.New("summarizer API key not set")

const (
	// NoKeyText is rendered in place of a summary when no credential is configured.
	NoKeyText = "Summary not available (API key not set)"

	// SystemPrompt steers every backend towards the same digest summary.
	SystemPrompt = "You are a helpful assistant that summarizes news feed content. " +
		"Create a concise 4-5 sentence summary that captures the key information from the feeds. " +
		"Focus on new breakthroughs and new things that could have big impact rather than on some minor improvements. " +
		"List also 5 biggest things happening based on impact they could have"
)

// Request is a single completion call.
type Request struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// Completer is a language model backend.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
	Name() string
}

// Result is the outcome of a summarization. Text is always renderable: on
// failure it holds a human-readable placeholder and Err holds the cause.
type Result struct {
	Text string
	Err  error
}

// OK reports whether the summary came back from the model.
func (r Result) OK() bool { return r.Err == nil }

func (r Result) String() string { return r.Text }

// Summarizer wraps a Completer with input truncation and error reporting.
type Summarizer struct {
	completer Completer
	maxInput  int
	log       logger.Logger
}

// New returns a Summarizer. A nil completer means no credential is configured
// and every call yields the placeholder without any outbound request.
func New(completer Completer, log logger.Logger) *Summarizer {
	if log == nil {
		log = logger.NewNop()
	}
	return &Summarizer{
		completer: completer,
		maxInput:  config.MaxSummaryInput,
		log:       log,
	}
}

// Summarize asks the backend for a summary of text.
func (s *Summarizer) Summarize(ctx context.Context, text string) Result {
	if s.completer == nil {
		s.log.Error("summarizer API key not set")
		return Result{Text: NoKeyText, Err: ErrNoAPIKey}
	}

	input := text
	if n := utf8.RuneCountInString(text); n > s.maxInput {
		input = string([]rune(text)[:s.maxInput])
		s.log.Warn("text truncated for summarization",
			logger.Int("from", n),
			logger.Int("to", s.maxInput),
		)
	}

	out, err := s.completer.Complete(ctx, Request{
		System:      SystemPrompt,
		Prompt:      input,
		MaxTokens:   config.SummaryMaxTokens,
		Temperature: config.SummaryTemperature,
	})
	if err != nil {
		s.log.Error("summary generation failed",
			logger.String("provider", s.completer.Name()),
			logger.Error(err),
		)
		return Result{Text: fmt.Sprintf("Summary generation failed: %v", err), Err: err}
	}

	summary := strings.TrimSpace(out)
	s.log.Info("generated summary",
		logger.String("provider", s.completer.Name()),
		logger.Int("chars", utf8.RuneCountInString(summary)),
	)
	return Result{Text: summary}
}
