package summarizer

import (
	"fmt"
	"net/http"

	"dailyfeed/config"
)

// NewCompleter builds the backend named by cfg.Provider. It returns
// ErrNoAPIKey when the provider is known but has no credential.
func NewCompleter(cfg config.SummarizerConfig, httpClient *http.Client) (Completer, error) {
	switch cfg.Provider {
	case "openai", "cohere", "anthropic":
	default:
		return nil, fmt.Errorf("unknown summarizer provider %q", cfg.Provider)
	}
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	switch cfg.Provider {
	case "cohere":
		return NewCohere(cfg.APIKey, cfg.Model, "", httpClient), nil
	case "anthropic":
		return NewAnthropic(cfg.APIKey, cfg.Model, "", httpClient), nil
	default:
		return NewOpenAI(cfg.APIKey, cfg.Model, "", httpClient), nil
	}
}
