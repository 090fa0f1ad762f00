package summarizer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
)

// DefaultCohereModel is used when no model is configured.
const DefaultCohereModel = "command-r"

// Cohere completes prompts with the Cohere chat endpoint.
type Cohere struct {
	client *cohereclient.Client
	model  string
}

// NewCohere builds a Cohere backend. baseURL may be empty. The backend always
// speaks HTTP/1.1, which the Cohere API handles more reliably than HTTP/2;
// httpClient only contributes its timeout and transport settings.
func NewCohere(apiKey, model, baseURL string, httpClient *http.Client) *Cohere {
	httpClient = http1Client(httpClient)
	if model == "" {
		model = DefaultCohereModel
	}
	// An empty base URL keeps the client's default endpoint.
	client := cohereclient.NewClient(
		cohereclient.WithToken(apiKey),
		cohereclient.WithHTTPClient(httpClient),
		cohereclient.WithBaseURL(baseURL),
	)
	return &Cohere{client: client, model: model}
}

func (c *Cohere) Name() string { return "cohere" }

func (c *Cohere) Complete(ctx context.Context, req Request) (string, error) {
	resp, err := c.client.Chat(ctx, &cohere.ChatRequest{
		Message:     req.Prompt,
		Model:       cohere.String(c.model),
		Preamble:    cohere.String(req.System),
		MaxTokens:   cohere.Int(req.MaxTokens),
		Temperature: cohere.Float64(req.Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("cohere chat: %w", err)
	}
	if resp == nil || resp.Text == "" {
		return "", errors.New("cohere chat returned empty response")
	}
	return resp.Text, nil
}

// http1Client returns a copy of base whose transport never negotiates HTTP/2.
// A transport that is not an *http.Transport is kept as is.
func http1Client(base *http.Client) *http.Client {
	c := &http.Client{Timeout: 60 * time.Second}
	var transport *http.Transport
	if base != nil {
		*c = *base
		if c.Timeout == 0 {
			c.Timeout = 60 * time.Second
		}
		switch t := base.Transport.(type) {
		case nil:
		case *http.Transport:
			transport = t.Clone()
		default:
			return c
		}
	}
	if transport == nil {
		transport = http.DefaultTransport.(*http.Transport).Clone()
	}
	transport.TLSNextProto = make(map[string]func(authority string, c *tls.Conn) http.RoundTripper)
	transport.ForceAttemptHTTP2 = false
	c.Transport = transport
	return c
}
