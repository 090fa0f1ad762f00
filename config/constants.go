package config

import "time"

// Summarizer constants
const (
	// MaxSummaryInput is the number of characters sent to the language model.
	MaxSummaryInput = 3000

	// SummaryMaxTokens caps the length of the generated summary.
	SummaryMaxTokens = 190

	// SummaryTemperature keeps completions deterministic.
	SummaryTemperature = 0.0

	// BlobSnippetLength is how much of each feed entry body goes into the
	// summarizer input, after the entry title.
	BlobSnippetLength = 15
)

// AI News scraper constants
const (
	// ArchiveURL lists every AI News issue.
	ArchiveURL = "https://buttondown.com/ainews/archive/"

	// ArticleStartID identifies the heading the extracted fragment starts at.
	ArticleStartID = "ai-twitter-recap"

	// ArticleEndMarker ends the extracted fragment. The node carrying it is excluded.
	ArticleEndMarker = "PART 1: High level Discord summaries"

	// ArticleSource is shown as the source of the scraped article.
	ArticleSource = "buttondown.com/ainews"

	// ArticleSnippetLength bounds the article snippet.
	ArticleSnippetLength = 500
)

// Runtime defaults
const (
	// DefaultSourcesFile is read when SOURCES_FILE is not set.
	DefaultSourcesFile = "sources.txt"

	// DefaultEmailOutputDir receives local delivery artifacts.
	DefaultEmailOutputDir = "email_output"

	// DefaultRegion is used for SES and S3 when AWS_REGION is unset.
	DefaultRegion = "us-east-1"

	// DefaultProvider is the summarization backend.
	DefaultProvider = "openai"

	// DefaultPort serves the HTTP trigger.
	DefaultPort = "8080"

	// HTTPTimeout bounds every outbound fetch.
	HTTPTimeout = 30 * time.Second
)

// Delivery transport names
const (
	TransportSES   = "ses"
	TransportLocal = "local"
	TransportS3    = "s3"
	TransportKafka = "kafka"
)
