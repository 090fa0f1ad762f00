// Package config resolves the job's runtime settings from the environment and
// reads the source list.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// SummarizerConfig selects and authenticates the language model backend.
type SummarizerConfig struct {
	Provider string
	Model    string
	APIKey   string
}

// Config is everything a run needs that is not part of the source list.
type Config struct {
	RecipientEmail string
	SenderEmail    string

	Summarizer SummarizerConfig

	// ForceSES routes mail through SES outside the managed context.
	ForceSES bool
	// ManagedContext is true when AWS_EXECUTION_ENV is present.
	ManagedContext bool
	// LambdaFunction is the AWS_LAMBDA_FUNCTION_NAME marker.
	LambdaFunction string
	// Transport explicitly overrides the delivery transport.
	Transport string
	AWSRegion string

	S3Bucket string
	S3Prefix string

	KafkaBrokers []string
	KafkaTopic   string

	SourcesFile    string
	EmailOutputDir string
	ArchiveURL     string

	LogLevel string
	LogDir   string
	Port     string
	// APIJWTSecret enables bearer token auth on the run endpoints.
	APIJWTSecret string
}

var apiKeyVars = map[string]string{
	"openai":    "OPENAI_API_KEY",
	"cohere":    "COHERE_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
}

// LoadEnvFiles loads .env.local then .env when present. Missing files are not
// an error and existing variables are never overwritten.
func LoadEnvFiles() error {
	for _, name := range []string{".env.local", ".env"} {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}

// Load reads .env files and then resolves the configuration from the process
// environment.
func Load() (*Config, error) {
	if err := LoadEnvFiles(); err != nil {
		return nil, err
	}
	return FromViper(NewViper()), nil
}

// NewViper returns a viper instance bound to the environment with every
// default registered.
func NewViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.AllowEmptyEnv(true)

	v.SetDefault("SUMMARIZER_PROVIDER", DefaultProvider)
	v.SetDefault("AWS_REGION", DefaultRegion)
	v.SetDefault("SOURCES_FILE", DefaultSourcesFile)
	v.SetDefault("EMAIL_OUTPUT_DIR", DefaultEmailOutputDir)
	v.SetDefault("AINEWS_ARCHIVE_URL", ArchiveURL)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PORT", DefaultPort)
	v.SetDefault("FORCE_SES", "false")
	return v
}

// FromViper builds a Config from v.
func FromViper(v *viper.Viper) *Config {
	provider := strings.ToLower(strings.TrimSpace(v.GetString("SUMMARIZER_PROVIDER")))

	cfg := &Config{
		RecipientEmail: strings.TrimSpace(v.GetString("RECIPIENT_EMAIL")),
		SenderEmail:    strings.TrimSpace(v.GetString("SENDER_EMAIL")),
		Summarizer: SummarizerConfig{
			Provider: provider,
			Model:    strings.TrimSpace(v.GetString("SUMMARIZER_MODEL")),
		},
		ForceSES:       strings.EqualFold(strings.TrimSpace(v.GetString("FORCE_SES")), "true"),
		ManagedContext: v.IsSet("AWS_EXECUTION_ENV"),
		LambdaFunction: v.GetString("AWS_LAMBDA_FUNCTION_NAME"),
		Transport:      strings.ToLower(strings.TrimSpace(v.GetString("DELIVERY_TRANSPORT"))),
		AWSRegion:      v.GetString("AWS_REGION"),
		S3Bucket:       strings.TrimSpace(v.GetString("S3_BUCKET")),
		S3Prefix:       strings.TrimSpace(v.GetString("S3_PREFIX")),
		KafkaBrokers:   splitList(v.GetString("KAFKA_BROKERS")),
		KafkaTopic:     strings.TrimSpace(v.GetString("KAFKA_TOPIC")),
		SourcesFile:    v.GetString("SOURCES_FILE"),
		EmailOutputDir: v.GetString("EMAIL_OUTPUT_DIR"),
		ArchiveURL:     v.GetString("AINEWS_ARCHIVE_URL"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		LogDir:         v.GetString("LOG_DIR"),
		Port:           v.GetString("PORT"),
		APIJWTSecret:   strings.TrimSpace(v.GetString("API_JWT_SECRET")),
	}
	if key, ok := apiKeyVars[provider]; ok {
		cfg.Summarizer.APIKey = strings.TrimSpace(v.GetString(key))
	}
	return cfg
}

// Sender returns the From address, falling back to the recipient.
func (c *Config) Sender() string {
	if c.SenderEmail != "" {
		return c.SenderEmail
	}
	return c.RecipientEmail
}

// TransportName picks the delivery transport once for the whole process: an
// explicit DELIVERY_TRANSPORT wins, then SES inside the managed context or when
// forced, then local files.
func (c *Config) TransportName() string {
	if c.Transport != "" {
		return c.Transport
	}
	if c.ManagedContext || c.ForceSES {
		return TransportSES
	}
	return TransportLocal
}

// LogDirectory is where the daily log file goes. Lambda only allows writes
// under /tmp.
func (c *Config) LogDirectory() string {
	if c.LogDir != "" {
		return c.LogDir
	}
	if c.LambdaFunction != "" {
		return "/tmp/logs"
	}
	return "logs"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
