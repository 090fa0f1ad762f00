// Package app builds every component of the digest job once from the
// resolved configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"dailyfeed/ainews"
	"dailyfeed/config"
	"dailyfeed/logger"
	"dailyfeed/notifier"
	"dailyfeed/orchestrator"
	"dailyfeed/rssfeeds"
	"dailyfeed/summarizer"
	"dailyfeed/types"
)

// App is a fully wired job.
type App struct {
	Config       *config.Config
	Log          logger.Logger
	Orchestrator *orchestrator.Orchestrator

	closers []func() error
}

// Option adjusts how New wires the job.
type Option func(*options)

type options struct {
	log        logger.Logger
	httpClient *http.Client
	transport  notifier.Transport
}

// WithLogger skips building the file logger.
func WithLogger(log logger.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithHTTPClient replaces the client used for feeds, the scraper and the
// summarizer backends.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithTransport replaces the configured delivery transport.
func WithTransport(t notifier.Transport) Option {
	return func(o *options) { o.transport = t }
}

// New wires every component from cfg.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	a := &App{Config: cfg}

	log := o.log
	if log == nil {
		var err error
		log, err = logger.New(logger.Config{Level: cfg.LogLevel, Dir: cfg.LogDirectory()})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() error {
			_ = log.Sync()
			return nil
		})
	}
	a.Log = log

	client := o.httpClient
	if client == nil {
		client = &http.Client{Timeout: config.HTTPTimeout}
	}

	transport := o.transport
	if transport == nil {
		t, closer, err := NewTransport(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		transport = t
		if closer != nil {
			a.closers = append(a.closers, closer)
		}
	}

	completer, err := summarizer.NewCompleter(cfg.Summarizer, client)
	switch {
	case errors.Is(err, summarizer.ErrNoAPIKey):
		log.Warn("summarizer API key not set, summaries will be placeholders",
			logger.String("provider", cfg.Summarizer.Provider))
		completer = nil
	case err != nil:
		return nil, err
	}

	a.Orchestrator = orchestrator.New(orchestrator.Components{
		Sources:    a.Sources,
		Feeds:      rssfeeds.NewCollector(client, log.With(logger.String("component", "feeds"))),
		Articles:   ainews.NewScraper(client, log.With(logger.String("component", "ainews")), ainews.WithArchiveURL(cfg.ArchiveURL)),
		Summarizer: summarizer.New(completer, log.With(logger.String("component", "summarizer"))),
		Notifier:   notifier.New(transport, cfg.RecipientEmail, cfg.Sender(), log.With(logger.String("component", "notifier"))),
	}, log)

	log.Info("daily feed configured",
		logger.String("transport", transport.Name()),
		logger.String("summarizer", cfg.Summarizer.Provider),
		logger.String("sources", cfg.SourcesFile),
	)
	return a, nil
}

// Sources reads the configured source list. It is re-read on every run.
func (a *App) Sources() []types.Source {
	return config.LoadSources(a.Config.SourcesFile, a.Log)
}

// Close releases the transport and flushes the logger.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewTransport builds the delivery transport named by cfg.TransportName. The
// returned closer may be nil.
func NewTransport(ctx context.Context, cfg *config.Config, log logger.Logger) (notifier.Transport, func() error, error) {
	name := cfg.TransportName()
	log = log.With(logger.String("transport", name))

	switch name {
	case config.TransportLocal:
		return notifier.NewLocal(cfg.EmailOutputDir, log), nil, nil
	case config.TransportSES:
		awsCfg, err := notifier.LoadAWSConfig(ctx, notifier.AWSConfig{Region: cfg.AWSRegion})
		if err != nil {
			return nil, nil, err
		}
		return notifier.NewSESFromConfig(awsCfg, log), nil, nil
	case config.TransportS3:
		awsCfg, err := notifier.LoadAWSConfig(ctx, notifier.AWSConfig{Region: cfg.AWSRegion})
		if err != nil {
			return nil, nil, err
		}
		return notifier.NewS3FromConfig(awsCfg, cfg.S3Bucket, cfg.S3Prefix, log), nil, nil
	case config.TransportKafka:
		producer, err := notifier.NewKafkaProducer(notifier.KafkaConfig{Brokers: cfg.KafkaBrokers, Topic: cfg.KafkaTopic})
		if err != nil {
			return nil, nil, err
		}
		k := notifier.NewKafka(producer, cfg.KafkaTopic, log)
		return k, k.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown delivery transport %q", name)
	}
}
