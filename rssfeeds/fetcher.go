package rssfeeds

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"dailyfeed/logger"
	"dailyfeed/types"
)

const (
	// NoContent is the body used when a feed item carries no text at all.
	NoContent = "No content available"
	// Untitled replaces an empty item title.
	Untitled = "Untitled"
)

// publishedLayouts are tried in order when the parser could not make sense of
// an item's published string.
var publishedLayouts = []string{
	"Mon, 02 Jan 2006 15:04:05 -0700",
	"2006-01-02T15:04:05Z",
}

// FeedParser fetches and parses a single feed.
type FeedParser interface {
	ParseURLWithContext(feedURL string, ctx context.Context) (*gofeed.Feed, error)
}

// Collector gathers the entries published on a given day from a list of feeds.
type Collector struct {
	parser FeedParser
	log    logger.Logger
}

// NewCollector returns a Collector that fetches feeds with client.
func NewCollector(client *http.Client, log logger.Logger) *Collector {
	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = "dailyfeed/1.0"
	return NewCollectorWithParser(parser, log)
}

// NewCollectorWithParser constructs a Collector from a preconfigured parser.
func NewCollectorWithParser(parser FeedParser, log logger.Logger) *Collector {
	return &Collector{parser: parser, log: log}
}

// Collect returns the entries of every rss/atom source whose date falls on the
// target's UTC calendar day, in source order then feed order. A failing source
// is logged and skipped.
func (c *Collector) Collect(ctx context.Context, target time.Time, sources []types.Source) []types.FeedEntry {
	day := types.DayKey(target)
	var entries []types.FeedEntry

	for _, source := range sources {
		log := c.log.With(logger.String("source", source.URL), logger.String("type", string(source.Type)))
		if !source.Type.IsFeed() {
			log.Warn("skipping source with unsupported type")
			continue
		}

		log.Info("processing feed")
		found, err := c.collectSource(ctx, source, day, log)
		if err != nil {
			log.Error("error processing feed", logger.Error(err))
			continue
		}
		entries = append(entries, found...)
	}

	return entries
}

func (c *Collector) collectSource(ctx context.Context, source types.Source, day string, log logger.Logger) ([]types.FeedEntry, error) {
	feed, err := c.parser.ParseURLWithContext(source.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	if len(feed.Items) == 0 {
		log.Warn("no entries found in feed")
		return nil, nil
	}

	var entries []types.FeedEntry
	for _, item := range feed.Items {
		if item == nil {
			continue
		}

		date, ok := EntryDate(item)
		if !ok {
			log.Warn("could not determine date for entry", logger.String("title", entryTitle(item)))
			continue
		}
		if types.DayKey(date) != day {
			continue
		}

		entries = append(entries, types.FeedEntry{
			Title:      entryTitle(item),
			Link:       item.Link,
			Snippet:    EntryBody(item),
			Source:     source.URL,
			SourceType: source.Type,
			Date:       date,
		})
		log.Info("added entry", logger.String("title", entryTitle(item)))
	}

	log.Info(fmt.Sprintf("found %d entries from %s out of %d total entries", len(entries), day, len(feed.Items)))
	return entries, nil
}

// EntryDate resolves an item's publish time in UTC: the parsed published
// timestamp, then the parsed updated timestamp, then the raw published string.
func EntryDate(item *gofeed.Item) (time.Time, bool) {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.UTC(), true
	}
	if item.UpdatedParsed != nil {
		return item.UpdatedParsed.UTC(), true
	}
	if item.Published != "" {
		for _, layout := range publishedLayouts {
			if t, err := time.Parse(layout, item.Published); err == nil {
				return t.UTC(), true
			}
		}
	}
	return time.Time{}, false
}

// EntryBody picks the richest text an item offers: content, then
// description, then the iTunes summary.
func EntryBody(item *gofeed.Item) string {
	if item.Content != "" {
		return item.Content
	}
	if item.Description != "" {
		return item.Description
	}
	if item.ITunesExt != nil && item.ITunesExt.Summary != "" {
		return item.ITunesExt.Summary
	}
	return NoContent
}

func entryTitle(item *gofeed.Item) string {
	if item.Title == "" {
		return Untitled
	}
	return item.Title
}
