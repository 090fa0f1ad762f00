package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"dailyfeed/types"
)

// FeedPreset is a well-known feed offered when creating a source list.
type FeedPreset struct {
	Name   string
	Source types.Source
}

// FeedPresets maps short keys to starter feeds.
var FeedPresets = map[string]FeedPreset{
	"hn": {
		Name:   "Hacker News",
		Source: types.Source{Type: types.SourceRSS, URL: "https://hnrss.org/newest"},
	},
	"tr": {
		Name:   "Technology Review",
		Source: types.Source{Type: types.SourceRSS, URL: "https://www.technologyreview.com/feed/"},
	},
	"openai": {
		Name:   "OpenAI News",
		Source: types.Source{Type: types.SourceRSS, URL: "https://openai.com/news/rss.xml"},
	},
	"hf": {
		Name:   "Hugging Face Blog",
		Source: types.Source{Type: types.SourceRSS, URL: "https://huggingface.co/blog/feed.xml"},
	},
	"arxiv": {
		Name:   "arXiv cs.AI",
		Source: types.Source{Type: types.SourceAtom, URL: "https://export.arxiv.org/api/query?search_query=cat:cs.AI&sortBy=submittedDate&max_results=50"},
	},
}

// PresetKeys returns the preset keys in a stable order.
func PresetKeys() []string {
	keys := make([]string, 0, len(FeedPresets))
	for k := range FeedPresets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FormatSources renders sources in the source list format.
func FormatSources(sources []types.Source) string {
	var b strings.Builder
	for _, s := range sources {
		fmt.Fprintf(&b, "%s %s\n", s.Type, s.URL)
	}
	return b.String()
}

// WriteSources creates a source list at path from the given preset keys. It
// refuses to overwrite an existing file.
func WriteSources(path string, keys []string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	sources := make([]types.Source, 0, len(keys))
	for _, k := range keys {
		p, ok := FeedPresets[k]
		if !ok {
			return fmt.Errorf("unknown feed preset %q", k)
		}
		sources = append(sources, p.Source)
	}
	return os.WriteFile(path, []byte(FormatSources(sources)), 0o644)
}
