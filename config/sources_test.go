package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailyfeed/logger"
	"dailyfeed/types"
)

func TestParseSources(t *testing.T) {
	input := strings.Join([]string{
		"rss https://example.com/feed.xml",
		"",
		"   ",
		"atom https://example.org/atom.xml",
		"json https://example.net/feed.json",
		"rss",
	}, "\n")

	log, logs := logger.NewObserved()
	sources, err := ParseSources(strings.NewReader(input), log)
	require.NoError(t, err)

	assert.Equal(t, []types.Source{
		{Type: types.SourceRSS, URL: "https://example.com/feed.xml"},
		{Type: types.SourceAtom, URL: "https://example.org/atom.xml"},
		{Type: "json", URL: "https://example.net/feed.json"},
	}, sources)
	assert.Equal(t, 1, logs.FilterMessage("skipping malformed source line").Len())
}

func TestLoadSourcesMissingFile(t *testing.T) {
	log, logs := logger.NewObserved()
	sources := LoadSources(filepath.Join(t.TempDir(), "nope.txt"), log)

	assert.Empty(t, sources)
	assert.Equal(t, 1, logs.FilterMessage("source list not found").Len())
}

func TestLoadSourcesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.txt")
	require.NoError(t, os.WriteFile(path, []byte("rss https://a.example/rss\natom https://b.example/atom\n"), 0o644))

	sources := LoadSources(path, logger.NewNop())
	require.Len(t, sources, 2)
	assert.Equal(t, "https://b.example/atom", sources[1].URL)
}
