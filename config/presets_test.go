package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailyfeed/logger"
	"dailyfeed/types"
)

func TestWriteSourcesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.txt")

	require.NoError(t, WriteSources(path, []string{"hn", "arxiv"}))

	got := LoadSources(path, logger.NewNop())
	assert.Equal(t, []types.Source{
		FeedPresets["hn"].Source,
		FeedPresets["arxiv"].Source,
	}, got)
}

func TestWriteSourcesRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.txt")
	require.NoError(t, os.WriteFile(path, []byte("rss https://example.com/feed\n"), 0o644))

	assert.Error(t, WriteSources(path, []string{"hn"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "rss https://example.com/feed\n", string(data))
}

func TestWriteSourcesUnknownPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.txt")

	assert.Error(t, WriteSources(path, []string{"nope"}))
	assert.NoFileExists(t, path)
}

func TestPresetKeysSorted(t *testing.T) {
	assert.Equal(t, []string{"arxiv", "hf", "hn", "openai", "tr"}, PresetKeys())
}
