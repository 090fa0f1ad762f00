package logger_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailyfeed/logger"
)

func TestConfigFilePath(t *testing.T) {
	cfg := logger.Config{
		Dir: "logs",
		Now: func() time.Time { return time.Date(2025, 3, 7, 23, 0, 0, 0, time.UTC) },
	}
	cfg.SetDefaults()

	assert.Equal(t, filepath.Join("logs", "daily_feed_2025-03-07.log"), cfg.FilePath())
	assert.Equal(t, "info", cfg.Level)
}

func TestConfigFilePathDisabled(t *testing.T) {
	cfg := logger.Config{}
	cfg.SetDefaults()
	assert.Empty(t, cfg.FilePath())
}

func TestNewWritesDailyFile(t *testing.T) {
	dir := t.TempDir()
	log, err := logger.New(logger.Config{Dir: dir, Level: "debug"})
	require.NoError(t, err)

	log.Info("hello", logger.String("k", "v"))
	_ = log.Sync()

	matches, err := filepath.Glob(filepath.Join(dir, "daily_feed_*.log"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"k":"v"`)
}

func TestNewFileOnly(t *testing.T) {
	dir := t.TempDir()
	log, err := logger.NewFileOnly(logger.Config{Dir: dir})
	require.NoError(t, err)

	log.Warn("quiet")
	_ = log.Sync()

	matches, err := filepath.Glob(filepath.Join(dir, "daily_feed_*.log"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"quiet"`)
}

func TestNewFileOnlyWithoutDir(t *testing.T) {
	log, err := logger.NewFileOnly(logger.Config{})
	require.NoError(t, err)
	assert.IsType(t, &logger.NoOpLogger{}, log)
}

func TestObservedCapturesFields(t *testing.T) {
	log, logs := logger.NewObserved()
	log.With(logger.String("source", "feed")).Error("boom", logger.Error(errors.New("bad")))

	entries := logs.FilterMessage("boom").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "feed", entries[0].ContextMap()["source"])
	assert.Equal(t, "bad", entries[0].ContextMap()["error"])
}

func TestNopIsSilent(t *testing.T) {
	log := logger.NewNop()
	log.Info("ignored")
	assert.Same(t, log, log.With(logger.Int("n", 1)))
	assert.NoError(t, log.Sync())
}
