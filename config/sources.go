package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"dailyfeed/logger"
	"dailyfeed/types"
)

// LoadSources reads the source list at path. A missing or unreadable file is
// logged and yields an empty list; the run carries on without feeds.
func LoadSources(path string, log logger.Logger) []types.Source {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Error("source list not found", logger.String("path", path))
		} else {
			log.Error("error reading source list", logger.String("path", path), logger.Error(err))
		}
		return nil
	}
	defer f.Close()

	sources, err := ParseSources(f, log)
	if err != nil {
		log.Error("error reading source list", logger.String("path", path), logger.Error(err))
		return nil
	}
	return sources
}

// ParseSources parses "<type> <url>" lines. Blank lines are ignored and lines
// without a URL are skipped.
func ParseSources(r io.Reader, log logger.Logger) ([]types.Source, error) {
	var sources []types.Source
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		kind, url, ok := strings.Cut(line, " ")
		url = strings.TrimSpace(url)
		if !ok || url == "" {
			log.Warn("skipping malformed source line", logger.Int("line", lineNo), logger.String("text", line))
			continue
		}
		sources = append(sources, types.Source{Type: types.SourceType(kind), URL: url})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan sources: %w", err)
	}
	return sources, nil
}
