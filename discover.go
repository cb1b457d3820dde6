package stylesheet

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cespare/xxhash/v2"
	"github.com/maruel/natural"
	"golang.org/x/sync/errgroup"

	"github.com/yacobolo/stylesheet/internal/compiler"
)

// ScanStats tracks file discovery.
type ScanStats struct {
	FilesDiscovered int // files matched by the glob patterns
	FilesScanned    int // files kept after filtering
	FilesSkipped    int // files dropped by .gitignore or lock-file rules
}

// expandGlobPatterns expands patterns to regular files, in pattern order,
// without duplicates. skip may reject files; nil keeps everything.
func expandGlobPatterns(patterns []string, skip func(string) bool) ([]string, ScanStats, error) {
	var files []string
	seen := make(map[string]bool)
	stats := ScanStats{}

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			seen[match] = true
			stats.FilesDiscovered++

			if skip != nil && skip(match) {
				stats.FilesSkipped++
				continue
			}
			files = append(files, match)
			stats.FilesScanned++
		}
	}

	return files, stats, nil
}

// DiscoverSources expands the source globs and orders the files: names
// starting with an underscore first, then everything else, each part in
// natural path order ("2.css" before "10.css").
func DiscoverSources(patterns []string) ([]string, error) {
	files, _, err := expandGlobPatterns(patterns, nil)
	if err != nil {
		return nil, err
	}
	sortSources(files)
	return files, nil
}

func sortSources(files []string) {
	sort.SliceStable(files, func(i, j int) bool {
		ui, uj := isPartial(files[i]), isPartial(files[j])
		if ui != uj {
			return ui
		}
		return natural.Less(filepath.ToSlash(files[i]), filepath.ToSlash(files[j]))
	})
}

func isPartial(path string) bool {
	return strings.HasPrefix(filepath.Base(path), "_")
}

// ReadSources reads files concurrently and returns them in input order,
// keyed by their path relative to the working directory.
func ReadSources(ctx context.Context, files []string) ([]compiler.Source, error) {
	sources := make([]compiler.Source, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read source: %w", err)
			}
			sources[i] = compiler.Source{Key: relativePath(file), Text: string(data)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sources, nil
}

// InlineSources keys raw CSS strings by content hash, dropping repeats.
func InlineSources(texts []string) []compiler.Source {
	out := make([]compiler.Source, 0, len(texts))
	seen := make(map[string]bool, len(texts))
	for _, text := range texts {
		key := RawKey(text)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, compiler.Source{Key: key, Text: text})
	}
	return out
}

// RawKey returns the key of an inline source: "raw:" and the hex xxhash
// of its text.
func RawKey(text string) string {
	return fmt.Sprintf("raw:%016x", xxhash.Sum64String(text))
}

// latestModTime returns the newest modification time among files.
func latestModTime(files []string) time.Time {
	var latest time.Time
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			continue
		}
		if mt := info.ModTime(); mt.After(latest) {
			latest = mt
		}
	}
	return latest
}

// relativePath returns path relative to the working directory when it
// lies below it.
func relativePath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return filepath.ToSlash(path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(cwd, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
