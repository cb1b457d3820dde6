package stylesheet

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/yacobolo/stylesheet/internal/compiler"
	"github.com/yacobolo/stylesheet/internal/report"
)

// ErrNoSources is returned when neither the globs nor the inline list
// yield a single source.
var ErrNoSources = errors.New("no sources found")

// BuildResult describes one build.
type BuildResult struct {
	Output    string
	CSS       string // empty when the build was skipped as up to date
	UpToDate  bool   // skipped: the output is newer than every input
	Written   bool   // the output file changed on disk
	Stats     compiler.Stats
	Templates int // template files scanned
	Groups    int // class groups harvested
	Issues    []Issue
	Warnings  []string

	sources map[string]string
}

// Source returns the text of the source with key, for issue locations.
func (r *BuildResult) Source(key string) (string, bool) {
	text, ok := r.sources[key]
	return text, ok
}

// HasErrors reports whether any issue is an error.
func (r *BuildResult) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Build compiles the configured sources and writes the output. It skips
// the compile when the output is newer than every source and template and
// was built from the same options and file list, unless cfg.Force is set,
// and skips the write when the content did not change. A compile failure is returned as an error and also recorded in
// the result's Issues.
func Build(ctx context.Context, cfg Config, log *zap.Logger) (*BuildResult, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	files, err := DiscoverSources(cfg.Sources)
	if err != nil {
		return nil, fmt.Errorf("scan sources: %w", err)
	}
	scanner := NewScanner(log)
	templates, _, err := scanner.Files(cfg.Templates)
	if err != nil {
		return nil, fmt.Errorf("scan templates: %w", err)
	}

	inputs := append(slices.Clone(files), templates...)
	fp := fingerprint(cfg, inputs)
	if !cfg.Force && upToDate(cfg.Output, inputs, fp) {
		log.Info("Stylesheet is up to date", zap.String("output", cfg.Output))
		return &BuildResult{Output: cfg.Output, UpToDate: true, Templates: len(templates)}, nil
	}

	result, err := compile(ctx, cfg, log, files, scanner)
	if err != nil {
		return result, err
	}

	written, err := writeIfChanged(cfg.Output, result.CSS)
	if err != nil {
		return result, err
	}
	result.Written = written
	if _, err := writeIfChanged(fingerprintPath(cfg.Output), fp); err != nil {
		return result, fmt.Errorf("write fingerprint: %w", err)
	}
	if written {
		log.Info("Saved stylesheet", zap.String("output", cfg.Output), zap.Int("bytes", len(result.CSS)))
	} else {
		log.Info("Stylesheet unchanged", zap.String("output", cfg.Output))
	}
	return result, nil
}

// Compile runs discovery, scanning and compilation without touching the
// output file.
func Compile(ctx context.Context, cfg Config, log *zap.Logger) (*BuildResult, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	files, err := DiscoverSources(cfg.Sources)
	if err != nil {
		return nil, fmt.Errorf("scan sources: %w", err)
	}
	return compile(ctx, cfg, log, files, NewScanner(log))
}

func compile(ctx context.Context, cfg Config, log *zap.Logger, files []string, scanner *Scanner) (*BuildResult, error) {
	result := &BuildResult{Output: cfg.Output}

	sources, err := ReadSources(ctx, files)
	if err != nil {
		return nil, err
	}
	sources = append(sources, InlineSources(cfg.Inline)...)
	if len(sources) == 0 {
		return nil, ErrNoSources
	}
	log.Debug("Discovered sources", zap.Int("files", len(files)), zap.Int("inline", len(cfg.Inline)))

	result.sources = make(map[string]string, len(sources))
	for _, src := range sources {
		result.sources[src.Key] = src.Text
	}

	scan, err := scanner.Scan(cfg.Templates)
	if err != nil {
		return nil, fmt.Errorf("scan templates: %w", err)
	}
	result.Templates = len(scan.Files)
	result.Groups = len(scan.Groups)

	compiled, err := compiler.New(log, cfg.CompilerOptions()).Compile(compiler.Input{
		Sources:  sources,
		Groups:   scan.Groups,
		Baseline: cfg.Baseline,
		Primary:  cfg.Primary,
	})
	if err != nil {
		result.Issues = append(result.Issues, report.FromError(err, SeverityError, result.Source))
		return result, err
	}

	for _, skipped := range compiled.Skipped {
		result.Issues = append(result.Issues, report.FromError(skipped, SeverityWarning, result.Source))
	}
	if cfg.Baseline == "" {
		result.Warnings = append(result.Warnings, "baseline color not set; --baseline-* variables were not generated")
	}
	if cfg.Primary == "" {
		result.Warnings = append(result.Warnings, "primary color not set; --primary-* variables were not generated")
	}

	result.CSS = compiled.CSS
	result.Stats = compiled.Stats
	return result, nil
}

// upToDate reports whether output exists, was built with the same
// fingerprint and is newer than every input.
func upToDate(output string, inputs []string, fp string) bool {
	info, err := os.Stat(output)
	if err != nil {
		return false
	}
	stored, err := os.ReadFile(fingerprintPath(output))
	if err != nil || string(stored) != fp {
		return false
	}
	return info.ModTime().After(latestModTime(inputs))
}

// fingerprint hashes what shapes the output besides file contents: the
// compiler options, the seed colors, the inline sources and the input
// file list, so a changed flag or a deleted template forces a rebuild.
func fingerprint(cfg Config, inputs []string) string {
	opts := cfg.CompilerOptions()
	d := xxhash.New()
	fmt.Fprintf(d, "%s\n%t %t %t %t %d\n%q\n%q %q\n%q\n%q\n",
		Version,
		opts.Strict, opts.Pretty, opts.NoCoalesce, opts.SkipInvalid, opts.IterationLimit,
		opts.Safelist,
		cfg.Baseline, cfg.Primary,
		cfg.Inline,
		slices.Sorted(slices.Values(inputs)))
	return fmt.Sprintf("%016x", d.Sum64())
}

// fingerprintPath returns the hidden file next to output that holds its
// fingerprint: public/app.css → public/.app.css.xxhash.
func fingerprintPath(output string) string {
	return filepath.Join(filepath.Dir(output), "."+filepath.Base(output)+".xxhash")
}

// writeIfChanged writes css unless the file already holds the same bytes.
func writeIfChanged(path, css string) (bool, error) {
	if existing, err := os.ReadFile(path); err == nil && xxhash.Sum64(existing) == xxhash.Sum64String(css) {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(css), 0o644); err != nil {
		return false, fmt.Errorf("write output: %w", err)
	}
	return true, nil
}
