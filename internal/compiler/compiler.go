// Package compiler runs the full pipeline: palette and scale variables,
// then every source fragment, then the utility rules, merged into one
// table that is deduplicated, sorted and assembled into CSS text.
package compiler

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/yacobolo/stylesheet/internal/diag"
	"github.com/yacobolo/stylesheet/internal/palette"
	"github.com/yacobolo/stylesheet/internal/parser"
	"github.com/yacobolo/stylesheet/internal/ruleset"
	"github.com/yacobolo/stylesheet/internal/utility"
)

// Source is one named fragment.
type Source struct {
	Key  string
	Text string
}

// Input is everything one compile consumes.
type Input struct {
	Sources  []Source
	Groups   [][]string // class tokens, one list per scanned element
	Baseline string     // seed colors, #hex or hsl(); empty skips the family
	Primary  string
}

// Options configures a Compiler.
type Options struct {
	Strict         bool // a second, differing @charset is an error
	Pretty         bool
	NoCoalesce     bool // keep identical rule bodies under separate selectors
	SkipInvalid    bool // drop sources that fail to parse instead of failing
	IterationLimit int  // parser budget per fragment, 0 for the default
	Safelist       []string
}

// Stats summarizes one compile.
type Stats struct {
	Sources   int // fragments merged
	Skipped   int // fragments rejected under SkipInvalid
	Empty     int // fragments with nothing left after minification
	Utilities int // selectors synthesized from class tokens
	Selectors int // top-level selectors in the output
	BytesIn   int
	BytesOut  int
}

// Saved returns the size reduction in percent. It is negative when the
// generated rules outweigh what minification removed.
func (s Stats) Saved() float64 {
	if s.BytesIn == 0 {
		return 0
	}
	return 100 - float64(s.BytesOut)*100/float64(s.BytesIn)
}

// Result is the compiled stylesheet.
type Result struct {
	CSS     string
	Stats   Stats
	Skipped []error // one *diag.Error per rejected source
}

// Compiler holds read-only configuration; concurrent Compile calls are safe.
type Compiler struct {
	log       *zap.Logger
	opts      Options
	parser    *parser.Parser
	palette   *palette.Generator
	utilities *utility.Generator
	assembler ruleset.Assembler
}

// New creates a compiler. A nil logger disables logging.
func New(log *zap.Logger, opts Options) *Compiler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Compiler{
		log:       log.Named("compiler"),
		opts:      opts,
		parser:    parser.New(log, parser.WithIterationLimit(opts.IterationLimit)),
		palette:   palette.NewGenerator(log),
		utilities: utility.NewGenerator(log, utility.Config{Safelist: opts.Safelist}),
		assembler: ruleset.Assembler{Pretty: opts.Pretty, Coalesce: !opts.NoCoalesce},
	}
}

// Compile merges, in order, the theme and scale variables, the sources and
// the utility rules, so authored CSS overrides generated variables and
// utilities override both. The same input always yields the same output.
func (c *Compiler) Compile(in Input) (*Result, error) {
	t := ruleset.New()
	var stats Stats

	if err := c.variables(t, in.Baseline, in.Primary); err != nil {
		return nil, err
	}

	var skipped error
	for _, src := range in.Sources {
		stats.BytesIn += len(src.Text)

		merged, err := c.merge(t, src)
		switch {
		case err == nil && !merged:
			stats.Empty++
		case err == nil:
			stats.Sources++
		case c.opts.SkipInvalid && !errors.Is(err, diag.ErrConflictingDirective):
			c.log.Warn("Skipping invalid source",
				zap.String("key", src.Key),
				zap.String("kind", diag.KindOf(err)),
				zap.Error(err))
			skipped = multierr.Append(skipped, err)
			stats.Skipped++
		default:
			return nil, err
		}
	}

	utilities := c.utilities.Generate(in.Groups)
	stats.Utilities = utilities.Len()
	t.MergeTable(utilities)

	t.Dedup()
	t.Sort()
	css := c.assembler.Assemble(t)

	stats.Selectors = t.Len()
	stats.BytesOut = len(css)

	c.log.Info("Compiled stylesheet",
		zap.Int("sources", stats.Sources),
		zap.Int("skipped", stats.Skipped),
		zap.Int("utilities", stats.Utilities),
		zap.Int("bytes_in", stats.BytesIn),
		zap.Int("bytes_out", stats.BytesOut),
		zap.String("saved", fmt.Sprintf("%.1f%%", stats.Saved())))

	return &Result{CSS: css, Stats: stats, Skipped: multierr.Errors(skipped)}, nil
}

// variables seeds :root with the scale and the light theme, and the
// [theme] scopes with their own sets.
func (c *Compiler) variables(t *ruleset.Table, baseline, primary string) error {
	themes, err := c.palette.Build(baseline, primary)
	if err != nil {
		return fmt.Errorf("build palette: %w", err)
	}

	for _, d := range utility.RootVariables() {
		t.Set(":root", d.Property, d.Value)
	}
	for _, theme := range []struct {
		palette.Theme
		selectors []string
	}{
		{themes.Light, []string{":root", ThemeSelector(palette.Light)}},
		{themes.Dark, []string{ThemeSelector(palette.Dark)}},
	} {
		for _, sel := range theme.selectors {
			for _, v := range theme.Variables {
				t.Set(sel, v.Name, v.Value)
			}
		}
	}
	return nil
}

// ThemeSelector returns the attribute selector scoping a theme.
func ThemeSelector(name string) string {
	return `[theme="` + name + `"]`
}

// merge minifies, parses and merges one source. It reports false for a
// source with nothing left after minification.
func (c *Compiler) merge(t *ruleset.Table, src Source) (bool, error) {
	text := parser.Minify(src.Text)
	if strings.TrimSpace(text) == "" {
		c.log.Info("Skipping empty source", zap.String("key", src.Key))
		return false, nil
	}

	nodes, err := c.parser.Parse(src.Key, text)
	if err != nil {
		return false, c.locate(src, text, err)
	}

	dropped := len(t.Dropped())
	if err := t.Merge(src.Key, nodes, c.opts.Strict); err != nil {
		return false, err
	}
	for _, d := range t.Dropped()[dropped:] {
		charset, _ := t.Charset()
		c.log.Debug("Ignoring conflicting @charset",
			zap.String("key", src.Key),
			zap.String("charset", d.Rule),
			zap.String("kept", charset))
	}
	return true, nil
}

// locate maps a parse failure on minified text back onto the original
// source when the unminified text fails the same way, so offsets point
// into the file the author edits.
func (c *Compiler) locate(src Source, minified string, err error) error {
	if minified == src.Text {
		return err
	}
	if _, rawErr := c.parser.Parse(src.Key, src.Text); rawErr != nil && diag.KindOf(rawErr) == diag.KindOf(err) {
		return rawErr
	}
	return err
}
