package compiler

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yacobolo/stylesheet/internal/diag"
	"github.com/yacobolo/stylesheet/internal/palette"
)

func sources(texts ...string) []Source {
	out := make([]Source, len(texts))
	for i, text := range texts {
		out[i] = Source{Key: string(rune('a'+i)) + ".css", Text: text}
	}
	return out
}

func compile(t *testing.T, opts Options, in Input) *Result {
	t.Helper()
	res, err := New(zap.NewNop(), opts).Compile(in)
	require.NoError(t, err)
	return res
}

func TestCompileIsIdempotent(t *testing.T) {
	in := Input{
		Sources: sources(
			"@import 'reset.css';\nbody { margin: 0 }\n.card, .panel { padding: 0.5rem }",
			"@media (min-width: 640px) { .card { padding: 1rem } }",
		),
		Groups:   [][]string{{"flex", "col", "gap:small"}, {"m-x:small", "color:primary"}},
		Baseline: "hsl(220 10% 50%)",
		Primary:  "#3366cc",
	}
	c := New(zap.NewNop(), Options{})

	first, err := c.Compile(in)
	require.NoError(t, err)
	second, err := c.Compile(in)
	require.NoError(t, err)

	if diff := cmp.Diff(first.CSS, second.CSS); diff != "" {
		t.Errorf("second compile differs (-first +second):\n%s", diff)
	}
}

func TestCompileDedupsSelectorGroups(t *testing.T) {
	res := compile(t, Options{}, Input{Sources: sources("a, b{color:red}", "b, a{margin:0}")})

	assert.Contains(t, res.CSS, "a, b{color:red;margin:0;}")
	assert.NotContains(t, res.CSS, "b, a")
}

func TestCompileOrdering(t *testing.T) {
	res := compile(t, Options{}, Input{
		Sources:  sources("p{x:3}body{x:1}a{x:4}html{x:2}.card{x:5}"),
		Baseline: "hsl(220 10% 50%)",
	})

	order := []string{
		":root{",
		`[theme="light"]{`,
		`[theme="dark"]{`,
		"html{x:2;}",
		"body{x:1;}",
		"a{x:4;}",
		"p{x:3;}",
		".card{x:5;}",
	}
	last := -1
	for _, s := range order {
		i := strings.Index(res.CSS, s)
		require.GreaterOrEqual(t, i, 0, "%q missing from %s", s, res.CSS)
		assert.Greater(t, i, last, "%q out of order", s)
		last = i
	}
}

func TestCompileHoistsCustomProperties(t *testing.T) {
	res := compile(t, Options{}, Input{Sources: sources("a{color:red;--x:1}")})

	assert.Contains(t, res.CSS, "a{--x:1;color:red;}")
}

func TestCompileThemes(t *testing.T) {
	res := compile(t, Options{}, Input{Baseline: "hsl(220 10% 50%)", Primary: "hsl(250 80% 55%)"})

	assert.True(t, strings.HasPrefix(res.CSS, ":root{--tiny:.125rem;"), res.CSS)
	assert.Contains(t, res.CSS, "--baseline-50:220,10%,1%;")
	assert.Contains(t, res.CSS, `[theme="dark"]{--baseline-50:220,10%,99%;`)
	assert.Contains(t, res.CSS, "--primary-full:250,80%,99%;")
	assert.NotContains(t, res.CSS, "--auto")
}

func TestCompileAuthoredCSSOverridesVariables(t *testing.T) {
	res := compile(t, Options{}, Input{Sources: sources(":root{--small:4px}")})

	assert.Contains(t, res.CSS, "--small:4px;")
	assert.NotContains(t, res.CSS, "--small:.25rem")
}

func TestCompileUtilitiesOverrideSources(t *testing.T) {
	res := compile(t, Options{}, Input{
		Sources: sources(".m{margin:5px}"),
		Groups:  [][]string{{"m"}},
	})

	assert.Contains(t, res.CSS, ".m{margin:var(--margin);}")
	assert.Equal(t, 1, res.Stats.Utilities)
}

func TestCompileUtilityExamples(t *testing.T) {
	res := compile(t, Options{NoCoalesce: true}, Input{Groups: [][]string{{"flex", "col", "reverse"}, {"m-x:small"}}})

	assert.Contains(t, res.CSS, ".flex{display:flex;}")
	assert.Contains(t, res.CSS, ".flex.col.reverse{flex-direction:column-reverse;}")
	assert.Contains(t, res.CSS, `.m-x\:small{margin-left:var(--small, .25rem);margin-right:var(--small, .25rem);}`)
}

func TestCompileCharset(t *testing.T) {
	in := Input{Sources: sources(`:root{} @charset "utf-8";`, `@charset "iso-8859-1";`)}

	t.Run("strict", func(t *testing.T) {
		_, err := New(nil, Options{Strict: true}).Compile(in)
		require.ErrorIs(t, err, diag.ErrConflictingDirective)
	})

	t.Run("strict ignores skip-invalid", func(t *testing.T) {
		_, err := New(nil, Options{Strict: true, SkipInvalid: true}).Compile(in)
		require.ErrorIs(t, err, diag.ErrConflictingDirective)
	})

	t.Run("lenient", func(t *testing.T) {
		res := compile(t, Options{}, in)
		assert.True(t, strings.HasPrefix(res.CSS, `@charset "utf-8";`), res.CSS)
		assert.NotContains(t, res.CSS, "iso-8859-1")
	})
}

func TestCompileInvalidSource(t *testing.T) {
	in := Input{Sources: []Source{
		{Key: "good.css", Text: "a{color:red}"},
		{Key: "bad.css", Text: "a {\n  color\n}"},
	}}

	t.Run("fails by default", func(t *testing.T) {
		_, err := New(nil, Options{}).Compile(in)
		require.ErrorIs(t, err, diag.ErrMalformedInput)

		var derr *diag.Error
		require.True(t, errors.As(err, &derr))
		assert.Equal(t, "bad.css", derr.Key)

		line, col := diag.Position(in.Sources[1].Text, derr.Offset)
		assert.Equal(t, 2, line)
		assert.Equal(t, 3, col)
	})

	t.Run("skip invalid", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)

		res, err := New(zap.New(core), Options{SkipInvalid: true}).Compile(in)
		require.NoError(t, err)

		assert.Contains(t, res.CSS, "a{color:red;}")
		require.Len(t, res.Skipped, 1)
		assert.ErrorIs(t, res.Skipped[0], diag.ErrMalformedInput)
		assert.Equal(t, 1, res.Stats.Sources)
		assert.Equal(t, 1, res.Stats.Skipped)
		assert.Equal(t, 1, logs.FilterMessage("Skipping invalid source").Len())
	})
}

func TestCompileSkipsEmptySources(t *testing.T) {
	res := compile(t, Options{}, Input{Sources: sources("/* nothing here */\n", "a{b:c}")})

	assert.Equal(t, 1, res.Stats.Empty)
	assert.Equal(t, 1, res.Stats.Sources)
}

func TestCompileRejectsInvalidColor(t *testing.T) {
	_, err := New(nil, Options{}).Compile(Input{Baseline: "hsl(bad)"})
	require.ErrorIs(t, err, palette.ErrInvalidColor)
}

func TestCompileCoalesce(t *testing.T) {
	in := Input{Sources: sources("a{color:red}b{color:red}")}

	assert.Contains(t, compile(t, Options{}, in).CSS, "a, b{color:red;}")
	assert.Contains(t, compile(t, Options{NoCoalesce: true}, in).CSS, "a{color:red;}b{color:red;}")

	// .y must stay after .x, or class="x y" turns blue.
	cascade := compile(t, Options{}, Input{Sources: sources(".a{color:red}.x{color:blue}.y{color:red}")})
	assert.Contains(t, cascade.CSS, ".a{color:red;}.x{color:blue;}.y{color:red;}")
}

func TestCompilePretty(t *testing.T) {
	res := compile(t, Options{Pretty: true}, Input{Sources: sources("a{color:red}")})

	assert.Contains(t, res.CSS, "a {\n\tcolor: red;\n}\n")
}

func TestStatsSaved(t *testing.T) {
	assert.Equal(t, 0.0, Stats{}.Saved())
	assert.Equal(t, 25.0, Stats{BytesIn: 100, BytesOut: 75}.Saved())
}
