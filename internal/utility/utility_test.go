package utility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yacobolo/stylesheet/internal/ruleset"
)

func generate(t *testing.T, groups ...[]string) *ruleset.Table {
	t.Helper()
	return NewGenerator(zap.NewNop(), Config{}).Generate(groups)
}

func declarations(t *testing.T, tbl *ruleset.Table, selector string) map[string]string {
	t.Helper()
	e, ok := tbl.Lookup(selector)
	require.True(t, ok, "selector %q not generated, have %v", selector, tbl.Selectors())
	out := map[string]string{}
	for p, v := range e.Declarations.All() {
		out[p] = v
	}
	return out
}

func TestParseToken(t *testing.T) {
	tests := []struct {
		raw  string
		want Token
	}{
		{"m", Token{Raw: "m", Name: "m", Trigger: "m"}},
		{"m-x:small", Token{Raw: "m-x:small", Name: "m-x", Trigger: "m", Variant: "x", Modifier: "small"}},
		{"font-size:large", Token{Raw: "font-size:large", Name: "font-size", Trigger: "font", Variant: "size", Modifier: "large"}},
		{"color:#f00", Token{Raw: "color:#f00", Name: "color", Trigger: "color", Modifier: "#f00"}},
		{"w:", Token{Raw: "w:", Name: "w", Trigger: "w"}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseToken(tt.raw))
		})
	}
}

func TestGroupHas(t *testing.T) {
	g := NewGroup([]string{"flex", " ", "flow:large", "col"})

	assert.Len(t, g.Tokens, 3)
	assert.True(t, g.Has("flow"))
	assert.True(t, g.Has("col"))
	assert.False(t, g.Has("co"))
	assert.False(t, g.Has("reverse"))
}

func TestResolveSize(t *testing.T) {
	tests := map[string]string{
		"small": "var(--small, .25rem)",
		"s":     "var(--small, .25rem)",
		"m":     "var(--medium, 1.5rem)",
		"auto":  "auto",
		"null":  "0",
		"full":  "100%",
		"f":     "100%",
		"3px":   "3px",
		"":      "",
	}
	for in, want := range tests {
		assert.Equal(t, want, ResolveSize(in), "ResolveSize(%q)", in)
	}
}

func TestResolveColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"#0af", "#0af", true},
		{"300", "hsla(var(--baseline-300))", true},
		{"primary", "hsla(var(--primary))", true},
		{"--accent", "hsla(var(--accent))", true},
		{"currentColor", "currentColor", true},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ResolveColor(tt.in)
		assert.Equal(t, tt.ok, ok, "ResolveColor(%q)", tt.in)
		assert.Equal(t, tt.want, got, "ResolveColor(%q)", tt.in)
	}
}

func TestRootVariables(t *testing.T) {
	vars := RootVariables()

	require.Len(t, vars, 6)
	assert.Equal(t, "--tiny", vars[0].Property)
	assert.Equal(t, ".125rem", vars[0].Value)
	assert.Equal(t, "--full", vars[5].Property)
}

func TestEscape(t *testing.T) {
	tests := map[string]string{
		"flex":       "flex",
		"m-x:small":  `m-x\:small`,
		"w:0.5rem":   `w\:0\.5rem`,
		"color:#fff": `color\:\#fff`,
		"w:50%":      `w\:50\%`,
		"w:1/2":      `w\:1\/2`,
	}
	for in, want := range tests {
		assert.Equal(t, want, Escape(in), "Escape(%q)", in)
	}
}

func TestMarginVariant(t *testing.T) {
	tbl := generate(t, []string{"m-x:small"})

	assert.Equal(t, map[string]string{
		"margin-left":  "var(--small, .25rem)",
		"margin-right": "var(--small, .25rem)",
	}, declarations(t, tbl, `.m-x\:small`))
}

func TestSizeBuilders(t *testing.T) {
	tests := []struct {
		token    string
		selector string
		want     map[string]string
	}{
		{"m", ".m", map[string]string{"margin": "var(--margin)"}},
		{"p-t:3px", `.p-t\:3px`, map[string]string{"padding-top": "3px"}},
		{"p-y", ".p-y", map[string]string{"padding-top": "var(--padding)", "padding-bottom": "var(--padding)"}},
		{"r-l:null", `.r-l\:null`, map[string]string{"border-top-left-radius": "0", "border-bottom-left-radius": "0"}},
		{"w-max:full", `.w-max\:full`, map[string]string{"max-width": "100%"}},
		{"h", ".h", map[string]string{"height": "var(--height)"}},
		{"h-min:large", `.h-min\:large`, map[string]string{"min-height": "var(--large, 2rem)"}},
		{"gap-x:tiny", `.gap-x\:tiny`, map[string]string{"column-gap": "var(--tiny, .125rem)"}},
		{"gap", ".gap", map[string]string{"gap": "var(--base)"}},
		{"shadow", ".shadow", map[string]string{"box-shadow": "var(--shadow)"}},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			tbl := generate(t, []string{tt.token})
			assert.Equal(t, tt.want, declarations(t, tbl, tt.selector))
		})
	}
}

func TestUnknownTokensContributeNothing(t *testing.T) {
	tbl := generate(t, []string{"card", "m-q:small", "w-full", "sr", "divide", "reverse"})
	assert.Equal(t, 0, tbl.Len())
}

func TestColorBuilders(t *testing.T) {
	tbl := generate(t, []string{"color:500", "bg:primary", "font-color:#333", "color", "bg"})

	assert.Equal(t, map[string]string{"color": "hsla(var(--baseline-500))"}, declarations(t, tbl, `.color\:500`))
	assert.Equal(t, map[string]string{"background": "hsla(var(--primary))"}, declarations(t, tbl, `.bg\:primary`))
	assert.Equal(t, map[string]string{"color": "#333"}, declarations(t, tbl, `.font-color\:\#333`))

	_, ok := tbl.Lookup(".color")
	assert.False(t, ok, "color without modifier must bail")
	_, ok = tbl.Lookup(".bg")
	assert.False(t, ok, "bg without modifier must bail")
}

func TestFontBuilder(t *testing.T) {
	tbl := generate(t, []string{"font-size", "font-size:large", "font-weight:600", "font-weight"})

	assert.Equal(t, map[string]string{"font-size": "var(--font-size)"}, declarations(t, tbl, ".font-size"))
	assert.Equal(t, map[string]string{"font-size": "var(--large, 2rem)"}, declarations(t, tbl, `.font-size\:large`))
	assert.Equal(t, map[string]string{"font-weight": "600"}, declarations(t, tbl, `.font-weight\:600`))
	_, ok := tbl.Lookup(".font-weight")
	assert.False(t, ok)
}

func TestFlexColReverse(t *testing.T) {
	tbl := generate(t, []string{"flex", "col", "reverse"})

	assert.Equal(t, []string{".flex", ".flex.col.reverse"}, tbl.Selectors())
	assert.Equal(t, map[string]string{"display": "flex"}, declarations(t, tbl, ".flex"))
	assert.Equal(t, map[string]string{"flex-direction": "column-reverse"}, declarations(t, tbl, ".flex.col.reverse"))
}

func TestFlexComposite(t *testing.T) {
	tests := []struct {
		name     string
		group    []string
		selector string
		want     map[string]string
	}{
		{"row reverse", []string{"flex", "reverse"}, ".flex.reverse", map[string]string{"flex-direction": "row-reverse"}},
		{"flow is a column", []string{"flex", "flow"}, ".flex.flow", map[string]string{"flex-direction": "column"}},
		{"center", []string{"flex", "center"}, ".flex.center", map[string]string{"align-items": "center", "justify-content": "center"}},
		{"row align-left", []string{"flex", "align-left"}, ".flex.align-left", map[string]string{"justify-content": "flex-start"}},
		{"column align-left", []string{"flex", "col", "align-left"}, ".flex.col.align-left", map[string]string{"align-items": "flex-start"}},
		{"row align-bottom", []string{"flex", "align-bottom"}, ".flex.align-bottom", map[string]string{"align-items": "flex-end"}},
		{"column align-bottom", []string{"flex", "col", "align-bottom"}, ".flex.col.align-bottom", map[string]string{"justify-content": "flex-end"}},
		{"between", []string{"flex", "justify-between"}, ".flex.justify-between", map[string]string{"justify-content": "space-between"}},
		{"grow", []string{"flex", "grow"}, ".flex.grow", map[string]string{"flex-grow": "1"}},
		{"wrap", []string{"flex", "wrap"}, ".flex.wrap", map[string]string{"flex-wrap": "wrap"}},
		{"flex-col anchor", []string{"flex-col"}, ".flex-col", map[string]string{"display": "flex", "flex-direction": "column"}},
		{"flex-col align-right", []string{"flex-col", "align-right"}, ".flex-col.align-right", map[string]string{"align-items": "flex-end"}},
		{"flex-row reverse", []string{"flex-row", "reverse"}, ".flex-row.reverse", map[string]string{"flex-direction": "row-reverse"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := generate(t, tt.group)
			assert.Equal(t, tt.want, declarations(t, tbl, tt.selector))
		})
	}
}

func TestFlexCompanionsAreScopedPerElement(t *testing.T) {
	tbl := generate(t, []string{"flex"}, []string{"col", "reverse"})

	assert.Equal(t, []string{".flex"}, tbl.Selectors())
}

func TestFlow(t *testing.T) {
	tbl := generate(t, []string{"flow:small"}, []string{"flow", "reverse"})

	assert.Equal(t, map[string]string{"--flow-gap": "var(--small, .25rem)"}, declarations(t, tbl, `.flow\:small`))
	assert.Equal(t, map[string]string{"margin-top": "var(--flow-gap, 1em)"}, declarations(t, tbl, `.flow\:small > * + *`))
	assert.Equal(t, map[string]string{
		"margin-top":    "0",
		"margin-bottom": "var(--flow-gap, 1em)",
	}, declarations(t, tbl, `.flow.reverse > * + *`))

	_, ok := tbl.Lookup(`.flow > * + *`)
	assert.False(t, ok)
}

func TestFlowReverseAfterPlainFlow(t *testing.T) {
	tbl := generate(t, []string{"flow"}, []string{"flow", "reverse"})

	assert.Equal(t, []string{`.flow > * + *`, `.flow.reverse > * + *`}, tbl.Selectors())
	assert.Equal(t, map[string]string{
		"margin-top":    "0",
		"margin-bottom": "var(--flow-gap, 1em)",
	}, declarations(t, tbl, `.flow.reverse > * + *`))
}

func TestDivide(t *testing.T) {
	tbl := generate(t, []string{"divide-x"}, []string{"divide-h:300"})

	assert.Equal(t, map[string]string{"border-left": "1px solid currentColor"}, declarations(t, tbl, ".divide-x > * + *"))
	assert.Equal(t, map[string]string{"border-top": "1px solid hsla(var(--baseline-300))"}, declarations(t, tbl, `.divide-h\:300 > * + *`))
}

func TestAccessibilityAndDisabled(t *testing.T) {
	tbl := generate(t, []string{"sr-only", "disabled"})

	sr := declarations(t, tbl, ".sr-only")
	assert.Equal(t, "absolute", sr["position"])
	assert.Equal(t, "rect(0, 0, 0, 0)", sr["clip"])
	assert.Len(t, sr, 9)
	assert.Equal(t, map[string]string{"pointer-events": "none"}, declarations(t, tbl, ".disabled"))
}

func TestSafelist(t *testing.T) {
	g := NewGenerator(nil, Config{Safelist: []string{"flex col", "  ", "m:large"}})

	tbl := g.Generate(nil)

	assert.Equal(t, []string{".flex", ".flex.col", `.m\:large`}, tbl.Selectors())
}

func TestGenerateIsDeterministic(t *testing.T) {
	groups := [][]string{{"flex", "col", "align-top", "gap:small"}, {"m-y:base", "color:primary"}}

	a := generate(t, groups...)
	b := generate(t, groups...)

	assert.Equal(t, a.Selectors(), b.Selectors())
}
