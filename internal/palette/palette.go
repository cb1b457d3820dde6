// Package palette derives the theme custom properties from two seed colors.
//
// The baseline color yields ten --baseline-{step} variables per theme by
// replacing its lightness with the step table value; the primary color
// yields --primary and four tonal variants. The light and dark step tables
// mirror each other.
package palette

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Theme names.
const (
	Light = "light"
	Dark  = "dark"
)

// Step is one entry of a lightness table.
type Step struct {
	Key       int
	Lightness int
}

// Step tables, 50 through 900. Read-only.
var (
	LightSteps = []Step{
		{50, 1}, {100, 4}, {200, 9}, {300, 15}, {400, 35},
		{500, 85}, {600, 90}, {700, 93}, {800, 96}, {900, 99},
	}
	DarkSteps = []Step{
		{50, 99}, {100, 96}, {200, 93}, {300, 90}, {400, 85},
		{500, 35}, {600, 15}, {700, 9}, {800, 4}, {900, 1},
	}
)

// Variant is a named modification of the primary color.
type Variant struct {
	Name        string
	Adjustments []Adjustment
}

// PrimaryVariants are emitted in this order for every theme. Read-only.
var PrimaryVariants = []Variant{
	{Name: ""},
	{Name: "tint", Adjustments: []Adjustment{Shift(Lightness, 8)}},
	{Name: "dull", Adjustments: []Adjustment{Shift(Saturation, -8), Shift(Lightness, 14)}},
	{Name: "soft", Adjustments: []Adjustment{Shift(Saturation, -24), Shift(Lightness, 26)}},
	{Name: "full", Adjustments: []Adjustment{Set(Lightness, 99)}},
}

// Variable is one custom property.
type Variable struct {
	Name  string
	Value string
}

// Theme is the variable set for one color scheme.
type Theme struct {
	Name      string
	Variables []Variable
}

// Themes holds both generated schemes.
type Themes struct {
	Light Theme
	Dark  Theme
}

// Generator builds Themes. It holds no state besides the logger.
type Generator struct {
	log *zap.Logger
}

// NewGenerator creates a generator. A nil logger disables logging.
func NewGenerator(log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{log: log.Named("palette")}
}

// Build derives both themes from the seed colors. An empty seed skips its
// variable family with a warning; an unparsable seed is an error.
func (g *Generator) Build(baseline, primary string) (Themes, error) {
	themes := Themes{
		Light: Theme{Name: Light},
		Dark:  Theme{Name: Dark},
	}

	if strings.TrimSpace(baseline) == "" {
		g.log.Warn("Baseline color not set, skipping baseline variables")
	} else {
		base, err := ParseHSL(baseline)
		if err != nil {
			return Themes{}, fmt.Errorf("baseline color: %w", err)
		}
		themes.Light.Variables = append(themes.Light.Variables, steps(base, LightSteps)...)
		themes.Dark.Variables = append(themes.Dark.Variables, steps(base, DarkSteps)...)
	}

	if strings.TrimSpace(primary) == "" {
		g.log.Warn("Primary color not set, skipping primary variables")
	} else {
		p, err := ParseHSL(primary)
		if err != nil {
			return Themes{}, fmt.Errorf("primary color: %w", err)
		}
		vars := variants(p)
		themes.Light.Variables = append(themes.Light.Variables, vars...)
		themes.Dark.Variables = append(themes.Dark.Variables, vars...)
	}

	g.log.Debug("Built palette",
		zap.Int("light", len(themes.Light.Variables)),
		zap.Int("dark", len(themes.Dark.Variables)))

	return themes, nil
}

func steps(base HSL, table []Step) []Variable {
	out := make([]Variable, 0, len(table))
	for _, s := range table {
		out = append(out, Variable{
			Name:  VariableName("baseline", fmt.Sprint(s.Key)),
			Value: base.Modify(Set(Lightness, s.Lightness)).String(),
		})
	}
	return out
}

func variants(primary HSL) []Variable {
	out := make([]Variable, 0, len(PrimaryVariants))
	for _, v := range PrimaryVariants {
		out = append(out, Variable{
			Name:  VariableName("primary", v.Name),
			Value: primary.Modify(v.Adjustments...).String(),
		})
	}
	return out
}

// VariableName joins the non-empty, distinct parts into a custom property
// name: ("baseline", "50") is "--baseline-50", ("primary", "primary") and
// ("primary", "") are both "--primary".
func VariableName(parts ...string) string {
	seen := make(map[string]bool, len(parts))
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, "- ")
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		kept = append(kept, p)
	}
	return "--" + strings.Join(kept, "-")
}
