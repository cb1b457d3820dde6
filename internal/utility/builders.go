package utility

import "github.com/yacobolo/stylesheet/internal/ast"

// RuleBuilder turns one anchor token into rules. group is the element the
// anchor was found on; builders that do not compose ignore it.
type RuleBuilder interface {
	Build(anchor Token, group Group) []Rule
}

// registry maps triggers to builders. Read-only.
var registry = map[string]RuleBuilder{
	"disabled": disabledBuilder{},
	"sr":       srBuilder{},
	"flow":     flowBuilder{},
	"divide":   divideBuilder{},
	"h":        sizeBuilder{fallback: "var(--height)", variants: extents("height")},
	"w":        sizeBuilder{fallback: "var(--width)", variants: extents("width")},
	"gap": sizeBuilder{fallback: "var(--base)", variants: map[string][]string{
		"":  {"gap"},
		"x": {"column-gap"},
		"y": {"row-gap"},
	}},
	"flex": flexBuilder{},
	"m":    sizeBuilder{fallback: "var(--margin)", variants: sides("margin")},
	"p":    sizeBuilder{fallback: "var(--padding)", variants: sides("padding")},
	"r": sizeBuilder{fallback: "var(--radius)", variants: map[string][]string{
		"":  {"border-radius"},
		"l": {"border-top-left-radius", "border-bottom-left-radius"},
		"r": {"border-top-right-radius", "border-bottom-right-radius"},
		"t": {"border-top-left-radius", "border-top-right-radius"},
		"b": {"border-bottom-right-radius", "border-bottom-left-radius"},
	}},
	"font":  fontBuilder{},
	"color": colorBuilder{property: "color"},
	"bg":    colorBuilder{property: "background"},
	"shadow": sizeBuilder{
		fallback: "var(--shadow)",
		variants: map[string][]string{"": {"box-shadow"}},
		literal:  true,
	},
}

// Lookup returns the builder registered for trigger.
func Lookup(trigger string) (RuleBuilder, bool) {
	b, ok := registry[trigger]
	return b, ok
}

func sides(property string) map[string][]string {
	return map[string][]string{
		"":  {property},
		"x": {property + "-left", property + "-right"},
		"y": {property + "-top", property + "-bottom"},
		"t": {property + "-top"},
		"r": {property + "-right"},
		"b": {property + "-bottom"},
		"l": {property + "-left"},
	}
}

func extents(property string) map[string][]string {
	return map[string][]string{
		"":    {property},
		"min": {"min-" + property},
		"max": {"max-" + property},
	}
}

// sizeBuilder sets every property of the anchor's variant to the scale
// value of its modifier, or to fallback without one. literal skips the
// scale lookup.
type sizeBuilder struct {
	fallback string
	variants map[string][]string
	literal  bool
}

func (b sizeBuilder) Build(anchor Token, _ Group) []Rule {
	props, ok := b.variants[anchor.Variant]
	if !ok {
		return nil
	}
	value := b.fallback
	switch {
	case !anchor.HasModifier():
	case b.literal:
		value = anchor.Modifier
	default:
		value = ResolveSize(anchor.Modifier)
	}
	decls := make([]ast.Declaration, len(props))
	for i, p := range props {
		decls[i] = decl(p, value)
	}
	return []Rule{rule(anchor.Raw, decls...)}
}

type colorBuilder struct {
	property string
}

func (b colorBuilder) Build(anchor Token, _ Group) []Rule {
	if anchor.Variant != "" {
		return nil
	}
	value, ok := ResolveColor(anchor.Modifier)
	if !ok {
		return nil
	}
	return []Rule{rule(anchor.Raw, decl(b.property, value))}
}

type fontBuilder struct{}

func (fontBuilder) Build(anchor Token, _ Group) []Rule {
	switch anchor.Variant {
	case "size":
		value := "var(--font-size)"
		if anchor.HasModifier() {
			value = ResolveSize(anchor.Modifier)
		}
		return []Rule{rule(anchor.Raw, decl("font-size", value))}
	case "color":
		value, ok := ResolveColor(anchor.Modifier)
		if !ok {
			return nil
		}
		return []Rule{rule(anchor.Raw, decl("color", value))}
	case "weight":
		if !anchor.HasModifier() {
			return nil
		}
		return []Rule{rule(anchor.Raw, decl("font-weight", anchor.Modifier))}
	}
	return nil
}

type disabledBuilder struct{}

func (disabledBuilder) Build(anchor Token, _ Group) []Rule {
	if anchor.Name != "disabled" {
		return nil
	}
	return []Rule{rule(anchor.Raw, decl("pointer-events", "none"))}
}

type srBuilder struct{}

func (srBuilder) Build(anchor Token, _ Group) []Rule {
	if anchor.Variant != "only" {
		return nil
	}
	return []Rule{rule(anchor.Raw,
		decl("position", "absolute"),
		decl("width", "1px"),
		decl("height", "1px"),
		decl("padding", "0"),
		decl("margin", "-1px"),
		decl("overflow", "hidden"),
		decl("clip", "rect(0, 0, 0, 0)"),
		decl("white-space", "nowrap"),
		decl("border-width", "0"),
	)}
}

const siblings = " > * + *"

// flowBuilder spaces stacked children through --flow-gap. A reversed flow
// moves the gap to the bottom edge.
type flowBuilder struct{}

func (flowBuilder) Build(anchor Token, group Group) []Rule {
	if anchor.Variant != "" {
		return nil
	}
	var out []Rule
	if anchor.HasModifier() {
		out = append(out, rule(anchor.Raw, decl("--flow-gap", ResolveSize(anchor.Modifier))))
	}
	if group.Has("reverse") {
		return append(out, Rule{
			Classes: []string{anchor.Raw, "reverse"},
			Suffix:  siblings,
			Declarations: []ast.Declaration{
				decl("margin-top", "0"),
				decl("margin-bottom", "var(--flow-gap, 1em)"),
			},
		})
	}
	return append(out, Rule{
		Classes:      []string{anchor.Raw},
		Suffix:       siblings,
		Declarations: []ast.Declaration{decl("margin-top", "var(--flow-gap, 1em)")},
	})
}

// divideBuilder draws a border between siblings: divide-x (alias -v) on
// the left edge, divide-y (alias -h) on the top edge.
type divideBuilder struct{}

func (divideBuilder) Build(anchor Token, _ Group) []Rule {
	var property string
	switch anchor.Variant {
	case "x", "v":
		property = "border-left"
	case "y", "h":
		property = "border-top"
	default:
		return nil
	}
	color, ok := ResolveColor(anchor.Modifier)
	if !ok {
		color = "currentColor"
	}
	return []Rule{{
		Classes:      []string{anchor.Raw},
		Suffix:       siblings,
		Declarations: []ast.Declaration{decl(property, "1px solid "+color)},
	}}
}
