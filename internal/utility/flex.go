package utility

import "github.com/yacobolo/stylesheet/internal/ast"

// flexBuilder composes a flex container from the classes next to it:
//
//	<div class="flex col reverse align-left wrap">
//
// gives .flex, .flex.col.reverse, .flex.col.align-left and .flex.wrap.
// flex-col and flex-row carry their direction in the anchor itself.
type flexBuilder struct{}

func (flexBuilder) Build(anchor Token, group Group) []Rule {
	a := anchor.Raw
	reverse := group.Has("reverse")

	var (
		out    []Rule
		column bool
		// classes qualifying direction-dependent rules
		axis []string
	)

	switch anchor.Name {
	case "flex":
		out = append(out, rule(a, decl("display", "flex")))

		dir := ""
		switch {
		case group.Has("col"):
			dir = "col"
		case group.Has("flow"):
			dir = "flow"
		}
		column = dir != ""

		switch {
		case column && reverse:
			out = append(out, compound([]string{a, dir, "reverse"}, decl("flex-direction", "column-reverse")))
		case column:
			out = append(out, compound([]string{a, dir}, decl("flex-direction", "column")))
		case reverse:
			out = append(out, compound([]string{a, "reverse"}, decl("flex-direction", "row-reverse")))
		}
		axis = []string{a}
		if column {
			axis = append(axis, dir)
		}
	case "flex-col", "flex-row":
		column = anchor.Name == "flex-col"
		direction := "row"
		if column {
			direction = "column"
		}
		out = append(out, rule(a, decl("display", "flex"), decl("flex-direction", direction)))
		if reverse {
			out = append(out, compound([]string{a, "reverse"}, decl("flex-direction", direction+"-reverse")))
		}
		axis = []string{a}
	default:
		return nil
	}

	if group.Has("center") {
		out = append(out, compound([]string{a, "center"},
			decl("align-items", "center"),
			decl("justify-content", "center")))
	}

	for _, align := range alignments {
		if !group.Has(align.class) {
			continue
		}
		d := align.row
		if column {
			d = align.column
		}
		out = append(out, compound(with(axis, align.class), d))
	}

	for _, f := range modifiers {
		if group.Has(f.class) {
			out = append(out, compound([]string{a, f.class}, f.decl))
		}
	}
	return out
}

type alignment struct {
	class       string
	row, column ast.Declaration
}

// Alignment follows the visual edge: in a row the horizontal edges map to
// justify-content, in a column to align-items.
var alignments = []alignment{
	{"align-top", decl("align-items", "flex-start"), decl("justify-content", "flex-start")},
	{"align-center", decl("justify-content", "center"), decl("justify-content", "center")},
	{"align-baseline", decl("align-items", "baseline"), decl("align-items", "baseline")},
	{"align-left", decl("justify-content", "flex-start"), decl("align-items", "flex-start")},
	{"align-right", decl("justify-content", "flex-end"), decl("align-items", "flex-end")},
	{"align-bottom", decl("align-items", "flex-end"), decl("justify-content", "flex-end")},
}

var modifiers = []struct {
	class string
	decl  ast.Declaration
}{
	{"justify-between", decl("justify-content", "space-between")},
	{"justify-around", decl("justify-content", "space-around")},
	{"justify-evenly", decl("justify-content", "space-evenly")},
	{"grow", decl("flex-grow", "1")},
	{"shrink", decl("flex-shrink", "1")},
	{"nowrap", decl("flex-wrap", "nowrap")},
	{"wrap", decl("flex-wrap", "wrap")},
}

func compound(classes []string, decls ...ast.Declaration) Rule {
	return Rule{Classes: classes, Declarations: decls}
}

func with(prefix []string, class string) []string {
	out := make([]string, 0, len(prefix)+1)
	out = append(out, prefix...)
	return append(out, class)
}
