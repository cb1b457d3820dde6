// Package stylesheet compiles CSS fragments and the utility classes used in
// templates into one ordered, deduplicated stylesheet.
//
// # Building
//
// Build discovers the sources, scans the templates, compiles and writes
// the output when anything changed:
//
//	cfg := stylesheet.Config{
//		Sources:   []string{"assets/styles/**/*.css"},
//		Templates: []string{"templates/**/*.{html,latte,twig}"},
//		Output:    "public/app.css",
//		Baseline:  "hsl(220 10% 50%)",
//		Primary:   "#3366cc",
//	}
//	result, err := stylesheet.Build(ctx, cfg, logger)
//
// Files whose name starts with an underscore are merged first, so partials
// such as _reset.css and _tokens.css lay the ground for everything else.
//
// # Utility classes
//
// Templates are scanned for class="..." attributes. Each element's class
// list is one group, and tokens such as m-x:small, flex, col or
// color:primary turn into rules:
//
//	<div class="flex col reverse m-x:small">
//
// yields .flex, .flex.col.reverse and .m-x\:small.
//
// # CLI Tool
//
// Install the stylesheet command with:
//
//	go install github.com/yacobolo/stylesheet/cmd/stylesheet@latest
package stylesheet

// Version is the release version, overridden at link time.
var Version = "dev"
