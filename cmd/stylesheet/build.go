package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yacobolo/stylesheet"
)

var buildCmd = &cobra.Command{
	Use:     "build",
	Aliases: []string{"b"},
	Short:   "Compile the stylesheet",
	Long: `Discover the CSS sources, scan the templates for utility classes and
write one merged stylesheet. The build is skipped when the output is newer
than every input, and the file is left untouched when nothing changed.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runBuild,
}

func init() {
	addBuildFlags(buildCmd)
}

// addInputFlags registers the flags that select and compile the inputs.
func addInputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringSliceP("source", "s", nil, "Glob patterns for CSS sources (default assets/styles/**/*.css)")
	f.StringSlice("inline", nil, "Raw CSS merged after the sources")
	f.StringSliceP("templates", "t", nil, "Glob patterns for templates to scan for classes")
	f.StringP("output", "o", "", "Output file (default public/app.css)")
	f.String("baseline", "", "Baseline seed color, #hex or hsl()")
	f.String("primary", "", "Primary seed color, #hex or hsl()")
	f.StringSlice("safelist", nil, "Class lists always generated, e.g. \"flex col\"")
	f.Bool("strict", false, "Fail on a second, differing @charset")
	f.Bool("pretty", false, "Indent the output")
	f.Bool("no-coalesce", false, "Keep identical rule bodies under separate selectors")
	f.Bool("skip-invalid", false, "Report and skip sources that fail to parse")
	f.Int("iteration-limit", 0, "Parser budget per source (0 = default)")
}

func addBuildFlags(cmd *cobra.Command) {
	addInputFlags(cmd)
	f := cmd.Flags()
	f.Bool("force", false, "Rebuild even when the output is up to date")
	f.String("format", "issues", "Report format: issues|summary|full|json")
	f.Bool("print-lines", true, "Show source lines with issues")
	f.Bool("print-kind", true, "Show the error kind suffix on issues")
}

func runBuild(cmd *cobra.Command, _ []string) error {
	cfg := buildConfig()
	log := logger()
	defer func() { _ = log.Sync() }()

	result, err := stylesheet.Build(cmd.Context(), cfg, log)
	if result == nil {
		if err != nil {
			return fmt.Errorf("build failed: %w", err)
		}
		return errors.New("build failed")
	}

	if !getBool("quiet", false) {
		format := stylesheet.DetermineOutputFormat(getString("format", "issues"))
		if werr := stylesheet.WriteOutput(cmd.OutOrStdout(), result, format, buildOutputOptions()); werr != nil {
			return werr
		}
	}

	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	return nil
}
