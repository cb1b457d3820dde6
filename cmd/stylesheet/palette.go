package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yacobolo/stylesheet/internal/compiler"
	"github.com/yacobolo/stylesheet/internal/palette"
)

var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "Print the theme variables for the seed colors",
	Long: `Generate the light and dark baseline and primary color families from
--baseline and --primary and print them as CSS custom properties.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		log := logger()
		defer func() { _ = log.Sync() }()

		cfg := buildConfig()
		themes, err := palette.NewGenerator(log).Build(cfg.Baseline, cfg.Primary)
		if err != nil {
			return err
		}
		printTheme(cmd.OutOrStdout(), themes.Light)
		printTheme(cmd.OutOrStdout(), themes.Dark)
		return nil
	},
}

func init() {
	f := paletteCmd.Flags()
	f.String("baseline", "", "Baseline seed color, #hex or hsl()")
	f.String("primary", "", "Primary seed color, #hex or hsl()")
}

func printTheme(w io.Writer, theme palette.Theme) {
	fmt.Fprintf(w, "%s {\n", compiler.ThemeSelector(theme.Name))
	for _, v := range theme.Variables {
		fmt.Fprintf(w, "  %s: %s;\n", v.Name, v.Value)
	}
	fmt.Fprintln(w, "}")
}
