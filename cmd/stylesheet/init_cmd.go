package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .stylesheet.yaml config file",
	Long:  `Create a .stylesheet.yaml configuration file (or the --config path) with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path, _ := cmd.Flags().GetString("config")
		if path == "" {
			path = defaultConfigPath
		}

		if err := writeDefaultConfig(path, force); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
		return nil
	},
}

func writeDefaultConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := os.WriteFile(path, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

const defaultConfig = `# stylesheet configuration
# Every key can also be set as a flag (--skip-invalid) or an
# environment variable (STYLESHEET_SKIP_INVALID).

source:
  - "assets/styles/**/*.css"   # _partials.css are merged first
templates:
  - "templates/**/*.{html,latte,twig,php}"
output: public/app.css

# Seed colors, #hex or hsl(). Leave empty to skip a color family.
baseline: "hsl(220 10% 50%)"
primary: "hsl(250 80% 55%)"

# Class lists generated even when no template uses them
safelist: []

strict: false          # a second, differing @charset fails the build
skip-invalid: false    # report and skip sources that fail to parse
pretty: false
no-coalesce: false
iteration-limit: 0     # 0 = default

# Reporting
format: issues         # issues | summary | full | json
print-lines: true
print-kind: true
verbose: false
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
