package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yacobolo/stylesheet"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List the class groups found in templates",
	Long: `Scan the templates and print every harvested class group, one element
per line. Use it to check which utilities a build will generate.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		log := logger()
		defer func() { _ = log.Sync() }()

		result, err := stylesheet.NewScanner(log).Scan(buildConfig().Templates)
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}
		printGroups(cmd.OutOrStdout(), result)
		return nil
	},
}

func init() {
	scanCmd.Flags().StringSliceP("templates", "t", nil, "Glob patterns for templates to scan for classes")
}

func printGroups(w io.Writer, result *stylesheet.ScanResult) {
	for _, group := range result.Groups {
		fmt.Fprintln(w, strings.Join(group, " "))
	}
	if !getBool("quiet", false) {
		fmt.Fprintf(w, "\n%d files scanned, %d skipped, %d groups\n",
			result.Stats.FilesScanned, result.Stats.FilesSkipped, len(result.Groups))
	}
}
