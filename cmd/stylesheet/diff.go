package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/stylesheet"
)

// errOutputStale is returned by diff --exit-code when the output differs.
var errOutputStale = errors.New("output is out of date")

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Show how a fresh compile differs from the output file",
	Long: `Compile without writing and print the rules that would change in the
output file, "-" for removed and "+" for added.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		log := logger()
		defer func() { _ = log.Sync() }()

		cfg := buildConfig()
		result, err := stylesheet.Compile(cmd.Context(), cfg, log)
		if err != nil {
			return fmt.Errorf("compile failed: %w", err)
		}

		current, err := os.ReadFile(cfg.Output)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("read output: %w", err)
		}

		diff := stylesheet.Diff(string(current), result.CSS)
		fmt.Fprint(cmd.OutOrStdout(), diff)

		exitCode, _ := cmd.Flags().GetBool("exit-code")
		if exitCode && diff != "" {
			return errOutputStale
		}
		return nil
	},
}

func init() {
	addInputFlags(diffCmd)
	diffCmd.Flags().Bool("exit-code", false, "Exit 1 when the output is out of date")
}
