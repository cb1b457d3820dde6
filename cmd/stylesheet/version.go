package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yacobolo/stylesheet"
)

// The version is set at build time via ldflags:
//
//	go build -ldflags "-X github.com/yacobolo/stylesheet.Version=1.0.0" ./cmd/stylesheet
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of stylesheet",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "stylesheet %s\n", stylesheet.Version)
	},
}
