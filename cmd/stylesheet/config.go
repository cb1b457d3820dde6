package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"

	"github.com/yacobolo/stylesheet"
)

const defaultConfigPath = ".stylesheet.yaml"

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// Flag names double as config keys, so a flag left at its default
	// does not shadow a value from the file or the environment.
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", k), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// STYLESHEET_SKIP_INVALID -> skip-invalid
	if err := k.Load(env.Provider("STYLESHEET_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "STYLESHEET_")),
			"_", "-",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// buildConfig constructs the library's Config from koanf state.
func buildConfig() stylesheet.Config {
	return stylesheet.Config{
		Sources:        getStrings("source", []string{"assets/styles/**/*.css"}),
		Inline:         getStrings("inline", nil),
		Templates:      getStrings("templates", []string{"templates/**/*.{html,latte,twig,php}"}),
		Output:         getString("output", "public/app.css"),
		Baseline:       getString("baseline", ""),
		Primary:        getString("primary", ""),
		Strict:         getBool("strict", false),
		Pretty:         getBool("pretty", false),
		NoCoalesce:     getBool("no-coalesce", false),
		SkipInvalid:    getBool("skip-invalid", false),
		Force:          getBool("force", false),
		IterationLimit: getInt("iteration-limit", 0),
		Safelist:       getStrings("safelist", nil),
	}
}

// buildOutputOptions constructs the reporter options from koanf state.
func buildOutputOptions() stylesheet.OutputOptions {
	return stylesheet.OutputOptions{
		Color:      getString("color", "auto"),
		PrintLines: getBool("print-lines", true),
		PrintKind:  getBool("print-kind", true),
	}
}

// getString returns the value at key, or defaultVal when it is unset or empty.
func getString(key, defaultVal string) string {
	if v := k.String(key); v != "" {
		return v
	}
	return defaultVal
}

// getStrings returns the list at key, or defaultVal when it is unset or empty.
func getStrings(key string, defaultVal []string) []string {
	if v := k.Strings(key); len(v) > 0 {
		return v
	}
	return defaultVal
}

func getBool(key string, defaultVal bool) bool {
	if k.Exists(key) {
		return k.Bool(key)
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	if k.Exists(key) {
		return k.Int(key)
	}
	return defaultVal
}
