package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".stylesheet.yaml")
	configContent := `
source:
  - "css/**/*.css"
templates:
  - "views/**/*.latte"
output: web/site.css
baseline: "#3366cc"
skip-invalid: true
iteration-limit: 5000
safelist:
  - "flex col"
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	cfg := buildConfig()
	assert.Equal(t, []string{"css/**/*.css"}, cfg.Sources)
	assert.Equal(t, []string{"views/**/*.latte"}, cfg.Templates)
	assert.Equal(t, "web/site.css", cfg.Output)
	assert.Equal(t, "#3366cc", cfg.Baseline)
	assert.True(t, cfg.SkipInvalid)
	assert.Equal(t, 5000, cfg.IterationLimit)
	assert.Equal(t, []string{"flex col"}, cfg.Safelist)
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	require.NoError(t, loadConfigFromPath("/nonexistent/.stylesheet.yaml"))

	cfg := buildConfig()
	assert.Equal(t, []string{"assets/styles/**/*.css"}, cfg.Sources)
	assert.Equal(t, []string{"templates/**/*.{html,latte,twig,php}"}, cfg.Templates)
	assert.Equal(t, "public/app.css", cfg.Output)
	assert.Empty(t, cfg.Baseline)
	assert.False(t, cfg.Strict)
	assert.False(t, cfg.Force)
	assert.Zero(t, cfg.IterationLimit)
	assert.NoError(t, cfg.Validate())

	opts := buildOutputOptions()
	assert.Equal(t, "auto", opts.Color)
	assert.True(t, opts.PrintLines)
	assert.True(t, opts.PrintKind)
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".stylesheet.yaml")
	configContent := `
output: from-file.css
skip-invalid: false
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	t.Setenv("STYLESHEET_OUTPUT", "from-env.css")
	t.Setenv("STYLESHEET_SKIP_INVALID", "true")

	require.NoError(t, loadConfigFromPath(configPath))

	assert.Equal(t, "from-env.css", k.String("output"))
	assert.True(t, k.Bool("skip-invalid"))
	assert.True(t, buildConfig().SkipInvalid)
}

func TestInitCommand_CreatesConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".stylesheet.yaml")

	cmd := rootCmd
	cmd.SetArgs([]string{"init", "--config", path})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "output: public/app.css")
	assert.Contains(t, string(data), "skip-invalid: false")
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".stylesheet.yaml")
	require.NoError(t, os.WriteFile(path, []byte("existing"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init", "--config", path})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".stylesheet.yaml")
	require.NoError(t, os.WriteFile(path, []byte("existing"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init", "--config", path, "--force"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "output: public/app.css")
}

func TestDefaultConfigLoads(t *testing.T) {
	resetKoanf()

	path := filepath.Join(t.TempDir(), ".stylesheet.yaml")
	require.NoError(t, writeDefaultConfig(path, false))
	require.NoError(t, loadConfigFromPath(path))

	cfg := buildConfig()
	assert.Equal(t, "public/app.css", cfg.Output)
	assert.Equal(t, "hsl(220 10% 50%)", cfg.Baseline)
	assert.Empty(t, cfg.Safelist)
	assert.NoError(t, cfg.Validate())
}

func TestBuildCommand(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.css"), []byte("a { color: red }"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte(`<p class="m-x:small">x</p>`), 0644))
	output := filepath.Join(dir, "out", "app.css")

	var out bytes.Buffer
	cmd := rootCmd
	cmd.SetOut(&out)
	t.Cleanup(func() { cmd.SetOut(nil) })
	cmd.SetArgs([]string{
		"build",
		"--config", filepath.Join(dir, "missing.yaml"),
		"-s", filepath.Join(dir, "*.css"),
		"-t", filepath.Join(dir, "*.html"),
		"-o", output,
		"--format", "json",
	})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "a{color:red;}")
	assert.Contains(t, string(data), `.m-x\:small{`)
	assert.Contains(t, out.String(), `"written": true`)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd
	cmd.SetOut(&out)
	t.Cleanup(func() { cmd.SetOut(nil) })
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "stylesheet dev\n", out.String())
}

func TestGetHelpers(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.Equal(t, "default", getString("missing", "default"))
	assert.Equal(t, []string{"a"}, getStrings("missing", []string{"a"}))
	assert.True(t, getBool("missing", true))
	assert.Equal(t, 42, getInt("missing", 42))
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name           string
		verbose, quiet bool
		enabled        zapcore.Level
		disabled       zapcore.Level
	}{
		{"default", false, false, zapcore.InfoLevel, zapcore.DebugLevel},
		{"verbose", true, false, zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{"quiet", false, true, zapcore.WarnLevel, zapcore.InfoLevel},
		{"quiet wins", true, true, zapcore.WarnLevel, zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := newLogger(&buf, tt.verbose, tt.quiet)
			assert.True(t, log.Core().Enabled(tt.enabled))
			assert.False(t, log.Core().Enabled(tt.disabled))
		})
	}
}
