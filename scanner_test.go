package stylesheet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractGroups(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     [][]string
	}{
		{
			name:     "single element",
			template: `<div class="flex col reverse">x</div>`,
			want:     [][]string{{"flex", "col", "reverse"}},
		},
		{
			name:     "one group per element",
			template: `<ul class="flow:small"><li class="m-x:small color:primary">a</li></ul>`,
			want:     [][]string{{"flow:small"}, {"m-x:small", "color:primary"}},
		},
		{
			name:     "single quoted attribute",
			template: `<span class='sr-only'>label</span>`,
			want:     [][]string{{"sr-only"}},
		},
		{
			name:     "html comment",
			template: "<!-- <div class=\"hidden\"> -->\n<p class=\"font-size:large\">x</p>",
			want:     [][]string{{"font-size:large"}},
		},
		{
			name:     "twig latte and blade comments",
			template: `{# <a class="twig"> #}{* <a class="latte"> *}{{-- <a class="blade"> --}}<a class="bg:300">x</a>`,
			want:     [][]string{{"bg:300"}},
		},
		{
			name:     "line comment but not url",
			template: "<a href=\"https://example.com\" class=\"p\">x</a>\n// <b class=\"gone\">",
			want:     [][]string{{"p"}},
		},
		{
			name:     "template expressions dropped",
			template: `<div class="card {$active ? 'is-active'} btn--primary m-y {{ cls|raw }} w:full">x</div>`,
			want:     [][]string{{"card", "?", "m-y", "w:full"}},
		},
		{
			name:     "empty class attribute",
			template: `<div class="">x</div>`,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractGroups([]byte(tt.template)))
		})
	}
}

func TestClassTokens(t *testing.T) {
	got := classTokens("flex (col) a??b x|y {x} 'quoted' gap:small")
	assert.Equal(t, []string{"flex", "col", "gap:small"}, got)
}

func TestShouldSkipFile(t *testing.T) {
	s := NewScanner(nil)

	assert.True(t, s.shouldSkipFile("templates/composer.lock"))
	assert.False(t, s.shouldSkipFile("templates/index.html"))
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "index.html"), `<div class="flex col">x</div>`)
	writeFile(t, filepath.Join(dir, "partials", "nav.latte"), `<nav class="m-x:small">{* <a class="old"> *}</nav>`)
	writeFile(t, filepath.Join(dir, "yarn.lock"), `<p class="never">`)

	result, err := NewScanner(nil).Scan([]string{filepath.Join(dir, "**", "*")})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Stats.FilesScanned)
	assert.Equal(t, 1, result.Stats.FilesSkipped)
	assert.ElementsMatch(t, [][]string{{"flex", "col"}, {"m-x:small"}}, result.Groups)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
