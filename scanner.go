package stylesheet

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/html"
	"go.uber.org/zap"
)

var (
	// Template comment syntaxes, stripped before class extraction.
	commentPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?s)/\*.*?\*/`),       // PHP and JS block comments
		regexp.MustCompile(`(?m)(^|\s)//[^\n]*`),  // line comments, not URLs
		regexp.MustCompile(`(?s)<!--.*?-->`),      // HTML
		regexp.MustCompile(`(?s)\{\*.*?\*\}`),     // Latte
		regexp.MustCompile(`(?s)\{#.*?#\}`),       // Twig
		regexp.MustCompile(`(?s)\{\{--.*?--\}\}`), // Blade
	}

	// Single-quoted substrings inside a class value are template
	// expressions, e.g. class="card {$active ? 'is-active'}".
	quotedSubstring = regexp.MustCompile(`'[^']*'`)

	tokenStripper = strings.NewReplacer("(", "", ")", "", "'", "")
)

// Scanner harvests class groups from template files.
type Scanner struct {
	log    *zap.Logger
	ignore *ignore.GitIgnore
}

// NewScanner creates a scanner honoring the .gitignore in the working
// directory, when there is one. A nil logger disables logging.
func NewScanner(log *zap.Logger) *Scanner {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Scanner{log: log.Named("scanner")}
	if gi, err := ignore.CompileIgnoreFile(".gitignore"); err == nil {
		s.ignore = gi
	}
	return s
}

// ScanResult is the harvest of one scan.
type ScanResult struct {
	Files  []string
	Groups [][]string
	Stats  ScanStats
}

// Files expands the template globs, dropping lock files and gitignored
// paths.
func (s *Scanner) Files(patterns []string) ([]string, ScanStats, error) {
	return expandGlobPatterns(patterns, s.shouldSkipFile)
}

// shouldSkipFile rejects lock files and, for paths inside the project,
// anything .gitignore excludes.
func (s *Scanner) shouldSkipFile(path string) bool {
	if strings.HasSuffix(path, ".lock") {
		return true
	}
	if filepath.IsAbs(path) || s.ignore == nil {
		return false
	}
	return s.ignore.MatchesPath(path)
}

// Scan expands patterns and returns one group per class attribute found.
// Unreadable files are logged and skipped.
func (s *Scanner) Scan(patterns []string) (*ScanResult, error) {
	files, stats, err := s.Files(patterns)
	if err != nil {
		return nil, err
	}

	result := &ScanResult{Files: files, Stats: stats}
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			s.log.Warn("Skipping unreadable template", zap.String("file", file), zap.Error(err))
			continue
		}
		result.Groups = append(result.Groups, ExtractGroups(data)...)
	}

	s.log.Debug("Scanned templates",
		zap.Int("files", stats.FilesScanned),
		zap.Int("skipped", stats.FilesSkipped),
		zap.Int("groups", len(result.Groups)))
	return result, nil
}

// ExtractGroups returns the class tokens of every class attribute in a
// template, one group per attribute, with comments removed first.
func ExtractGroups(template []byte) [][]string {
	text := string(template)
	for _, re := range commentPatterns {
		text = re.ReplaceAllString(text, "$1")
	}

	var groups [][]string
	lexer := html.NewLexer(parse.NewInputString(text))
	for {
		tt, _ := lexer.Next()
		if tt == html.ErrorToken {
			// ErrorToken at EOF is normal
			break
		}
		if tt != html.AttributeToken || !strings.EqualFold(string(lexer.Text()), "class") {
			continue
		}
		if group := classTokens(unquote(string(lexer.AttrVal()))); len(group) > 0 {
			groups = append(groups, group)
		}
	}
	return groups
}

// classTokens splits a class attribute value into utility candidates.
// Template expressions are dropped: quoted substrings, tokens carrying
// braces, pipes, null coalescing or "--".
func classTokens(value string) []string {
	value = quotedSubstring.ReplaceAllString(value, " ")

	var tokens []string
	for _, tok := range strings.Fields(value) {
		if strings.Contains(tok, "--") || strings.ContainsAny(tok, "{}|") || strings.Contains(tok, "??") {
			continue
		}
		if tok = tokenStripper.Replace(tok); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
