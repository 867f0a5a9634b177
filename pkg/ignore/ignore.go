// Package ignore matches slash-separated relative paths against
// gitignore-style patterns.
package ignore

import (
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// IgnorePattern encapsulates a compiled regular expression pattern,
// a negation flag, and metadata about the pattern's origin.
type IgnorePattern struct {
	Pattern *regexp.Regexp // Compiled regular expression for the pattern.
	Negate  bool           // Indicates if the pattern is a negation (starts with '!').
	Line    string         // Original pattern line.
	LineNo  int            // Position in the compiled input (1-based).
}

// Matcher represents an ordered collection of ignore patterns. The last
// pattern that matches a path decides the outcome.
type Matcher struct {
	Patterns []*IgnorePattern
	logger   *zap.Logger
}

// NewMatcher initializes an empty Matcher with an optional logger.
func NewMatcher(logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{
		Patterns: []*IgnorePattern{},
		logger:   logger,
	}
}

// CompileLines compiles pattern lines and appends them to the matcher.
// Blank lines and comments are skipped.
func (m *Matcher) CompileLines(lines ...string) {
	for _, line := range lines {
		pattern, negate := parsePatternLine(line)
		if pattern == nil {
			continue
		}
		ip := &IgnorePattern{
			Pattern: pattern,
			Negate:  negate,
			Line:    line,
			LineNo:  len(m.Patterns) + 1,
		}
		m.Patterns = append(m.Patterns, ip)
		m.logger.Debug("Compiled ignore pattern",
			zap.Int("lineNo", ip.LineNo),
			zap.String("pattern", ip.Line),
			zap.String("regexp", ip.Pattern.String()),
			zap.Bool("negate", ip.Negate))
	}
}

// Len reports the number of compiled patterns.
func (m *Matcher) Len() int {
	return len(m.Patterns)
}

// MatchesPath checks if a path matches any of the ignore patterns.
func (m *Matcher) MatchesPath(path string) bool {
	matches, _ := m.MatchesPathWithPattern(path)
	return matches
}

// MatchesPathWithPattern checks if a path matches any ignore pattern and returns
// the deciding pattern if applicable.
func (m *Matcher) MatchesPathWithPattern(path string) (bool, *IgnorePattern) {
	normalizedPath := strings.TrimPrefix(filepath.ToSlash(path), "./")

	var matchedPattern *IgnorePattern
	matches := false

	for _, pattern := range m.Patterns {
		if pattern.Pattern.MatchString(normalizedPath) {
			matchedPattern = pattern
			matches = !pattern.Negate
		}
	}

	return matches, matchedPattern
}

// parsePatternLine turns one pattern line into an anchored regular expression
// and a negation flag. It returns a nil expression for blank lines, comments,
// and patterns that fail to compile.
func parsePatternLine(line string) (*regexp.Regexp, bool) {
	trimmedLine := strings.TrimSpace(line)

	if trimmedLine == "" || strings.HasPrefix(trimmedLine, "#") {
		return nil, false
	}

	negate := false
	if strings.HasPrefix(trimmedLine, "!") {
		negate = true
		trimmedLine = strings.TrimPrefix(trimmedLine, "!")
	}

	// `\#` and `\!` stand for a literal leading character.
	if strings.HasPrefix(trimmedLine, `\#`) || strings.HasPrefix(trimmedLine, `\!`) {
		trimmedLine = trimmedLine[1:]
	}

	dirOnly := strings.HasSuffix(trimmedLine, "/")
	trimmedLine = strings.TrimRight(trimmedLine, "/")
	if trimmedLine == "" {
		return nil, false
	}

	// A slash anywhere but the end anchors the pattern to the root.
	anchored := strings.Contains(trimmedLine, "/")
	trimmedLine = strings.TrimPrefix(trimmedLine, "/")

	compiledRegex, err := regexp.Compile(anchorPattern(wildcardToRegex(trimmedLine), anchored, dirOnly))
	if err != nil {
		return nil, false
	}

	return compiledRegex, negate
}

// wildcardToRegex converts `**`, `*` and `?` wildcards to regex equivalents and
// quotes everything else.
func wildcardToRegex(pattern string) string {
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		rest := pattern[i:]
		switch {
		case strings.HasPrefix(rest, "**/"):
			b.WriteString(`(?:.*/)?`)
			i += 2
		case rest == "/**":
			b.WriteString(`/.*`)
			i += 2
		case strings.HasPrefix(rest, "**"):
			b.WriteString(`.*`)
			i++
		case pattern[i] == '*':
			b.WriteString(`[^/]*`)
		case pattern[i] == '?':
			b.WriteString(`[^/]`)
		case pattern[i] == '\\' && i+1 < len(pattern):
			i++
			b.WriteString(regexp.QuoteMeta(pattern[i : i+1]))
		default:
			b.WriteString(regexp.QuoteMeta(pattern[i : i+1]))
		}
	}
	return b.String()
}

// anchorPattern anchors the regex pattern to match the full path. Unanchored
// patterns may match at any directory depth; a directory-only pattern matches
// only what lies beneath a directory of that name.
func anchorPattern(pattern string, anchored, dirOnly bool) string {
	prefix := `^(?:.*/)?`
	if anchored {
		prefix = `^`
	}
	suffix := `(?:/.*)?$`
	if dirOnly {
		suffix = `/.*$`
	}
	return prefix + pattern + suffix
}
