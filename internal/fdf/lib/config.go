// Package lib contains the core, reusable services for the fdf application.
package lib

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/denormal/go-gitignore"
)

// IgnoreFilename is the per-argument file holding extra exclusion patterns.
const IgnoreFilename = ".fdfignore"

// IgnoreRules decides which discovered paths are dropped before they are
// queued. Patterns use gitignore syntax and are matched against the path
// relative to the argument it was found under.
type IgnoreRules struct {
	patterns []string

	// matchers caches one compiled matcher per argument root.
	matchers map[string]gitignore.GitIgnore
	mu       sync.Mutex
}

// NewIgnoreRules compiles nothing up front; matchers are built per root on first use.
func NewIgnoreRules(patterns []string) *IgnoreRules {
	return &IgnoreRules{
		patterns: patterns,
		matchers: make(map[string]gitignore.GitIgnore),
	}
}

// IsIgnored reports whether path, found below root, should be skipped.
// Arguments themselves are never ignored.
func (r *IgnoreRules) IsIgnored(root, path string, isDir bool) bool {
	if r == nil {
		return false
	}

	relativePath, err := filepath.Rel(root, path)
	if err != nil || relativePath == "." {
		return false
	}
	// The gitignore library expects forward-slash separators, even on Windows.
	slashedPath := filepath.ToSlash(relativePath)

	r.mu.Lock()
	matcher, found := r.matchers[root]
	if !found {
		matcher = r.loadMatcher(root)
		r.matchers[root] = matcher
	}
	r.mu.Unlock()

	if matcher == nil {
		return false
	}
	match := matcher.Relative(slashedPath, isDir)
	if match == nil {
		return false
	}
	return match.Ignore()
}

// loadMatcher combines the configured patterns with the root's ignore file.
func (r *IgnoreRules) loadMatcher(root string) gitignore.GitIgnore {
	rawPatterns := make([]string, len(r.patterns))
	copy(rawPatterns, r.patterns)

	if content, err := os.ReadFile(filepath.Join(root, IgnoreFilename)); err == nil {
		rawPatterns = append(rawPatterns, strings.Split(string(content), "\n")...)
	}

	var finalPatterns []string
	for _, p := range rawPatterns {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			finalPatterns = append(finalPatterns, strings.ReplaceAll(trimmed, "\\", "/"))
		}
	}
	if len(finalPatterns) == 0 {
		return nil
	}

	return gitignore.New(
		strings.NewReader(strings.Join(finalPatterns, "\n")),
		root,
		// Skip malformed patterns and keep going.
		func(err gitignore.Error) bool { return true },
	)
}
