package scan

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gobwas/glob"
	"github.com/mvp-joe/symextract/internal/logging"
)

var (
	// ErrPathNotFound is returned when a pattern is neither an existing path
	// nor a glob.
	ErrPathNotFound = errors.New("path does not exist")

	// ErrInvalidPattern is returned for malformed glob or ignore patterns.
	ErrInvalidPattern = errors.New("invalid pattern")
)

// globMeta are the characters that turn a path into a glob pattern.
const globMeta = "*?[{"

// ignoreMatcher matches slash-separated relative paths against ignore globs.
type ignoreMatcher struct {
	globs []glob.Glob
}

func newIgnoreMatcher(patterns []string) (*ignoreMatcher, error) {
	m := &ignoreMatcher{}
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("%w: ignore %q: %v", ErrInvalidPattern, pattern, err)
		}
		m.globs = append(m.globs, g)

		// "**/*.md" should also match "README.md" at the walk root.
		if trimmed, ok := strings.CutPrefix(pattern, "**/"); ok {
			if g, err := glob.Compile(trimmed, '/'); err == nil {
				m.globs = append(m.globs, g)
			}
		}
	}
	return m, nil
}

// match reports whether relPath, or relPath treated as a directory, is ignored.
// "node_modules/**" therefore also prunes the node_modules directory itself.
func (m *ignoreMatcher) match(relPath string) bool {
	for _, g := range m.globs {
		if g.Match(relPath) || g.Match(relPath+"/**") {
			return true
		}
	}
	return false
}

// Resolve expands pattern into a sorted list of file paths.
//
// An existing file resolves to itself. An existing directory resolves to every
// file beneath it. Otherwise a pattern containing glob metacharacters is
// expanded with doublestar (brace expansion and ** supported) and matched
// directories are expanded recursively. Ignore patterns apply to files found
// by directory expansion, relative to the expanded directory.
//
// A nested entry or glob match that cannot be read is skipped; only an
// unreadable directory given directly fails.
func Resolve(pattern string, ignore []string) ([]string, error) {
	return resolve(pattern, ignore, logging.Nop())
}

func resolve(pattern string, ignore []string, logger *slog.Logger) ([]string, error) {
	matcher, err := newIgnoreMatcher(ignore)
	if err != nil {
		return nil, err
	}

	info, statErr := os.Stat(pattern)
	switch {
	case statErr == nil && !info.IsDir():
		return []string{pattern}, nil
	case statErr == nil:
		files, err := walkDir(pattern, matcher, logger)
		if err != nil {
			return nil, err
		}
		sort.Strings(files)
		return files, nil
	case !strings.ContainsAny(pattern, globMeta):
		return nil, fmt.Errorf("%w: %s", ErrPathNotFound, pattern)
	}

	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err)
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			add(match)
			continue
		}
		nested, err := walkDir(match, matcher, logger)
		if err != nil {
			logger.Warn("skipping unreadable directory", "path", match, "error", err)
			continue
		}
		for _, path := range nested {
			add(path)
		}
	}

	sort.Strings(files)
	return files, nil
}

// walkDir returns all regular files beneath root that are not ignored.
func walkDir(root string, matcher *ignoreMatcher, logger *slog.Logger) ([]string, error) {
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logger.Warn("skipping unreadable path", "path", path, "error", err)
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if matcher.match(relPath) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.Mode().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return files, nil
}
