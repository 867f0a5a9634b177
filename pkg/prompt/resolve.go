package prompt

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ResolveRoot returns the absolute, cleaned project root. The path must exist
// on fsys and be a directory.
func ResolveRoot(fsys afero.Fs, path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: path '' does not exist or is not a directory", ErrInvalidProjectRoot)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: failed to get absolute path of '%s': %v", ErrInvalidProjectRoot, path, err)
	}

	info, err := fsys.Stat(absPath)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: path '%s' does not exist or is not a directory", ErrInvalidProjectRoot, path)
	}

	return absPath, nil
}

// ParseExtensions splits a comma-separated extension list. Entries are
// trimmed and empty ones dropped; nothing else is validated.
func ParseExtensions(csv string) []string {
	var exts []string
	for _, ext := range strings.Split(csv, ",") {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		exts = append(exts, ext)
	}
	return exts
}

// ResolvePaths joins every path onto root. Existence is not checked here.
func ResolvePaths(root string, paths []string) []string {
	resolved := make([]string, 0, len(paths))
	for _, p := range paths {
		resolved = append(resolved, filepath.Join(root, p))
	}
	return resolved
}

// DefaultOutput derives the output file name from the project directory name.
// A filesystem root has no name and yields the bare suffix.
func DefaultOutput(root string) string {
	name := filepath.Base(root)
	if name == string(filepath.Separator) || name == "." {
		name = ""
	}
	return name + OutputSuffix
}

// relativePath returns path relative to root using forward slashes, falling
// back to the absolute path when no relative form exists.
func relativePath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}
