// File: pkg/prompt/collect.go
package prompt

import (
	"os"
	"path/filepath"
	"strings"

	"project2prompt/pkg/ignore"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Collect gathers the files selected by sel: every file under the root whose
// name ends in one of the extensions, plus every included file and every file
// beneath an included directory. Excluded paths, their descendants, files
// matching an ignore pattern and skipped paths are then removed. Exclusion
// always wins over extension matches and includes.
func Collect(fsys afero.Fs, sel Selection, logger *zap.Logger) (*FileSet, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	files := NewFileSet()
	logger.Debug("Starting file collection",
		zap.String("root", sel.Root),
		zap.Strings("extensions", sel.Extensions),
		zap.Int("includeCount", len(sel.Include)),
		zap.Int("excludeCount", len(sel.Exclude)))

	if len(sel.Extensions) > 0 {
		suffixes := make([]string, 0, len(sel.Extensions))
		for _, ext := range sel.Extensions {
			suffixes = append(suffixes, "."+ext)
		}
		if err := walkFiles(fsys, sel.Root, logger, func(path string) {
			if hasAnySuffix(filepath.Base(path), suffixes) {
				files.Add(path)
			}
		}); err != nil {
			logger.Error("Error during extension traversal", zap.String("root", sel.Root), zap.Error(err))
			return nil, err
		}
	}

	for _, include := range sel.Include {
		info, err := fsys.Stat(include)
		if err != nil {
			logger.Warn("Included path does not exist or cannot be accessed", zap.String("path", include), zap.Error(err))
			continue
		}
		if !info.IsDir() {
			files.Add(include)
			continue
		}
		if err := walkFiles(fsys, include, logger, func(path string) { files.Add(path) }); err != nil {
			logger.Warn("Failed to traverse included directory", zap.String("dir", include), zap.Error(err))
		}
	}

	applyExclusions(files, sel, logger)

	logger.Debug("Completed file collection", zap.Int("files", files.Len()))
	return files, nil
}

// walkFiles calls add for every non-directory entry beneath dir. Entries that
// cannot be accessed are logged and skipped.
func walkFiles(fsys afero.Fs, dir string, logger *zap.Logger, add func(path string)) error {
	return afero.Walk(fsys, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			logger.Warn("Error accessing path during traversal", zap.String("path", path), zap.Error(err))
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			return nil
		}
		add(path)
		return nil
	})
}

// applyExclusions removes every candidate that is excluded, lies beneath an
// excluded directory, matches an ignore pattern, or is explicitly skipped.
func applyExclusions(files *FileSet, sel Selection, logger *zap.Logger) {
	var matcher *ignore.Matcher
	if len(sel.Ignore) > 0 {
		matcher = ignore.NewMatcher(logger)
		matcher.CompileLines(sel.Ignore...)
	}

	skip := make(map[string]struct{}, len(sel.Skip))
	for _, p := range sel.Skip {
		skip[filepath.Clean(p)] = struct{}{}
	}

	for _, path := range files.Sorted() {
		if _, ok := skip[path]; ok {
			logger.Debug("Skipping output document", zap.String("file", path))
			files.Remove(path)
			continue
		}
		if exclude, ok := excludedBy(path, sel.Exclude); ok {
			logger.Debug("Excluded file", zap.String("file", path), zap.String("exclude", exclude))
			files.Remove(path)
			continue
		}
		if matcher != nil {
			if matched, pattern := matcher.MatchesPathWithPattern(relativePath(sel.Root, path)); matched {
				logger.Debug("File matches ignore pattern", zap.String("file", path), zap.String("pattern", pattern.Line))
				files.Remove(path)
			}
		}
	}
}

// excludedBy returns the exclude path equal to path or containing it.
func excludedBy(path string, excludes []string) (string, bool) {
	for _, exclude := range excludes {
		exclude = filepath.Clean(exclude)
		if path == exclude || isAncestor(exclude, path) {
			return exclude, true
		}
	}
	return "", false
}

// isAncestor reports whether dir is a proper ancestor directory of path.
func isAncestor(dir, path string) bool {
	if !strings.HasSuffix(dir, string(filepath.Separator)) {
		dir += string(filepath.Separator)
	}
	return strings.HasPrefix(path, dir)
}

func hasAnySuffix(name string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
