package prompt

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/afero"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const fence = "```"

// Emit writes doc as a single Markdown file on fsys: an optional file tree,
// then for each file a backticked relative path header and a fenced block
// tagged with the file's extension. Files that cannot be decoded or read get
// a placeholder line and still count as processed. Any failure to write the
// output itself is returned wrapped in ErrWriteOutput; a partial file may
// remain.
func Emit(fsys afero.Fs, doc Document, logger *zap.Logger) (stats EmitStats, err error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("Writing prompt document", zap.String("output", doc.Output), zap.Int("files", len(doc.Files)))

	outFile, err := fsys.OpenFile(doc.Output, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		logger.Error("Failed to create output file", zap.String("file", doc.Output), zap.Error(err))
		return stats, fmt.Errorf("%w: failed to create output file %s: %v", ErrWriteOutput, doc.Output, err)
	}
	defer func() {
		if closeErr := outFile.Close(); closeErr != nil {
			logger.Error("Failed to close output file", zap.String("file", doc.Output), zap.Error(closeErr))
			err = multierr.Append(err, fmt.Errorf("%w: failed to close output file %s: %v", ErrWriteOutput, doc.Output, closeErr))
		}
	}()

	writer := bufio.NewWriter(outFile)

	if doc.Tree {
		relPaths := make([]string, 0, len(doc.Files))
		for _, path := range doc.Files {
			relPaths = append(relPaths, relativePath(doc.Root, path))
		}
		section := formatTreeSection(filepath.Base(doc.Root), relPaths)
		n, werr := writer.WriteString(section)
		stats.Bytes += n
		if werr != nil {
			logger.Error("Failed to write tree to output file", zap.String("file", doc.Output), zap.Error(werr))
			return stats, fmt.Errorf("%w: failed to write tree: %v", ErrWriteOutput, werr)
		}
	}

	for _, path := range doc.Files {
		relPath := relativePath(doc.Root, path)
		content, ok := readFileContent(fsys, path, relPath, logger)
		if !ok {
			stats.Placeholders++
		}

		n, werr := writer.WriteString(FormatBlock(relPath, FenceLanguage(path), content))
		stats.Bytes += n
		if werr != nil {
			logger.Error("Failed to write content to output file",
				zap.String("file", doc.Output),
				zap.String("contentPath", relPath),
				zap.Error(werr))
			return stats, fmt.Errorf("%w: failed to write %s: %v", ErrWriteOutput, relPath, werr)
		}
		stats.Files++
	}

	if err := writer.Flush(); err != nil {
		logger.Error("Failed to flush output file", zap.String("file", doc.Output), zap.Error(err))
		return stats, fmt.Errorf("%w: failed to flush output: %v", ErrWriteOutput, err)
	}

	return stats, nil
}

// readFileContent returns the text of path, or a placeholder and false when
// the file cannot be read or is not valid UTF-8.
func readFileContent(fsys afero.Fs, path, relPath string, logger *zap.Logger) (string, bool) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		logger.Warn("Failed to read file", zap.String("filePath", path), zap.Error(err))
		return fmt.Sprintf("Failed to read file %s (read error).", relPath), false
	}
	if !utf8.Valid(data) {
		logger.Warn("File is not valid UTF-8", zap.String("filePath", path))
		return fmt.Sprintf("Failed to read file %s (encoding error).", relPath), false
	}
	logger.Debug("Read file content", zap.String("filePath", path), zap.Int("contentSizeBytes", len(data)))
	return string(data), true
}

// FormatBlock renders one file entry:
//
//	`rel/path`:
//
//	```lang
//	content
//	```
//
// followed by a blank line.
func FormatBlock(relPath, language, content string) string {
	var b strings.Builder
	b.Grow(len(relPath) + len(language) + len(content) + 16)
	b.WriteString("`" + relPath + "`:\n\n")
	b.WriteString(fence + language + "\n")
	b.WriteString(content)
	b.WriteString("\n" + fence + "\n\n")
	return b.String()
}

// FenceLanguage returns the fence language tag for path: its extension
// without the dot. Dotfiles without a further dot, and names ending in a dot,
// have no tag.
func FenceLanguage(path string) string {
	name := filepath.Base(path)
	name = strings.TrimLeft(name, ".")
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return ""
	}
	return name[idx+1:]
}

func formatTreeSection(rootName string, relPaths []string) string {
	return "Project structure:\n\n" + fence + "\n" + RenderTree(rootName, relPaths) + fence + "\n\n"
}
