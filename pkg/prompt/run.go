// File: pkg/prompt/run.go
package prompt

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Run resolves opts, collects the matching files and writes the prompt
// document. Progress lines go to out. Finding no files is not an error: Run
// reports it and returns a Result with an empty Output.
func Run(fsys afero.Fs, opts Options, out io.Writer, logger *zap.Logger) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	startTime := time.Now()
	logger.Debug("Starting prompt build", zap.String("path", opts.ProjectPath), zap.String("languages", opts.Languages))

	root, err := ResolveRoot(fsys, opts.ProjectPath)
	if err != nil {
		logger.Error("Failed to resolve project root", zap.String("path", opts.ProjectPath), zap.Error(err))
		return Result{}, err
	}

	output := opts.Output
	if output == "" {
		output = DefaultOutput(root)
	}
	absOutput, err := filepath.Abs(output)
	if err != nil {
		return Result{}, fmt.Errorf("%w: failed to get absolute path of %s: %v", ErrWriteOutput, output, err)
	}

	sel := Selection{
		Root:       root,
		Extensions: ParseExtensions(opts.Languages),
		Include:    ResolvePaths(root, opts.Include),
		Exclude:    ResolvePaths(root, opts.Exclude),
		Ignore:     opts.IgnorePatterns,
		Skip:       []string{absOutput},
	}

	files, err := Collect(fsys, sel, logger)
	if err != nil {
		return Result{}, fmt.Errorf("failed to collect files: %w", err)
	}

	if files.Len() == 0 {
		logger.Debug("No files to process after filtering")
		fmt.Fprintf(out, "No files found with the specified extensions or included paths in '%s'.\n", opts.ProjectPath)
		return Result{}, nil
	}

	fmt.Fprintf(out, "Found %d files. Creating file %s...\n", files.Len(), output)

	stats, err := Emit(fsys, Document{
		Root:   root,
		Output: output,
		Files:  files.Sorted(),
		Tree:   opts.Tree,
	}, logger)
	if err != nil {
		return Result{Output: output, EmitStats: stats}, err
	}

	fmt.Fprintf(out, "Done. File '%s' created.\n", output)
	logger.Info("Prompt document written",
		zap.String("outputFile", output),
		zap.Int("totalFiles", stats.Files),
		zap.Int("placeholders", stats.Placeholders),
		zap.Duration("elapsed", time.Since(startTime)))
	return Result{Output: output, EmitStats: stats}, nil
}
