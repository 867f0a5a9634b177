package prompt

import (
	"errors"
	"sort"
)

var (
	// ErrInvalidProjectRoot is returned when the project path is missing or not a directory.
	ErrInvalidProjectRoot = errors.New("invalid project root")
	// ErrWriteOutput is returned when the output document cannot be created or written.
	ErrWriteOutput = errors.New("failed to write output")
)

// OutputSuffix is appended to the project directory name to form the default output file name.
const OutputSuffix = "_prompt.md"

// Options holds the configuration options for one prompt-building run.
type Options struct {
	Languages      string   // Comma-separated extensions without leading dots, e.g. "go,yaml,env".
	ProjectPath    string   // Root folder of the project.
	Include        []string // Files or directories to force-include, relative to the project root.
	Exclude        []string // Files or directories to force-exclude, relative to the project root.
	IgnorePatterns []string // Gitignore-style patterns excluded like Exclude.
	Output         string   // Output file; defaults to <project name>_prompt.md in the working directory.
	Tree           bool     // Prepend a tree of the emitted files.
}

// Selection is the resolved input of the collector.
type Selection struct {
	Root       string   // Absolute project root.
	Extensions []string // Extensions to match, without leading dots.
	Include    []string // Absolute include paths.
	Exclude    []string // Absolute exclude paths.
	Ignore     []string // Gitignore-style patterns matched against root-relative paths.
	Skip       []string // Absolute paths never collected, such as the output file itself.
}

// Document describes one output file to emit.
type Document struct {
	Root   string   // Absolute project root; headers are relative to it.
	Output string   // Destination path of the Markdown file.
	Files  []string // Absolute file paths in emission order.
	Tree   bool     // Write the file tree before the file blocks.
}

// EmitStats summarizes what the emitter wrote.
type EmitStats struct {
	Files        int // File blocks written.
	Placeholders int // Blocks whose content was replaced by a failure message.
	Bytes        int // Bytes written to the output.
}

// Result summarizes a completed run.
type Result struct {
	Output string // Path of the written document; empty when no files were found.
	EmitStats
}

// FileSet is a set of unique absolute file paths.
type FileSet struct {
	paths map[string]struct{}
}

// NewFileSet returns an empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{paths: make(map[string]struct{})}
}

// Add inserts path and reports whether it was not already present.
func (s *FileSet) Add(path string) bool {
	if _, ok := s.paths[path]; ok {
		return false
	}
	s.paths[path] = struct{}{}
	return true
}

// Remove deletes path from the set.
func (s *FileSet) Remove(path string) {
	delete(s.paths, path)
}

// Contains reports whether path is in the set.
func (s *FileSet) Contains(path string) bool {
	_, ok := s.paths[path]
	return ok
}

// Len returns the number of paths in the set.
func (s *FileSet) Len() int {
	return len(s.paths)
}

// Sorted returns the paths in lexical order.
func (s *FileSet) Sorted() []string {
	out := make([]string, 0, len(s.paths))
	for p := range s.paths {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
