package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"project2prompt/pkg/prompt"

	"github.com/spf13/afero"
)

// writeTree creates files under dir.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

// chdir switches the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func runCLI(args ...string) (string, string, error) {
	rootCmd := NewRootCmd(afero.NewOsFs(), nil)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	err := execute(rootCmd, args)
	return stdout.String(), stderr.String(), err
}

func TestRootWritesPromptToWorkingDirectory(t *testing.T) {
	base := t.TempDir()
	project := filepath.Join(base, "myservice")
	writeTree(t, project, map[string]string{
		"main.go":            "package main\n",
		"config.yaml":        "port: 8080\n",
		"README.md":          "# myservice\n",
		"docs/usage.txt":     "usage\n",
		"internal/mock.go":   "package internal\n",
		"internal/server.go": "package internal\n",
	})
	work := filepath.Join(base, "work")
	if err := os.MkdirAll(work, 0o755); err != nil {
		t.Fatal(err)
	}
	chdir(t, work)

	stdout, stderr, err := runCLI("-l", "go,yaml", "-p", project,
		"-i", "README.md", "docs", "-e", "internal/mock.go")
	if err != nil {
		t.Fatalf("execute() error = %v, stderr = %s", err, stderr)
	}

	data, err := os.ReadFile(filepath.Join(work, "myservice_prompt.md"))
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	want := "`README.md`:\n\n```md\n# myservice\n\n```\n\n" +
		"`config.yaml`:\n\n```yaml\nport: 8080\n\n```\n\n" +
		"`docs/usage.txt`:\n\n```txt\nusage\n\n```\n\n" +
		"`internal/server.go`:\n\n```go\npackage internal\n\n```\n\n" +
		"`main.go`:\n\n```go\npackage main\n\n```\n\n"
	if string(data) != want {
		t.Errorf("document =\n%s\nwant\n%s", data, want)
	}
	if !strings.Contains(stdout, "Found 5 files") {
		t.Errorf("stdout = %q; want file count", stdout)
	}
}

func TestRootNoFilesFound(t *testing.T) {
	project := t.TempDir()
	writeTree(t, project, map[string]string{"sub/secret.go": "package sub\n"})
	out := filepath.Join(t.TempDir(), "out.md")

	stdout, _, err := runCLI("--lang", "go", "--path", project, "--exclude", "sub", "--output", out)
	if err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	if !strings.Contains(stdout, "No files found") {
		t.Errorf("stdout = %q; want no files found message", stdout)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output must not exist, stat error = %v", err)
	}
}

func TestRootInvalidPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	_, stderr, err := runCLI("-l", "go", "-p", missing)
	if !errors.Is(err, prompt.ErrInvalidProjectRoot) {
		t.Fatalf("execute() error = %v; want ErrInvalidProjectRoot", err)
	}
	if !strings.HasPrefix(stderr, "Error: ") || !strings.Contains(stderr, "does not exist or is not a directory") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRootRequiresFlags(t *testing.T) {
	for _, args := range [][]string{
		{"-p", "."},
		{"-l", "go"},
	} {
		if _, stderr, err := runCLI(args...); err == nil || !strings.Contains(stderr, "required flag") {
			t.Errorf("execute(%v) error = %v, stderr = %q; want required flag error", args, err, stderr)
		}
	}
}

func TestRootTreeAndIgnore(t *testing.T) {
	project := t.TempDir()
	writeTree(t, project, map[string]string{
		"a.go":      "a",
		"a_test.go": "test",
		"pkg/b.go":  "b",
	})
	out := filepath.Join(t.TempDir(), "out.md")

	if _, stderr, err := runCLI("-l", "go", "-p", project, "-x", "*_test.go", "--tree", "-o", out); err != nil {
		t.Fatalf("execute() error = %v, stderr = %s", err, stderr)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	doc := string(data)
	if !strings.HasPrefix(doc, "Project structure:\n\n```\n") {
		t.Errorf("document should start with the tree:\n%s", doc)
	}
	if strings.Contains(doc, "a_test.go") {
		t.Errorf("ignored file present:\n%s", doc)
	}
	if !strings.Contains(doc, "`pkg/b.go`:\n\n```go\nb\n```") {
		t.Errorf("missing pkg/b.go block:\n%s", doc)
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := runCLI("version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(stdout, "project2prompt version ") {
		t.Errorf("stdout = %q", stdout)
	}

	stdout, _, err = runCLI("version", "--short")
	if err != nil {
		t.Fatalf("version --short error = %v", err)
	}
	if stdout != "dev\n" {
		t.Errorf("stdout = %q; want %q", stdout, "dev\n")
	}
}
