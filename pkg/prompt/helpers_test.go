package prompt

import (
	"path/filepath"
	"sort"
	"testing"

	"github.com/spf13/afero"
)

const testRoot = "/proj"

// newProject returns an in-memory filesystem holding files under testRoot.
func newProject(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	if err := fsys.MkdirAll(testRoot, 0o755); err != nil {
		t.Fatalf("MkdirAll(%s): %v", testRoot, err)
	}
	for rel, content := range files {
		path := filepath.Join(testRoot, rel)
		if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("MkdirAll(%s): %v", filepath.Dir(path), err)
		}
		if err := afero.WriteFile(fsys, path, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile(%s): %v", path, err)
		}
	}
	return fsys
}

// relPaths returns the sorted root-relative form of the set.
func relPaths(set *FileSet) []string {
	var out []string
	for _, p := range set.Sorted() {
		out = append(out, relativePath(testRoot, p))
	}
	sort.Strings(out)
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
