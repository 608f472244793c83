package viewdex

import (
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"
)

// mapTree is an in-memory ResourceTree backed by a set of file paths,
// mirroring the listing contract: full child paths, directories with a
// trailing slash, lexicographic order.
type mapTree struct {
	files map[string]struct{}
}

func newMapTree(paths ...string) *mapTree {
	t := &mapTree{files: make(map[string]struct{}, len(paths))}
	for _, path := range paths {
		t.files[path] = struct{}{}
	}
	return t
}

func (t *mapTree) add(path string) {
	t.files[path] = struct{}{}
}

func (t *mapTree) ListChildren(dir string) []string {
	seen := make(map[string]struct{})
	var children []string

	for file := range t.files {
		if !strings.HasPrefix(file, dir) || file == dir {
			continue
		}
		rest := strings.TrimPrefix(file, dir)
		child := file
		if slash := strings.Index(rest, "/"); slash >= 0 {
			child = dir + rest[:slash+1]
		}
		if _, ok := seen[child]; ok {
			continue
		}
		seen[child] = struct{}{}
		children = append(children, child)
	}

	sort.Strings(children)
	return children
}

func TestOSResourceTreeListChildren(t *testing.T) {
	base := t.TempDir()

	if err := os.MkdirAll(filepath.Join(base, "sub"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, name := range []string{"a.xhtml", filepath.Join("sub", "b.xhtml")} {
		if err := os.WriteFile(filepath.Join(base, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	tree := OSResourceTree{Base: base}

	got := tree.ListChildren("/")
	want := []string{"/a.xhtml", "/sub/"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ListChildren(/) = %v, want %v", got, want)
	}

	got = tree.ListChildren("/sub/")
	want = []string{"/sub/b.xhtml"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ListChildren(/sub/) = %v, want %v", got, want)
	}

	if got := tree.ListChildren("/missing/"); got != nil {
		t.Fatalf("ListChildren(/missing/) = %v, want nil", got)
	}
}
