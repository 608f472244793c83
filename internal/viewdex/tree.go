package viewdex

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ResourceTree abstracts the hierarchical resource tree so tests can
// provide in-memory implementations. ListChildren returns the immediate
// children of a directory as full paths, with directories marked by a
// trailing slash. A missing or empty directory yields nil.
type ResourceTree interface {
	ListChildren(path string) []string
}

// OSResourceTree exposes a directory on the local filesystem as a resource
// tree rooted at "/". Children are returned in lexicographic order so
// repeated scans visit resources deterministically.
type OSResourceTree struct {
	Base string
}

func (t OSResourceTree) ListChildren(path string) []string {
	entries, err := os.ReadDir(filepath.Join(t.Base, filepath.FromSlash(path)))
	if err != nil {
		return nil
	}

	parent := strings.TrimSuffix(path, "/")
	children := make([]string, 0, len(entries))
	for _, entry := range entries {
		child := parent + "/" + entry.Name()
		if entry.IsDir() {
			child += "/"
		}
		children = append(children, child)
	}

	sort.Strings(children)
	return children
}
