package viewdex

import "strings"

// TreeRoot is the top-level directory of the resource tree. It is subject
// to special exclusion rules during scanning.
const TreeRoot = "/"

// reservedDirs are never descended into when scanning the tree root; their
// contents must not be exposed as views.
var reservedDirs = []string{"/WEB-INF/", "/META-INF/"}

// ViewSet accumulates scan results: a flat mapping from simplified lookup
// keys to resource paths, and the distinct extensions encountered.
type ViewSet struct {
	Views      map[string]string
	Extensions map[string]struct{}
}

// NewViewSet returns an empty accumulator that collects both views and
// extensions.
func NewViewSet() *ViewSet {
	return &ViewSet{
		Views:      make(map[string]string),
		Extensions: make(map[string]struct{}),
	}
}

// Merge copies another set's views and extensions into the receiver. Views
// under the same lookup key are overwritten, last write wins.
func (s *ViewSet) Merge(other *ViewSet) {
	if other == nil {
		return
	}
	for key, path := range other.Views {
		s.Views[key] = path
	}
	if s.Extensions != nil {
		for ext := range other.Extensions {
			s.Extensions[ext] = struct{}{}
		}
	}
}

// Scan walks the tree below rootPath and records every eligible view in the
// accumulator. Each view is stored under its path relative to the root both
// with and without its extension, except under the tree root "/" where only
// the extensionless key is stored; extension-bearing tree-root paths are
// already resolved directly by the host. When extensionToScan is non-empty
// (a suffix such as ".xhtml"), only resources ending in it are accepted.
//
// Directories are processed breadth-first off an explicit worklist, so
// arbitrarily deep trees do not grow the call stack. An empty listing is a
// no-op, not an error.
func Scan(tree ResourceTree, rootPath string, acc *ViewSet, extensionToScan string) {
	pending := []string{rootPath}

	for len(pending) > 0 {
		dir := pending[0]
		pending = pending[1:]

		for _, child := range tree.ListChildren(dir) {
			if IsDirectory(child) {
				if canScanDirectory(rootPath, child) {
					pending = append(pending, child)
				}
				continue
			}

			if !canScanResource(child, extensionToScan) {
				continue
			}

			resource := StripPrefixPath(rootPath, child)

			// Store the resource both with and without its extension. The
			// tree root is special: hosts already serve extension-bearing
			// paths below "/" directly, so only the extensionless key adds
			// information there.
			if rootPath != TreeRoot {
				acc.Views[resource] = child
			}
			acc.Views[StripExtension(resource)] = child

			if acc.Extensions != nil {
				acc.Extensions["*"+Extension(child)] = struct{}{}
			}
		}
	}
}

// canScanDirectory decides whether the scanner may descend into directory.
// Every subdirectory of an explicitly configured root is fair game; only
// under the tree root are the reserved container directories off limits.
func canScanDirectory(rootPath, directory string) bool {
	if rootPath != TreeRoot {
		return true
	}
	return !StartsWithOneOf(directory, reservedDirs...)
}

// canScanResource decides whether a file is eligible. Without an extension
// filter everything is accepted; with one, only exact suffix matches.
func canScanResource(resource, extensionToScan string) bool {
	if extensionToScan == "" {
		return true
	}
	return strings.HasSuffix(resource, extensionToScan)
}
