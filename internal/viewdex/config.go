package viewdex

import (
	"fmt"
	"strings"
)

// DefaultViewsRoot is the reserved directory scanned by convention; views
// placed under it need no configuration at all.
const DefaultViewsRoot = "/WEB-INF/faces-views/"

// extensionDelimiter separates a root path from an optional extension
// filter, e.g. "/templates/*.xhtml".
const extensionDelimiter = "*"

// Config captures the settings that control view scanning and serving.
type Config struct {
	// BaseDir is the filesystem directory exposed as the resource tree root.
	BaseDir string `json:"base_dir"`

	// ScanPaths holds additional root directories to scan, comma separated,
	// each optionally carrying a "*.ext" filter suffix. The default views
	// root is always scanned and need not be listed.
	ScanPaths string `json:"scan_paths"`

	// Enabled is the master switch for the whole scanning feature.
	Enabled bool `json:"scan_enabled"`

	// ExtensionlessAlways treats scanned views as extensionless for link
	// generation regardless of how they were requested.
	ExtensionlessAlways bool `json:"extensionless_always"`

	Listen       string `json:"listen"`
	ManifestPath string `json:"manifest"`
	Watch        bool   `json:"watch"`
}

// RootPaths resolves the configured scan paths into an ordered list of root
// paths: the configured entries in order, blanks dropped, followed by the
// default views root. Order is significant; when two roots produce the same
// lookup key the later root wins, so the default root always takes
// precedence over configured extras.
func (c Config) RootPaths() []string {
	roots := parseCSV(c.ScanPaths)

	for _, root := range roots {
		if root == DefaultViewsRoot {
			return roots
		}
	}
	return append(roots, DefaultViewsRoot)
}

// Validate rejects malformed scan paths before any scan runs. A root path
// may carry at most one extension delimiter, and a delimiter must be
// followed by a ".ext" suffix.
func (c Config) Validate() error {
	for _, root := range parseCSV(c.ScanPaths) {
		switch strings.Count(root, extensionDelimiter) {
		case 0:
		case 1:
			_, ext := splitRootPath(root)
			if !strings.HasPrefix(ext, ".") {
				return fmt.Errorf("scan path %q: extension filter must start with a dot", root)
			}
		default:
			return fmt.Errorf("scan path %q: more than one %q delimiter", root, extensionDelimiter)
		}
	}
	return nil
}

// splitRootPath splits a configured root on the first extension delimiter,
// returning the root path and the extension filter (empty when absent).
// E.g. "/templates/*.xhtml" yields ("/templates/", ".xhtml").
func splitRootPath(root string) (path, extension string) {
	path, extension, _ = strings.Cut(root, extensionDelimiter)
	return path, extension
}

// parseCSV splits a comma separated value into its trimmed, non-blank
// entries. An absent value yields nil.
func parseCSV(value string) []string {
	var result []string
	for _, part := range strings.Split(value, ",") {
		entry := strings.TrimSpace(part)
		if entry == "" {
			continue
		}
		result = append(result, entry)
	}
	return result
}
