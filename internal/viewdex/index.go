package viewdex

// ScanViews scans every configured root and merges the results into one
// set. Roots are visited in registry order and each directory's children
// are visited in the order the tree lists them, so key collisions resolve
// deterministically for a deterministic tree: the later-visited resource
// wins.
func (c *AppContext) ScanViews() *ViewSet {
	collected := NewViewSet()

	for _, root := range c.RootPaths() {
		rootPath, extensionToScan := splitRootPath(root)

		scanned := NewViewSet()
		Scan(c.tree, rootPath, scanned, extensionToScan)
		collected.Merge(scanned)
	}

	c.logger.Info("Scanned views",
		"roots", len(c.RootPaths()),
		"views", len(collected.Views),
		"extensions", len(collected.Extensions))

	return collected
}

// ScanAndStoreViews runs a full scan, stores a non-empty result as the
// process-wide snapshot, and returns the scanned set. An empty result is
// returned but not cached; a scan that ran before any views existed may
// therefore be retried later.
func (c *AppContext) ScanAndStoreViews() *ViewSet {
	collected := c.ScanViews()
	if len(collected.Views) > 0 {
		c.storeViews(collected.Views)
	}
	return collected
}

// TryScanAndStoreViews is the idempotent entry point consumers call: it
// scans and stores only when no snapshot exists yet, and returns the
// current view mapping (never nil).
func (c *AppContext) TryScanAndStoreViews() map[string]string {
	if views := c.Views(); views != nil {
		return views
	}
	return c.ScanAndStoreViews().Views
}

// MappedPath resolves a lookup key to its scanned resource path. A miss is
// not exceptional: unknown paths are returned unchanged.
func (c *AppContext) MappedPath(path string) string {
	if mapped, ok := c.Views()[path]; ok {
		return mapped
	}
	return path
}

// StripViewsRoot removes the default views root prefix from the resource if
// present.
func StripViewsRoot(resource string) string {
	return StripPrefixPath(DefaultViewsRoot, resource)
}
