package viewdex

import (
	"log/slog"
	"sync"
)

// AppContext holds the process-wide state of the view scanning feature:
// the resource tree, the configuration, and the values that used to live
// in an untyped application attribute map, each lazily initialized once.
// One AppContext is shared by every request-handling goroutine.
type AppContext struct {
	tree   ResourceTree
	cfg    Config
	logger *slog.Logger

	mu            sync.Mutex
	rootPaths     []string
	extensionless *bool

	// views is the cached index snapshot. It is replaced wholesale and
	// never mutated after the swap, so readers may use it without locks.
	views map[string]string
}

// NewAppContext constructs the application context around a resource tree
// and its configuration.
func NewAppContext(tree ResourceTree, cfg Config, logger *slog.Logger) *AppContext {
	if logger == nil {
		logger = slog.Default()
	}
	return &AppContext{
		tree:   tree,
		cfg:    cfg,
		logger: logger,
	}
}

// Config returns the configuration the context was built with.
func (c *AppContext) Config() Config {
	return c.cfg
}

// RootPaths returns the set of root paths to scan, resolving it from
// configuration on first access and memoizing it for the lifetime of the
// context.
func (c *AppContext) RootPaths() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.rootPaths == nil {
		c.rootPaths = c.cfg.RootPaths()
		c.logger.Debug("Resolved scan roots", "roots", c.rootPaths)
	}
	return c.rootPaths
}

// ExtensionlessAlways reports whether scanned views are always rendered
// extensionless, memoized on first access.
func (c *AppContext) ExtensionlessAlways() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.extensionless == nil {
		value := c.cfg.ExtensionlessAlways
		c.extensionless = &value
	}
	return *c.extensionless
}

// Views returns the cached index snapshot, or nil when no scan has been
// stored yet. The returned map must be treated as read-only.
func (c *AppContext) Views() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.views
}

// storeViews swaps in a new index snapshot. Callers must never mutate the
// map after handing it over.
func (c *AppContext) storeViews(views map[string]string) {
	c.mu.Lock()
	c.views = views
	c.mu.Unlock()
}
