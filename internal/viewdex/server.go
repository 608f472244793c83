package viewdex

import (
	"log/slog"
	"net/http"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Dispatcher is the request-dispatch mechanism that view routes are
// registered against. It exposes its current mapping patterns and accepts
// new ones; patterns are extension globs such as "*.xhtml".
type Dispatcher interface {
	Mappings() []string
	AddMapping(pattern string)
}

// RegisterExtensions registers every extension pattern not already mapped
// on the dispatcher. It is idempotent and safe to call repeatedly with
// overlapping sets. A nil dispatcher is a silent no-op.
func RegisterExtensions(d Dispatcher, extensions map[string]struct{}, logger *slog.Logger) {
	if d == nil {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}

	mapped := make(map[string]struct{})
	for _, pattern := range d.Mappings() {
		mapped[pattern] = struct{}{}
	}

	ordered := make([]string, 0, len(extensions))
	for extension := range extensions {
		ordered = append(ordered, extension)
	}
	sort.Strings(ordered)

	for _, extension := range ordered {
		if _, ok := mapped[extension]; ok {
			continue
		}
		d.AddMapping(extension)
		logger.Info("Registered view extension", "pattern", extension)
	}
}

// ViewServer serves scanned views over HTTP. Servlet-style extension
// patterns have no native equivalent in a Go router, so the server mounts
// one catch-all route on a chi router and dispatches by its own mapping
// set: logical names resolve through the view index, and extension-bearing
// requests are served when their extension has been registered.
type ViewServer struct {
	ctx    *AppContext
	logger *slog.Logger

	mu       sync.Mutex
	patterns []string
}

// NewViewServer constructs a server over the given application context.
func NewViewServer(ctx *AppContext, logger *slog.Logger) *ViewServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ViewServer{ctx: ctx, logger: logger}
}

// Mappings returns the currently registered extension patterns.
func (s *ViewServer) Mappings() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.patterns...)
}

// AddMapping registers an extension pattern such as "*.xhtml".
func (s *ViewServer) AddMapping(pattern string) {
	s.mu.Lock()
	s.patterns = append(s.patterns, pattern)
	s.mu.Unlock()
}

// Routes builds the router serving the view tree.
func (s *ViewServer) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Get("/*", s.serveView)
	r.Head("/*", s.serveView)
	return r
}

func (s *ViewServer) serveView(w http.ResponseWriter, r *http.Request) {
	// Lazy idempotent scan: a no-op once a snapshot exists, but a startup
	// scan that ran before any views existed gets another chance here.
	s.ctx.TryScanAndStoreViews()

	reqPath := path.Clean(r.URL.Path)

	if s.ctx.ExtensionlessAlways() {
		if target, ok := s.extensionlessRedirect(reqPath); ok {
			http.Redirect(w, r, target, http.StatusMovedPermanently)
			return
		}
	}

	resolved := s.resolve(reqPath)
	if resolved == "" {
		http.NotFound(w, r)
		return
	}

	base := s.ctx.Config().BaseDir
	s.logger.Debug("Serving view", "request", reqPath, "resource", resolved)
	http.ServeFile(w, r, filepath.Join(base, filepath.FromSlash(resolved)))
}

// resolve maps a request path to the resource to serve, or "" when nothing
// matches. Lookup keys from nested roots carry no leading slash, so both
// spellings are consulted.
func (s *ViewServer) resolve(reqPath string) string {
	for _, key := range []string{reqPath, strings.TrimPrefix(reqPath, "/")} {
		if mapped := s.ctx.MappedPath(key); mapped != key {
			return mapped
		}
	}

	// Direct extension-bearing requests below the tree root, e.g.
	// /foo.xhtml, are served when their extension was registered and the
	// path does not reach into a reserved directory.
	if ext := Extension(reqPath); ext != "" && s.hasMapping("*"+ext) {
		if !StartsWithOneOf(reqPath, reservedDirs...) {
			return reqPath
		}
	}
	return ""
}

// extensionlessRedirect rewrites an extension-bearing request for a scanned
// view to its extensionless form.
func (s *ViewServer) extensionlessRedirect(reqPath string) (string, bool) {
	ext := Extension(reqPath)
	if ext == "" || !s.hasMapping("*"+ext) {
		return "", false
	}

	stripped := StripExtension(reqPath)
	for _, key := range []string{stripped, strings.TrimPrefix(stripped, "/")} {
		if mapped := s.ctx.MappedPath(key); mapped != key {
			return stripped, true
		}
	}
	return "", false
}

func (s *ViewServer) hasMapping(pattern string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.patterns {
		if existing == pattern {
			return true
		}
	}
	return false
}
