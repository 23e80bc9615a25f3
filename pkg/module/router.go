package module

import (
	"net/http"
	"strings"
)

// Router dispatches requests to mounted modules by their first path
// segment. Paths that match no module fall through to a native ServeMux.
type Router struct {
	mounts map[string]*Module
	native *http.ServeMux
}

// NewRouter creates an empty Router.
func NewRouter() *Router {
	return &Router{
		mounts: make(map[string]*Module),
		native: http.NewServeMux(),
	}
}

// HandleNative registers a handler on the fallback mux for paths outside
// any mounted module, such as health endpoints.
func (r *Router) HandleNative(pattern string, handler http.HandlerFunc) {
	r.native.HandleFunc(pattern, handler)
}

// Mount attaches a module under its prefix.
func (r *Router) Mount(m *Module) {
	r.mounts[m.prefix] = m
}

// ServeHTTP routes the request to the module owning its leading path
// segment, or to the native mux when none does.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	path := trimTrailingSlash(req)

	if m, ok := r.mounts[leadingSegment(path)]; ok {
		m.Serve(w, req)
		return
	}

	r.native.ServeHTTP(w, req)
}

func leadingSegment(path string) string {
	parts := strings.SplitN(path, "/", 3)
	if len(parts) >= 2 {
		return "/" + parts[1]
	}
	return path
}

func trimTrailingSlash(req *http.Request) string {
	path := req.URL.Path
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
		req.URL.Path = path
	}
	return path
}
