package routes

import "net/http"

// Group collects routes under a shared prefix. Children nest beneath the
// parent's prefix.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Register walks the given groups and registers every route on the mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, g := range groups {
		registerGroup(mux, "", g)
	}
}

func registerGroup(mux *http.ServeMux, parent string, g Group) {
	prefix := parent + g.Prefix

	for _, r := range g.Routes {
		mux.HandleFunc(r.Method+" "+prefix+r.Pattern, r.Handler)
	}
	for _, child := range g.Children {
		registerGroup(mux, prefix, child)
	}
}
