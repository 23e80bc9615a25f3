package module_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wardenhq/warden/pkg/module"
)

func echoPath() (*http.ServeMux, *string) {
	var seen string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		seen = r.URL.Path
		w.WriteHeader(http.StatusOK)
	})
	return mux, &seen
}

func TestNewInvalidPrefix(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
	}{
		{"empty", ""},
		{"missing leading slash", "api"},
		{"multi-level", "/api/v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("New(%q) should panic", tt.prefix)
				}
			}()
			module.New(tt.prefix, http.NewServeMux())
		})
	}
}

func TestModulePrefix(t *testing.T) {
	m := module.New("/api", http.NewServeMux())
	if got := m.Prefix(); got != "/api" {
		t.Errorf("Prefix() = %q, want /api", got)
	}
}

func TestModuleServeStripsPrefix(t *testing.T) {
	mux, seen := echoPath()
	m := module.New("/api", mux)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/documents", nil)
	m.Serve(rec, req)

	if *seen != "/documents" {
		t.Errorf("inner path = %q, want /documents", *seen)
	}
}

func TestModuleServeBarePrefix(t *testing.T) {
	mux, seen := echoPath()
	m := module.New("/api", mux)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api", nil)
	m.Serve(rec, req)

	if *seen != "/" {
		t.Errorf("inner path = %q, want /", *seen)
	}
}

func TestModuleServeDoesNotMutateRequest(t *testing.T) {
	mux, _ := echoPath()
	m := module.New("/api", mux)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/documents", nil)
	m.Serve(rec, req)

	if req.URL.Path != "/api/documents" {
		t.Errorf("original path mutated: %q", req.URL.Path)
	}
}

func TestModuleMiddleware(t *testing.T) {
	var order []string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	})

	m := module.New("/api", mux)
	m.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "middleware")
			next.ServeHTTP(w, r)
		})
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/documents", nil)
	m.Serve(rec, req)

	if len(order) != 2 || order[0] != "middleware" || order[1] != "handler" {
		t.Errorf("order = %v, want [middleware handler]", order)
	}
}

func TestRouterDispatch(t *testing.T) {
	mux, seen := echoPath()
	m := module.New("/api", mux)

	r := module.NewRouter()
	r.Mount(m)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/audits", nil)
	r.ServeHTTP(rec, req)

	if *seen != "/audits" {
		t.Errorf("inner path = %q, want /audits", *seen)
	}
}

func TestRouterNativeFallback(t *testing.T) {
	r := module.NewRouter()

	var called bool
	r.HandleNative("GET /healthz", func(w http.ResponseWriter, req *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/healthz", nil)
	r.ServeHTTP(rec, req)

	if !called {
		t.Error("native handler should have been called")
	}
}

func TestRouterTrailingSlash(t *testing.T) {
	mux, seen := echoPath()
	m := module.New("/api", mux)

	r := module.NewRouter()
	r.Mount(m)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/documents/", nil)
	r.ServeHTTP(rec, req)

	if *seen != "/documents" {
		t.Errorf("inner path = %q, want /documents", *seen)
	}
}

func TestRouterUnmatchedPrefix(t *testing.T) {
	r := module.NewRouter()
	r.Mount(module.New("/api", http.NewServeMux()))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/other/path", nil)
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
