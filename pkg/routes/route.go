// Package routes declares HTTP endpoints as data so modules can register
// their route tables against a ServeMux in one pass.
package routes

import "net/http"

// Route binds one HTTP method and path pattern to its handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}
