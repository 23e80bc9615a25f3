package audits

import (
	"errors"
	"net/http"
)

// Domain errors for audit operations.
var (
	ErrNotFound        = errors.New("audit run not found")
	ErrDuplicate       = errors.New("audit run already exists")
	ErrDocTypeMismatch = errors.New("document type does not match its audit role")
)

// MapHTTPStatus maps audit domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrDocTypeMismatch) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
