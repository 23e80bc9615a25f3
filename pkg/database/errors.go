package database

import "errors"

// ErrNotReady indicates Connect has not yet been called or the pool
// failed its initial ping.
var ErrNotReady = errors.New("database not ready")
