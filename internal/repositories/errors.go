package repositories

import "errors"

// ErrNotFound is wrapped by every lookup that misses, regardless of the
// backing store. Callers test with errors.Is.
var ErrNotFound = errors.New("record not found")
