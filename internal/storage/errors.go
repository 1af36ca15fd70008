// ABOUTME: Common storage errors
// ABOUTME: Enables consistent error handling across storage implementations

package storage

import "errors"

// ErrNotFound is returned when a requested trace does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateName is returned when a trace name is already taken.
var ErrDuplicateName = errors.New("trace name already exists")
