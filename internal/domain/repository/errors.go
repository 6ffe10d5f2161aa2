package repository

import "errors"

// ErrNotFound is returned when an identifier does not resolve to a record.
var ErrNotFound = errors.New("not found")
