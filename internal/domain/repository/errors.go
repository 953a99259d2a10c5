package repository

import "errors"

// ErrNotFound distinguishes "the row does not exist" from a failing
// store, so callers never have to treat the two identically.
var ErrNotFound = errors.New("not found")
