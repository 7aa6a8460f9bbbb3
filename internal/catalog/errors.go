package catalog

import "errors"

// ErrNotFound is returned when a shop or variant cannot be resolved. Variant
// lookups failing with it are skipped during list assembly; shop lookups
// surface it to the API caller.
var ErrNotFound = errors.New("not found")
