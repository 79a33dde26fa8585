// Package repository defines error values that are reused across
// multiple repositories. These sentinels allow higher layers such as
// handlers to distinguish between failure scenarios: ErrForbidden
// means the caller does not own the resource, ErrConflict means an
// operation cannot proceed because of dependent state (e.g. deleting
// a part that is referenced by committed usages), ErrStockConflict
// means the on-hand quantity moved between the worksheet snapshot and
// the commit.
package repository

import (
	"errors"
	"strings"
)

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers should translate this into an
// HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a delete or update cannot be performed
// because of conflicting state. Handlers should translate this into
// an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrStockConflict is returned by the usage commit when the guarded
// stock decrement affects no rows, i.e. another save consumed the
// stock after this worksheet's catalog snapshot was taken. Handlers
// should translate this into an HTTP 422 and ask the client to
// refresh the catalog.
var ErrStockConflict = errors.New("stock changed since snapshot")

// isDuplicateEntry detects MySQL error 1062 (duplicate key) without
// depending on driver-specific error types.
func isDuplicateEntry(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
