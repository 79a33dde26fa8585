// Package stock maintains the in-session set of part selections for a
// job worksheet and guarantees that selections never exceed the
// on-hand stock of the catalog snapshot.  These sentinel values let
// handlers map each failure to a distinct user-facing message; none of
// them are fatal and the tracker state is unchanged when one is
// returned.
package stock

import "errors"

// ErrOutOfStock is returned when selecting a part whose available
// quantity is zero. Handlers should translate this into an HTTP 422
// response.
var ErrOutOfStock = errors.New("part out of stock")

// ErrQuantityExceedsStock is returned when an increment or explicit
// quantity would push the selection past the on-hand ceiling.
var ErrQuantityExceedsStock = errors.New("quantity exceeds available stock")

// ErrInvalidQuantity is returned when a non-positive quantity is
// requested for a selection.
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// ErrUnknownPart is returned when the part id is absent from the
// current catalog snapshot.
var ErrUnknownPart = errors.New("unknown part")
