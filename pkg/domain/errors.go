package domain

import "errors"

// ErrInvalidArgument is returned when an input falls outside the accepted domain
// (negative numbers, bases outside 2..36, unsupported digit-group widths).
var ErrInvalidArgument = errors.New("invalid argument")

// ErrAllocationFailure is returned when an output cannot be sized, e.g. a digit
// estimate that does not fit in an int.
var ErrAllocationFailure = errors.New("allocation failure")

// ErrResultNotFound is returned when a key cannot be found in a result store.
var ErrResultNotFound = errors.New("result not found")
