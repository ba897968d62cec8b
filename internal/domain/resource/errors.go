package resource

import "errors"

var (
	// ErrResourceNotFound indicates no resource is listed under the id.
	ErrResourceNotFound = errors.New("resource not found")
	// ErrResourceUnavailable indicates the resource is currently rented.
	ErrResourceUnavailable = errors.New("resource is not available for rent")
	// ErrOverflow indicates price_per_hour * hours does not fit in 64 bits.
	ErrOverflow = errors.New("rental cost overflows")
)
