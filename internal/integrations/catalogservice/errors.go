package catalogservice

import "errors"

var (
	// ErrServiceNotFound is returned when the catalog has no such service.
	ErrServiceNotFound = errors.New("catalogservice client: service not found")

	// ErrOptionNotFound is returned when the catalog has no such option.
	ErrOptionNotFound = errors.New("catalogservice client: service option not found")

	// ErrInternal is returned on client-side failures.
	ErrInternal = errors.New("catalogservice client: internal error")

	// ErrInvalidResponse is returned on malformed catalog responses.
	ErrInvalidResponse = errors.New("catalogservice client: invalid response")
)
