package store

import (
	"errors"
	"fmt"
)

// ErrInvalidRequest marks requests rejected before reaching a model.
var ErrInvalidRequest = errors.New("invalid request")

// modelNotFoundError is returned when a model id is neither resident nor in
// the registry.
type modelNotFoundError struct{ id string }

func (e modelNotFoundError) Error() string { return "model not found: " + e.id }

// ErrModelNotFound returns an error for a missing model id.
func ErrModelNotFound(id string) error { return modelNotFoundError{id: id} }

// IsModelNotFound reports whether the error indicates a missing model id.
func IsModelNotFound(err error) bool {
	var e modelNotFoundError
	return errors.As(err, &e)
}

// unknownFormatError is returned for a format no adapter handles.
type unknownFormatError struct{ format string }

func (e unknownFormatError) Error() string { return fmt.Sprintf("unknown model format %q", e.format) }

// IsUnknownFormat reports whether err names an unsupported model format.
func IsUnknownFormat(err error) bool {
	var e unknownFormatError
	return errors.As(err, &e)
}
