package picklable

import (
	"errors"
	"io/fs"
)

var (
	// ErrNilHandle is returned when an adapter without a native handle is captured.
	ErrNilHandle = errors.New("picklable: nil model handle")
	// ErrUnsupportedSource is returned for a nil or unknown Source.
	ErrUnsupportedSource = errors.New("picklable: unsupported source")
)

// notFoundError reports a Path source that does not exist.
type notFoundError struct{ path string }

func (e notFoundError) Error() string { return "model file not found: " + e.path }

// Is lets callers match with errors.Is(err, fs.ErrNotExist).
func (e notFoundError) Is(target error) bool { return target == fs.ErrNotExist }

// ErrNotFound returns the error for a missing model path.
func ErrNotFound(path string) error { return notFoundError{path: path} }

// IsNotFound reports whether err is a missing model path.
func IsNotFound(err error) bool {
	var nf notFoundError
	return errors.As(err, &nf)
}

// dependencyUnavailableError signals a native backend that was not compiled in
// so the HTTP layer can return 503 Service Unavailable instead of 500.
type dependencyUnavailableError struct{ msg string }

func (e dependencyUnavailableError) Error() string { return e.msg }

// ErrDependencyUnavailable constructs a dependencyUnavailableError.
func ErrDependencyUnavailable(msg string) error { return dependencyUnavailableError{msg: msg} }

// IsDependencyUnavailable reports whether err indicates a missing native backend.
func IsDependencyUnavailable(err error) bool {
	var de dependencyUnavailableError
	return errors.As(err, &de)
}
