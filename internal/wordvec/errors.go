package wordvec

import "errors"

// Common errors.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmptyVocabulary    = errors.New("vocabulary is empty")
	ErrInvalidOptions     = errors.New("invalid model options")
	ErrInvalidMagic       = errors.New("invalid magic bytes")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrChecksumMismatch   = errors.New("checksum mismatch: file may be corrupted")
	ErrTruncated          = errors.New("model file is truncated")
)
