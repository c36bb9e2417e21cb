//go:build !llama

package picklable

// This file provides a no-CGO stub for the llama adapter. It is compiled when
// the 'llama' build tag is NOT set, keeping default builds and CI CGO-free.
// The real adapter lives in llama.go (tagged 'llama').

import "encoding/gob"

// llamaBuilt indicates this binary was compiled without llama support.
const llamaBuilt = false

const llamaMissing = "llama support not built (missing 'llama' build tag)"

func init() {
	gob.Register(&Llama{})
}

// Llama is a placeholder that refuses every operation in this build.
type Llama struct{}

// LoadLlama fails fast: the llama runtime is not available in this build.
func LoadLlama(src Source) (*Llama, error) {
	return nil, ErrDependencyUnavailable(llamaMissing)
}

// Capture fails with ErrDependencyUnavailable.
func (l *Llama) Capture() ([]byte, error) { return nil, ErrDependencyUnavailable(llamaMissing) }

// Reduce fails with ErrDependencyUnavailable.
func (l *Llama) Reduce() (Reduction[*Llama], error) {
	return Reduction[*Llama]{}, ErrDependencyUnavailable(llamaMissing)
}

// Embed fails with ErrDependencyUnavailable.
func (l *Llama) Embed(text string) ([]float32, error) {
	return nil, ErrDependencyUnavailable(llamaMissing)
}

// Close has nothing to free in the stub.
func (l *Llama) Close() error { return nil }

// GobEncode implements gob.GobEncoder and always fails in this build.
func (l *Llama) GobEncode() ([]byte, error) { return nil, ErrDependencyUnavailable(llamaMissing) }

// GobDecode implements gob.GobDecoder and always fails in this build.
func (l *Llama) GobDecode(data []byte) error { return ErrDependencyUnavailable(llamaMissing) }

// MarshalBinary implements encoding.BinaryMarshaler.
func (l *Llama) MarshalBinary() ([]byte, error) { return l.GobEncode() }

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (l *Llama) UnmarshalBinary(data []byte) error { return l.GobDecode(data) }

// MarshalJSON implements json.Marshaler and always fails in this build.
func (l *Llama) MarshalJSON() ([]byte, error) { return nil, ErrDependencyUnavailable(llamaMissing) }

// UnmarshalJSON accepts null and fails for any payload.
func (l *Llama) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	return ErrDependencyUnavailable(llamaMissing)
}
