// Package picklable makes opaque native model handles serializable through
// Go's generic encoding protocols.
//
// A native handle (a wordvec.Model, or a llama.cpp model behind the 'llama'
// build tag) keeps its state where reflection cannot reach it, so encoding/gob
// and JSON encoders refuse or silently drop it. Adapters route around that by
// delegating to the library's own path-based save and load routines:
//
//   - Adopt wraps an already loaded handle without reloading anything.
//   - Load* reconstructs an adapter from a Path or from captured Bytes.
//   - Capture saves the handle into a scoped temp dir and returns the file bytes.
//   - Reduce returns the reconstruction recipe: Load* plus the captured bytes.
//
// The encoding hooks (GobEncode/GobDecode, MarshalBinary/UnmarshalBinary,
// MarshalJSON/UnmarshalJSON) are thin shims over Reduce and Load*.
//
// Build tags:
//
//   - Default: the Llama adapter is a stub that reports ErrDependencyUnavailable.
//   - llama: the Llama adapter wraps github.com/go-skynet/go-llama.cpp.
package picklable
