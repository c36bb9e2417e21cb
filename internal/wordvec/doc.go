// Package wordvec is a subword word-vector model in the fastText style.
//
// A Model is an opaque handle: every field is unexported, so generic
// reflection-based encoders such as encoding/gob cannot walk it. Models are
// persisted only through the package's own path-based routines:
//
//	m, err := wordvec.New(words, wordvec.Options{Dim: 32, Seed: 7})
//	if err := m.SaveModel("news.wvec"); err != nil { ... }
//	m2, err := wordvec.LoadModel("news.wvec")
//
// File layout (all integers little endian):
//
//	[4 bytes: Magic "WVEC"]
//	[4 bytes: Version (uint32)]
//	[4 bytes: Flags (uint32)]
//	[8 bytes: Header Size (uint64)]
//	[Header: JSON metadata]
//	[Vocabulary: uint32 length + bytes, per word]
//	[Input matrix: float32, (words+bucket) x dim]
//	[32 bytes: SHA-256 of everything above]
package wordvec
