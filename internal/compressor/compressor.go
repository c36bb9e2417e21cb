// Package compressor provides optional whole-buffer compression for snapshot
// bundles.
package compressor

import (
	"fmt"
	"strings"
)

// Compressor compresses and decompresses complete buffers.
type Compressor interface {
	// Name identifies the codec in configs and bundle files.
	Name() string
	// Compress appends the compressed form of src to dst[:0].
	Compress(dst, src []byte) ([]byte, error)
	// Decompress reverses Compress.
	Decompress(dst, src []byte) ([]byte, error)
}

// NopCompressor returns its input unchanged.
type NopCompressor struct{}

var _ Compressor = NopCompressor{}

func (NopCompressor) Name() string { return "none" }

func (NopCompressor) Compress(_ []byte, src []byte) ([]byte, error) { return src, nil }

func (NopCompressor) Decompress(_ []byte, src []byte) ([]byte, error) { return src, nil }

// ByName returns the compressor for name ("none" or "zstd").
func ByName(name string) (Compressor, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none", "off":
		return NopCompressor{}, nil
	case "zstd":
		return NewZstdCompressor()
	default:
		return nil, fmt.Errorf("compressor: unknown codec %q", name)
	}
}
