package compressor

import (
	"errors"
	"runtime"

	"github.com/klauspost/compress/zstd"
)

// ZstdCompressor compresses with github.com/klauspost/compress/zstd. It owns
// its encoder and decoder; call Close when done.
type ZstdCompressor struct {
	enc             *zstd.Encoder
	dec             *zstd.Decoder
	minCompressSize int
}

var _ Compressor = (*ZstdCompressor)(nil)

// ErrClosed is returned by a ZstdCompressor after Close.
var ErrClosed = errors.New("compressor: closed")

// NewZstdCompressor creates a compressor using GOMAXPROCS encoder goroutines.
func NewZstdCompressor() (*ZstdCompressor, error) {
	return NewZstdCompressorWithConcurrency(0)
}

// NewZstdCompressorWithConcurrency creates a compressor with the given encoder
// concurrency; <= 0 means GOMAXPROCS.
func NewZstdCompressorWithConcurrency(concurrency int) (*ZstdCompressor, error) {
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	enc, err := zstd.NewWriter(nil,
		zstd.WithZeroFrames(true),
		zstd.WithEncoderConcurrency(concurrency),
	)
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		_ = enc.Close()
		return nil, err
	}
	return &ZstdCompressor{enc: enc, dec: dec}, nil
}

func (c *ZstdCompressor) Name() string { return "zstd" }

// SetMinCompressSize makes Compress return inputs shorter than n unchanged.
// Decompress detects such raw buffers by the missing zstd frame magic.
func (c *ZstdCompressor) SetMinCompressSize(n int) {
	if n < 0 {
		n = 0
	}
	c.minCompressSize = n
}

func (c *ZstdCompressor) Compress(dst, src []byte) ([]byte, error) {
	if c == nil || c.enc == nil {
		return nil, ErrClosed
	}
	if c.minCompressSize > 0 && len(src) < c.minCompressSize {
		return src, nil
	}
	return c.enc.EncodeAll(src, dst[:0]), nil
}

func (c *ZstdCompressor) Decompress(dst, src []byte) ([]byte, error) {
	if c == nil || c.dec == nil {
		return nil, ErrClosed
	}
	if c.minCompressSize > 0 && !hasZstdMagic(src) {
		return src, nil
	}
	return c.dec.DecodeAll(src, dst[:0])
}

// Close releases the encoder and decoder.
func (c *ZstdCompressor) Close() {
	if c == nil {
		return
	}
	if c.enc != nil {
		_ = c.enc.Close()
		c.enc = nil
	}
	if c.dec != nil {
		c.dec.Close()
		c.dec = nil
	}
}

// zstdMagic is the little-endian frame magic 0xFD2FB528.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

func hasZstdMagic(b []byte) bool {
	return len(b) >= 4 && b[0] == zstdMagic[0] && b[1] == zstdMagic[1] && b[2] == zstdMagic[2] && b[3] == zstdMagic[3]
}
