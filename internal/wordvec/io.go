package wordvec

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/bits"
	"os"
	"time"
)

// Format constants.
const (
	MagicBytes    = "WVEC"
	FormatVersion = 1
	ChecksumSize  = sha256.Size
	// fixed prefix: magic + version + flags + header size
	prefixSize = 4 + 4 + 4 + 8
	// maxHeaderSize bounds the JSON header read from untrusted files.
	maxHeaderSize = 1 << 20
)

// header is the JSON metadata block of a model file.
type header struct {
	FormatVersion int       `json:"format_version"`
	Dim           int       `json:"dim"`
	MinN          int       `json:"minn"`
	MaxN          int       `json:"maxn"`
	Bucket        int       `json:"bucket"`
	Words         int       `json:"words"`
	SavedAt       time.Time `json:"saved_at"`
}

// SaveModel writes the model to path in the native format.
func (m *Model) SaveModel(path string) (err error) {
	//nolint:gosec // G304: path is chosen by the caller
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	bw := bufio.NewWriter(f)
	sum := sha256.New()
	w := io.MultiWriter(bw, sum)

	hdr, err := json.Marshal(header{
		FormatVersion: FormatVersion,
		Dim:           m.dim,
		MinN:          m.minn,
		MaxN:          m.maxn,
		Bucket:        m.bucket,
		Words:         len(m.words),
		SavedAt:       time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal header: %w", err)
	}
	if _, err := io.WriteString(w, MagicBytes); err != nil {
		return err
	}
	for _, v := range []any{uint32(FormatVersion), uint32(0), uint64(len(hdr))} {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	if _, err := w.Write(hdr); err != nil {
		return err
	}
	for _, word := range m.words {
		if err := binary.Write(w, binary.LittleEndian, uint32(len(word))); err != nil {
			return err
		}
		if _, err := io.WriteString(w, word); err != nil {
			return err
		}
	}
	if err := binary.Write(w, binary.LittleEndian, m.input); err != nil {
		return err
	}
	if _, err := bw.Write(sum.Sum(nil)); err != nil {
		return err
	}
	return bw.Flush()
}

// LoadModel reads a model previously written by SaveModel.
func LoadModel(path string) (*Model, error) {
	//nolint:gosec // G304: path is chosen by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) < 4 || string(data[:4]) != MagicBytes {
		return nil, ErrInvalidMagic
	}
	if len(data) < prefixSize+ChecksumSize {
		return nil, ErrTruncated
	}
	if v := binary.LittleEndian.Uint32(data[4:8]); v != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}
	body, stored := data[:len(data)-ChecksumSize], data[len(data)-ChecksumSize:]
	computed := sha256.Sum256(body)
	if !bytes.Equal(computed[:], stored) {
		return nil, ErrChecksumMismatch
	}
	return decode(body[prefixSize-8:])
}

// decode parses the header size, header, vocabulary and matrix.
func decode(b []byte) (*Model, error) {
	r := bytes.NewReader(b)
	var hdrSize uint64
	if err := binary.Read(r, binary.LittleEndian, &hdrSize); err != nil {
		return nil, ErrTruncated
	}
	if hdrSize > maxHeaderSize || hdrSize > uint64(r.Len()) {
		return nil, ErrTruncated
	}
	raw := make([]byte, hdrSize)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, ErrTruncated
	}
	var hdr header
	if err := json.Unmarshal(raw, &hdr); err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}
	if hdr.Dim <= 0 || hdr.Words <= 0 || hdr.Bucket < 0 || hdr.MinN < 0 || hdr.MaxN < 0 ||
		uint64(hdr.Bucket) > math.MaxUint32 || (hdr.MaxN > 0 && (hdr.MinN < 1 || hdr.MinN > hdr.MaxN)) {
		return nil, fmt.Errorf("%w: header %+v", ErrInvalidOptions, hdr)
	}
	// every word carries at least its 4-byte length prefix
	if uint64(hdr.Words) > uint64(r.Len())/4 {
		return nil, ErrTruncated
	}

	m := &Model{
		dim:    hdr.Dim,
		minn:   hdr.MinN,
		maxn:   hdr.MaxN,
		bucket: hdr.Bucket,
		words:  make([]string, 0, hdr.Words),
		index:  make(map[string]int, hdr.Words),
	}
	for i := 0; i < hdr.Words; i++ {
		var n uint32
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return nil, ErrTruncated
		}
		if uint64(n) > uint64(r.Len()) {
			return nil, ErrTruncated
		}
		w := make([]byte, n)
		if _, err := io.ReadFull(r, w); err != nil {
			return nil, ErrTruncated
		}
		m.index[string(w)] = len(m.words)
		m.words = append(m.words, string(w))
	}

	rows := uint64(hdr.Words) + uint64(hdr.Bucket)
	hi, cells := bits.Mul64(rows, uint64(hdr.Dim))
	if hi != 0 || cells > uint64(r.Len())/4 || cells*4 != uint64(r.Len()) {
		return nil, ErrTruncated
	}
	m.input = make([]float32, cells)
	if err := binary.Read(r, binary.LittleEndian, m.input); err != nil {
		return nil, ErrTruncated
	}
	return m, nil
}
