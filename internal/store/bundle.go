package store

import (
	"fmt"
	"io"
	"time"

	"modelpack/internal/compressor"
	"modelpack/internal/picklable"
	"modelpack/internal/serializer"
	"modelpack/pkg/types"
)

// BundleVersion is written into every snapshot bundle.
const BundleVersion = 1

// Bundle is the host-encoded form of a set of resident models. Each adapter
// travels through its own gob or JSON hook, so the bundle itself is an
// ordinary value for any Serializer.
type Bundle struct {
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	Entries   []Entry   `json:"entries"`
}

// Entry holds one model. Exactly one of WordVec and Llama is set, matching
// Format.
type Entry struct {
	ID      string             `json:"id"`
	Format  string             `json:"format"`
	WordVec *picklable.WordVec `json:"wordvec,omitempty"`
	Llama   *picklable.Llama   `json:"llama,omitempty"`
}

// Model returns the decoded adapter of e.
func (e Entry) Model() (Model, error) {
	switch e.Format {
	case types.FormatWordVec:
		if e.WordVec == nil {
			return nil, fmt.Errorf("bundle entry %q: missing wordvec payload", e.ID)
		}
		return e.WordVec, nil
	case types.FormatGGUF:
		if e.Llama == nil {
			return nil, fmt.Errorf("bundle entry %q: missing llama payload", e.ID)
		}
		return e.Llama, nil
	default:
		return nil, unknownFormatError{format: e.Format}
	}
}

func newEntry(r *resident) (Entry, error) {
	e := Entry{ID: r.id, Format: r.format}
	switch m := r.model.(type) {
	case *picklable.WordVec:
		e.WordVec = m
	case *picklable.Llama:
		e.Llama = m
	default:
		return Entry{}, fmt.Errorf("model %q: %T cannot be bundled", r.id, r.model)
	}
	return e, nil
}

// EncodeBundle serializes and compresses b.
func EncodeBundle(b Bundle, ser serializer.Serializer, comp compressor.Compressor) ([]byte, error) {
	raw, err := ser.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("encode bundle (%s): %w", ser.Name(), err)
	}
	return comp.Compress(nil, raw)
}

// DecodeBundle reverses EncodeBundle. Decoding reconstructs every model. On
// error no models are returned; any already reconstructed are closed.
func DecodeBundle(data []byte, ser serializer.Serializer, comp compressor.Compressor) (Bundle, error) {
	var b Bundle
	raw, err := comp.Decompress(nil, data)
	if err != nil {
		return Bundle{}, fmt.Errorf("decompress bundle (%s): %w", comp.Name(), err)
	}
	if err := ser.Unmarshal(raw, &b); err != nil {
		closeEntries(b.Entries)
		return Bundle{}, fmt.Errorf("decode bundle (%s): %w", ser.Name(), err)
	}
	if b.Version != BundleVersion {
		closeEntries(b.Entries)
		return Bundle{}, fmt.Errorf("unsupported bundle version %d", b.Version)
	}
	return b, nil
}

// Snapshot writes every resident model to w, least recently used first.
func (s *Store) Snapshot(w io.Writer, ser serializer.Serializer, comp compressor.Compressor) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := Bundle{Version: BundleVersion, CreatedAt: time.Now().UTC()}
	for _, id := range s.cache.Keys() {
		r, ok := s.cache.Peek(id)
		if !ok {
			continue
		}
		e, err := newEntry(r)
		if err != nil {
			return 0, err
		}
		b.Entries = append(b.Entries, e)
	}
	start := time.Now()
	data, err := EncodeBundle(b, ser, comp)
	captureDuration.WithLabelValues("bundle", resultLabel(err)).Observe(time.Since(start).Seconds())
	if err != nil {
		return 0, err
	}
	if _, err := w.Write(data); err != nil {
		return 0, err
	}
	s.captures += uint64(len(b.Entries))
	s.log.Info().Int("models", len(b.Entries)).Int("bytes", len(data)).Str("serializer", ser.Name()).Str("compressor", comp.Name()).Msg("snapshot written")
	return len(b.Entries), nil
}

// LoadSnapshot reads a bundle from r and makes every model in it resident,
// replacing models with the same id. It returns the number of models loaded.
func (s *Store) LoadSnapshot(r io.Reader, ser serializer.Serializer, comp compressor.Compressor) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	start := time.Now()
	b, err := DecodeBundle(data, ser, comp)
	restoreDuration.WithLabelValues("bundle", resultLabel(err)).Observe(time.Since(start).Seconds())
	if err != nil {
		return 0, err
	}
	models := make([]Model, len(b.Entries))
	for i, e := range b.Entries {
		m, err := e.Model()
		if err != nil {
			closeEntries(b.Entries)
			return 0, err
		}
		models[i] = m
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range b.Entries {
		s.adopt(e.ID, e.Format, models[i])
	}
	s.log.Info().Int("models", len(b.Entries)).Time("created_at", b.CreatedAt).Msg("snapshot loaded")
	return len(b.Entries), nil
}

// closeEntries releases every decoded model of a bundle that is not going
// to be admitted.
func closeEntries(entries []Entry) {
	for _, e := range entries {
		if e.WordVec != nil {
			_ = e.WordVec.Close()
		}
		if e.Llama != nil {
			_ = e.Llama.Close()
		}
	}
}
