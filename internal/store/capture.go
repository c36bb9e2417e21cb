package store

import (
	"context"
	"time"

	"modelpack/internal/picklable"
)

// Capture returns the serialized representation of id, loading it first if
// it is not resident. The format is returned alongside the bytes.
func (s *Store) Capture(ctx context.Context, id string) ([]byte, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, err := s.ensureLocked(ctx, id)
	if err != nil {
		return nil, "", err
	}
	start := time.Now()
	data, err := r.model.Capture()
	captureDuration.WithLabelValues(r.format, resultLabel(err)).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, "", err
	}
	s.captures++
	capturedBytes.WithLabelValues(r.format).Add(float64(len(data)))
	return data, r.format, nil
}

// Restore reconstructs a model of format from captured bytes and makes it
// resident under id, replacing and closing any model already there.
func (s *Store) Restore(id, format string, data []byte) error {
	if id == "" {
		return ErrInvalidRequest
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.restoreLocked(id, format, data); err != nil {
		return err
	}
	s.log.Info().Str("model", id).Str("format", format).Int("bytes", len(data)).Msg("model restored")
	return nil
}

func (s *Store) restoreLocked(id, format string, data []byte) error {
	start := time.Now()
	m, err := open(format, picklable.Bytes(data))
	restoreDuration.WithLabelValues(format, resultLabel(err)).Observe(time.Since(start).Seconds())
	if err != nil {
		return err
	}
	s.adopt(id, format, m)
	return nil
}

// adopt makes an already reconstructed model resident.
func (s *Store) adopt(id, format string, m Model) {
	s.restores++
	loadsTotal.WithLabelValues(format, "restore").Inc()
	s.admit(id, format, m, true)
}
