package store

import (
	"context"
	"time"

	"modelpack/internal/picklable"
)

// Ensure makes id resident, loading it from its registry path if needed.
// An empty id selects the default model.
func (s *Store) Ensure(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.ensureLocked(ctx, id)
	return err
}

func (s *Store) ensureLocked(ctx context.Context, id string) (*resident, error) {
	id, err := s.resolveID(id)
	if err != nil {
		return nil, err
	}
	if r, ok := s.cache.Get(id); ok {
		r.lastUsed = time.Now()
		return r, nil
	}
	mdl, ok := s.lookup(id)
	if !ok {
		return nil, ErrModelNotFound(id)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m, err := open(mdl.Format, picklable.Path(mdl.Path))
	if err != nil {
		s.lastErr = err.Error()
		s.log.Error().Err(err).Str("model", id).Str("path", mdl.Path).Msg("load failed")
		return nil, err
	}
	s.lastErr = ""
	s.loads++
	loadsTotal.WithLabelValues(mdl.Format, "registry").Inc()
	s.log.Info().Str("model", id).Str("format", mdl.Format).Msg("model loaded")
	s.admit(id, mdl.Format, m, false)
	r, _ := s.cache.Peek(id)
	return r, nil
}
