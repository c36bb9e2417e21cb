package store

// Unload closes and removes a resident model.
func (s *Store) Unload(id string) error {
	if id == "" {
		return ErrModelNotFound("(unspecified)")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cache.Remove(id) {
		return ErrModelNotFound(id)
	}
	residentGauge.Set(float64(s.cache.Len()))
	s.log.Info().Str("model", id).Msg("model unloaded")
	return nil
}
