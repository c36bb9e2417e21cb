package store

import (
	"time"

	"modelpack/pkg/types"
)

// ListModels returns a copy of the registry.
func (s *Store) ListModels() []types.Model {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.Model, len(s.registry))
	copy(out, s.registry)
	return out
}

// Ready reports whether the store can serve requests: something is resident
// or the registry is non-empty, and the last load did not fail.
func (s *Store) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cache.Len() > 0 {
		return true
	}
	return len(s.registry) > 0 && s.lastErr == ""
}

// Status builds the /status payload. Resident models are listed most
// recently used first.
func (s *Store) Status() types.StatusResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := s.cache.Keys()
	resp := types.StatusResponse{
		Resident:       make([]types.ResidentStatus, 0, len(keys)),
		MaxResident:    s.maxResident,
		LastError:      s.lastErr,
		UptimeSeconds:  int64(time.Since(s.startTime).Seconds()),
		EvictionsTotal: s.evictions,
		LoadsTotal:     s.loads,
		CapturesTotal:  s.captures,
		RestoresTotal:  s.restores,
	}
	for i := len(keys) - 1; i >= 0; i-- {
		r, ok := s.cache.Peek(keys[i])
		if !ok {
			continue
		}
		resp.Resident = append(resp.Resident, types.ResidentStatus{
			ModelID:  r.id,
			Format:   r.format,
			LastUsed: r.lastUsed.Unix(),
			Restored: r.restored,
		})
	}
	return resp
}
