package store

import (
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	"modelpack/internal/picklable"
	"modelpack/pkg/types"
)

// opener reconstructs a model of one format from a path or captured bytes.
type opener func(src picklable.Source) (Model, error)

var openers = map[string]opener{
	types.FormatWordVec: func(src picklable.Source) (Model, error) {
		w, err := picklable.LoadWordVec(src)
		if err != nil {
			return nil, err
		}
		return w, nil
	},
	types.FormatGGUF: func(src picklable.Source) (Model, error) {
		l, err := picklable.LoadLlama(src)
		if err != nil {
			return nil, err
		}
		return l, nil
	},
}

func open(format string, src picklable.Source) (Model, error) {
	fn, ok := openers[format]
	if !ok {
		return nil, unknownFormatError{format: format}
	}
	return fn(src)
}

// Store owns the resident models.
type Store struct {
	mu           sync.Mutex
	registry     []types.Model
	defaultModel string
	maxResident  int
	cache        *lru.Cache[string, *resident]
	log          zerolog.Logger
	lastErr      string
	startTime    time.Time

	loads     uint64
	evictions uint64
	captures  uint64
	restores  uint64
}

// New constructs a Store from cfg.
func New(cfg Config) (*Store, error) {
	s := &Store{
		registry:     append([]types.Model(nil), cfg.Registry...),
		defaultModel: cfg.DefaultModel,
		maxResident:  cfg.maxResident(),
		log:          cfg.Logger,
		startTime:    time.Now(),
	}
	cache, err := lru.NewWithEvict[string, *resident](s.maxResident, s.onEvict)
	if err != nil {
		return nil, fmt.Errorf("resident cache: %w", err)
	}
	s.cache = cache
	return s, nil
}

// onEvict runs for capacity evictions and explicit removals alike, always
// with s.mu held by the caller.
func (s *Store) onEvict(id string, r *resident) {
	if err := r.model.Close(); err != nil {
		s.log.Warn().Err(err).Str("model", id).Msg("close on evict")
	}
	s.log.Debug().Str("model", id).Msg("model released")
}

// admit makes m resident under id, closing any model it replaces.
func (s *Store) admit(id, format string, m Model, restored bool) {
	s.cache.Remove(id)
	r := &resident{id: id, format: format, model: m, lastUsed: time.Now(), restored: restored}
	if evicted := s.cache.Add(id, r); evicted {
		s.evictions++
		evictionsTotal.Inc()
		s.log.Info().Str("model", id).Msg("evicted least recently used model")
	}
	residentGauge.Set(float64(s.cache.Len()))
}

// resolveID applies the default model to an empty id.
func (s *Store) resolveID(id string) (string, error) {
	if id != "" {
		return id, nil
	}
	if s.defaultModel == "" {
		return "", fmt.Errorf("%w: no model given and no default configured", ErrInvalidRequest)
	}
	return s.defaultModel, nil
}

func (s *Store) lookup(id string) (types.Model, bool) {
	for _, m := range s.registry {
		if m.ID == id {
			return m, true
		}
	}
	return types.Model{}, false
}

// Close releases every resident model.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Purge()
	residentGauge.Set(0)
}
