package store

import (
	"github.com/rs/zerolog"

	"modelpack/pkg/types"
)

// Defaults applied when corresponding Config fields are unset.
const defaultMaxResident = 4

// Config encapsulates all tunables for Store construction.
type Config struct {
	Registry     []types.Model
	MaxResident  int
	DefaultModel string
	// Logger receives load, eviction and snapshot events. Zero value logs
	// nowhere.
	Logger zerolog.Logger
}

func (c Config) maxResident() int {
	if c.MaxResident <= 0 {
		return defaultMaxResident
	}
	return c.MaxResident
}
