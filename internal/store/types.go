package store

import (
	"time"

	"modelpack/internal/picklable"
)

// Model is a resident, queryable model. The picklable adapters satisfy it.
type Model interface {
	Embed(text string) ([]float32, error)
	Capture() ([]byte, error)
	Close() error
}

var (
	_ Model = (*picklable.WordVec)(nil)
	_ Model = (*picklable.Llama)(nil)
)

// resident is one live model in the LRU.
type resident struct {
	id       string
	format   string
	model    Model
	lastUsed time.Time
	restored bool
}
