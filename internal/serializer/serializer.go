// Package serializer selects the generic host encoding used for composite
// values such as snapshot bundles. Adapters take part through their
// GobEncoder and json.Marshaler hooks.
package serializer

import (
	"fmt"
	"strings"
)

// Serializer converts values to and from bytes.
type Serializer interface {
	// Name identifies the encoding in configs and bundle files.
	Name() string
	// Marshal encodes v.
	Marshal(v any) ([]byte, error)
	// Unmarshal decodes data into v, which is usually a pointer.
	Unmarshal(data []byte, v any) error
}

// ByName returns the serializer registered under name ("gob" or "json").
func ByName(name string) (Serializer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "gob":
		return GobSerializer{}, nil
	case "json":
		return JSONSerializer{}, nil
	default:
		return nil, fmt.Errorf("serializer: unknown encoding %q", name)
	}
}
