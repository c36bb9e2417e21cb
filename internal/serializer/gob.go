package serializer

import (
	"bytes"
	"encoding/gob"
)

// GobSerializer uses encoding/gob, which honours gob.GobEncoder hooks.
type GobSerializer struct{}

var _ Serializer = GobSerializer{}

func (GobSerializer) Name() string { return "gob" }

func (GobSerializer) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (GobSerializer) Unmarshal(data []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
