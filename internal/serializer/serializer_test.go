package serializer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID    string            `json:"id"`
	Score float64           `json:"score"`
	Tags  map[string]string `json:"tags"`
}

func TestByName(t *testing.T) {
	for name, want := range map[string]string{"": "gob", "gob": "gob", "JSON": "json", " json ": "json"} {
		s, err := ByName(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, s.Name())
	}
	_, err := ByName("xml")
	assert.Error(t, err)
}

func TestSerializers_RoundTrip(t *testing.T) {
	in := record{ID: "a", Score: 0.5, Tags: map[string]string{"k": "v"}}
	for _, s := range []Serializer{GobSerializer{}, JSONSerializer{}} {
		t.Run(s.Name(), func(t *testing.T) {
			data, err := s.Marshal(in)
			require.NoError(t, err)
			var out record
			require.NoError(t, s.Unmarshal(data, &out))
			assert.Equal(t, in, out)
		})
	}
}

func TestSerializers_UnmarshalGarbage(t *testing.T) {
	for _, s := range []Serializer{GobSerializer{}, JSONSerializer{}} {
		var out record
		assert.Error(t, s.Unmarshal([]byte("\x00garbage"), &out), s.Name())
	}
}
