//go:build !llama

package picklable

import (
	"bytes"
	"encoding/gob"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLlamaStub_ReportsDependencyUnavailable(t *testing.T) {
	assert.False(t, LlamaAvailable())

	_, err := LoadLlama(Path("/models/tiny.gguf"))
	assert.True(t, IsDependencyUnavailable(err))

	l := &Llama{}
	_, err = l.Capture()
	assert.True(t, IsDependencyUnavailable(err))
	_, err = l.Embed("hello")
	assert.True(t, IsDependencyUnavailable(err))
	assert.NoError(t, l.Close())

	err = gob.NewEncoder(&bytes.Buffer{}).Encode(l)
	assert.Error(t, err)
	assert.NoError(t, l.UnmarshalJSON([]byte("null")))
}

func TestSetLlamaDefaults_FillsZeroFields(t *testing.T) {
	prev := llamaDefaults
	t.Cleanup(func() { llamaDefaults = prev })

	SetLlamaDefaults(LlamaOptions{GPULayers: 4})
	assert.Equal(t, defaultLlamaContext, llamaDefaults.ContextSize)
	assert.Positive(t, llamaDefaults.Threads)
	assert.Equal(t, 4, llamaDefaults.GPULayers)
}
