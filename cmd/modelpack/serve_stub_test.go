//go:build !llama

package main

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"modelpack/pkg/types"
)

func TestWarnUnloadable_CountsGGUFWithoutLlama(t *testing.T) {
	var buf bytes.Buffer
	lg := zerolog.New(&buf)
	reg := []types.Model{
		{ID: "a.wvec", Format: types.FormatWordVec},
		{ID: "b.gguf", Format: types.FormatGGUF},
		{ID: "c.gguf", Format: types.FormatGGUF},
	}
	assert.Equal(t, 2, warnUnloadable(lg, reg))
	assert.Contains(t, buf.String(), "-tags=llama")

	buf.Reset()
	assert.Zero(t, warnUnloadable(lg, reg[:1]))
	assert.Empty(t, buf.String())
}
