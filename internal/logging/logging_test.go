package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, lvl)

	lvl, err = ParseLevel(" DEBUG ")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, lvl)

	_, err = ParseLevel("chatty")
	assert.Error(t, err)
}

func TestNew_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "modelpack.log")
	lg, closer, err := New(Options{Level: "info", File: path})
	require.NoError(t, err)

	lg.Debug().Msg("hidden")
	lg.Info().Str("model", "m.wvec").Msg("loaded")
	require.NoError(t, closer.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(b)
	assert.Contains(t, out, `"model":"m.wvec"`)
	assert.Contains(t, out, `"message":"loaded"`)
	assert.False(t, strings.Contains(out, "hidden"))
}

func TestNew_DirectoryAsFile(t *testing.T) {
	_, _, err := New(Options{File: t.TempDir()})
	assert.Error(t, err)
}

func TestNew_BadLevel(t *testing.T) {
	_, closer, err := New(Options{Level: "loud"})
	assert.Error(t, err)
	assert.NoError(t, closer.Close())
}
