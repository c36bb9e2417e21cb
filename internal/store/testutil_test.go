package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"modelpack/internal/wordvec"
	"modelpack/pkg/types"
)

var testWords = []string{"the", "quick", "brown", "fox", "jumps", "over", "lazy", "dog"}

// writeModel saves a small seeded wordvec model under dir and returns its
// registry entry.
func writeModel(t *testing.T, dir, name string, seed uint64) types.Model {
	t.Helper()
	m, err := wordvec.New(testWords, wordvec.Options{Dim: 8, Bucket: 128, Seed: seed})
	require.NoError(t, err)
	p := filepath.Join(dir, name)
	require.NoError(t, m.SaveModel(p))
	return types.Model{ID: name, Name: name, Path: p, Format: types.FormatWordVec}
}

func newTestStore(t *testing.T, cfg Config) *Store {
	t.Helper()
	s, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func mustEmbed(t *testing.T, s *Store, id, text string) []float32 {
	t.Helper()
	resp, err := s.Embed(context.Background(), types.EmbedRequest{Model: id, Text: text})
	require.NoError(t, err, "embed %s", id)
	return resp.Vector
}
