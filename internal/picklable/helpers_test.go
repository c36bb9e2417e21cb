package picklable

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"modelpack/internal/wordvec"
)

var vocabulary = []string{
	"lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "adipiscing", "elit",
	"sed", "do", "eiusmod", "tempor", "incididunt", "ut", "labore", "et", "dolore",
	"magna", "aliqua", "enim", "ad", "minim", "veniam", "quis", "nostrud",
}

// samples are the representative queries compared across round trips.
var samples = []string{
	"lorem ipsum dolor",
	"sit amet consectetur adipiscing",
	"completely unseen tokens",
}

func newModel(t *testing.T) *wordvec.Model {
	t.Helper()
	m, err := wordvec.New(vocabulary, wordvec.Options{Dim: 12, Bucket: 256, Seed: 7})
	require.NoError(t, err)
	return m
}

// sentenceVectors is the subset of the query surface both adapters and bare
// models expose.
type sentenceVectors interface {
	SentenceVector(text string) ([]float32, error)
	Words() []string
	WordVector(word string) []float32
}

func requireSameBehavior(t *testing.T, want, got sentenceVectors) {
	t.Helper()
	require.Equal(t, want.Words(), got.Words())
	for _, w := range want.Words()[:5] {
		require.Equal(t, want.WordVector(w), got.WordVector(w), w)
	}
	for _, s := range samples {
		a, err := want.SentenceVector(s)
		require.NoError(t, err)
		b, err := got.SentenceVector(s)
		require.NoError(t, err)
		require.Equal(t, a, b, s)
	}
}

// scopedTempBase points scoped temp dirs at a fresh directory for the test.
func scopedTempBase(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	SetTempDir(base)
	t.Cleanup(func() { SetTempDir("") })
	return base
}

func requireEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries, "temporary resources left behind in %s", dir)
}
