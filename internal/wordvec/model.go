package wordvec

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"sort"
	"strings"
)

// Defaults applied when corresponding Options fields are unset.
const (
	DefaultDim    = 32
	DefaultMinN   = 3
	DefaultMaxN   = 6
	DefaultBucket = 20000
)

// Options configures a new Model.
type Options struct {
	Dim    int // vector size
	MinN   int // min char n-gram length
	MaxN   int // max char n-gram length; negative disables subwords
	Bucket int // number of n-gram hash buckets
	Seed   uint64
}

func (o Options) withDefaults() Options {
	if o.Dim == 0 {
		o.Dim = DefaultDim
	}
	if o.MinN == 0 {
		o.MinN = DefaultMinN
	}
	if o.MaxN == 0 {
		o.MaxN = DefaultMaxN
	}
	if o.Bucket == 0 {
		o.Bucket = DefaultBucket
	}
	if o.MaxN < 0 {
		o.MaxN, o.Bucket = 0, 0
	}
	return o
}

// Model is a loaded word-vector model.
type Model struct {
	dim    int
	minn   int
	maxn   int
	bucket int
	words  []string
	index  map[string]int
	// input holds len(words)+bucket rows of dim floats.
	input []float32
}

// Neighbor is a vocabulary word and its cosine similarity to a query.
type Neighbor struct {
	Word  string
	Score float32
}

// New builds a model over words with seeded, untrained input vectors.
// Duplicate and blank words are dropped; order of first occurrence is kept.
func New(words []string, opts Options) (*Model, error) {
	opts = opts.withDefaults()
	if opts.Dim < 0 || opts.MinN < 1 || (opts.MaxN > 0 && opts.MinN > opts.MaxN) ||
		opts.Bucket < 0 || uint64(opts.Bucket) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %+v", ErrInvalidOptions, opts)
	}
	m := &Model{
		dim:    opts.Dim,
		minn:   opts.MinN,
		maxn:   opts.MaxN,
		bucket: opts.Bucket,
		index:  make(map[string]int, len(words)),
	}
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" || strings.ContainsAny(w, " \t\r\n") {
			continue
		}
		if _, ok := m.index[w]; ok {
			continue
		}
		m.index[w] = len(m.words)
		m.words = append(m.words, w)
	}
	if len(m.words) == 0 {
		return nil, ErrEmptyVocabulary
	}
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	m.input = make([]float32, (len(m.words)+m.bucket)*m.dim)
	scale := 1 / float32(m.dim)
	for i := range m.input {
		m.input[i] = (rng.Float32()*2 - 1) * scale
	}
	return m, nil
}

// Dimension returns the vector size.
func (m *Model) Dimension() int { return m.dim }

// Words returns a copy of the vocabulary in index order.
func (m *Model) Words() []string {
	out := make([]string, len(m.words))
	copy(out, m.words)
	return out
}

// WordVector returns the vector for word. Out-of-vocabulary words are built
// from their character n-grams alone.
func (m *Model) WordVector(word string) []float32 {
	vec := make([]float32, m.dim)
	ids := m.subwordIDs(word)
	if len(ids) == 0 {
		return vec
	}
	for _, id := range ids {
		row := m.input[id*m.dim : (id+1)*m.dim]
		for i, v := range row {
			vec[i] += v
		}
	}
	inv := 1 / float32(len(ids))
	for i := range vec {
		vec[i] *= inv
	}
	return vec
}

// SentenceVector averages the L2-normalised word vectors of the whitespace
// separated tokens in text. text must be a single line.
func (m *Model) SentenceVector(text string) ([]float32, error) {
	if strings.ContainsRune(text, '\n') {
		return nil, fmt.Errorf("%w: processes one line at a time (remove '\\n')", ErrInvalidInput)
	}
	vec := make([]float32, m.dim)
	count := 0
	for _, tok := range strings.Fields(text) {
		wv := m.WordVector(tok)
		n := norm(wv)
		if n == 0 {
			continue
		}
		for i, v := range wv {
			vec[i] += v / n
		}
		count++
	}
	if count > 0 {
		inv := 1 / float32(count)
		for i := range vec {
			vec[i] *= inv
		}
	}
	return vec, nil
}

// Transform returns one sentence vector per row. It fails on the first row
// that is not a single line.
func (m *Model) Transform(rows []string) ([][]float32, error) {
	out := make([][]float32, len(rows))
	for i, row := range rows {
		v, err := m.SentenceVector(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// NearestNeighbors returns the k vocabulary words most similar to word,
// excluding word itself, best first.
func (m *Model) NearestNeighbors(word string, k int) ([]Neighbor, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", ErrInvalidInput, k)
	}
	query := m.WordVector(word)
	qn := norm(query)
	out := make([]Neighbor, 0, len(m.words))
	for _, w := range m.words {
		if w == word {
			continue
		}
		v := m.WordVector(w)
		vn := norm(v)
		var score float32
		if qn > 0 && vn > 0 {
			score = dot(query, v) / (qn * vn)
		}
		out = append(out, Neighbor{Word: w, Score: score})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > k {
		out = out[:k]
	}
	return out, nil
}

// subwordIDs returns the vocabulary row (if any) followed by the hashed
// n-gram rows of "<word>".
func (m *Model) subwordIDs(word string) []int {
	var ids []int
	if i, ok := m.index[word]; ok {
		ids = append(ids, i)
	}
	if m.maxn == 0 || m.bucket == 0 || word == "" {
		return ids
	}
	runes := []rune("<" + word + ">")
	for i := range runes {
		for n := m.minn; n <= m.maxn && i+n <= len(runes); n++ {
			if n == 1 && (i == 0 || i+n == len(runes)) {
				continue
			}
			ids = append(ids, len(m.words)+int(hashGram(string(runes[i:i+n]))%uint32(m.bucket)))
		}
	}
	return ids
}

func hashGram(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}

func dot(a, b []float32) float32 {
	var s float32
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func norm(v []float32) float32 {
	return float32(math.Sqrt(float64(dot(v, v))))
}
