package picklable

import (
	"encoding/gob"

	"github.com/bytedance/sonic"

	"modelpack/internal/wordvec"
)

var wordVecCodec = Codec[*wordvec.Model]{Filename: defaultFilename, Load: wordvec.LoadModel}

func init() {
	gob.Register(&WordVec{})
}

// WordVec is a wordvec.Model that survives gob and JSON encoding. Every query
// of the embedded model is promoted unchanged.
type WordVec struct {
	*wordvec.Model
}

// AdoptWordVec wraps an already loaded model. The adapter refers to the same
// handle; nothing is reloaded or copied.
func AdoptWordVec(m *wordvec.Model) *WordVec {
	return &WordVec{Model: m}
}

// LoadWordVec reconstructs an adapter from a model path or captured bytes.
func LoadWordVec(src Source) (*WordVec, error) {
	m, err := wordVecCodec.Restore(src)
	if err != nil {
		return nil, err
	}
	return AdoptWordVec(m), nil
}

// Capture returns the model as written by its native save routine.
func (w *WordVec) Capture() ([]byte, error) {
	if w == nil || w.Model == nil {
		return nil, ErrNilHandle
	}
	return wordVecCodec.Capture(w.Model)
}

// Reduce returns LoadWordVec and a fresh capture of w.
func (w *WordVec) Reduce() (Reduction[*WordVec], error) {
	data, err := w.Capture()
	if err != nil {
		return Reduction[*WordVec]{}, err
	}
	return Reduction[*WordVec]{Reconstruct: LoadWordVec, Args: data}, nil
}

// Embed returns the sentence vector of text.
func (w *WordVec) Embed(text string) ([]float32, error) {
	if w == nil || w.Model == nil {
		return nil, ErrNilHandle
	}
	return w.SentenceVector(text)
}

// Close is a no-op; the model holds no native resources.
func (w *WordVec) Close() error { return nil }

// GobEncode implements gob.GobEncoder.
func (w *WordVec) GobEncode() ([]byte, error) {
	r, err := w.Reduce()
	if err != nil {
		return nil, err
	}
	return r.Args, nil
}

// GobDecode implements gob.GobDecoder.
func (w *WordVec) GobDecode(data []byte) error {
	r := Reduction[*WordVec]{Reconstruct: LoadWordVec, Args: data}
	restored, err := r.Apply()
	if err != nil {
		return err
	}
	*w = *restored
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (w *WordVec) MarshalBinary() ([]byte, error) { return w.GobEncode() }

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (w *WordVec) UnmarshalBinary(data []byte) error { return w.GobDecode(data) }

// MarshalJSON encodes the captured bytes as a base64 string.
func (w *WordVec) MarshalJSON() ([]byte, error) {
	data, err := w.GobEncode()
	if err != nil {
		return nil, err
	}
	return sonic.Marshal(data)
}

// UnmarshalJSON implements json.Unmarshaler.
func (w *WordVec) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var data []byte
	if err := sonic.Unmarshal(b, &data); err != nil {
		return err
	}
	return w.GobDecode(data)
}
