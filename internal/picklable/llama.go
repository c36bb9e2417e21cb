//go:build llama

package picklable

import (
	"encoding/gob"
	"errors"
	"io"
	"os"

	"github.com/bytedance/sonic"
	llama "github.com/go-skynet/go-llama.cpp"
)

// llamaBuilt indicates this binary was compiled with real llama support.
const llamaBuilt = true

var llamaCodec = Codec[*llamaHandle]{Filename: "model.gguf", Load: loadLlamaHandle}

func init() {
	gob.Register(&Llama{})
}

// llamaHandle owns a loaded model and an open descriptor on the GGUF file it
// came from. The binding cannot write weights back out, so SaveModel copies
// the GGUF bytes through the descriptor, which stays readable after the file
// is unlinked.
type llamaHandle struct {
	model *llama.LLama
	src   *os.File
	opts  LlamaOptions
}

func loadLlamaHandle(path string) (*llamaHandle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	opts := llamaDefaults
	mo := []llama.ModelOption{
		llama.SetContext(opts.ContextSize),
		llama.EnableEmbeddings,
	}
	if opts.GPULayers > 0 {
		mo = append(mo, llama.SetGPULayers(opts.GPULayers))
	}
	m, err := llama.New(path, mo...)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &llamaHandle{model: m, src: f, opts: opts}, nil
}

func (h *llamaHandle) SaveModel(path string) (err error) {
	fi, err := h.src.Stat()
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	_, err = io.Copy(out, io.NewSectionReader(h.src, 0, fi.Size()))
	return err
}

// Llama is a go-llama.cpp model that survives gob and JSON encoding.
type Llama struct {
	h *llamaHandle
}

// AdoptLlama wraps a model already loaded from modelPath. The file is kept
// open so later captures can read it.
func AdoptLlama(model *llama.LLama, modelPath string) (*Llama, error) {
	if model == nil {
		return nil, ErrNilHandle
	}
	f, err := os.Open(modelPath)
	if err != nil {
		return nil, err
	}
	return &Llama{h: &llamaHandle{model: model, src: f, opts: llamaDefaults}}, nil
}

// LoadLlama reconstructs an adapter from a GGUF path or captured bytes.
func LoadLlama(src Source) (*Llama, error) {
	h, err := llamaCodec.Restore(src)
	if err != nil {
		return nil, err
	}
	return &Llama{h: h}, nil
}

// Model returns the underlying binding handle.
func (l *Llama) Model() *llama.LLama {
	if l == nil || l.h == nil {
		return nil
	}
	return l.h.model
}

// Capture returns the model's GGUF bytes.
func (l *Llama) Capture() ([]byte, error) {
	if l == nil || l.h == nil || l.h.model == nil {
		return nil, ErrNilHandle
	}
	return llamaCodec.Capture(l.h)
}

// Reduce returns LoadLlama and a fresh capture of l.
func (l *Llama) Reduce() (Reduction[*Llama], error) {
	data, err := l.Capture()
	if err != nil {
		return Reduction[*Llama]{}, err
	}
	return Reduction[*Llama]{Reconstruct: LoadLlama, Args: data}, nil
}

// Embed returns the embedding of text.
func (l *Llama) Embed(text string) ([]float32, error) {
	if l == nil || l.h == nil || l.h.model == nil {
		return nil, ErrNilHandle
	}
	return l.h.model.Embeddings(text, llama.SetThreads(l.h.opts.Threads))
}

// Close frees the native model and the source descriptor.
func (l *Llama) Close() error {
	if l == nil || l.h == nil {
		return nil
	}
	return l.h.Close()
}

func (h *llamaHandle) Close() error {
	if h.model != nil {
		h.model.Free()
		h.model = nil
	}
	var err error
	if h.src != nil {
		err = h.src.Close()
		h.src = nil
	}
	return err
}

// GobEncode implements gob.GobEncoder.
func (l *Llama) GobEncode() ([]byte, error) {
	r, err := l.Reduce()
	if err != nil {
		return nil, err
	}
	return r.Args, nil
}

// GobDecode implements gob.GobDecoder.
func (l *Llama) GobDecode(data []byte) error {
	r := Reduction[*Llama]{Reconstruct: LoadLlama, Args: data}
	restored, err := r.Apply()
	if err != nil {
		return err
	}
	*l = *restored
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (l *Llama) MarshalBinary() ([]byte, error) { return l.GobEncode() }

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (l *Llama) UnmarshalBinary(data []byte) error { return l.GobDecode(data) }

// MarshalJSON encodes the captured bytes as a base64 string.
func (l *Llama) MarshalJSON() ([]byte, error) {
	data, err := l.GobEncode()
	if err != nil {
		return nil, err
	}
	return sonic.Marshal(data)
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *Llama) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var data []byte
	if err := sonic.Unmarshal(b, &data); err != nil {
		return err
	}
	if len(data) == 0 {
		return errors.New("picklable: empty llama payload")
	}
	return l.GobDecode(data)
}
