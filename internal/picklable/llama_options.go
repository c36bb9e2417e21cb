package picklable

import "runtime"

// LlamaOptions configures how llama.cpp models are loaded.
type LlamaOptions struct {
	ContextSize int
	Threads     int
	GPULayers   int
}

const defaultLlamaContext = 512

var llamaDefaults = LlamaOptions{ContextSize: defaultLlamaContext, Threads: runtime.NumCPU()}

// SetLlamaDefaults sets the options used by every subsequent llama load,
// including loads triggered by GobDecode and UnmarshalJSON. Zero fields fall
// back to package defaults.
func SetLlamaDefaults(o LlamaOptions) {
	if o.ContextSize <= 0 {
		o.ContextSize = defaultLlamaContext
	}
	if o.Threads <= 0 {
		o.Threads = runtime.NumCPU()
	}
	llamaDefaults = o
}

// LlamaAvailable reports whether this binary was built with the 'llama' tag.
func LlamaAvailable() bool { return llamaBuilt }
