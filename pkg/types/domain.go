package types

// Model represents a native model file discovered on disk.
type Model struct {
	// Stable identifier for the model (the file name).
	// example: news-cbow.wvec
	ID string `json:"id" example:"news-cbow.wvec"`
	// Human-friendly name.
	// example: news-cbow
	Name string `json:"name" example:"news-cbow"`
	// Absolute path to the model file on disk.
	// example: /home/user/models/news-cbow.wvec
	Path string `json:"path" example:"/home/user/models/news-cbow.wvec"`
	// Native format of the file (wordvec or gguf).
	// example: wordvec
	Format string `json:"format" example:"wordvec"`
}

// Native model formats understood by the registry and the store.
const (
	FormatWordVec = "wordvec"
	FormatGGUF    = "gguf"
)
