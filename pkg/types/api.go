package types

// EmbedRequest represents an embedding request payload.
type EmbedRequest struct {
	// Optional model identifier. If empty, the server default is used.
	// example: news-cbow.wvec
	Model string `json:"model,omitempty" example:"news-cbow.wvec"`
	// Required single-line text to embed.
	// example: the quick brown fox
	Text string `json:"text" example:"the quick brown fox"`
}

// EmbedResponse is returned by POST /embed.
type EmbedResponse struct {
	// Model that produced the vector.
	// example: news-cbow.wvec
	Model string `json:"model" example:"news-cbow.wvec"`
	// Dimension of the vector.
	// example: 32
	Dim int `json:"dim" example:"32"`
	// The sentence vector.
	Vector []float32 `json:"vector"`
}

// ModelsResponse wraps the list of models returned by GET /models.
type ModelsResponse struct {
	// List of available models.
	Models []Model `json:"models"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// ResidentStatus summarizes a loaded model for /status.
type ResidentStatus struct {
	// ID of the resident model.
	// example: news-cbow.wvec
	ModelID string `json:"model_id" example:"news-cbow.wvec"`
	// Native format of the model.
	// example: wordvec
	Format string `json:"format" example:"wordvec"`
	// Last time this model served a request (unix seconds).
	// example: 1700000000
	LastUsed int64 `json:"last_used_unix" example:"1700000000"`
	// True when the model was restored from captured bytes rather than loaded from the registry.
	// example: false
	Restored bool `json:"restored" example:"false"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Resident models, most recently used first.
	Resident []ResidentStatus `json:"resident"`
	// Maximum number of resident models before eviction.
	// example: 8
	MaxResident int `json:"max_resident" example:"8"`
	// Optional top-level error message.
	LastError string `json:"last_error,omitempty"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Total number of evictions.
	// example: 5
	EvictionsTotal uint64 `json:"evictions_total" example:"5"`
	// Total number of model loads from disk.
	// example: 12
	LoadsTotal uint64 `json:"loads_total" example:"12"`
	// Total number of captures served.
	// example: 3
	CapturesTotal uint64 `json:"captures_total" example:"3"`
	// Total number of restores from captured bytes.
	// example: 2
	RestoresTotal uint64 `json:"restores_total" example:"2"`
}

// RestoreResponse is returned by PUT /models/{id}/snapshot.
type RestoreResponse struct {
	// ID the restored model is resident under.
	// example: news-cbow.wvec
	Model string `json:"model" example:"news-cbow.wvec"`
	// Native format the bytes were decoded as.
	// example: wordvec
	Format string `json:"format" example:"wordvec"`
	// Size of the uploaded representation in bytes.
	// example: 40960
	Bytes int `json:"bytes" example:"40960"`
}
