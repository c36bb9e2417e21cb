package httpapi

import "time"

// maxBodyBytes controls the maximum allowed request body size for JSON endpoints.
var maxBodyBytes int64 = 1 << 20

// SetMaxBodyBytes sets the JSON body limit; non-positive restores 1 MiB.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		maxBodyBytes = 1 << 20
		return
	}
	maxBodyBytes = n
}

// maxSnapshotBytes bounds PUT /models/{id}/snapshot bodies.
var maxSnapshotBytes int64 = 512 << 20

// SetMaxSnapshotBytes sets the snapshot upload limit; non-positive restores 512 MiB.
func SetMaxSnapshotBytes(n int64) {
	if n <= 0 {
		maxSnapshotBytes = 512 << 20
		return
	}
	maxSnapshotBytes = n
}

// embedTimeout bounds a single /embed request. Zero disables it.
var embedTimeout time.Duration

// SetEmbedTimeout sets the /embed timeout (<= 0 disables).
func SetEmbedTimeout(d time.Duration) {
	if d < 0 {
		d = 0
	}
	embedTimeout = d
}

// CORS configuration (opt-in). If disabled, no CORS middleware is added.
var (
	corsEnabled        bool
	corsAllowedOrigins []string
	corsAllowedMethods []string
	corsAllowedHeaders []string
)

// SetCORSOptions configures CORS behavior for the HTTP server.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	corsEnabled = enabled
	corsAllowedOrigins = append([]string(nil), origins...)
	corsAllowedMethods = append([]string(nil), methods...)
	corsAllowedHeaders = append([]string(nil), headers...)
}
