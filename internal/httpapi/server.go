package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"modelpack/internal/registry"
	"modelpack/pkg/types"
)

// FormatHeader carries the native model format of a snapshot body.
const FormatHeader = "X-Model-Format"

// Service defines the methods required by the HTTP API layer.
type Service interface {
	ListModels() []types.Model
	Status() types.StatusResponse
	Ready() bool
	Embed(ctx context.Context, req types.EmbedRequest) (types.EmbedResponse, error)
	Capture(ctx context.Context, id string) ([]byte, string, error)
	Restore(id, format string, data []byte) error
}

// NewMux builds the router for svc.
func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			ExposedHeaders: []string{FormatHeader, "X-Request-Id"},
			MaxAge:         300,
		}))
	}

	h := &handlers{svc: svc}
	r.Get("/healthz", h.healthz)
	r.Get("/readyz", h.readyz)
	r.Get("/models", h.models)
	r.Get("/status", h.status)
	r.Post("/embed", h.embed)
	r.Get("/models/{id}/snapshot", h.getSnapshot)
	r.Put("/models/{id}/snapshot", h.putSnapshot)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	MountSwagger(r)
	return r
}

type handlers struct {
	svc Service
}

// healthz godoc
// @Summary Liveness probe
// @Produce plain
// @Success 200 {string} string "ok"
// @Router /healthz [get]
func (h *handlers) healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// readyz godoc
// @Summary Readiness probe
// @Produce plain
// @Success 200 {string} string "ready"
// @Failure 503 {string} string "loading"
// @Router /readyz [get]
func (h *handlers) readyz(w http.ResponseWriter, r *http.Request) {
	if h.svc.Ready() {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
		return
	}
	w.WriteHeader(http.StatusServiceUnavailable)
	_, _ = w.Write([]byte("loading"))
}

// models godoc
// @Summary List registry models
// @Produce json
// @Success 200 {object} types.ModelsResponse
// @Router /models [get]
func (h *handlers) models(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.ModelsResponse{Models: h.svc.ListModels()})
}

// status godoc
// @Summary Resident models and counters
// @Produce json
// @Success 200 {object} types.StatusResponse
// @Router /status [get]
func (h *handlers) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Status())
}

// embed godoc
// @Summary Sentence vector for one line of text
// @Accept json
// @Produce json
// @Param request body types.EmbedRequest true "Embed request"
// @Success 200 {object} types.EmbedResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Failure 503 {object} types.ErrorResponse
// @Router /embed [post]
func (h *handlers) embed(w http.ResponseWriter, r *http.Request) {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req types.EmbedRequest
	if err := sonic.ConfigStd.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSONError(w, http.StatusBadRequest, "text is required")
		return
	}

	start := time.Now()
	ctx, cancel := joinContexts(r.Context(), serverBaseCtx)
	defer cancel()
	if embedTimeout > 0 {
		var tcancel context.CancelFunc
		ctx, tcancel = context.WithTimeout(ctx, embedTimeout)
		defer tcancel()
	}
	resp, err := h.svc.Embed(ctx, req)
	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		status := statusFor(err)
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
		writeJSONError(w, status, err.Error())
		logRequestEnd(r, "embed", status, start, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
	logRequestEnd(r, "embed", http.StatusOK, start, nil)
}

// getSnapshot godoc
// @Summary Capture a model into its native serialized form
// @Produce octet-stream
// @Param id path string true "Model id"
// @Success 200 {file} binary
// @Failure 404 {object} types.ErrorResponse
// @Failure 503 {object} types.ErrorResponse
// @Router /models/{id}/snapshot [get]
func (h *handlers) getSnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	start := time.Now()
	data, format, err := h.svc.Capture(r.Context(), id)
	if err != nil {
		status := statusFor(err)
		writeJSONError(w, status, err.Error())
		logRequestEnd(r, "capture", status, start, err)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set(FormatHeader, format)
	w.Header().Set("Content-Disposition", `attachment; filename="`+id+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
	snapshotBytesTotal.WithLabelValues("download").Add(float64(len(data)))
	logRequestEnd(r, "capture", http.StatusOK, start, nil)
}

// putSnapshot godoc
// @Summary Restore a model from its serialized form
// @Accept octet-stream
// @Produce json
// @Param id path string true "Model id"
// @Param format query string false "Native format (wordvec or gguf); defaults to the X-Model-Format header, then the id's extension"
// @Success 200 {object} types.RestoreResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 413 {object} types.ErrorResponse
// @Failure 503 {object} types.ErrorResponse
// @Router /models/{id}/snapshot [put]
func (h *handlers) putSnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	format := snapshotFormat(r, id)
	if format == "" {
		writeJSONError(w, http.StatusBadRequest, "format is required")
		return
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSnapshotBytes))
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeJSONError(w, http.StatusRequestEntityTooLarge, "snapshot too large")
			return
		}
		writeJSONError(w, http.StatusBadRequest, "failed to read body")
		return
	}
	if len(data) == 0 {
		writeJSONError(w, http.StatusBadRequest, "empty snapshot body")
		return
	}
	start := time.Now()
	if err := h.svc.Restore(id, format, data); err != nil {
		status := statusFor(err)
		writeJSONError(w, status, err.Error())
		logRequestEnd(r, "restore", status, start, err)
		return
	}
	snapshotBytesTotal.WithLabelValues("upload").Add(float64(len(data)))
	writeJSON(w, http.StatusOK, types.RestoreResponse{Model: id, Format: format, Bytes: len(data)})
	logRequestEnd(r, "restore", http.StatusOK, start, nil)
}

// snapshotFormat picks the format from ?format=, the format header or the
// id's file extension, in that order.
func snapshotFormat(r *http.Request, id string) string {
	if f := strings.TrimSpace(r.URL.Query().Get("format")); f != "" {
		return strings.ToLower(f)
	}
	if f := strings.TrimSpace(r.Header.Get(FormatHeader)); f != "" {
		return strings.ToLower(f)
	}
	return registry.FormatOf(id)
}
