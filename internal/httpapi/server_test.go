package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modelpack/pkg/types"
)

type mockService struct {
	models     []types.Model
	status     types.StatusResponse
	ready      bool
	embedErr   error
	captureErr error
	restoreErr error

	gotEmbed   types.EmbedRequest
	gotRestore struct {
		id, format string
		data       []byte
	}
}

func (m *mockService) ListModels() []types.Model    { return append([]types.Model(nil), m.models...) }
func (m *mockService) Status() types.StatusResponse { return m.status }
func (m *mockService) Ready() bool                  { return m.ready }
func (m *mockService) Embed(ctx context.Context, req types.EmbedRequest) (types.EmbedResponse, error) {
	m.gotEmbed = req
	if m.embedErr != nil {
		return types.EmbedResponse{}, m.embedErr
	}
	return types.EmbedResponse{Model: "m1.wvec", Dim: 2, Vector: []float32{0.5, -0.5}}, nil
}
func (m *mockService) Capture(ctx context.Context, id string) ([]byte, string, error) {
	if m.captureErr != nil {
		return nil, "", m.captureErr
	}
	return []byte("WVEC-bytes"), types.FormatWordVec, nil
}
func (m *mockService) Restore(id, format string, data []byte) error {
	m.gotRestore.id, m.gotRestore.format, m.gotRestore.data = id, format, data
	return m.restoreErr
}

type mockHTTPError struct {
	msg  string
	code int
}

func (e mockHTTPError) Error() string   { return e.msg }
func (e mockHTTPError) StatusCode() int { return e.code }

func postEmbed(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/embed", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestModelsHandler(t *testing.T) {
	svc := &mockService{models: []types.Model{{ID: "m1.wvec"}, {ID: "m2.gguf"}}}
	w := httptest.NewRecorder()
	NewMux(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/models", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	var body types.ModelsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Models, 2)
}

func TestStatusHandler(t *testing.T) {
	svc := &mockService{status: types.StatusResponse{MaxResident: 3, CapturesTotal: 7}}
	w := httptest.NewRecorder()
	NewMux(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body types.StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 3, body.MaxResident)
	assert.EqualValues(t, 7, body.CapturesTotal)
}

func TestHealthAndReady(t *testing.T) {
	for _, tc := range []struct {
		path  string
		ready bool
		code  int
		body  string
	}{
		{"/healthz", false, http.StatusOK, "ok"},
		{"/readyz", true, http.StatusOK, "ready"},
		{"/readyz", false, http.StatusServiceUnavailable, "loading"},
	} {
		w := httptest.NewRecorder()
		NewMux(&mockService{ready: tc.ready}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
		assert.Equal(t, tc.code, w.Code, "%s ready=%v", tc.path, tc.ready)
		assert.Equal(t, tc.body, w.Body.String(), "%s ready=%v", tc.path, tc.ready)
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"), tc.path)
	}
}

func TestEmbed_Success(t *testing.T) {
	svc := &mockService{}
	w := postEmbed(t, NewMux(svc), `{"model":"m1.wvec","text":"hello world"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp types.EmbedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 2, resp.Dim)
	assert.Equal(t, []float32{0.5, -0.5}, resp.Vector)
	assert.Equal(t, "m1.wvec", svc.gotEmbed.Model)
	assert.Equal(t, "hello world", svc.gotEmbed.Text)
}

func TestEmbed_RequestValidation(t *testing.T) {
	r := NewMux(&mockService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/embed", bytes.NewBufferString(`{"text":"x"}`)))
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code, "missing content type")

	assert.Equal(t, http.StatusBadRequest, postEmbed(t, r, `{"text":`).Code, "bad JSON")

	w = postEmbed(t, r, `{"model":"m1.wvec","text":"   "}`)
	require.Equal(t, http.StatusBadRequest, w.Code, "blank text")
	var e types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	assert.Equal(t, http.StatusBadRequest, e.Code)
	assert.Equal(t, "text is required", e.Error)
}

func TestEmbed_BodyTooLarge(t *testing.T) {
	SetMaxBodyBytes(16)
	defer SetMaxBodyBytes(0)
	w := postEmbed(t, NewMux(&mockService{}), `{"text":"`+strings.Repeat("a", 64)+`"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmbed_HTTPErrorPassthrough(t *testing.T) {
	svc := &mockService{embedErr: mockHTTPError{msg: "teapot", code: http.StatusTeapot}}
	assert.Equal(t, http.StatusTeapot, postEmbed(t, NewMux(svc), `{"text":"x"}`).Code)
}

func TestGetSnapshot(t *testing.T) {
	w := httptest.NewRecorder()
	NewMux(&mockService{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/models/m1.wvec/snapshot", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/octet-stream", w.Header().Get("Content-Type"))
	assert.Equal(t, types.FormatWordVec, w.Header().Get(FormatHeader))
	assert.Equal(t, "WVEC-bytes", w.Body.String())
}

func TestPutSnapshot_FormatResolution(t *testing.T) {
	cases := []struct {
		name, target, header, want string
	}{
		{"query", "/models/x/snapshot?format=GGUF", "", types.FormatGGUF},
		{"header", "/models/x/snapshot", "wordvec", types.FormatWordVec},
		{"extension", "/models/x.wvec/snapshot", "", types.FormatWordVec},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockService{}
			req := httptest.NewRequest(http.MethodPut, tc.target, bytes.NewBufferString("payload"))
			if tc.header != "" {
				req.Header.Set(FormatHeader, tc.header)
			}
			w := httptest.NewRecorder()
			NewMux(svc).ServeHTTP(w, req)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, tc.want, svc.gotRestore.format)
			assert.Equal(t, "payload", string(svc.gotRestore.data))

			var resp types.RestoreResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, len("payload"), resp.Bytes)
			assert.Equal(t, tc.want, resp.Format)
		})
	}
}

func TestPutSnapshot_Rejects(t *testing.T) {
	r := NewMux(&mockService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/models/noext/snapshot", bytes.NewBufferString("x")))
	assert.Equal(t, http.StatusBadRequest, w.Code, "missing format")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/models/a.wvec/snapshot", http.NoBody))
	assert.Equal(t, http.StatusBadRequest, w.Code, "empty body")

	SetMaxSnapshotBytes(4)
	defer SetMaxSnapshotBytes(0)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/models/a.wvec/snapshot", bytes.NewBufferString("too large")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code, "oversize")
}

func TestCORSPreflight(t *testing.T) {
	SetCORSOptions(true, []string{"http://example.com"}, []string{"GET", "POST", "PUT"}, []string{"Content-Type"})
	defer SetCORSOptions(false, nil, nil, nil)

	req := httptest.NewRequest(http.MethodOptions, "/embed", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	NewMux(&mockService{}).ServeHTTP(w, req)
	assert.Equal(t, "http://example.com", w.Header().Get("Access-Control-Allow-Origin"))
}
