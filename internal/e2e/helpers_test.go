package e2e

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"modelpack/internal/httpapi"
	"modelpack/internal/registry"
	"modelpack/internal/store"
	"modelpack/internal/wordvec"
)

// createModelsDir writes one seeded wordvec model per name into a fresh
// directory and returns it.
func createModelsDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for i, n := range names {
		m, err := wordvec.New([]string{"red", "green", "blue", "cyan", "magenta"}, wordvec.Options{Dim: 6, Bucket: 64, Seed: uint64(i + 1)})
		require.NoError(t, err, n)
		require.NoError(t, m.SaveModel(filepath.Join(dir, n)), n)
	}
	return dir
}

func newServerForDir(t *testing.T, modelsDir string, cfg store.Config) (*httptest.Server, *store.Store) {
	t.Helper()
	reg, err := registry.LoadDir(modelsDir)
	require.NoError(t, err, "scan models")
	cfg.Registry = reg
	st, err := store.New(cfg)
	require.NoError(t, err)
	srv := httptest.NewServer(httpapi.NewMux(st))
	t.Cleanup(func() {
		srv.Close()
		st.Close()
	})
	return srv, st
}

func httpDo(t *testing.T, method, url, contentType string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), method, url, bytes.NewReader(payload))
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	return httpDo(t, http.MethodGet, url, "", nil)
}

func httpPostJSON(t *testing.T, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	return httpDo(t, http.MethodPost, url, "application/json", payload)
}
