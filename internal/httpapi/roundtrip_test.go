package httpapi

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modelpack/internal/store"
	"modelpack/internal/wordvec"
	"modelpack/pkg/types"
)

func newStore(t *testing.T, cfg store.Config) *store.Store {
	t.Helper()
	s, err := store.New(cfg)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

// TestSnapshotRoundTrip_PreservesEmbeddings downloads a model from one server
// and uploads it to another under a new id.
func TestSnapshotRoundTrip_PreservesEmbeddings(t *testing.T) {
	m, err := wordvec.New([]string{"alpha", "beta", "gamma", "delta"}, wordvec.Options{Dim: 6, Bucket: 64, Seed: 3})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "greek.wvec")
	require.NoError(t, m.SaveModel(path))

	src := newStore(t, store.Config{Registry: []types.Model{{ID: "greek.wvec", Path: path, Format: types.FormatWordVec}}})
	dst := newStore(t, store.Config{})
	srcSrv := httptest.NewServer(NewMux(src))
	defer srcSrv.Close()
	dstSrv := httptest.NewServer(NewMux(dst))
	defer dstSrv.Close()

	resp, err := http.Get(srcSrv.URL + "/models/greek.wvec/snapshot")
	require.NoError(t, err)
	data, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	format := resp.Header.Get(FormatHeader)

	req, _ := http.NewRequest(http.MethodPut, dstSrv.URL+"/models/copy/snapshot", bytes.NewReader(data))
	req.Header.Set(FormatHeader, format)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	embed := func(base, id string) []float32 {
		t.Helper()
		body, _ := json.Marshal(types.EmbedRequest{Model: id, Text: "alpha beta gamma"})
		resp, err := http.Post(base+"/embed", "application/json", bytes.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var out types.EmbedResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		return out.Vector
	}
	assert.Equal(t, embed(srcSrv.URL, "greek.wvec"), embed(dstSrv.URL, "copy"))
}

// hostileModel returns a checksummed model file whose header claims far more
// words than the body holds.
func hostileModel() []byte {
	hdr := `{"dim":4,"words":1125899906842624}`
	var buf bytes.Buffer
	buf.WriteString(wordvec.MagicBytes)
	_ = binary.Write(&buf, binary.LittleEndian, uint32(wordvec.FormatVersion))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(0))
	_ = binary.Write(&buf, binary.LittleEndian, uint64(len(hdr)))
	buf.WriteString(hdr)
	buf.Write([]byte{1, 0, 0, 0, 'a'})
	sum := sha256.Sum256(buf.Bytes())
	buf.Write(sum[:])
	return buf.Bytes()
}

func TestSnapshotPut_HostileHeaderIsUnprocessable(t *testing.T) {
	st := newStore(t, store.Config{})
	srv := httptest.NewServer(NewMux(st))
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/models/x.wvec/snapshot", bytes.NewReader(hostileModel()))
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Empty(t, st.Status().Resident, "hostile upload became resident")
}
