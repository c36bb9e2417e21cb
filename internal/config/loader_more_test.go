package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_NonexistentFile(t *testing.T) {
	_, err := Load("/definitely/not/a/real/file-12345.yaml")
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	p := writeTempFile(t, t.TempDir(), "bad.yaml", "addr: :8080\n: broken\n")
	_, err := Load(p)
	assert.Error(t, err)
}

func TestLoad_InvalidJSON(t *testing.T) {
	p := writeTempFile(t, t.TempDir(), "bad.json", `{ "addr": ":8080", "models_dir": }`)
	_, err := Load(p)
	assert.Error(t, err)
}

func TestLoad_InvalidTOML(t *testing.T) {
	p := writeTempFile(t, t.TempDir(), "bad.toml", "addr=:8080\nmodels_dir\n")
	_, err := Load(p)
	assert.Error(t, err)
}

func TestApplyEnv_Overlay(t *testing.T) {
	t.Setenv("MODELPACK_ADDR", ":6060")
	t.Setenv("MODELPACK_MAX_RESIDENT", "9")
	t.Setenv("MODELPACK_CORS_ORIGINS", "http://a,http://b")
	cfg := Config{Addr: ":1", ModelsDir: "/keep"}
	require.NoError(t, ApplyEnv(&cfg))
	assert.Equal(t, ":6060", cfg.Addr)
	assert.Equal(t, 9, cfg.MaxResident)
	assert.Equal(t, "/keep", cfg.ModelsDir, "unset env var cleared field")
	assert.Equal(t, []string{"http://a", "http://b"}, cfg.CORSOrigins)
}

func TestApplyEnv_BadValue(t *testing.T) {
	t.Setenv("MODELPACK_MAX_RESIDENT", "many")
	var cfg Config
	assert.Error(t, ApplyEnv(&cfg), "non-integer max_resident")
}
