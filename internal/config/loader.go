package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v10"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every env tag by ApplyEnv.
const EnvPrefix = "MODELPACK_"

// Config holds runtime parameters for the service and CLI.
// Zero values mean "unspecified" and are replaced by WithDefaults.
type Config struct {
	Addr         string   `json:"addr" yaml:"addr" toml:"addr" env:"ADDR"`
	ModelsDir    string   `json:"models_dir" yaml:"models_dir" toml:"models_dir" env:"MODELS_DIR"`
	TempDir      string   `json:"temp_dir" yaml:"temp_dir" toml:"temp_dir" env:"TEMP_DIR"`
	DefaultModel string   `json:"default_model" yaml:"default_model" toml:"default_model" env:"DEFAULT_MODEL"`
	MaxResident  int      `json:"max_resident" yaml:"max_resident" toml:"max_resident" env:"MAX_RESIDENT"`
	Serializer   string   `json:"serializer" yaml:"serializer" toml:"serializer" env:"SERIALIZER"`
	Compressor   string   `json:"compressor" yaml:"compressor" toml:"compressor" env:"COMPRESSOR"`
	LogLevel     string   `json:"log_level" yaml:"log_level" toml:"log_level" env:"LOG_LEVEL"`
	LogFile      string   `json:"log_file" yaml:"log_file" toml:"log_file" env:"LOG_FILE"`
	LlamaCtx     int      `json:"llama_ctx" yaml:"llama_ctx" toml:"llama_ctx" env:"LLAMA_CTX"`
	LlamaThreads int      `json:"llama_threads" yaml:"llama_threads" toml:"llama_threads" env:"LLAMA_THREADS"`
	CORSOrigins  []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins" env:"CORS_ORIGINS" envSeparator:","`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:        ":8080",
		ModelsDir:   "~/models/wordvec",
		MaxResident: 4,
		Serializer:  "gob",
		Compressor:  "none",
		LogLevel:    "info",
		LlamaCtx:    512,
	}
}

// WithDefaults fills unspecified fields from Default.
func (c Config) WithDefaults() Config {
	d := Default()
	if c.Addr == "" {
		c.Addr = d.Addr
	}
	if c.ModelsDir == "" {
		c.ModelsDir = d.ModelsDir
	}
	if c.MaxResident <= 0 {
		c.MaxResident = d.MaxResident
	}
	if c.Serializer == "" {
		c.Serializer = d.Serializer
	}
	if c.Compressor == "" {
		c.Compressor = d.Compressor
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.LlamaCtx <= 0 {
		c.LlamaCtx = d.LlamaCtx
	}
	return c
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// ApplyEnv overlays MODELPACK_* environment variables onto cfg. Unset
// variables leave the corresponding field untouched.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("env: %w", err)
	}
	return nil
}
