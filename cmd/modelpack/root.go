package main

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"modelpack/internal/compressor"
	"modelpack/internal/config"
	"modelpack/internal/logging"
	"modelpack/internal/picklable"
	"modelpack/internal/serializer"
)

// app carries state resolved once in PersistentPreRunE and shared by every
// subcommand.
type app struct {
	configPath string
	logLevel   string
	cfg        config.Config
	log        zerolog.Logger
	logCloser  io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "modelpack",
		Short:         "Serve, capture and restore native embedding models",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to config file (.yaml|.yml|.json|.toml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug|info|warn|error (overrides config)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return a.setup()
	}
	root.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if a.logCloser != nil {
			_ = a.logCloser.Close()
		}
	}

	root.AddCommand(
		newServeCmd(a),
		newInitCmd(a),
		newInspectCmd(a),
		newEmbedCmd(a),
		newPackCmd(a),
		newUnpackCmd(a),
	)
	return root
}

// setup resolves configuration (file, then env, then flags), builds the
// logger and applies process-wide adapter settings.
func (a *app) setup() error {
	cfg := config.Default()
	if a.configPath != "" {
		fileCfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		cfg = fileCfg.WithDefaults()
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	a.cfg = cfg

	lg, closer, err := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
		Console: cfg.LogFile == "",
	})
	if err != nil {
		return err
	}
	a.log, a.logCloser = lg, closer

	picklable.SetTempDir(cfg.TempDir)
	picklable.SetLlamaDefaults(picklable.LlamaOptions{ContextSize: cfg.LlamaCtx, Threads: cfg.LlamaThreads})
	return nil
}

// codecs returns the serializer and compressor named by the flags or, when
// empty, by the config. release must be called when done.
func (a *app) codecs(serName, compName string) (ser serializer.Serializer, comp compressor.Compressor, release func(), err error) {
	if serName == "" {
		serName = a.cfg.Serializer
	}
	if compName == "" {
		compName = a.cfg.Compressor
	}
	if ser, err = serializer.ByName(serName); err != nil {
		return nil, nil, nil, err
	}
	if comp, err = compressor.ByName(compName); err != nil {
		return nil, nil, nil, err
	}
	release = func() {
		if c, ok := comp.(interface{ Close() }); ok {
			c.Close()
		}
	}
	return ser, comp, release, nil
}

// splitCSV splits a comma-separated list, trimming blanks and dropping
// empty items.
func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
