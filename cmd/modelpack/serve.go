package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"modelpack/internal/common/fsutil"
	"modelpack/internal/compressor"
	"modelpack/internal/httpapi"
	"modelpack/internal/picklable"
	"modelpack/internal/registry"
	"modelpack/internal/serializer"
	"modelpack/internal/store"
	"modelpack/pkg/types"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr        string
		modelsDir   string
		restoreFrom string
		snapshotTo  string
		corsOrigins string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Example: "  modelpack serve --addr :8080 --models-dir ~/models/wordvec\n" +
			"  modelpack serve --restore state.bundle --snapshot-on-exit state.bundle",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if addr != "" {
				cfg.Addr = addr
			}
			if modelsDir != "" {
				cfg.ModelsDir = modelsDir
			}
			if corsOrigins != "" {
				cfg.CORSOrigins = splitCSV(corsOrigins)
			}
			lg := a.log

			reg, err := registry.LoadDir(cfg.ModelsDir)
			if err != nil {
				return err
			}
			warnUnloadable(lg, reg)
			st, err := store.New(store.Config{
				Registry:     reg,
				MaxResident:  cfg.MaxResident,
				DefaultModel: cfg.DefaultModel,
				Logger:       lg.With().Str("component", "store").Logger(),
			})
			if err != nil {
				return err
			}
			defer st.Close()

			ser, comp, release, err := a.codecs("", "")
			if err != nil {
				return err
			}
			defer release()

			if restoreFrom != "" {
				f, err := os.Open(restoreFrom)
				if err != nil {
					return err
				}
				n, err := st.LoadSnapshot(f, ser, comp)
				f.Close()
				if err != nil {
					return err
				}
				lg.Info().Int("models", n).Str("file", restoreFrom).Msg("snapshot restored")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			httpapi.SetLogger(lg.With().Str("component", "http").Logger())
			httpapi.SetRequestLogLevel(cfg.LogLevel)
			httpapi.SetBaseContext(ctx)
			httpapi.SetCORSOptions(len(cfg.CORSOrigins) > 0, cfg.CORSOrigins,
				[]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
				[]string{"Content-Type", httpapi.FormatHeader})

			srv := &http.Server{
				Addr:              cfg.Addr,
				Handler:           httpapi.NewMux(st),
				ReadHeaderTimeout: 10 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() {
				lg.Info().Str("addr", cfg.Addr).Str("models_dir", cfg.ModelsDir).Int("models", len(reg)).Bool("llama", picklable.LlamaAvailable()).Msg("modelpack listening")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return err
				}
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				lg.Warn().Err(err).Msg("graceful shutdown error")
			}

			if snapshotTo != "" {
				if err := writeSnapshot(st, snapshotTo, ser, comp); err != nil {
					return err
				}
				lg.Info().Str("file", snapshotTo).Msg("snapshot written")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address, e.g. :8080 (overrides config)")
	cmd.Flags().StringVar(&modelsDir, "models-dir", "", "Directory to scan for *.wvec and *.gguf files (overrides config)")
	cmd.Flags().StringVar(&restoreFrom, "restore", "", "Bundle to load into the store before serving")
	cmd.Flags().StringVar(&snapshotTo, "snapshot-on-exit", "", "Write resident models to this bundle on shutdown")
	cmd.Flags().StringVar(&corsOrigins, "cors-origins", "", "Comma-separated allowed CORS origins (enables CORS)")
	return cmd
}

// writeSnapshot writes a bundle next to path and renames it into place.
func writeSnapshot(st *store.Store, path string, ser serializer.Serializer, comp compressor.Compressor) error {
	path, err := fsutil.ExpandHome(path)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := st.Snapshot(f, ser, comp); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// warnUnloadable logs the registry entries this binary cannot load and
// returns how many there are.
func warnUnloadable(lg zerolog.Logger, reg []types.Model) int {
	if picklable.LlamaAvailable() {
		return 0
	}
	n := 0
	for _, m := range reg {
		if m.Format == types.FormatGGUF {
			n++
		}
	}
	if n > 0 {
		lg.Warn().Int("models", n).Msg("gguf models require a build with -tags=llama")
	}
	return n
}
