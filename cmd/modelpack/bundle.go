package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"modelpack/internal/picklable"
	"modelpack/internal/registry"
	"modelpack/internal/store"
)

func newPackCmd(a *app) *cobra.Command {
	var (
		out      string
		serName  string
		compName string
	)
	cmd := &cobra.Command{
		Use:     "pack DIR",
		Short:   "Load every model in DIR and write them to one bundle",
		Example: "  modelpack pack ~/models/wordvec --out models.bundle --compressor zstd",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return fmt.Errorf("--out is required")
			}
			reg, err := registry.LoadDir(args[0])
			if err != nil {
				return err
			}
			ser, comp, release, err := a.codecs(serName, compName)
			if err != nil {
				return err
			}
			defer release()

			st, err := store.New(store.Config{Registry: reg, MaxResident: max(len(reg), 1), Logger: a.log})
			if err != nil {
				return err
			}
			defer st.Close()
			for _, m := range reg {
				if err := st.Ensure(cmd.Context(), m.ID); err != nil {
					if picklable.IsDependencyUnavailable(err) {
						a.log.Warn().Err(err).Str("model", m.ID).Msg("skipping model")
						continue
					}
					return err
				}
			}
			if err := writeSnapshot(st, out, ser, comp); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "packed %d models into %s (%s, %s)\n", len(st.Status().Resident), out, ser.Name(), comp.Name())
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Bundle file to write")
	cmd.Flags().StringVar(&serName, "serializer", "", "gob|json (overrides config)")
	cmd.Flags().StringVar(&compName, "compressor", "", "none|zstd (overrides config)")
	return cmd
}

func newUnpackCmd(a *app) *cobra.Command {
	var (
		outDir   string
		serName  string
		compName string
	)
	cmd := &cobra.Command{
		Use:   "unpack FILE",
		Short: "Restore a bundle and save each model as a native file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outDir == "" {
				return fmt.Errorf("--out-dir is required")
			}
			ser, comp, release, err := a.codecs(serName, compName)
			if err != nil {
				return err
			}
			defer release()
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			b, err := store.DecodeBundle(data, ser, comp)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			for _, e := range b.Entries {
				path := filepath.Join(outDir, filepath.Base(e.ID))
				if err := saveEntry(cmd.Context(), e, path); err != nil {
					return fmt.Errorf("%s: %w", e.ID, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", e.ID, path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Directory to write model files into")
	cmd.Flags().StringVar(&serName, "serializer", "", "gob|json (overrides config)")
	cmd.Flags().StringVar(&compName, "compressor", "", "none|zstd (overrides config)")
	return cmd
}

// saveEntry writes the native representation of one bundle entry to path.
func saveEntry(ctx context.Context, e store.Entry, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m, err := e.Model()
	if err != nil {
		return err
	}
	defer m.Close()
	data, err := m.Capture()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
