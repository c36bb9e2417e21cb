package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"modelpack/internal/picklable"
	"modelpack/internal/wordvec"
)

func newInitCmd(a *app) *cobra.Command {
	var (
		vocab string
		out   string
		opts  wordvec.Options
	)
	cmd := &cobra.Command{
		Use:     "init",
		Short:   "Build a wordvec model from a vocabulary file",
		Example: "  modelpack init --vocab words.txt --dim 64 --seed 1 --out ~/models/wordvec/news.wvec",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if vocab == "" || out == "" {
				return fmt.Errorf("--vocab and --out are required")
			}
			words, err := readVocabulary(vocab)
			if err != nil {
				return err
			}
			m, err := wordvec.New(words, opts)
			if err != nil {
				return err
			}
			if err := m.SaveModel(out); err != nil {
				return err
			}
			a.log.Debug().Str("out", out).Int("words", len(m.Words())).Msg("model written")
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d words, dim %d)\n", out, len(m.Words()), m.Dimension())
			return nil
		},
	}
	cmd.Flags().StringVar(&vocab, "vocab", "", "Vocabulary file: whitespace separated words")
	cmd.Flags().StringVar(&out, "out", "", "Output model path (*.wvec)")
	cmd.Flags().IntVar(&opts.Dim, "dim", 0, "Vector dimension (default 32)")
	cmd.Flags().IntVar(&opts.MinN, "minn", 0, "Minimum character n-gram length (default 3)")
	cmd.Flags().IntVar(&opts.MaxN, "maxn", 0, "Maximum character n-gram length (default 6, negative disables subwords)")
	cmd.Flags().IntVar(&opts.Bucket, "bucket", 0, "Number of subword hash buckets (default 20000)")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "Seed for vector initialisation")
	return cmd
}

func newInspectCmd(a *app) *cobra.Command {
	var (
		neighbors string
		k         int
	)
	cmd := &cobra.Command{
		Use:   "inspect PATH",
		Short: "Print model dimension and vocabulary size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := picklable.LoadWordVec(picklable.Path(args[0]))
			if err != nil {
				return err
			}
			defer w.Close()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "path:  %s\n", args[0])
			fmt.Fprintf(out, "dim:   %d\n", w.Dimension())
			fmt.Fprintf(out, "words: %d\n", len(w.Words()))
			if neighbors == "" {
				return nil
			}
			nn, err := w.NearestNeighbors(neighbors, k)
			if err != nil {
				return err
			}
			for _, n := range nn {
				fmt.Fprintf(out, "%-20s %.4f\n", n.Word, n.Score)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&neighbors, "neighbors", "", "Also list the nearest neighbours of this word")
	cmd.Flags().IntVarP(&k, "k", "k", 5, "Number of neighbours to list")
	return cmd
}

func newEmbedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "embed PATH TEXT",
		Short: "Print the sentence vector of TEXT",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := picklable.LoadWordVec(picklable.Path(args[0]))
			if err != nil {
				return err
			}
			defer w.Close()
			vec, err := w.Embed(args[1])
			if err != nil {
				return err
			}
			parts := make([]string, len(vec))
			for i, v := range vec {
				parts[i] = strconv.FormatFloat(float64(v), 'g', 6, 32)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(parts, " "))
			return nil
		},
	}
}

func readVocabulary(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	sc.Split(bufio.ScanWords)
	var words []string
	for sc.Scan() {
		words = append(words, sc.Text())
	}
	return words, sc.Err()
}
