package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"newswire/internal/config"
	"newswire/internal/encoding"
	"newswire/internal/pipeline"
	"newswire/internal/store"
)

func newNormalizeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize",
		Short: "Normalize articles that have not been processed yet",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store, cfg *config.Config, logger *slog.Logger) error {
				runner := pipeline.New(cfg, st, logger)
				normalized, err := runner.NormalizeSources(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Normalized %d article(s)\n", normalized)
				return nil
			})
		},
	}
}

func newEncodeCommand(ctx *commandContext) *cobra.Command {
	var rebuild bool

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode normalized articles into tf-idf vectors",
		Long:  "Encodes articles against the fitted vocabulary, adding vectors only for new articles. With --rebuild the vocabulary is refitted over the whole corpus and every vector is replaced.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store, cfg *config.Config, logger *slog.Logger) error {
				engine := encoding.NewEngine(st, logger)
				encoded, err := engine.EncodeArticles(cmd.Context(), rebuild)
				if err != nil {
					if errors.Is(err, encoding.ErrNoVocabulary) {
						return fmt.Errorf("%w (pass --rebuild)", err)
					}
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Encoded %d article(s)\n", encoded)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&rebuild, "rebuild", false, "Refit the vocabulary and re-encode every article")
	return cmd
}

func newSimilarCommand(ctx *commandContext) *cobra.Command {
	var threshold float64

	cmd := &cobra.Command{
		Use:   "similar",
		Short: "Recompute the similarity edge list",
		Long:  "Scores every encoded article pair with cosine similarity and replaces the stored edges with the pairs scoring strictly above the threshold.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store, cfg *config.Config, logger *slog.Logger) error {
				if !cmd.Flags().Changed("threshold") {
					threshold = cfg.Similarity.Threshold
				}
				engine := encoding.NewEngine(st, logger)
				edges, err := engine.ComputeSimilarity(cmd.Context(), threshold)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Stored %d similarity edge(s) above %v\n", edges, threshold)
				return nil
			})
		},
	}

	cmd.Flags().Float64VarP(&threshold, "threshold", "s", 0, "Similarity threshold in [0, 1) (defaults to the configured value)")
	return cmd
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var rebuild bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline: normalize, encode, similarity",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store, cfg *config.Config, logger *slog.Logger) error {
				runner := pipeline.New(cfg, st, logger)
				summary, err := runner.Run(cmd.Context(), rebuild)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Run %s complete\n", summary.RunID)
				fmt.Fprintf(out, "  normalized: %d\n", summary.Normalized)
				fmt.Fprintf(out, "  encoded:    %d\n", summary.Encoded)
				fmt.Fprintf(out, "  edges:      %d\n", summary.Edges)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&rebuild, "rebuild", false, "Refit the vocabulary and re-encode every article")
	return cmd
}
