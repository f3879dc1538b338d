package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"newswire/internal/config"
	"newswire/internal/store"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show corpus and feature space counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store, cfg *config.Config, _ *slog.Logger) error {
				cmdCtx := cmd.Context()
				out := cmd.OutOrStdout()

				rows := make([][]string, 0, len(cfg.Sources.Names))
				totalRaw, totalNormalized := 0, 0
				for _, source := range cfg.Sources.Names {
					raw, normalized, err := st.SourceCounts(cmdCtx, source)
					if err != nil {
						return err
					}
					totalRaw += raw
					totalNormalized += normalized
					rows = append(rows, []string{source, strconv.Itoa(raw), strconv.Itoa(normalized)})
				}
				fmt.Fprintln(out, renderTable([]string{"Source", "Articles", "Normalized"}, rows, 1, 2))

				vocabSize, err := st.VocabularySize(cmdCtx)
				if err != nil {
					return err
				}
				vectors, err := st.VectorCount(cmdCtx)
				if err != nil {
					return err
				}
				edges, err := st.EdgeCount(cmdCtx)
				if err != nil {
					return err
				}

				fmt.Fprintf(out, "\nVocabulary:       %d feature(s)\n", vocabSize)
				fmt.Fprintf(out, "Encoded articles: %d of %d normalized\n", vectors, totalNormalized)
				fmt.Fprintf(out, "Similarity edges: %d\n", edges)
				if pending := totalRaw - totalNormalized; pending > 0 {
					fmt.Fprintf(out, "Pending:          %d article(s) awaiting normalization\n", pending)
				}
				return nil
			})
		},
	}
}
