package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"newswire/internal/config"
	"newswire/internal/store"
)

func newPairsCommand(ctx *commandContext) *cobra.Command {
	var (
		limit     int
		articleID string
	)

	cmd := &cobra.Command{
		Use:   "pairs",
		Short: "Show stored similarity pairs",
		Long:  "Lists similarity edges ordered by score. With --article only the pairs involving that document id are shown.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store, _ *config.Config, _ *slog.Logger) error {
				var (
					edges []store.SimilarityEdge
					err   error
				)
				if articleID != "" {
					edges, err = st.EdgesFor(cmd.Context(), articleID)
				} else {
					edges, err = st.Edges(cmd.Context(), limit)
				}
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(edges) == 0 {
					fmt.Fprintln(out, "No similarity pairs stored")
					return nil
				}

				rows := make([][]string, 0, len(edges))
				for _, edge := range edges {
					rows = append(rows, []string{
						edge.ID,
						edge.SimilarID,
						strconv.FormatFloat(float64(edge.Score), 'f', 4, 32),
					})
				}

				// Tab-separated when piped, so output composes with cut/awk.
				if !isTerminal(out) {
					for _, row := range rows {
						fmt.Fprintf(out, "%s\t%s\t%s\n", row[0], row[1], row[2])
					}
					return nil
				}
				fmt.Fprintln(out, renderTable([]string{"Article", "Similar", "Score"}, rows, 2))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of pairs to show (0 for all)")
	cmd.Flags().StringVarP(&articleID, "article", "a", "", "Show only pairs involving this document id")
	return cmd
}
