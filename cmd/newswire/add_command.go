package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"newswire/internal/config"
	"newswire/internal/store"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var (
		urlFlag   string
		titleFlag string
	)

	cmd := &cobra.Command{
		Use:   "add <source> [file]",
		Short: "Add an article to a source",
		Long:  "Reads article text from a file (or stdin when no file is given) and stores it under the named source. Articles are keyed by a digest of --url, so re-adding the same URL is a no-op.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := strings.ToLower(strings.TrimSpace(args[0]))
			url := strings.TrimSpace(urlFlag)
			if url == "" {
				return fmt.Errorf("--url is required to derive the article id")
			}

			content, err := readArticleBody(cmd.InOrStdin(), args[1:])
			if err != nil {
				return err
			}
			if strings.TrimSpace(content) == "" {
				return fmt.Errorf("article body is empty")
			}

			return ctx.withStore(func(st *store.Store, cfg *config.Config, _ *slog.Logger) error {
				if !slices.Contains(cfg.Sources.Names, source) {
					return fmt.Errorf("unknown source %q (configured: %s)", source, strings.Join(cfg.Sources.Names, ", "))
				}

				inserted, err := st.InsertArticle(cmd.Context(), source, store.Article{
					URL:     url,
					Title:   strings.TrimSpace(titleFlag),
					Content: content,
				})
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if inserted {
					fmt.Fprintf(out, "Added article %s to %s\n", store.ArticleID(url), source)
				} else {
					fmt.Fprintf(out, "Article %s already present in %s\n", store.ArticleID(url), source)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&urlFlag, "url", "u", "", "Source URL of the article (required)")
	cmd.Flags().StringVarP(&titleFlag, "title", "t", "", "Article title")
	return cmd
}

func readArticleBody(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 {
		body, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read article from stdin: %w", err)
		}
		return string(body), nil
	}
	body, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read article file: %w", err)
	}
	return string(body), nil
}
