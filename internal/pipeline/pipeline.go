// Package pipeline runs the article processing stages in order: normalize
// pending articles, encode them into tf-idf vectors, and recompute the
// similarity edge list. A file lock keeps concurrent runs from interleaving
// their writes.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"newswire/internal/config"
	"newswire/internal/encoding"
	"newswire/internal/store"
	"newswire/internal/textnorm"
)

// ErrAlreadyRunning is returned when another process holds the run lock.
var ErrAlreadyRunning = errors.New("another pipeline run is in progress")

// Summary reports what a pipeline run did.
type Summary struct {
	RunID      string
	Normalized int
	Encoded    int
	Edges      int
}

// Runner executes the processing stages against one store.
type Runner struct {
	cfg   *config.Config
	store *store.Store
	log   *slog.Logger
}

// New returns a Runner. A nil logger discards output.
func New(cfg *config.Config, st *store.Store, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{cfg: cfg, store: st, log: log}
}

// Run executes normalize, encode, and similarity in order under the run
// lock. With rebuild set the vocabulary is refitted and every vector
// replaced; otherwise only new documents are encoded.
func (r *Runner) Run(ctx context.Context, rebuild bool) (Summary, error) {
	lock := flock.New(r.cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return Summary{}, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return Summary{}, ErrAlreadyRunning
	}
	defer lock.Unlock()

	summary := Summary{RunID: uuid.NewString()}
	log := r.log.With("run_id", summary.RunID)
	log.Info("pipeline run starting", "rebuild", rebuild)

	if summary.Normalized, err = r.NormalizeSources(ctx); err != nil {
		return summary, fmt.Errorf("normalize stage: %w", err)
	}

	engine := encoding.NewEngine(r.store, log)
	if summary.Encoded, err = engine.EncodeArticles(ctx, rebuild); err != nil {
		return summary, fmt.Errorf("encode stage: %w", err)
	}

	if summary.Edges, err = engine.ComputeSimilarity(ctx, r.cfg.Similarity.Threshold); err != nil {
		return summary, fmt.Errorf("similarity stage: %w", err)
	}

	log.Info("pipeline run complete",
		"normalized", summary.Normalized,
		"encoded", summary.Encoded,
		"edges", summary.Edges,
	)
	return summary, nil
}

// NormalizeSources normalizes every article that has no normalized
// counterpart yet, source by source, and returns the number of documents
// normalized.
func (r *Runner) NormalizeSources(ctx context.Context) (int, error) {
	normalizer := textnorm.New(r.cfg.Normalizer.BatchSize, r.cfg.Normalizer.Workers, r.log)

	total := 0
	for _, source := range r.store.Sources() {
		pending, err := r.store.ArticlesPendingNormalization(ctx, source)
		if err != nil {
			return total, err
		}
		if len(pending) == 0 {
			continue
		}

		texts := make([]string, len(pending))
		for i, article := range pending {
			texts[i] = article.Content
		}
		normalized := normalizer.NormalizeAll(ctx, texts)

		docs := make([]store.NormalizedDoc, len(pending))
		for i, article := range pending {
			docs[i] = store.NormalizedDoc{ID: article.ID, Normalized: normalized[i]}
		}
		inserted, err := r.store.AppendNormalized(ctx, source, docs)
		if err != nil {
			return total, err
		}

		r.log.Info("normalized articles", "source", source, "documents", inserted)
		total += int(inserted)
	}
	return total, nil
}
