package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/flock"

	"newswire/internal/config"
	"newswire/internal/pipeline"
	"newswire/internal/store"
	"newswire/internal/testsupport"
)

func newRunner(t *testing.T) (*pipeline.Runner, *store.Store, *config.Config) {
	t.Helper()
	cfg := testsupport.NewConfig(t, "wire")
	st := testsupport.MustOpenStore(t, cfg)
	return pipeline.New(cfg, st, nil), st, cfg
}

func addArticle(t *testing.T, st *store.Store, url, content string) {
	t.Helper()
	if _, err := st.InsertArticle(context.Background(), "wire", store.Article{URL: url, Content: content}); err != nil {
		t.Fatalf("insert article: %v", err)
	}
}

func TestRunProcessesAllStages(t *testing.T) {
	runner, st, _ := newRunner(t)
	ctx := context.Background()

	addArticle(t, st, "https://example.com/1", "The senate passed the budget bill on Tuesday.")
	addArticle(t, st, "https://example.com/2", "Senators passed a budget bill after a long debate.")
	addArticle(t, st, "https://example.com/3", "Local football team wins the championship final.")

	summary, err := runner.Run(ctx, true)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.RunID == "" {
		t.Fatal("summary should carry a run id")
	}
	if summary.Normalized != 3 || summary.Encoded != 3 {
		t.Fatalf("summary = %+v, want 3 normalized and 3 encoded", summary)
	}

	count, err := st.VectorCount(ctx)
	if err != nil {
		t.Fatalf("vector count: %v", err)
	}
	if count != 3 {
		t.Fatalf("vector count = %d, want 3", count)
	}

	// The two budget articles should pair above the default threshold.
	edges, err := st.Edges(ctx, 0)
	if err != nil {
		t.Fatalf("edges: %v", err)
	}
	if len(edges) == 0 {
		t.Fatal("expected at least one similarity edge")
	}
}

func TestRunIsIncrementalBetweenCalls(t *testing.T) {
	runner, st, _ := newRunner(t)
	ctx := context.Background()

	addArticle(t, st, "https://example.com/1", "Markets rallied after the announcement.")
	if _, err := runner.Run(ctx, true); err != nil {
		t.Fatalf("first run: %v", err)
	}

	// A second run with nothing new normalizes and encodes nothing.
	summary, err := runner.Run(ctx, false)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if summary.Normalized != 0 || summary.Encoded != 0 {
		t.Fatalf("summary = %+v, want nothing processed", summary)
	}

	// New articles are picked up without refitting the vocabulary.
	vocabBefore, err := st.VocabularySize(ctx)
	if err != nil {
		t.Fatalf("vocab size: %v", err)
	}
	addArticle(t, st, "https://example.com/2", "Markets fell the following day.")
	summary, err = runner.Run(ctx, false)
	if err != nil {
		t.Fatalf("third run: %v", err)
	}
	if summary.Normalized != 1 || summary.Encoded != 1 {
		t.Fatalf("summary = %+v, want 1 normalized and 1 encoded", summary)
	}
	vocabAfter, err := st.VocabularySize(ctx)
	if err != nil {
		t.Fatalf("vocab size: %v", err)
	}
	if vocabAfter != vocabBefore {
		t.Fatalf("vocabulary grew from %d to %d during incremental run", vocabBefore, vocabAfter)
	}
}

func TestRunRefusesConcurrentExecution(t *testing.T) {
	runner, _, cfg := newRunner(t)

	lock := flock.New(cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil || !locked {
		t.Fatalf("pre-acquire lock: locked=%v err=%v", locked, err)
	}
	defer lock.Unlock()

	_, err = runner.Run(context.Background(), false)
	if !errors.Is(err, pipeline.ErrAlreadyRunning) {
		t.Fatalf("err = %v, want ErrAlreadyRunning", err)
	}
}

func TestNormalizeSourcesSkipsAlreadyNormalized(t *testing.T) {
	runner, st, _ := newRunner(t)
	ctx := context.Background()

	addArticle(t, st, "https://example.com/1", "First article body.")
	normalized, err := runner.NormalizeSources(ctx)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if normalized != 1 {
		t.Fatalf("normalized = %d, want 1", normalized)
	}

	normalized, err = runner.NormalizeSources(ctx)
	if err != nil {
		t.Fatalf("re-normalize: %v", err)
	}
	if normalized != 0 {
		t.Fatalf("re-normalize = %d, want 0", normalized)
	}
}
