package textnorm

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"sync"
)

// Normalizer converts raw article text into a bag-of-words string: tokens
// lowercased, lemmatized, and stripped of stop words, punctuation, and
// whitespace, joined by single spaces.
type Normalizer struct {
	batchSize int
	workers   int
	log       *slog.Logger
}

// New returns a Normalizer. A non-positive batch size falls back to 32; a
// worker count of -1 uses every CPU, zero or one runs serially.
func New(batchSize, workers int, log *slog.Logger) *Normalizer {
	if batchSize <= 0 {
		batchSize = 32
	}
	if workers == -1 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Normalizer{batchSize: batchSize, workers: workers, log: log}
}

// Normalize converts one document. Documents with no surviving tokens
// normalize to the empty string.
func (n *Normalizer) Normalize(text string) string {
	tokens := tokenize(text)
	kept := tokens[:0]
	for _, token := range tokens {
		if isStopword(token) {
			continue
		}
		lemma := lemmatize(token)
		if lemma == "" || isStopword(lemma) {
			continue
		}
		kept = append(kept, lemma)
	}
	return strings.Join(kept, " ")
}

// NormalizeAll converts a slice of documents, preserving order and length.
// Batches are fanned out across the configured workers; a document that
// panics during normalization yields an empty string rather than failing
// the run.
func (n *Normalizer) NormalizeAll(ctx context.Context, texts []string) []string {
	results := make([]string, len(texts))
	if len(texts) == 0 {
		return results
	}

	type batch struct{ start, end int }
	batches := make(chan batch)
	var wg sync.WaitGroup

	workers := n.workers
	if workers > len(texts) {
		workers = len(texts)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for b := range batches {
				for i := b.start; i < b.end; i++ {
					results[i] = n.normalizeSafe(texts[i])
				}
			}
		}()
	}

send:
	for start := 0; start < len(texts); start += n.batchSize {
		end := start + n.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		select {
		case batches <- batch{start: start, end: end}:
		case <-ctx.Done():
			break send
		}
	}
	close(batches)
	wg.Wait()
	return results
}

func (n *Normalizer) normalizeSafe(text string) (normalized string) {
	defer func() {
		if r := recover(); r != nil {
			n.log.Warn("normalization failed, emitting empty document", "panic", r)
			normalized = ""
		}
	}()
	return n.Normalize(text)
}
