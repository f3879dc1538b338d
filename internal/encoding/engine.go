package encoding

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"newswire/internal/store"
)

// Engine drives tf-idf encoding and similarity scoring over the persisted
// article corpus.
type Engine struct {
	store *store.Store
	log   *slog.Logger
}

// NewEngine returns an Engine bound to a store. A nil logger discards output.
func NewEngine(st *store.Store, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{store: st, log: log}
}

// EncodeArticles encodes normalized documents into tf-idf vectors.
//
// With rebuild set, the vocabulary is refitted over the full corpus and
// every vector is replaced. Without it, the existing vocabulary and its
// frozen idf statistics are reused and only documents without a vector are
// encoded and appended; the vocabulary never grows in this mode.
// The return value is the number of documents encoded in this call.
func (e *Engine) EncodeArticles(ctx context.Context, rebuild bool) (int, error) {
	if rebuild {
		return e.rebuildAll(ctx)
	}
	return e.encodeNew(ctx)
}

func (e *Engine) rebuildAll(ctx context.Context) (int, error) {
	docs, err := e.allNormalized(ctx)
	if err != nil {
		return 0, err
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Normalized
	}

	vocab := FitVocabulary(texts)
	if err := e.store.ReplaceVocabulary(ctx, vocab); err != nil {
		return 0, err
	}

	vectors := assembleVectors(docs, Transform(vocab, texts))
	if err := e.store.ReplaceVectors(ctx, vectors); err != nil {
		return 0, err
	}

	e.log.Info("rebuilt feature space",
		"documents", len(docs),
		"features", vocab.Size(),
	)
	return len(docs), nil
}

func (e *Engine) encodeNew(ctx context.Context) (int, error) {
	vocab, err := e.store.Vocabulary(ctx)
	if err != nil {
		return 0, err
	}
	if vocab.Size() == 0 {
		return 0, ErrNoVocabulary
	}

	width, err := e.store.StoredVectorWidth(ctx)
	if err != nil {
		return 0, err
	}
	if width != 0 && width != vocab.Size() {
		return 0, &InconsistentVocabularyError{VocabularySize: vocab.Size(), StoredWidth: width}
	}

	var docs []store.NormalizedDoc
	for _, source := range e.store.Sources() {
		pending, err := e.store.NormalizedPendingEncoding(ctx, source)
		if err != nil {
			return 0, err
		}
		docs = append(docs, pending...)
	}
	if len(docs) == 0 {
		e.log.Info("no new documents to encode")
		return 0, nil
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Normalized
	}

	vectors := assembleVectors(docs, Transform(vocab, texts))
	inserted, err := e.store.AppendVectors(ctx, vectors)
	if err != nil {
		return 0, err
	}

	e.log.Info("encoded new documents",
		"documents", inserted,
		"features", vocab.Size(),
	)
	return int(inserted), nil
}

func (e *Engine) allNormalized(ctx context.Context) ([]store.NormalizedDoc, error) {
	var docs []store.NormalizedDoc
	for _, source := range e.store.Sources() {
		sourceDocs, err := e.store.NormalizedAll(ctx, source)
		if err != nil {
			return nil, err
		}
		docs = append(docs, sourceDocs...)
	}
	return docs, nil
}

func assembleVectors(docs []store.NormalizedDoc, vectors [][]float32) []store.FeatureVector {
	assembled := make([]store.FeatureVector, len(docs))
	for i, doc := range docs {
		assembled[i] = store.FeatureVector{DocumentID: doc.ID, Vector: vectors[i]}
	}
	return assembled
}

// ComputeSimilarity scores every encoded document pair with cosine
// similarity and replaces the stored edge list with the pairs scoring
// strictly above the threshold. Edges are written in both directions and a
// document is never paired with itself. The threshold must satisfy
// 0 <= t < 1. The return value is the number of edges stored.
func (e *Engine) ComputeSimilarity(ctx context.Context, threshold float64) (int, error) {
	if threshold < 0 || threshold >= 1 {
		return 0, fmt.Errorf("%w: got %v", ErrInvalidThreshold, threshold)
	}

	vectors, err := e.store.AllVectors(ctx)
	if err != nil {
		return 0, err
	}

	var edges []store.SimilarityEdge
	for i := 0; i < len(vectors); i++ {
		for j := i + 1; j < len(vectors); j++ {
			score := CosineSimilarity(vectors[i].Vector, vectors[j].Vector)
			if float64(score) <= threshold {
				continue
			}
			edges = append(edges,
				store.SimilarityEdge{ID: vectors[i].DocumentID, SimilarID: vectors[j].DocumentID, Score: score},
				store.SimilarityEdge{ID: vectors[j].DocumentID, SimilarID: vectors[i].DocumentID, Score: score},
			)
		}
	}

	if err := e.store.ReplaceEdges(ctx, edges); err != nil {
		return 0, err
	}

	e.log.Info("computed similarity edges",
		"documents", len(vectors),
		"edges", len(edges),
		"threshold", threshold,
	)
	return len(edges), nil
}
