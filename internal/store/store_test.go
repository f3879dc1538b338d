package store_test

import (
	"context"
	"testing"

	"newswire/internal/store"
	"newswire/internal/testsupport"
)

func openStore(t *testing.T, sources ...string) *store.Store {
	t.Helper()
	return testsupport.MustOpenStore(t, testsupport.NewConfig(t, sources...))
}

func TestInsertArticleSkipsDuplicates(t *testing.T) {
	st := openStore(t, "wire")
	ctx := context.Background()

	article := store.Article{URL: "https://example.com/a", Title: "A", Content: "alpha"}
	inserted, err := st.InsertArticle(ctx, "wire", article)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if !inserted {
		t.Fatal("first insert should report inserted")
	}

	inserted, err = st.InsertArticle(ctx, "wire", article)
	if err != nil {
		t.Fatalf("re-insert: %v", err)
	}
	if inserted {
		t.Fatal("duplicate insert should be skipped")
	}

	raw, normalized, err := st.SourceCounts(ctx, "wire")
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if raw != 1 || normalized != 0 {
		t.Fatalf("counts = (%d, %d), want (1, 0)", raw, normalized)
	}
}

func TestArticleIDIsStableDigest(t *testing.T) {
	id := store.ArticleID("https://example.com/a")
	if id != store.ArticleID("https://example.com/a") {
		t.Fatal("id should be deterministic")
	}
	if len(id) != 32 {
		t.Fatalf("id length = %d, want 32 hex chars", len(id))
	}
	if id == store.ArticleID("https://example.com/b") {
		t.Fatal("distinct inputs should yield distinct ids")
	}
}

func TestNormalizationAntiJoin(t *testing.T) {
	st := openStore(t, "wire")
	ctx := context.Background()

	for _, url := range []string{"https://example.com/1", "https://example.com/2"} {
		if _, err := st.InsertArticle(ctx, "wire", store.Article{URL: url, Content: "text"}); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	pending, err := st.ArticlesPendingNormalization(ctx, "wire")
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("pending = %d, want 2", len(pending))
	}

	if _, err := st.AppendNormalized(ctx, "wire", []store.NormalizedDoc{{ID: pending[0].ID, Normalized: "text"}}); err != nil {
		t.Fatalf("append normalized: %v", err)
	}

	pending, err = st.ArticlesPendingNormalization(ctx, "wire")
	if err != nil {
		t.Fatalf("pending after append: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending after append = %d, want 1", len(pending))
	}
}

func TestAppendNewRowsSkipsExistingIDs(t *testing.T) {
	st := openStore(t, "wire")
	ctx := context.Background()

	docs := []store.NormalizedDoc{
		{ID: "a", Normalized: "one"},
		{ID: "b", Normalized: "two"},
	}
	inserted, err := st.AppendNormalized(ctx, "wire", docs)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if inserted != 2 {
		t.Fatalf("inserted = %d, want 2", inserted)
	}

	// Re-appending the same batch is a no-op, not an error.
	inserted, err = st.AppendNormalized(ctx, "wire", docs)
	if err != nil {
		t.Fatalf("re-append: %v", err)
	}
	if inserted != 0 {
		t.Fatalf("re-append inserted = %d, want 0", inserted)
	}

	all, err := st.NormalizedAll(ctx, "wire")
	if err != nil {
		t.Fatalf("load all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("stored docs = %d, want 2", len(all))
	}
}

func TestVocabularyRoundTrip(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	vocab := &store.Vocabulary{
		Entries: []store.VocabularyEntry{
			{Word: "more", FeatureIndex: 0, DocFrequency: 1},
			{Word: "some", FeatureIndex: 1, DocFrequency: 2},
			{Word: "words", FeatureIndex: 2, DocFrequency: 2},
		},
		FittedDocuments: 2,
	}
	if err := st.ReplaceVocabulary(ctx, vocab); err != nil {
		t.Fatalf("replace vocabulary: %v", err)
	}

	loaded, err := st.Vocabulary(ctx)
	if err != nil {
		t.Fatalf("load vocabulary: %v", err)
	}
	if loaded.Size() != 3 || loaded.FittedDocuments != 2 {
		t.Fatalf("loaded size=%d fitted=%d, want 3 and 2", loaded.Size(), loaded.FittedDocuments)
	}
	for i, entry := range loaded.Entries {
		if entry != vocab.Entries[i] {
			t.Fatalf("entry %d = %+v, want %+v", i, entry, vocab.Entries[i])
		}
	}

	// Replacement fully discards the previous vocabulary.
	smaller := &store.Vocabulary{
		Entries:         []store.VocabularyEntry{{Word: "only", FeatureIndex: 0, DocFrequency: 1}},
		FittedDocuments: 1,
	}
	if err := st.ReplaceVocabulary(ctx, smaller); err != nil {
		t.Fatalf("replace again: %v", err)
	}
	size, err := st.VocabularySize(ctx)
	if err != nil {
		t.Fatalf("size: %v", err)
	}
	if size != 1 {
		t.Fatalf("size after replace = %d, want 1", size)
	}
}

func TestVocabularyEmptyStore(t *testing.T) {
	st := openStore(t)

	vocab, err := st.Vocabulary(context.Background())
	if err != nil {
		t.Fatalf("load vocabulary: %v", err)
	}
	if vocab.Size() != 0 || vocab.FittedDocuments != 0 {
		t.Fatalf("empty store vocab = %+v, want empty", vocab)
	}
}

func TestVectorAppendAndReplace(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	width, err := st.StoredVectorWidth(ctx)
	if err != nil {
		t.Fatalf("width: %v", err)
	}
	if width != 0 {
		t.Fatalf("empty width = %d, want 0", width)
	}

	batch := []store.FeatureVector{
		{DocumentID: "a", Vector: []float32{0.6, 0.8}},
		{DocumentID: "b", Vector: []float32{1, 0}},
	}
	inserted, err := st.AppendVectors(ctx, batch)
	if err != nil {
		t.Fatalf("append vectors: %v", err)
	}
	if inserted != 2 {
		t.Fatalf("inserted = %d, want 2", inserted)
	}

	inserted, err = st.AppendVectors(ctx, batch)
	if err != nil {
		t.Fatalf("re-append vectors: %v", err)
	}
	if inserted != 0 {
		t.Fatalf("re-append inserted = %d, want 0", inserted)
	}

	width, err = st.StoredVectorWidth(ctx)
	if err != nil {
		t.Fatalf("width: %v", err)
	}
	if width != 2 {
		t.Fatalf("width = %d, want 2", width)
	}

	if err := st.ReplaceVectors(ctx, []store.FeatureVector{{DocumentID: "c", Vector: []float32{0, 1, 0}}}); err != nil {
		t.Fatalf("replace vectors: %v", err)
	}
	vectors, err := st.AllVectors(ctx)
	if err != nil {
		t.Fatalf("load vectors: %v", err)
	}
	if len(vectors) != 1 || vectors[0].DocumentID != "c" || len(vectors[0].Vector) != 3 {
		t.Fatalf("after replace got %+v", vectors)
	}
}

func TestEdgesReplaceAndQuery(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	edges := []store.SimilarityEdge{
		{ID: "a", SimilarID: "b", Score: 0.9},
		{ID: "b", SimilarID: "a", Score: 0.9},
		{ID: "a", SimilarID: "c", Score: 0.3},
	}
	if err := st.ReplaceEdges(ctx, edges); err != nil {
		t.Fatalf("replace edges: %v", err)
	}

	count, err := st.EdgeCount(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}

	top, err := st.Edges(ctx, 1)
	if err != nil {
		t.Fatalf("edges: %v", err)
	}
	if len(top) != 1 || top[0].Score != 0.9 {
		t.Fatalf("top edge = %+v, want score 0.9", top)
	}

	forA, err := st.EdgesFor(ctx, "a")
	if err != nil {
		t.Fatalf("edges for a: %v", err)
	}
	if len(forA) != 2 || forA[0].SimilarID != "b" || forA[1].SimilarID != "c" {
		t.Fatalf("edges for a = %+v", forA)
	}

	// An empty replacement clears the table.
	if err := st.ReplaceEdges(ctx, nil); err != nil {
		t.Fatalf("clear edges: %v", err)
	}
	count, err = st.EdgeCount(ctx)
	if err != nil {
		t.Fatalf("count after clear: %v", err)
	}
	if count != 0 {
		t.Fatalf("count after clear = %d, want 0", count)
	}
}

func TestReadTable(t *testing.T) {
	st := openStore(t, "wire")
	ctx := context.Background()

	if _, err := st.AppendNormalized(ctx, "wire", []store.NormalizedDoc{{ID: "x", Normalized: "hello"}}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rows, err := st.ReadTable(ctx, "wire_article_content_normalized", []string{"id", "normalized"})
	if err != nil {
		t.Fatalf("read table: %v", err)
	}
	if len(rows.Columns) != 2 || len(rows.Values) != 1 {
		t.Fatalf("rows = %+v", rows)
	}
	if rows.Values[0][0] != "x" || rows.Values[0][1] != "hello" {
		t.Fatalf("row values = %+v", rows.Values[0])
	}
}
