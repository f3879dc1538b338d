package store

import (
	"context"
	"fmt"
)

// Shared tables of the feature space: the vocabulary (with frozen document
// frequencies captured at fit time), one dense vector per encoded document,
// and the similarity edge list.
var sharedSchema = []string{
	`CREATE TABLE IF NOT EXISTS vocabulary (
        word TEXT NOT NULL UNIQUE,
        feature_index INTEGER NOT NULL UNIQUE,
        doc_frequency INTEGER NOT NULL DEFAULT 0
    )`,
	`CREATE TABLE IF NOT EXISTS vocabulary_meta (
        id INTEGER PRIMARY KEY CHECK (id = 1),
        fitted_documents INTEGER NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS feature_vectors (
        document_id TEXT PRIMARY KEY,
        vector TEXT NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS similarity_edges (
        id TEXT NOT NULL,
        similar_id TEXT NOT NULL,
        score REAL NOT NULL
    )`,
	`CREATE INDEX IF NOT EXISTS idx_similarity_edges_id ON similarity_edges (id)`,
}

func (s *Store) initSchema(ctx context.Context) error {
	for _, statement := range sharedSchema {
		if _, err := s.db.ExecContext(ensureContext(ctx), statement); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	for _, source := range s.sources {
		if err := s.ensureSource(ctx, source); err != nil {
			return err
		}
	}
	return nil
}

// ensureSource creates the per-source content tables. Source names are
// validated by config before they reach table construction.
func (s *Store) ensureSource(ctx context.Context, source string) error {
	statements := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s_article_content (
            id TEXT PRIMARY KEY,
            url TEXT NOT NULL,
            title TEXT NOT NULL DEFAULT '',
            content TEXT NOT NULL,
            collected_at TEXT NOT NULL
        )`, source),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s_article_content_normalized (
            id TEXT PRIMARY KEY,
            normalized TEXT NOT NULL
        )`, source),
	}
	for _, statement := range statements {
		if _, err := s.db.ExecContext(ensureContext(ctx), statement); err != nil {
			return fmt.Errorf("init source %s: %w", source, err)
		}
	}
	return nil
}

func contentTable(source string) string {
	return source + "_article_content"
}

func normalizedTable(source string) string {
	return source + "_article_content_normalized"
}
