package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// VocabularyEntry maps a word to its feature matrix column together with the
// document frequency observed when the vocabulary was fitted.
type VocabularyEntry struct {
	Word         string
	FeatureIndex int
	DocFrequency int
}

// Vocabulary is the fitted feature space: ordered entries plus the corpus
// size captured at fit time, which freezes the idf statistics.
type Vocabulary struct {
	Entries         []VocabularyEntry
	FittedDocuments int
}

// Size returns the number of features (the width of every vector).
func (v *Vocabulary) Size() int {
	if v == nil {
		return 0
	}
	return len(v.Entries)
}

// Index returns the word -> feature index mapping.
func (v *Vocabulary) Index() map[string]int {
	index := make(map[string]int, len(v.Entries))
	for _, entry := range v.Entries {
		index[entry.Word] = entry.FeatureIndex
	}
	return index
}

// Vocabulary loads the persisted vocabulary ordered by feature index. An
// empty store yields an empty vocabulary, not an error.
func (s *Store) Vocabulary(ctx context.Context) (*Vocabulary, error) {
	rows, err := s.queryContext(ctx, `SELECT word, feature_index, doc_frequency FROM vocabulary ORDER BY feature_index`)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}
	defer rows.Close()

	vocab := &Vocabulary{}
	for rows.Next() {
		var entry VocabularyEntry
		if err := rows.Scan(&entry.Word, &entry.FeatureIndex, &entry.DocFrequency); err != nil {
			return nil, fmt.Errorf("scan vocabulary entry: %w", err)
		}
		vocab.Entries = append(vocab.Entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	row := s.queryRowContext(ctx, `SELECT fitted_documents FROM vocabulary_meta WHERE id = 1`)
	if err := row.Scan(&vocab.FittedDocuments); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("load vocabulary meta: %w", err)
		}
	}
	return vocab, nil
}

// ReplaceVocabulary overwrites the vocabulary and its fit metadata in one
// transaction. Called only on rebuild, which invalidates all vectors.
func (s *Store) ReplaceVocabulary(ctx context.Context, vocab *Vocabulary) error {
	ctx = ensureContext(ctx)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin vocabulary replace: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"vocabulary", "vocabulary_meta"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}

	rows := make([][]any, len(vocab.Entries))
	for i, entry := range vocab.Entries {
		rows[i] = []any{entry.Word, entry.FeatureIndex, entry.DocFrequency}
	}
	if err := insertChunked(ctx, tx, s, "vocabulary", []string{"word", "feature_index", "doc_frequency"}, rows); err != nil {
		return err
	}
	if err := insertChunked(ctx, tx, s, "vocabulary_meta", []string{"id", "fitted_documents"},
		[][]any{{1, vocab.FittedDocuments}}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit vocabulary replace: %w", err)
	}
	return nil
}

// VocabularySize returns the persisted vocabulary size without loading entries.
func (s *Store) VocabularySize(ctx context.Context) (int, error) {
	var size int
	row := s.queryRowContext(ctx, `SELECT COUNT(1) FROM vocabulary`)
	if err := row.Scan(&size); err != nil {
		return 0, fmt.Errorf("count vocabulary: %w", err)
	}
	return size, nil
}
