package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// FeatureVector is one document's dense tf-idf representation. Vectors are
// persisted as JSON arrays so the row shape is independent of the
// vocabulary size.
type FeatureVector struct {
	DocumentID string
	Vector     []float32
}

func encodeVector(vector []float32) (string, error) {
	if vector == nil {
		vector = []float32{}
	}
	raw, err := json.Marshal(vector)
	if err != nil {
		return "", fmt.Errorf("encode vector: %w", err)
	}
	return string(raw), nil
}

func decodeVector(raw string) ([]float32, error) {
	var vector []float32
	if err := json.Unmarshal([]byte(raw), &vector); err != nil {
		return nil, fmt.Errorf("decode vector: %w", err)
	}
	return vector, nil
}

// AppendVectors inserts vectors for documents not yet encoded. Documents
// that already have a vector are skipped, never re-encoded.
func (s *Store) AppendVectors(ctx context.Context, vectors []FeatureVector) (int64, error) {
	rows := make([][]any, len(vectors))
	for i, fv := range vectors {
		encoded, err := encodeVector(fv.Vector)
		if err != nil {
			return 0, err
		}
		rows[i] = []any{fv.DocumentID, encoded}
	}
	return s.AppendNewRows(ctx, "feature_vectors", []string{"document_id", "vector"}, rows, "document_id")
}

// ReplaceVectors swaps the entire vector set in one transaction. Used on
// rebuild, where every document is re-encoded against the fresh vocabulary.
func (s *Store) ReplaceVectors(ctx context.Context, vectors []FeatureVector) error {
	rows := make([][]any, len(vectors))
	for i, fv := range vectors {
		encoded, err := encodeVector(fv.Vector)
		if err != nil {
			return err
		}
		rows[i] = []any{fv.DocumentID, encoded}
	}
	return s.ReplaceTable(ctx, "feature_vectors", []string{"document_id", "vector"}, rows)
}

// AllVectors loads every persisted vector ordered by document id.
func (s *Store) AllVectors(ctx context.Context) ([]FeatureVector, error) {
	rows, err := s.queryContext(ctx, `SELECT document_id, vector FROM feature_vectors ORDER BY document_id`)
	if err != nil {
		return nil, fmt.Errorf("load vectors: %w", err)
	}
	defer rows.Close()

	var vectors []FeatureVector
	for rows.Next() {
		var (
			fv  FeatureVector
			raw string
		)
		if err := rows.Scan(&fv.DocumentID, &raw); err != nil {
			return nil, fmt.Errorf("scan vector: %w", err)
		}
		if fv.Vector, err = decodeVector(raw); err != nil {
			return nil, err
		}
		vectors = append(vectors, fv)
	}
	return vectors, rows.Err()
}

// VectorCount returns the number of encoded documents.
func (s *Store) VectorCount(ctx context.Context) (int, error) {
	var count int
	row := s.queryRowContext(ctx, `SELECT COUNT(1) FROM feature_vectors`)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count vectors: %w", err)
	}
	return count, nil
}

// StoredVectorWidth returns the feature width of the persisted vectors, or
// zero when none are stored. All stored vectors share one width; the first
// row is representative.
func (s *Store) StoredVectorWidth(ctx context.Context) (int, error) {
	var raw string
	row := s.queryRowContext(ctx, `SELECT vector FROM feature_vectors LIMIT 1`)
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("sample vector: %w", err)
	}
	vector, err := decodeVector(raw)
	if err != nil {
		return 0, err
	}
	return len(vector), nil
}
