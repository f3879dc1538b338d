package store

import (
	"context"
	"fmt"
)

// SimilarityEdge records that the document SimilarID scored above the
// similarity threshold against document ID. Edges are stored in both
// directions, so looking up either document finds the pair.
type SimilarityEdge struct {
	ID        string
	SimilarID string
	Score     float32
}

// ReplaceEdges swaps the entire similarity edge list in one transaction.
func (s *Store) ReplaceEdges(ctx context.Context, edges []SimilarityEdge) error {
	rows := make([][]any, len(edges))
	for i, edge := range edges {
		rows[i] = []any{edge.ID, edge.SimilarID, edge.Score}
	}
	return s.ReplaceTable(ctx, "similarity_edges", []string{"id", "similar_id", "score"}, rows)
}

// Edges returns stored similarity edges ordered by score descending, then by
// the id pair for a stable order between equal scores. A non-positive limit
// returns every edge.
func (s *Store) Edges(ctx context.Context, limit int) ([]SimilarityEdge, error) {
	query := `SELECT id, similar_id, score FROM similarity_edges ORDER BY score DESC, id, similar_id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.queryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load edges: %w", err)
	}
	defer rows.Close()

	var edges []SimilarityEdge
	for rows.Next() {
		var edge SimilarityEdge
		if err := rows.Scan(&edge.ID, &edge.SimilarID, &edge.Score); err != nil {
			return nil, fmt.Errorf("scan edge: %w", err)
		}
		edges = append(edges, edge)
	}
	return edges, rows.Err()
}

// EdgesFor returns the edges whose left id matches the given document,
// ordered by score descending.
func (s *Store) EdgesFor(ctx context.Context, documentID string) ([]SimilarityEdge, error) {
	rows, err := s.queryContext(ctx,
		`SELECT id, similar_id, score FROM similarity_edges WHERE id = ? ORDER BY score DESC, similar_id`,
		documentID,
	)
	if err != nil {
		return nil, fmt.Errorf("load edges for %s: %w", documentID, err)
	}
	defer rows.Close()

	var edges []SimilarityEdge
	for rows.Next() {
		var edge SimilarityEdge
		if err := rows.Scan(&edge.ID, &edge.SimilarID, &edge.Score); err != nil {
			return nil, fmt.Errorf("scan edge: %w", err)
		}
		edges = append(edges, edge)
	}
	return edges, rows.Err()
}

// EdgeCount returns the number of stored similarity edges.
func (s *Store) EdgeCount(ctx context.Context) (int, error) {
	var count int
	row := s.queryRowContext(ctx, `SELECT COUNT(1) FROM similarity_edges`)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count edges: %w", err)
	}
	return count, nil
}
